package http

import (
	"net/http"

	"query-metrics/internal/ingestors"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type ingestQueriesHandler struct {
	ingestionService ingestors.IngestionService
}

func NewIngestQueriesHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &ingestQueriesHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /projects/{project}/queries requests.
func (h *ingestQueriesHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.ingestionService.IngestBatch(r.Context(), project(r), idempotencyKey(r), contentType(r), r.Body)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusAccepted, result)
	return nil
}
