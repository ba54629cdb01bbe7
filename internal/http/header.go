package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	headerRequestID          = "x-request-id"
	headerContentType        = "content-type"
	headerContentDisposition = "content-disposition"
	headerIdempotencyKey     = "idempotency-key"

	paramProject = "project"
	queryWindow  = "window"
	queryFormat  = "format"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

func contentType(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerContentType))
}

func idempotencyKey(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerIdempotencyKey))
}

// project returns the {project} route parameter; empty outside a matched project route.
func project(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, paramProject))
}

func queryValue(r *http.Request, key string, fallback string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return strings.ToLower(v)
	}
	return fallback
}
