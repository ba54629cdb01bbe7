package ingestors

import (
	"strings"

	"github.com/mileusna/useragent"
)

// normalizeClient reduces a raw User-Agent header to its browser or client
// family ("Chrome", "Firefox", "curl"), so per-client counts do not split on
// version strings. Unparseable agents are kept as sent.
func normalizeClient(ua string) string {
	ua = strings.TrimSpace(ua)
	if ua == "" {
		return ""
	}
	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return parsed.Name
	}
	return ua
}
