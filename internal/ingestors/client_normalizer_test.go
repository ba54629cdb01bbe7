package ingestors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ua       string
		expected string
	}{
		{name: "empty", ua: "", expected: ""},
		{name: "blank", ua: "   ", expected: ""},
		{
			name:     "chrome",
			ua:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			expected: "Chrome",
		},
		{
			name:     "firefox",
			ua:       "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			expected: "Firefox",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, normalizeClient(tt.ua))
		})
	}
}
