package search

import (
	"strings"

	"github.com/poiesic/toolshelf/core"
)

// ExtractFallback builds a keyword-only intent by splitting query on runs of
// whitespace. It never fails and never consults an external service.
func ExtractFallback(query string) *core.SearchIntent {
	keywords := strings.Fields(query)
	if keywords == nil {
		keywords = []string{}
	}
	return &core.SearchIntent{Keywords: keywords}
}
