package ai

import (
	"context"

	"github.com/poiesic/toolshelf/core"
)

// IntentExtractor turns a free-text search query into a structured intent.
// Implementations must be thread-safe for concurrent use.
type IntentExtractor interface {
	// ExtractIntent makes at most one call to the underlying language service.
	// The returned intent has normalized keywords (no blank entries).
	// Any failure is returned as an error wrapping ErrExternalService.
	ExtractIntent(ctx context.Context, query string) (*core.SearchIntent, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// IntentExtractor returns the query understanding service.
	// The returned IntentExtractor is safe for concurrent use.
	IntentExtractor() IntentExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
