// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.IntentExtractor and
// ai.AIProvider for use in unit tests. The mocks let tests run without a
// language model and make extraction deterministic.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	intent, err := mockProvider.IntentExtractor().ExtractIntent(ctx, "image editor")
//
//	// Custom behavior injection
//	extractor := mock.NewMockIntentExtractor().
//	    WithExtractIntentFunc(func(ctx context.Context, query string) (*core.SearchIntent, error) {
//	        return &core.SearchIntent{Keywords: []string{"chat"}, Category: core.CategoryText}, nil
//	    })
//
//	// Simulate an unavailable model
//	failing := mock.NewFailingIntentExtractor(ai.ErrExternalService)
//
// # Default Behavior
//
// MockIntentExtractor splits the query on whitespace and sets no other
// fields, which matches the keyword-only fallback used by the search
// pipeline. MockProvider wraps a single MockIntentExtractor.
package mock
