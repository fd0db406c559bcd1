package ai

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/poiesic/toolshelf/core"
)

// CachingExtractor wraps an IntentExtractor and remembers successful intents.
// Failures pass through untouched and are never cached, so a service that
// recovers is consulted again on the next identical query.
type CachingExtractor struct {
	inner  IntentExtractor
	cache  *lru.Cache[core.ID, core.SearchIntent]
	logger *slog.Logger
}

var _ IntentExtractor = (*CachingExtractor)(nil)

// NewCachingExtractor wraps inner with an LRU cache holding up to size intents.
func NewCachingExtractor(inner IntentExtractor, size int) (*CachingExtractor, error) {
	if inner == nil {
		return nil, ErrExtractorRequired
	}
	cache, err := lru.New[core.ID, core.SearchIntent](size)
	if err != nil {
		return nil, err
	}
	return &CachingExtractor{
		inner:  inner,
		cache:  cache,
		logger: slog.Default().With("component", "intent-cache"),
	}, nil
}

// ExtractIntent returns a cached intent for an equivalent query or delegates to the inner extractor.
func (c *CachingExtractor) ExtractIntent(ctx context.Context, query string) (*core.SearchIntent, error) {
	key := cacheKey(query)
	if cached, ok := c.cache.Get(key); ok {
		c.logger.Debug("intent cache hit", "query", query)
		return cloneIntent(cached), nil
	}

	intent, err := c.inner.ExtractIntent(ctx, query)
	if err != nil {
		return nil, err
	}
	if core.ValidateIntent(intent) != nil {
		// Not cached; the caller decides what to do with it
		return intent, nil
	}

	c.cache.Add(key, *cloneIntent(*intent))
	return intent, nil
}

// Len returns the number of cached intents.
func (c *CachingExtractor) Len() int {
	return c.cache.Len()
}

// cacheKey folds case and whitespace so trivially different spellings share an entry.
func cacheKey(query string) core.ID {
	return core.IDFromContent(strings.Join(strings.Fields(strings.ToLower(query)), " "))
}

func cloneIntent(intent core.SearchIntent) *core.SearchIntent {
	intent.Keywords = slices.Clone(intent.Keywords)
	return &intent
}
