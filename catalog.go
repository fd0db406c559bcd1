// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package toolshelf

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/toolshelf/ai"
	"github.com/poiesic/toolshelf/ai/openai"
	"github.com/poiesic/toolshelf/core"
	"github.com/poiesic/toolshelf/search"
	"github.com/poiesic/toolshelf/storage"
	"github.com/poiesic/toolshelf/storage/badger"
)

// Catalog ties together item storage, the intent extractor and the searcher.
type Catalog struct {
	backend  *badger.Backend
	items    storage.ItemRepository
	provider ai.AIProvider
	searcher *search.Searcher
	logger   *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	aiConfig      *ai.Config
	provider      ai.AIProvider
	inMemory      bool
	searchOptions []search.Option
}

// WithAIConfig sets the configuration for the OpenAI-compatible intent extractor.
// Ignored when WithAIProvider is also given.
func WithAIConfig(config *ai.Config) CatalogOption {
	return func(o *catalogOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithAIProvider supplies a ready-made AI provider. The catalog takes
// ownership and closes it on Close.
func WithAIProvider(provider ai.AIProvider) CatalogOption {
	return func(o *catalogOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps the catalog in memory. The path passed to NewCatalog is ignored.
func WithInMemory() CatalogOption {
	return func(o *catalogOptions) {
		o.inMemory = true
	}
}

// WithSearchOptions passes options to the catalog's searcher.
func WithSearchOptions(opts ...search.Option) CatalogOption {
	return func(o *catalogOptions) {
		o.searchOptions = append(o.searchOptions, opts...)
	}
}

// NewCatalog opens the catalog stored at filePath.
func NewCatalog(filePath string, opts ...CatalogOption) (*Catalog, error) {
	// Apply options
	options := &catalogOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	items, err := badger.NewItemRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			items.Close()
			backend.Close()
			return nil, err
		}
	}

	searcher, err := search.NewSearcher(provider.IntentExtractor(), options.searchOptions...)
	if err != nil {
		provider.Close()
		items.Close()
		backend.Close()
		return nil, err
	}

	return &Catalog{
		backend:  backend,
		items:    items,
		provider: provider,
		searcher: searcher,
		logger:   slog.Default().With("component", "catalog"),
	}, nil
}

// Close releases the searcher, the AI provider and the storage backend.
func (c *Catalog) Close() error {
	c.searcher.Release()

	// Close AI provider first
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}

	if err := c.items.Close(); err != nil {
		c.logger.Error("error closing item repository", "err", err)
		return err
	}

	// Close backend
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ItemRepository returns the catalog's item storage.
func (c *Catalog) ItemRepository() storage.ItemRepository {
	return c.items
}

// NewSearcher creates an additional searcher sharing the catalog's intent extractor.
// The caller must Release it.
func (c *Catalog) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(c.provider.IntentExtractor(), opts...)
}

// Filter returns the stored items matching conditions, ordered by CreatedAt then ID.
//
// For AND conditions with a date range only items created inside the range
// can match, so candidates are read through the created-at index instead of
// loading the whole catalog.
func (c *Catalog) Filter(ctx context.Context, conditions *core.AdvancedSearchConditions) ([]*core.Item, error) {
	if err := core.ValidateConditions(conditions); err != nil {
		return nil, err
	}

	var (
		candidates []*core.Item
		err        error
	)
	if conditions.Operator == core.OperatorAnd && conditions.DateRange != nil {
		candidates, err = c.items.GetItemsByCreatedRange(ctx, conditions.DateRange.Start, conditions.DateRange.End)
	} else {
		candidates, err = c.items.ListItems(ctx)
	}
	if err != nil {
		return nil, err
	}

	return search.Filter(candidates, conditions)
}

// Search ranks every stored item against a free-text query.
func (c *Catalog) Search(ctx context.Context, query string) ([]*core.ScoredResult, error) {
	outcome, err := c.SearchWithDetails(ctx, query)
	if err != nil {
		return nil, err
	}
	return outcome.Results, nil
}

// SearchWithDetails ranks every stored item against a free-text query and
// reports the intent used.
func (c *Catalog) SearchWithDetails(ctx context.Context, query string) (*search.Outcome, error) {
	// Reject empty queries before touching storage
	if strings.TrimSpace(query) == "" {
		return nil, search.ErrInvalidInput
	}

	candidates, err := c.items.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	return c.searcher.SearchWithDetails(ctx, query, candidates)
}
