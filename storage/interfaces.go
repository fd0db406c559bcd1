package storage

import (
	"context"
	"time"

	"github.com/poiesic/toolshelf/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// Repository calls made with the ctx passed to fn take part in it.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases resources held by the repository.
	Close() error
}

// ItemRepository provides operations for managing catalog items.
type ItemRepository interface {
	Repository

	// AddItems inserts or replaces items by ID.
	// Every item is validated with core.ValidateItem before anything is written.
	// A zero CreatedAt is set to the current time. Timestamps are stored in UTC
	// with microsecond precision and the returned items reflect that.
	AddItems(ctx context.Context, items ...*core.Item) ([]*core.Item, error)

	// DeleteItems removes items by their IDs.
	// Returns ErrNotFound if any item doesn't exist; nothing is deleted in that case.
	DeleteItems(ctx context.Context, ids ...string) error

	// GetItem retrieves a single item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetItem(ctx context.Context, id string) (*core.Item, error)

	// GetItems retrieves multiple items by their IDs, in the order requested.
	// Returns only the items that exist (no error for missing items).
	GetItems(ctx context.Context, ids ...string) ([]*core.Item, error)

	// ListItems returns every item ordered by CreatedAt, then ID.
	ListItems(ctx context.Context) ([]*core.Item, error)

	// GetItemsByCreatedRange returns items with start <= CreatedAt <= end,
	// ordered by CreatedAt, then ID.
	GetItemsByCreatedRange(ctx context.Context, start, end time.Time) ([]*core.Item, error)

	// CountItems returns the number of stored items.
	CountItems(ctx context.Context) (int, error)
}
