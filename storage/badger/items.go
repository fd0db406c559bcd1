package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/toolshelf/core"
	"github.com/poiesic/toolshelf/storage"
)

// ItemRepository implements storage.ItemRepository for BadgerDB.
//
// Items live under their ID. A secondary index keyed by CreatedAt then ID
// gives chronological listing and range scans without decoding every item.
type ItemRepository struct {
	backend *Backend
}

var _ storage.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository creates a new item repository on an open backend.
// The backend is shared; closing the repository does not close it.
func NewItemRepository(backend *Backend) (storage.ItemRepository, error) {
	return newItemRepository(backend)
}

func newItemRepository(backend *Backend) (*ItemRepository, error) {
	if backend == nil {
		return nil, errors.New("badger backend required")
	}
	return &ItemRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *ItemRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend. Item operations called with the
// ctx passed to fn are committed or discarded together.
func (r *ItemRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddItems inserts or replaces items by ID.
func (r *ItemRepository) AddItems(ctx context.Context, items ...*core.Item) ([]*core.Item, error) {
	for _, item := range items {
		if err := core.ValidateItem(item); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	for _, item := range items {
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		item.CreatedAt = item.CreatedAt.UTC().Truncate(time.Microsecond)
		if !item.UsageDate.IsZero() {
			item.UsageDate = item.UsageDate.UTC().Truncate(time.Microsecond)
		}
	}

	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, item := range items {
			key := makeItemKey(item.ID)

			// Replacing an item may move it in the created-at index
			old, err := r.readItem(tx, key)
			if err != nil {
				return err
			}
			if old != nil && !old.CreatedAt.Equal(item.CreatedAt) {
				if err := tx.Delete(makeItemCreatedKey(old.CreatedAt, old.ID)); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalItem(item)); err != nil {
				return err
			}
			createdKey := makeItemCreatedKey(item.CreatedAt, item.ID)
			if err := tx.Set(createdKey, storage.MarshalItemID(item.ID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// DeleteItems removes items by their IDs.
func (r *ItemRepository) DeleteItems(ctx context.Context, ids ...string) error {
	return r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeItemKey(id)

			// Read item to find its index entry
			item, err := r.readItem(tx, key)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: %q", storage.ErrNotFound, id)
			}

			if err := tx.Delete(makeItemCreatedKey(item.CreatedAt, item.ID)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetItem retrieves a single item by ID.
func (r *ItemRepository) GetItem(ctx context.Context, id string) (*core.Item, error) {
	var result *core.Item
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = r.readItem(tx, makeItemKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: %q", storage.ErrNotFound, id)
		}
		return nil
	})
	return result, err
}

// GetItems retrieves multiple items by their IDs.
func (r *ItemRepository) GetItems(ctx context.Context, ids ...string) ([]*core.Item, error) {
	result := make([]*core.Item, 0, len(ids))
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := r.readItem(tx, makeItemKey(id))
			if err != nil {
				return err
			}
			if item != nil {
				result = append(result, item)
			}
		}
		return nil
	})
	return result, err
}

// ListItems returns every item ordered by CreatedAt, then ID.
func (r *ItemRepository) ListItems(ctx context.Context) ([]*core.Item, error) {
	return r.scanCreatedIndex(ctx, []byte(itemCreatedPrefix), nil, nil)
}

// GetItemsByCreatedRange returns items created within [start, end].
func (r *ItemRepository) GetItemsByCreatedRange(ctx context.Context, start, end time.Time) ([]*core.Item, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s", storage.ErrInvalidQuery, start, end)
	}

	startKey := makePartialItemCreatedKey(start)
	endKey := makePartialItemCreatedKey(end)

	// The index is microsecond granular; compare exact times on the decoded items
	keep := func(item *core.Item) bool {
		return !item.CreatedAt.Before(start) && !item.CreatedAt.After(end)
	}
	return r.scanCreatedIndex(ctx, startKey, endKey, keep)
}

// CountItems returns the number of stored items.
func (r *ItemRepository) CountItems(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(itemPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// scanCreatedIndex walks the created-at index from seekKey. When endKey is
// set, iteration stops once the timestamp part of a key passes it. Items
// rejected by keep are skipped.
func (r *ItemRepository) scanCreatedIndex(ctx context.Context, seekKey, endKey []byte, keep func(*core.Item) bool) ([]*core.Item, error) {
	results := make([]*core.Item, 0)
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemCreatedPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(seekKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if endKey != nil && bytes.Compare(key[:len(endKey)], endKey) > 0 {
				break
			}

			// Read the ID from the index
			var id string
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalItemID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full item
			item, err := r.readItem(tx, makeItemKey(id))
			if err != nil {
				return err
			}
			if item == nil {
				r.backend.logger.Warn("created-at index points at missing item", "id", id)
				continue
			}
			if keep != nil && !keep(item) {
				continue
			}
			results = append(results, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// readItem reads and decodes the item stored at key. Returns nil, nil when absent.
func (r *ItemRepository) readItem(tx *badger.Txn, key []byte) (*core.Item, error) {
	entry, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var item *core.Item
	err = entry.Value(func(val []byte) error {
		var unmarshalErr error
		item, unmarshalErr = storage.UnmarshalItem(val)
		return unmarshalErr
	})
	return item, err
}
