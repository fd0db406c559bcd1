package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/toolshelf/core"
	"github.com/poiesic/toolshelf/storage"
	"github.com/poiesic/toolshelf/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) storage.ItemRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func makeItems(n int) []*core.Item {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := make([]*core.Item, n)
	for i := range items {
		items[i] = &core.Item{
			ID:        fmt.Sprintf("tool-%03d", i),
			Name:      fmt.Sprintf("Tool %d", i),
			Category:  core.CategoryText,
			Rating:    i%5 + 1,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return items
}

// failingRepository fails AddItems after a number of successful calls.
type failingRepository struct {
	storage.ItemRepository
	okCalls int
	calls   int
}

func (f *failingRepository) AddItems(ctx context.Context, items ...*core.Item) ([]*core.Item, error) {
	f.calls++
	if f.calls > f.okCalls {
		return nil, errors.New("disk full")
	}
	return f.ItemRepository.AddItems(ctx, items...)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.ErrorIs(t, (&Config{BatchSize: 0, ReportInterval: 1}).Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, (&Config{BatchSize: 1, ReportInterval: -1}).Validate(), ErrInvalidConfig)

	_, err := New(newRepository(t), &Config{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	var out bytes.Buffer
	im, err := New(repo, &Config{BatchSize: 7, ReportInterval: 10}, &out)
	require.NoError(t, err)

	n, err := im.Run(ctx, makeItems(25))
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	count, err := repo.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, count)

	assert.Contains(t, out.String(), "Importing 25 items (batch size: 7)")
	assert.Contains(t, out.String(), "25/25")
	assert.Contains(t, out.String(), "Import complete")
}

func TestRun_Empty(t *testing.T) {
	var out bytes.Buffer
	im, err := New(newRepository(t), nil, &out)
	require.NoError(t, err)

	n, err := im.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, out.String(), "0 items")
}

func TestRun_ValidatesBeforeWriting(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	items := makeItems(10)
	items[8].Rating = 9

	im, err := New(repo, &Config{BatchSize: 2, ReportInterval: 2}, nil)
	require.NoError(t, err)

	n, err := im.Run(ctx, items)
	require.ErrorIs(t, err, core.ErrInvalidItem)
	assert.Contains(t, err.Error(), "item 8")
	assert.Zero(t, n)

	count, err := repo.CountItems(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRun_StorageFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("first batch", func(t *testing.T) {
		repo := &failingRepository{ItemRepository: newRepository(t)}
		im, err := New(repo, &Config{BatchSize: 5, ReportInterval: 5}, nil)
		require.NoError(t, err)

		n, err := im.Run(ctx, makeItems(10))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrPartialImport)
		assert.Zero(t, n)
	})

	t.Run("later batch", func(t *testing.T) {
		repo := &failingRepository{ItemRepository: newRepository(t), okCalls: 1}
		im, err := New(repo, &Config{BatchSize: 5, ReportInterval: 5}, nil)
		require.NoError(t, err)

		n, err := im.Run(ctx, makeItems(12))
		require.ErrorIs(t, err, ErrPartialImport)
		assert.Equal(t, 5, n)

		count, err := repo.CountItems(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, count)
	})
}

func TestRun_Atomic(t *testing.T) {
	ctx := context.Background()

	t.Run("failure rolls back earlier batches", func(t *testing.T) {
		repo := &failingRepository{ItemRepository: newRepository(t), okCalls: 2}
		im, err := New(repo, &Config{BatchSize: 5, ReportInterval: 5, Atomic: true}, nil)
		require.NoError(t, err)

		n, err := im.Run(ctx, makeItems(12))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrPartialImport)
		assert.Zero(t, n)
		assert.Equal(t, 3, repo.calls)

		count, err := repo.CountItems(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("success stores every batch", func(t *testing.T) {
		repo := newRepository(t)
		im, err := New(repo, &Config{BatchSize: 4, ReportInterval: 4, Atomic: true}, nil)
		require.NoError(t, err)

		n, err := im.Run(ctx, makeItems(10))
		require.NoError(t, err)
		assert.Equal(t, 10, n)

		count, err := repo.CountItems(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10, count)
	})
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	im, err := New(newRepository(t), nil, nil)
	require.NoError(t, err)

	n, err := im.Run(ctx, makeItems(3))
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}
