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


package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/toolshelf/core"
	"github.com/poiesic/toolshelf/storage"
)

// Config holds configuration for an import run.
type Config struct {
	// BatchSize is the number of items written per storage transaction
	BatchSize int

	// ReportInterval is how often to report progress (number of items)
	ReportInterval int

	// Atomic runs every batch in one repository transaction, so a failure
	// stores nothing. Very large imports may exceed the store's transaction limit.
	Atomic bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      500,
		ReportInterval: 500,
	}
}

// Validate checks that both settings are positive.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be greater than 0", ErrInvalidConfig)
	}
	if c.ReportInterval <= 0 {
		return fmt.Errorf("%w: report interval must be greater than 0", ErrInvalidConfig)
	}
	return nil
}

// Importer writes items to a repository in batches.
type Importer struct {
	repo     storage.ItemRepository
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// New creates an importer writing to repo. Progress goes to progress,
// which may be nil. A nil config uses DefaultConfig.
func New(repo storage.ItemRepository, config *Config, progress io.Writer) (*Importer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Importer{
		repo:     repo,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "importer"),
	}, nil
}

// Run stores items and returns how many were written. Without Atomic a
// failure after the first batch leaves the earlier batches stored and is
// reported as ErrPartialImport; with Atomic nothing is stored.
func (im *Importer) Run(ctx context.Context, items []*core.Item) (int, error) {
	for i, item := range items {
		if err := core.ValidateItem(item); err != nil {
			return 0, fmt.Errorf("item %d: %w", i, err)
		}
	}

	total := len(items)
	if total == 0 {
		fmt.Fprintln(im.progress, "Nothing to import (0 items)")
		return 0, nil
	}

	fmt.Fprintf(im.progress, "Importing %d items (batch size: %d)\n", total, im.config.BatchSize)

	tracker := NewProgressTracker(im.progress, total, im.config.ReportInterval)
	tracker.Start()

	if im.config.Atomic {
		err := im.repo.WithTransaction(ctx, func(ctx context.Context) error {
			return im.storeBatches(ctx, items, tracker)
		})
		if err != nil {
			im.logger.Warn("import rolled back", "err", err)
			return 0, err
		}
	} else if err := im.storeBatches(ctx, items, tracker); err != nil {
		return tracker.Current(), im.partial(tracker.Current(), err)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(im.progress, "Import complete. Stored %d items in %v\n",
		total, elapsed.Round(time.Millisecond))

	return total, nil
}

func (im *Importer) storeBatches(ctx context.Context, items []*core.Item, tracker *ProgressTracker) error {
	for start := 0; start < len(items); start += im.config.BatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+im.config.BatchSize, len(items))
		if _, err := im.repo.AddItems(ctx, items[start:end]...); err != nil {
			return err
		}

		tracker.Add(end - start)
		im.logger.Debug("stored batch", "from", start, "to", end)
	}
	return nil
}

func (im *Importer) partial(stored int, err error) error {
	if stored == 0 {
		return err
	}
	im.logger.Warn("import interrupted", "stored", stored, "err", err)
	return fmt.Errorf("%w after %d items: %w", ErrPartialImport, stored, err)
}
