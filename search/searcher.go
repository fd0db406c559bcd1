package search

import (
	"cmp"
	"context"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/toolshelf/ai"
	"github.com/poiesic/toolshelf/core"
)

// DefaultParallelThreshold is the candidate count at which scoring moves onto the worker pool.
const DefaultParallelThreshold = 4096

// Searcher ranks catalog items against free-text queries.
type Searcher struct {
	extractor         ai.IntentExtractor
	pool              *ants.Pool
	parallelThreshold int
	now               func() time.Time
	logger            *slog.Logger
}

// Outcome is the full result of a search.
type Outcome struct {
	Intent       *core.SearchIntent   // The intent the results were scored against
	UsedFallback bool                 // True when the extractor failed and the query was split on whitespace
	Results      []*core.ScoredResult // Non-zero scores, highest first, ties in input order
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithClock sets the time source used for date bucket scoring.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) error {
		if now == nil {
			now = time.Now
		}
		s.now = now
		return nil
	}
}

// WithPoolSize sets the worker pool size used to score large candidate sets.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithParallelThreshold sets the candidate count at which scoring is split
// across the worker pool. Smaller sets are scored on the calling goroutine.
func WithParallelThreshold(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			n = 1
		}
		s.parallelThreshold = n
		return nil
	}
}

// NewSearcher creates a new searcher around an intent extractor.
// Call Release when done to free the worker pool.
func NewSearcher(extractor ai.IntentExtractor, opts ...Option) (*Searcher, error) {
	if extractor == nil {
		return nil, ErrIntentExtractorRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		extractor:         extractor,
		pool:              pool,
		parallelThreshold: DefaultParallelThreshold,
		now:               time.Now,
		logger:            slog.Default().With("component", "searcher"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	return s, nil
}

// Release frees the worker pool. It is safe to call more than once, and
// searches still running or started afterwards score on the calling goroutine.
func (s *Searcher) Release() {
	s.pool.Release()
}

// Search ranks items against query.
// It fails only with ErrInvalidInput, for an empty or whitespace-only query.
func (s *Searcher) Search(ctx context.Context, query string, items []*core.Item) ([]*core.ScoredResult, error) {
	outcome, err := s.SearchWithMonitor(ctx, query, items, nil)
	if err != nil {
		return nil, err
	}
	return outcome.Results, nil
}

// SearchWithDetails ranks items against query and reports the intent used
// and whether the fallback extractor produced it.
func (s *Searcher) SearchWithDetails(ctx context.Context, query string, items []*core.Item) (*Outcome, error) {
	return s.SearchWithMonitor(ctx, query, items, nil)
}

// SearchWithMonitor ranks items against query with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, items []*core.Item, monitor SearchMonitor) (*Outcome, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidInput
	}

	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	intent, usedFallback := s.resolveIntent(ctx, query)
	monitor.AfterIntentExtraction(intent, usedFallback)

	scores := s.scoreAll(items, intent, s.now())

	results := make([]*core.ScoredResult, 0, len(items))
	for i, item := range items {
		if scores[i] == 0 {
			continue
		}
		results = append(results, &core.ScoredResult{
			Item:           item,
			RelevanceScore: scores[i],
		})
	}

	// Highest first; stable so equal scores keep input order
	slices.SortStableFunc(results, func(a, b *core.ScoredResult) int {
		return cmp.Compare(b.RelevanceScore, a.RelevanceScore)
	})

	s.logger.Debug("search complete",
		"candidates", len(items),
		"results", len(results),
		"usedFallback", usedFallback)
	monitor.Finish(results)

	return &Outcome{
		Intent:       intent,
		UsedFallback: usedFallback,
		Results:      results,
	}, nil
}

// resolveIntent asks the extractor for an intent and substitutes the
// whitespace fallback when it fails or returns an unusable intent.
func (s *Searcher) resolveIntent(ctx context.Context, query string) (*core.SearchIntent, bool) {
	intent, err := s.extractor.ExtractIntent(ctx, query)
	if err == nil {
		err = core.ValidateIntent(intent)
	}
	if err == nil {
		return intent, false
	}

	s.logger.Warn("intent extraction failed, falling back to keyword search", "err", err)
	return ExtractFallback(query), true
}

// scoreAll scores every item. Scores are written by index so the result
// lines up with items regardless of how the work was split.
func (s *Searcher) scoreAll(items []*core.Item, intent *core.SearchIntent, now time.Time) []int {
	scores := make([]int, len(items))

	if len(items) < s.parallelThreshold {
		scoreRange(scores, items, intent, now, 0, len(items))
		return scores
	}

	workers := max(s.pool.Cap(), 1)
	chunk := (len(items) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(items); start += chunk {
		end := min(start+chunk, len(items))
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			scoreRange(scores, items, intent, now, start, end)
		})
		if err != nil {
			s.logger.Debug("worker pool unavailable, scoring inline", "err", err)
			wg.Done()
			scoreRange(scores, items, intent, now, start, end)
		}
	}
	wg.Wait()

	return scores
}

func scoreRange(scores []int, items []*core.Item, intent *core.SearchIntent, now time.Time, start, end int) {
	for i := start; i < end; i++ {
		scores[i] = Score(items[i], intent, now)
	}
}
