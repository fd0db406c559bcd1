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


package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/toolshelf/ai"
	"github.com/poiesic/toolshelf/core"
)

// MockIntentExtractor is a test double for ai.IntentExtractor.
// It allows custom behavior injection via function fields.
type MockIntentExtractor struct {
	// ExtractIntentFunc is called by ExtractIntent if set.
	// If nil, the query is split on whitespace into keywords.
	ExtractIntentFunc func(ctx context.Context, query string) (*core.SearchIntent, error)

	mu        sync.Mutex
	callCount int
	queries   []string
}

var _ ai.IntentExtractor = (*MockIntentExtractor)(nil)

// NewMockIntentExtractor creates a mock extractor with default keyword splitting.
// Returns the concrete type so tests can read CallCount and Queries.
func NewMockIntentExtractor() *MockIntentExtractor {
	return &MockIntentExtractor{}
}

// NewFailingIntentExtractor returns a mock whose every call fails with err.
func NewFailingIntentExtractor(err error) *MockIntentExtractor {
	return NewMockIntentExtractor().WithExtractIntentFunc(func(context.Context, string) (*core.SearchIntent, error) {
		return nil, err
	})
}

// WithExtractIntentFunc sets the custom extraction behavior and returns the mock.
func (m *MockIntentExtractor) WithExtractIntentFunc(fn func(ctx context.Context, query string) (*core.SearchIntent, error)) *MockIntentExtractor {
	m.ExtractIntentFunc = fn
	return m
}

// ExtractIntent records the call and returns the configured intent.
func (m *MockIntentExtractor) ExtractIntent(ctx context.Context, query string) (*core.SearchIntent, error) {
	m.mu.Lock()
	m.callCount++
	m.queries = append(m.queries, query)
	fn := m.ExtractIntentFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query)
	}

	keywords := strings.Fields(query)
	if keywords == nil {
		keywords = []string{}
	}
	return &core.SearchIntent{Keywords: keywords}, nil
}

// CallCount returns the number of times ExtractIntent was called.
func (m *MockIntentExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Queries returns the queries received so far, in call order.
func (m *MockIntentExtractor) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// Reset clears the call history and custom functions.
func (m *MockIntentExtractor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.queries = nil
	m.ExtractIntentFunc = nil
}
