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

import "github.com/poiesic/toolshelf/ai"

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	extractor *MockIntentExtractor
	closed    bool
}

// NewMockProvider creates a new mock provider with a default mock extractor.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockExtractor() to access the concrete type for test assertions.
func NewMockProvider() ai.AIProvider {
	return NewMockProviderWithExtractor(NewMockIntentExtractor())
}

// NewMockProviderWithExtractor creates a mock provider around a custom mock extractor.
func NewMockProviderWithExtractor(extractor *MockIntentExtractor) ai.AIProvider {
	return &MockProvider{extractor: extractor}
}

// IntentExtractor returns the mock intent extractor.
func (p *MockProvider) IntentExtractor() ai.IntentExtractor {
	return p.extractor
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockIntentExtractor {
	return p.extractor
}
