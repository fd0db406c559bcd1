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


package openai

import (
	"log/slog"

	"github.com/poiesic/toolshelf/ai"
)

// Provider implements ai.AIProvider using OpenAI-compatible services.
type Provider struct {
	config    *ai.Config
	extractor ai.IntentExtractor
	logger    *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use. A positive CacheSize
// wraps the extractor in an ai.CachingExtractor.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	extractor, err := newIntentExtractor(config)
	if err != nil {
		return nil, err
	}

	var service ai.IntentExtractor = extractor
	if config.CacheSize > 0 {
		service, err = ai.NewCachingExtractor(extractor, config.CacheSize)
		if err != nil {
			return nil, err
		}
	}

	return &Provider{
		config:    config,
		extractor: service,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// IntentExtractor returns the query understanding service.
func (p *Provider) IntentExtractor() ai.IntentExtractor {
	return p.extractor
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying client doesn't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
