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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/toolshelf/ai"
	"github.com/poiesic/toolshelf/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// IntentExtractor implements ai.IntentExtractor using OpenAI-compatible chat APIs.
type IntentExtractor struct {
	client       llms.Model
	systemPrompt string
	timeout      time.Duration
	logger       *slog.Logger
}

var _ ai.IntentExtractor = (*IntentExtractor)(nil)

// newIntentExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newIntentExtractor(config *ai.Config) (*IntentExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return newIntentExtractorWithModel(client, config.Timeout), nil
}

func newIntentExtractorWithModel(client llms.Model, timeout time.Duration) *IntentExtractor {
	return &IntentExtractor{
		client:       client,
		systemPrompt: buildSystemPrompt(),
		timeout:      timeout,
		logger:       slog.Default().With("component", "openai-intent-extractor"),
	}
}

// NewIntentExtractor creates a new intent extractor using the provided configuration.
//
// Returns ai.IntentExtractor interface to enforce abstraction.
func NewIntentExtractor(config *ai.Config) (ai.IntentExtractor, error) {
	return newIntentExtractor(config)
}

// ExtractIntent asks the model for a structured intent. It makes exactly one
// request and never retries; timeouts, transport errors, empty replies and
// schema violations are all returned wrapped in ai.ErrExternalService.
func (e *IntentExtractor) ExtractIntent(ctx context.Context, query string) (*core.SearchIntent, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(e.systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		e.logger.Error("failed to generate content", "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrExternalService, err)
	}

	if response == nil || len(response.Choices) < 1 {
		e.logger.Debug("no choices returned from model")
		return nil, fmt.Errorf("%w: %w", ai.ErrExternalService, ai.ErrEmptyResponse)
	}

	intent, err := parseIntent(response.Choices[0].Content)
	if err != nil {
		e.logger.Warn("error parsing intent response",
			"response", response.Choices[0].Content,
			"err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrExternalService, err)
	}

	e.logger.Debug("extracted intent",
		"keywords", len(intent.Keywords),
		"category", intent.Category,
		"minRating", intent.MinRating,
		"dateRange", intent.DateRange)

	return intent, nil
}
