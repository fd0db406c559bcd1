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


// Package ai provides abstractions for AI services used in Toolshelf.
//
// The search pipeline depends on one capability: turning a free-text query
// into a structured core.SearchIntent. That capability is expressed as the
// IntentExtractor interface so the pipeline can run against a live
// language model, a cached wrapper, or a deterministic test double.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible chat APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Error Contract
//
// Every extractor failure (transport, non-success status, unparsable body,
// schema violation, timeout) is reported as an error wrapping
// ErrExternalService. Callers test for it with errors.Is and never receive a
// partially populated intent alongside an error.
//
// # Constructor Return Type Pattern
//
// Public production constructors (openai.NewProvider, openai.NewIntentExtractor)
// return INTERFACE types. Test utility constructors (mock.NewMockIntentExtractor)
// return CONCRETE types so tests can inject behavior and read call counts.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithClassifierModel("qwen2.5:3b"))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	intent, err := provider.IntentExtractor().ExtractIntent(ctx, "画像生成 rated 4+")
//	if errors.Is(err, ai.ErrExternalService) {
//	    // degrade to offline extraction
//	}
package ai
