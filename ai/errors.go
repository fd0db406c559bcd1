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


package ai

import "errors"

var (
	// ErrExternalService is the single failure mode of an IntentExtractor.
	ErrExternalService = errors.New("external language service failed")

	// ErrSchemaViolation indicates the service answered with JSON that does not
	// describe a SearchIntent. It is always wrapped together with ErrExternalService.
	ErrSchemaViolation = errors.New("response does not match intent schema")

	// ErrEmptyResponse indicates the service returned no choices.
	ErrEmptyResponse = errors.New("empty response from language service")

	// ErrExtractorRequired is returned when a decorator is built without an inner extractor.
	ErrExtractorRequired = errors.New("intent extractor required")
)
