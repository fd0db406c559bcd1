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


// Package search implements filtering and relevance ranking over catalog items.
//
// Two entry points are provided:
//   - Filter evaluates AdvancedSearchConditions, combining the present
//     predicates with AND or OR, without any external call
//   - Searcher turns a free-text query into a SearchIntent through an
//     ai.IntentExtractor, scores every candidate with Score and returns the
//     non-zero results ranked by relevance
//
// When the extractor fails the Searcher substitutes ExtractFallback, which
// splits the query on whitespace, so a non-empty query always yields a
// ranked list.
package search
