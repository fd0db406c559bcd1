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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidItem indicates an Item failed validation.
	ErrInvalidItem = errors.New("invalid item")

	// ErrEmptyItemID indicates the item ID is empty.
	ErrEmptyItemID = errors.New("item id cannot be empty")

	// ErrEmptyItemName indicates the item Name is empty.
	ErrEmptyItemName = errors.New("item name cannot be empty")

	// ErrInvalidCategory indicates an unknown Category value.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidRating indicates a rating outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrMalformedConditions indicates AdvancedSearchConditions cannot be evaluated.
	ErrMalformedConditions = errors.New("malformed search conditions")

	// ErrInvalidOperator indicates an operator other than AND or OR.
	ErrInvalidOperator = errors.New("operator must be AND or OR")

	// ErrInvalidRatingRange indicates min > max or a bound outside 1-5.
	ErrInvalidRatingRange = errors.New("invalid rating range")

	// ErrInvalidDateRange indicates start is after end.
	ErrInvalidDateRange = errors.New("date range start is after end")

	// ErrInvalidIntent indicates a SearchIntent failed validation.
	ErrInvalidIntent = errors.New("invalid search intent")

	// ErrInvalidDateBucket indicates an unknown DateBucket value.
	ErrInvalidDateBucket = errors.New("invalid date bucket")
)
