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

import (
	"fmt"
	"strings"
)

// ValidateItem validates an Item according to domain rules.
//
// Validation rules:
//   - ID and Name must not be empty
//   - Category must be one of Categories
//   - Rating must be between MinRating and MaxRating
//
// NOT validated:
//   - Description (optional)
//   - CreatedAt and UsageDate (zero times are stored as-is)
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if strings.TrimSpace(item.ID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyItemID)
	}

	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyItemName)
	}

	if err := ValidateCategory(item.Category); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	if err := ValidateRating(item.Rating); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	return nil
}

// ValidateCategory validates that a Category has a known value.
func ValidateCategory(c Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
	return nil
}

// ValidateRating validates that a rating is within MinRating..MaxRating.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	return nil
}

// ValidateConditions checks that conditions can be evaluated.
// Every failure wraps ErrMalformedConditions.
func ValidateConditions(cond *AdvancedSearchConditions) error {
	if cond == nil {
		return fmt.Errorf("%w: conditions are nil", ErrMalformedConditions)
	}

	if cond.Operator != OperatorAnd && cond.Operator != OperatorOr {
		return fmt.Errorf("%w: %w: %q", ErrMalformedConditions, ErrInvalidOperator, cond.Operator)
	}

	for _, c := range cond.Categories {
		if err := ValidateCategory(c); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedConditions, err)
		}
	}

	if r := cond.RatingRange; r != nil {
		if ValidateRating(r.Min) != nil || ValidateRating(r.Max) != nil || r.Min > r.Max {
			return fmt.Errorf("%w: %w: min=%d max=%d", ErrMalformedConditions, ErrInvalidRatingRange, r.Min, r.Max)
		}
	}

	if d := cond.DateRange; d != nil && d.Start.After(d.End) {
		return fmt.Errorf("%w: %w", ErrMalformedConditions, ErrInvalidDateRange)
	}

	return nil
}

// NormalizeKeywords trims every keyword and drops the ones left empty.
// Order is preserved. Returns a non-nil slice.
func NormalizeKeywords(keywords []string) []string {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}
	return normalized
}

// ValidateIntent validates a SearchIntent produced by any extractor.
//
// Validation rules:
//   - Keywords must not contain empty or whitespace-only strings
//   - Category, when set, must be known
//   - MinRating must be 0 (absent) or between MinRating and MaxRating
//   - DateRange, when set, must be a known bucket
func ValidateIntent(intent *SearchIntent) error {
	if intent == nil {
		return fmt.Errorf("%w: intent is nil", ErrInvalidIntent)
	}

	for i, kw := range intent.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("%w: keyword %d is blank", ErrInvalidIntent, i)
		}
	}

	if intent.Category != "" {
		if err := ValidateCategory(intent.Category); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidIntent, err)
		}
	}

	if intent.MinRating != 0 {
		if err := ValidateRating(intent.MinRating); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidIntent, err)
		}
	}

	if intent.DateRange != "" && !intent.DateRange.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidIntent, ErrInvalidDateBucket, intent.DateRange)
	}

	return nil
}
