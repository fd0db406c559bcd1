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
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Category classifies what kind of output an AI tool produces.
type Category string

const (
	CategoryText  Category = "text"
	CategoryImage Category = "image"
	CategoryVideo Category = "video"
	CategoryAudio Category = "audio"
	CategoryCode  Category = "code"
	CategoryOther Category = "other"
)

// Categories lists every valid Category in display order.
var Categories = []Category{
	CategoryText,
	CategoryImage,
	CategoryVideo,
	CategoryAudio,
	CategoryCode,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const (
	// MinRating is the lowest rating an item can carry.
	MinRating = 1
	// MaxRating is the highest rating an item can carry.
	MaxRating = 5
)

// Item is a catalog entry for a single AI tool.
// Search code treats items as read-only snapshots.
type Item struct {
	ID          string
	Name        string
	Category    Category
	Rating      int
	CreatedAt   time.Time // When the tool was added to the catalog
	UsageDate   time.Time // When the tool was last used
	Description string    // Optional free text
}

// DateBucket is a relative time window used by search intents.
type DateBucket string

const (
	DateBucketRecent    DateBucket = "recent"
	DateBucketLastWeek  DateBucket = "last_week"
	DateBucketLastMonth DateBucket = "last_month"
	DateBucketLastYear  DateBucket = "last_year"
)

// DateBuckets lists every valid DateBucket.
var DateBuckets = []DateBucket{
	DateBucketRecent,
	DateBucketLastWeek,
	DateBucketLastMonth,
	DateBucketLastYear,
}

// Valid reports whether b is one of the known buckets.
func (b DateBucket) Valid() bool {
	_, ok := b.MaxDays()
	return ok
}

// MaxDays returns the widest age, in whole days, that falls inside the bucket.
func (b DateBucket) MaxDays() (int, bool) {
	switch b {
	case DateBucketRecent, DateBucketLastWeek:
		return 7, true
	case DateBucketLastMonth:
		return 30, true
	case DateBucketLastYear:
		return 365, true
	default:
		return 0, false
	}
}

// SearchIntent is the structured form of a free-text query.
// Zero values mean "absent": empty Category, MinRating 0 and empty DateRange
// contribute nothing to scoring.
type SearchIntent struct {
	Keywords  []string
	Category  Category
	MinRating int
	DateRange DateBucket
}

// Operator combines the predicates of AdvancedSearchConditions.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

// RatingRange is an inclusive rating window.
type RatingRange struct {
	Min int
	Max int
}

// DateRange is an inclusive creation-time window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// AdvancedSearchConditions describes a structured multi-field filter.
// Only Operator is required; an unset field is skipped during evaluation.
type AdvancedSearchConditions struct {
	Operator    Operator
	Keyword     string     // Case-insensitive substring of the item name
	Categories  []Category // Item category must be one of these
	RatingRange *RatingRange
	DateRange   *DateRange
}

// ScoredResult pairs an item with its relevance to a SearchIntent.
type ScoredResult struct {
	Item           *Item
	RelevanceScore int // Always within [0, 100]
}
