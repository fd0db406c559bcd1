package search

import (
	"strings"
	"time"

	"github.com/poiesic/toolshelf/core"
)

// Score weights. The keyword subtotal is capped before the other components are added.
const (
	MaxScore = 100

	exactNameScore     = 20
	nameSubstringScore = 15
	textSubstringScore = 10
	keywordScoreCap    = 60

	categoryScore = 20
	ratingScore   = 10
	dateScore     = 10
)

// Score rates how well item matches intent, from 0 to MaxScore.
//
// Each keyword adds 20 for an exact name match, else 15 when the name
// contains it, else 10 when the name directly followed by the description
// (no separator) contains it.
// Matching ignores case. The keyword subtotal is capped at 60. A matching
// category adds 20, a rating at or above MinRating adds 10, and a UsageDate
// inside the DateRange window relative to now adds 10.
func Score(item *core.Item, intent *core.SearchIntent, now time.Time) int {
	if item == nil || intent == nil {
		return 0
	}

	score := keywordScore(item, intent.Keywords)

	if intent.Category != "" && intent.Category == item.Category {
		score += categoryScore
	}

	if intent.MinRating > 0 && item.Rating >= intent.MinRating {
		score += ratingScore
	}

	if intent.DateRange != "" && withinBucket(item.UsageDate, intent.DateRange, now) {
		score += dateScore
	}

	return min(max(score, 0), MaxScore)
}

func keywordScore(item *core.Item, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}

	name := strings.ToLower(item.Name)
	text := name + strings.ToLower(item.Description)

	subtotal := 0
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		kw = strings.ToLower(kw)
		switch {
		case kw == name:
			subtotal += exactNameScore
		case strings.Contains(name, kw):
			subtotal += nameSubstringScore
		case strings.Contains(text, kw):
			subtotal += textSubstringScore
		}
	}
	return min(subtotal, keywordScoreCap)
}

// withinBucket reports whether used falls inside the bucket's day window.
// Elapsed days are whole days, rounded down. Usage in the future counts as inside.
func withinBucket(used time.Time, bucket core.DateBucket, now time.Time) bool {
	maxDays, ok := bucket.MaxDays()
	if !ok || used.IsZero() {
		return false
	}
	days := int(now.Sub(used).Hours() / 24)
	return days <= maxDays
}
