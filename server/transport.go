package server

import (
	"time"

	"github.com/poiesic/toolshelf/core"
	"github.com/poiesic/toolshelf/search"
)

// FilterRequest is the body of POST /api/v1/items/filter.
type FilterRequest struct {
	Operator    string              `json:"operator" validate:"required,oneof=AND OR"`
	Keyword     string              `json:"keyword" validate:"max=200"`
	Categories  []string            `json:"categories" validate:"omitempty,max=6,dive,oneof=text image video audio code other"`
	RatingRange *RatingRangeRequest `json:"ratingRange"`
	DateRange   *DateRangeRequest   `json:"dateRange"`
}

// RatingRangeRequest bounds item ratings, inclusive.
type RatingRangeRequest struct {
	Min int `json:"min" validate:"min=1,max=5"`
	Max int `json:"max" validate:"min=1,max=5"`
}

// DateRangeRequest bounds item creation times, inclusive. Times are RFC 3339.
type DateRangeRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SearchRequest is the body of POST /api/v1/items/search.
type SearchRequest struct {
	Query string `json:"query" validate:"required,max=1000"`
}

// ItemResponse is the wire form of a catalog item.
type ItemResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Rating      int        `json:"rating"`
	CreatedAt   time.Time  `json:"createdAt"`
	UsageDate   *time.Time `json:"usageDate,omitempty"`
	Description string     `json:"description,omitempty"`
}

// ItemListResponse wraps a list of items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// ScoredItemResponse is an item with its relevance score.
type ScoredItemResponse struct {
	Item           ItemResponse `json:"item"`
	RelevanceScore int          `json:"relevanceScore"`
}

// IntentResponse is the wire form of the intent a search was scored against.
type IntentResponse struct {
	Keywords  []string `json:"keywords"`
	Category  *string  `json:"category"`
	MinRating *int     `json:"minRating"`
	DateRange *string  `json:"dateRange"`
}

// SearchResponse is the body returned by POST /api/v1/items/search.
type SearchResponse struct {
	Results      []ScoredItemResponse `json:"results"`
	Intent       IntentResponse       `json:"intent"`
	UsedFallback bool                 `json:"usedFallback"`
}

// toConditions converts a validated request into search conditions.
func (r *FilterRequest) toConditions() *core.AdvancedSearchConditions {
	cond := &core.AdvancedSearchConditions{
		Operator: core.Operator(r.Operator),
		Keyword:  r.Keyword,
	}
	for _, c := range r.Categories {
		cond.Categories = append(cond.Categories, core.Category(c))
	}
	if r.RatingRange != nil {
		cond.RatingRange = &core.RatingRange{Min: r.RatingRange.Min, Max: r.RatingRange.Max}
	}
	if r.DateRange != nil {
		cond.DateRange = &core.DateRange{Start: r.DateRange.Start, End: r.DateRange.End}
	}
	return cond
}

func toItemResponse(item *core.Item) ItemResponse {
	resp := ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Category:    string(item.Category),
		Rating:      item.Rating,
		CreatedAt:   item.CreatedAt,
		Description: item.Description,
	}
	if !item.UsageDate.IsZero() {
		used := item.UsageDate
		resp.UsageDate = &used
	}
	return resp
}

func toItemListResponse(items []*core.Item) ItemListResponse {
	resp := ItemListResponse{
		Items: make([]ItemResponse, 0, len(items)),
		Total: len(items),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	return resp
}

func toSearchResponse(outcome *search.Outcome) SearchResponse {
	resp := SearchResponse{
		Results:      make([]ScoredItemResponse, 0, len(outcome.Results)),
		Intent:       toIntentResponse(outcome.Intent),
		UsedFallback: outcome.UsedFallback,
	}
	for _, r := range outcome.Results {
		resp.Results = append(resp.Results, ScoredItemResponse{
			Item:           toItemResponse(r.Item),
			RelevanceScore: r.RelevanceScore,
		})
	}
	return resp
}

func toIntentResponse(intent *core.SearchIntent) IntentResponse {
	resp := IntentResponse{Keywords: []string{}}
	if intent == nil {
		return resp
	}
	if intent.Keywords != nil {
		resp.Keywords = intent.Keywords
	}
	if intent.Category != "" {
		category := string(intent.Category)
		resp.Category = &category
	}
	if intent.MinRating > 0 {
		minRating := intent.MinRating
		resp.MinRating = &minRating
	}
	if intent.DateRange != "" {
		bucket := string(intent.DateRange)
		resp.DateRange = &bucket
	}
	return resp
}
