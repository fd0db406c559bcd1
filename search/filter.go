package search

import (
	"slices"
	"strings"

	"github.com/poiesic/toolshelf/core"
)

// predicate reports whether an item satisfies one condition field.
type predicate func(item *core.Item) bool

// Filter returns the items matching conditions, in their original order.
//
// Only the fields present in conditions produce predicates. With AND an item
// must satisfy all of them, with OR at least one. The fold starts from the
// operator's identity, so AND without fields keeps every item and OR without
// fields keeps none. Malformed conditions are rejected with
// core.ErrMalformedConditions before any item is inspected. Nil items are skipped.
func Filter(items []*core.Item, conditions *core.AdvancedSearchConditions) ([]*core.Item, error) {
	if err := core.ValidateConditions(conditions); err != nil {
		return nil, err
	}

	predicates := buildPredicates(conditions)
	combine := combinerFor(conditions.Operator)

	matched := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if combine(item, predicates) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// buildPredicates returns one predicate per present condition field.
// An empty keyword or an empty category set counts as absent.
func buildPredicates(conditions *core.AdvancedSearchConditions) []predicate {
	predicates := make([]predicate, 0, 4)

	if conditions.Keyword != "" {
		keyword := strings.ToLower(conditions.Keyword)
		predicates = append(predicates, func(item *core.Item) bool {
			return strings.Contains(strings.ToLower(item.Name), keyword)
		})
	}

	if len(conditions.Categories) > 0 {
		categories := slices.Clone(conditions.Categories)
		predicates = append(predicates, func(item *core.Item) bool {
			return slices.Contains(categories, item.Category)
		})
	}

	if r := conditions.RatingRange; r != nil {
		lo, hi := r.Min, r.Max
		predicates = append(predicates, func(item *core.Item) bool {
			return item.Rating >= lo && item.Rating <= hi
		})
	}

	if d := conditions.DateRange; d != nil {
		start, end := d.Start, d.End
		predicates = append(predicates, func(item *core.Item) bool {
			return !item.CreatedAt.Before(start) && !item.CreatedAt.After(end)
		})
	}

	return predicates
}

// combinerFor folds predicates with the operator, seeded with its identity element.
func combinerFor(op core.Operator) func(*core.Item, []predicate) bool {
	if op == core.OperatorOr {
		return func(item *core.Item, predicates []predicate) bool {
			matches := false
			for _, p := range predicates {
				matches = matches || p(item)
			}
			return matches
		}
	}
	return func(item *core.Item, predicates []predicate) bool {
		matches := true
		for _, p := range predicates {
			matches = matches && p(item)
		}
		return matches
	}
}
