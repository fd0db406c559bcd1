package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/toolshelf/core"
)

// importItem is one element of the JSON array accepted by the import command.
type importItem struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Rating      int        `json:"rating"`
	CreatedAt   *time.Time `json:"createdAt"`
	UsageDate   *time.Time `json:"usageDate"`
	Description string     `json:"description"`
}

// readItems decodes a JSON array of items. Items without an id get a random
// one; items without createdAt are stamped with now.
func readItems(r io.Reader, now time.Time) ([]*core.Item, error) {
	var raw []importItem
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	items := make([]*core.Item, 0, len(raw))
	for i, in := range raw {
		item := &core.Item{
			ID:          in.ID,
			Name:        in.Name,
			Category:    core.Category(in.Category),
			Rating:      in.Rating,
			CreatedAt:   now,
			Description: in.Description,
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if in.CreatedAt != nil {
			item.CreatedAt = *in.CreatedAt
		}
		if in.UsageDate != nil {
			item.UsageDate = *in.UsageDate
		}
		if err := core.ValidateItem(item); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func printItems(w io.Writer, items []*core.Item) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tRATING\tCREATED")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			item.ID, item.Name, item.Category, item.Rating, item.CreatedAt.Format(time.DateOnly))
	}
	fmt.Fprintf(tw, "\n%d items\n", len(items))
	return tw.Flush()
}

func printResults(w io.Writer, results []*core.ScoredResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No matching items")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tID\tNAME\tCATEGORY\tRATING")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n",
			r.RelevanceScore, r.Item.ID, r.Item.Name, r.Item.Category, r.Item.Rating)
	}
	return tw.Flush()
}
