package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/toolshelf"
	"github.com/poiesic/toolshelf/ai"
	"github.com/poiesic/toolshelf/core"
	"github.com/poiesic/toolshelf/importer"
	"github.com/poiesic/toolshelf/server"
	"github.com/urfave/cli/v2"
)

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	items, err := readItemsFile(c.String("file"), time.Now())
	if err != nil {
		return err
	}

	catalog, err := openCatalog(c, nil)
	if err != nil {
		return err
	}
	defer catalog.Close()

	im, err := importer.New(catalog.ItemRepository(), &importer.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		Atomic:         c.Bool("atomic"),
	}, c.App.ErrWriter)
	if err != nil {
		return err
	}

	stored, err := im.Run(ctx, items)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Imported %d items\n", stored)
	return nil
}

func listCommand(c *cli.Context) error {
	catalog, err := openCatalog(c, nil)
	if err != nil {
		return err
	}
	defer catalog.Close()

	items, err := catalog.ItemRepository().ListItems(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}
	return printItems(c.App.Writer, items)
}

func filterCommand(c *cli.Context) error {
	conditions, err := conditionsFromFlags(c)
	if err != nil {
		return err
	}

	catalog, err := openCatalog(c, nil)
	if err != nil {
		return err
	}
	defer catalog.Close()

	items, err := catalog.Filter(context.Background(), conditions)
	if err != nil {
		return fmt.Errorf("filter failed: %w", err)
	}
	return printItems(c.App.Writer, items)
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("a search query is required")
	}

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	catalog, err := openCatalog(c, aiConfig)
	if err != nil {
		return err
	}
	defer catalog.Close()

	outcome, err := catalog.SearchWithDetails(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	w := c.App.Writer
	if outcome.UsedFallback {
		fmt.Fprintln(w, "Intent service unavailable, matched on query words only")
	}
	fmt.Fprintf(w, "Intent: %s\n\n", describeIntent(outcome.Intent))
	return printResults(w, outcome.Results)
}

func serveCommand(c *cli.Context) error {
	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	catalog, err := openCatalog(c, aiConfig)
	if err != nil {
		return err
	}
	defer catalog.Close()

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(catalog, server.WithCORS(c.StringSlice("cors-origin")...))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, c.String("addr"))
}

// openCatalog opens the catalog named by --db. A nil aiConfig uses the defaults.
func openCatalog(c *cli.Context, aiConfig *ai.Config) (*toolshelf.Catalog, error) {
	dbPath := c.String("db")
	if dbPath == "" {
		return nil, errors.New("database path is required")
	}

	catalog, err := toolshelf.NewCatalog(dbPath, toolshelf.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return catalog, nil
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	cfg := ai.NewConfig(
		ai.WithClassifierHost(c.String("classifier-host")),
		ai.WithClassifierModel(c.String("classifier-model")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithTimeout(c.Duration("timeout")),
		ai.WithCacheSize(c.Int("cache-size")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return cfg, nil
}

func conditionsFromFlags(c *cli.Context) (*core.AdvancedSearchConditions, error) {
	conditions := &core.AdvancedSearchConditions{
		Operator: core.Operator(strings.ToUpper(c.String("operator"))),
		Keyword:  c.String("keyword"),
	}

	for _, category := range c.StringSlice("category") {
		conditions.Categories = append(conditions.Categories, core.Category(strings.ToLower(category)))
	}

	if c.IsSet("min-rating") || c.IsSet("max-rating") {
		conditions.RatingRange = &core.RatingRange{Min: 1, Max: 5}
		if c.IsSet("min-rating") {
			conditions.RatingRange.Min = c.Int("min-rating")
		}
		if c.IsSet("max-rating") {
			conditions.RatingRange.Max = c.Int("max-rating")
		}
	}

	from, to := c.String("from"), c.String("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			return nil, errors.New("--from and --to must be given together")
		}
		start, err := parseTime(from, false)
		if err != nil {
			return nil, err
		}
		end, err := parseTime(to, true)
		if err != nil {
			return nil, err
		}
		conditions.DateRange = &core.DateRange{Start: start, End: end}
	}

	if err := core.ValidateConditions(conditions); err != nil {
		return nil, err
	}
	return conditions, nil
}

// parseTime accepts RFC 3339 or a bare date. A bare date used as an upper
// bound covers the whole day.
func parseTime(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use RFC 3339 or YYYY-MM-DD", value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Microsecond)
	}
	return t, nil
}

func describeIntent(intent *core.SearchIntent) string {
	if intent == nil {
		return "(none)"
	}
	parts := []string{fmt.Sprintf("keywords=%q", intent.Keywords)}
	if intent.Category != "" {
		parts = append(parts, "category="+string(intent.Category))
	}
	if intent.MinRating > 0 {
		parts = append(parts, fmt.Sprintf("minRating=%d", intent.MinRating))
	}
	if intent.DateRange != "" {
		parts = append(parts, "dateRange="+string(intent.DateRange))
	}
	return strings.Join(parts, " ")
}

func readItemsFile(path string, now time.Time) ([]*core.Item, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()
		r = f
	}
	return readItems(r, now)
}
