package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/toolshelf/core"
	"github.com/poiesic/toolshelf/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const sampleItems = `[
  {"id": "chatgpt", "name": "ChatGPT", "category": "text", "rating": 5,
   "createdAt": "2025-01-10T09:00:00Z", "description": "AI対話ツール"},
  {"id": "dalle", "name": "DALL-E", "category": "image", "rating": 4,
   "createdAt": "2025-02-10T09:00:00Z", "description": "画像生成AI"},
  {"name": "Sora", "category": "video", "rating": 5,
   "createdAt": "2025-03-10T09:00:00Z", "usageDate": "2025-03-12T09:00:00Z"}
]`

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"toolshelf"}, args...))
	return out.String(), err
}

func findFlag[T cli.Flag](t *testing.T, cmd *cli.Command, name string) T {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(T); ok && flag.Names()[0] == name {
			return f
		}
	}
	t.Fatalf("flag %q not found on %s", name, cmd.Name)
	var zero T
	return zero
}

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func writeItemsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSearchCommandFlags(t *testing.T) {
	app := newApp()
	search := findCommand(t, app, "search")

	t.Run("db is required", func(t *testing.T) {
		db := findFlag[*cli.StringFlag](t, search, "db")
		assert.True(t, db.Required)
		assert.Equal(t, []string{"TOOLSHELF_DB"}, db.EnvVars)
	})

	t.Run("classifier flags have defaults and env vars", func(t *testing.T) {
		host := findFlag[*cli.StringFlag](t, search, "classifier-host")
		assert.Equal(t, "http://localhost:11434/v1", host.Value)
		assert.Equal(t, []string{"TOOLSHELF_CLASSIFIER_HOST"}, host.EnvVars)

		model := findFlag[*cli.StringFlag](t, search, "classifier-model")
		assert.Equal(t, "qwen2.5:3b", model.Value)
		assert.Equal(t, []string{"TOOLSHELF_CLASSIFIER_MODEL"}, model.EnvVars)
	})

	t.Run("timeout defaults to five seconds", func(t *testing.T) {
		timeout := findFlag[*cli.DurationFlag](t, search, "timeout")
		assert.Equal(t, 5*time.Second, timeout.Value)
	})

	t.Run("cache is disabled by default", func(t *testing.T) {
		cache := findFlag[*cli.IntFlag](t, search, "cache-size")
		assert.Zero(t, cache.Value)
	})
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := runApp(t, "--log-level", "loud", "list", "--db", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestMissingDB(t *testing.T) {
	_, err := runApp(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}

func TestReadItems(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("fills missing id and createdAt", func(t *testing.T) {
		items, err := readItems(strings.NewReader(`[{"name":"Claude","category":"text","rating":5}]`), now)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.NotEmpty(t, items[0].ID)
		assert.Equal(t, now, items[0].CreatedAt)
		assert.True(t, items[0].UsageDate.IsZero())
	})

	t.Run("keeps given fields", func(t *testing.T) {
		items, err := readItems(strings.NewReader(sampleItems), now)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "chatgpt", items[0].ID)
		assert.Equal(t, core.CategoryImage, items[1].Category)
		assert.Equal(t, time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC), items[2].UsageDate.UTC())
	})

	t.Run("rejects invalid items", func(t *testing.T) {
		_, err := readItems(strings.NewReader(`[{"name":"X","category":"music","rating":3}]`), now)
		require.ErrorIs(t, err, core.ErrInvalidItem)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := readItems(strings.NewReader(`{"name":`), now)
		assert.Error(t, err)
	})
}

func TestParseTime(t *testing.T) {
	start, err := parseTime("2025-03-01", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)

	end, err := parseTime("2025-03-01", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 23, 59, 59, 999999000, time.UTC), end)

	exact, err := parseTime("2025-03-01T10:00:00Z", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), exact)

	_, err = parseTime("March 1st", false)
	assert.Error(t, err)
}

func TestImportListFilter(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog")
	file := writeItemsFile(t, sampleItems)

	out, err := runApp(t, "import", "--db", db, "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 items")

	out, err = runApp(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "ChatGPT")
	assert.Contains(t, out, "Sora")
	assert.Contains(t, out, "3 items")
	assert.Less(t, strings.Index(out, "ChatGPT"), strings.Index(out, "Sora"))

	t.Run("AND with date range", func(t *testing.T) {
		out, err := runApp(t, "filter", "--db", db, "--from", "2025-02-01", "--to", "2025-02-28")
		require.NoError(t, err)
		assert.Contains(t, out, "DALL-E")
		assert.NotContains(t, out, "ChatGPT")
		assert.Contains(t, out, "1 items")
	})

	t.Run("OR across category and keyword", func(t *testing.T) {
		out, err := runApp(t, "filter", "--db", db, "--operator", "or", "--category", "video", "--keyword", "chat")
		require.NoError(t, err)
		assert.Contains(t, out, "ChatGPT")
		assert.Contains(t, out, "Sora")
		assert.NotContains(t, out, "DALL-E")
	})

	t.Run("rating range defaults open bound", func(t *testing.T) {
		out, err := runApp(t, "filter", "--db", db, "--min-rating", "5")
		require.NoError(t, err)
		assert.Contains(t, out, "2 items")
	})

	t.Run("half date range is rejected", func(t *testing.T) {
		_, err := runApp(t, "filter", "--db", db, "--from", "2025-02-01")
		assert.Error(t, err)
	})

	t.Run("malformed conditions are rejected", func(t *testing.T) {
		_, err := runApp(t, "filter", "--db", db, "--operator", "XOR")
		require.ErrorIs(t, err, core.ErrMalformedConditions)
	})
}

func TestSearchFallsBackWhenServiceUnreachable(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog")
	file := writeItemsFile(t, sampleItems)

	_, err := runApp(t, "import", "--db", db, "--file", file)
	require.NoError(t, err)

	out, err := runApp(t, "search", "--db", db,
		"--classifier-host", "http://127.0.0.1:1/v1",
		"--timeout", "2s",
		"sora")
	require.NoError(t, err)
	assert.Contains(t, out, "matched on query words only")
	assert.Contains(t, out, "Sora")
	assert.NotContains(t, out, "DALL-E")
}

func TestSearchRequiresQuery(t *testing.T) {
	_, err := runApp(t, "search", "--db", filepath.Join(t.TempDir(), "catalog"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}

func TestImportRejectsBadBatchSize(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog")
	file := writeItemsFile(t, sampleItems)

	_, err := runApp(t, "import", "--db", db, "--file", file, "--batch-size", "0")
	require.ErrorIs(t, err, importer.ErrInvalidConfig)
}

func TestImportAtomic(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog")
	file := writeItemsFile(t, sampleItems)

	out, err := runApp(t, "import", "--db", db, "--file", file, "--atomic", "--batch-size", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 items")

	out, err = runApp(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "3 items")
}
