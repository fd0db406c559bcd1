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

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// A missing .env file is not an error
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "toolshelf",
		Usage: "Catalog of AI tools with structured filtering and natural-language search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"TOOLSHELF_LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import items from a JSON file",
				ArgsUsage: " ",
				Action:    importCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "JSON array of items to import (- reads stdin)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of items written per transaction",
						Value: 500,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N items",
						Value: 500,
					},
					&cli.BoolFlag{
						Name:  "atomic",
						Usage: "Store all items in one transaction, or none on failure",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List every item, oldest first",
				Action: listCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:   "filter",
				Usage:  "Filter items with AND/OR conditions",
				Action: filterCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "operator",
						Usage: "How conditions combine (AND, OR)",
						Value: "AND",
					},
					&cli.StringFlag{
						Name:  "keyword",
						Usage: "Case-insensitive substring of the item name",
					},
					&cli.StringSliceFlag{
						Name:  "category",
						Usage: "Accepted category (repeatable)",
					},
					&cli.IntFlag{
						Name:  "min-rating",
						Usage: "Lowest accepted rating (1-5)",
					},
					&cli.IntFlag{
						Name:  "max-rating",
						Usage: "Highest accepted rating (1-5)",
					},
					&cli.StringFlag{
						Name:  "from",
						Usage: "Earliest creation time, RFC 3339 or YYYY-MM-DD",
					},
					&cli.StringFlag{
						Name:  "to",
						Usage: "Latest creation time, RFC 3339 or YYYY-MM-DD",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Rank items against a natural-language query",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags:     append([]cli.Flag{dbFlag()}, aiFlags()...),
			},
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"TOOLSHELF_ADDR"},
					},
					&cli.StringSliceFlag{
						Name:    "cors-origin",
						Usage:   "Allowed CORS origin (repeatable, * allows any)",
						EnvVars: []string{"TOOLSHELF_CORS_ORIGINS"},
					},
				}, aiFlags()...),
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
		EnvVars:  []string{"TOOLSHELF_DB"},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "classifier-host",
			Usage:   "Intent extraction service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"TOOLSHELF_CLASSIFIER_HOST"},
		},
		&cli.StringFlag{
			Name:    "classifier-model",
			Usage:   "Intent extraction model name",
			Value:   "qwen2.5:3b",
			EnvVars: []string{"TOOLSHELF_CLASSIFIER_MODEL"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Bearer token for the intent extraction service",
			EnvVars: []string{"TOOLSHELF_API_KEY"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Upper bound on a single intent extraction call",
			Value:   5 * time.Second,
			EnvVars: []string{"TOOLSHELF_TIMEOUT"},
		},
		&cli.IntFlag{
			Name:    "cache-size",
			Usage:   "Number of extracted intents kept in memory (0 disables)",
			EnvVars: []string{"TOOLSHELF_CACHE_SIZE"},
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
