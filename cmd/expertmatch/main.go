// Copyright 2025 DeepTech HQ
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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/deeptechhq/expertmatch/ai"
	"github.com/deeptechhq/expertmatch/ai/openai"
	"github.com/deeptechhq/expertmatch/core"
	"github.com/deeptechhq/expertmatch/reembed"
	"github.com/deeptechhq/expertmatch/search"
	"github.com/deeptechhq/expertmatch/storage/badger"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Optional .env file for embedding host and model defaults
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "expertmatch",
		Usage: "Semantic matching engine for expert profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "reembed",
				Usage:  "Regenerate embeddings for profiles with missing or stale vectors",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"EXPERTMATCH_EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						Value:   "all-minilm",
						EnvVars: []string{"EXPERTMATCH_EMBEDDING_MODEL"},
					},
					&cli.Uint64Flag{
						Name:  "expert",
						Usage: "Regenerate a single expert by ID instead of the whole queue",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of profiles to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N profiles",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of batches embedded concurrently",
						Value: 4,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Find experts semantically similar to a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"EXPERTMATCH_EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						Value:   "all-minilm",
						EnvVars: []string{"EXPERTMATCH_EMBEDDING_MODEL"},
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results (0 uses the default)",
					},
					&cli.StringFlag{
						Name:  "domain",
						Usage: "Restrict results to experts in this domain",
					},
					&cli.Float64Flag{
						Name:  "min-rate",
						Usage: "Minimum advisory hourly rate",
					},
					&cli.Float64Flag{
						Name:  "max-rate",
						Usage: "Maximum advisory hourly rate",
					},
					&cli.StringFlag{
						Name:  "vetting",
						Usage: "Restrict results to a vetting status (pending, approved, rejected)",
					},
					&cli.Float64Flag{
						Name:  "min-rating",
						Usage: "Minimum average review rating",
					},
					&cli.BoolFlag{
						Name:  "available",
						Usage: "Only include experts currently accepting work",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewExpertRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	provider, err := newProvider(c)
	if err != nil {
		return err
	}
	defer provider.Close()

	// Warm the model up front so a wrong host or model fails here, not
	// partway through the queue.
	if err := provider.Init(ctx); err != nil {
		return fmt.Errorf("embedding service unavailable: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		PoolSize:       c.Int("pool-size"),
	}

	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := reembed.NewReembedder(repo, provider.Embedder(), reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if id := c.Uint64("expert"); id != 0 {
		if err := reembedder.RunOne(ctx, core.ID(id)); err != nil {
			return fmt.Errorf("regeneration failed for expert %d: %w", id, err)
		}
		fmt.Fprintf(os.Stderr, "Regenerated embedding for expert %d\n", id)
		return nil
	}

	report, err := reembedder.Run(ctx)
	if err != nil {
		return fmt.Errorf("regeneration failed: %w", err)
	}

	fmt.Printf("Report: %s\n", report)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a search query is required")
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewExpertRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	provider, err := newProvider(c)
	if err != nil {
		return err
	}
	defer provider.Close()

	if err := provider.Init(ctx); err != nil {
		return fmt.Errorf("embedding service unavailable: %w", err)
	}

	searcher, err := search.NewSearcher(repo, provider)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	filters := search.Filters{
		Domain:           c.String("domain"),
		MinRate:          c.Float64("min-rate"),
		MaxRate:          c.Float64("max-rate"),
		MinRating:        c.Float64("min-rating"),
		RequireAvailable: c.Bool("available"),
	}
	if v := c.String("vetting"); v != "" {
		status, err := core.ParseVettingStatus(v)
		if err != nil {
			return err
		}
		filters.Vetting = status
	}

	matches, err := searcher.Search(ctx, query, filters, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No matching experts found.")
		return nil
	}

	for i, match := range matches {
		p := match.Profile
		fmt.Printf("%2d. [%.3f] %s (id %d)\n", i+1, match.Score, p.Name, p.Id)
		if len(p.Skills) > 0 {
			fmt.Printf("      skills: %s\n", strings.Join(p.Skills, ", "))
		}
		if len(p.Domains) > 0 {
			fmt.Printf("      domains: %s\n", strings.Join(p.Domains, ", "))
		}
		fmt.Printf("      rate: %.0f/hr  rating: %.1f (%d reviews)  %s\n",
			p.RateAdvisory, p.Rating, p.ReviewCount, p.Vetting)
	}
	return nil
}

func newAIConfig(c *cli.Context) (*ai.Config, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return aiConfig, nil
}

func newProvider(c *cli.Context) (ai.Provider, error) {
	aiConfig, err := newAIConfig(c)
	if err != nil {
		return nil, err
	}
	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	return provider, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
