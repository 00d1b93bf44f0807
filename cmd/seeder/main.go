package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/deeptechhq/expertmatch"
	"github.com/deeptechhq/expertmatch/ai"
	"github.com/deeptechhq/expertmatch/core"
)

var experts = []*core.ExpertProfile{
	{
		Name:          "Mara Voss",
		Bio:           "Fifteen years building distributed databases and consensus protocols.",
		Skills:        []string{"go", "raft", "rocksdb", "grpc"},
		Domains:       []string{"databases", "distributed systems"},
		RateAdvisory:  350, RateArchitecture: 450, RateExecution: 300,
		Vetting:   core.VettingApproved,
		Rating:    4.8,
		ReviewCount: 41,
		Available: true,
	},
	{
		Name:          "Dmitri Okafor",
		Bio:           "Embedded firmware and real-time control for industrial robotics.",
		Skills:        []string{"c", "rust", "ros", "can bus"},
		Domains:       []string{"robotics", "embedded"},
		RateAdvisory:  280, RateArchitecture: 380, RateExecution: 250,
		Vetting:   core.VettingApproved,
		Rating:    4.5,
		ReviewCount: 27,
		Available: true,
	},
	{
		Name:          "Lena Achterberg",
		Bio:           "Machine learning infrastructure, feature stores, and model serving at scale.",
		Skills:        []string{"python", "pytorch", "kubernetes", "feast"},
		Domains:       []string{"machine learning", "mlops"},
		RateAdvisory:  400, RateArchitecture: 500, RateExecution: 350,
		Vetting:   core.VettingApproved,
		Rating:    4.9,
		ReviewCount: 58,
		Available: false,
	},
	{
		Name:          "Tomás Ferreira",
		Bio:           "Payments platforms, ledger correctness, and PCI compliance audits.",
		Skills:        []string{"java", "kafka", "postgres"},
		Domains:       []string{"fintech", "payments"},
		RateAdvisory:  320, RateArchitecture: 420, RateExecution: 290,
		Vetting:   core.VettingPending,
		Rating:    4.2,
		ReviewCount: 12,
		Available: true,
	},
	{
		Name:          "Priya Raghavan",
		Bio:           "Computational genomics pipelines and high-throughput sequencing analysis.",
		Skills:        []string{"python", "nextflow", "aws batch"},
		Domains:       []string{"bioinformatics", "genomics"},
		RateAdvisory:  300, RateArchitecture: 380, RateExecution: 270,
		Vetting:   core.VettingApproved,
		Rating:    4.7,
		ReviewCount: 33,
		Available: true,
	},
	{
		Name:          "Henrik Dahl",
		Bio:           "Network security assessments and zero-trust architecture rollouts.",
		Skills:        []string{"go", "envoy", "spiffe", "ebpf"},
		Domains:       []string{"security", "networking"},
		RateAdvisory:  380, RateArchitecture: 480, RateExecution: 340,
		Vetting:   core.VettingApproved,
		Rating:    4.6,
		ReviewCount: 19,
		Available: true,
	},
}

var (
	dbPath = flag.String("db", "", "path to BadgerDB database directory")
	host   = flag.String("host", "http://localhost:11434/v1", "embedding service host URL")
	model  = flag.String("model", "all-minilm", "embedding model name")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	if *dbPath == "" {
		slog.Error("the -db flag is required")
		os.Exit(1)
	}

	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(*host),
		ai.WithEmbeddingModel(*model),
	)

	svc, err := expertmatch.NewService(*dbPath, expertmatch.WithAIConfig(aiConfig))
	if err != nil {
		slog.Error("failed to open catalog", "err", err)
		os.Exit(1)
	}
	defer svc.Close()

	if err := svc.Provider().Init(ctx); err != nil {
		slog.Error("embedding model unavailable", "err", err)
		os.Exit(1)
	}

	pipeline, err := svc.NewIngestionPipeline()
	if err != nil {
		slog.Error("failed to create pipeline", "err", err)
		os.Exit(1)
	}
	defer pipeline.Release()

	added, err := pipeline.Ingest(ctx, experts...)
	if err != nil {
		slog.Error("failed to seed experts", "err", err)
		os.Exit(1)
	}
	slog.Info("seeded expert profiles", "count", len(added))

	// Give async embedding a moment to drain before the pool is released
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		queue, err := svc.ExpertRepository().ListNeedingEmbedding(ctx)
		if err != nil {
			slog.Error("failed to poll regeneration queue", "err", err)
			os.Exit(1)
		}
		if len(queue) == 0 {
			slog.Info("all seeded profiles embedded")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	slog.Warn("timed out waiting for embeddings; run the reembed command to finish")
}
