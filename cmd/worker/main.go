package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fortmig/fortscan/internal/config"
	"github.com/fortmig/fortscan/internal/graph"
	"github.com/fortmig/fortscan/internal/ingestion"
	"github.com/fortmig/fortscan/internal/store"
	minioclient "github.com/fortmig/fortscan/internal/store/minio"
	"github.com/fortmig/fortscan/internal/store/postgres"
	vk "github.com/fortmig/fortscan/internal/store/valkey"
)

func main() {
	_ = godotenv.Load(".env") // ignore error if .env missing

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := postgres.NewPool(ctx, cfg.Database.DSN(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	s := store.New(pool)

	// Valkey
	vkClient, err := vk.NewClient(cfg.Valkey)
	if err != nil {
		logger.Error("failed to connect to valkey", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer vkClient.Close()
	logger.Info("connected to valkey")

	// MinIO (optional — report artifacts are skipped without it)
	var artifacts *minioclient.Client
	mc, err := minioclient.NewClient(cfg.MinIO)
	if err != nil {
		logger.Warn("minio connection failed, artifact uploads disabled", slog.String("error", err.Error()))
	} else {
		if err := mc.EnsureBucket(ctx); err != nil {
			logger.Warn("minio ensure bucket failed", slog.String("error", err.Error()))
		} else {
			artifacts = mc
			logger.Info("connected to minio", slog.String("bucket", mc.Bucket()))
		}
	}

	// Neo4j (optional — graph sync is skipped without it)
	var graphClient *graph.Client
	gc, err := graph.NewClient(cfg.Neo4j)
	if err != nil {
		logger.Warn("neo4j connection failed, graph sync disabled", slog.String("error", err.Error()))
	} else {
		if err := gc.EnsureIndexes(ctx); err != nil {
			logger.Warn("neo4j ensure indexes failed, sync may be slow", slog.String("error", err.Error()))
		}
		graphClient = gc
		defer gc.Close(ctx)
		logger.Info("connected to neo4j")
	}

	stages := ingestion.DefaultStages(s, graphClient, artifacts, logger)
	pipeline := ingestion.NewPipeline(s, stages, logger)

	consumer := ingestion.NewConsumer(vkClient, "worker-1", logger)
	if err := consumer.EnsureGroup(ctx); err != nil {
		logger.Error("failed to ensure consumer group", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("starting worker, consuming from stream", slog.String("stream", ingestion.StreamName))
	if err := consumer.Consume(ctx, pipeline.Run); err != nil {
		if ctx.Err() == nil {
			logger.Error("consumer error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("worker stopped")
}
