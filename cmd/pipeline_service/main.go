package main

import (
	"context"
	"log"

	"regwatch/internal/archive"
	"regwatch/internal/checkpoint"
	"regwatch/internal/comparator"
	"regwatch/internal/config"
	"regwatch/internal/database/milvus"
	"regwatch/internal/database/minio"
	"regwatch/internal/database/redis"
	"regwatch/internal/embedding"
	"regwatch/internal/index"
	"regwatch/internal/llm"
	"regwatch/internal/pipeline"
	"regwatch/internal/report"
	"regwatch/internal/splitters"
	"regwatch/internal/summarizer"
	"regwatch/pkg/logger"
)

func main() {
	ctx := context.Background()

	// 1. Load Configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize Logger
	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("PipelineService")
	appLogger.Info("Starting document pipeline service...")

	// 3. Initialize External Stores
	milvusClient, err := milvus.NewClient(ctx, &cfg.Databases.Milvus, logger.New("Milvus"))
	if err != nil {
		log.Fatalf("Failed to connect to Milvus: %v", err)
	}
	defer milvusClient.Close()

	minioClient, err := minio.NewClient(ctx, &cfg.Databases.MinIO, logger.New("MinIO"))
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	// The checkpoint store tolerates a missing Redis; the run then starts
	// from the first archive instead of resuming.
	redisClient, err := redis.NewClient(ctx, &cfg.Databases.Redis, logger.New("Redis"))
	if err != nil {
		appLogger.Warn("Redis unavailable, batch runs without a resume checkpoint")
	}

	// 4. Initialize LLM and Embedding Clients
	completionModel, err := llm.NewOpenAI(cfg.LLM.OpenAI, cfg.LLM.Completion)
	if err != nil {
		log.Fatalf("Failed to create completion client: %v", err)
	}
	embeddingModel, err := embedding.NewOpenAIModel(cfg.LLM.OpenAI, cfg.LLM.Embedding.Model)
	if err != nil {
		log.Fatalf("Failed to create embedding client: %v", err)
	}

	// 5. Assemble Pipeline Components
	tokenSplitter, err := splitters.NewTokenSplitter(cfg.Pipeline.MaxChunkTokens)
	if err != nil {
		log.Fatalf("Failed to create token splitter: %v", err)
	}
	pageSplitter := splitters.NewCharacterSplitter(cfg.Pipeline.PageChunkSize, *cfg.Pipeline.PageChunkOverlap)

	store := archive.NewStore(minioClient, cfg.Databases.MinIO.Bucket, logger.New("ArchiveStore"))
	docSummarizer := summarizer.New(completionModel, tokenSplitter, pageSplitter, logger.New("Summarizer"))
	docIndex := index.New(milvusClient, cfg.LLM.Embedding.Dimension, logger.New("DocumentIndex"))
	docComparator := comparator.New(completionModel, logger.New("Comparator"))
	emailClient := report.NewEmailClient(cfg.Email, logger.New("Email"))
	reporter := report.NewReporter(emailClient, cfg.Pipeline.ReportPath, logger.New("Reporter"))
	cursor := checkpoint.NewStore(redisClient, cfg.Pipeline.CheckpointKey, logger.New("Checkpoint"))

	coordinator := pipeline.NewCoordinator(
		store,
		docSummarizer,
		embeddingModel,
		docIndex,
		docComparator,
		reporter,
		cursor,
		cfg.Pipeline.NeighborTopK,
		logger.New("Pipeline"),
	)

	// 6. Run the Batch
	if err := coordinator.Run(ctx); err != nil {
		log.Fatalf("Pipeline run failed: %v", err)
	}
	appLogger.Info("Pipeline service finished.")
}
