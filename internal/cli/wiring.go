// Package cli implements the secubot commands: one-shot review, index
// building, and the daemon server.
package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/cloo-solutions/secubot/internal/config"
	"github.com/cloo-solutions/secubot/internal/database"
	"github.com/cloo-solutions/secubot/internal/github"
	"github.com/cloo-solutions/secubot/internal/index"
	"github.com/cloo-solutions/secubot/internal/kbsource"
	"github.com/cloo-solutions/secubot/internal/openai"
	"github.com/cloo-solutions/secubot/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pipeline bundles the wired review components for one configuration.
type pipeline struct {
	indexer *service.Indexer
	runner  *service.ReviewRunner
	pool    *pgxpool.Pool
}

// Close releases the database pool, if one was opened.
func (p *pipeline) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// buildPipeline wires collaborators from configuration: S3 or filesystem
// document source, pgvector or in-memory index, OpenAI or mock model.
// Configuration problems surface here, before any external call.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline, error) {
	if !cfg.HasOpenAI() {
		return nil, fmt.Errorf("SECUBOT_OPENAI_API_KEY is required (embeddings)")
	}

	openaiClient := openai.NewClientWithConfig(openai.Config{
		APIKey:         cfg.OpenAIAPIKey,
		EmbeddingModel: cfg.EmbeddingModel,
		ChatModel:      cfg.ChatModel,
	})

	var source service.DocumentSource
	if cfg.HasS3() {
		s3Source, err := kbsource.NewS3Source(ctx, kbsource.S3SourceConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			UsePathStyle:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 knowledge source: %w", err)
		}
		source = s3Source
	} else {
		source = kbsource.NewFSSource(cfg.KnowledgeBasePath)
	}

	var vectorIndex service.VectorIndex
	var pool *pgxpool.Pool
	if cfg.HasDatabase() {
		var err error
		pool, err = database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		vectorIndex = index.NewPGVectorIndex(pool)
		log.Println("using pgvector knowledge index")
	} else {
		vectorIndex = index.NewMemoryIndex()
	}

	indexer, err := service.NewIndexer(source, openaiClient, vectorIndex, service.ChunkConfig{
		MaxChars: cfg.MaxChunkChars,
		Overlap:  cfg.ChunkOverlap,
	})
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}

	retriever, err := service.NewRetriever(openaiClient, vectorIndex, service.RetrieverConfig{
		MaxResults: cfg.MaxResults,
	})
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}

	var model service.ModelClient = openaiClient
	if cfg.MockLLM {
		model = openai.NewMockModelClient()
		log.Println("using mock model client")
	}

	engine := service.NewReviewEngine(retriever, model)
	host := github.NewClient(cfg.GitHubToken)
	runner := service.NewReviewRunner(engine, host, github.FormatComment)

	return &pipeline{
		indexer: indexer,
		runner:  runner,
		pool:    pool,
	}, nil
}
