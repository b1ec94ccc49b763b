// ABOUTME: Shared wiring and helpers for CLI commands
// ABOUTME: Builds the pipeline from config and the selected index backend
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/classpilot/classpilot/internal/config"
	"github.com/classpilot/classpilot/internal/generator"
	"github.com/classpilot/classpilot/internal/index"
	"github.com/classpilot/classpilot/internal/index/memory"
	"github.com/classpilot/classpilot/internal/index/qdrant"
	"github.com/classpilot/classpilot/internal/index/sqlite"
	"github.com/classpilot/classpilot/internal/ingest"
	"github.com/classpilot/classpilot/internal/llm"
	"github.com/classpilot/classpilot/internal/rag"
	"github.com/classpilot/classpilot/internal/session"
	"github.com/classpilot/classpilot/internal/tools"
	openai "github.com/sashabaranov/go-openai"
)

// embeddingDimension is fixed by text-embedding-3-small.
const embeddingDimension = 1536

// newLogger builds a logger honoring the quiet/verbose flags.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads and validates configuration from the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openStore opens the configured index backend.
func openStore(ctx context.Context, cfg *config.Config) (index.Store, error) {
	switch cfg.IndexBackend {
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.IndexPath())
		if err != nil {
			return nil, fmt.Errorf("opening index at %s: %w", cfg.IndexPath(), err)
		}
		return sqlite.NewStore(db), nil
	case config.BackendQdrant:
		store := qdrant.NewStore(qdrant.Config{
			URL:    cfg.QdrantURL,
			APIKey: cfg.QdrantAPIKey,
		})
		if err := store.Init(ctx, embeddingDimension); err != nil {
			return nil, fmt.Errorf("initializing qdrant at %s: %w", cfg.QdrantURL, err)
		}
		return store, nil
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown index backend %q", cfg.IndexBackend)
	}
}

// buildSystem wires the full pipeline. The caller must Close it.
func buildSystem(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*rag.System, error) {
	client, err := llm.NewOpenAIClient(llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ix := index.New(client, store, cfg.MaxResults, logger)

	registry := tools.NewRegistry()
	if err := registry.Register(tools.NewSearchTool(ix)); err != nil {
		return nil, err
	}
	if err := registry.Register(tools.NewOutlineTool(ix)); err != nil {
		return nil, err
	}

	return rag.New(
		ingest.NewProcessor(cfg.ChunkSize, cfg.ChunkOverlap),
		ix,
		generator.New(client, registry, cfg.MaxTokens, logger),
		session.NewMemoryStore(cfg.MaxHistory),
		logger,
	), nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}
