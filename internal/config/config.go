// ABOUTME: Centralized configuration for the ClassPilot RAG system
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Index backend names accepted in INDEX_BACKEND
const (
	BackendSQLite = "sqlite"
	BackendQdrant = "qdrant"
	BackendMemory = "memory"
)

// Config holds all configuration for the RAG system
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	MaxTokens      int
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Ingestion settings
	ChunkSize    int
	ChunkOverlap int

	// Retrieval settings
	MaxResults   int
	IndexBackend string
	DataDir      string
	QdrantURL    string
	QdrantAPIKey string

	// Conversation settings
	MaxHistory int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("CLASSPILOT_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("CLASSPILOT_EMBEDDING_MODEL", "text-embedding-3-small"),
		MaxTokens:      getEnvInt("MAX_TOKENS", 800),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		ChunkSize:      getEnvInt("CHUNK_SIZE", 800),
		ChunkOverlap:   getEnvInt("CHUNK_OVERLAP", 100),
		MaxResults:     getEnvInt("MAX_RESULTS", 5),
		IndexBackend:   getEnv("INDEX_BACKEND", BackendSQLite),
		DataDir:        getEnv("CLASSPILOT_DATA_DIR", defaultDataDir()),
		QdrantURL:      getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:   os.Getenv("QDRANT_API_KEY"),
		MaxHistory:     getEnvInt("MAX_HISTORY", 2),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", c.ChunkOverlap)
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("MAX_RESULTS must be positive, got %d", c.MaxResults)
	}
	if c.MaxHistory < 0 {
		return fmt.Errorf("MAX_HISTORY must be non-negative, got %d", c.MaxHistory)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	switch c.IndexBackend {
	case BackendSQLite, BackendQdrant, BackendMemory:
	default:
		return fmt.Errorf("INDEX_BACKEND must be one of sqlite, qdrant, memory, got %q", c.IndexBackend)
	}
	return nil
}

// IndexPath returns the path of the sqlite index database
func (c *Config) IndexPath() string {
	return filepath.Join(c.DataDir, "index.db")
}

// defaultDataDir follows the XDG spec: ~/.local/share/classpilot
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, "classpilot")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
