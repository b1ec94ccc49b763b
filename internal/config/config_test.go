// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Verifies defaults, environment overrides, and invalid values

package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChunkSize != 800 {
		t.Errorf("ChunkSize = %d, want 800", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 100 {
		t.Errorf("ChunkOverlap = %d, want 100", cfg.ChunkOverlap)
	}
	if cfg.MaxResults != 5 {
		t.Errorf("MaxResults = %d, want 5", cfg.MaxResults)
	}
	if cfg.MaxHistory != 2 {
		t.Errorf("MaxHistory = %d, want 2", cfg.MaxHistory)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.IndexBackend != BackendSQLite {
		t.Errorf("IndexBackend = %q, want sqlite", cfg.IndexBackend)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "400")
	t.Setenv("CHUNK_OVERLAP", "50")
	t.Setenv("MAX_RESULTS", "10")
	t.Setenv("INDEX_BACKEND", "memory")
	t.Setenv("CLASSPILOT_DATA_DIR", "/tmp/classpilot-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChunkSize != 400 {
		t.Errorf("ChunkSize = %d, want 400", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 50 {
		t.Errorf("ChunkOverlap = %d, want 50", cfg.ChunkOverlap)
	}
	if cfg.MaxResults != 10 {
		t.Errorf("MaxResults = %d, want 10", cfg.MaxResults)
	}
	if cfg.IndexBackend != BackendMemory {
		t.Errorf("IndexBackend = %q, want memory", cfg.IndexBackend)
	}
	if got := cfg.IndexPath(); got != "/tmp/classpilot-test/index.db" {
		t.Errorf("IndexPath() = %q", got)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"overlap >= size", func(c *Config) { c.ChunkOverlap = c.ChunkSize }},
		{"negative overlap", func(c *Config) { c.ChunkOverlap = -1 }},
		{"zero max results", func(c *Config) { c.MaxResults = 0 }},
		{"negative history", func(c *Config) { c.MaxHistory = -1 }},
		{"retries out of range", func(c *Config) { c.MaxRetries = 11 }},
		{"unknown backend", func(c *Config) { c.IndexBackend = "chroma" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
