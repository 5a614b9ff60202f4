package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config carries all tunables for the memory service. Values come from an
// optional YAML file overlaid by environment variables, so the core stays
// testable without mutating the process environment.
type Config struct {
	Port          int    `yaml:"port"`
	QdrantURL     string `yaml:"qdrant_url"`
	EmbeddingsURL string `yaml:"embeddings_url"`
	Collection    string `yaml:"collection"`
	AgentID       string `yaml:"agent_id"`
	EmbeddingDim  int    `yaml:"embedding_dim"`
	CacheDBPath   string `yaml:"cache_db_path"`
	LogLevel      string `yaml:"log_level"`

	// Hybrid ranking
	DenseWeight    float64 `yaml:"dense_weight"`
	KeywordWeight  float64 `yaml:"keyword_weight"`
	ScrollPageSize int     `yaml:"scroll_page_size"`

	// Document sync
	MemoryFilePath string `yaml:"memory_file_path"`
	LedgerPath     string `yaml:"ledger_path"`
	ExportPath     string `yaml:"export_path"`
}

// Load reads the optional YAML file at path (empty path or missing file is
// fine), applies environment overrides, then validates.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:           8742,
		QdrantURL:      "http://localhost:6333",
		EmbeddingsURL:  "http://localhost:8000",
		Collection:     "agent_memory",
		AgentID:        "default",
		EmbeddingDim:   1024,
		CacheDBPath:    defaultCacheDBPath(),
		LogLevel:       "info",
		DenseWeight:    0.7,
		KeywordWeight:  0.3,
		ScrollPageSize: 100,
		MemoryFilePath: "MEMORY.md",
		LedgerPath:     "",
		ExportPath:     "",
	}
}

func (c *Config) applyEnv() {
	c.Port = envInt("PORT", c.Port)
	c.QdrantURL = envStr("QDRANT_URL", c.QdrantURL)
	c.EmbeddingsURL = envStr("EMBEDDINGS_URL", c.EmbeddingsURL)
	c.Collection = envStr("COLLECTION_NAME", c.Collection)
	c.AgentID = envStr("AGENT_ID", c.AgentID)
	c.EmbeddingDim = envInt("EMBEDDING_DIM", c.EmbeddingDim)
	c.CacheDBPath = envStr("CACHE_DB_PATH", c.CacheDBPath)
	c.LogLevel = envStr("LOG_LEVEL", c.LogLevel)
	c.DenseWeight = envFloat("DENSE_WEIGHT", c.DenseWeight)
	c.KeywordWeight = envFloat("KEYWORD_WEIGHT", c.KeywordWeight)
	c.ScrollPageSize = envInt("SCROLL_PAGE_SIZE", c.ScrollPageSize)
	c.MemoryFilePath = envStr("MEMORY_FILE_PATH", c.MemoryFilePath)
	c.LedgerPath = envStr("SYNC_LEDGER_PATH", c.LedgerPath)
	c.ExportPath = envStr("EXPORT_PATH", c.ExportPath)
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.QdrantURL == "" {
		return fmt.Errorf("QDRANT_URL must not be empty")
	}
	if c.EmbeddingsURL == "" {
		return fmt.Errorf("EMBEDDINGS_URL must not be empty")
	}
	if c.Collection == "" {
		return fmt.Errorf("COLLECTION_NAME must not be empty")
	}
	if c.AgentID == "" {
		return fmt.Errorf("AGENT_ID must not be empty")
	}
	if c.EmbeddingDim < 1 {
		return fmt.Errorf("EMBEDDING_DIM must be positive, got %d", c.EmbeddingDim)
	}
	if c.DenseWeight < 0 || c.KeywordWeight < 0 {
		return fmt.Errorf("search weights must be non-negative")
	}
	sum := c.DenseWeight + c.KeywordWeight
	if sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("DENSE_WEIGHT + KEYWORD_WEIGHT must equal 1.0, got %f", sum)
	}
	if c.ScrollPageSize < 1 {
		return fmt.Errorf("SCROLL_PAGE_SIZE must be positive, got %d", c.ScrollPageSize)
	}
	return nil
}

// EffectiveLedgerPath resolves the ledger location, defaulting to
// "<memory file>.sync.json" next to the synced document.
func (c *Config) EffectiveLedgerPath() string {
	if c.LedgerPath != "" {
		return c.LedgerPath
	}
	return c.MemoryFilePath + ".sync.json"
}

// defaultCacheDBPath places the embedding cache under the user's home
// directory. An empty path disables the cache.
func defaultCacheDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".recall", "embeddings.db")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
