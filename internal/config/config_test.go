package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every recognized override so tests see only what they set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "QDRANT_URL", "EMBEDDINGS_URL", "COLLECTION_NAME", "AGENT_ID",
		"EMBEDDING_DIM", "CACHE_DB_PATH", "LOG_LEVEL", "DENSE_WEIGHT",
		"KEYWORD_WEIGHT", "SCROLL_PAGE_SIZE", "MEMORY_FILE_PATH",
		"SYNC_LEDGER_PATH", "EXPORT_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8742 {
		t.Errorf("Port = %d, want 8742", cfg.Port)
	}
	if cfg.Collection != "agent_memory" {
		t.Errorf("Collection = %q, want agent_memory", cfg.Collection)
	}
	if cfg.DenseWeight != 0.7 || cfg.KeywordWeight != 0.3 {
		t.Errorf("weights = %v/%v, want 0.7/0.3", cfg.DenseWeight, cfg.KeywordWeight)
	}
	if cfg.ScrollPageSize != 100 {
		t.Errorf("ScrollPageSize = %d, want 100", cfg.ScrollPageSize)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "recall.yaml")
	yaml := `
port: 9100
agent_id: research
dense_weight: 0.6
keyword_weight: 0.4
memory_file_path: /tmp/NOTES.md
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9100 {
		t.Errorf("Port = %d, want 9100", cfg.Port)
	}
	if cfg.AgentID != "research" {
		t.Errorf("AgentID = %q, want research", cfg.AgentID)
	}
	if cfg.DenseWeight != 0.6 || cfg.KeywordWeight != 0.4 {
		t.Errorf("weights = %v/%v, want 0.6/0.4", cfg.DenseWeight, cfg.KeywordWeight)
	}
	// Untouched keys keep defaults
	if cfg.Collection != "agent_memory" {
		t.Errorf("Collection = %q, want default", cfg.Collection)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults, got %v", err)
	}
	if cfg.Port != 8742 {
		t.Errorf("Port = %d, want default", cfg.Port)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "recall.yaml")
	if err := os.WriteFile(path, []byte("agent_id: from-file\nport: 9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AGENT_ID", "from-env")
	t.Setenv("SCROLL_PAGE_SIZE", "250")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AgentID != "from-env" {
		t.Errorf("AgentID = %q, env should win over file", cfg.AgentID)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, file value should survive without env override", cfg.Port)
	}
	if cfg.ScrollPageSize != 250 {
		t.Errorf("ScrollPageSize = %d, want 250", cfg.ScrollPageSize)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Port = 0 }},
		{"empty qdrant url", func(c *Config) { c.QdrantURL = "" }},
		{"empty collection", func(c *Config) { c.Collection = "" }},
		{"empty agent", func(c *Config) { c.AgentID = "" }},
		{"zero dimension", func(c *Config) { c.EmbeddingDim = 0 }},
		{"negative weight", func(c *Config) { c.DenseWeight = -0.2; c.KeywordWeight = 1.2 }},
		{"weights not summing to one", func(c *Config) { c.DenseWeight = 0.5; c.KeywordWeight = 0.3 }},
		{"zero page size", func(c *Config) { c.ScrollPageSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			if err := cfg.validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestEffectiveLedgerPath(t *testing.T) {
	cfg := defaults()
	cfg.MemoryFilePath = "/data/MEMORY.md"
	if got := cfg.EffectiveLedgerPath(); got != "/data/MEMORY.md.sync.json" {
		t.Errorf("EffectiveLedgerPath = %q", got)
	}

	cfg.LedgerPath = "/elsewhere/ledger.json"
	if got := cfg.EffectiveLedgerPath(); got != "/elsewhere/ledger.json" {
		t.Errorf("EffectiveLedgerPath = %q, explicit path should win", got)
	}
}
