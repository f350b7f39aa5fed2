package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Schedule.QueueDays != 7 {
		t.Errorf("expected queue_days 7, got %d", cfg.Schedule.QueueDays)
	}
	if cfg.AI.Provider != "openrouter" {
		t.Errorf("expected provider openrouter, got %s", cfg.AI.Provider)
	}
	if cfg.AI.Model != "openai/gpt-4o-mini" {
		t.Errorf("expected model openai/gpt-4o-mini, got %s", cfg.AI.Model)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected theme dark, got %s", cfg.UI.Theme)
	}
	if cfg.Storage.DBPath == "" {
		t.Error("expected a default db path")
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Schedule.QueueDays != 7 {
		t.Errorf("expected default queue_days, got %d", cfg.Schedule.QueueDays)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[storage]
db_path = "/tmp/test.db"

[schedule]
queue_days = 14

[ai]
provider = "local"
model = "llama3"
base_url = "http://localhost:11435/v1"

[ui]
theme = "light"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Schedule.QueueDays != 14 {
		t.Errorf("expected queue_days 14, got %d", cfg.Schedule.QueueDays)
	}
	if cfg.AI.Provider != "local" {
		t.Errorf("expected provider local, got %s", cfg.AI.Provider)
	}
	if cfg.AI.BaseURL != "http://localhost:11435/v1" {
		t.Errorf("expected overridden base_url, got %s", cfg.AI.BaseURL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected theme light, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_PartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[ai]
model = "qwen2.5"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Set field overridden, rest from defaults
	if cfg.AI.Model != "qwen2.5" {
		t.Errorf("expected model qwen2.5, got %s", cfg.AI.Model)
	}
	if cfg.AI.Provider != "openrouter" {
		t.Errorf("expected default provider, got %s", cfg.AI.Provider)
	}
	if cfg.Schedule.QueueDays != 7 {
		t.Errorf("expected default queue_days, got %d", cfg.Schedule.QueueDays)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configPath, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WRITESTACK_DB_PATH", "/tmp/env.db")
	t.Setenv("WRITESTACK_QUEUE_DAYS", "30")
	t.Setenv("WRITESTACK_AI_PROVIDER", "local")
	t.Setenv("WRITESTACK_AI_MODEL", "llama3")
	t.Setenv("WRITESTACK_UI_THEME", "light")

	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.DBPath != "/tmp/env.db" {
		t.Errorf("expected env db_path, got %s", cfg.Storage.DBPath)
	}
	if cfg.Schedule.QueueDays != 30 {
		t.Errorf("expected queue_days 30, got %d", cfg.Schedule.QueueDays)
	}
	if cfg.AI.Provider != "local" {
		t.Errorf("expected provider local, got %s", cfg.AI.Provider)
	}
	if cfg.AI.Model != "llama3" {
		t.Errorf("expected model llama3, got %s", cfg.AI.Model)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected theme light, got %s", cfg.UI.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty db path",
			mutate:  func(c *Config) { c.Storage.DBPath = "" },
			wantErr: true,
		},
		{
			name:    "zero queue days",
			mutate:  func(c *Config) { c.Schedule.QueueDays = 0 },
			wantErr: true,
		},
		{
			name:    "queue days too large",
			mutate:  func(c *Config) { c.Schedule.QueueDays = 365 },
			wantErr: true,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.AI.Provider = "mystery" },
			wantErr: true,
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.UI.Theme = "solarized" },
			wantErr: true,
		},
		{
			name:   "local provider aliases",
			mutate: func(c *Config) { c.AI.Provider = "lmstudio" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Schedule.QueueDays = 21

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Schedule.QueueDays != 21 {
		t.Errorf("expected queue_days 21, got %d", loaded.Schedule.QueueDays)
	}
}
