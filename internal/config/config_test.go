package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsHideErrorDetails(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Mode != "production" {
		t.Fatalf("mode = %q, want production", cfg.Server.Mode)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("default config must not expose error details")
	}
}

func TestShippedConfigRunsInProduction(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("configs/config.yaml mode = %q, want production", cfg.Server.Mode)
	}
}

func TestEnvOverridesFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  mode: production\n  port: \"9000\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SERVER_MODE", "Development")
	t.Setenv("EXTRACTION_WORKER_ARGS", "-m,worker")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("SERVER_MODE override not applied, mode = %q", cfg.Server.Mode)
	}
	if cfg.Server.Port != "9000" {
		t.Fatalf("port = %q, want 9000", cfg.Server.Port)
	}
	if len(cfg.Extraction.WorkerArgs) != 2 || cfg.Extraction.WorkerArgs[1] != "worker" {
		t.Fatalf("worker args = %v", cfg.Extraction.WorkerArgs)
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("network:\n  timeout: soon\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected invalid timeout to be rejected")
	}
}
