package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFillsDefaultsForUnsetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("api_key: k\nserver_url: https://example.com\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RoundBudget != 5*time.Second {
		t.Errorf("expected default round budget, got %v", cfg.RoundBudget)
	}
	if cfg.HorizonLoadHours != 6 {
		t.Errorf("expected default load horizon, got %d", cfg.HorizonLoadHours)
	}
	if cfg.Penalty.NegativeInventoryFactor != 500 {
		t.Errorf("expected default penalty config, got %+v", cfg.Penalty)
	}
}

func TestLoadRequiresAPIKeyAndServerURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("round_budget: 3s\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing api_key/server_url")
	}
}

func TestLoadRespectsExplicitOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "api_key: k\nserver_url: https://example.com\nhorizon_load_hours: 12\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HorizonLoadHours != 12 {
		t.Errorf("expected explicit override to survive, got %d", cfg.HorizonLoadHours)
	}
}
