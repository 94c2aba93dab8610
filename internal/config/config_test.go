// ABOUTME: Tests for configuration loading
// ABOUTME: Covers defaults, YAML overlay, env overrides, and validation
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %v, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.NearbyRadiusMeters != 100 {
		t.Errorf("NearbyRadiusMeters = %v, want 100", cfg.NearbyRadiusMeters)
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "db_path: /tmp/custom.db\nchat_model: gpt-4o\nnearby_radius_meters: 250\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %v, want /tmp/custom.db", cfg.DBPath)
	}
	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("ChatModel = %v, want gpt-4o", cfg.ChatModel)
	}
	if cfg.NearbyRadiusMeters != 250 {
		t.Errorf("NearbyRadiusMeters = %v, want 250", cfg.NearbyRadiusMeters)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("chat_model: gpt-4o\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("MINAKAMI_OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("MINAKAMI_OPENAI_TIMEOUT", "5s")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.ChatModel != "gpt-4.1-mini" {
		t.Errorf("ChatModel = %v, want env override gpt-4.1-mini", cfg.ChatModel)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("MINAKAMI_OPENAI_MAX_RETRIES", "99")
	if _, err := LoadFrom(""); err == nil {
		t.Error("LoadFrom() with out-of-range retries should fail")
	}
}
