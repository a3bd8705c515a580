package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("expected log level %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}
	if cfg.Remote.Branch != DefaultBranch {
		t.Fatalf("expected branch %q, got %q", DefaultBranch, cfg.Remote.Branch)
	}
	if cfg.RemoteConfigured() {
		t.Fatal("default config must not select the remote store")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FLOORLOG_CONFIG_DIR", dir)
	t.Setenv("FLOORLOG_DB", "")
	t.Setenv("FLOORLOG_OWNER", "")
	t.Setenv("FLOORLOG_REPO", "")
	t.Setenv("FLOORLOG_BRANCH", "")

	content := `
log_level = "debug"
db_path = "/tmp/floor.db"

[remote]
owner = "acme"
repo = "floor-data"
records_path = "tables/records.csv"
`
	if err := os.WriteFile(filepath.Join(dir, ".floorlog.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug, got %q", cfg.LogLevel)
	}
	if cfg.DBPath != "/tmp/floor.db" {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if !cfg.RemoteConfigured() {
		t.Fatal("expected remote store selected")
	}
	if cfg.Remote.RecordsPath != "tables/records.csv" {
		t.Fatalf("unexpected records path %q", cfg.Remote.RecordsPath)
	}
	if cfg.Remote.Branch != DefaultBranch {
		t.Fatalf("expected default branch fill-in, got %q", cfg.Remote.Branch)
	}
	if cfg.Remote.RosterPath != DefaultRosterPath {
		t.Fatalf("expected default roster path fill-in, got %q", cfg.Remote.RosterPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FLOORLOG_CONFIG_DIR", t.TempDir()) // no config file
	t.Setenv("FLOORLOG_DB", "/tmp/override.db")
	t.Setenv("FLOORLOG_OWNER", "acme")
	t.Setenv("FLOORLOG_REPO", "floor-data")
	t.Setenv("FLOORLOG_BRANCH", "records")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/override.db" {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if !cfg.RemoteConfigured() || cfg.Remote.Branch != "records" {
		t.Fatalf("env overrides not applied: %+v", cfg.Remote)
	}
}

func TestSetKeyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".floorlog.toml")

	if err := SetKey(path, "remote.owner", "acme"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := SetKey(path, "log_level", "warn"); err != nil {
		t.Fatalf("set: %v", err)
	}

	t.Setenv("FLOORLOG_CONFIG_DIR", dir)
	t.Setenv("FLOORLOG_DB", "")
	t.Setenv("FLOORLOG_OWNER", "")
	t.Setenv("FLOORLOG_REPO", "")
	t.Setenv("FLOORLOG_BRANCH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Remote.Owner != "acme" {
		t.Fatalf("expected owner acme, got %q", cfg.Remote.Owner)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected warn, got %q", cfg.LogLevel)
	}
}

func TestSetKeyRejectsUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".floorlog.toml")
	if err := SetKey(path, "not_a_key", "x"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestGetKeys(t *testing.T) {
	cfg := Default()
	for _, key := range AllowedKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
	}
	if _, err := cfg.Get("nope"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
