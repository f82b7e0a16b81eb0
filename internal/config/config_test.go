package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Values(t *testing.T) {
	cfg := Default()
	if cfg.API.Port != 8400 {
		t.Errorf("API.Port = %d, want 8400", cfg.API.Port)
	}
	if cfg.Feed.TimeoutSeconds != 30 {
		t.Errorf("Feed.TimeoutSeconds = %d, want 30", cfg.Feed.TimeoutSeconds)
	}
	if cfg.Refresh.AlertProfitFloor != 3_000_000 {
		t.Errorf("AlertProfitFloor = %v, want 3000000", cfg.Refresh.AlertProfitFloor)
	}
	if cfg.Refresh.MinPiracyScore != 60 {
		t.Errorf("MinPiracyScore = %v, want 60", cfg.Refresh.MinPiracyScore)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	wd, _ := os.Getwd()
	tmp := t.TempDir()
	os.Chdir(tmp)
	defer os.Chdir(wd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with no config file: %v", err)
	}
	if cfg.API.Port != 8400 {
		t.Errorf("API.Port = %d, want default 8400", cfg.API.Port)
	}
	if cfg.Feed.BaseURL == "" {
		t.Error("Feed.BaseURL empty, want default")
	}
}

func TestLoadFromFile_OverridesAndFragments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
api:
  port: 9999
feed:
  base_url: http://localhost:1234
terminal_fragments:
  Pyro:
    - "rat's nest"
    - ruin station
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.API.Port != 9999 {
		t.Errorf("API.Port = %d, want 9999", cfg.API.Port)
	}
	if cfg.Feed.BaseURL != "http://localhost:1234" {
		t.Errorf("Feed.BaseURL = %q", cfg.Feed.BaseURL)
	}
	if len(cfg.TerminalFragments["Pyro"]) != 2 {
		t.Errorf("TerminalFragments[Pyro] = %v, want 2 entries", cfg.TerminalFragments["Pyro"])
	}
	// Untouched keys keep defaults.
	if cfg.Refresh.AlertRatingFloor != 85 {
		t.Errorf("AlertRatingFloor = %v, want default 85", cfg.Refresh.AlertRatingFloor)
	}
}

func TestLoadFromFile_BadPath(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
