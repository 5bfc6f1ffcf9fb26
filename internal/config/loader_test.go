package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TICKERD_DATA_DIR", t.TempDir())

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if cfg.PollInterval != 2*time.Minute {
		t.Errorf("poll interval = %s", cfg.PollInterval)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("fetch timeout = %s", cfg.FetchTimeout)
	}
	if cfg.RetryAttempts != 3 {
		t.Errorf("retry attempts = %d", cfg.RetryAttempts)
	}
	if cfg.RetryBase != 2*time.Second || cfg.RetryMax != 30*time.Second {
		t.Errorf("retry backoff = %s/%s", cfg.RetryBase, cfg.RetryMax)
	}
	if cfg.DedupCycles != 5 {
		t.Errorf("dedup cycles = %d", cfg.DedupCycles)
	}
	if cfg.MaxHeadlines != 50 {
		t.Errorf("max headlines = %d", cfg.MaxHeadlines)
	}
	if cfg.MemoryRetention != 168*time.Hour {
		t.Errorf("memory retention = %s", cfg.MemoryRetention)
	}
	if !strings.HasSuffix(cfg.SourcesFile, "sources.yml") {
		t.Errorf("sources file = %q", cfg.SourcesFile)
	}
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	t.Setenv("TICKERD_DATA_DIR", t.TempDir())

	cfg, err := Load([]string{
		"--poll-interval", "30s",
		"--max-headlines", "10",
		"--debug",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("poll interval = %s", cfg.PollInterval)
	}
	if cfg.MaxHeadlines != 10 {
		t.Errorf("max headlines = %d", cfg.MaxHeadlines)
	}
	if !cfg.Debug {
		t.Error("debug flag not applied")
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("TICKERD_DATA_DIR", t.TempDir())
	t.Setenv("TICKERD_POLL_INTERVAL", "45s")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PollInterval != 45*time.Second {
		t.Errorf("poll interval = %s, want 45s", cfg.PollInterval)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("TICKERD_DATA_DIR", t.TempDir())

	tests := [][]string{
		{"--poll-interval", "0s"},
		{"--fetch-timeout", "-1s"},
		{"--retry-attempts", "0"},
		{"--retry-base", "1m", "--retry-max", "1s"},
		{"--scroll-step", "0"},
	}
	for _, args := range tests {
		if _, err := Load(args); err == nil {
			t.Errorf("Load(%v) accepted invalid configuration", args)
		}
	}
}

func TestLoadVersionExitsCleanly(t *testing.T) {
	cfg, err := Load([]string{"--version"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Error("expected nil config for --version")
	}
}
