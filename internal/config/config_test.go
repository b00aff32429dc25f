package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Timeout() != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout())
	}
	if cfg.Retries() != 3 {
		t.Errorf("Retries = %d, want 3", cfg.Retries())
	}
	if cfg.PageSize != 100 {
		t.Errorf("PageSize = %d, want 100", cfg.PageSize)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.ExcludedStatuses) != 3 {
		t.Errorf("ExcludedStatuses = %v", cfg.ExcludedStatuses)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, "timeout_seconds: 30\nmax_retries: 1\npage_size: 50\nsearch_fields: [summary, status]\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout())
	}
	if cfg.Retries() != 1 {
		t.Errorf("Retries = %d, want 1", cfg.Retries())
	}
	if cfg.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", cfg.PageSize)
	}
	if len(cfg.SearchFields) != 2 {
		t.Errorf("SearchFields = %v", cfg.SearchFields)
	}
}

func TestLoadZeroRetriesKept(t *testing.T) {
	path := writeConfig(t, "max_retries: 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Retries() != 0 {
		t.Errorf("Retries = %d, want 0 (explicit zero should disable retries)", cfg.Retries())
	}
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	tests := []string{
		"timeout_seconds: 3\n",
		"timeout_seconds: 120\n",
		"max_retries: 99\n",
		"page_size: 500\n",
	}
	for _, content := range tests {
		path := writeConfig(t, content)
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%q) should fail", content)
		}
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "timeout_seconds: [not an int\n")
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}
