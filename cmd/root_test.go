package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestArgOrEmpty(t *testing.T) {
	if got := argOrEmpty(nil); got != "" {
		t.Errorf("argOrEmpty(nil) = %q", got)
	}
	if got := argOrEmpty([]string{"PROJ-1", "extra"}); got != "PROJ-1" {
		t.Errorf("argOrEmpty = %q, want PROJ-1", got)
	}
}

func TestLoadConfigFromFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeout_seconds: 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	old := flagConfig
	flagConfig = path
	defer func() { flagConfig = old }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Timeout().Seconds() != 30 {
		t.Errorf("timeout = %v, want 30s", cfg.Timeout())
	}
}

func TestNewServiceMissingCredentials(t *testing.T) {
	for _, v := range []string{"ATLASSIAN_URL", "ATLASSIAN_EMAIL", "ATLASSIAN_API_TOKEN"} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}

	if _, err := newService(); err == nil {
		t.Error("expected missing-credentials error")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"description": false,
		"comments":    false,
		"assigned":    false,
		"skill":       false,
		"version":     false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
