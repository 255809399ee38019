package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 0 {
		t.Fatalf("expected no timeout by default, got %s", cfg.API.Timeout)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.Notes.Enabled {
		t.Fatalf("expected notes disabled by default")
	}
	if cfg.Notes.TokenEnv != DefaultTokenEnv {
		t.Fatalf("expected default token env, got %q", cfg.Notes.TokenEnv)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mealfinder.yaml")
	data := `
api:
  base_url: http://localhost:9999/api
  timeout: 3s
server:
  addr: 127.0.0.1:9090
notes:
  enabled: true
  model: test-model
logging:
  level: debug
  file: /tmp/meals.log
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:9999/api/" {
		t.Fatalf("expected trailing slash appended, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.API.Timeout)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if !cfg.Notes.Enabled || cfg.Notes.Model != "test-model" {
		t.Fatalf("unexpected notes config %+v", cfg.Notes)
	}
	if cfg.Notes.BaseURL != DefaultNotesBaseURL {
		t.Fatalf("expected default notes base url, got %q", cfg.Notes.BaseURL)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.File != "/tmp/meals.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad yaml":  "api: [unterminated",
		"bad level": "logging:\n  level: loud\n",
		"negative":  "api:\n  timeout: -1s\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestNotesTokenReadsEnv(t *testing.T) {
	cfg := Default()
	cfg.Notes.TokenEnv = "MEALFINDER_TEST_TOKEN"
	t.Setenv("MEALFINDER_TEST_TOKEN", "secret")
	if got := cfg.NotesToken(); got != "secret" {
		t.Fatalf("expected token from env, got %q", got)
	}
	if !strings.HasSuffix(Default().API.BaseURL, "/") {
		t.Fatalf("default base url must end in a slash")
	}
}
