package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Roster.PageSize != 10 {
		t.Errorf("page size = %d, want 10", cfg.Roster.PageSize)
	}
	if got, want := cfg.APIBaseURL(), "http://127.0.0.1:3000/api/v1"; got != want {
		t.Errorf("APIBaseURL = %q, want %q", got, want)
	}
	if cfg.Roster.Editable {
		t.Error("roster should default to the read-only variant")
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte(`
server:
  port: "9000"
backend:
  base_url: "http://backend.local:3000/"
roster:
  editable: true
  page_size: 25
`)
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("env should win over file, port = %q", cfg.Server.Port)
	}
	if !cfg.Roster.Editable || cfg.Roster.PageSize != 25 {
		t.Errorf("roster = %+v", cfg.Roster)
	}
	if got, want := cfg.APIBaseURL(), "http://backend.local:3000/api/v1"; got != want {
		t.Errorf("APIBaseURL = %q, want %q", got, want)
	}
	origins := cfg.CORSOrigins()
	if len(origins) != 2 || origins[0] != "http://a.test" || origins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", origins)
	}
}

func TestLoadConfigRejectsUnknownPageSize(t *testing.T) {
	t.Setenv("ROSTER_PAGE_SIZE", "20")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected page size 20 to be rejected")
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT", "soon")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected invalid timeout to be rejected")
	}
}

func TestLoadConfigRejectsNonPositiveDuration(t *testing.T) {
	t.Setenv("SESSION_IDLE_TTL", "0s")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected zero idle TTL to be rejected")
	}
}

func TestDurations(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := cfg.BackendTimeout(time.Second); got != 10*time.Second {
		t.Errorf("BackendTimeout = %v", got)
	}
	if got := cfg.SessionIdleTTL(time.Second); got != 30*time.Minute {
		t.Errorf("SessionIdleTTL = %v", got)
	}

	var empty Config
	if got := empty.BackendTimeout(time.Second); got != time.Second {
		t.Errorf("empty BackendTimeout = %v, want fallback", got)
	}
	empty.Session.IdleTTL = "-5m"
	if got := empty.SessionIdleTTL(time.Minute); got != time.Minute {
		t.Errorf("negative SessionIdleTTL = %v, want fallback", got)
	}
}

func TestLoadConfigRejectsBadBool(t *testing.T) {
	t.Setenv("ROSTER_EDITABLE", "perhaps")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected invalid bool to be rejected")
	}
}

func TestOverriddenKeys(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	found := false
	for _, k := range OverriddenKeys() {
		if k == "LOG_LEVEL" {
			found = true
		}
	}
	if !found {
		t.Error("LOG_LEVEL should be reported as overridden")
	}
}
