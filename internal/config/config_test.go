package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_ENGINE", "sqlite")
	t.Setenv("REPLY_BACKEND", "canned")
	t.Setenv("CATALOG_DELAY", "500ms")
	t.Setenv("SNAPSHOT_RETENTION", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CatalogDelay != 500*time.Millisecond {
		t.Fatalf("CatalogDelay = %v", cfg.CatalogDelay)
	}
	if cfg.Session.Retention != 0 {
		t.Fatalf("Retention = %v", cfg.Session.Retention)
	}
	if cfg.Reply.Model == "" || cfg.Reply.BaseURL == "" {
		t.Fatal("expected LLM defaults to be set")
	}
}

func TestLoadRejectsOpenAIWithoutKey(t *testing.T) {
	t.Setenv("REPLY_BACKEND", "openai")
	t.Setenv("LLM_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without LLM_API_KEY")
	}
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	t.Setenv("STORE_ENGINE", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown store engine")
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{value: "90s", want: 90 * time.Second},
		{value: "2m", want: 2 * time.Minute},
		{value: "15", want: 15 * time.Second},
		{value: "soon", want: time.Hour},
	}
	for _, tt := range tests {
		t.Setenv("TEST_DURATION", tt.value)
		if got := getEnvDuration("TEST_DURATION", time.Hour); got != tt.want {
			t.Errorf("getEnvDuration(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestAllowedOrigins(t *testing.T) {
	t.Parallel()

	cfg := &Config{FrontendURL: "https://a.example, https://b.example ,"}
	got := cfg.AllowedOrigins()
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("AllowedOrigins() = %v", got)
	}
	if o := (&Config{}).AllowedOrigins(); len(o) != 1 || o[0] != "*" {
		t.Fatalf("empty frontend origins = %v", o)
	}
	if !(&Config{FrontendURL: "http://localhost:5173"}).IsDevelopment() {
		t.Fatal("localhost should be development")
	}
}
