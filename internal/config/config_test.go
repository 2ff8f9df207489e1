package config

import (
	"testing"
	"time"
)

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when GEMINI_API_KEY is missing")
	}
}

func TestLoadRequiresDatabaseURLWhenDBEnabled(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ENABLE_DB", "true")
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadUsesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ENABLE_DB", "false")
	t.Setenv("PORT", "")
	t.Setenv("FALLBACK_MODELS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if len(cfg.FallbackModels) != 3 {
		t.Fatalf("expected default fallback list, got %v", cfg.FallbackModels)
	}
	if cfg.GenerateTimeout != 30*time.Second {
		t.Fatalf("expected default generate timeout, got %v", cfg.GenerateTimeout)
	}
	if cfg.AuthRequired {
		t.Fatal("expected auth disabled by default")
	}
}

func TestLoadOverridesFallbackModels(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("FALLBACK_MODELS", "models/a, models/b ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.FallbackModels) != 2 || cfg.FallbackModels[0] != "models/a" || cfg.FallbackModels[1] != "models/b" {
		t.Fatalf("unexpected fallback list: %v", cfg.FallbackModels)
	}
}
