package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "FRONTEND_URL", "LLM_BASE_URL", "LLM_API_KEY",
		"LLM_MODEL", "LLM_BUDGET_MS", "TIMEZONE", "RATE_LIMIT",
		"SERVER_DEBUG_MODE", "OTEL_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.LLMBaseURL != "http://localhost:11434/v1" {
		t.Errorf("LLMBaseURL = %q", cfg.LLMBaseURL)
	}
	if cfg.LLMModel != "phi3:mini" {
		t.Errorf("LLMModel = %q", cfg.LLMModel)
	}
	if cfg.LLMBudgetMs != 6000 {
		t.Errorf("LLMBudgetMs = %d, want 6000", cfg.LLMBudgetMs)
	}
	if cfg.Timezone != "America/Toronto" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.RateLimit != "5-S" {
		t.Errorf("RateLimit = %q", cfg.RateLimit)
	}
	if cfg.ServerDebugMode {
		t.Error("ServerDebugMode = true, want false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("LLM_BUDGET_MS", "2500")
	t.Setenv("SERVER_DEBUG_MODE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.LLMBudgetMs != 2500 {
		t.Errorf("LLMBudgetMs = %d", cfg.LLMBudgetMs)
	}
	if !cfg.ServerDebugMode {
		t.Error("ServerDebugMode = false, want true")
	}
}

func TestLoadRejectsInvalidTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Not/AZone")
	if _, err := Load(); err == nil {
		t.Error("Load() succeeded with invalid timezone, want error")
	}
}

func TestLoadIgnoresUnparseableInt(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("LLM_BUDGET_MS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLMBudgetMs != 6000 {
		t.Errorf("LLMBudgetMs = %d, want default 6000", cfg.LLMBudgetMs)
	}
}

func TestLocation(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Location().String() != "UTC" {
		t.Errorf("Location() = %v, want UTC", cfg.Location())
	}
}
