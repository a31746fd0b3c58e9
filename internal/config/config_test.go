package config

import "testing"

func validConfig() *Config {
	return &Config{
		Env:                 "development",
		DiscordToken:        "token",
		DiscordGuildID:      "guild",
		LLMBaseURL:          "https://llm.example.com/v1",
		LLMModel:            "gpt-4o-mini",
		LLMToolRounds:       1,
		FallacyThreshold:    3,
		TranscriptCap:       20,
		MessageCharLimit:    2000,
		SessionGraceMinutes: 60,
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when required fields are missing")
	}
}

func TestValidate_InvalidFallacyThreshold(t *testing.T) {
	cfg := validConfig()
	cfg.FallacyThreshold = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive fallacy threshold")
	}
}

func TestValidate_InvalidMessageCharLimit(t *testing.T) {
	cfg := validConfig()
	cfg.MessageCharLimit = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive message char limit")
	}
}

func TestValidate_NegativeToolRounds(t *testing.T) {
	cfg := validConfig()
	cfg.LLMToolRounds = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative tool rounds")
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Env: "development"}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode")
	}
	cfg.Env = "production"
	if cfg.IsDevelopment() {
		t.Fatal("expected non-development mode")
	}
}
