package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/ronpakun/internal/config"
)

type envConfig struct {
	Env                 string `env:"ENV" envDefault:"production"`
	DiscordToken        string `env:"DISCORD_TOKEN,required"`
	DiscordGuildID      string `env:"DISCORD_GUILD_ID,required"`
	LLMBaseURL          string `env:"LLM_BASE_URL,required"`
	LLMAPIKey           string `env:"LLM_API_KEY"`
	LLMModel            string `env:"LLM_MODEL,required"`
	LLMToolRounds       int    `env:"LLM_TOOL_ROUNDS" envDefault:"1"`
	SearchAPIURL        string `env:"SEARCH_API_URL"`
	SearchAPIKey        string `env:"SEARCH_API_KEY"`
	RedisURL            string `env:"REDIS_URL"`
	DatabaseURL         string `env:"DATABASE_URL"`
	ResultWebhookURL    string `env:"RESULT_WEBHOOK_URL"`
	FallacyThreshold    int    `env:"FALLACY_THRESHOLD" envDefault:"3"`
	TranscriptCap       int    `env:"TRANSCRIPT_CAP" envDefault:"20"`
	MessageCharLimit    int    `env:"MESSAGE_CHAR_LIMIT" envDefault:"2000"`
	SessionGraceMinutes int    `env:"SESSION_GRACE_MINUTES" envDefault:"60"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                 raw.Env,
		DiscordToken:        raw.DiscordToken,
		DiscordGuildID:      raw.DiscordGuildID,
		LLMBaseURL:          raw.LLMBaseURL,
		LLMAPIKey:           raw.LLMAPIKey,
		LLMModel:            raw.LLMModel,
		LLMToolRounds:       raw.LLMToolRounds,
		SearchAPIURL:        raw.SearchAPIURL,
		SearchAPIKey:        raw.SearchAPIKey,
		RedisURL:            raw.RedisURL,
		DatabaseURL:         raw.DatabaseURL,
		ResultWebhookURL:    raw.ResultWebhookURL,
		FallacyThreshold:    raw.FallacyThreshold,
		TranscriptCap:       raw.TranscriptCap,
		MessageCharLimit:    raw.MessageCharLimit,
		SessionGraceMinutes: raw.SessionGraceMinutes,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
