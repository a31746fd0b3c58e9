package config

import "fmt"

type Config struct {
	Env                 string
	DiscordToken        string
	DiscordGuildID      string
	LLMBaseURL          string
	LLMAPIKey           string
	LLMModel            string
	LLMToolRounds       int
	SearchAPIURL        string
	SearchAPIKey        string
	RedisURL            string
	DatabaseURL         string
	ResultWebhookURL    string
	FallacyThreshold    int
	TranscriptCap       int
	MessageCharLimit    int
	SessionGraceMinutes int
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.FallacyThreshold <= 0 {
		return fmt.Errorf("FALLACY_THRESHOLD must be positive, got %d", c.FallacyThreshold)
	}
	if c.TranscriptCap <= 0 {
		return fmt.Errorf("TRANSCRIPT_CAP must be positive, got %d", c.TranscriptCap)
	}
	if c.MessageCharLimit <= 0 {
		return fmt.Errorf("MESSAGE_CHAR_LIMIT must be positive, got %d", c.MessageCharLimit)
	}
	if c.SessionGraceMinutes <= 0 {
		return fmt.Errorf("SESSION_GRACE_MINUTES must be positive, got %d", c.SessionGraceMinutes)
	}
	if c.LLMToolRounds < 0 {
		return fmt.Errorf("LLM_TOOL_ROUNDS must not be negative, got %d", c.LLMToolRounds)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "DISCORD_TOKEN", value: c.DiscordToken},
		{name: "DISCORD_GUILD_ID", value: c.DiscordGuildID},
		{name: "LLM_BASE_URL", value: c.LLMBaseURL},
		{name: "LLM_MODEL", value: c.LLMModel},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
