// Package config assembles process-wide configuration from the environment.
// The struct is built once at process start and handed to each component's
// constructor; component logic never reads the environment itself.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/jonathan/proverb-studio/internal/llm"
)

// DefaultPromptsDir is where prompt templates live unless overridden.
const DefaultPromptsDir = "data/prompts"

// DefaultCheckInterval is the pause between reconciliation passes.
const DefaultCheckInterval = 60 * time.Second

// Config holds every externally supplied setting.
type Config struct {
	OpenAIKey     string
	SynthesiaKey  string
	DatabaseURL   string
	PromptsDir    string
	Model         string
	Temperature   float32
	CheckInterval time.Duration
}

// FromEnv builds the configuration from environment variables, applying
// defaults for everything optional.
func FromEnv() *Config {
	return &Config{
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		SynthesiaKey:  os.Getenv("SYNTHESIA_API_KEY"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		PromptsDir:    getParam("PROMPTS_DIR", DefaultPromptsDir),
		Model:         getParam("OPENAI_MODEL", llm.DefaultModel),
		Temperature:   llm.DefaultTemperature,
		CheckInterval: intervalFromEnv(),
	}
}

// intervalFromEnv reads VIDEO_STATUS_CHECK_INTERVAL as integer seconds.
// Unset or unparsable values fall back to the default.
func intervalFromEnv() time.Duration {
	raw := os.Getenv("VIDEO_STATUS_CHECK_INTERVAL")
	if raw == "" {
		return DefaultCheckInterval
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return DefaultCheckInterval
	}
	return time.Duration(secs) * time.Second
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok && val != "" {
		return val
	}
	return def
}
