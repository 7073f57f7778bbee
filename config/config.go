// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port       string
	SessionTTL time.Duration
	LogPath    string // terminal page only; empty discards logs
	Redis      RedisConfig
	LLM        LLMConfig
	Search     SearchConfig
	FetchTool  bool
	DevMode    bool
}

// RedisConfig selects the redis session store when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LLMConfig selects the chat model backing the agent.
type LLMConfig struct {
	Provider string // openai, gemini, qwen
	APIKey   string
	BaseURL  string
	Model    string
}

// SearchConfig controls the web_search tool.
type SearchConfig struct {
	TavilyAPIKey string
	TavilyDepth  string
	MaxResults   int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "8501"),
		SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),
		LogPath:    getEnv("BOOKFINDER_LOG", ""),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		LLM:    loadLLM(),
		Search: SearchConfig{
			TavilyAPIKey: getEnv("TAVILY_API_KEY", ""),
			TavilyDepth:  getEnv("TAVILY_SEARCH_DEPTH", "basic"),
			MaxResults:   getEnvInt("SEARCH_MAX_RESULTS", 5),
		},
		FetchTool: getEnvBool("BOOKFINDER_FETCH_TOOL", false),
		DevMode:   getEnvBool("BOOKFINDER_DEV", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadLLM() LLMConfig {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", "openai"))
	switch provider {
	case "gemini":
		return LLMConfig{
			Provider: provider,
			APIKey:   getEnv("GEMINI_API_KEY", ""),
			Model:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		}
	case "qwen":
		return LLMConfig{
			Provider: provider,
			APIKey:   getEnv("QWEN_API_KEY", ""),
			BaseURL:  getEnv("QWEN_BASE_URL", "https://dashscope.aliyuncs.com/compatible-mode/v1"),
			Model:    getEnv("QWEN_MODEL", "qwen-plus"),
		}
	default:
		return LLMConfig{
			Provider: provider,
			APIKey:   getEnv("OPENAI_API_KEY", ""),
			BaseURL:  getEnv("OPENAI_BASE_URL", ""),
			Model:    getEnv("OPENAI_MODEL", "gpt-4o"),
		}
	}
}

// Validate checks that all required configuration fields are set.
// API keys are not checked here; the provider reports a missing key when the model is built.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	switch c.LLM.Provider {
	case "openai", "gemini", "qwen":
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}
	switch c.Search.TavilyDepth {
	case "basic", "advanced":
	default:
		return fmt.Errorf("TAVILY_SEARCH_DEPTH must be basic or advanced")
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("SEARCH_MAX_RESULTS must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
