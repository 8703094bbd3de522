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
	Port         string
	FrontendURL  string
	DBPath       string
	StoreEngine  string // "sqlite" or "json"
	CatalogDelay time.Duration

	Session         SessionConfig
	Reply           ReplyConfig
	ChatRateLimit   RateLimitConfig
	ConversationLog ConversationLogConfig
}

// SessionConfig controls the in-memory session cache and store retention.
type SessionConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
	Retention     time.Duration
}

// ReplyConfig selects and configures the chat reply backend.
type ReplyConfig struct {
	Backend string // "canned" or "openai"
	Delay   time.Duration
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// RateLimitConfig limits chat sends per user. Zero disables limiting.
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// ConversationLogConfig controls JSON conversation logging.
type ConversationLogConfig struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	queueSize := getEnvInt("CONVERSATION_LOG_QUEUE_SIZE", 1000)
	if queueSize <= 0 {
		queueSize = 1000
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		FrontendURL:  getEnv("FRONTEND_URL", ""),
		DBPath:       getEnv("DB_PATH", "./data/cemas.db"),
		StoreEngine:  strings.ToLower(getEnv("STORE_ENGINE", "sqlite")),
		CatalogDelay: getEnvDuration("CATALOG_DELAY", 500*time.Millisecond),
		Session: SessionConfig{
			IdleTTL:       getEnvDuration("SESSION_IDLE_TTL", 60*time.Minute),
			SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
			Retention:     getEnvDuration("SNAPSHOT_RETENTION", 0),
		},
		Reply: ReplyConfig{
			Backend: strings.ToLower(getEnv("REPLY_BACKEND", "canned")),
			Delay:   getEnvDuration("REPLY_DELAY", 1500*time.Millisecond),
			APIKey:  getEnv("LLM_API_KEY", ""),
			BaseURL: getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:   getEnv("LLM_MODEL", "meta-llama/llama-4-maverick-17b-128e-instruct"),
			Timeout: getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		},
		ChatRateLimit: RateLimitConfig{
			PerMinute: getEnvInt("CHAT_RATE_LIMIT_PER_MINUTE", 20),
			Burst:     getEnvInt("CHAT_RATE_LIMIT_BURST", 5),
		},
		ConversationLog: ConversationLogConfig{
			Enabled:   getEnvBool("CONVERSATION_LOG_ENABLED", true),
			Dir:       getEnv("CONVERSATION_LOG_DIR", "./data/logs/conversations"),
			QueueSize: queueSize,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	switch c.StoreEngine {
	case "sqlite", "json":
	default:
		return fmt.Errorf("STORE_ENGINE must be sqlite or json, got %q", c.StoreEngine)
	}
	switch c.Reply.Backend {
	case "canned":
	case "openai":
		if c.Reply.APIKey == "" {
			return fmt.Errorf("LLM_API_KEY is required when REPLY_BACKEND=openai")
		}
		if c.Reply.BaseURL == "" || c.Reply.Model == "" {
			return fmt.Errorf("LLM_BASE_URL and LLM_MODEL cannot be empty")
		}
	default:
		return fmt.Errorf("REPLY_BACKEND must be canned or openai, got %q", c.Reply.Backend)
	}
	if c.Session.IdleTTL < 0 || c.Session.Retention < 0 {
		return fmt.Errorf("SESSION_IDLE_TTL and SNAPSHOT_RETENTION must be >= 0")
	}
	if c.ChatRateLimit.PerMinute < 0 || c.ChatRateLimit.Burst < 0 {
		return fmt.Errorf("CHAT_RATE_LIMIT_PER_MINUTE and CHAT_RATE_LIMIT_BURST must be >= 0")
	}
	if c.ConversationLog.Dir == "" {
		return fmt.Errorf("CONVERSATION_LOG_DIR cannot be empty")
	}
	if c.ConversationLog.QueueSize <= 0 {
		return fmt.Errorf("CONVERSATION_LOG_QUEUE_SIZE must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

// AllowedOrigins returns the CORS origins for the configured frontend.
func (c *Config) AllowedOrigins() []string {
	if c.FrontendURL == "" {
		return []string{"*"}
	}
	origins := []string{}
	for _, o := range strings.Split(c.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
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

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
