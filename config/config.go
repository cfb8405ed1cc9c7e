package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HttpPort     string
	AppEnv       string
	AllowOrigins string

	// LLM
	LLMProvider      string
	GeminiAPIKey     string
	GeminiModel      string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	SystemPromptFile string

	// Redis
	RedisURL      string
	RedisPassword string

	// others
	MaxFileSize    int64
	AnswerCacheTTL time.Duration
	InboxDir       string
}

// LoadEnv reads a .env file into the environment. A missing file is not an error.
func LoadEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func LoadConfig() *Config {
	return &Config{
		HttpPort:         getEnv("PORT", "3000"),
		AppEnv:           getEnv("APP_ENV", "dev"),
		AllowOrigins:     getEnv("ALLOWORIGINS", "*"),
		LLMProvider:      NormalizeProvider(getEnv("LLM_PROVIDER", "gemini")),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		SystemPromptFile: os.Getenv("SYSTEM_PROMPT_FILE"),
		RedisURL:         os.Getenv("REDIS_URL"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		MaxFileSize:      getEnvInt64("MAX_FILE_SIZE", 50*1024*1024),
		AnswerCacheTTL:   getEnvDuration("ANSWER_CACHE_TTL", 2*time.Hour),
		InboxDir:         os.Getenv("INBOX_DIR"),
	}
}

// NormalizeProvider lowercases and trims a provider name.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

// IsOpenAI reports whether the OpenAI provider is selected, ignoring case.
func (c *Config) IsOpenAI() bool {
	return NormalizeProvider(c.LLMProvider) == "openai"
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	if c.IsOpenAI() {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// Model returns the model for the configured provider.
func (c *Config) Model() string {
	if c.IsOpenAI() {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
