package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

var (
	ErrEmptyResponse   = errors.New("the model returned an empty response")
	ErrMissingAPIKey   = errors.New("api key is required")
	ErrUnknownProvider = errors.New("unknown llm provider")
)

// Request is a single-turn generation. There is no conversation memory.
type Request struct {
	SystemInstruction string
	Prompt            string
	Temperature       float32
}

type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
	Provider() string
	Model() string
}

type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewClient builds the client for cfg.Provider. An empty provider means Gemini.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGemini:
		return newGeminiClient(ctx, cfg)
	case ProviderOpenAI:
		return newOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
