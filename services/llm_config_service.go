package services

import (
	"context"
	"fmt"

	"github.com/21R01A7263/docGPT/config"
	"github.com/21R01A7263/docGPT/pkg/logging"
	"github.com/21R01A7263/docGPT/platform/llm"
)

// NewLLMClient builds the model client selected by cfg.
func NewLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	llmConfig := llm.Config{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.APIKey(),
		Model:    cfg.Model(),
	}
	if cfg.IsOpenAI() {
		llmConfig.BaseURL = cfg.OpenAIBaseURL
	}

	client, err := llm.NewClient(ctx, llmConfig)
	if err != nil {
		return nil, fmt.Errorf("LLM configuration required: %w", err)
	}

	logging.Logger.Info("LLM client ready",
		"provider", client.Provider(),
		"model", client.Model(),
		"apiKey", MaskAPIKey(llmConfig.APIKey),
	)
	return client, nil
}

// MaskAPIKey hides all but the ends of a key for logging.
func MaskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "***"
	}
	return apiKey[:4] + "***" + apiKey[len(apiKey)-4:]
}
