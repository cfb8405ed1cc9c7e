package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/21R01A7263/docGPT/pkg/logging"
	"github.com/21R01A7263/docGPT/platform/cache"
	"github.com/21R01A7263/docGPT/platform/llm"
)

// LLMService is the AnswerProvider backed by a hosted model.
type LLMService struct {
	client      llm.Client
	instruction string
	answers     *cache.TypedCache[string]
	cacheTTL    time.Duration
}

// NewLLMService answers through client. A nil cacheService disables answer caching.
func NewLLMService(client llm.Client, instruction string, cacheService cache.CacheService, cacheTTL time.Duration) *LLMService {
	s := &LLMService{
		client:      client,
		instruction: instruction,
		cacheTTL:    cacheTTL,
	}
	if cacheService != nil {
		s.answers = cache.NewTypedCache[string](cacheService)
	}
	return s
}

func (s *LLMService) Answer(ctx context.Context, documentText, question string) (string, error) {
	start := time.Now()
	load := func(ctx context.Context) (string, error) {
		return s.client.Generate(ctx, llm.Request{
			SystemInstruction: BuildSystemInstruction(s.instruction, documentText),
			Prompt:            question,
			Temperature:       0,
		})
	}

	var (
		answer string
		err    error
	)
	if s.answers == nil {
		answer, err = load(ctx)
	} else {
		answer, err = s.answers.GetOrLoad(ctx, s.cacheKey(documentText, question), s.cacheTTL, load)
	}
	if err != nil {
		logging.Logger.Error("fail Answer", "provider", s.client.Provider(), "model", s.client.Model(), "error", err)
		return "", err
	}

	logging.Logger.Info("Answer",
		"provider", s.client.Provider(),
		"model", s.client.Model(),
		"duration_ms", time.Since(start).Milliseconds(),
		"answer_chars", len(answer),
	)
	return answer, nil
}

func (s *LLMService) cacheKey(documentText, question string) string {
	h := sha256.New()
	for _, part := range []string{s.client.Provider(), s.client.Model(), s.instruction, documentText, question} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "answer:" + hex.EncodeToString(h.Sum(nil))
}
