package bootstrap

import (
	"context"

	"github.com/21R01A7263/docGPT/config"
	"github.com/21R01A7263/docGPT/platform/extract"
	"github.com/21R01A7263/docGPT/services"
)

type Services struct {
	Extractor  *extract.Extractor
	LLMService *services.LLMService
	Session    *services.SessionService
}

func NewServices(ctx context.Context, cfg *config.Config, infra *Infrastructure) (*Services, error) {
	res := &Services{}

	res.Extractor = extract.New(cfg.MaxFileSize)

	instruction, err := services.LoadSystemInstruction(cfg.SystemPromptFile)
	if err != nil {
		return nil, err
	}
	client, err := services.NewLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	res.LLMService = services.NewLLMService(client, instruction, infra.Cache, cfg.AnswerCacheTTL)

	res.Session = services.NewSessionService(res.Extractor, res.LLMService, infra.Publisher)
	return res, nil
}
