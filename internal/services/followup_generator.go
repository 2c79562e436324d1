package services

import (
	"context"
	"strings"

	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
)

const (
	FallbackFollowUp = "Can you elaborate more on that with a specific example?"
	followUpTemp     = 0.7
	followUpTokens   = 200
)

type FollowUpGenerator interface {
	Generate(ctx context.Context, question, answer, jobRole string) string
}

type followUpGenerator struct {
	llm           CompletionService
	promptBuilder *PromptBuilder
}

func NewFollowUpGenerator(llm CompletionService) FollowUpGenerator {
	return &followUpGenerator{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
	}
}

func (f *followUpGenerator) Generate(ctx context.Context, question, answer, jobRole string) string {
	raw, err := f.llm.Complete(ctx, CompletionRequest{
		SystemPrompt: followUpSystemPrompt,
		UserPrompt:   f.promptBuilder.BuildFollowUpPrompt(question, answer, jobRole),
		Temperature:  followUpTemp,
		MaxTokens:    followUpTokens,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️ follow-up generation failed, using fallback")
		return FallbackFollowUp
	}

	text := strings.Trim(strings.TrimSpace(raw), `"'`)
	if text == "" {
		return FallbackFollowUp
	}
	return text
}
