package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
)

const defaultBankTopK = 5

type QuestionBank interface {
	// Reference returns reference questions close to the role and skills,
	// formatted for the question prompt. Any failure yields "".
	Reference(ctx context.Context, jobRole string, skills []string) string
}

type questionBank struct {
	embedder EmbeddingService
	store    QdrantService
	topK     int
}

func NewQuestionBank(embedder EmbeddingService, store QdrantService, topK int) QuestionBank {
	if topK <= 0 {
		topK = defaultBankTopK
	}
	return &questionBank{
		embedder: embedder,
		store:    store,
		topK:     topK,
	}
}

func (b *questionBank) Reference(ctx context.Context, jobRole string, skills []string) string {
	query := fmt.Sprintf("Interview questions for a %s. Skills: %s", jobRole, strings.Join(skills, ", "))

	embedding, err := b.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		logger.Warn().Err(err).Msg("question bank embedding failed")
		return ""
	}

	results, err := b.store.SearchSimilar(ctx, embedding, QuestionBankKind, b.topK)
	if err != nil {
		logger.Warn().Err(err).Msg("question bank search failed")
		return ""
	}

	return FormatReferenceContext(results)
}
