package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
)

// CompletionRequest is one system + user exchange with sampling limits.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int32
}

type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type EmbeddingService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type GeminiService interface {
	CompletionService
	EmbeddingService
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(ctx context.Context, apiKey, modelName, embedModel string) (GeminiService, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: embedModel,
	}, nil
}

// GenerateEmbedding implements EmbeddingService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// ~10k tokens
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// Complete implements CompletionService.
func (g *geminiService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: req.MaxTokens,
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(req.UserPrompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamService, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrUpstreamService)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		logger.Warn().Str("model", g.modelName).Int("candidates", len(resp.Candidates)).Msg("gemini returned no text content")
		return "", fmt.Errorf("%w: no text content in response", ErrMalformedResponse)
	}

	return text, nil
}

// CompleteWithRetry issues req up to maxAttempts times, strictly one after
// another. Only transport/service errors are retried; a reply that arrived
// but is unusable (ErrMalformedResponse) is returned at once.
func CompleteWithRetry(ctx context.Context, svc CompletionService, req CompletionRequest, maxAttempts int) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := svc.Complete(ctx, req)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if errors.Is(err, ErrMalformedResponse) {
			return "", err
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: context cancelled: %v", ErrUpstreamService, ctx.Err())
		default:
		}

		if attempt < maxAttempts {
			logger.Warn().Err(err).Int("attempt", attempt).Msg("completion attempt failed, retrying")
		}
	}

	if !errors.Is(lastErr, ErrUpstreamService) {
		lastErr = fmt.Errorf("%w: %v", ErrUpstreamService, lastErr)
	}
	return "", fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}
