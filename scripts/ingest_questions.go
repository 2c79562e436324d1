package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vis-hal-git/Ai-interviewer/internal/config"
	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
	"github.com/vis-hal-git/Ai-interviewer/internal/services"
)

const defaultSourceDir = "./reference_docs/questions"

// Loads reference interview-question documents (.pdf, .txt, .md) into the
// question bank collection. Usage: go run ./scripts [dir]
func main() {
	cfg := config.Load()
	logger.Init(cfg.Log)
	logger.Info().Msg("🚀 Starting question bank ingestion...")

	if cfg.Qdrant.URL == "" {
		logger.Fatal().Msg("❌ QDRANT_URL is not set")
	}

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize Gemini")
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize Qdrant")
	}
	if err := qdrantService.InitCollection(ctx); err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize collection")
	}

	dir := defaultSourceDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := referenceFiles(dir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", dir).Msg("❌ Failed to list reference documents")
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	successCount, failCount := 0, 0
	for _, path := range files {
		source := filepath.Base(path)
		logger.Info().Str("source", source).Msg("📄 Processing reference document")

		text, err := readReference(pdfParser, path)
		if err != nil {
			logger.Error().Err(err).Str("source", source).Msg("❌ Failed to extract text")
			failCount++
			continue
		}

		// re-ingesting a source replaces its chunks
		if err := qdrantService.DeleteSource(ctx, source); err != nil {
			logger.Warn().Err(err).Str("source", source).Msg("⚠️ Failed to clear previous chunks")
		}

		chunks := chunker.ChunkText(text, 800, 100)
		stored := 0
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				logger.Error().Err(err).Int("chunk", i+1).Msg("❌ Failed to generate embedding")
				continue
			}

			if err := qdrantService.UpsertChunk(ctx, source, services.QuestionBankKind, chunk, embedding); err != nil {
				logger.Error().Err(err).Int("chunk", i+1).Msg("❌ Failed to store chunk")
				continue
			}
			stored++
		}

		logger.Info().Str("source", source).Int("chunks", len(chunks)).Int("stored", stored).Msg("✅ Ingested")
		if stored == 0 {
			failCount++
			continue
		}
		successCount++
	}

	logger.Info().Int("successful", successCount).Int("failed", failCount).Msg("📊 Ingestion summary")

	if failCount > 0 {
		logger.Warn().Msg("⚠️ Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}
}

func referenceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf", ".txt", ".md":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func readReference(pdfParser services.PDFParserService, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		content, err := pdfParser.ExtractPages(path)
		if err != nil {
			return "", err
		}
		return content.Text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
