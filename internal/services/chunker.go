package services

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultChunkSize    = 800
	defaultChunkOverlap = 100
)

type TextChunker interface {
	// ChunkText splits reference documents into embedding-sized pieces.
	// Paragraph boundaries are kept where possible; oversized paragraphs
	// are split on sentence ends.
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var units []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= maxChunkSize {
			units = append(units, para)
			continue
		}
		units = append(units, splitIntoSentences(para)...)
	}

	var (
		chunks  []string
		current strings.Builder
	)
	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunk := current.String()
		chunks = append(chunks, chunk)
		current.Reset()
		if tail := lastRunes(chunk, overlap); tail != "" {
			current.WriteString(tail)
		}
	}

	for _, unit := range units {
		if current.Len() > 0 && utf8.RuneCountInString(current.String())+utf8.RuneCountInString(unit)+1 > maxChunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(unit)
	}

	// what remains after the last flush is either new text or pure overlap
	if rest := current.String(); rest != "" && (len(chunks) == 0 || rest != lastRunes(chunks[len(chunks)-1], overlap)) {
		chunks = append(chunks, rest)
	}

	return chunks
}

// splitIntoSentences cuts on '.', '!' and '?' and keeps the terminator.
func splitIntoSentences(text string) []string {
	var (
		sentences []string
		start     int
	)
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
