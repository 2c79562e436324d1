package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

// PlainPDFReader is the cheaper fallback reader. It does not look at links.
type PlainPDFReader interface {
	ReadText(ctx context.Context, filePath string) (string, error)
}

type einoPDFReader struct {
	parser *pdf.PDFParser
}

func NewPlainPDFReader(ctx context.Context) (PlainPDFReader, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: true})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino PDF parser: %w", err)
	}

	return &einoPDFReader{parser: p}, nil
}

func (e *einoPDFReader) ReadText(ctx context.Context, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF file %s: %w", filePath, err)
	}
	defer file.Close()

	docs, err := e.parser.Parse(ctx, file,
		einoParser.WithURI(filePath),
		einoParser.WithExtraMeta(map[string]any{"source_file_path": filePath}),
	)
	if err != nil {
		return "", fmt.Errorf("eino PDF parser failed for %s: %w", filePath, err)
	}

	var b strings.Builder
	for i, doc := range docs {
		if doc == nil || strings.TrimSpace(doc.Content) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n--- Page %d ---\n", i+1)
		b.WriteString(doc.Content)
		b.WriteString("\n")
	}

	return b.String(), nil
}
