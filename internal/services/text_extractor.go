package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
)

// QualityFloor is the minimum number of non-whitespace characters extracted
// text needs before it is worth sending to the completion service.
const QualityFloor = 50

type TextExtractor interface {
	// Extract returns the plain text of a .pdf, .docx or .doc file. Unknown
	// extensions and unreadable files yield "".
	Extract(ctx context.Context, filePath string) string
}

type textExtractor struct {
	pdfParser PDFParserService
	links     LinkClassifier
	plain     PlainPDFReader
}

// NewTextExtractor builds the two-tier extractor. plain may be nil, in which
// case the rich pass is the only PDF reader.
func NewTextExtractor(pdfParser PDFParserService, links LinkClassifier, plain PlainPDFReader) TextExtractor {
	return &textExtractor{
		pdfParser: pdfParser,
		links:     links,
		plain:     plain,
	}
}

func (t *textExtractor) Extract(ctx context.Context, filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return t.extractPDF(ctx, filePath)
	case ".docx", ".doc":
		paragraphs, err := ReadDocxParagraphs(filePath)
		if err != nil {
			logger.Warn().Err(err).Str("file", filePath).Msg("docx extraction failed")
			return ""
		}
		return strings.Join(paragraphs, "\n")
	default:
		return ""
	}
}

func (t *textExtractor) extractPDF(ctx context.Context, filePath string) string {
	rich, err := t.richPDF(filePath)
	if err == nil && NonSpaceLen(rich.body) >= QualityFloor {
		return rich.body + rich.footer
	}

	if err != nil {
		logger.Warn().Err(err).Str("file", filePath).Msg("rich PDF pass failed, using plain reader")
	} else {
		logger.Warn().Str("file", filePath).Int("chars", NonSpaceLen(rich.body)).Msg("rich PDF pass below quality floor, using plain reader")
	}

	if t.plain == nil {
		return rich.body
	}

	plain, perr := t.plain.ReadText(ctx, filePath)
	if perr != nil {
		logger.Warn().Err(perr).Str("file", filePath).Msg("plain PDF reader failed")
		return rich.body
	}
	if NonSpaceLen(plain) < NonSpaceLen(rich.body) {
		return rich.body
	}
	return plain
}

type richText struct {
	body   string
	footer string
}

func (t *textExtractor) richPDF(filePath string) (richText, error) {
	content, err := t.pdfParser.ExtractPages(filePath)
	if err != nil {
		return richText{}, err
	}

	return richText{
		body:   content.Text,
		footer: LinkFooter(t.links.ExtractLinks(filePath)),
	}, nil
}

// LinkFooter renders links as the "Extracted Links" section appended to
// resume text, so the profile extractor can match projects to URLs.
func LinkFooter(links ExtractedLinks) string {
	if links.Empty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n--- Extracted Links ---\n")
	if links.GitHub != nil {
		fmt.Fprintf(&b, "GitHub Profile: %s\n", *links.GitHub)
	}
	if links.LinkedIn != nil {
		fmt.Fprintf(&b, "LinkedIn Profile: %s\n", *links.LinkedIn)
	}
	if links.Portfolio != nil {
		fmt.Fprintf(&b, "Portfolio Website: %s\n", *links.Portfolio)
	}

	b.WriteString("\nAll Hyperlinks found in resume:\n")
	for i, link := range links.AllLinks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, link)
	}

	return b.String()
}

// NonSpaceLen counts the runes of s that are not whitespace.
func NonSpaceLen(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
