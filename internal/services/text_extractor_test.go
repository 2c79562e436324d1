package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlainReader struct {
	text  string
	err   error
	calls int
}

func (s *stubPlainReader) ReadText(context.Context, string) (string, error) {
	s.calls++
	return s.text, s.err
}

func newTestTextExtractor(plain PlainPDFReader) TextExtractor {
	return NewTextExtractor(NewPDFParserService(), NewLinkClassifier(), plain)
}

func TestTextExtractor_Docx(t *testing.T) {
	path := writeDocx(t, t.TempDir(), "resume.docx", "Jane Doe", "Go developer", "Berlin")

	text := newTestTextExtractor(nil).Extract(context.Background(), path)

	assert.Equal(t, "Jane Doe\nGo developer\nBerlin", text)
}

func TestTextExtractor_DocWithoutDocxBodyIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.doc")
	require.NoError(t, os.WriteFile(path, []byte("binary word 97 file"), 0o644))

	assert.Equal(t, "", newTestTextExtractor(nil).Extract(context.Background(), path))
}

func TestTextExtractor_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte(resumeText), 0o644))

	assert.Equal(t, "", newTestTextExtractor(nil).Extract(context.Background(), path))
}

func TestTextExtractor_RichPDFWithLinkFooter(t *testing.T) {
	body := "Jane Doe Senior Backend Engineer building payment services in Go"
	path := writePDF(t, t.TempDir(), "resume.pdf", body, "https://github.com/janedoe")
	plain := &stubPlainReader{}

	text := newTestTextExtractor(plain).Extract(context.Background(), path)

	assert.Contains(t, text, "--- Page 1 ---")
	assert.Contains(t, text, body)
	assert.Contains(t, text, "--- Extracted Links ---")
	assert.Contains(t, text, "GitHub Profile: https://github.com/janedoe")
	assert.Contains(t, text, "1. https://github.com/janedoe")
	assert.Zero(t, plain.calls)
}

func TestTextExtractor_FallsBackBelowQualityFloor(t *testing.T) {
	path := writePDF(t, t.TempDir(), "short.pdf", "Jane")
	plain := &stubPlainReader{text: "\n--- Page 1 ---\n" + strings.Repeat("plain reader text ", 10)}

	text := newTestTextExtractor(plain).Extract(context.Background(), path)

	assert.Equal(t, 1, plain.calls)
	assert.Equal(t, plain.text, text)
}

func TestTextExtractor_KeepsRichTextWhenPlainFails(t *testing.T) {
	path := writePDF(t, t.TempDir(), "short.pdf", "Jane")
	plain := &stubPlainReader{err: errors.New("parser exploded")}

	text := newTestTextExtractor(plain).Extract(context.Background(), path)

	assert.Contains(t, text, "Jane")
	assert.NotContains(t, text, "Extracted Links")
}

func TestLinkFooter(t *testing.T) {
	links := ClassifyLinks([]string{"https://linkedin.com/in/jane", "https://jane.netlify.app"})

	footer := LinkFooter(links)

	assert.Equal(t, "\n--- Extracted Links ---\n"+
		"LinkedIn Profile: https://linkedin.com/in/jane\n"+
		"Portfolio Website: https://jane.netlify.app\n"+
		"\nAll Hyperlinks found in resume:\n"+
		"1. https://linkedin.com/in/jane\n"+
		"2. https://jane.netlify.app\n", footer)
	assert.Equal(t, "", LinkFooter(ExtractedLinks{}))
}

func TestNonSpaceLen(t *testing.T) {
	assert.Equal(t, 0, NonSpaceLen(" \n\t "))
	assert.Equal(t, 6, NonSpaceLen(" ab c\nd ef "))
}
