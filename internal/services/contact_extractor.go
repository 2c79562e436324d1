package services

import (
	"regexp"
	"strings"
)

// ContactInfo holds the regex-sourced contact fields. A nil field was not found.
type ContactInfo struct {
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	LinkedIn  *string `json:"linkedin"`
	GitHub    *string `json:"github"`
	Portfolio *string `json:"portfolio"`
}

type ContactExtractor interface {
	Extract(text string) ContactInfo
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// Order matters: the first pattern with any match wins.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{3,4}[-.\s]?\d{3,4}[-.\s]?\d{3,4}`),
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),
	}

	linkedinPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w-]+`)
	githubPattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w-]+`)

	portfolioPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?[\w-]+\.vercel\.app/?[\w/-]*`),
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?[\w-]+\.netlify\.app/?[\w/-]*`),
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?[\w-]+\.herokuapp\.com/?[\w/-]*`),
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?[\w-]+\.github\.io/?[\w/-]*`),
		regexp.MustCompile(`(?i)(?:https?://)?portfolio\.[\w-]+\.[\w.]+/?[\w/-]*`),
	}
)

type contactExtractor struct{}

func NewContactExtractor() ContactExtractor {
	return &contactExtractor{}
}

// Extract implements ContactExtractor. It never fails.
func (e *contactExtractor) Extract(text string) ContactInfo {
	return ContactInfo{
		Email:     firstMatch(text, emailPattern),
		Phone:     firstMatch(text, phonePatterns...),
		LinkedIn:  firstMatch(text, linkedinPattern),
		GitHub:    firstMatch(text, githubPattern),
		Portfolio: firstMatch(text, portfolioPatterns...),
	}
}

func firstMatch(text string, patterns ...*regexp.Regexp) *string {
	for _, p := range patterns {
		if m := p.FindString(text); m != "" {
			m = strings.TrimSpace(m)
			return &m
		}
	}
	return nil
}
