package services

import (
	"net/url"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
)

// ExtractedLinks buckets the external URLs embedded in a PDF.
type ExtractedLinks struct {
	GitHub       *string  `json:"github"`
	LinkedIn     *string  `json:"linkedin"`
	Portfolio    *string  `json:"portfolio"`
	ProjectLinks []string `json:"project_links"`
	AllLinks     []string `json:"all_links"`
}

func (l ExtractedLinks) Empty() bool {
	return len(l.AllLinks) == 0
}

type LinkClassifier interface {
	// ExtractLinks never fails; unreadable documents yield an empty result.
	ExtractLinks(filePath string) ExtractedLinks
}

var freeHostingSuffixes = []string{".vercel.app", ".netlify.app", ".herokuapp.com", ".github.io"}

type linkClassifier struct{}

func NewLinkClassifier() LinkClassifier {
	return &linkClassifier{}
}

// ExtractLinks implements LinkClassifier.
func (c *linkClassifier) ExtractLinks(filePath string) (links ExtractedLinks) {
	var urls []string

	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn().Interface("panic", rec).Str("file", filePath).Msg("hyperlink extraction aborted, keeping partial result")
		}
		links = ClassifyLinks(urls)
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		logger.Warn().Err(err).Str("file", filePath).Msg("could not open PDF for hyperlink extraction")
		return
	}
	defer f.Close()

	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		urls = append(urls, pageURIs(r, pageIndex)...)
	}

	if len(urls) > 0 {
		logger.Debug().Int("count", len(urls)).Str("file", filePath).Msg("🔗 extracted hyperlinks from PDF")
	}
	return
}

// pageURIs returns the URI actions of one page's annotations. A malformed
// page yields whatever was collected before the failure.
func pageURIs(r *pdf.Reader, pageIndex int) (uris []string) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn().Interface("panic", rec).Int("page", pageIndex).Msg("skipping unreadable page annotations")
		}
	}()

	page := r.Page(pageIndex)
	if page.V.IsNull() {
		return nil
	}

	annots := page.V.Key("Annots")
	for i := 0; i < annots.Len(); i++ {
		uri := strings.TrimSpace(annots.Index(i).Key("A").Key("URI").RawString())
		if uri != "" {
			uris = append(uris, uri)
		}
	}
	return uris
}

// ClassifyLinks buckets urls in order. The last GitHub and LinkedIn profile
// win their slots. The first free-hosting URL is the portfolio and later ones
// become project links. Every url lands in AllLinks.
func ClassifyLinks(urls []string) ExtractedLinks {
	links := ExtractedLinks{
		ProjectLinks: []string{},
		AllLinks:     []string{},
	}

	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		links.AllLinks = append(links.AllLinks, raw)

		host, path := splitURL(raw)
		switch {
		case host == "github.com" && isProfilePath(path):
			links.GitHub = stringPtr(raw)
		case (host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com")) && strings.HasPrefix(path, "/in/"):
			links.LinkedIn = stringPtr(raw)
		case isFreeHosting(host):
			if links.Portfolio == nil {
				links.Portfolio = stringPtr(raw)
			} else {
				links.ProjectLinks = append(links.ProjectLinks, raw)
			}
		}
	}

	return links
}

func splitURL(raw string) (host, path string) {
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return "", ""
	}

	host = strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return host, strings.ToLower(u.Path)
}

// isProfilePath reports whether path names a single account, e.g. "/octocat".
func isProfilePath(path string) bool {
	trimmed := strings.Trim(path, "/")
	return trimmed != "" && !strings.Contains(trimmed, "/")
}

func isFreeHosting(host string) bool {
	for _, suffix := range freeHostingSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

func stringPtr(s string) *string {
	return &s
}
