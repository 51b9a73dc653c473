// Package docs serves the portal's static documentation pages. Pages are
// markdown files resolved through a fixed table and rendered to sanitized
// HTML once at startup.
package docs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Page identifies one documentation page.
type Page string

const (
	PageAbout   Page = "about"
	PageFAQ     Page = "faq"
	PagePrivacy Page = "privacy"
	PageTerms   Page = "terms"
)

// pageFiles is the full page table. Construction fails unless every listed
// file exists and renders.
var pageFiles = map[Page]string{
	PageAbout:   "about.md",
	PageFAQ:     "faq.md",
	PagePrivacy: "privacy.md",
	PageTerms:   "terms.md",
}

// Service renders and caches the documentation pages.
type Service struct {
	pages map[Page][]byte
}

// NewService loads every page from dir. Any missing or unrenderable file is
// a startup error.
func NewService(dir string) (*Service, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	policy := sanitizerPolicy()

	pages := make(map[Page][]byte, len(pageFiles))
	for page, filename := range pageFiles {
		source, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			return nil, fmt.Errorf("docs page %q: %w", page, err)
		}
		var buf bytes.Buffer
		if err := md.Convert(source, &buf); err != nil {
			return nil, fmt.Errorf("render docs page %q: %w", page, err)
		}
		pages[page] = policy.SanitizeBytes(buf.Bytes())
	}
	return &Service{pages: pages}, nil
}

// Render returns the sanitized HTML for page. The second return is false for
// pages outside the table.
func (s *Service) Render(page Page) ([]byte, bool) {
	html, ok := s.pages[page]
	return html, ok
}

// Pages lists every page the service can render.
func (s *Service) Pages() []Page {
	out := make([]Page, 0, len(s.pages))
	for page := range s.pages {
		out = append(out, page)
	}
	return out
}

// sanitizerPolicy allows only the markup the markdown renderer emits for
// plain prose pages. Links keep href; everything else is stripped.
func sanitizerPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(
		"blockquote", "code", "em",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"li", "ol", "p", "pre", "strong", "ul",
	)
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowStandardURLs()
	return policy
}
