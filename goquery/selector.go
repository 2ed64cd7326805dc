package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sigstub"
)

var _ sigstub.LinkSelector = (*Selector)(nil)

// Selector picks manual page links out of a library index with a CSS
// selector, e.g. "h4 a" for the SML Basis manpages index.
type Selector struct {
	css string
}

// NewSelector creates a Selector matching anchors with css.
func NewSelector(css string) *Selector {
	return &Selector{css: css}
}

// SelectLinks implements sigstub.LinkSelector. Fragments are stripped;
// anchor-only and non-HTTP links are skipped; duplicates keep their first
// position.
func (s *Selector) SelectLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sigstub.Errorf(sigstub.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find(s.css).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if isNonHTTPLink(href) {
			return
		}
		if idx := strings.Index(href, "#"); idx != -1 {
			href = href[:idx]
		}
		if href == "" || seen[href] {
			return
		}
		seen[href] = true
		links = append(links, href)
	})
	return links, nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
