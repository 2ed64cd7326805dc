package sigstub

import (
	"context"
	"path"
	"strings"
)

// Page is one raw manual page. Name is unique within a run and is already
// stripped of its ".html" suffix.
type Page struct {
	Name string
	Text string // HTML
}

// PageInfo is what the extractor recovers from a single page.
type PageInfo struct {
	// SignatureName is the whole first synopsis line (e.g. "signature LIST")
	// when it starts with the signature keyword. Empty means absent.
	SignatureName string

	// AuxiliaryNames are the remaining synopsis lines, the structures and
	// functors documented on the same page.
	AuxiliaryNames []string

	// Description holds the free-text paragraphs that follow the synopsis.
	Description []string

	// Declarations are the interface specs in page order. The order is the
	// emission order.
	Declarations []string

	DocEntries []DocEntry
}

// DocEntry pairs one or more documented names (dt) with a prose block (dd).
type DocEntry struct {
	Names []string
	Prose string // empty means absent
}

// Validate returns an error if the entry has no names.
func (e *DocEntry) Validate() error {
	if len(e.Names) == 0 {
		return Errorf(EINVALID, "doc entry has no names")
	}
	return nil
}

// PageExtractor parses one page into a PageInfo.
type PageExtractor interface {
	// Extract returns the page's info together with the data-quality
	// warnings found on the way. A returned ESTRUCTURE error means the page
	// is malformed and must be skipped.
	Extract(page *Page) (*PageInfo, Warnings, error)
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// LinkSelector picks the manual page links out of a library index page.
type LinkSelector interface {
	// SelectLinks returns the hrefs of the matching anchors in document
	// order, without fragments and without duplicates.
	SelectLinks(html string) ([]string, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// PageCache keeps the harvested HTML of a library so later runs can skip
// the network entirely.
type PageCache interface {
	// Exists reports whether a previous run populated the cache.
	Exists(ctx context.Context) (bool, error)

	// Load returns every cached page, ordered by name.
	Load(ctx context.Context) ([]*Page, error)

	// Store replaces the cache contents with pages.
	Store(ctx context.Context, pages []*Page) error
}

// PageName derives a page name from a link href: the cleaned relative path
// with any fragment or query removed and a trailing ".html" or ".htm"
// dropped. The name never escapes its directory.
func PageName(href string) string {
	if i := strings.IndexAny(href, "#?"); i != -1 {
		href = href[:i]
	}
	href = strings.TrimPrefix(path.Clean("/"+href), "/")
	href = strings.TrimSuffix(href, ".html")
	return strings.TrimSuffix(href, ".htm")
}
