package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/sigstub"
	"github.com/fwojciec/sigstub/bloom"
	"golang.org/x/sync/errgroup"
)

// Harvester downloads every manual page linked from a library index.
type Harvester struct {
	Fetcher     sigstub.Fetcher
	Selector    sigstub.LinkSelector
	RateLimiter sigstub.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger

	// SeenFPRate is the false positive rate of the link dedupe filter.
	// Defaults to DefaultSeenFPRate.
	SeenFPRate float64
}

// DefaultSeenFPRate keeps filter confirmations against the exact URL set rare.
const DefaultSeenFPRate = 1e-6

// IndexURL joins a library root URL and its index page name. An empty index
// means the root itself is the index.
func IndexURL(rootURL, index string) string {
	return strings.TrimSuffix(rootURL, "/") + "/" + strings.TrimPrefix(index, "/")
}

// Harvest fetches the index at rootURL/index, selects the page links and
// fetches each page. Pages come back in link order, named after their href
// without the ".html" suffix. Links to other hosts are skipped. Any page
// that still fails after retries fails the whole harvest: a partial
// harvest must never be cached as if it were complete.
func (h *Harvester) Harvest(ctx context.Context, rootURL, index string, progress ProgressFunc) ([]*sigstub.Page, error) {
	indexURL := IndexURL(rootURL, index)
	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, sigstub.Errorf(sigstub.EINVALID, "invalid index URL %q: %v", indexURL, err)
	}

	delays := h.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	if err := waitURL(ctx, h.RateLimiter, indexURL); err != nil {
		return nil, err
	}
	indexHTML, err := FetchWithRetry(ctx, h.Fetcher, indexURL, delays, h.Logger)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	links, err := h.Selector.SelectLinks(indexHTML)
	if err != nil {
		return nil, fmt.Errorf("select links: %w", err)
	}
	targets := h.targets(base, links)

	concurrency := h.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	total := len(targets)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	pages := make([]*sigstub.Page, total)
	// mu serializes progress callbacks.
	var mu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, t := range targets {
		g.Go(func() error {
			if err := waitURL(gctx, h.RateLimiter, t.url); err != nil {
				return err
			}
			text, err := FetchWithRetry(gctx, h.Fetcher, t.url, delays, h.Logger)
			if progress != nil {
				mu.Lock()
				completed++
				ev := ProgressEvent{
					Type:      ProgressCompleted,
					Completed: completed,
					Total:     total,
					Name:      t.name,
					Error:     err,
				}
				if err != nil {
					ev.Type = ProgressFailed
				}
				progress(ev)
				mu.Unlock()
			}
			if err != nil {
				return fmt.Errorf("fetch %s: %w", t.url, err)
			}
			pages[i] = &sigstub.Page{Name: t.name, Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return pages, nil
}

type target struct {
	name string
	url  string
}

// targets resolves links against the index URL, dropping external links
// and links that resolve to an already-seen URL or page name.
//
// URL dedupe runs through a bloom filter first: a "new" answer is
// definite, a "seen" answer is confirmed against the exact URL set, so a
// false positive never drops a page.
func (h *Harvester) targets(base *url.URL, links []string) []target {
	fpRate := h.SeenFPRate
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultSeenFPRate
	}
	seen := bloom.NewSet(uint(len(links)+1), fpRate)
	urls := make(map[string]bool, len(links))
	names := make(map[string]bool, len(links))

	var out []target
	for _, href := range links {
		ref, err := url.Parse(href)
		if err != nil {
			h.debug("skip unparsable link", "href", href, "err", err)
			continue
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""
		if resolved.Host != base.Host {
			h.debug("skip external link", "href", href)
			continue
		}
		key := resolved.String()
		if !seen.Insert(key) && urls[key] {
			h.debug("skip duplicate link", "href", href, "url", key)
			continue
		}
		urls[key] = true

		name := pageName(base, resolved)
		if name == "" || names[name] {
			h.debug("skip duplicate page name", "href", href, "name", name)
			continue
		}
		names[name] = true
		out = append(out, target{name: name, url: key})
	}
	h.debug("selected pages", "links", len(links), "pages", len(out), "distinct_urls", seen.EstimatedCount())
	return out
}

// pageName names a page after its path relative to the index directory.
func pageName(base, resolved *url.URL) string {
	dir := path.Dir(base.Path)
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	rel, ok := strings.CutPrefix(resolved.Path, dir)
	if !ok {
		rel = path.Base(resolved.Path)
	}
	return sigstub.PageName(rel)
}

func (h *Harvester) debug(msg string, args ...any) {
	if h.Logger != nil {
		h.Logger.Debug(msg, args...)
	}
}
