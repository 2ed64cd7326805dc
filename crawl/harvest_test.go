package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/sigstub"
	"github.com/fwojciec/sigstub/crawl"
	"github.com/fwojciec/sigstub/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "https://smlfamily.github.io/Basis"

// siteFetcher serves a fixed set of URLs and records the requests it sees.
type siteFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	seen  []string
}

func (f *siteFetcher) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.seen = append(f.seen, url)
			html, ok := f.pages[url]
			if !ok {
				return "", sigstub.Errorf(sigstub.ENOTFOUND, "HTTP 404: %s", url)
			}
			return html, nil
		},
	}
}

func staticSelector(links ...string) *mock.LinkSelector {
	return &mock.LinkSelector{
		SelectLinksFn: func(html string) ([]string, error) {
			return links, nil
		},
	}
}

func TestIndexURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, root+"/manpages.html", crawl.IndexURL(root, "manpages.html"))
	assert.Equal(t, root+"/manpages.html", crawl.IndexURL(root+"/", "/manpages.html"))
	assert.Equal(t, root+"/", crawl.IndexURL(root, ""))
}

func TestHarvester_Harvest(t *testing.T) {
	t.Parallel()

	t.Run("fetches linked pages in link order", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{
			root + "/manpages.html": "index",
			root + "/list.html":     "LIST",
			root + "/array.html":    "ARRAY",
		}}
		h := &crawl.Harvester{
			Fetcher:     site.fetcher(),
			Selector:    staticSelector("list.html", "array.html"),
			RetryDelays: []time.Duration{},
		}

		pages, err := h.Harvest(context.Background(), root, "manpages.html", nil)

		require.NoError(t, err)
		assert.Equal(t, []*sigstub.Page{
			{Name: "list", Text: "LIST"},
			{Name: "array", Text: "ARRAY"},
		}, pages)
	})

	t.Run("skips external and duplicate links", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{
			root + "/manpages.html": "index",
			root + "/list.html":     "LIST",
		}}
		h := &crawl.Harvester{
			Fetcher: site.fetcher(),
			Selector: staticSelector(
				"list.html",
				"https://www.standardml.org/Basis/list.html",
				"./list.html",
				"sub/../list.html#SIG",
				"list.htm",
			),
			RetryDelays: []time.Duration{},
		}

		pages, err := h.Harvest(context.Background(), root, "manpages.html", nil)

		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "list", pages[0].Name)
		assert.Len(t, site.seen, 2, "index and list only")
	})

	t.Run("keeps every distinct page when the dedupe filter saturates", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{root + "/manpages.html": "index"}}
		var links []string
		var want []*sigstub.Page
		for i := 0; i < 40; i++ {
			name := fmt.Sprintf("page%02d", i)
			site.pages[root+"/"+name+".html"] = name
			links = append(links, name+".html")
			want = append(want, &sigstub.Page{Name: name, Text: name})
		}
		h := &crawl.Harvester{
			Fetcher:     site.fetcher(),
			Selector:    staticSelector(links...),
			RetryDelays: []time.Duration{},
			SeenFPRate:  0.99,
		}

		pages, err := h.Harvest(context.Background(), root, "manpages.html", nil)

		require.NoError(t, err)
		assert.Equal(t, want, pages)
	})

	t.Run("names pages after their path below the index", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{
			root + "/manpages.html":               "index",
			root + "/posix/proc.html":             "PROC",
			"https://smlfamily.github.io/top.html": "TOP",
		}}
		h := &crawl.Harvester{
			Fetcher:     site.fetcher(),
			Selector:    staticSelector("posix/proc.html", "../top.html"),
			RetryDelays: []time.Duration{},
		}

		pages, err := h.Harvest(context.Background(), root, "manpages.html", nil)

		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, "posix/proc", pages[0].Name)
		assert.Equal(t, "top", pages[1].Name)
	})

	t.Run("a page that keeps failing fails the harvest", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{
			root + "/manpages.html": "index",
			root + "/list.html":     "LIST",
		}}
		h := &crawl.Harvester{
			Fetcher:     site.fetcher(),
			Selector:    staticSelector("list.html", "missing.html"),
			RetryDelays: []time.Duration{0},
		}

		pages, err := h.Harvest(context.Background(), root, "manpages.html", nil)

		require.Error(t, err)
		assert.Nil(t, pages)
		assert.Equal(t, sigstub.ENOTFOUND, sigstub.ErrorCode(err))
	})

	t.Run("fails when the index cannot be fetched", func(t *testing.T) {
		t.Parallel()

		h := &crawl.Harvester{
			Fetcher:     (&siteFetcher{}).fetcher(),
			Selector:    staticSelector(),
			RetryDelays: []time.Duration{},
		}

		_, err := h.Harvest(context.Background(), root, "manpages.html", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch index")
	})

	t.Run("propagates selector errors", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{root + "/manpages.html": "index"}}
		h := &crawl.Harvester{
			Fetcher: site.fetcher(),
			Selector: &mock.LinkSelector{
				SelectLinksFn: func(html string) ([]string, error) {
					return nil, errors.New("bad index")
				},
			},
			RetryDelays: []time.Duration{},
		}

		_, err := h.Harvest(context.Background(), root, "manpages.html", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "select links")
	})

	t.Run("waits on the limiter for every fetch", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{
			root + "/manpages.html": "index",
			root + "/list.html":     "LIST",
		}}
		var mu sync.Mutex
		var domains []string
		h := &crawl.Harvester{
			Fetcher:  site.fetcher(),
			Selector: staticSelector("list.html"),
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(ctx context.Context, domain string) error {
					mu.Lock()
					defer mu.Unlock()
					domains = append(domains, domain)
					return nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		_, err := h.Harvest(context.Background(), root, "manpages.html", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"smlfamily.github.io", "smlfamily.github.io"}, domains)
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{
			root + "/manpages.html": "index",
			root + "/a.html":        "A",
			root + "/b.html":        "B",
		}}
		h := &crawl.Harvester{
			Fetcher:     site.fetcher(),
			Selector:    staticSelector("a.html", "b.html"),
			Concurrency: 1,
			RetryDelays: []time.Duration{},
		}

		var events []crawl.ProgressEvent
		_, err := h.Harvest(context.Background(), root, "manpages.html", func(ev crawl.ProgressEvent) {
			events = append(events, ev)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, crawl.ProgressCompleted, events[1].Type)
		assert.Equal(t, crawl.ProgressCompleted, events[2].Type)
		assert.Equal(t, crawl.ProgressFinished, events[3].Type)
	})
}
