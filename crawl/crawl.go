// Package crawl orchestrates a library run: harvesting the manual pages
// of a library and turning each page into a stub concurrently.
package crawl

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/sigstub"
	"golang.org/x/sync/errgroup"
)

// ProgressEvent reports progress while pages are fetched or processed.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Name      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

// Result is the outcome of processing one page.
type Result struct {
	Page     string
	Stub     *sigstub.Stub
	Warnings sigstub.Warnings
	Err      error
}

// Processor turns pages into stubs. Pages are independent, so they are
// processed concurrently; each run only touches its own state.
type Processor struct {
	Extractor   sigstub.PageExtractor
	Emitter     *sigstub.Emitter
	Concurrency int
}

// Process runs the pipeline on a single page.
func (p *Processor) Process(page *sigstub.Page) Result {
	em := p.Emitter
	if em == nil {
		em = &sigstub.Emitter{}
	}
	stub, ws, err := sigstub.ProcessPage(p.Extractor, em, page)
	return Result{Page: page.Name, Stub: stub, Warnings: ws, Err: err}
}

// ProcessAll processes every page and returns the results in input order.
// A malformed page only fails its own Result. The returned error is
// reserved for batch-level problems: duplicate page names or a canceled
// context.
func (p *Processor) ProcessAll(ctx context.Context, pages []*sigstub.Page, progress ProgressFunc) ([]Result, error) {
	seen := make(map[string]bool, len(pages))
	for _, page := range pages {
		if seen[page.Name] {
			return nil, sigstub.Errorf(sigstub.EINVALID, "duplicate page name %q", page.Name)
		}
		seen[page.Name] = true
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	total := len(pages)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	results := make([]Result, total)
	events := make(chan ProgressEvent, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	go func() {
		for i, page := range pages {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = p.Process(page)
				ev := ProgressEvent{
					Type:      ProgressCompleted,
					Completed: int(completed.Add(1)),
					Total:     total,
					Name:      page.Name,
					Error:     results[i].Err,
				}
				if ev.Error != nil {
					ev.Type = ProgressFailed
				}
				events <- ev
				return nil
			})
		}
		_ = g.Wait()
		close(events)
	}()

	for ev := range events {
		if progress != nil {
			progress(ev)
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return results, nil
}
