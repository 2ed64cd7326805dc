package main

import (
	"fmt"

	"github.com/fwojciec/sigstub"
	"github.com/fwojciec/sigstub/crawl"
)

// Run loads the library pages, from the cache when it is populated and
// from the network otherwise, processes them and commits the stubs.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	pages, err := c.pages(deps)
	if err != nil {
		return err
	}

	results, err := deps.Processor.ProcessAll(deps.Ctx, pages, nil)
	if err != nil {
		return err
	}

	var summary sigstub.Summary
	for _, r := range results {
		summary.Record(r.Err, r.Warnings)
		deps.Reporter.Report(r.Warnings)
		if r.Err != nil {
			deps.Reporter.ReportError(r.Page, r.Err)
			continue
		}
		if err := deps.Stubs.Save(deps.Ctx, r.Stub); err != nil {
			_ = deps.Stubs.Abort()
			return fmt.Errorf("save stub %s: %w", r.Page, err)
		}
	}
	if err := deps.Stubs.Commit(); err != nil {
		_ = deps.Stubs.Abort()
		return fmt.Errorf("commit stubs: %w", err)
	}

	fmt.Fprint(deps.Stdout, sigstub.FormatSummary(&summary))
	return nil
}

// pages decides once, before any processing, whether to reuse the cache.
func (c *GenerateCmd) pages(deps *Dependencies) ([]*sigstub.Page, error) {
	if !c.Refresh {
		ok, err := deps.Cache.Exists(deps.Ctx)
		if err != nil {
			return nil, fmt.Errorf("check page cache: %w", err)
		}
		if ok {
			return deps.Cache.Load(deps.Ctx)
		}
	}

	pages, err := deps.Harvester.Harvest(deps.Ctx, c.Library.RootURL, c.Library.Index, c.progress(deps))
	if err != nil {
		return nil, fmt.Errorf("harvest %s: %w", c.Library.Name, err)
	}
	if err := deps.Cache.Store(deps.Ctx, pages); err != nil {
		return nil, fmt.Errorf("store page cache: %w", err)
	}

	var size int
	for _, p := range pages {
		size += len(p.Text)
	}
	fmt.Fprintf(deps.Stderr, "Fetched %d pages (%s)\n", len(pages), crawl.FormatBytes(size))
	return pages, nil
}

func (c *GenerateCmd) progress(deps *Dependencies) crawl.ProgressFunc {
	return func(ev crawl.ProgressEvent) {
		if line := crawl.FormatProgress("Fetching", ev); line != "" {
			fmt.Fprintln(deps.Stderr, line)
		}
	}
}
