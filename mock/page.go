package mock

import (
	"context"

	"github.com/fwojciec/sigstub"
)

var _ sigstub.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of sigstub.LinkSelector.
type LinkSelector struct {
	SelectLinksFn func(html string) ([]string, error)
}

func (s *LinkSelector) SelectLinks(html string) ([]string, error) {
	return s.SelectLinksFn(html)
}

var _ sigstub.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of sigstub.PageExtractor.
type PageExtractor struct {
	ExtractFn func(page *sigstub.Page) (*sigstub.PageInfo, sigstub.Warnings, error)
}

func (e *PageExtractor) Extract(page *sigstub.Page) (*sigstub.PageInfo, sigstub.Warnings, error) {
	return e.ExtractFn(page)
}

var _ sigstub.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of sigstub.PageCache.
type PageCache struct {
	ExistsFn func(ctx context.Context) (bool, error)
	LoadFn   func(ctx context.Context) ([]*sigstub.Page, error)
	StoreFn  func(ctx context.Context, pages []*sigstub.Page) error
}

func (c *PageCache) Exists(ctx context.Context) (bool, error) {
	return c.ExistsFn(ctx)
}

func (c *PageCache) Load(ctx context.Context) ([]*sigstub.Page, error) {
	return c.LoadFn(ctx)
}

func (c *PageCache) Store(ctx context.Context, pages []*sigstub.Page) error {
	return c.StoreFn(ctx, pages)
}
