package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/sigstub"
)

// HTMLExt is the file suffix of cached pages.
const HTMLExt = ".html"

// Ensure PageCache implements sigstub.PageCache at compile time.
var _ sigstub.PageCache = (*PageCache)(nil)

// PageCache stores harvested pages as <name>.html files in one directory.
// The directory's presence is what marks the cache as populated, so Store
// writes a temporary directory and renames it into place.
type PageCache struct {
	dir string
}

// NewPageCache creates a PageCache rooted at dir.
func NewPageCache(dir string) *PageCache {
	return &PageCache{dir: dir}
}

// Exists reports whether the cache directory exists.
func (c *PageCache) Exists(ctx context.Context) (bool, error) {
	info, err := os.Stat(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, sigstub.Errorf(sigstub.EINVALID, "cache path %q is not a directory", c.dir)
	}
	return true, nil
}

// Load reads every cached page, ordered by name.
func (c *PageCache) Load(ctx context.Context) ([]*sigstub.Page, error) {
	var pages []*sigstub.Page
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, HTMLExt) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(c.dir, path)
		if err != nil {
			return err
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		pages = append(pages, &sigstub.Page{
			Name: strings.TrimSuffix(filepath.ToSlash(rel), HTMLExt),
			Text: string(text),
		})
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, sigstub.Errorf(sigstub.ENOTFOUND, "page cache %q not found", c.dir)
	} else if err != nil {
		return nil, err
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Name < pages[j].Name })
	return pages, nil
}

// Store replaces the cache with pages.
func (c *PageCache) Store(ctx context.Context, pages []*sigstub.Page) error {
	tmp := c.dir + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return err
	}
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			_ = os.RemoveAll(tmp)
			return err
		}
		fullPath, err := namePath(tmp, page.Name, HTMLExt)
		if err != nil {
			_ = os.RemoveAll(tmp)
			return err
		}
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			_ = os.RemoveAll(tmp)
			return err
		}
		if err := os.WriteFile(fullPath, []byte(page.Text), 0644); err != nil {
			_ = os.RemoveAll(tmp)
			return err
		}
	}
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return err
	}

	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.Rename(tmp, c.dir)
}
