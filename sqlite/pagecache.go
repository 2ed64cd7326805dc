package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/sigstub"
)

// Compile-time interface verification.
var _ sigstub.PageCache = (*PageCache)(nil)

// PageCache implements sigstub.PageCache for one library in SQLite.
type PageCache struct {
	db      *DB
	library string
}

// NewPageCache creates a PageCache scoped to library.
func NewPageCache(db *DB, library string) *PageCache {
	return &PageCache{db: db, library: library}
}

// Exists reports whether a harvest of the library was stored.
func (c *PageCache) Exists(ctx context.Context) (bool, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM libraries WHERE name = ?`, c.library).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Load returns the cached pages ordered by name. A page whose stored hash
// no longer matches its text is reported as an internal error.
func (c *PageCache) Load(ctx context.Context) ([]*sigstub.Page, error) {
	ok, err := c.Exists(ctx)
	if err != nil {
		return nil, err
	} else if !ok {
		return nil, sigstub.Errorf(sigstub.ENOTFOUND, "library %q not cached", c.library)
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT name, text, content_hash FROM pages
		WHERE library = ?
		ORDER BY name
	`, c.library)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*sigstub.Page
	for rows.Next() {
		var page sigstub.Page
		var hash string
		if err := rows.Scan(&page.Name, &page.Text, &hash); err != nil {
			return nil, err
		}
		if hash != hashContent(page.Text) {
			return nil, sigstub.Errorf(sigstub.EINTERNAL, "cached page %q is corrupt", page.Name)
		}
		pages = append(pages, &page)
	}
	return pages, rows.Err()
}

// Store replaces the library's pages in a single transaction.
func (c *PageCache) Store(ctx context.Context, pages []*sigstub.Page) error {
	tx, err := c.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE library = ?`, c.library); err != nil {
		return fmt.Errorf("clear pages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM libraries WHERE name = ?`, c.library); err != nil {
		return fmt.Errorf("clear library: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO libraries (name, harvested_at) VALUES (?, ?)
	`, c.library, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert library: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pages (library, name, text, content_hash) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, page := range pages {
		if page.Name == "" {
			return sigstub.Errorf(sigstub.EINVALID, "page name required")
		}
		if _, err := stmt.ExecContext(ctx, c.library, page.Name, page.Text, hashContent(page.Text)); err != nil {
			return fmt.Errorf("insert page %q: %w", page.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
