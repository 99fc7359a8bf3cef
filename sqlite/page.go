package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/sitescout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitescout.PageService = (*PageService)(nil)

// PageService implements sitescout.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// CreatePage persists a fetched page. Pages are appended in fetch order;
// the position is derived from the current page count for the run.
func (s *PageService) CreatePage(ctx context.Context, page *sitescout.PageDoc) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if page.RunID == "" {
		return sitescout.Errorf(sitescout.EINVALID, "page run ID required")
	}

	page.ID = uuid.New().String()
	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now().UTC()
	}

	var position int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pages WHERE run_id = ?
	`, page.RunID).Scan(&position)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (id, run_id, url, status, markdown, html, title, content_hash, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.RunID, page.URL, page.Status, page.Markdown, page.HTML,
		page.Title, page.ContentHash, position, page.FetchedAt.Format(time.RFC3339))

	return err
}

// FindPagesByRun retrieves all pages for a run in fetch order.
func (s *PageService) FindPagesByRun(ctx context.Context, runID string) ([]*sitescout.PageDoc, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, url, status, markdown, html, title, content_hash, fetched_at
		FROM pages
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*sitescout.PageDoc
	for rows.Next() {
		var page sitescout.PageDoc
		var fetchedAt string

		if err := rows.Scan(&page.ID, &page.RunID, &page.URL, &page.Status,
			&page.Markdown, &page.HTML, &page.Title, &page.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}

		page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		pages = append(pages, &page)
	}

	return pages, rows.Err()
}
