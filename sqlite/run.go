package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/sitescout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitescout.RunService = (*RunService)(nil)

// RunService implements sitescout.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun persists a run with its discovery result and prioritized
// selection.
func (s *RunService) CreateRun(ctx context.Context, run *sitescout.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var totalFound, maxDepth, successCount, failureCount int
	var elapsedMS int64
	if run.Result != nil {
		totalFound = run.Result.TotalFound
		maxDepth = run.Result.MaxDepthReached
		successCount = run.Result.SuccessCount
		failureCount = run.Result.FailureCount
		elapsedMS = run.Result.Elapsed.Milliseconds()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, input_url, homepage, domain, total_found, max_depth_reached, success_count, failure_count, elapsed_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.InputURL, run.Homepage, run.Domain, totalFound, maxDepth,
		successCount, failureCount, elapsedMS, run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	if run.Result != nil {
		for i, u := range run.Result.URLs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO run_urls (run_id, url, position) VALUES (?, ?, ?)
			`, run.ID, u, i); err != nil {
				return err
			}
		}
	}

	for _, sel := range run.Selected {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO selected_urls (run_id, url, bucket, position) VALUES (?, ?, ?, ?)
		`, run.ID, sel.URL, string(sel.Bucket), sel.Position); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID, including its discovered URL list and
// prioritized selection.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*sitescout.Run, error) {
	run, result, err := s.scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, input_url, homepage, domain, total_found, max_depth_reached, success_count, failure_count, elapsed_ms, created_at
		FROM runs
		WHERE id = ?
	`, id))
	if err != nil {
		return nil, err
	}

	urls, err := s.findRunURLs(ctx, id)
	if err != nil {
		return nil, err
	}
	result.URLs = urls
	run.Result = result

	selected, err := s.findSelectedURLs(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Selected = selected

	return run, nil
}

// FindRuns retrieves all runs, most recent first. The per-run URL lists
// are not loaded; use FindRunByID for a full run.
func (s *RunService) FindRuns(ctx context.Context) ([]*sitescout.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, input_url, homepage, domain, total_found, max_depth_reached, success_count, failure_count, elapsed_ms, created_at
		FROM runs
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*sitescout.Run
	for rows.Next() {
		run, result, err := s.scanRun(rows)
		if err != nil {
			return nil, err
		}
		run.Result = result
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteRun permanently removes a run, its URL lists, and its pages.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sitescout.Errorf(sitescout.ENOTFOUND, "run not found")
	}

	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func (s *RunService) scanRun(row scanner) (*sitescout.Run, *sitescout.DiscoveryResult, error) {
	var run sitescout.Run
	var result sitescout.DiscoveryResult
	var elapsedMS int64
	var createdAt string

	err := row.Scan(&run.ID, &run.InputURL, &run.Homepage, &run.Domain,
		&result.TotalFound, &result.MaxDepthReached, &result.SuccessCount,
		&result.FailureCount, &elapsedMS, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil, sitescout.Errorf(sitescout.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, nil, err
	}

	result.InputURL = run.InputURL
	result.HomepageURL = run.Homepage
	result.Domain = run.Domain
	result.Elapsed = time.Duration(elapsedMS) * time.Millisecond

	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, nil, err
	}

	return &run, &result, nil
}

func (s *RunService) findRunURLs(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url FROM run_urls WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}

	return urls, rows.Err()
}

func (s *RunService) findSelectedURLs(ctx context.Context, runID string) ([]sitescout.SelectedURL, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, bucket, position FROM selected_urls WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var selected []sitescout.SelectedURL
	for rows.Next() {
		var sel sitescout.SelectedURL
		var bucket string
		if err := rows.Scan(&sel.URL, &bucket, &sel.Position); err != nil {
			return nil, err
		}
		sel.Bucket = sitescout.PriorityBucket(bucket)
		selected = append(selected, sel)
	}

	return selected, rows.Err()
}
