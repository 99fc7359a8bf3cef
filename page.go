package sitescout

import (
	"context"
	"time"
)

// PageDoc represents one content-fetched page ready for the LLM pipeline.
type PageDoc struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	URL         string    `json:"url"`
	Status      int       `json:"status"`
	Markdown    string    `json:"markdown"`
	HTML        string    `json:"html,omitempty"`
	Title       string    `json:"title"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *PageDoc) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageFetcher retrieves a page's content for extraction, unlike Fetcher
// which only retrieves raw HTML for link discovery.
type PageFetcher interface {
	// FetchPage retrieves url and returns its content as markdown plus
	// the raw HTML it was derived from.
	FetchPage(ctx context.Context, url string) (*PageDoc, error)
}

// Run records one completed discovery crawl and its prioritized selection.
type Run struct {
	ID        string           `json:"id"`
	InputURL  string           `json:"inputUrl"`
	Homepage  string           `json:"homepage"`
	Domain    string           `json:"domain"`
	Result    *DiscoveryResult `json:"result,omitempty"`
	Selected  []SelectedURL    `json:"selected,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.InputURL == "" {
		return Errorf(EINVALID, "run input URL required")
	}
	if r.Homepage == "" {
		return Errorf(EINVALID, "run homepage required")
	}
	return nil
}

// SelectedURL is one entry of a run's prioritized crawl list.
type SelectedURL struct {
	URL      string         `json:"url"`
	Bucket   PriorityBucket `json:"bucket"`
	Position int            `json:"position"`
}

// RunService manages stored discovery runs.
type RunService interface {
	// CreateRun persists a run with its result and selection.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID, including its selection.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves all runs, most recent first.
	FindRuns(ctx context.Context) ([]*Run, error)

	// DeleteRun permanently removes a run and its pages.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// PageService manages content-fetched pages attached to runs.
type PageService interface {
	// CreatePage persists a fetched page.
	CreatePage(ctx context.Context, page *PageDoc) error

	// FindPagesByRun retrieves all pages for a run in fetch order.
	FindPagesByRun(ctx context.Context, runID string) ([]*PageDoc, error)
}

// PageStore persists pages to a local export location with atomic
// semantics. Save writes to a temporary location; Commit makes changes
// permanent; Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *PageDoc) error
	Commit() error
	Abort() error
}
