package mock

import (
	"context"

	"github.com/fwojciec/sitescout"
)

var _ sitescout.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of sitescout.PageFetcher.
type PageFetcher struct {
	FetchPageFn func(ctx context.Context, url string) (*sitescout.PageDoc, error)
}

func (f *PageFetcher) FetchPage(ctx context.Context, url string) (*sitescout.PageDoc, error) {
	return f.FetchPageFn(ctx, url)
}

var _ sitescout.PageService = (*PageService)(nil)

// PageService is a mock implementation of sitescout.PageService.
type PageService struct {
	CreatePageFn     func(ctx context.Context, page *sitescout.PageDoc) error
	FindPagesByRunFn func(ctx context.Context, runID string) ([]*sitescout.PageDoc, error)
}

func (s *PageService) CreatePage(ctx context.Context, page *sitescout.PageDoc) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPagesByRun(ctx context.Context, runID string) ([]*sitescout.PageDoc, error) {
	return s.FindPagesByRunFn(ctx, runID)
}

var _ sitescout.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of sitescout.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *sitescout.PageDoc) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *sitescout.PageDoc) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	if s.CommitFn == nil {
		return nil
	}
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	if s.AbortFn == nil {
		return nil
	}
	return s.AbortFn()
}
