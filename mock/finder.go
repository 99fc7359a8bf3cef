package mock

import (
	"context"

	"github.com/fwojciec/sitescout"
)

var _ sitescout.Finder = (*Finder)(nil)

// Finder is a mock implementation of sitescout.Finder.
type Finder struct {
	DiscoverFn func(ctx context.Context, inputURL string, opts sitescout.CrawlOptions) (*sitescout.DiscoveryResult, error)
}

func (f *Finder) Discover(ctx context.Context, inputURL string, opts sitescout.CrawlOptions) (*sitescout.DiscoveryResult, error) {
	return f.DiscoverFn(ctx, inputURL, opts)
}
