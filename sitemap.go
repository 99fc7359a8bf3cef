package sitescout

import "context"

// SitemapSource discovers URLs published in a site's sitemaps. Sitemap
// URLs supplement the link-graph crawl before priority selection.
type SitemapSource interface {
	// DiscoverURLs returns the in-scope URLs listed in the site's
	// sitemaps. A site without sitemaps yields an empty slice, not an
	// error.
	DiscoverURLs(ctx context.Context, homepageURL string, scope Scope) ([]string, error)
}
