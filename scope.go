package sitescout

import (
	"net/url"
	"strings"
)

// Scope decides whether a candidate URL is in-scope for a crawl: same host
// (when required), http/https scheme, and not an excluded file extension.
// The zero value allows everything with an http or https scheme.
type Scope struct {
	// Domain is the host the crawl is bound to.
	Domain string

	// ExcludedExtensions lists lowercased path suffixes to reject.
	ExcludedExtensions []string

	// RequireSameDomain rejects hosts other than Domain when true.
	RequireSameDomain bool
}

// NewScope builds a Scope from crawl options for the given domain.
func NewScope(domain string, opts CrawlOptions) Scope {
	return Scope{
		Domain:             domain,
		ExcludedExtensions: opts.ExcludedExtensions,
		RequireSameDomain:  opts.RequireSameDomain,
	}
}

// Allow reports whether rawURL is in-scope. Any parse failure yields false.
func (s Scope) Allow(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	if s.RequireSameDomain && u.Host != s.Domain {
		return false
	}

	path := strings.ToLower(u.Path)
	for _, ext := range s.ExcludedExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}

	return true
}
