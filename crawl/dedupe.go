package crawl

import (
	"net/url"
	"strings"
)

// canonicalKey is the scheme-stripped identity of a URL: host + path, plus
// the query when present. URLs that differ only by scheme share a key.
func canonicalKey(u *url.URL) string {
	key := u.Host + u.Path
	if u.RawQuery != "" {
		key += "?" + u.RawQuery
	}
	return key
}

// Deduplicate canonicalizes a batch of candidate URLs:
//
//  1. URLs with a non-empty fragment are dropped (anchor links).
//  2. URLs already in seen, or already emitted earlier in the same call,
//     are dropped.
//  3. Remaining URLs are grouped by canonical key; within a group the
//     first https variant wins, falling back to the first http variant, so
//     each group collapses to at most one representative.
//
// Output preserves the first-seen order of the chosen representatives.
// Deduplicate is idempotent: feeding its output back in with the same seen
// set returns the same list.
func Deduplicate(candidates []string, seen map[string]struct{}) []string {
	type group struct {
		https string
		http  string
		first string
	}

	groups := make(map[string]*group)
	var order []string
	emitted := make(map[string]struct{})

	for _, rawURL := range candidates {
		u, err := url.Parse(rawURL)
		if err != nil {
			continue
		}
		if u.Fragment != "" {
			continue
		}
		if _, ok := seen[rawURL]; ok {
			continue
		}
		if _, ok := emitted[rawURL]; ok {
			continue
		}
		emitted[rawURL] = struct{}{}

		key := canonicalKey(u)
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		switch {
		case strings.HasPrefix(rawURL, "https://"):
			if g.https == "" {
				g.https = rawURL
			}
		case strings.HasPrefix(rawURL, "http://"):
			if g.http == "" {
				g.http = rawURL
			}
		default:
			if g.first == "" {
				g.first = rawURL
			}
		}
	}

	result := make([]string, 0, len(order))
	for _, key := range order {
		g := groups[key]
		switch {
		case g.https != "":
			result = append(result, g.https)
		case g.http != "":
			result = append(result, g.http)
		case g.first != "":
			result = append(result, g.first)
		}
	}
	return result
}
