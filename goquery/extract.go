// Package goquery provides a goquery-based implementation of
// sitescout.LinkExtractor for pulling candidate URLs out of fetched HTML.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitescout"
)

// Ensure LinkExtractor implements sitescout.LinkExtractor at compile time.
var _ sitescout.LinkExtractor = (*LinkExtractor)(nil)

// skipPrefixes mark hrefs that can never become crawlable URLs.
var skipPrefixes = []string{"#", "javascript:", "mailto:", "tel:"}

// LinkExtractor extracts absolute candidate URLs from anchor, area, and
// link elements.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// Extract parses html and returns the set of absolute URLs it links to,
// resolved against baseURL. Fragment-only, javascript:, mailto:, and tel:
// hrefs are skipped. A document goquery cannot parse yields an empty
// slice rather than failing the caller.
func (e *LinkExtractor) Extract(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitescout.Errorf(sitescout.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return []string{}, nil
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href], area[href], link[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || hasSkipPrefix(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	return links, nil
}

func hasSkipPrefix(href string) bool {
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(href, prefix) {
			return true
		}
	}
	return false
}

// resolveURL resolves a relative href against the base URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
