package sitescout

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// PriorityBucket is a priority category assigned to a discovered URL for
// selection ordering.
type PriorityBucket string

// Priority buckets. Business pages with the highest signal density for
// downstream LLM context (identity, trust, offerings) outrank archival and
// navigational pages.
const (
	BucketHomepage  PriorityBucket = "homepage"
	BucketAbout     PriorityBucket = "about"
	BucketFAQ       PriorityBucket = "faq"
	BucketSitemap   PriorityBucket = "sitemap"
	BucketProduct   PriorityBucket = "product"
	BucketBrandBlog PriorityBucket = "brand_blog"
	BucketBlog      PriorityBucket = "blog"
	BucketOther     PriorityBucket = "other"
)

// BucketOrder is the fixed priority order buckets are emitted in.
func BucketOrder() []PriorityBucket {
	return []PriorityBucket{
		BucketHomepage,
		BucketAbout,
		BucketFAQ,
		BucketProduct,
		BucketBrandBlog,
		BucketSitemap,
		BucketBlog,
		BucketOther,
	}
}

// PatternCategory maps a bucket to the path patterns that select it.
// Categories are tested in configuration order; the first match wins.
type PatternCategory struct {
	Bucket   PriorityBucket
	Patterns []string
}

// DefaultPriorityPatterns returns the standard pattern table.
func DefaultPriorityPatterns() []PatternCategory {
	return []PatternCategory{
		{BucketHomepage, []string{"/", ""}},
		{BucketAbout, []string{
			"/about", "/about-us", "/about_us", "/aboutus",
			"/company", "/who-we-are", "/our-story",
		}},
		{BucketFAQ, []string{
			"/faq", "/faqs", "/frequently-asked-questions",
			"/help", "/support",
		}},
		{BucketSitemap, []string{
			"/sitemap.xml", "/sitemap", "/site-map", "/sitemap.html",
		}},
		{BucketProduct, []string{
			"/products", "/product", "/services", "/service",
			"/solutions", "/offerings", "/pricing",
		}},
		{BucketBlog, []string{
			"/blog", "/blogs", "/news", "/articles",
			"/insights", "/resources", "/stories", "/case-study",
		}},
	}
}

var (
	tldPattern      = regexp.MustCompile(`\.(com|org|net|io|co|ai|app|dev).*$`)
	nonAlphaPattern = regexp.MustCompile(`[^a-zA-Z]+`)
)

// brandSuffixes are generic suffixes stripped from a domain label to expose
// the core brand token (infinityapp -> infinity).
var brandSuffixes = []string{
	"app", "apps", "ai", "tech", "labs", "hq", "inc", "co", "io", "dev", "technology",
}

// minBrandTokenLen filters out overly short tokens (e.g., "in") to reduce
// false positives when matching brand tokens against URL paths.
const minBrandTokenLen = 4

// brandBase extracts the brand portion of a URL's domain.
// Example: https://www.apple.com/about -> "apple".
func brandBase(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	domain := strings.TrimPrefix(u.Host, "www.")
	domain = tldPattern.ReplaceAllString(domain, "")
	return strings.ToLower(domain)
}

// BrandTokens derives brand tokens from a site's domain.
// Example: https://www.infinityapp.in -> ["infinity", "infinityapp"].
func BrandTokens(homepageURL string) []string {
	base := brandBase(homepageURL)
	if base == "" {
		return nil
	}

	tokens := map[string]bool{base: true}

	// Core label before the first remaining dot.
	if label, _, found := strings.Cut(base, "."); found && label != "" {
		tokens[label] = true
	}

	// Strip generic suffixes to expose the core brand token.
	for token := range tokens {
		for _, suf := range brandSuffixes {
			if strings.HasSuffix(token, suf) && len(token) > len(suf)+2 {
				core := nonAlphaPattern.ReplaceAllString(token[:len(token)-len(suf)], "")
				if core != "" {
					tokens[strings.ToLower(core)] = true
				}
			}
		}
	}

	// Split on non-alphabetic runs to get component tokens.
	for _, part := range nonAlphaPattern.Split(base, -1) {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			tokens[part] = true
		}
	}

	out := make([]string, 0, len(tokens))
	for token := range tokens {
		if len(token) >= minBrandTokenLen && !nonAlphaPattern.MatchString(token) {
			out = append(out, token)
		}
	}
	sort.Strings(out)
	return out
}

// urlPath returns the lowercased path portion of a URL.
func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Path)
}

// matchesPattern reports whether a path matches any pattern in the list.
// A path matches a pattern if it equals it, starts with pattern+"/" or
// pattern+"?", or contains it as a substring. The root pattern ("/" or "")
// matches only the bare root path.
func matchesPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/" || pattern == "" {
			if path == "/" || path == "" {
				return true
			}
			continue
		}

		p := strings.ToLower(pattern)
		if path == p {
			return true
		}
		if strings.HasPrefix(path, p+"/") || strings.HasPrefix(path, p+"?") {
			return true
		}
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// containsBrandToken reports whether any brand token appears in the path.
func containsBrandToken(path string, tokens []string) bool {
	for _, token := range tokens {
		if token != "" && strings.Contains(path, token) {
			return true
		}
	}
	return false
}

// isBareBlogIndex reports whether a path is a bare blog index (/blog).
// Bare blog indexes are dropped from selection entirely; a listing page
// carries no signal beyond the posts it links to.
func isBareBlogIndex(path string) bool {
	trimmed := strings.TrimRight(path, "/")
	return trimmed == "/blog" || trimmed == "blog"
}

// SelectURLs classifies each URL into a priority bucket and returns an
// ordered crawl list capped at maxCount. URLs within a bucket are sorted
// lexicographically for a deterministic tie-break; buckets are concatenated
// in BucketOrder.
func SelectURLs(urls []string, maxCount int, homepageURL string, patterns []PatternCategory) []string {
	if len(urls) == 0 || maxCount <= 0 {
		return nil
	}

	// Without a pattern table, fall back to simple lexicographic selection.
	if len(patterns) == 0 {
		sorted := make([]string, len(urls))
		copy(sorted, urls)
		sort.Strings(sorted)
		if len(sorted) > maxCount {
			sorted = sorted[:maxCount]
		}
		return sorted
	}

	brandTokens := BrandTokens(homepageURL)
	buckets := make(map[PriorityBucket][]string)

	for _, rawURL := range urls {
		rawURL = strings.TrimSpace(rawURL)
		if rawURL == "" {
			continue
		}

		bucket, ok := Classify(rawURL, brandTokens, patterns)
		if !ok {
			continue // bare blog index, dropped
		}
		buckets[bucket] = append(buckets[bucket], rawURL)
	}

	var selected []string
	for _, bucket := range BucketOrder() {
		if len(selected) >= maxCount {
			break
		}
		group := buckets[bucket]
		sort.Strings(group)
		remaining := maxCount - len(selected)
		if len(group) > remaining {
			group = group[:remaining]
		}
		selected = append(selected, group...)
	}
	return selected
}

// Classify assigns a URL to exactly one priority bucket. The second return
// is false when the URL is excluded from selection (bare blog index).
func Classify(rawURL string, brandTokens []string, patterns []PatternCategory) (PriorityBucket, bool) {
	path := urlPath(rawURL)

	// Brand blog detection runs before the category checks.
	if len(brandTokens) > 0 && strings.Contains(path, "/blog") && containsBrandToken(path, brandTokens) {
		return BucketBrandBlog, true
	}

	for _, category := range patterns {
		if !matchesPattern(path, category.Patterns) {
			continue
		}

		if category.Bucket == BucketBlog {
			if isBareBlogIndex(path) {
				return "", false
			}
			if containsBrandToken(path, brandTokens) {
				return BucketBrandBlog, true
			}
		}
		return category.Bucket, true
	}

	return BucketOther, true
}
