package sitescout

// LinkExtractor parses one fetched HTML document and returns the absolute
// candidate URLs it links to.
type LinkExtractor interface {
	// Extract resolves every usable href in html against baseURL and
	// returns the resulting absolute URLs with duplicates collapsed.
	// A malformed document yields an empty slice, not an error.
	Extract(html string, baseURL string) ([]string, error)
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string
}

// ContentExtractor extracts main content from HTML pages, removing
// boilerplate. Used by the content-fetch stage, not during discovery.
type ContentExtractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., from a ContentExtractor) into
	// its Markdown representation.
	Convert(html string) (string, error)
}
