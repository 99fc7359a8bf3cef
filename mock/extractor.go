package mock

import "github.com/fwojciec/sitescout"

var _ sitescout.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of sitescout.LinkExtractor.
type LinkExtractor struct {
	ExtractFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) Extract(html string, baseURL string) ([]string, error) {
	return e.ExtractFn(html, baseURL)
}

var _ sitescout.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of sitescout.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*sitescout.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*sitescout.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ sitescout.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitescout.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
