// Package sitescout discovers, bounds, and prioritizes the set of pages on a
// target site worth fetching. It runs a domain-scoped breadth-first crawl
// under strict depth, concurrency, and URL-count limits, deduplicates
// near-identical URLs, and ranks the discovered pages by business priority
// before handing a small, high-value subset to a downstream content/LLM
// pipeline.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package sitescout
