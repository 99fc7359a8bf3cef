package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/sitescout"
	"github.com/fwojciec/sitescout/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements sitescout.ContentExtractor at compile time.
var _ sitescout.ContentExtractor = (*trafilatura.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>About Us - Acme Widgets</title>
<meta property="og:title" content="About Acme Widgets">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>About Us</h1>
<p>Acme has been making widgets since 1952, one workshop at a time.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Shipping FAQ</title></head>
<body>
<nav><a href="/">Home</a><a href="/faq">FAQ</a></nav>
<article>
<h1>Shipping FAQ</h1>
<p>We ship to over 40 countries and every order includes tracking.</p>
<p>Returns are free within 30 days of delivery.</p>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2026</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "over 40 countries")
		assert.Contains(t, result.ContentHTML, "free within 30 days")
	})

	t.Run("removes navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/about">About</a></li>
<li><a href="/products">Products</a></li>
</ul>
</nav>
<main>
<h1>Main Content</h1>
<p>This paragraph contains the actual content we want.</p>
</main>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "actual content we want")
		assert.NotContains(t, result.ContentHTML, "main-nav")
	})

	t.Run("removes footer boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<h1>Our Story</h1>
<p>Article body with substantive content for readers.</p>
</article>
<footer>
<p>Copyright 2026 Example Corp</p>
<nav>Privacy | Terms | Contact</nav>
</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "substantive content")
		assert.NotContains(t, result.ContentHTML, "Copyright 2026 Example Corp")
	})

	t.Run("handles a product listing page", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Widget Pro | Acme</title>
<meta property="og:title" content="Widget Pro">
</head>
<body>
<nav class="navbar">
<a href="/">Acme</a>
<a href="/products">Products</a>
<a href="/blog">Blog</a>
</nav>
<div class="sidebar">
<ul>
<li><a href="/products/widget">Widget</a></li>
<li><a href="/products/widget-pro">Widget Pro</a></li>
</ul>
</div>
<main>
<article>
<h1>Widget Pro</h1>
<p>The Widget Pro doubles the torque of the classic Widget.</p>
<h2>Specifications</h2>
<p>Weighs 450 grams and fits all standard mounts.</p>
</article>
</main>
<footer class="footer">
<p>Built by Acme</p>
</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "doubles the torque")
		assert.Contains(t, result.ContentHTML, "Specifications")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, sitescout.EINVALID, sitescout.ErrorCode(err))
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple content</p></body></html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple content")
	})
}
