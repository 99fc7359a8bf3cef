package crawl_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/sitescout/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier(t *testing.T) {
	t.Parallel()

	t.Run("accumulates URLs in first-seen order", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		assert.True(t, f.Push("https://a.com/1"))
		assert.True(t, f.Push("https://a.com/2"))
		assert.Equal(t, 2, f.Len())

		assert.Equal(t, []string{"https://a.com/1", "https://a.com/2"}, f.Drain(10))
	})

	t.Run("suppresses duplicate pushes", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		assert.True(t, f.Push("https://a.com/1"))
		assert.False(t, f.Push("https://a.com/1"))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("drain caps at limit and empties the frontier", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		for i := 0; i < 5; i++ {
			f.Push(fmt.Sprintf("https://a.com/%d", i))
		}

		got := f.Drain(3)
		assert.Len(t, got, 3)
		assert.Equal(t, 0, f.Len())
		assert.Empty(t, f.Drain(3))
	})

	t.Run("negative limit drains nothing", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier()
		f.Push("https://a.com/1")

		assert.Empty(t, f.Drain(-1))
		assert.Equal(t, 0, f.Len())
	})
}
