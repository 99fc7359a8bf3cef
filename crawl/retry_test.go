package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/sitescout/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns on first success without retrying", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, []time.Duration{time.Millisecond})
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries once per delay then returns last error", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", errors.New("boom")
		}

		delays := []time.Duration{time.Millisecond, time.Millisecond}
		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, delays)

		require.Error(t, err)
		assert.Equal(t, "boom", err.Error())
		assert.Equal(t, 3, calls, "one initial attempt plus one retry per delay")
	})

	t.Run("succeeds on a later attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("flaky")
			}
			return "ok", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, []time.Duration{time.Millisecond, time.Millisecond})
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
	})

	t.Run("canceled context skips the backoff", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", errors.New("boom")
		}

		start := time.Now()
		_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com", fetch, []time.Duration{10 * time.Second})

		require.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})
}
