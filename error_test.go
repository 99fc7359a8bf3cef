package sitescout_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sitescout"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code for application error", func(t *testing.T) {
		t.Parallel()
		err := sitescout.Errorf(sitescout.ENOTFOUND, "run not found")
		assert.Equal(t, sitescout.ENOTFOUND, sitescout.ErrorCode(err))
	})

	t.Run("returns code for wrapped application error", func(t *testing.T) {
		t.Parallel()
		inner := sitescout.Errorf(sitescout.EFAILED, "HTTP 503 for https://example.com")
		err := fmt.Errorf("fetching: %w", inner)
		assert.Equal(t, sitescout.EFAILED, sitescout.ErrorCode(err))
	})

	t.Run("returns EINTERNAL for non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, sitescout.EINTERNAL, sitescout.ErrorCode(errors.New("disk error")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", sitescout.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns message for application error", func(t *testing.T) {
		t.Parallel()
		err := sitescout.Errorf(sitescout.EINVALID, "seed URL %q has no scheme or host", "???")
		assert.Equal(t, `seed URL "???" has no scheme or host`, sitescout.ErrorMessage(err))
	})

	t.Run("masks non-application errors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", sitescout.ErrorMessage(errors.New("disk error")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", sitescout.ErrorMessage(nil))
	})
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	err := sitescout.Errorf(sitescout.ECONFLICT, "duplicate run")
	assert.Equal(t, "sitescout error: code=conflict message=duplicate run", err.Error())
}
