package locimg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fwojciec/locimg"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := locimg.Errorf(locimg.ENOTFOUND, "document %q not found", "test")

	assert.Equal(t, locimg.ENOTFOUND, locimg.ErrorCode(err))
	assert.Equal(t, "document \"test\" not found", locimg.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, locimg.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, locimg.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, locimg.EINTERNAL, locimg.ErrorCode(assert.AnError))
}
