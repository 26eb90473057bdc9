package sitechat_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sitechat"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitechat.Errorf(sitechat.ENOTFOUND, "website %q not found", "test")

	assert.Equal(t, sitechat.ENOTFOUND, sitechat.ErrorCode(err))
	assert.Equal(t, "website \"test\" not found", sitechat.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitechat.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitechat.ErrorMessage(nil))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("starting crawl: %w", sitechat.Errorf(sitechat.ECONFLICT, "already crawling"))

	assert.Equal(t, sitechat.ECONFLICT, sitechat.ErrorCode(err))
	assert.Equal(t, "already crawling", sitechat.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, sitechat.EINTERNAL, sitechat.ErrorCode(err))
	assert.Equal(t, "Internal error.", sitechat.ErrorMessage(err))
}

func TestNavigationError(t *testing.T) {
	t.Parallel()

	err := &sitechat.NavigationError{URL: "https://example.com", Err: context.DeadlineExceeded}

	assert.Contains(t, err.Error(), "https://example.com")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var navErr *sitechat.NavigationError
	wrapped := fmt.Errorf("rendering seed: %w", err)
	assert.True(t, errors.As(wrapped, &navErr))
	assert.Equal(t, "https://example.com", navErr.URL)
}
