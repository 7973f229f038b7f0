//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"inventory-reservation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

var errSentinel = errs.New("sentinel")

func TestMark(t *testing.T) {
	t.Run("marked error matches the mark and keeps the cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		actual := errs.Mark(cause, errSentinel)

		assert.True(t, errs.Is(actual, errSentinel))
		assert.True(t, errs.Is(actual, cause))
		assert.Equal(t, "connection reset", actual.Error())
	})

	t.Run("nil error returns the mark itself", func(t *testing.T) {
		assert.Equal(t, errSentinel, errs.Mark(nil, errSentinel))
	})
}

func TestWrap(t *testing.T) {
	assert.Nil(t, errs.Wrap(nil, "ignored"))
	assert.Nil(t, errs.Wrapf(nil, "ignored %d", 1))

	wrapped := errs.Wrapf(errSentinel, "reserve %s", "abc")
	assert.True(t, errs.Is(wrapped, errSentinel))
	assert.Equal(t, "reserve abc: sentinel", wrapped.Error())
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 3))

	lines := errs.ExtractStackLines(errs.New("boom"), 2)
	assert.Len(t, lines, 2)
	assert.Equal(t, "boom", lines[0])
}

type typedErr struct{ code int }

func (e *typedErr) Error() string { return "typed" }

func TestAs(t *testing.T) {
	marked := errs.Mark(&typedErr{code: 7}, errSentinel)

	var target *typedErr
	assert.True(t, errs.As(errs.Wrap(marked, "outer"), &target))
	assert.Equal(t, 7, target.code)
}
