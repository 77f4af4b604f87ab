package fserr_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoro11031/safefs/pkg/fserr"
)

func TestErrVars_IsAndMessage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{"ErrInvalidPath", fserr.ErrInvalidPath, fserr.ErrInvalidPath, "invalid path"},
		{"NewInvalidPathError", fserr.NewInvalidPathError("empty path"), fserr.ErrInvalidPath, "invalid path: empty path"},
		{"ErrDestinationExists", fserr.ErrDestinationExists, fserr.ErrDestinationExists, "destination exists"},
		{"NewDestinationExistsError", fserr.NewDestinationExistsError("/tmp/y.txt"), fserr.ErrDestinationExists, "destination exists: /tmp/y.txt"},
		{"ErrIOError", fserr.ErrIOError, fserr.ErrIOError, "io error"},
		{"NewIOError", fserr.NewIOError("rename /a", errors.New("boom")), fserr.ErrIOError, "io error: rename /a: boom"},
		{"NewIOErrorNoCause", fserr.NewIOError("rename /a", nil), fserr.ErrIOError, "io error: rename /a"},
		{"ErrUnsupported", fserr.NewUnsupportedError(".rar"), fserr.ErrUnsupported, "unsupported: .rar"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("higher: %w", c.err)
			require.ErrorIs(t, wrapped, c.kind)
			assert.Equal(t, c.msg, c.err.Error())
		})
	}
}

func TestIOErrorKeepsCause(t *testing.T) {
	t.Parallel()

	err := fserr.NewIOError("stat /missing", fs.ErrNotExist)

	assert.ErrorIs(t, err, fserr.ErrIOError)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, fserr.ErrDestinationExists)
}

func TestErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	all := []error{
		fserr.ErrInvalidPath,
		fserr.ErrDestinationExists,
		fserr.ErrIOError,
		fserr.ErrUnsupported,
	}

	for i := range all {
		for j := i + 1; j < len(all); j++ {
			assert.NotErrorIs(t, all[i], all[j], "errors at index %d and %d should be distinct", i, j)
		}
	}
}
