package safefs_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoro11031/safefs/pkg/fserr"
	"github.com/zoro11031/safefs/pkg/paths"
	"github.com/zoro11031/safefs/pkg/safefs"
)

func TestListDir(t *testing.T) {
	t.Parallel()

	sfs, mem := newMemFS(t)
	writeFile(t, mem, "/proj/b.txt", "b")
	writeFile(t, mem, "/proj/a.txt", "a")
	writeFile(t, mem, "/proj/src/main.go", "package main")
	require.NoError(t, mem.MkdirAll("/proj/docs", 0o755))

	tests := []struct {
		name  string
		kinds safefs.Kind
		want  []paths.Path
	}{
		{"files", safefs.Files, []paths.Path{"/proj/a.txt", "/proj/b.txt"}},
		{"dirs", safefs.Dirs, []paths.Path{"/proj/docs", "/proj/src"}},
		{"all", safefs.All, []paths.Path{"/proj/a.txt", "/proj/b.txt", "/proj/docs", "/proj/src"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := sfs.ListDir(`\proj\`, tt.kinds)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListDirRoot(t *testing.T) {
	t.Parallel()

	sfs, mem := newMemFS(t)
	writeFile(t, mem, "/x.txt", "x")

	got, err := sfs.ListDir("/", safefs.Files)

	require.NoError(t, err)
	assert.Equal(t, []paths.Path{"/x.txt"}, got)
}

func TestListDirErrors(t *testing.T) {
	t.Parallel()

	sfs, mem := newMemFS(t)
	writeFile(t, mem, "/proj/a.txt", "a")

	_, err := sfs.ListDir("/proj/a.txt", safefs.All)
	require.ErrorIs(t, err, fserr.ErrInvalidPath)

	_, err = sfs.ListDir("/missing", safefs.All)
	require.ErrorIs(t, err, fserr.ErrIOError)
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = sfs.ListDir("  ", safefs.All)
	require.ErrorIs(t, err, fserr.ErrInvalidPath)
}

func TestExistsIsDirIsFile(t *testing.T) {
	t.Parallel()

	sfs, mem := newMemFS(t)
	writeFile(t, mem, "/proj/a.txt", "a")

	tests := []struct {
		path   string
		exists bool
		isDir  bool
		isFile bool
	}{
		{"/proj/a.txt", true, false, true},
		{"/proj", true, true, false},
		{"/proj/missing", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := sfs.Exists(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, got, "Exists")

			got, err = sfs.IsDir(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.isDir, got, "IsDir")

			got, err = sfs.IsFile(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.isFile, got, "IsFile")
		})
	}
}
