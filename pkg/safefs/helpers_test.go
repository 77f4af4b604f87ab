package safefs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/zoro11031/safefs/pkg/safefs"
)

func newMemFS(t *testing.T, opts ...safefs.Option) (*safefs.FileSystem, afero.Fs) {
	t.Helper()

	mem := afero.NewMemMapFs()
	return safefs.New(append([]safefs.Option{safefs.WithFs(mem)}, opts...)...), mem
}

func writeFile(t *testing.T, backend afero.Fs, path, content string) {
	t.Helper()

	require.NoError(t, backend.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(backend, path, []byte(content), 0o644))
}

func readFile(t *testing.T, backend afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(backend, path)
	require.NoError(t, err, "reading %s", path)
	return string(data)
}

func exists(t *testing.T, backend afero.Fs, path string) bool {
	t.Helper()

	ok, err := afero.Exists(backend, path)
	require.NoError(t, err)
	return ok
}

// osTree creates files (relative path -> content) under a fresh temp dir.
func osTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

// renameFailFs fails every rename of one specific source path, the way a
// rename across devices does.
type renameFailFs struct {
	afero.Fs
	source string
}

var errCrossDevice = errors.New("invalid cross-device link")

func (r *renameFailFs) Rename(oldname, newname string) error {
	if oldname == r.source {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: errCrossDevice}
	}
	return r.Fs.Rename(oldname, newname)
}
