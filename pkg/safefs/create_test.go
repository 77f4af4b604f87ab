package safefs_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoro11031/safefs/pkg/fserr"
	"github.com/zoro11031/safefs/pkg/paths"
	"github.com/zoro11031/safefs/pkg/safefs"
)

func fixedClock() time.Time {
	return time.Date(2024, time.January, 2, 3, 4, 5, 0, time.FixedZone("CST", -6*60*60))
}

func TestMakeDirs(t *testing.T) {
	t.Parallel()

	sfs, mem := newMemFS(t)

	err := sfs.MakeDirs("/srv/a/b", `\srv\c`, "", "/srv/d")

	require.ErrorIs(t, err, fserr.ErrInvalidPath)
	for _, dir := range []string{"/srv/a/b", "/srv/c", "/srv/d"} {
		assert.True(t, exists(t, mem, dir), "%s should exist", dir)
	}
}

func TestMakeDirsAllValid(t *testing.T) {
	t.Parallel()

	sfs, mem := newMemFS(t)

	require.NoError(t, sfs.MakeDirs("/srv/a", "/srv/a"))
	assert.True(t, exists(t, mem, "/srv/a"))
}

func TestMakeFile(t *testing.T) {
	t.Parallel()

	t.Run("new file with parents", func(t *testing.T) {
		t.Parallel()
		sfs, mem := newMemFS(t)

		res, err := sfs.MakeFile("/notes/2024/todo.txt", "buy milk", false)

		require.NoError(t, err)
		assert.Equal(t, safefs.OpMakeFile, res.Op())
		assert.Equal(t, paths.Path(""), res.Source())
		assert.Equal(t, paths.Path("/notes/2024/todo.txt"), res.Path())
		assert.Equal(t, "buy milk", readFile(t, mem, "/notes/2024/todo.txt"))
	})

	t.Run("existing file is kept without overwrite", func(t *testing.T) {
		t.Parallel()
		sfs, mem := newMemFS(t)
		writeFile(t, mem, "/notes/todo.txt", "old")

		_, err := sfs.MakeFile("/notes/todo.txt", "new", false)

		require.ErrorIs(t, err, fserr.ErrDestinationExists)
		assert.Equal(t, "old", readFile(t, mem, "/notes/todo.txt"))
	})

	t.Run("existing file replaced with overwrite", func(t *testing.T) {
		t.Parallel()
		sfs, mem := newMemFS(t)
		writeFile(t, mem, "/notes/todo.txt", "old")

		_, err := sfs.MakeFile("/notes/todo.txt", "new", true)

		require.NoError(t, err)
		assert.Equal(t, "new", readFile(t, mem, "/notes/todo.txt"))
	})

	t.Run("existing directory replaced with overwrite", func(t *testing.T) {
		t.Parallel()
		sfs, mem := newMemFS(t)
		writeFile(t, mem, "/notes/todo/inner.txt", "inner")

		_, err := sfs.MakeFile("/notes/todo", "flat", true)

		require.NoError(t, err)
		assert.Equal(t, "flat", readFile(t, mem, "/notes/todo"))
	})
}

func TestAppendLog(t *testing.T) {
	t.Parallel()

	sfs, mem := newMemFS(t, safefs.WithClock(fixedClock))

	require.NoError(t, sfs.AppendLog("/var/log/app/run.log", "started", true))
	require.NoError(t, sfs.AppendLog("/var/log/app/run.log", "plain line", false))

	want := "[2024-01-02 03:04:05 -06:00]  started\nplain line\n"
	assert.Equal(t, want, readFile(t, mem, "/var/log/app/run.log"))
}

func TestBackup(t *testing.T) {
	t.Parallel()

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		sfs, mem := newMemFS(t, safefs.WithClock(fixedClock))
		writeFile(t, mem, "/data/app.conf", "key=value")

		backup, err := sfs.Backup("/data/app.conf")

		require.NoError(t, err)
		assert.Equal(t, "/data/app.conf.backup.20240102_030405", backup)
		assert.Equal(t, "key=value", readFile(t, mem, backup))
		assert.Equal(t, "key=value", readFile(t, mem, "/data/app.conf"))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		sfs, _ := newMemFS(t)

		backup, err := sfs.Backup("/data/missing.conf")

		require.NoError(t, err)
		assert.Empty(t, backup)
	})

	t.Run("existing backup is not replaced", func(t *testing.T) {
		t.Parallel()
		sfs, mem := newMemFS(t, safefs.WithClock(fixedClock))
		writeFile(t, mem, "/data/app.conf", "new")
		writeFile(t, mem, "/data/app.conf.backup.20240102_030405", "earlier")

		_, err := sfs.Backup("/data/app.conf")

		require.ErrorIs(t, err, fserr.ErrDestinationExists)
		assert.Equal(t, "earlier", readFile(t, mem, "/data/app.conf.backup.20240102_030405"))
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		sfs, mem := newMemFS(t)
		writeFile(t, mem, "/tmp/work/a.txt", "a")

		require.NoError(t, sfs.Delete("/tmp/work/a.txt", false))
		assert.False(t, exists(t, mem, "/tmp/work/a.txt"))
	})

	t.Run("directory with files needs force", func(t *testing.T) {
		t.Parallel()
		sfs, mem := newMemFS(t)
		writeFile(t, mem, "/tmp/work/keep/a.txt", "a")
		require.NoError(t, mem.MkdirAll("/tmp/work/empty/deeper", 0o755))

		err := sfs.Delete("/tmp/work", false)

		require.ErrorIs(t, err, fserr.ErrIOError)
		assert.True(t, exists(t, mem, "/tmp/work/keep/a.txt"))
		assert.False(t, exists(t, mem, "/tmp/work/empty"), "empty subtree should be pruned")

		require.NoError(t, sfs.Delete("/tmp/work", true))
		assert.False(t, exists(t, mem, "/tmp/work"))
	})

	t.Run("empty tree without force", func(t *testing.T) {
		t.Parallel()
		sfs, mem := newMemFS(t)
		require.NoError(t, mem.MkdirAll("/tmp/work/a/b", 0o755))

		require.NoError(t, sfs.Delete("/tmp/work", false))
		assert.False(t, exists(t, mem, "/tmp/work"))
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		sfs, _ := newMemFS(t)

		err := sfs.Delete("/tmp/nothing", true)

		require.ErrorIs(t, err, fserr.ErrIOError)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestDeleteRefusesCriticalPaths(t *testing.T) {
	t.Parallel()

	tests := []string{"/", "/etc", `\usr\`, "/home/", "C:/", `c:\Windows`, "//server"}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			sfs, mem := newMemFS(t)
			require.NoError(t, mem.MkdirAll("/etc", 0o755))

			err := sfs.Delete(path, true)

			require.ErrorIs(t, err, fserr.ErrInvalidPath)
		})
	}
}

func TestDeleteRelativePaths(t *testing.T) {
	root := osTree(t, map[string]string{
		"project/src/main.go": "package main",
		"project/notes.txt":   "notes",
	})
	t.Chdir(filepath.Join(root, "project", "src"))
	sfs := safefs.New()

	for _, path := range []string{".", "..", "../..", "./", "../src"} {
		err := sfs.Delete(path, true)
		require.ErrorIs(t, err, fserr.ErrInvalidPath, "Delete(%q)", path)
	}
	_, err := os.Stat(filepath.Join(root, "project", "src", "main.go"))
	require.NoError(t, err, "working directory contents must survive")

	up := strings.Repeat("../", 64)
	require.ErrorIs(t, sfs.Delete(up+"etc", true), fserr.ErrInvalidPath)
	require.ErrorIs(t, sfs.Delete(up, true), fserr.ErrInvalidPath)

	require.NoError(t, sfs.Delete("../notes.txt", false))
	_, err = os.Stat(filepath.Join(root, "project", "notes.txt"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRemoveEmptyDirs(t *testing.T) {
	t.Parallel()

	t.Run("keeps directories holding files", func(t *testing.T) {
		t.Parallel()
		sfs, mem := newMemFS(t)
		require.NoError(t, mem.MkdirAll("/a/b/c", 0o755))
		writeFile(t, mem, "/a/d/file.txt", "x")

		n, err := sfs.RemoveEmptyDirs("/a", true)

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.False(t, exists(t, mem, "/a/b"))
		assert.True(t, exists(t, mem, "/a/d/file.txt"))
		assert.True(t, exists(t, mem, "/a"))
	})

	t.Run("root kept unless included", func(t *testing.T) {
		t.Parallel()
		sfs, mem := newMemFS(t)
		require.NoError(t, mem.MkdirAll("/e/f", 0o755))
		require.NoError(t, mem.MkdirAll("/e/g", 0o755))

		n, err := sfs.RemoveEmptyDirs("/e", false)

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.True(t, exists(t, mem, "/e"))
	})

	t.Run("not a directory", func(t *testing.T) {
		t.Parallel()
		sfs, mem := newMemFS(t)
		writeFile(t, mem, "/a.txt", "x")

		_, err := sfs.RemoveEmptyDirs("/a.txt", true)

		require.ErrorIs(t, err, fserr.ErrInvalidPath)
	})
}
