package safefs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/zoro11031/safefs/pkg/fserr"
	"github.com/zoro11031/safefs/pkg/paths"
)

// copyFile copies src to dst through a temporary file in dst's directory, so
// dst is either the old file or the complete new one. Mode and modification
// time are carried over.
func (f *FileSystem) copyFile(src, dst paths.Path, info os.FileInfo) error {
	in, err := f.fs.Open(src.Native())
	if err != nil {
		return fserr.NewIOError("open "+src.String(), err)
	}
	defer in.Close()

	parent, err := paths.Parent(dst.String())
	if err != nil {
		return err
	}
	tmp, err := afero.TempFile(f.fs, parent.Native(), "."+paths.Base(dst.String())+".tmp-*")
	if err != nil {
		return fserr.NewIOError("create temp file in "+parent.String(), err)
	}
	tmpPath := tmp.Name()
	defer f.fs.Remove(tmpPath) // no-op once renamed

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return fserr.NewIOError(fmt.Sprintf("copy %s to %s", src, dst), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fserr.NewIOError("sync "+tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fserr.NewIOError("close "+tmpPath, err)
	}

	if err := f.fs.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return fserr.NewIOError("chmod "+tmpPath, err)
	}
	if err := f.fs.Chtimes(tmpPath, info.ModTime(), info.ModTime()); err != nil {
		return fserr.NewIOError("set times on "+tmpPath, err)
	}
	if err := f.fs.Rename(tmpPath, dst.Native()); err != nil {
		return fserr.NewIOError(fmt.Sprintf("rename %s to %s", tmpPath, dst), err)
	}
	return nil
}

// copyDir copies the tree rooted at src into dst. Existing directories under
// dst are reused and existing files replaced.
func (f *FileSystem) copyDir(src, dst paths.Path) error {
	return afero.Walk(f.fs, src.Native(), func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return fserr.NewIOError("walk "+p, err)
		}
		rel, err := filepath.Rel(src.Native(), p)
		if err != nil {
			return fserr.NewIOError("walk "+p, err)
		}
		target := paths.Path(paths.Join(dst.String(), filepath.ToSlash(rel)))
		from := paths.Path(paths.ForSlash(p))

		if info.IsDir() {
			if err := f.fs.MkdirAll(target.Native(), info.Mode().Perm()); err != nil {
				return fserr.NewIOError("create directory "+target.String(), err)
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			f.log.WithField("path", from.String()).Debug("skipping non-regular file")
			return nil
		}
		return f.copyFile(from, target, info)
	})
}
