package safefs

import (
	"fmt"
	"os"

	"github.com/zoro11031/safefs/pkg/fserr"
	"github.com/zoro11031/safefs/pkg/paths"
)

// prepare normalizes a source/destination pair and checks that the source
// exists and that the pair makes sense.
func (f *FileSystem) prepare(src, dst string) (paths.Path, paths.Path, os.FileInfo, error) {
	s, err := paths.Normalize(src)
	if err != nil {
		return "", "", nil, err
	}
	d, err := paths.Normalize(dst)
	if err != nil {
		return s, "", nil, err
	}
	if paths.IsRoot(s.String()) || paths.IsRoot(d.String()) {
		return s, d, nil, fserr.NewInvalidPathError(fmt.Sprintf("refusing to operate on a root: %s -> %s", s, d))
	}
	if s == d {
		return s, d, nil, fserr.NewInvalidPathError(fmt.Sprintf("source and destination are the same: %s", s))
	}
	if paths.Contains(d.String(), s.String()) {
		return s, d, nil, fserr.NewInvalidPathError(fmt.Sprintf("destination %s holds the source %s", d, s))
	}

	info, err := f.mustExist(s)
	if err != nil {
		return s, d, nil, err
	}
	if info.IsDir() && paths.Contains(s.String(), d.String()) {
		return s, d, nil, fserr.NewInvalidPathError(fmt.Sprintf("cannot place %s inside itself: %s", s, d))
	}
	return s, d, info, nil
}

// SafeRename renames src to dst. An existing dst is only replaced when
// overwrite is set or the configured Confirmer agrees; otherwise the call
// fails with fserr.ErrDestinationExists and nothing is touched.
func (f *FileSystem) SafeRename(src, dst string, overwrite bool) (Result, error) {
	s, d, srcInfo, err := f.prepare(src, dst)
	if err != nil {
		return failed(OpRename, s, d, err)
	}
	dstInfo, err := f.checkDestination(d, overwrite)
	if err != nil {
		return failed(OpRename, s, d, err)
	}
	if err := f.ensureParent(d); err != nil {
		return failed(OpRename, s, d, err)
	}

	// A file replacing a file is left to the rename itself, which is atomic
	// on the host filesystem. Anything involving a directory is cleared first.
	if dstInfo != nil && (dstInfo.IsDir() || srcInfo.IsDir()) {
		if err := f.removeAll(d); err != nil {
			return failed(OpRename, s, d, err)
		}
	}

	if err := f.fs.Rename(s.Native(), d.Native()); err != nil {
		return failed(OpRename, s, d, fserr.NewIOError(fmt.Sprintf("rename %s to %s", s, d), err))
	}

	f.trace(OpRename, s, d).Debug("renamed")
	return succeeded(OpRename, s, d), nil
}

// SafeCopy copies the file or directory src to dst, keeping src. With
// overwrite an existing destination directory is merged into.
func (f *FileSystem) SafeCopy(src, dst string, overwrite bool) (Result, error) {
	s, d, srcInfo, err := f.prepare(src, dst)
	if err != nil {
		return failed(OpCopy, s, d, err)
	}
	dstInfo, err := f.checkDestination(d, overwrite)
	if err != nil {
		return failed(OpCopy, s, d, err)
	}
	if dstInfo != nil && dstInfo.IsDir() != srcInfo.IsDir() {
		if err := f.removeAll(d); err != nil {
			return failed(OpCopy, s, d, err)
		}
	}
	if err := f.ensureParent(d); err != nil {
		return failed(OpCopy, s, d, err)
	}

	if srcInfo.IsDir() {
		err = f.copyDir(s, d)
	} else {
		err = f.copyFile(s, d, srcInfo)
	}
	if err != nil {
		return failed(OpCopy, s, d, err)
	}

	f.trace(OpCopy, s, d).Debug("copied")
	return succeeded(OpCopy, s, d), nil
}

// SafeMove moves src to dst. It renames when possible and falls back to copy
// and remove otherwise, for example across devices. With overwrite an
// existing destination directory is merged into before src is removed.
func (f *FileSystem) SafeMove(src, dst string, overwrite bool) (Result, error) {
	s, d, srcInfo, err := f.prepare(src, dst)
	if err != nil {
		return failed(OpMove, s, d, err)
	}
	dstInfo, err := f.checkDestination(d, overwrite)
	if err != nil {
		return failed(OpMove, s, d, err)
	}
	if err := f.ensureParent(d); err != nil {
		return failed(OpMove, s, d, err)
	}

	if dstInfo != nil {
		if dstInfo.IsDir() && srcInfo.IsDir() {
			if err := f.copyDir(s, d); err != nil {
				return failed(OpMove, s, d, err)
			}
			if err := f.removeAll(s); err != nil {
				return failed(OpMove, s, d, err)
			}
			f.trace(OpMove, s, d).Debug("merged directory")
			return succeeded(OpMove, s, d), nil
		}
		if dstInfo.IsDir() || srcInfo.IsDir() {
			if err := f.removeAll(d); err != nil {
				return failed(OpMove, s, d, err)
			}
		}
	}

	if renameErr := f.fs.Rename(s.Native(), d.Native()); renameErr != nil {
		f.trace(OpMove, s, d).WithError(renameErr).Warn("rename failed, falling back to copy")
		if srcInfo.IsDir() {
			err = f.copyDir(s, d)
		} else {
			err = f.copyFile(s, d, srcInfo)
		}
		if err != nil {
			return failed(OpMove, s, d, err)
		}
		if err := f.removeAll(s); err != nil {
			return failed(OpMove, s, d, err)
		}
	}

	f.trace(OpMove, s, d).Debug("moved")
	return succeeded(OpMove, s, d), nil
}

// intoDir returns dir/<base of src>. dir itself is created later, together
// with the parent of the destination, once the operation has been validated.
func (f *FileSystem) intoDir(src, dir string) (string, error) {
	d, err := paths.Normalize(dir)
	if err != nil {
		return "", err
	}
	s, err := paths.Normalize(src)
	if err != nil {
		return "", err
	}
	info, exists, err := f.stat(d)
	if err != nil {
		return "", err
	}
	if exists && !info.IsDir() {
		return "", fserr.NewDestinationExistsError(d.String() + " is a file, not a directory")
	}
	return paths.Join(d.String(), paths.Base(s.String())), nil
}

// CopyInto copies src into the directory dir, keeping its name.
func (f *FileSystem) CopyInto(src, dir string, overwrite bool) (Result, error) {
	dst, err := f.intoDir(src, dir)
	if err != nil {
		return failed(OpCopy, "", "", err)
	}
	return f.SafeCopy(src, dst, overwrite)
}

// MoveInto moves src into the directory dir, keeping its name.
func (f *FileSystem) MoveInto(src, dir string, overwrite bool) (Result, error) {
	dst, err := f.intoDir(src, dir)
	if err != nil {
		return failed(OpMove, "", "", err)
	}
	return f.SafeMove(src, dst, overwrite)
}

// Rename gives path a new base name without moving it to another directory.
func (f *FileSystem) Rename(path, name string) (Result, error) {
	if err := paths.ValidateName(name); err != nil {
		return failed(OpRename, "", "", err)
	}
	parent, err := paths.Parent(path)
	if err != nil {
		return failed(OpRename, "", "", err)
	}
	return f.SafeRename(path, paths.Join(parent.String(), name), false)
}
