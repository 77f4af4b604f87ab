package safefs

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/zoro11031/safefs/pkg/fserr"
	"github.com/zoro11031/safefs/pkg/paths"
)

var errDirNotEmpty = errors.New("directory not empty")

// criticalPaths are refused by Delete even with force.
var criticalPaths = map[string]bool{
	"/bin":   true,
	"/boot":  true,
	"/dev":   true,
	"/etc":   true,
	"/home":  true,
	"/lib":   true,
	"/lib64": true,
	"/proc":  true,
	"/root":  true,
	"/sbin":  true,
	"/sys":   true,
	"/usr":   true,
	"/var":   true,

	"C:/Windows":             true,
	"C:/Program Files":       true,
	"C:/Program Files (x86)": true,
	"C:/Users":               true,
}

// checkRemovable refuses roots, critical system directories and the working
// directory together with everything above it. Relative paths are resolved
// against the working directory first.
func checkRemovable(p paths.Path) error {
	abs, err := paths.Abs(p.String())
	if err != nil {
		return err
	}
	if paths.IsRoot(abs.String()) {
		return fserr.NewInvalidPathError("refusing to remove root path: " + p.String())
	}
	if criticalPaths[abs.String()] {
		return fserr.NewInvalidPathError("refusing to remove critical system path: " + abs.String())
	}
	cwd, err := paths.Abs(".")
	if err != nil {
		return err
	}
	if paths.Contains(abs.String(), cwd.String()) {
		return fserr.NewInvalidPathError("refusing to remove the working directory or a parent of it: " + p.String())
	}
	return nil
}

// Delete removes a file or directory. A directory is removed with everything
// in it only when force is set; otherwise only empty directories are pruned
// and a directory that still holds files is reported as an error.
func (f *FileSystem) Delete(path string, force bool) error {
	p, err := paths.Normalize(path)
	if err != nil {
		return err
	}
	if err := checkRemovable(p); err != nil {
		return err
	}
	info, err := f.mustExist(p)
	if err != nil {
		return err
	}

	switch {
	case !info.IsDir():
		if err := f.fs.Remove(p.Native()); err != nil {
			return fserr.NewIOError("remove "+p.String(), err)
		}
	case force:
		if err := f.removeAll(p); err != nil {
			return err
		}
	default:
		if _, err := f.RemoveEmptyDirs(p.String(), true); err != nil {
			return err
		}
		if _, exists, err := f.stat(p); err != nil {
			return err
		} else if exists {
			return fserr.NewIOError("remove "+p.String(), errDirNotEmpty)
		}
	}

	f.log.WithFields(logrus.Fields{"op": "delete", "path": p.String(), "force": force}).Debug("deleted")
	return nil
}

// RemoveEmptyDirs removes every empty directory below path, and path itself
// when includeRoot is set and it ends up empty. It returns how many
// directories were removed.
func (f *FileSystem) RemoveEmptyDirs(path string, includeRoot bool) (int, error) {
	p, err := paths.Normalize(path)
	if err != nil {
		return 0, err
	}
	info, err := f.mustExist(p)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fserr.NewInvalidPathError(fmt.Sprintf("not a directory: %s", p))
	}

	entries, err := afero.ReadDir(f.fs, p.Native())
	if err != nil {
		return 0, fserr.NewIOError("read directory "+p.String(), err)
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		n, err := f.RemoveEmptyDirs(paths.Join(p.String(), entry.Name()), true)
		count += n
		if err != nil {
			return count, err
		}
	}

	if !includeRoot {
		return count, nil
	}
	empty, err := afero.IsEmpty(f.fs, p.Native())
	if err != nil {
		return count, fserr.NewIOError("read directory "+p.String(), err)
	}
	if empty {
		if err := f.fs.Remove(p.Native()); err != nil {
			return count, fserr.NewIOError("remove "+p.String(), err)
		}
		count++
	}
	return count, nil
}
