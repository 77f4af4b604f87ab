package safefs

import (
	"github.com/spf13/afero"

	"github.com/zoro11031/safefs/pkg/fserr"
	"github.com/zoro11031/safefs/pkg/paths"
)

// Kind selects which directory entries ListDir returns.
type Kind int

const (
	Files Kind = 1 << iota
	Dirs
	All = Files | Dirs
)

// ListDir returns the entries of the directory at path, filtered by kinds,
// as normalized full paths sorted by name.
func (f *FileSystem) ListDir(path string, kinds Kind) ([]paths.Path, error) {
	p, err := paths.Normalize(path)
	if err != nil {
		return nil, err
	}
	info, err := f.mustExist(p)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fserr.NewInvalidPathError("not a directory: " + p.String())
	}

	entries, err := afero.ReadDir(f.fs, p.Native())
	if err != nil {
		return nil, fserr.NewIOError("read directory "+p.String(), err)
	}

	var result []paths.Path
	for _, entry := range entries {
		if entry.IsDir() && kinds&Dirs == 0 {
			continue
		}
		if !entry.IsDir() && kinds&Files == 0 {
			continue
		}
		result = append(result, paths.Path(paths.Join(p.String(), entry.Name())))
	}
	return result, nil
}

// Exists reports whether anything exists at path.
func (f *FileSystem) Exists(path string) (bool, error) {
	p, err := paths.Normalize(path)
	if err != nil {
		return false, err
	}
	_, exists, err := f.stat(p)
	return exists, err
}

// IsDir reports whether path exists and is a directory.
func (f *FileSystem) IsDir(path string) (bool, error) {
	p, err := paths.Normalize(path)
	if err != nil {
		return false, err
	}
	info, exists, err := f.stat(p)
	if err != nil || !exists {
		return false, err
	}
	return info.IsDir(), nil
}

// IsFile reports whether path exists and is not a directory.
func (f *FileSystem) IsFile(path string) (bool, error) {
	p, err := paths.Normalize(path)
	if err != nil {
		return false, err
	}
	info, exists, err := f.stat(p)
	if err != nil || !exists {
		return false, err
	}
	return !info.IsDir(), nil
}
