package safefs

import (
	"strings"
	"time"

	"github.com/zoro11031/safefs/pkg/paths"
)

// File tracks a single file or directory. Move and Rename keep the handle
// pointed at the item's new location.
type File struct {
	fsys *FileSystem
	path paths.Path
}

// File returns a handle for path. The path does not need to exist.
func (f *FileSystem) File(path string) (*File, error) {
	p, err := paths.Normalize(path)
	if err != nil {
		return nil, err
	}
	return &File{fsys: f, path: p}, nil
}

func (h *File) Path() paths.Path { return h.path }

func (h *File) String() string { return h.path.String() }

// Name returns the base name.
func (h *File) Name() string {
	return paths.Base(h.path.String())
}

// Suffix returns the final extension including its dot, or "" when there is
// none. A leading dot, as in ".bashrc", does not start an extension.
func (h *File) Suffix() string {
	name := h.Name()
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return ""
	}
	return name[i:]
}

// Stem returns the name without its suffix.
func (h *File) Stem() string {
	return strings.TrimSuffix(h.Name(), h.Suffix())
}

// IsRoot reports whether the handle points at a filesystem root.
func (h *File) IsRoot() bool {
	return paths.IsRoot(h.path.String())
}

// Parent returns a handle for the containing directory.
func (h *File) Parent() (*File, error) {
	parent, err := paths.Parent(h.path.String())
	if err != nil {
		return nil, err
	}
	return &File{fsys: h.fsys, path: parent}, nil
}

func (h *File) Exists() (bool, error) { return h.fsys.Exists(h.path.String()) }

func (h *File) IsDir() (bool, error) { return h.fsys.IsDir(h.path.String()) }

func (h *File) IsFile() (bool, error) { return h.fsys.IsFile(h.path.String()) }

// Size returns the size in bytes.
func (h *File) Size() (int64, error) {
	info, err := h.fsys.mustExist(h.path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ModTime returns the last modification time.
func (h *File) ModTime() (time.Time, error) {
	info, err := h.fsys.mustExist(h.path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Children returns handles for the entries of a directory.
func (h *File) Children() ([]*File, error) {
	entries, err := h.fsys.ListDir(h.path.String(), All)
	if err != nil {
		return nil, err
	}
	children := make([]*File, 0, len(entries))
	for _, p := range entries {
		children = append(children, &File{fsys: h.fsys, path: p})
	}
	return children, nil
}

// CopyInto copies the item into dir. The handle keeps tracking the original.
func (h *File) CopyInto(dir string, overwrite bool) (Result, error) {
	return h.fsys.CopyInto(h.path.String(), dir, overwrite)
}

// MoveInto moves the item into dir and follows it there.
func (h *File) MoveInto(dir string, overwrite bool) (Result, error) {
	res, err := h.fsys.MoveInto(h.path.String(), dir, overwrite)
	if err == nil {
		h.path = res.Path()
	}
	return res, err
}

// Rename changes the item's base name and follows it.
func (h *File) Rename(name string) (Result, error) {
	res, err := h.fsys.Rename(h.path.String(), name)
	if err == nil {
		h.path = res.Path()
	}
	return res, err
}

// Delete removes the item. See FileSystem.Delete for the meaning of force.
func (h *File) Delete(force bool) error {
	return h.fsys.Delete(h.path.String(), force)
}
