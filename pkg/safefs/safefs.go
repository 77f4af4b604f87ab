// Package safefs wraps rename, copy, move and related filesystem operations
// with existence checks and an opt-in overwrite guard.
//
// Every operation is synchronous and independent: a FileSystem holds only
// its backend, logger and confirmation hook, and may be shared freely. Paths
// handed in are normalized with the paths package, and every path handed back
// is in canonical forward-slash form.
package safefs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/zoro11031/safefs/pkg/fserr"
	"github.com/zoro11031/safefs/pkg/paths"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Confirmer decides whether an existing destination may be replaced when the
// caller did not ask for an overwrite.
type Confirmer interface {
	ConfirmOverwrite(path string) (bool, error)
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(path string) (bool, error)

func (fn ConfirmFunc) ConfirmOverwrite(path string) (bool, error) {
	return fn(path)
}

// FileSystem performs guarded operations against an afero backend.
type FileSystem struct {
	fs      afero.Fs
	log     logrus.FieldLogger
	confirm Confirmer
	now     func() time.Time
}

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithFs sets the backend. The default is the host filesystem.
func WithFs(backend afero.Fs) Option {
	return func(f *FileSystem) {
		f.fs = backend
	}
}

// WithLogger sets the logger used for operation tracing.
func WithLogger(log logrus.FieldLogger) Option {
	return func(f *FileSystem) {
		f.log = log
	}
}

// WithConfirmer installs a hook that is asked before an existing destination
// is replaced without an explicit overwrite.
func WithConfirmer(c Confirmer) Option {
	return func(f *FileSystem) {
		f.confirm = c
	}
}

// WithClock overrides the time source used for backups and log stamps.
func WithClock(now func() time.Time) Option {
	return func(f *FileSystem) {
		f.now = now
	}
}

// New creates a FileSystem backed by the host filesystem unless overridden.
func New(opts ...Option) *FileSystem {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	f := &FileSystem{
		fs:  afero.NewOsFs(),
		log: quiet,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fs returns the backend.
func (f *FileSystem) Fs() afero.Fs {
	return f.fs
}

// stat reports whether p exists. Only failures other than "does not exist"
// are returned as errors.
func (f *FileSystem) stat(p paths.Path) (os.FileInfo, bool, error) {
	info, err := f.fs.Stat(p.Native())
	if err == nil {
		return info, true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	return nil, false, fserr.NewIOError("stat "+p.String(), err)
}

// mustExist stats p and turns a missing path into an io error.
func (f *FileSystem) mustExist(p paths.Path) (os.FileInfo, error) {
	info, exists, err := f.stat(p)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fserr.NewIOError("not found "+p.String(), fs.ErrNotExist)
	}
	return info, nil
}

// checkDestination applies the overwrite guard to dst. It returns the info of
// an existing destination that may be replaced, or nil when dst is absent.
func (f *FileSystem) checkDestination(dst paths.Path, overwrite bool) (os.FileInfo, error) {
	info, exists, err := f.stat(dst)
	if err != nil || !exists {
		return nil, err
	}
	if overwrite {
		return info, nil
	}
	if f.confirm != nil {
		ok, err := f.confirm.ConfirmOverwrite(dst.String())
		if err != nil {
			return nil, fmt.Errorf("failed to confirm overwrite of %s: %w", dst, err)
		}
		if ok {
			f.log.WithField("dst", dst).Debug("overwrite confirmed")
			return info, nil
		}
	}
	return nil, fserr.NewDestinationExistsError(dst.String())
}

// ensureParent creates the directory that will hold p.
func (f *FileSystem) ensureParent(p paths.Path) error {
	parent, err := paths.Parent(p.String())
	if err != nil {
		return err
	}
	if err := f.fs.MkdirAll(parent.Native(), dirPerm); err != nil {
		return fserr.NewIOError("create directory "+parent.String(), err)
	}
	return nil
}

func (f *FileSystem) removeAll(p paths.Path) error {
	if err := f.fs.RemoveAll(p.Native()); err != nil {
		return fserr.NewIOError("remove "+p.String(), err)
	}
	return nil
}

func (f *FileSystem) trace(op Op, src, dst paths.Path) *logrus.Entry {
	return f.log.WithFields(logrus.Fields{
		"op":  string(op),
		"src": src.String(),
		"dst": dst.String(),
	})
}
