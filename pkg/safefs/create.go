package safefs

import (
	"errors"
	"os"

	"github.com/spf13/afero"

	"github.com/zoro11031/safefs/pkg/fserr"
	"github.com/zoro11031/safefs/pkg/paths"
)

const (
	backupTimeFormat = "20060102_150405"
	logTimeFormat    = "2006-01-02 15:04:05 -07:00"
)

// MakeDirs creates every directory in dirs along with missing parents. It
// keeps going past failures and returns them joined.
func (f *FileSystem) MakeDirs(dirs ...string) error {
	var errs []error
	for _, dir := range dirs {
		p, err := paths.Normalize(dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := f.fs.MkdirAll(p.Native(), dirPerm); err != nil {
			errs = append(errs, fserr.NewIOError("create directory "+p.String(), err))
		}
	}
	return errors.Join(errs...)
}

// MakeFile creates a file holding content. An existing file or directory at
// path is subject to the overwrite guard.
func (f *FileSystem) MakeFile(path, content string, overwrite bool) (Result, error) {
	p, err := paths.Normalize(path)
	if err != nil {
		return failed(OpMakeFile, "", "", err)
	}
	existing, err := f.checkDestination(p, overwrite)
	if err != nil {
		return failed(OpMakeFile, "", p, err)
	}
	if existing != nil && existing.IsDir() {
		if err := f.removeAll(p); err != nil {
			return failed(OpMakeFile, "", p, err)
		}
	}
	if err := f.ensureParent(p); err != nil {
		return failed(OpMakeFile, "", p, err)
	}
	if err := afero.WriteFile(f.fs, p.Native(), []byte(content), filePerm); err != nil {
		return failed(OpMakeFile, "", p, fserr.NewIOError("write "+p.String(), err))
	}

	f.trace(OpMakeFile, "", p).Debug("created file")
	return succeeded(OpMakeFile, "", p), nil
}

// AppendLog appends msg as one line to the file at path, creating the file
// and its parents as needed. With timestamp the line is prefixed by the
// current local time.
func (f *FileSystem) AppendLog(path, msg string, timestamp bool) error {
	p, err := paths.Normalize(path)
	if err != nil {
		return err
	}
	if err := f.ensureParent(p); err != nil {
		return err
	}

	line := msg
	if timestamp {
		line = "[" + f.now().Format(logTimeFormat) + "]  " + msg
	}

	file, err := f.fs.OpenFile(p.Native(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fserr.NewIOError("open "+p.String(), err)
	}
	if _, err := file.WriteString(line + "\n"); err != nil {
		file.Close()
		return fserr.NewIOError("append to "+p.String(), err)
	}
	if err := file.Close(); err != nil {
		return fserr.NewIOError("close "+p.String(), err)
	}
	return nil
}

// Backup copies the file at path to path.backup.<timestamp> and returns the
// backup's path. It returns "" when there is no file to back up.
func (f *FileSystem) Backup(path string) (string, error) {
	p, err := paths.Normalize(path)
	if err != nil {
		return "", err
	}
	info, exists, err := f.stat(p)
	if err != nil {
		return "", err
	}
	if !exists || info.IsDir() {
		return "", nil
	}

	backupPath := p.String() + ".backup." + f.now().Format(backupTimeFormat)
	res, err := f.SafeCopy(p.String(), backupPath, false)
	if err != nil {
		return "", err
	}
	return res.Path().String(), nil
}
