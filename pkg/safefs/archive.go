package safefs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mholt/archives"
	"github.com/spf13/afero"

	"github.com/zoro11031/safefs/pkg/fserr"
	"github.com/zoro11031/safefs/pkg/paths"
)

// archiveSuffixes name the files Extract and ExtractAll treat as archives.
// The actual format is identified from the content.
var archiveSuffixes = []string{
	".zip",
	".tar",
	".tar.gz", ".tgz",
	".tar.bz2", ".tbz2",
	".tar.xz", ".txz",
	".tar.zst",
	".7z",
	".rar",
}

func isArchive(p paths.Path) bool {
	name := strings.ToLower(paths.Base(p.String()))
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Extract unpacks an archive (zip, tar, compressed tar, 7z or rar) into the
// directory that holds it, replacing files of the same name. Entries that
// would land outside that directory are rejected. With remove the archive is
// deleted afterwards.
func (f *FileSystem) Extract(archive string, remove bool) (Result, error) {
	p, err := paths.Normalize(archive)
	if err != nil {
		return failed(OpExtract, "", "", err)
	}
	if !isArchive(p) {
		return failed(OpExtract, p, "", fserr.NewUnsupportedError("archive format of "+p.String()))
	}
	if _, err := f.mustExist(p); err != nil {
		return failed(OpExtract, p, "", err)
	}
	target, err := paths.Parent(p.String())
	if err != nil {
		return failed(OpExtract, p, "", err)
	}

	err = f.walkArchive(p, func(info archives.FileInfo) error {
		return f.extractEntry(target, info)
	})
	if err != nil {
		return failed(OpExtract, p, target, err)
	}
	if remove {
		if err := f.fs.Remove(p.Native()); err != nil {
			return failed(OpExtract, p, target, fserr.NewIOError("remove "+p.String(), err))
		}
	}

	f.trace(OpExtract, p, target).Debug("extracted")
	return succeeded(OpExtract, p, target), nil
}

// walkArchive identifies the format of p and calls handle for every entry.
// An error returned by handle is passed through unchanged; everything else
// that goes wrong reading the archive is an io error.
func (f *FileSystem) walkArchive(p paths.Path, handle func(archives.FileInfo) error) error {
	file, err := f.fs.Open(p.Native())
	if err != nil {
		return fserr.NewIOError("open "+p.String(), err)
	}
	defer file.Close()

	ex, err := identify(p, file)
	if err != nil {
		return err
	}

	var handleErr error
	err = ex.Extract(context.Background(), file, func(_ context.Context, info archives.FileInfo) error {
		handleErr = handle(info)
		return handleErr
	})
	if handleErr != nil {
		return handleErr
	}
	if err != nil {
		return fserr.NewIOError("read archive "+p.String(), err)
	}
	return nil
}

// identify returns the extractor for file and rewinds it to the start.
func identify(p paths.Path, file afero.File) (archives.Extractor, error) {
	format, _, err := archives.Identify(context.Background(), paths.Base(p.String()), file)
	if err != nil {
		return nil, fserr.NewIOError("identify archive "+p.String(), err)
	}
	ex, ok := format.(archives.Extractor)
	if !ok {
		return nil, fserr.NewIOError("identify archive "+p.String(),
			fmt.Errorf("%s is not an archive format", format.Extension()))
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fserr.NewIOError("rewind "+p.String(), err)
	}
	return ex, nil
}

// entryPath joins an archive entry name onto dir and refuses names that
// escape it.
func entryPath(dir paths.Path, name string) (paths.Path, error) {
	joined := paths.Join(dir.String(), name)
	if !paths.Contains(dir.String(), joined) {
		return "", fserr.NewInvalidPathError(fmt.Sprintf("archive entry %q escapes %s", name, dir))
	}
	return paths.Path(joined), nil
}

func (f *FileSystem) extractEntry(dir paths.Path, info archives.FileInfo) error {
	target, err := entryPath(dir, info.NameInArchive)
	if err != nil {
		return err
	}

	switch {
	case info.IsDir():
		if err := f.fs.MkdirAll(target.Native(), dirPerm); err != nil {
			return fserr.NewIOError("create directory "+target.String(), err)
		}
		return nil
	case info.LinkTarget != "" || !info.Mode().IsRegular():
		f.log.WithField("entry", info.NameInArchive).Debug("skipping archive entry that is not a regular file")
		return nil
	}

	rc, err := info.Open()
	if err != nil {
		return fserr.NewIOError("open archive entry "+info.NameInArchive, err)
	}
	defer rc.Close()
	return f.writeEntry(target, rc, info.Mode().Perm())
}

func (f *FileSystem) writeEntry(target paths.Path, r io.Reader, perm os.FileMode) error {
	if perm == 0 {
		perm = filePerm
	}
	if err := f.ensureParent(target); err != nil {
		return err
	}
	out, err := f.fs.OpenFile(target.Native(), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return fserr.NewIOError("create "+target.String(), err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fserr.NewIOError("write "+target.String(), err)
	}
	if err := out.Close(); err != nil {
		return fserr.NewIOError("close "+target.String(), err)
	}
	return nil
}

// ExtractAll extracts and removes every archive directly inside dir, then
// repeats while new archives keep appearing. An archive that fails is left in
// place and not retried; failures are returned joined together with the
// number of archives extracted.
func (f *FileSystem) ExtractAll(dir string) (int, error) {
	failures := map[paths.Path]error{}
	count := 0

	for {
		files, err := f.ListDir(dir, Files)
		if err != nil {
			return count, err
		}
		extracted := 0
		for _, p := range files {
			if !isArchive(p) {
				continue
			}
			if _, seen := failures[p]; seen {
				continue
			}
			if _, err := f.Extract(p.String(), true); err != nil {
				f.log.WithError(err).WithField("archive", p.String()).Warn("extraction failed")
				failures[p] = err
				continue
			}
			extracted++
		}
		count += extracted
		if extracted == 0 {
			break
		}
	}

	keys := make([]string, 0, len(failures))
	for p := range failures {
		keys = append(keys, p.String())
	}
	sort.Strings(keys)
	errs := make([]error, 0, len(keys))
	for _, k := range keys {
		errs = append(errs, failures[paths.Path(k)])
	}
	return count, errors.Join(errs...)
}

// CheckArchive reports whether path holds a readable archive. Every entry is
// read through so that checksums are verified. A missing file yields false;
// a corrupt archive is deleted and also yields false.
func (f *FileSystem) CheckArchive(path string) (bool, error) {
	p, err := paths.Normalize(path)
	if err != nil {
		return false, err
	}
	if !isArchive(p) {
		return false, fserr.NewUnsupportedError("archive format of " + p.String())
	}
	_, exists, err := f.stat(p)
	if err != nil || !exists {
		return false, err
	}

	verr := f.walkArchive(p, func(info archives.FileInfo) error {
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		return readThrough(info)
	})
	if verr != nil {
		f.log.WithError(verr).WithField("archive", p.String()).Warn("removing corrupt archive")
		if err := f.fs.Remove(p.Native()); err != nil {
			return false, fserr.NewIOError("remove "+p.String(), err)
		}
		return false, nil
	}
	return true, nil
}

func readThrough(info archives.FileInfo) error {
	rc, err := info.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(io.Discard, rc)
	return err
}
