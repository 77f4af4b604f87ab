package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zoro11031/safefs/internal/common"
	"github.com/zoro11031/safefs/internal/config"
	"github.com/zoro11031/safefs/pkg/paths"
	"github.com/zoro11031/safefs/pkg/safefs"
)

// ErrOperationsFailed is returned when at least one of several independent
// operations failed. Each failure has already been reported through the UI.
var ErrOperationsFailed = errors.New("one or more operations failed")

// TransferOp selects what Transfer does with each source
type TransferOp int

const (
	TransferCopy TransferOp = iota
	TransferMove
	TransferRename
)

// Normalize prints the canonical form of each path, made absolute when abs
// is set.
func Normalize(ctx *Context, args []string, abs bool) error {
	for _, arg := range args {
		var p paths.Path
		var err error
		if abs {
			p, err = paths.Abs(arg)
		} else {
			p, err = paths.Normalize(arg)
		}
		if err != nil {
			return err
		}
		ctx.UI.Print(p.String())
	}
	return nil
}

// Transfer copies, moves or renames sources to dst. With several sources, or
// with into set, dst is a directory that receives each source under its own
// name. Every source is attempted; failures are reported and summarized.
func Transfer(ctx *Context, op TransferOp, sources []string, dst string, into bool) error {
	if len(sources) == 0 {
		return fmt.Errorf("no source given")
	}
	if err := common.ValidateNotEmpty(dst); err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}
	if len(sources) > 1 {
		if op == TransferRename {
			return fmt.Errorf("rename takes exactly one source")
		}
		into = true
	}
	overwrite, err := ctx.Overwrite()
	if err != nil {
		return err
	}

	failed := 0
	for _, src := range sources {
		var res safefs.Result
		var err error
		switch {
		case op == TransferRename:
			res, err = ctx.FS.SafeRename(src, dst, overwrite)
		case op == TransferCopy && into:
			res, err = ctx.FS.CopyInto(src, dst, overwrite)
		case op == TransferCopy:
			res, err = ctx.FS.SafeCopy(src, dst, overwrite)
		case into:
			res, err = ctx.FS.MoveInto(src, dst, overwrite)
		default:
			res, err = ctx.FS.SafeMove(src, dst, overwrite)
		}
		if err != nil {
			ctx.UI.Errorf("%s: %v", src, err)
			failed++
			continue
		}
		ctx.UI.Result(res)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, len(sources), ErrOperationsFailed)
	}
	return nil
}

// RenameBase gives path a new base name in place
func RenameBase(ctx *Context, path, name string) error {
	res, err := ctx.FS.Rename(path, name)
	if err != nil {
		return err
	}
	ctx.UI.Result(res)
	return nil
}

// List prints the entries of dir
func List(ctx *Context, dir string, kinds safefs.Kind) error {
	entries, err := ctx.FS.ListDir(dir, kinds)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		isDir, err := ctx.FS.IsDir(entry.String())
		if err != nil {
			return err
		}
		ctx.UI.Entry(entry.String(), isDir)
	}
	return nil
}

// Remove deletes each path. Every path is attempted.
func Remove(ctx *Context, targets []string, force bool) error {
	failed := 0
	for _, target := range targets {
		if err := ctx.FS.Delete(target, force); err != nil {
			ctx.UI.Errorf("%s: %v", target, err)
			failed++
			continue
		}
		ctx.UI.Successf("removed %s", target)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, len(targets), ErrOperationsFailed)
	}
	return nil
}

// Prune removes empty directories below dir, and dir itself when includeRoot
func Prune(ctx *Context, dir string, includeRoot bool) error {
	n, err := ctx.FS.RemoveEmptyDirs(dir, includeRoot)
	if err != nil {
		return err
	}
	ctx.UI.Successf("removed %d empty directories", n)
	return nil
}

// MakeDirs creates every directory
func MakeDirs(ctx *Context, dirs []string) error {
	if err := ctx.FS.MakeDirs(dirs...); err != nil {
		return err
	}
	ctx.UI.Successf("created %d directories", len(dirs))
	return nil
}

// Touch creates a file holding content
func Touch(ctx *Context, path, content string) error {
	overwrite, err := ctx.Overwrite()
	if err != nil {
		return err
	}
	res, err := ctx.FS.MakeFile(path, content, overwrite)
	if err != nil {
		return err
	}
	ctx.UI.Result(res)
	return nil
}

// AppendLog appends one line to a log file
func AppendLog(ctx *Context, path, msg string, timestamp bool) error {
	return ctx.FS.AppendLog(path, msg, timestamp)
}

// Backup copies each file next to itself with a timestamp suffix and prints
// the backup paths
func Backup(ctx *Context, targets []string) error {
	for _, target := range targets {
		backup, err := ctx.FS.Backup(target)
		if err != nil {
			return err
		}
		if backup == "" {
			ctx.UI.Warningf("%s: no file to back up", target)
			continue
		}
		ctx.UI.Print(backup)
	}
	return nil
}

// Extract unpacks each archive next to itself
func Extract(ctx *Context, archives []string, remove bool) error {
	for _, archive := range archives {
		res, err := ctx.FS.Extract(archive, remove)
		if err != nil {
			return err
		}
		ctx.UI.Result(res)
	}
	return nil
}

// ExtractAll unpacks every archive in dir, including archives that appear
// while doing so
func ExtractAll(ctx *Context, dir string) error {
	ctx.UI.Infof("extracting archives in %s", dir)
	n, err := ctx.FS.ExtractAll(dir)
	ctx.UI.Successf("extracted %d archives", n)
	return err
}

// CheckArchives verifies each archive; corrupt ones are deleted
func CheckArchives(ctx *Context, archives []string) error {
	bad := 0
	for _, archive := range archives {
		ok, err := ctx.FS.CheckArchive(archive)
		if err != nil {
			return err
		}
		if !ok {
			ctx.UI.Warningf("%s: missing or corrupt", archive)
			bad++
			continue
		}
		ctx.UI.Successf("%s: ok", archive)
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d: %w", bad, len(archives), ErrOperationsFailed)
	}
	return nil
}

// ShowConfig prints every setting with its resolved value
func ShowConfig(ctx *Context) error {
	ctx.UI.Settings(ctx.Config.GetAll())
	return nil
}

// SetConfig stores one setting in the config file
func SetConfig(ctx *Context, key, value string) error {
	if err := ctx.Config.Set(key, value); err != nil {
		return err
	}
	ctx.UI.Successf("%s saved to %s", key, ctx.Config.FilePath())
	return nil
}

// ConfigPath prints the config file location
func ConfigPath(ctx *Context) error {
	ctx.UI.Print(ctx.Config.FilePath())
	return nil
}

// ConfigKeys returns the settable keys, for shell completion
func ConfigKeys() []string {
	keys := make([]string, 0, len(config.Validators))
	for key := range config.Validators {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
