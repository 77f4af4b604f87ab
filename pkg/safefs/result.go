package safefs

import "github.com/zoro11031/safefs/pkg/paths"

// Op names the operation that produced a Result.
type Op string

const (
	OpRename   Op = "rename"
	OpCopy     Op = "copy"
	OpMove     Op = "move"
	OpMakeFile Op = "makefile"
	OpExtract  Op = "extract"
)

// Result is the outcome of a single operation. It cannot be modified after
// it has been returned.
type Result struct {
	op     Op
	source paths.Path
	path   paths.Path
	err    error
}

func succeeded(op Op, source, path paths.Path) Result {
	return Result{op: op, source: source, path: path}
}

// failed builds the Result for a failed operation and returns err alongside
// it, so callers can write `return failed(...)`.
func failed(op Op, source, path paths.Path, err error) (Result, error) {
	return Result{op: op, source: source, path: path, err: err}, err
}

// Op returns the operation kind.
func (r Result) Op() Op { return r.op }

// Source returns the normalized source path, if the operation had one.
func (r Result) Source() paths.Path { return r.source }

// Path returns the normalized resulting path.
func (r Result) Path() paths.Path { return r.path }

// Err returns the failure reason, or nil.
func (r Result) Err() error { return r.err }

// OK reports whether the operation succeeded.
func (r Result) OK() bool { return r.err == nil }
