package ui

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/zoro11031/safefs/pkg/safefs"
)

// UI provides user interface methods. Status messages go to the message
// writer (stderr by default); command results such as listings go to the
// result writer (stdout by default) so they can be piped.
type UI struct {
	output         io.Writer
	results        io.Writer
	nonInteractive bool // If true, don't prompt user for input
	assumeYes      bool // If true, answer every overwrite prompt with yes
	// Color functions
	colorInfo    *color.Color
	colorSuccess *color.Color
	colorWarning *color.Color
	colorError   *color.Color
	colorDir     *color.Color
}

// New creates a new UI instance
func New() *UI {
	return &UI{
		output:       os.Stderr,
		results:      os.Stdout,
		colorInfo:    color.New(color.FgBlue),
		colorSuccess: color.New(color.FgGreen),
		colorWarning: color.New(color.FgYellow),
		colorError:   color.New(color.FgRed),
		colorDir:     color.New(color.FgCyan, color.Bold),
	}
}

// NewWithWriter creates a UI that writes messages and results to w (useful
// for testing)
func NewWithWriter(w io.Writer) *UI {
	ui := New()
	ui.output = w
	ui.results = w
	return ui
}

// SetNonInteractive enables or disables non-interactive mode
func (u *UI) SetNonInteractive(enabled bool) {
	u.nonInteractive = enabled
}

// IsNonInteractive returns true if non-interactive mode is enabled
func (u *UI) IsNonInteractive() bool {
	return u.nonInteractive
}

// SetAssumeYes makes overwrite prompts succeed without asking
func (u *UI) SetAssumeYes(enabled bool) {
	u.assumeYes = enabled
}

// Info prints an info message
func (u *UI) Info(msg string) {
	u.colorInfo.Fprintf(u.output, "[INFO] %s\n", msg)
}

// Infof prints a formatted info message
func (u *UI) Infof(format string, args ...interface{}) {
	u.Info(fmt.Sprintf(format, args...))
}

// Success prints a success message
func (u *UI) Success(msg string) {
	u.colorSuccess.Fprintf(u.output, "[✓] %s\n", msg)
}

// Successf prints a formatted success message
func (u *UI) Successf(format string, args ...interface{}) {
	u.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message
func (u *UI) Warning(msg string) {
	u.colorWarning.Fprintf(u.output, "[WARNING] %s\n", msg)
}

// Warningf prints a formatted warning message
func (u *UI) Warningf(format string, args ...interface{}) {
	u.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message
func (u *UI) Error(msg string) {
	u.colorError.Fprintf(u.output, "[ERROR] %s\n", msg)
}

// Errorf prints a formatted error message
func (u *UI) Errorf(format string, args ...interface{}) {
	u.Error(fmt.Sprintf(format, args...))
}

// Print prints a plain result line
func (u *UI) Print(msg string) {
	fmt.Fprintln(u.results, msg)
}

// Printf prints a formatted plain result line
func (u *UI) Printf(format string, args ...interface{}) {
	fmt.Fprintf(u.results, format+"\n", args...)
}

// Result reports a completed operation
func (u *UI) Result(res safefs.Result) {
	if !res.OK() {
		u.Errorf("%s failed: %v", res.Op(), res.Err())
		return
	}
	if res.Source() == "" {
		u.Successf("%s %s", res.Op(), res.Path())
		return
	}
	u.Successf("%s %s -> %s", res.Op(), res.Source(), res.Path())
}

// Entry prints one listing line, highlighting directories
func (u *UI) Entry(path string, isDir bool) {
	if isDir {
		u.colorDir.Fprintln(u.results, path+"/")
		return
	}
	fmt.Fprintln(u.results, path)
}

// Settings prints key/value pairs sorted by key
func (u *UI) Settings(values map[string]string) {
	keys := make([]string, 0, len(values))
	width := 0
	for key := range values {
		keys = append(keys, key)
		if len(key) > width {
			width = len(key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		u.Printf("%-*s = %s", width, key, values[key])
	}
}
