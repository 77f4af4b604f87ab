// Package paths converts path strings into a single canonical form that does
// not depend on the host platform.
//
// A canonical path uses "/" as its only separator, has no empty or "."
// segments, resolves ".." lexically and carries no trailing separator unless
// it is a root. Recognised roots are the Unix root "/", Windows drive roots
// such as "C:/" and UNC hosts such as "//server".
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/zoro11031/safefs/pkg/fserr"
)

// Path is a path string in canonical form.
type Path string

func (p Path) String() string {
	return string(p)
}

// Native returns p using the host separator.
func (p Path) Native() string {
	return filepath.FromSlash(string(p))
}

// ForSlash replaces every backslash in path with a forward slash.
func ForSlash(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// CheckWinDrive reports the canonical drive root ("C:/") when s names a bare
// Windows drive such as "c:", "C:\" or "C:/", and "" otherwise.
func CheckWinDrive(s string) string {
	s = ForSlash(s)
	if len(s) != 2 && len(s) != 3 {
		return ""
	}
	if !isDriveLetter(s[0]) || s[1] != ':' {
		return ""
	}
	if len(s) == 3 && s[2] != '/' {
		return ""
	}
	return strings.ToUpper(s[:1]) + ":/"
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// splitRoot separates the root of a forward-slashed path from the rest.
// root is "" for relative paths.
func splitRoot(s string) (root, rest string) {
	switch {
	case s == "//":
		return "//", ""
	case strings.HasPrefix(s, "//") && s[2] != '/':
		host, rest, _ := strings.Cut(s[2:], "/")
		return "//" + host, rest
	case strings.HasPrefix(s, "/"):
		return "/", s[1:]
	case len(s) >= 2 && isDriveLetter(s[0]) && s[1] == ':' && (len(s) == 2 || s[2] == '/'):
		return strings.ToUpper(s[:1]) + ":/", s[2:]
	}
	return "", s
}

// Split returns the root of path (if any) followed by its segments, with "."
// and ".." already resolved. It returns nil when nothing remains.
func Split(path string) []string {
	root, rest := splitRoot(ForSlash(path))
	return resolve(root, rest)
}

// resolve cleans the segments of rest, which lies below root.
func resolve(root, rest string) []string {
	var segments []string
	for _, seg := range strings.Split(rest, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if n := len(segments); n > 0 && segments[n-1] != ".." {
				segments = segments[:n-1]
				continue
			}
			if root != "" {
				// Nothing exists above a root.
				continue
			}
		}
		segments = append(segments, seg)
	}

	if root != "" {
		return append([]string{root}, segments...)
	}
	if len(segments) == 0 {
		return nil
	}
	return segments
}

// joinParts is the inverse of Split.
func joinParts(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	root := parts[0]
	if !strings.Contains(root, "/") {
		return strings.Join(parts, "/")
	}
	rest := strings.Join(parts[1:], "/")
	if strings.HasSuffix(root, "/") || rest == "" {
		return root + rest
	}
	return root + "/" + rest
}

// Normalize converts path into canonical form. An empty path is rejected; a
// relative path that cancels out entirely, such as "a/..", becomes ".".
func Normalize(path string) (Path, error) {
	if strings.TrimSpace(path) == "" {
		return "", fserr.NewInvalidPathError("empty path")
	}
	joined := joinParts(Split(path))
	if joined == "" {
		return ".", nil
	}
	return Path(joined), nil
}

// Join joins any number of path elements and normalizes the result. Only the
// first non-empty element may carry a root; the others are treated as
// segments below it. Empty elements are ignored and "" is returned when no
// element is non-empty.
func Join(elems ...string) string {
	var nonEmpty []string
	for _, e := range elems {
		if e != "" {
			nonEmpty = append(nonEmpty, ForSlash(e))
		}
	}
	if len(nonEmpty) == 0 {
		return ""
	}
	root, first := splitRoot(nonEmpty[0])
	rest := append([]string{first}, nonEmpty[1:]...)
	joined := joinParts(resolve(root, strings.Join(rest, "/")))
	if joined == "" {
		return "."
	}
	return joined
}

// Parent returns the directory containing path. A root is its own parent.
func Parent(path string) (Path, error) {
	if strings.TrimSpace(path) == "" {
		return "", fserr.NewInvalidPathError("empty path")
	}
	parts := Split(path)
	switch n := len(parts); {
	case n == 0:
		return "..", nil
	case parts[n-1] == "..":
		parts = append(parts, "..")
	case n == 1 && strings.Contains(parts[0], "/"):
		return Path(parts[0]), nil
	default:
		parts = parts[:n-1]
	}
	if len(parts) == 0 {
		return ".", nil
	}
	return Path(joinParts(parts)), nil
}

// Base returns the last element of path, or the root itself for a root path.
func Base(path string) string {
	parts := Split(path)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// IsAbs reports whether path starts with a root.
func IsAbs(path string) bool {
	root, _ := splitRoot(ForSlash(path))
	return root != ""
}

// IsRoot reports whether path is nothing but a root.
func IsRoot(path string) bool {
	parts := Split(path)
	return len(parts) == 1 && strings.Contains(parts[0], "/")
}

// Abs normalizes path, resolving a relative path against the working
// directory.
func Abs(path string) (Path, error) {
	if strings.TrimSpace(path) == "" {
		return "", fserr.NewInvalidPathError("empty path")
	}
	if IsAbs(path) {
		return Normalize(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fserr.NewIOError("get working directory", err)
	}
	return Path(Join(cwd, path)), nil
}

// Contains reports whether p is dir or lies below it. Both are compared
// lexically in canonical form; a relative path never contains an absolute one
// or the other way round.
func Contains(dir, p string) bool {
	if IsAbs(dir) != IsAbs(p) {
		return false
	}
	base, parts := Split(dir), Split(p)
	if len(parts) < len(base) {
		return false
	}
	for i := range base {
		if parts[i] != base[i] {
			return false
		}
	}
	rest := parts[len(base):]
	return len(rest) == 0 || rest[0] != ".."
}

// ValidateName checks that name can be used as a single base name: it must be
// non-empty, free of separators, not "." or ".." and not a drive.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fserr.NewInvalidPathError("name cannot be empty")
	case strings.ContainsAny(name, `/\`):
		return fserr.NewInvalidPathError("name cannot contain path separators: " + name)
	case name == "." || name == "..":
		return fserr.NewInvalidPathError("name cannot be '.' or '..': " + name)
	case CheckWinDrive(name) != "":
		return fserr.NewInvalidPathError("name cannot be a drive: " + name)
	}
	return nil
}
