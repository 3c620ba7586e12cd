// Package fs is a thin wrapper around potential file-systems. By default, it is an abstraction over the `os` package
// from the standard library.
package fs

import (
	"os"
	"sort"
	"strings"

	"github.com/yargevad/filepathx"

	"github.com/qasymphony/qtest-ci/internal/errors"
)

// FileSystem is an abstraction over file-systems. This is implemented by Local and can also be used for mocking.
type FileSystem interface {
	Open(name string) (File, error)
	Glob(pattern string) ([]string, error)
	GlobMany(patterns []string) ([]string, error)
	Stat(name string) (os.FileInfo, error)
}

// Local is a local file-system. It wraps the default `os` package
type Local struct{}

// Open opens a file for further processing
func (l Local) Open(name string) (File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return f, nil
}

// Glob expands a pattern. In addition to the syntax of `filepath.Match`, "**" matches any number of directories, the
// way Ant-style report patterns like "**/surefire-reports/TEST-*.xml" expect.
func (l Local) Glob(pattern string) ([]string, error) {
	// A leading "**" leaves filepathx nothing to start walking from.
	if strings.HasPrefix(pattern, "**") {
		pattern = "./" + pattern
	}

	paths, err := filepathx.Glob(pattern)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return paths, nil
}

// GlobMany expands every pattern and returns the unique, sorted union of all matches.
func (l Local) GlobMany(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		paths, err := l.Glob(pattern)
		if err != nil {
			return nil, err
		}

		for _, path := range paths {
			seen[path] = struct{}{}
		}
	}

	expanded := make([]string, 0, len(seen))
	for path := range seen {
		expanded = append(expanded, path)
	}
	sort.Strings(expanded)

	return expanded, nil
}

// Stat returns the file info of name
func (l Local) Stat(name string) (os.FileInfo, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return info, nil
}
