package adapter

import (
	"os"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/Cyclone1070/shellfs/internal/content"
)

// IgnoreMatcher matches root-relative paths against gitignore-style
// patterns using go-git's gitignore matcher.
type IgnoreMatcher struct {
	matcher gitignore.Matcher
}

// NewIgnoreMatcher compiles patterns. Blank lines and comments are skipped.
// A matcher without patterns never ignores anything.
func NewIgnoreMatcher(patterns []string) *IgnoreMatcher {
	var compiled []gitignore.Pattern
	for _, line := range patterns {
		line = strings.TrimRight(line, " \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		compiled = append(compiled, gitignore.ParsePattern(line, nil))
	}
	if len(compiled) == 0 {
		return &IgnoreMatcher{}
	}
	return &IgnoreMatcher{matcher: gitignore.NewMatcher(compiled)}
}

// ReadIgnoreFile reads patterns from a local .gitignore-style file.
func ReadIgnoreFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IgnoreFileReadError{Path: path, Cause: err}
	}
	return content.SplitLines(string(data)), nil
}

// ShouldIgnore reports whether relativePath matches the patterns.
func (m *IgnoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	segments := splitPath(relativePath)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

// splitPath splits a path on either separator, dropping empty and "." segments.
func splitPath(path string) []string {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	segments := parts[:0]
	for _, part := range parts {
		if part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
