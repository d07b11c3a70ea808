package adapter

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/Cyclone1070/shellfs/internal/models"
)

// WalkOptions bounds a traversal.
type WalkOptions struct {
	// MaxDepth limits descent below the root; 0 uses the configured default
	// (itself 0 for unlimited). Children of the root are at depth 1.
	MaxDepth int
	// MaxResults caps visited entries; 0 uses the configured maximum.
	MaxResults int
	// Exclude holds gitignore-style patterns relative to the root.
	Exclude []string
	// Type keeps only Find results of this type ("file", "directory",
	// "symlink"; case-insensitive). Empty keeps everything.
	Type string
}

// WalkFunc is called for every visited entry. Returning fs.SkipDir skips a
// directory's contents; fs.SkipAll stops the walk without error.
type WalkFunc func(path string, entry models.PathEntry, depth int) error

// FindResult is the outcome of Find.
type FindResult struct {
	Entries   []models.PathEntry
	Truncated bool
}

var errResultLimit = errors.New("walk result limit reached")

// Walk traverses root depth-first in listing order, calling fn for the root
// and every entry below it. Symlinks are reported but not followed.
func (s *ShellFileSystem) Walk(ctx context.Context, root string, opts WalkOptions, fn WalkFunc) error {
	_, err := s.walk(ctx, root, opts, fn)
	return err
}

// Find returns every entry below root (excluding root itself), narrowed to
// opts.Type when set. The result limit counts visited entries. When it is hit the entries gathered so far are returned with
// Truncated set.
func (s *ShellFileSystem) Find(ctx context.Context, root string, opts WalkOptions) (FindResult, error) {
	if opts.Type != "" {
		if _, err := models.PathTypeFromString(opts.Type); err != nil {
			return FindResult{}, err
		}
	}
	var result FindResult
	truncated, err := s.walk(ctx, root, opts, func(path string, entry models.PathEntry, depth int) error {
		if depth > 0 && (opts.Type == "" || TypeIs(entry.Type, opts.Type)) {
			result.Entries = append(result.Entries, entry)
		}
		return nil
	})
	result.Truncated = truncated
	return result, err
}

func (s *ShellFileSystem) walk(ctx context.Context, root string, opts WalkOptions, fn WalkFunc) (bool, error) {
	info, err := s.Info(ctx, root)
	if err != nil {
		return false, err
	}
	info.Name = root

	w := &walker{
		fs:         s,
		root:       root,
		fn:         fn,
		matcher:    NewIgnoreMatcher(opts.Exclude),
		maxDepth:   opts.MaxDepth,
		maxResults: opts.MaxResults,
	}
	if w.maxDepth <= 0 {
		w.maxDepth = s.walkDepth
	}
	if w.maxResults <= 0 {
		w.maxResults = s.maxWalkResults
	}

	if err := fn(root, info, 0); err != nil {
		if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
			return false, nil
		}
		return false, err
	}
	if !info.IsDir() {
		return false, nil
	}

	err = w.visit(ctx, root, 1)
	switch {
	case errors.Is(err, errResultLimit):
		s.logger.Debug("walk truncated", zap.String("root", root), zap.Int("limit", w.maxResults))
		return true, nil
	case errors.Is(err, fs.SkipAll):
		return false, nil
	default:
		return false, err
	}
}

type walker struct {
	fs         *ShellFileSystem
	root       string
	fn         WalkFunc
	matcher    *IgnoreMatcher
	maxDepth   int
	maxResults int
	count      int
}

func (w *walker) visit(ctx context.Context, dir string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := w.fs.children(ctx, dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if w.matcher.ShouldIgnore(w.relative(entry.Name), entry.IsDir()) {
			continue
		}
		if w.count >= w.maxResults {
			return errResultLimit
		}
		w.count++

		err := w.fn(entry.Name, entry, depth)
		if errors.Is(err, fs.SkipDir) {
			continue
		}
		if err != nil {
			return err
		}

		if entry.IsDir() && !entry.IsLink && (w.maxDepth == 0 || depth < w.maxDepth) {
			if err := w.visit(ctx, entry.Name, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) relative(path string) string {
	if w.root != "." && w.root != "" {
		if !strings.HasPrefix(path, w.root) {
			return path
		}
		path = path[len(w.root):]
	}
	return strings.TrimLeft(path, `/\`)
}
