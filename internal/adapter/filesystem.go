// Package adapter exposes a shell-backed filesystem with the surface that
// filesystem frameworks expect: info and listing calls that fail on missing
// paths, directory creation and removal, and detail records.
package adapter

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Cyclone1070/shellfs/internal/config"
	"github.com/Cyclone1070/shellfs/internal/dialect"
	"github.com/Cyclone1070/shellfs/internal/fsops"
	"github.com/Cyclone1070/shellfs/internal/models"
)

// fileOps is the filesystem facade the adapter drives.
type fileOps interface {
	Info(ctx context.Context, path string) (models.PathEntry, error)
	ListDir(ctx context.Context, path string) ([]models.PathEntry, error)
	Mkdir(ctx context.Context, path string) error
	MakeDirs(ctx context.Context, path string) error
	Touch(ctx context.Context, path string) error
	Remove(ctx context.Context, path string) error
	RemoveTree(ctx context.Context, path string) error
	CopyFile(ctx context.Context, src, dst string) error
	Dialect() *dialect.Dialect
}

// ShellFileSystem adapts shell filesystem operations to a framework-style API.
type ShellFileSystem struct {
	ops            fileOps
	maxWalkResults int
	walkDepth      int
	logger         *zap.Logger
}

// New creates a ShellFileSystem over ops.
func New(ops fileOps, cfg *config.Config, logger *zap.Logger) *ShellFileSystem {
	if ops == nil {
		panic("ops is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShellFileSystem{
		ops:            ops,
		maxWalkResults: cfg.Listing.MaxWalkResults,
		walkDepth:      cfg.Listing.DefaultWalkDepth,
		logger:         logger.Named("adapter"),
	}
}

// Dialect returns the dialect of the underlying shell.
func (s *ShellFileSystem) Dialect() *dialect.Dialect {
	return s.ops.Dialect()
}

// Info returns the entry for path or a NotFoundError.
func (s *ShellFileSystem) Info(ctx context.Context, path string) (models.PathEntry, error) {
	entry, err := s.ops.Info(ctx, path)
	if err != nil {
		return models.PathEntry{}, err
	}
	if entry.IsNotFound() {
		return models.PathEntry{}, &NotFoundError{Path: path}
	}
	return entry, nil
}

// Ls lists path. Directories yield their children (without "." and "..")
// with names joined onto path; any other path yields itself. A listing cut
// by the output cap yields its complete entries and an
// *fsops.OutputTruncatedError.
func (s *ShellFileSystem) Ls(ctx context.Context, path string) ([]models.PathEntry, error) {
	info, err := s.Info(ctx, path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		info.Name = path
		return []models.PathEntry{info}, nil
	}
	return s.children(ctx, path)
}

// LsNames is Ls reduced to entry names.
func (s *ShellFileSystem) LsNames(ctx context.Context, path string) ([]string, error) {
	entries, err := s.Ls(ctx, path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

// children lists a known directory. The listing path carries a trailing
// separator so a symlinked directory lists its target's contents. A
// truncated listing returns its complete entries with the error.
func (s *ShellFileSystem) children(ctx context.Context, dir string) ([]models.PathEntry, error) {
	d := s.ops.Dialect()
	listPath := dir
	if !strings.HasSuffix(listPath, d.Separator()) && !strings.HasSuffix(listPath, "/") {
		listPath += d.Separator()
	}

	entries, err := s.ops.ListDir(ctx, listPath)
	var truncated *fsops.OutputTruncatedError
	if err != nil && !errors.As(err, &truncated) {
		return nil, err
	}

	out := make([]models.PathEntry, 0, len(entries))
	for _, e := range entries {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		e.Name = d.Join(dir, e.Name)
		out = append(out, e)
	}
	return out, err
}

// Mkdir creates path, and its parents when createParents is set.
func (s *ShellFileSystem) Mkdir(ctx context.Context, path string, createParents bool) error {
	if createParents {
		return s.ops.MakeDirs(ctx, path)
	}
	return s.ops.Mkdir(ctx, path)
}

// Makedirs creates path and its parents. An existing path is an error
// unless existOK is set.
func (s *ShellFileSystem) Makedirs(ctx context.Context, path string, existOK bool) error {
	if !existOK {
		entry, err := s.ops.Info(ctx, path)
		if err != nil {
			return err
		}
		if entry.Exists() {
			return &ExistsError{Path: path}
		}
	}
	return s.ops.MakeDirs(ctx, path)
}

// Rmdir removes the directory at path together with its contents.
func (s *ShellFileSystem) Rmdir(ctx context.Context, path string) error {
	info, err := s.Info(ctx, path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &NotDirectoryError{Path: path}
	}
	return s.ops.RemoveTree(ctx, path)
}

// Touch creates path or updates its timestamp. With truncate set, an
// existing file is removed first so the result is empty.
func (s *ShellFileSystem) Touch(ctx context.Context, path string, truncate bool) error {
	if truncate {
		entry, err := s.ops.Info(ctx, path)
		if err != nil {
			return err
		}
		if entry.IsFile() {
			if err := s.ops.Remove(ctx, path); err != nil {
				return err
			}
		}
	}
	return s.ops.Touch(ctx, path)
}

// CpFile copies the file at src to dst.
func (s *ShellFileSystem) CpFile(ctx context.Context, src, dst string) error {
	return s.ops.CopyFile(ctx, src, dst)
}

// RmFile removes the file at path.
func (s *ShellFileSystem) RmFile(ctx context.Context, path string) error {
	return s.ops.Remove(ctx, path)
}

func (s *ShellFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	entry, err := s.ops.Info(ctx, path)
	return entry.Exists(), err
}

func (s *ShellFileSystem) IsFile(ctx context.Context, path string) (bool, error) {
	entry, err := s.ops.Info(ctx, path)
	return entry.IsFile(), err
}

func (s *ShellFileSystem) IsDir(ctx context.Context, path string) (bool, error) {
	entry, err := s.ops.Info(ctx, path)
	return entry.IsDir(), err
}
