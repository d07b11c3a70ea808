package adapter

import (
	"fmt"
	"io/fs"
)

// NotFoundError is returned when a path does not exist (or its listing
// could not be recognised).
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such file or directory: %s", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}

func (e *NotFoundError) NotFound() bool {
	return true
}

// ExistsError is returned by Makedirs when the path exists and existOK is false.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("path already exists: %s", e.Path)
}

func (e *ExistsError) Is(target error) bool {
	return target == fs.ErrExist
}

// NotDirectoryError is returned by Rmdir for paths that are not directories.
type NotDirectoryError struct {
	Path string
}

func (e *NotDirectoryError) Error() string {
	return fmt.Sprintf("not a directory: %s", e.Path)
}

func (e *NotDirectoryError) InvalidInput() bool {
	return true
}

// InvalidRecordError is returned when a record cannot be decoded into an entry.
type InvalidRecordError struct {
	Cause error
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid path record: %v", e.Cause)
}

func (e *InvalidRecordError) Unwrap() error { return e.Cause }

func (e *InvalidRecordError) InvalidInput() bool {
	return true
}

// IgnoreFileReadError is returned when an exclude-pattern file cannot be read.
type IgnoreFileReadError struct {
	Path  string
	Cause error
}

func (e *IgnoreFileReadError) Error() string {
	return fmt.Sprintf("failed to read ignore file at %s: %v", e.Path, e.Cause)
}

func (e *IgnoreFileReadError) Unwrap() error { return e.Cause }

func (e *IgnoreFileReadError) IOError() bool {
	return true
}
