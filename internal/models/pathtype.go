package models

import (
	"fmt"
	"strings"
)

// PathType classifies a queried path.
type PathType int

const (
	NotFound PathType = iota
	Directory
	File
	Symlink
)

// String returns the lower-case name used by filesystem frameworks
// ("not_found", "directory", "file", "symlink").
func (t PathType) String() string {
	switch t {
	case NotFound:
		return "not_found"
	case Directory:
		return "directory"
	case File:
		return "file"
	case Symlink:
		return "symlink"
	default:
		return fmt.Sprintf("PathType(%d)", int(t))
	}
}

// UnknownPathTypeError is returned when a string names no PathType.
type UnknownPathTypeError struct {
	Value string
}

func (e *UnknownPathTypeError) Error() string {
	return fmt.Sprintf("unknown path type %q (expected: not_found, directory, file, symlink)", e.Value)
}

func (e *UnknownPathTypeError) InvalidInput() bool {
	return true
}

// PathTypeFromString converts a case-insensitive name into a PathType.
func PathTypeFromString(s string) (PathType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "not_found", "notfound", "not-found":
		return NotFound, nil
	case "directory", "dir":
		return Directory, nil
	case "file":
		return File, nil
	case "symlink", "link":
		return Symlink, nil
	default:
		return NotFound, &UnknownPathTypeError{Value: s}
	}
}
