package shell

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlatform matches every UnknownPlatformError.
var ErrUnknownPlatform = errors.New("unknown platform")

// UnknownPlatformError is returned when no constructor is registered for a platform.
type UnknownPlatformError struct {
	Platform string
	Known    []string
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("no shell registered for platform %q (known: %s)", e.Platform, strings.Join(e.Known, ", "))
}

func (e *UnknownPlatformError) Is(target error) bool {
	return target == ErrUnknownPlatform
}

func (e *UnknownPlatformError) InvalidInput() bool {
	return true
}

// UnknownBackendError is returned by Open for unsupported backends.
type UnknownBackendError struct {
	Backend string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown shell backend %q (expected: local, ssh, docker)", e.Backend)
}

func (e *UnknownBackendError) InvalidInput() bool {
	return true
}
