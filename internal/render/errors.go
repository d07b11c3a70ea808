package render

import (
	"fmt"
	"strings"
)

// UnknownFormatError is returned when an output format name is not recognised.
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return fmt.Sprintf("unknown output format %q (expected one of: %s)", e.Name, strings.Join(names, ", "))
}

func (e *UnknownFormatError) InvalidInput() bool {
	return true
}
