package dialect

import (
	"errors"
	"fmt"
)

// ErrUnknownOperation matches every UnknownOperationError.
var ErrUnknownOperation = errors.New("unknown operation")

// UnknownOperationError is returned when a dialect has no command for an
// operation. It indicates a configuration bug, not a runtime condition.
type UnknownOperationError struct {
	Dialect   string
	Operation Operation
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("dialect %s has no command for operation %s", e.Dialect, e.Operation)
}

func (e *UnknownOperationError) Is(target error) bool {
	return target == ErrUnknownOperation
}

// MissingParamError is returned when a command template references a
// parameter the caller did not supply.
type MissingParamError struct {
	Operation Operation
	Param     string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("operation %s requires parameter %q", e.Operation, e.Param)
}

func (e *MissingParamError) InvalidInput() bool {
	return true
}

// UnknownDialectError is returned by ByName for unrecognised dialect names.
type UnknownDialectError struct {
	Name string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q (expected: unix, windows)", e.Name)
}

func (e *UnknownDialectError) InvalidInput() bool {
	return true
}

// InvalidDefinitionError is returned by NewDialect for unusable definitions.
type InvalidDefinitionError struct {
	Name   string
	Reason string
}

func (e *InvalidDefinitionError) Error() string {
	if e.Name == "" {
		return "invalid dialect definition: " + e.Reason
	}
	return fmt.Sprintf("invalid dialect %s: %s", e.Name, e.Reason)
}

func (e *InvalidDefinitionError) InvalidInput() bool {
	return true
}
