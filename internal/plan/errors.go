package plan

import (
	"errors"
	"fmt"
)

// UnknownKindError reports a kind name with no registered parse constructor.
type UnknownKindError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown node kind %q", e.Name)
}

// ArgumentError reports an argument string that a kind's parser rejected.
//
// Argument errors are kind-local: the kind was found, but its grammar did not
// accept the input. Err holds the underlying cause when there is one
// (for example a *strconv.NumError).
type ArgumentError struct {
	Kind   Kind
	Input  string
	Reason string
	Err    error
}

// NewArgumentError creates an ArgumentError for the given kind and input.
func NewArgumentError(kind Kind, input, reason string, cause error) *ArgumentError {
	return &ArgumentError{Kind: kind, Input: input, Reason: reason, Err: cause}
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: invalid argument %q: %s: %v", e.Kind, e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: invalid argument %q: %s", e.Kind, e.Input, e.Reason)
}

// Unwrap returns the underlying cause.
func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// IsUnknownKind returns true if err is or wraps an *UnknownKindError.
func IsUnknownKind(err error) bool {
	var uk *UnknownKindError
	return errors.As(err, &uk)
}

// IsArgumentError returns true if err is or wraps an *ArgumentError.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
