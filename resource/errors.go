package resource

import (
	"errors"
	"fmt"
)

var (
	ErrResourceNotFound       = errors.New("resource not found")
	ErrDestinationUnavailable = errors.New("destination unavailable")
	ErrIncompleteWrite        = errors.New("incomplete write")
)

// ExtractError describes a failed extraction step.
// errors.Is matches both Kind (one of the Err* sentinels) and anything wrapped by Err.
type ExtractError struct {
	Op   string
	Ref  Ref
	Path string
	Kind error
	Err  error
}

func (e *ExtractError) Error() string {
	msg := fmt.Sprintf("extract %s", e.Ref)
	if e.Path != "" {
		msg += " to " + e.Path
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Op + ": " + e.Err.Error()
	}
	return msg
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

func (e *ExtractError) Is(target error) bool {
	return target == e.Kind
}

func newError(kind error, op string, ref Ref, path string, err error) *ExtractError {
	return &ExtractError{
		Op:   op,
		Ref:  ref,
		Path: path,
		Kind: kind,
		Err:  err,
	}
}
