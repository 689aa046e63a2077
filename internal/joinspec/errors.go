package joinspec

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal marks failures that can only come from a malformed
	// supergraph produced by this engine, never from user input.
	ErrInternal = errors.New("internal join spec error")

	ErrAlreadyInstalled   = errors.New("core features are already installed")
	ErrUnsupportedVersion = errors.New("unsupported join spec version")
	ErrJoinSpecNotLinked  = errors.New("schema does not link the join spec")
	ErrDuplicateToken     = errors.New("duplicate join__Graph token")
)

// InternalError reports an internal invariant violation found while reading
// join spec definitions or applications. It is not a composition diagnostic.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}

func (e *InternalError) Unwrap() error {
	return ErrInternal
}

func internalf(format string, args ...any) error {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}
