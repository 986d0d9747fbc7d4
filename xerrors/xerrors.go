// Package xerrors defines the error kinds the orchestrator and master API
// report to callers. Workers never see these: a failed batch is logged and
// its task is still marked complete (see package batch).
package xerrors

import (
	"errors"
	"fmt"
)

// Kind identifies one of the error categories the orchestrator can return.
type Kind int

const (
	// InvalidOperation covers missing required args, unknown matrix names
	// where one is required, a zero-worker pool, identical source/target
	// names, a non-dense external request, attaching to a non-frame
	// matrix, and an empty dictionary passed to Initialize.
	InvalidOperation Kind = iota
	// CorruptedMessage covers a truncated or malformed import stream.
	CorruptedMessage
	// DiskRead covers a file that cannot be opened for reading.
	DiskRead
	// DiskWrite covers a failed write of an export stream. Export writes
	// to a caller-supplied io.Writer, so it neither creates a file nor
	// checks whether a target file already exists.
	DiskWrite
	// MissingModel covers Registry.GetOrFail on an absent name.
	MissingModel
)

func (k Kind) String() string {
	switch k {
	case InvalidOperation:
		return "InvalidOperation"
	case CorruptedMessage:
		return "CorruptedMessage"
	case DiskRead:
		return "DiskRead"
	case DiskWrite:
		return "DiskWrite"
	case MissingModel:
		return "MissingModel"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by this module's operations.
// It carries a Kind so callers can use errors.Is against the Kind
// sentinels below, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the Kind sentinel matching e.Kind, so that
// errors.Is(err, xerrors.ErrInvalidOperation) works without exposing *Error.
func (e *Error) Is(target error) bool {
	if k, ok := target.(kindSentinel); ok {
		return e.Kind == k.kind
	}
	return false
}

// kindSentinel is the type of the package-level Kind sentinels below. It
// exists so that errors.Is can compare against a Kind without requiring
// callers to know about Error at all.
type kindSentinel struct{ kind Kind }

func (kindSentinel) Error() string { return "" }

var (
	// ErrInvalidOperation, ErrCorruptedMessage, etc. are sentinels usable
	// with errors.Is(err, xerrors.ErrInvalidOperation).
	ErrInvalidOperation = kindSentinel{InvalidOperation}
	ErrCorruptedMessage = kindSentinel{CorruptedMessage}
	ErrDiskRead         = kindSentinel{DiskRead}
	ErrDiskWrite        = kindSentinel{DiskWrite}
	ErrMissingModel     = kindSentinel{MissingModel}
)

// New constructs an *Error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error of the given kind around an existing cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// As is a thin re-export of errors.As so callers importing this package
// don't also need the stdlib errors package just to unwrap an *Error.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
