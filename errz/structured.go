package errz

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of a runtime error.
type ErrorKind int

const (
	// ErrRuntime indicates a general runtime error, such as malformed bytecode.
	ErrRuntime ErrorKind = iota
	// ErrName indicates an undefined parameter or function.
	ErrName
	// ErrType indicates an operation applied to values of the wrong type.
	ErrType
	// ErrArgs indicates a function was called with the wrong arguments.
	ErrArgs
	// ErrStackOverflow indicates the evaluation stack exceeded its cap.
	ErrStackOverflow
	// ErrArithmetic indicates an arithmetic failure like integer division by zero.
	ErrArithmetic
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrName:
		return "name error"
	case ErrType:
		return "type error"
	case ErrArgs:
		return "args error"
	case ErrStackOverflow:
		return "stack overflow"
	case ErrArithmetic:
		return "arithmetic error"
	default:
		return "runtime error"
	}
}

// Sentinel causes, matchable with errors.Is through a RuntimeError.
var (
	ErrDivisionByZero     = errors.New("division by zero")
	ErrUndefinedParameter = errors.New("undefined parameter")
	ErrUndefinedFunction  = errors.New("undefined function")
	ErrStackExhausted     = errors.New("evaluation stack exhausted")
	ErrMalformedCode      = errors.New("malformed bytecode")
)

// RuntimeError is returned when evaluating compiled code fails.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	// IP is the offset of the failing instruction, or -1 when the failure
	// is not tied to an instruction.
	IP    int
	Cause error
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

// FriendlyErrorMessage returns the message with the instruction offset.
func (e *RuntimeError) FriendlyErrorMessage() string {
	if e.IP < 0 {
		return e.Error()
	}
	return fmt.Sprintf("%s (at instruction %d)", e.Error(), e.IP)
}

// WithCause wraps the error with a cause.
func (e *RuntimeError) WithCause(cause error) *RuntimeError {
	e.Cause = cause
	return e
}

// WithIP records the offset of the failing instruction.
func (e *RuntimeError) WithIP(ip int) *RuntimeError {
	e.IP = ip
	return e
}

// NewRuntimeErrorf creates a RuntimeError with a formatted message.
func NewRuntimeErrorf(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		IP:      -1,
	}
}

// TypeErrorf returns a type error with a formatted message.
func TypeErrorf(format string, args ...any) *RuntimeError {
	return NewRuntimeErrorf(ErrType, format, args...)
}

// ArgsErrorf returns an argument error with a formatted message.
func ArgsErrorf(format string, args ...any) *RuntimeError {
	return NewRuntimeErrorf(ErrArgs, format, args...)
}

// KindOf returns the kind of the RuntimeError in err's chain. The second
// result is false if err holds no RuntimeError.
func KindOf(err error) (ErrorKind, bool) {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return rerr.Kind, true
	}
	return ErrRuntime, false
}
