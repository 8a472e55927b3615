package errors

import (
	stderrors "errors"
	"fmt"
	"io"
)

// ProtoError is the interface implemented by all object model errors.
type ProtoError interface {
	error
	// Kind is one of "Lookup", "Constructor", "Property" or "Call".
	Kind() string
	// Subject names the property, constructor or function involved.
	Subject() string
	// Message returns the specific error message without the subject.
	Message() string
	Unwrap() error // For error wrapping support (errors.Is/As)
}

// --- Concrete Error Types ---

// LookupError represents a failed prototype chain walk.
type LookupError struct {
	Property string
	Msg      string
	Cause    error // Underlying cause, if any
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("Lookup Error for '%s': %s", e.Property, e.Msg)
}
func (e *LookupError) Kind() string    { return "Lookup" }
func (e *LookupError) Subject() string { return e.Property }
func (e *LookupError) Message() string { return e.Msg }
func (e *LookupError) Unwrap() error   { return e.Cause }
func (e *LookupError) CausedBy(cause error) *LookupError {
	e.Cause = cause
	return e
}

// ConstructorError represents a failure to resolve, register or run a
// constructor.
type ConstructorError struct {
	Constructor string
	Msg         string
	Cause       error // Underlying cause, if any
}

func (e *ConstructorError) Error() string {
	return fmt.Sprintf("Constructor Error in %s: %s", e.Constructor, e.Msg)
}
func (e *ConstructorError) Kind() string    { return "Constructor" }
func (e *ConstructorError) Subject() string { return e.Constructor }
func (e *ConstructorError) Message() string { return e.Msg }
func (e *ConstructorError) Unwrap() error   { return e.Cause }
func (e *ConstructorError) CausedBy(cause error) *ConstructorError {
	e.Cause = cause
	return e
}

// PropertyError represents a rejected property write.
type PropertyError struct {
	Property string
	Msg      string
	Cause    error // Underlying cause, if any
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("Property Error for '%s': %s", e.Property, e.Msg)
}
func (e *PropertyError) Kind() string    { return "Property" }
func (e *PropertyError) Subject() string { return e.Property }
func (e *PropertyError) Message() string { return e.Msg }
func (e *PropertyError) Unwrap() error   { return e.Cause }
func (e *PropertyError) CausedBy(cause error) *PropertyError {
	e.Cause = cause
	return e
}

// CallError represents a failed method or function invocation.
type CallError struct {
	Function string
	Msg      string
	Cause    error // Underlying cause, if any
}

func (e *CallError) Error() string {
	return fmt.Sprintf("Call Error in %s: %s", e.Function, e.Msg)
}
func (e *CallError) Kind() string    { return "Call" }
func (e *CallError) Subject() string { return e.Function }
func (e *CallError) Message() string { return e.Msg }
func (e *CallError) Unwrap() error   { return e.Cause }
func (e *CallError) CausedBy(cause error) *CallError {
	e.Cause = cause
	return e
}

// --- Error Reporting ---

// DisplayErrors prints a list of errors to w in a user-friendly format.
// Model errors show their kind and subject; anything else is printed as is.
func DisplayErrors(w io.Writer, errs []error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		var pe ProtoError
		if !stderrors.As(err, &pe) {
			fmt.Fprintf(w, "Error: %s\n", err)
			continue
		}
		fmt.Fprintf(w, "%s Error: %s\n", pe.Kind(), pe.Message())
		if pe.Subject() != "" {
			fmt.Fprintf(w, "  at %s\n", pe.Subject())
		}
		// Walk the remaining causes so nested model errors are visible
		for cause := pe.Unwrap(); cause != nil; cause = stderrors.Unwrap(cause) {
			fmt.Fprintf(w, "  caused by: %s\n", cause)
		}
	}
}
