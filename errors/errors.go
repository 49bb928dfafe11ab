package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which handle operation the error occurred in
type Phase string

const (
	PhaseAdopt   Phase = "adopt"   // adopting a fresh value
	PhaseReset   Phase = "reset"   // replacing a handle's referent
	PhaseRelease Phase = "release" // releasing ownership
	PhaseAccess  Phase = "access"  // dereferencing a handle
	PhaseCast    Phase = "cast"    // converting between handle types
	PhaseTrack   Phase = "track"   // lifecycle tracking
)

// Kind categorizes the error
type Kind string

const (
	// KindAllocation marks a counter-cell allocation failure. This is the
	// only recoverable error the handle package produces.
	KindAllocation Kind = "allocation"

	// KindInvariant marks a programmer error: dereferencing an empty
	// handle, resetting a handle to its own referent, or an incoherent
	// lineage (referent without counter). These are delivered by panic.
	KindInvariant Kind = "invariant"

	// KindTypeMismatch marks a static cast between unrelated types.
	KindTypeMismatch Kind = "type_mismatch"
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.GoType != "" {
		b.WriteString(": managed type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// GoType sets the managed value's type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Allocation creates a counter-cell allocation failure error
func Allocation(phase Phase, goType string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		GoType: goType,
		Detail: "counter cell allocation failed",
		Cause:  cause,
	}
}

// Invariant creates an invariant violation error, used as a panic payload
func Invariant(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvariant,
		Detail: detail,
	}
}

// TypeMismatch creates a type mismatch error for an impossible static cast
func TypeMismatch(goType, wantType string) *Error {
	return &Error{
		Phase:  PhaseCast,
		Kind:   KindTypeMismatch,
		GoType: goType,
		Detail: fmt.Sprintf("cannot convert to %s", wantType),
	}
}
