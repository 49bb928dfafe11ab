// Package errors provides structured error types for the ownership library.
//
// Errors are categorized by Phase (which handle operation failed) and Kind
// (error category). Allocation failures are ordinary errors returned from
// the fallible adopt/reset paths; invariant violations are panic payloads.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseReset, errors.KindAllocation).
//		GoType("*Buffer").
//		Cause(allocErr).
//		Detail("pool exhausted").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Allocation(errors.PhaseAdopt, "*Buffer", allocErr)
//	err := errors.Invariant(errors.PhaseAccess, "dereference of empty handle")
//
// All errors implement the standard error interface and support errors.Is/As;
// Is matches on Phase and Kind.
package errors
