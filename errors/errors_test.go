package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseAdopt,
				Kind:   KindAllocation,
				GoType: "*Buffer",
				Detail: "pool exhausted",
			},
			contains: []string{"[adopt]", "allocation", "*Buffer", "pool exhausted"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseAccess,
				Kind:  KindInvariant,
			},
			contains: []string{"[access]", "invariant"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseReset,
				Kind:   KindAllocation,
				Detail: "counter cell allocation failed",
				Cause:  errors.New("out of cells"),
			},
			contains: []string{"[reset]", "allocation", "caused by", "out of cells"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Allocation(PhaseAdopt, "*Buffer", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_Is(t *testing.T) {
	err := Allocation(PhaseReset, "*Buffer", nil)

	if !errors.Is(err, &Error{Phase: PhaseReset, Kind: KindAllocation}) {
		t.Error("Is should match on phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseAdopt, Kind: KindAllocation}) {
		t.Error("Is should not match a different phase")
	}
	if errors.Is(err, &Error{Phase: PhaseReset, Kind: KindInvariant}) {
		t.Error("Is should not match a different kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("backing store full")
	err := New(PhaseReset, KindAllocation).
		GoType("*Session").
		Cause(cause).
		Detail("replacing referent %d", 42).
		Build()

	if err.Phase != PhaseReset || err.Kind != KindAllocation {
		t.Errorf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.GoType != "*Session" {
		t.Errorf("GoType = %q", err.GoType)
	}
	if err.Detail != "replacing referent 42" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Cause != cause {
		t.Error("cause not preserved")
	}
}

func TestTypeMismatch(t *testing.T) {
	err := TypeMismatch("*Circle", "*Square")

	if err.Kind != KindTypeMismatch || err.Phase != PhaseCast {
		t.Errorf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if !strings.Contains(err.Error(), "*Square") {
		t.Errorf("message %q missing target type", err.Error())
	}
}
