package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIs_Identity(t *testing.T) {
	if !errors.Is(ErrEmailTaken, ErrEmailTaken) {
		t.Error("expected error to match itself")
	}
	if errors.Is(ErrEmailTaken, ErrAccountNotFound) {
		t.Error("expected distinct errors not to match")
	}
}

func TestErrorIs_KindProbe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
		want bool
	}{
		{"conflict matches conflict probe", ErrEmailTaken, KindConflict, true},
		{"unauthorized matches unauthorized probe", ErrTokenExpired, KindUnauthorized, true},
		{"mismatch is unauthorized", ErrRefreshMismatch, KindUnauthorized, true},
		{"not found does not match conflict", ErrAccountNotFound, KindConflict, false},
		{"validation matches validation probe", ErrInvalidInput, KindValidation, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, &Error{Kind: tt.kind})
			if got != tt.want {
				t.Errorf("errors.Is(%v, kind %s) = %v, want %v", tt.err, tt.kind, got, tt.want)
			}
		})
	}
}

func TestErrorIs_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", ErrInvalidCredentials)
	if !errors.Is(wrapped, ErrInvalidCredentials) {
		t.Error("expected wrapped error to match sentinel")
	}
	if KindOf(wrapped) != KindUnauthorized {
		t.Errorf("expected unauthorized kind, got %s", KindOf(wrapped))
	}
}

func TestKindOf_UnknownError(t *testing.T) {
	if kind := KindOf(errors.New("disk on fire")); kind != KindInternal {
		t.Errorf("expected internal kind for unknown error, got %s", kind)
	}
}

func TestInternal(t *testing.T) {
	err := Internal("storage failure")
	if err.Kind != KindInternal {
		t.Errorf("expected internal kind, got %s", err.Kind)
	}
	if err.Error() != "storage failure" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
