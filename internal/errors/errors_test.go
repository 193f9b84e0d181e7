package errors

import (
	"errors"
	"fmt"
	"testing"
)

type customError struct {
	Msg string
}

func (e customError) Error() string { return e.Msg }

func TestNew(t *testing.T) {
	err := New("test error")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "test error" {
		t.Errorf("expected 'test error', got '%s'", err.Error())
	}
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(baseErr, "wrapped")
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		if wrapped.Error() != "wrapped: base error" {
			t.Errorf("unexpected message '%s'", wrapped.Error())
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrap nil error", func(t *testing.T) {
		if wrapped := Wrap(nil, "wrapped"); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrNotFound, "lead %s", "abc")
	if wrapped.Error() != "lead abc: not found" {
		t.Errorf("unexpected message '%s'", wrapped.Error())
	}
	if !Is(wrapped, ErrNotFound) {
		t.Error("expected wrapped error to match ErrNotFound")
	}
	if Wrapf(nil, "lead %s", "abc") != nil {
		t.Error("expected nil for nil error")
	}
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", customError{Msg: "inner"})

	var target customError
	if !As(err, &target) {
		t.Fatal("expected As to find customError")
	}
	if target.Msg != "inner" {
		t.Errorf("expected 'inner', got '%s'", target.Msg)
	}
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid state", Wrap(ErrInvalidState, "lead stopped"), true},
		{"admission blocked", Wrap(ErrAdmissionBlocked, "daily cap reached"), true},
		{"provider failure", Wrap(ErrProviderFailure, "smtp timeout"), true},
		{"not found", Wrap(ErrNotFound, "lead not found"), false},
		{"persistence", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecoverable(tt.err); got != tt.want {
				t.Errorf("IsRecoverable() = %v, want %v", got, tt.want)
			}
		})
	}
}
