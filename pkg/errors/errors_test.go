package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "edge %d->%d out of range", 3, 9)

	if err.Code != ErrCodeInvalidGraph {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidGraph)
	}

	if err.Message != "edge 3->9 out of range" {
		t.Errorf("Message = %v, want %v", err.Message, "edge 3->9 out of range")
	}

	expected := "INVALID_GRAPH: edge 3->9 out of range"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidInput, cause, "read nodes.csv")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	want := "INVALID_INPUT: read nodes.csv: underlying error"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidOptions, "test"),
			code:     ErrCodeInvalidOptions,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidOptions, "test"),
			code:     ErrCodeInvalidGraph,
			expected: false,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("layout: %w", New(ErrCodeInvalidOptions, "inner")),
			code:     ErrCodeInvalidOptions,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodeFileNotFound, "nodes.csv missing"))

	if got := GetCode(err); got != ErrCodeFileNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeFileNotFound)
	}
	if got := UserMessage(err); got != "nodes.csv missing" {
		t.Errorf("UserMessage() = %q", got)
	}

	wrapped := Wrap(ErrCodeInvalidInput, errors.New("unexpected EOF"), "decode request body")
	if got := UserMessage(wrapped); got != "decode request body: unexpected EOF" {
		t.Errorf("UserMessage(wrapped) = %q", got)
	}

	plain := errors.New("boom")
	if got := GetCode(plain); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestIsInvalid(t *testing.T) {
	if !IsInvalid(New(ErrCodeInvalidGraph, "x")) {
		t.Error("INVALID_GRAPH should be invalid")
	}
	if !IsInvalid(New(ErrCodeInvalidFormat, "x")) {
		t.Error("INVALID_FORMAT should be invalid")
	}
	if IsInvalid(New(ErrCodeInternal, "x")) {
		t.Error("INTERNAL_ERROR should not be invalid")
	}
	if IsInvalid(errors.New("plain")) {
		t.Error("plain error should not be invalid")
	}
}
