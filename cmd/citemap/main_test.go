package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	citerrors "github.com/matzehuels/citemap/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Nil", nil, exitOK},
		{"Canceled", fmt.Errorf("analyze: %w", context.Canceled), exitCanceled},
		{"InvalidOptions", citerrors.New(citerrors.ErrCodeInvalidOptions, "bad width"), exitUsage},
		{"InvalidGraph", citerrors.New(citerrors.ErrCodeInvalidGraph, "bad edge"), exitUsage},
		{"NotFound", citerrors.New(citerrors.ErrCodeFileNotFound, "missing"), exitFailure},
		{"Plain", io.ErrUnexpectedEOF, exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, citerrors.Wrap(citerrors.ErrCodeInvalidInput, io.ErrUnexpectedEOF, "read graph"))
	if got, want := buf.String(), "citemap: read graph: unexpected EOF\n"; got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestRunVersion(t *testing.T) {
	if err := run(context.Background(), []string{"--version"}); err != nil {
		t.Errorf("run(--version) = %v", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if err := run(context.Background(), []string{"no-such-command"}); err == nil {
		t.Error("run(no-such-command) should fail")
	}
}
