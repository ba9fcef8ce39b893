package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestCoreErrorMessage(t *testing.T) {
	underlying := stderrors.New("disk full")

	tests := []struct {
		name     string
		err      *CoreError
		expected string
	}{
		{
			name:     "with underlying",
			err:      NewIOError("failed to write sample", underlying),
			expected: "I/O error: failed to write sample: disk full",
		},
		{
			name:     "without underlying",
			err:      NewInputError("input file not found: x.mkv"),
			expected: "Input error: input file not found: x.mkv",
		},
		{
			name:     "cancelled",
			err:      NewCancelledError(),
			expected: "Operation cancelled: operation was cancelled by the user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	probeErr := NewProbeError("no duration", nil)

	if !IsKind(probeErr, KindProbe) {
		t.Error("IsKind() = false for matching kind")
	}
	if IsKind(probeErr, KindEncode) {
		t.Error("IsKind() = true for mismatched kind")
	}
	if IsKind(stderrors.New("plain"), KindProbe) {
		t.Error("IsKind() = true for non-CoreError")
	}
	if IsKind(nil, KindProbe) {
		t.Error("IsKind() = true for nil")
	}

	// Kind matching survives wrapping.
	wrapped := fmt.Errorf("stage failed: %w", probeErr)
	if !IsKind(wrapped, KindProbe) {
		t.Error("IsKind() = false for wrapped CoreError")
	}
}

func TestIsCancelled(t *testing.T) {
	if !IsCancelled(NewCancelledError()) {
		t.Error("IsCancelled() = false for cancellation error")
	}
	if IsCancelled(NewEncodeError("boom", nil)) {
		t.Error("IsCancelled() = true for encode error")
	}
}

func TestCoreErrorIs(t *testing.T) {
	a := NewEncodeError("first", nil)
	b := NewEncodeError("second", stderrors.New("other"))

	if !stderrors.Is(a, b) {
		t.Error("errors.Is() = false for same kind")
	}
	if stderrors.Is(a, NewScoreError("x", nil)) {
		t.Error("errors.Is() = true for different kind")
	}
}

func TestUnwrap(t *testing.T) {
	underlying := stderrors.New("root cause")
	err := NewScoreError("measurement failed", underlying)

	if !stderrors.Is(err, underlying) {
		t.Error("errors.Is() did not reach the underlying error")
	}
}

func TestCommandFailedError(t *testing.T) {
	err := NewCommandFailedError("ffmpeg", 187, "No NVENC capable devices found")

	if !IsKind(err, KindCommand) {
		t.Error("IsKind() = false for command error")
	}

	var cmdErr *CommandError
	if !stderrors.As(err, &cmdErr) {
		t.Fatal("errors.As() could not extract CommandError")
	}
	if cmdErr.ExitCode != 187 {
		t.Errorf("ExitCode = %d, want 187", cmdErr.ExitCode)
	}
	if cmdErr.Stderr != "No NVENC capable devices found" {
		t.Errorf("Stderr = %q", cmdErr.Stderr)
	}
}

func TestWrapExecErrorNonExit(t *testing.T) {
	err := WrapExecError("ffprobe", stderrors.New("executable file not found"), "")

	var cmdErr *CommandError
	if !stderrors.As(err, &cmdErr) {
		t.Fatal("errors.As() could not extract CommandError")
	}
	if cmdErr.Kind != CommandStart {
		t.Errorf("Kind = %v, want CommandStart", cmdErr.Kind)
	}
}
