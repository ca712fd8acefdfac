package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestPlugError_Error(t *testing.T) {
	err := New(ExitGeneralError, "something broke")
	if err.Error() != "something broke" {
		t.Errorf("expected %q, got %q", "something broke", err.Error())
	}

	cause := fmt.Errorf("underlying")
	wrapped := Wrap(ExitSystemError, "outer", cause)
	if wrapped.Error() != "outer: underlying" {
		t.Errorf("expected %q, got %q", "outer: underlying", wrapped.Error())
	}
}

func TestPlugError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	wrapped := Wrap(ExitSystemError, "outer", cause)
	if !stderrors.Is(wrapped, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"manifest not found", ManifestNotFound("/tmp/x"), ExitManifestNotFound},
		{"validation failed", ValidationFailed(3), ExitValidationFailed},
		{"system error", SystemError("disk", nil), ExitSystemError},
		{"install aborted", InstallAborted(), ExitInstallAborted},
		{"config error", ConfigError("bad toml", nil), ExitConfigError},
		{"plain error", fmt.Errorf("plain"), ExitGeneralError},
		{"wrapped in fmt", fmt.Errorf("context: %w", InstallAborted()), ExitInstallAborted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNamedConstructors(t *testing.T) {
	err := ValidationFailed(2)
	if !strings.Contains(err.Error(), "2 error(s)") {
		t.Errorf("unexpected message: %q", err.Error())
	}

	scanErr := SecurityIssues(1)
	if scanErr.ExitCode() != ExitGeneralError {
		t.Errorf("expected exit code %d, got %d", ExitGeneralError, scanErr.ExitCode())
	}
}
