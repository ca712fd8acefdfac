package errors

import (
	"errors"
	"fmt"
)

// Exit codes for plugctl. Validation failures and system errors follow the
// validator convention: 0 = pass, 1 = errors found, 2 = system error.
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitValidationFailed = 1
	ExitSystemError      = 2
	ExitManifestNotFound = 3
	ExitInstallAborted   = 4
	ExitConfigError      = 5
)

// PlugError is the base error type for plugctl
type PlugError struct {
	Code    int
	Message string
	Cause   error
}

func (e *PlugError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PlugError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *PlugError) ExitCode() int {
	return e.Code
}

// New creates a new PlugError
func New(code int, message string) *PlugError {
	return &PlugError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PlugError
func Wrap(code int, message string, cause error) *PlugError {
	return &PlugError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ManifestNotFound returns an error for a missing plugin manifest
func ManifestNotFound(path string) *PlugError {
	return New(ExitManifestNotFound, fmt.Sprintf("plugin manifest not found: %s", path))
}

// ManifestInvalid returns an error for a malformed plugin manifest
func ManifestInvalid(path string, cause error) *PlugError {
	return Wrap(ExitGeneralError, fmt.Sprintf("invalid plugin manifest %s", path), cause)
}

// ValidationFailed returns an error carrying the validation exit status
func ValidationFailed(errorCount int) *PlugError {
	return New(ExitValidationFailed, fmt.Sprintf("validation failed: %d error(s)", errorCount))
}

// SystemError returns an error for environment or I/O failures
func SystemError(message string, cause error) *PlugError {
	return Wrap(ExitSystemError, message, cause)
}

// InstallAborted returns an error for a user-cancelled installation
func InstallAborted() *PlugError {
	return New(ExitInstallAborted, "installation aborted")
}

// InstallError returns an error for file copy failures
func InstallError(op string, cause error) *PlugError {
	return Wrap(ExitGeneralError, fmt.Sprintf("install %s failed", op), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *PlugError {
	return Wrap(ExitConfigError, message, cause)
}

// ScannerUnavailable returns an error when no mcp-scan runner is installed
func ScannerUnavailable() *PlugError {
	return New(ExitSystemError, "neither 'uvx' nor 'pipx' found; install uv or pipx to run security scans")
}

// SecurityIssues returns an error for flagged components
func SecurityIssues(count int) *PlugError {
	return New(ExitGeneralError, fmt.Sprintf("security scan failed: %d component(s) with issues", count))
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var plugErr *PlugError
	if errors.As(err, &plugErr) {
		return plugErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
