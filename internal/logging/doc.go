// Package logging provides logging utilities for plugctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("loading manifest", "path", path, "plugin", name)
//	logging.Warn("source file missing", "path", src)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Installing plugin %s...", name)
//	logging.UserSuccess("Installed %d component(s)", n)
//	logging.UserWarning("Skipped %s: already exists", dest)
//	logging.UserError("Failed to read manifest: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
