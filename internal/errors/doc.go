// Package errors provides typed errors with exit codes for plugctl.
//
// Every command returns a PlugError (directly or wrapped) so that main can
// map failures to the documented process exit codes. Validation follows the
// linter convention: exit 0 when clean, 1 when issues were found, 2 when the
// tool itself failed. Installer and configuration failures use distinct codes
// so shell callers can tell them apart.
//
// Use the named constructors where one fits, otherwise New or Wrap:
//
//	if err := os.MkdirAll(dir, 0o755); err != nil {
//	    return errors.SystemError("creating target directory", err)
//	}
package errors
