// Package report renders validation results. Three formats are supported:
// console (styled), plain (no styling), and json (machine-readable, stable
// shape for CI consumption).
package report

import (
	"fmt"
	"io"

	"github.com/claudeware/plugctl/internal/validate"
)

// Reporter renders a batch of validation results and returns the process
// exit code: 0 when clean, 1 when any error-level issue exists.
type Reporter interface {
	Report(results []*validate.Result) int
}

// Options control reporter behavior.
type Options struct {
	// Verbose also lists files that validated cleanly
	Verbose bool
	// Quiet suppresses warning-level issues
	Quiet bool
	// NoColor disables styling in the console format
	NoColor bool
}

// New builds a reporter for the named format: console, plain, or json
func New(format string, opts Options, w io.Writer) (Reporter, error) {
	switch format {
	case "json":
		return &JSONReporter{w: w}, nil
	case "plain":
		return &ConsoleReporter{w: w, opts: opts}, nil
	case "", "console":
		return &ConsoleReporter{w: w, opts: opts, color: !opts.NoColor}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// summarize tallies a result batch
type summary struct {
	totalFiles    int
	filesValid    int
	totalErrors   int
	totalWarnings int
}

func summarize(results []*validate.Result) summary {
	s := summary{totalFiles: len(results)}
	for _, r := range results {
		if r.IsValid() {
			s.filesValid++
		}
		s.totalErrors += len(r.Errors())
		s.totalWarnings += len(r.Warnings())
	}
	return s
}
