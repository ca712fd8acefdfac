package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/claudeware/plugctl/internal/errors"
	"github.com/claudeware/plugctl/internal/logging"
)

// Options configures a scan run.
type Options struct {
	Root    string
	Plugin  string
	Path    string
	Changed bool
	BaseRef string
	Verbose bool
}

// Run scans the selected components and reports results. It returns a
// security error when any component has non-informational findings.
// Scan execution errors are reported but do not fail the run.
func Run(ctx context.Context, opts Options) error {
	runner, err := DetectRunner()
	if err != nil {
		return err
	}
	logging.UserInfo("Using runner: %s", runner)
	logging.UserInfo("Repository: %s", opts.Root)

	var targets []Target
	if opts.Changed {
		targets, err = FindChangedTargets(opts.Root, opts.BaseRef)
		if err != nil {
			return errors.SystemError("detecting changed components", err)
		}
		if len(targets) == 0 {
			logging.UserSuccess("No skill or rule changes detected, nothing to scan")
			return nil
		}
	} else {
		targets, err = FindTargets(opts.Root, opts.Plugin, opts.Path)
		if err != nil {
			return errors.SystemError("discovering components", err)
		}
	}

	if len(targets) == 0 {
		logging.UserWarning("No skills or rules found to scan")
		return nil
	}

	skills, rules := 0, 0
	for _, t := range targets {
		if t.Type == "skill" {
			skills++
		} else {
			rules++
		}
	}
	logging.UserInfo("Found %d component(s) to scan (%d skill(s), %d rule(s))", len(targets), skills, rules)

	scanner := New(runner)
	scanner.Verbose = opts.Verbose

	var passed, failed, errored, skipped int

	// Rule files in the same directory are scanned together, so a rules
	// directory is only submitted once.
	scannedRuleDirs := map[string]bool{}

	for i, t := range targets {
		rel := t.Path
		if r, relErr := filepath.Rel(opts.Root, t.Path); relErr == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
		name := filepath.Base(t.Path)
		if t.IsFile {
			name = strings.TrimSuffix(name, filepath.Ext(name))
		}
		logging.UserInfo("[%d/%d] %s [%s] (%s)", i+1, len(targets), name, t.Type, rel)

		if t.Type == "rule" {
			dir := filepath.Dir(t.Path)
			if scannedRuleDirs[dir] {
				logging.UserSuccess("PASS (directory already scanned)")
				passed++
				continue
			}
			scannedRuleDirs[dir] = true
		}

		result := scanner.Scan(ctx, t.Path, t.Type, t.IsFile)
		reportResult(result, opts.Verbose)

		switch {
		case result.Skipped():
			skipped++
		case result.Err != nil:
			errored++
		case result.HasCriticalIssues():
			failed++
		default:
			passed++
		}
	}

	var parts []string
	if passed > 0 {
		parts = append(parts, fmt.Sprintf("%d passed", passed))
	}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	if errored > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", errored))
	}
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", skipped))
	}
	logging.UserInfo("Results: %s (%d total)", strings.Join(parts, ", "), len(targets))

	if failed > 0 {
		logging.UserError("Security scan failed: %d component(s) with security issues", failed)
		return errors.SecurityIssues(failed)
	}
	if errored > 0 {
		logging.UserWarning("Security scan completed with %d error(s)", errored)
		return nil
	}
	logging.UserSuccess("Security scan passed: all %d component(s) are clean", passed)
	return nil
}

func reportResult(r *Result, verbose bool) {
	if r.Err != nil {
		if r.Skipped() {
			logging.UserWarning("SKIP: %s", r.Err.Message)
		} else {
			logging.UserError("ERROR: %s", r.Err.Message)
		}
		return
	}
	if issues := r.SecurityIssues(); len(issues) > 0 {
		for _, issue := range issues {
			logging.UserError("FAIL [%s] %s", issue.Code, issue.Message)
		}
		return
	}
	if verbose {
		for _, issue := range r.InfoIssues() {
			logging.UserInfo("INFO [%s] %s", issue.Code, issue.Message)
		}
	}
	logging.UserSuccess("PASS")
}
