// Package scan wraps the mcp-scan security scanner (Invariant Labs) to
// check skill directories and rule files for prompt injection, malware
// payloads, and hard-coded secrets. Each component is scanned individually
// so that findings can be attributed to a specific skill or rule.
package scan

import (
	"context"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/claudeware/plugctl/internal/errors"
	"github.com/claudeware/plugctl/internal/logging"
)

// DefaultTimeout bounds a single mcp-scan invocation.
const DefaultTimeout = 120 * time.Second

// informationalCodes are findings that do not indicate a real security
// issue. W004 means the scanned component is not in the mcp-scan registry,
// which is expected for custom skills.
var informationalCodes = map[string]bool{
	"W004": true,
}

// Issue is a single finding reported by mcp-scan.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Informational reports whether the issue is advisory only.
func (i Issue) Informational() bool {
	return informationalCodes[i.Code]
}

// ScanError describes a failure to scan a component.
type ScanError struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// Result holds the outcome of scanning one skill directory or rule file.
type Result struct {
	Path   string
	Name   string
	Type   string // "skill" or "rule"
	Issues []Issue
	Err    *ScanError
}

// SecurityIssues returns findings that count against the scan.
func (r *Result) SecurityIssues() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if !i.Informational() {
			out = append(out, i)
		}
	}
	return out
}

// InfoIssues returns the advisory findings.
func (r *Result) InfoIssues() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Informational() {
			out = append(out, i)
		}
	}
	return out
}

// HasCriticalIssues reports whether any non-informational finding exists.
func (r *Result) HasCriticalIssues() bool {
	for _, i := range r.Issues {
		if !i.Informational() {
			return true
		}
	}
	return false
}

// Skipped reports whether the scan was skipped rather than failed.
func (r *Result) Skipped() bool {
	return r.Err != nil && r.Err.Category == "file_not_found"
}

// DetectRunner finds a tool capable of running mcp-scan. uvx is preferred,
// pipx is the fallback.
func DetectRunner() (string, error) {
	if _, err := exec.LookPath("uvx"); err == nil {
		return "uvx", nil
	}
	if _, err := exec.LookPath("pipx"); err == nil {
		return "pipx", nil
	}
	return "", errors.ScannerUnavailable()
}

// Scanner runs mcp-scan against individual components.
type Scanner struct {
	Runner  string
	Timeout time.Duration
	Verbose bool
}

// New creates a Scanner for the given runner.
func New(runner string) *Scanner {
	return &Scanner{Runner: runner, Timeout: DefaultTimeout}
}

func (s *Scanner) command(target string) []string {
	if s.Runner == "pipx" {
		return []string{"pipx", "run", "mcp-scan", "scan", "--json", "--skills", target}
	}
	return []string{"uvx", "mcp-scan@latest", "scan", "--json", "--skills", target}
}

// scanOutput mirrors the mcp-scan JSON shape: a map of config path to
// per-config data.
type scanConfig struct {
	Issues  []Issue    `json:"issues"`
	Error   *ScanError `json:"error"`
	Servers []struct {
		Error *ScanError `json:"error"`
	} `json:"servers"`
}

// Scan runs mcp-scan on a single component. For rule files the parent
// directory is scanned, since mcp-scan operates on directories.
func (s *Scanner) Scan(ctx context.Context, path, componentType string, isFile bool) *Result {
	name := filepath.Base(path)
	if isFile {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	result := &Result{Path: path, Name: name, Type: componentType}

	target := path
	if isFile {
		target = filepath.Dir(path)
	}

	timeout := s.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := s.command(target)
	if s.Verbose {
		logging.UserInfo("$ %s", shellquote.Join(args...))
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	out, err := cmd.Output()
	if ctx.Err() == context.DeadlineExceeded {
		result.Err = &ScanError{Message: "Scan timed out after 120 seconds"}
		return result
	}
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			result.Err = &ScanError{Message: err.Error()}
			return result
		}
		// Non-zero exit with output still carries findings.
	}

	parseOutput(result, strings.TrimSpace(string(out)))
	return result
}

func parseOutput(result *Result, output string) {
	if output == "" {
		return
	}

	var parsed map[string]scanConfig
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		logging.Debug("could not parse mcp-scan output", "path", result.Path, "error", err)
		return
	}

	for _, cfg := range parsed {
		result.Issues = append(result.Issues, cfg.Issues...)
		if cfg.Error != nil && cfg.Error.Message != "" {
			result.Err = cfg.Error
		}
		for _, srv := range cfg.Servers {
			if srv.Error != nil && srv.Error.Message != "" {
				result.Err = srv.Error
			}
		}
	}
}
