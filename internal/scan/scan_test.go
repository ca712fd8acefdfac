package scan

import (
	"path/filepath"
	"testing"

	"github.com/claudeware/plugctl/internal/testutil"
)

func TestResultIssueFiltering(t *testing.T) {
	r := &Result{
		Issues: []Issue{
			{Code: "W004", Message: "not in registry"},
			{Code: "E001", Message: "prompt injection detected"},
		},
	}

	if !r.HasCriticalIssues() {
		t.Error("E001 should be critical")
	}
	if got := r.SecurityIssues(); len(got) != 1 || got[0].Code != "E001" {
		t.Errorf("SecurityIssues() = %v", got)
	}
	if got := r.InfoIssues(); len(got) != 1 || got[0].Code != "W004" {
		t.Errorf("InfoIssues() = %v", got)
	}

	onlyInfo := &Result{Issues: []Issue{{Code: "W004"}}}
	if onlyInfo.HasCriticalIssues() {
		t.Error("W004 alone should not be critical")
	}
}

func TestResultSkipped(t *testing.T) {
	r := &Result{Err: &ScanError{Message: "no such file", Category: "file_not_found"}}
	if !r.Skipped() {
		t.Error("file_not_found should be skipped")
	}
	r = &Result{Err: &ScanError{Message: "boom"}}
	if r.Skipped() {
		t.Error("generic error should not be skipped")
	}
}

func TestScannerCommand(t *testing.T) {
	uvx := New("uvx")
	got := uvx.command("/tmp/skill")
	want := []string{"uvx", "mcp-scan@latest", "scan", "--json", "--skills", "/tmp/skill"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("uvx command = %v, want %v", got, want)
		}
	}

	pipx := New("pipx")
	got = pipx.command("/tmp/skill")
	if got[0] != "pipx" || got[1] != "run" || got[2] != "mcp-scan" {
		t.Errorf("pipx command = %v", got)
	}
}

func TestParseOutput(t *testing.T) {
	r := &Result{Path: "/tmp/skill"}
	parseOutput(r, `{
		"/tmp/skill": {
			"issues": [{"code": "E001", "message": "bad"}],
			"servers": [{"error": null}]
		}
	}`)
	if len(r.Issues) != 1 || r.Issues[0].Code != "E001" {
		t.Errorf("issues = %v", r.Issues)
	}
	if r.Err != nil {
		t.Errorf("unexpected error: %v", r.Err)
	}
}

func TestParseOutputServerError(t *testing.T) {
	r := &Result{}
	parseOutput(r, `{"x": {"servers": [{"error": {"message": "could not read", "category": "file_not_found"}}]}}`)
	if r.Err == nil || r.Err.Message != "could not read" {
		t.Fatalf("err = %v", r.Err)
	}
	if !r.Skipped() {
		t.Error("file_not_found server error should mark result skipped")
	}
}

func TestParseOutputInvalidJSON(t *testing.T) {
	r := &Result{}
	parseOutput(r, "not json at all")
	if len(r.Issues) != 0 || r.Err != nil {
		t.Error("invalid JSON should leave result untouched")
	}
}

func TestFindTargets(t *testing.T) {
	root := t.TempDir()
	testutil.WritePlugin(t, filepath.Join(root, "plugins"), "kit-alpha")
	testutil.WritePlugin(t, filepath.Join(root, "plugins"), "kit-beta")

	targets, err := FindTargets(root, "", "")
	if err != nil {
		t.Fatal(err)
	}
	// Each fixture plugin carries one skill and one rule.
	skills, rules := 0, 0
	for _, tgt := range targets {
		switch tgt.Type {
		case "skill":
			skills++
			if tgt.IsFile {
				t.Errorf("skill target should be a directory: %s", tgt.Path)
			}
		case "rule":
			rules++
			if !tgt.IsFile {
				t.Errorf("rule target should be a file: %s", tgt.Path)
			}
		}
	}
	if skills != 2 || rules != 2 {
		t.Errorf("got %d skills, %d rules, want 2 each", skills, rules)
	}
}

func TestFindTargetsSinglePlugin(t *testing.T) {
	root := t.TempDir()
	testutil.WritePlugin(t, filepath.Join(root, "plugins"), "kit-alpha")
	testutil.WritePlugin(t, filepath.Join(root, "plugins"), "kit-beta")

	targets, err := FindTargets(root, "kit-alpha", "")
	if err != nil {
		t.Fatal(err)
	}
	for _, tgt := range targets {
		if !containsSegment(tgt.Path, "kit-alpha") {
			t.Errorf("target outside plugin: %s", tgt.Path)
		}
	}
	if len(targets) != 2 {
		t.Errorf("targets = %d, want 2", len(targets))
	}

	if _, err := FindTargets(root, "missing-plugin", ""); err == nil {
		t.Error("expected error for unknown plugin")
	}
}

func TestFindTargetsPath(t *testing.T) {
	root := t.TempDir()
	testutil.WritePlugin(t, filepath.Join(root, "plugins"), "kit-alpha")

	skillDir := filepath.Join("plugins", "kit-alpha", "skills", "kit-alpha-skill")
	targets, err := FindTargets(root, "", skillDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(targets) != 1 || targets[0].Type != "skill" || targets[0].IsFile {
		t.Errorf("targets = %+v", targets)
	}

	ruleFile := filepath.Join("plugins", "kit-alpha", "rules", "kit-alpha-rule.md")
	targets, err = FindTargets(root, "", ruleFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(targets) != 1 || targets[0].Type != "rule" || !targets[0].IsFile {
		t.Errorf("targets = %+v", targets)
	}

	if _, err := FindTargets(root, "", "does/not/exist"); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestFindTargetsNoPluginsDir(t *testing.T) {
	targets, err := FindTargets(t.TempDir(), "", "")
	if err != nil {
		t.Fatalf("missing plugins/ should not fail: %v", err)
	}
	if len(targets) != 0 {
		t.Errorf("targets = %v, want none", targets)
	}
}

func containsSegment(path, segment string) bool {
	for dir := path; ; {
		base := filepath.Base(dir)
		if base == segment {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}
