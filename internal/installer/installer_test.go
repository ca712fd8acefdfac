package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/claudeware/plugctl/internal/errors"
	"github.com/claudeware/plugctl/internal/manifest"
	"github.com/claudeware/plugctl/internal/testutil"
)

func loadFixture(t *testing.T, root, name string) *manifest.Plugin {
	t.Helper()
	dir := testutil.WritePlugin(t, root, name)
	plugin, err := manifest.LoadDir(dir)
	if err != nil {
		t.Fatalf("loading fixture plugin: %v", err)
	}
	return plugin
}

func TestInstall_CleanTarget(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	plugin := loadFixture(t, root, "devkit")

	summary, err := New(Options{Target: target}).Install([]*manifest.Plugin{plugin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Installed != 4 {
		t.Errorf("installed = %d, want 4", summary.Installed)
	}

	checks := []string{
		filepath.Join(target, "agents", "devkit-agent.md"),
		filepath.Join(target, "commands", "devkit-command.md"),
		filepath.Join(target, "skills", "devkit-skill", "SKILL.md"),
		filepath.Join(target, "rules", "devkit-rule.md"),
	}
	for _, path := range checks {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to exist: %v", path, err)
		}
	}
}

func TestInstall_MissingSource(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	plugin := loadFixture(t, root, "devkit")
	plugin.Agents = append(plugin.Agents, "agents/ghost.md")

	summary, err := New(Options{Target: target}).Install([]*manifest.Plugin{plugin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Missing != 1 {
		t.Errorf("missing = %d, want 1", summary.Missing)
	}
	if summary.Installed != 4 {
		t.Errorf("installed = %d, want 4", summary.Installed)
	}
}

func TestInstall_ForceOverwrites(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	plugin := loadFixture(t, root, "devkit")
	testutil.WriteFile(t, target, filepath.Join("agents", "devkit-agent.md"), "old content")

	summary, err := New(Options{Target: target, Force: true}).Install([]*manifest.Plugin{plugin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Overwritten != 1 {
		t.Errorf("overwritten = %d, want 1", summary.Overwritten)
	}
	data, err := os.ReadFile(filepath.Join(target, "agents", "devkit-agent.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "old content" {
		t.Error("file was not overwritten")
	}
}

func TestInstall_SkipExisting(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	plugin := loadFixture(t, root, "devkit")
	testutil.WriteFile(t, target, filepath.Join("agents", "devkit-agent.md"), "old content")

	summary, err := New(Options{Target: target, SkipExisting: true}).Install([]*manifest.Plugin{plugin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", summary.Skipped)
	}
	data, _ := os.ReadFile(filepath.Join(target, "agents", "devkit-agent.md"))
	if string(data) != "old content" {
		t.Error("existing file should be untouched")
	}
}

func TestInstall_RenameResolution(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	plugin := loadFixture(t, root, "devkit")
	testutil.WriteFile(t, target, filepath.Join("agents", "devkit-agent.md"), "old content")

	resolver := ResolverFunc(func(c Conflict) (Resolution, string, error) {
		return ResolutionRename, "devkit-agent-v2.md", nil
	})
	summary, err := New(Options{Target: target, Resolver: resolver}).Install([]*manifest.Plugin{plugin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Renamed != 1 {
		t.Errorf("renamed = %d, want 1", summary.Renamed)
	}
	if _, err := os.Stat(filepath.Join(target, "agents", "devkit-agent-v2.md")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
}

func TestInstall_Abort(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	plugin := loadFixture(t, root, "devkit")
	testutil.WriteFile(t, target, filepath.Join("agents", "devkit-agent.md"), "old content")

	resolver := ResolverFunc(func(c Conflict) (Resolution, string, error) {
		return ResolutionAbort, "", nil
	})
	_, err := New(Options{Target: target, Resolver: resolver}).Install([]*manifest.Plugin{plugin})
	if errors.GetExitCode(err) != errors.ExitInstallAborted {
		t.Errorf("expected install-aborted exit code, got %v", err)
	}
}

func TestInstall_StickyOverwriteAll(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	plugin := loadFixture(t, root, "devkit")
	testutil.WriteFile(t, target, filepath.Join("agents", "devkit-agent.md"), "old")
	testutil.WriteFile(t, target, filepath.Join("commands", "devkit-command.md"), "old")

	calls := 0
	resolver := ResolverFunc(func(c Conflict) (Resolution, string, error) {
		calls++
		return ResolutionOverwriteAll, "", nil
	})
	summary, err := New(Options{Target: target, Resolver: resolver}).Install([]*manifest.Plugin{plugin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("resolver called %d times, want 1 (choice should stick)", calls)
	}
	if summary.Overwritten != 2 {
		t.Errorf("overwritten = %d, want 2", summary.Overwritten)
	}
}

func TestInstall_SkillDirectoryCopied(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	plugin := loadFixture(t, root, "devkit")
	// Bundled resource inside the skill directory
	testutil.WriteFile(t, filepath.Join(root, "devkit"),
		filepath.Join("skills", "devkit-skill", "references", "extra.md"), "# extra")

	if _, err := New(Options{Target: target}).Install([]*manifest.Plugin{plugin}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nested := filepath.Join(target, "skills", "devkit-skill", "references", "extra.md")
	if _, err := os.Stat(nested); err != nil {
		t.Errorf("nested resource missing: %v", err)
	}
}
