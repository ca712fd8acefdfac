package validate

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/claudeware/plugctl/internal/logging"
)

// RepoRoot returns the git repository root, falling back to the current
// directory when git is unavailable.
func RepoRoot() string {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		logging.Warn("git not available, using current directory as repo root", "error", err)
		cwd, _ := os.Getwd()
		return cwd
	}
	return strings.TrimSpace(string(out))
}

// StagedFiles lists files staged in git (added, copied, or modified),
// resolved against the repository root.
func StagedFiles(repoRoot string) []string {
	cmd := exec.Command("git", "diff", "--cached", "--name-only", "--diff-filter=ACM")
	cmd.Dir = repoRoot
	out, err := cmd.Output()
	if err != nil {
		logging.Warn("failed to get staged files", "error", err)
		return nil
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		files = append(files, filepath.Join(repoRoot, filepath.FromSlash(line)))
	}
	return files
}

// componentGlobs covers both the root-level and plugin-based layouts
var componentGlobs = []string{
	"skills/**/SKILL.md",
	"agents/*.md",
	".claude/commands/*.md",
	"commands/*.md",
	"plugins/*/skills/**/SKILL.md",
	"plugins/*/agents/*.md",
	"plugins/*/commands/**/*.md",
	"plugins/*/rules/*.md",
	"plugins/*/.claude-plugin/plugin.json",
}

// AllComponentFiles finds every component file under root, sorted
func AllComponentFiles(root string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := map[string]bool{}
	var files []string

	for _, pattern := range componentGlobs {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			abs := filepath.Join(root, filepath.FromSlash(m))
			if !seen[abs] {
				seen[abs] = true
				files = append(files, abs)
			}
		}
	}
	sort.Strings(files)
	logging.Debug("discovered component files", "root", root, "count", len(files))
	return files, nil
}

// ExpandGlobs resolves explicit file arguments, expanding any glob
// patterns against the current directory.
func ExpandGlobs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			files = append(files, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}
