package scan

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/claudeware/plugctl/internal/logging"
)

// Target is a component selected for scanning.
type Target struct {
	Path   string
	Type   string // "skill" or "rule"
	IsFile bool
}

// baseRefCandidates are tried in order when no base ref is given.
var baseRefCandidates = []string{"origin/main", "origin/develop", "HEAD~1"}

// DetectBaseRef resolves the merge base for changed-component detection.
// Falls back to HEAD~1 when no candidate ref resolves.
func DetectBaseRef(root string) string {
	for _, candidate := range baseRefCandidates {
		cmd := exec.Command("git", "merge-base", "HEAD", candidate)
		cmd.Dir = root
		out, err := cmd.Output()
		if err == nil {
			return strings.TrimSpace(string(out))
		}
	}
	return "HEAD~1"
}

func changedFiles(root, baseRef string) ([]string, error) {
	cmd := exec.Command("git", "diff", "--name-only", baseRef, "HEAD")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff against %s: %w", baseRef, err)
	}
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// skillDirsUnder finds every directory containing a SKILL.md below dir.
func skillDirsUnder(dir string) []string {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/SKILL.md")
	if err != nil {
		return nil
	}
	dirs := make([]string, 0, len(matches))
	for _, m := range matches {
		dirs = append(dirs, filepath.Join(dir, filepath.Dir(m)))
	}
	sort.Strings(dirs)
	return dirs
}

func ruleFilesUnder(dir string) []string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}

// FindTargets discovers the skill directories and rule files to scan.
// When path is set it names a single skill directory or rule file. When
// plugin is set only that plugin's components are scanned. Otherwise every
// plugin under root/plugins is scanned.
func FindTargets(root, plugin, path string) ([]Target, error) {
	if path != "" {
		target := path
		if !filepath.IsAbs(target) {
			target = filepath.Join(root, target)
		}
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("path not found: %s", target)
		}
		if info.IsDir() {
			return []Target{{Path: target, Type: "skill"}}, nil
		}
		return []Target{{Path: target, Type: "rule", IsFile: true}}, nil
	}

	pluginsDir := filepath.Join(root, "plugins")
	if _, err := os.Stat(pluginsDir); err != nil {
		// Nothing to scan is not a failure.
		logging.Debug("no plugins directory", "root", root)
		return nil, nil
	}

	var pluginDirs []string
	if plugin != "" {
		dir := filepath.Join(pluginsDir, plugin)
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("plugin not found: %s", plugin)
		}
		pluginDirs = []string{dir}
	} else {
		entries, err := os.ReadDir(pluginsDir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				pluginDirs = append(pluginDirs, filepath.Join(pluginsDir, e.Name()))
			}
		}
		sort.Strings(pluginDirs)
	}

	var targets []Target
	for _, dir := range pluginDirs {
		for _, sd := range skillDirsUnder(filepath.Join(dir, "skills")) {
			targets = append(targets, Target{Path: sd, Type: "skill"})
		}
	}
	for _, dir := range pluginDirs {
		for _, rf := range ruleFilesUnder(filepath.Join(dir, "rules")) {
			targets = append(targets, Target{Path: rf, Type: "rule", IsFile: true})
		}
	}
	return targets, nil
}

// FindChangedTargets discovers skill directories and rule files touched
// since baseRef. An empty baseRef triggers auto-detection.
func FindChangedTargets(root, baseRef string) ([]Target, error) {
	if baseRef == "" {
		baseRef = DetectBaseRef(root)
	}
	files, err := changedFiles(root, baseRef)
	if err != nil {
		return nil, err
	}

	skillDirs := map[string]bool{}
	var ruleFiles []string
	for _, f := range files {
		abs := filepath.Join(root, f)
		if strings.Contains(f, "/rules/") && strings.HasSuffix(f, ".md") {
			if _, statErr := os.Stat(abs); statErr == nil {
				ruleFiles = append(ruleFiles, abs)
			}
			continue
		}
		// Walk up to the containing skill directory.
		for dir := filepath.Dir(abs); strings.HasPrefix(dir, root); dir = filepath.Dir(dir) {
			if _, statErr := os.Stat(filepath.Join(dir, "SKILL.md")); statErr == nil && strings.Contains(dir, "plugins") {
				skillDirs[dir] = true
				break
			}
			if dir == filepath.Dir(dir) {
				break
			}
		}
	}

	var targets []Target
	dirs := make([]string, 0, len(skillDirs))
	for d := range skillDirs {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	for _, d := range dirs {
		targets = append(targets, Target{Path: d, Type: "skill"})
	}
	sort.Strings(ruleFiles)
	for _, rf := range ruleFiles {
		targets = append(targets, Target{Path: rf, Type: "rule", IsFile: true})
	}
	return targets, nil
}
