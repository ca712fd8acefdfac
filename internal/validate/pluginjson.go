package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/claudeware/plugctl/internal/manifest"
)

// PluginJsonValidator cross-checks plugin.json component registration
// against the filesystem in both directions: registered components must
// exist, and components on disk must be registered.
type PluginJsonValidator struct{}

var pluginJsonPattern = regexp.MustCompile(`plugin\.json$`)

func (PluginJsonValidator) ComponentType() string { return "plugin.json" }

func (PluginJsonValidator) CanValidate(path string) bool {
	return pluginJsonPattern.MatchString(filepath.ToSlash(path))
}

func (v PluginJsonValidator) Validate(path string) *Result {
	result := NewResult(path, v.ComponentType())

	data, err := os.ReadFile(path)
	if err != nil {
		result.AddError(Issue{
			Message:    fmt.Sprintf("File not found: %s", path),
			Suggestion: "Verify the file path is correct",
		})
		return result
	}
	var plugin manifest.Plugin
	if err := json.Unmarshal(data, &plugin); err != nil {
		result.AddError(Issue{
			Message:    fmt.Sprintf("Invalid JSON: %v", err),
			Suggestion: "Fix the JSON syntax error",
		})
		return result
	}

	// plugin.json lives in .claude-plugin/, so the plugin root is two up
	pluginDir := filepath.Dir(filepath.Dir(path))

	for _, cat := range manifest.Categories {
		v.checkRegistered(&plugin, pluginDir, cat, result)
		v.checkUnregistered(&plugin, pluginDir, cat, result)
	}
	return result
}

// checkRegistered verifies every registered component exists on disk
func (PluginJsonValidator) checkRegistered(plugin *manifest.Plugin, pluginDir string, cat manifest.Category, result *Result) {
	for _, rel := range plugin.Components(cat) {
		full := filepath.Join(pluginDir, filepath.FromSlash(rel))

		if cat == manifest.CategorySkills {
			// Skills register directories containing SKILL.md
			if _, err := os.Stat(filepath.Join(full, "SKILL.md")); err != nil {
				result.AddError(Issue{
					Message:    fmt.Sprintf("Skill not found: '%s'", rel),
					Field:      string(cat),
					Suggestion: fmt.Sprintf("Ensure '%s/SKILL.md' exists or remove from plugin.json", rel),
				})
			}
			continue
		}

		info, err := os.Stat(full)
		if err != nil {
			result.AddError(Issue{
				Message:    fmt.Sprintf("%s not found: '%s'", categoryTitle(cat), rel),
				Field:      string(cat),
				Suggestion: fmt.Sprintf("Ensure '%s' exists or remove from plugin.json", rel),
			})
		} else if !info.IsDir() && filepath.Ext(full) != ".md" {
			result.AddError(Issue{
				Message:    fmt.Sprintf("%s must be a .md file: '%s'", categoryTitle(cat), rel),
				Field:      string(cat),
				Suggestion: "Use .md extension for agent/command files",
			})
		}
	}
}

// checkUnregistered flags components present on disk but absent from the
// manifest.
func (PluginJsonValidator) checkUnregistered(plugin *manifest.Plugin, pluginDir string, cat manifest.Category, result *Result) {
	registered := map[string]bool{}
	for _, rel := range plugin.Components(cat) {
		registered[normalizeRel(rel)] = true
	}

	catDir := filepath.Join(pluginDir, string(cat))
	entries, err := os.ReadDir(catDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		rel := fmt.Sprintf("%s/%s", cat, entry.Name())

		if cat == manifest.CategorySkills {
			if !entry.IsDir() {
				continue
			}
			if _, err := os.Stat(filepath.Join(catDir, entry.Name(), "SKILL.md")); err != nil {
				continue
			}
			if !registered[rel] {
				result.AddError(Issue{
					Message:    fmt.Sprintf("Unregistered skill: '%s'", entry.Name()),
					Field:      string(cat),
					Suggestion: fmt.Sprintf("Add './%s' to plugin.json skills array", rel),
				})
			}
			continue
		}

		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		if !registered[rel] {
			result.AddError(Issue{
				Message:    fmt.Sprintf("Unregistered %s: '%s'", strings.TrimSuffix(string(cat), "s"), entry.Name()),
				Field:      string(cat),
				Suggestion: fmt.Sprintf("Add './%s' to plugin.json %s array", rel, cat),
			})
		}
	}
}

// normalizeRel strips the leading ./ so both registration styles compare
func normalizeRel(rel string) string {
	return strings.TrimPrefix(filepath.ToSlash(rel), "./")
}

func categoryTitle(cat manifest.Category) string {
	singular := strings.TrimSuffix(string(cat), "s")
	return strings.ToUpper(singular[:1]) + singular[1:]
}
