package validate

import (
	"fmt"
	"path/filepath"

	"github.com/claudeware/plugctl/internal/manifest"
)

// PluginVersionValidator checks that a plugin.json version matches the
// version declared in the enclosing marketplace.json.
type PluginVersionValidator struct{}

func (PluginVersionValidator) ComponentType() string { return "plugin" }

func (PluginVersionValidator) CanValidate(path string) bool {
	return PluginPattern.MatchString(filepath.ToSlash(path))
}

func (v PluginVersionValidator) Validate(path string) *Result {
	result := NewResult(path, v.ComponentType())

	mp, err := manifest.FindMarketplace(filepath.Dir(path))
	if err != nil || mp == nil {
		result.AddError(Issue{
			Message:    "Cannot find marketplace.json for version alignment check",
			Suggestion: "Ensure marketplace.json exists in .claude-plugin/ directory",
		})
		return result
	}
	if mp.Version == "" {
		result.AddError(Issue{
			Message:    "Cannot read version from marketplace.json",
			Suggestion: "Ensure marketplace.json has a valid 'version' field",
		})
		return result
	}

	plugin, err := manifest.Load(path)
	if err != nil || plugin.Version == "" {
		result.AddError(Issue{
			Message:    "Cannot read version from plugin.json",
			Suggestion: "Ensure plugin.json has a valid 'version' field",
		})
		return result
	}

	if !SemverPattern.MatchString(plugin.Version) {
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("Invalid version format: '%s'", plugin.Version),
			Field:      "version",
			Suggestion: "Use semantic versioning (e.g., '1.0.0', '2.1.0-beta')",
		})
	}

	if plugin.Version != mp.Version {
		result.AddError(Issue{
			Message:    fmt.Sprintf("Version mismatch: plugin '%s' != marketplace '%s'", plugin.Version, mp.Version),
			Suggestion: fmt.Sprintf("Align plugin version with marketplace version '%s'", mp.Version),
		})
	}
	return result
}
