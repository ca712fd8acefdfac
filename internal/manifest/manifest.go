// Package manifest loads Claude Code plugin descriptors. A plugin is a
// directory carrying .claude-plugin/plugin.json, which names the agent,
// command, skill, and rule files the plugin ships. A marketplace is a
// directory carrying .claude-plugin/marketplace.json pointing at several
// plugin directories.
package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/claudeware/plugctl/internal/errors"
	"github.com/claudeware/plugctl/internal/logging"
)

// Category identifies a class of plugin content.
type Category string

const (
	CategoryAgents   Category = "agents"
	CategoryCommands Category = "commands"
	CategorySkills   Category = "skills"
	CategoryRules    Category = "rules"
)

// Categories lists all categories in installation order
var Categories = []Category{CategoryAgents, CategoryCommands, CategorySkills, CategoryRules}

// ManifestDir is the conventional metadata directory inside a plugin
const ManifestDir = ".claude-plugin"

// ManifestFile is the plugin descriptor filename
const ManifestFile = "plugin.json"

// MarketplaceFile is the multi-plugin index filename
const MarketplaceFile = "marketplace.json"

// Plugin is a loaded plugin manifest.
type Plugin struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Version     string   `json:"version,omitempty"`
	Agents      []string `json:"agents,omitempty"`
	Commands    []string `json:"commands,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Rules       []string `json:"rules,omitempty"`

	// Dir is the plugin root the listed paths are relative to
	Dir string `json:"-"`
	// Path is the manifest file this plugin was loaded from
	Path string `json:"-"`
}

// Components returns the listed paths for a category
func (p *Plugin) Components(cat Category) []string {
	switch cat {
	case CategoryAgents:
		return p.Agents
	case CategoryCommands:
		return p.Commands
	case CategorySkills:
		return p.Skills
	case CategoryRules:
		return p.Rules
	}
	return nil
}

// Total returns the number of listed components across all categories
func (p *Plugin) Total() int {
	n := 0
	for _, cat := range Categories {
		n += len(p.Components(cat))
	}
	return n
}

// Resolve maps a manifest-relative component path to an absolute path,
// refusing paths that escape the plugin directory.
func (p *Plugin) Resolve(rel string) (string, error) {
	resolved, err := securejoin.SecureJoin(p.Dir, rel)
	if err != nil {
		return "", errors.Wrap(errors.ExitGeneralError,
			fmt.Sprintf("component path %q escapes plugin directory", rel), err)
	}
	return resolved, nil
}

// Validate checks the manifest for structural problems
func (p *Plugin) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("plugin manifest missing required field 'name'")
	}
	if p.Total() == 0 {
		return fmt.Errorf("plugin %q lists no components", p.Name)
	}
	return nil
}

// Load reads a plugin manifest from a plugin.json path. The plugin root is
// the parent of the manifest's directory when the manifest sits inside
// .claude-plugin, otherwise the manifest's own directory.
func Load(path string) (*Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ManifestNotFound(path)
		}
		return nil, errors.SystemError(fmt.Sprintf("reading %s", path), err)
	}

	var plugin Plugin
	if err := json.Unmarshal(data, &plugin); err != nil {
		return nil, errors.ManifestInvalid(path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.SystemError(fmt.Sprintf("resolving %s", path), err)
	}
	plugin.Path = abs
	dir := filepath.Dir(abs)
	if filepath.Base(dir) == ManifestDir {
		dir = filepath.Dir(dir)
	}
	plugin.Dir = dir

	if err := plugin.Validate(); err != nil {
		return nil, errors.ManifestInvalid(path, err)
	}
	logging.Debug("loaded plugin manifest", "name", plugin.Name, "components", plugin.Total())
	return &plugin, nil
}

// LoadDir loads the manifest of a plugin directory
func LoadDir(dir string) (*Plugin, error) {
	return Load(filepath.Join(dir, ManifestDir, ManifestFile))
}

// Discover walks root for plugin manifests and loads each one found.
// Results are sorted by plugin name.
func Discover(root string) ([]*Plugin, error) {
	var plugins []*Plugin
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != ManifestFile {
			return nil
		}
		if filepath.Base(filepath.Dir(path)) != ManifestDir {
			return nil
		}
		plugin, loadErr := Load(path)
		if loadErr != nil {
			logging.Warn("skipping invalid manifest", "path", path, "error", loadErr)
			return nil
		}
		plugins = append(plugins, plugin)
		return nil
	})
	if err != nil {
		return nil, errors.SystemError(fmt.Sprintf("scanning %s", root), err)
	}
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Name < plugins[j].Name
	})
	return plugins, nil
}
