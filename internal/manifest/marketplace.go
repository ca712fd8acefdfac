package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claudeware/plugctl/internal/errors"
	"github.com/claudeware/plugctl/internal/logging"
)

// Marketplace is a multi-plugin index.
type Marketplace struct {
	Name    string             `json:"name"`
	Owner   string             `json:"owner,omitempty"`
	Version string             `json:"version,omitempty"`
	Plugins []MarketplaceEntry `json:"plugins"`

	// Dir is the marketplace root entry sources are relative to
	Dir string `json:"-"`
}

// MarketplaceEntry points at one plugin directory within a marketplace.
type MarketplaceEntry struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Description string `json:"description,omitempty"`
}

// FindMarketplace looks for a marketplace index at root or any parent
// directory, returning nil without error when none exists.
func FindMarketplace(root string) (*Marketplace, error) {
	dir, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.SystemError(fmt.Sprintf("resolving %s", root), err)
	}
	for {
		path := filepath.Join(dir, ManifestDir, MarketplaceFile)
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadMarketplace(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// LoadMarketplace reads a marketplace index from a marketplace.json path
func LoadMarketplace(path string) (*Marketplace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.SystemError(fmt.Sprintf("reading %s", path), err)
	}
	var mp Marketplace
	if err := json.Unmarshal(data, &mp); err != nil {
		return nil, errors.ManifestInvalid(path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.SystemError(fmt.Sprintf("resolving %s", path), err)
	}
	dir := filepath.Dir(abs)
	if filepath.Base(dir) == ManifestDir {
		dir = filepath.Dir(dir)
	}
	mp.Dir = dir
	logging.Debug("loaded marketplace", "name", mp.Name, "plugins", len(mp.Plugins))
	return &mp, nil
}

// Load resolves and loads the plugin behind a marketplace entry
func (m *Marketplace) Load(entry MarketplaceEntry) (*Plugin, error) {
	dir := entry.Source
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(m.Dir, dir)
	}
	return LoadDir(dir)
}

// LoadAll loads every plugin the marketplace lists, skipping entries whose
// manifests are missing or invalid.
func (m *Marketplace) LoadAll() []*Plugin {
	var plugins []*Plugin
	for _, entry := range m.Plugins {
		plugin, err := m.Load(entry)
		if err != nil {
			logging.Warn("skipping marketplace entry", "name", entry.Name, "error", err)
			continue
		}
		plugins = append(plugins, plugin)
	}
	return plugins
}
