// Package testutil provides fixture helpers for plugctl tests. Helpers write
// plugin content into temporary directories so tests exercise the real file
// loading paths.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// PluginFixture describes a plugin directory to materialize on disk.
type PluginFixture struct {
	Name        string
	Description string
	Version     string
	Agents      []string
	Commands    []string
	Skills      []string
	Rules       []string
}

// WriteFile writes content to a path under dir, creating parents
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// WriteSkill writes a minimal valid SKILL.md under dir/skills/<name>/
func WriteSkill(t *testing.T, dir, name string) string {
	t.Helper()
	content := "---\n" +
		"name: " + name + "\n" +
		"description: Provides test fixtures for " + name + ". Use when a test needs a valid skill.\n" +
		"allowed-tools: Read, Grep, Glob\n" +
		"---\n\n" +
		"# " + name + "\n\n" +
		"## Overview\n\nThis skill does test things.\n\n" +
		"## When to Use\n\nWhen a test needs a valid skill.\n\n" +
		"## Instructions\n\nLoad it.\n\n" +
		"## Examples\n\n```text\ninput -> output\n```\n"
	return WriteFile(t, dir, filepath.Join("skills", name, "SKILL.md"), content)
}

// WriteAgent writes a minimal valid agent file under dir/agents/
func WriteAgent(t *testing.T, dir, name string) string {
	t.Helper()
	content := "---\n" +
		"name: " + name + "\n" +
		"description: Handles review tasks for " + name + ". Use when a test needs a valid agent.\n" +
		"tools: Read, Grep\n" +
		"model: sonnet\n" +
		"---\n\n" +
		"# " + name + "\n\n" +
		"## Role\n\nYou review things.\n\n" +
		"## Process\n\n1. Look.\n2. Report.\n\n" +
		"## Guidelines\n\nBe brief.\n"
	return WriteFile(t, dir, filepath.Join("agents", name+".md"), content)
}

// WriteCommand writes a minimal valid command file under dir/commands/
func WriteCommand(t *testing.T, dir, name string) string {
	t.Helper()
	content := "---\n" +
		"description: Runs test steps for " + name + ". Use when a test needs a valid command.\n" +
		"allowed-tools: Read, Bash\n" +
		"---\n\n" +
		"# " + name + "\n\n" +
		"## Overview\n\nDoes test things.\n\n" +
		"## Usage\n\n/" + name + "\n\n" +
		"## Arguments\n\nNone.\n\n" +
		"## Examples\n\n/" + name + " now\n"
	return WriteFile(t, dir, filepath.Join("commands", name+".md"), content)
}

// WriteRule writes a minimal valid rule file under dir/rules/
func WriteRule(t *testing.T, dir, name string) string {
	t.Helper()
	content := "---\n" +
		"globs: \"**/*.go\"\n" +
		"---\n\n" +
		"# " + name + "\n\n" +
		"## Guidelines\n\nFollow the rule.\n"
	return WriteFile(t, dir, filepath.Join("rules", name+".md"), content)
}

// WritePluginManifest writes .claude-plugin/plugin.json for a fixture and
// returns the manifest path.
func WritePluginManifest(t *testing.T, dir string, fixture PluginFixture) string {
	t.Helper()
	manifest := map[string]any{
		"name": fixture.Name,
	}
	if fixture.Description != "" {
		manifest["description"] = fixture.Description
	}
	if fixture.Version != "" {
		manifest["version"] = fixture.Version
	}
	if len(fixture.Agents) > 0 {
		manifest["agents"] = fixture.Agents
	}
	if len(fixture.Commands) > 0 {
		manifest["commands"] = fixture.Commands
	}
	if len(fixture.Skills) > 0 {
		manifest["skills"] = fixture.Skills
	}
	if len(fixture.Rules) > 0 {
		manifest["rules"] = fixture.Rules
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		t.Fatalf("marshaling manifest: %v", err)
	}
	return WriteFile(t, dir, filepath.Join(".claude-plugin", "plugin.json"), string(data))
}

// WritePlugin materializes a complete plugin directory with one component
// per category and returns the plugin root.
func WritePlugin(t *testing.T, root, name string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	WriteAgent(t, dir, name+"-agent")
	WriteCommand(t, dir, name+"-command")
	WriteSkill(t, dir, name+"-skill")
	WriteRule(t, dir, name+"-rule")
	WritePluginManifest(t, dir, PluginFixture{
		Name:     name,
		Version:  "1.0.0",
		Agents:   []string{filepath.Join("agents", name+"-agent.md")},
		Commands: []string{filepath.Join("commands", name+"-command.md")},
		Skills:   []string{filepath.Join("skills", name+"-skill")},
		Rules:    []string{filepath.Join("rules", name+"-rule.md")},
	})
	return dir
}
