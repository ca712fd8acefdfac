package validate

import (
	"regexp"
	"sort"
	"strings"
)

// Version is reported by the validate --version flag
const Version = "1.0.0"

// Field and content limits.
const (
	MaxNameLength          = 64
	MaxDescriptionLength   = 1024
	MaxCompatibilityLength = 500

	// SKILL.md progressive disclosure limits, roughly 5000 tokens
	MaxSkillLines      = 500
	MaxSkillCharacters = 20000

	MaxRuleLines = 300
)

// File patterns matching component files in both root-level and
// plugin-based layouts.
var (
	SkillPattern        = regexp.MustCompile(`(?:.*/)?skills/.+/SKILL\.md$`)
	AgentPattern        = regexp.MustCompile(`(?:.*/)?agents/[^/]+\.md$`)
	CommandPattern      = regexp.MustCompile(`(?:\.claude/commands/|commands/)[^/]+\.md$`)
	RulePattern         = regexp.MustCompile(`(?:.*/)?rules/[^/]+\.md$`)
	MarkdownFilePattern = regexp.MustCompile(`^(.*/)?[^/]+\.md$`)
	SkillPackagePattern = regexp.MustCompile(`.*\.skill$`)
	PluginPattern       = regexp.MustCompile(`\.claude-plugin/plugin\.json$`)
)

// KebabCasePattern allows dots for namespaced names (e.g. devkit.lra.add-feature)
var KebabCasePattern = regexp.MustCompile(`^[a-z][a-z0-9]*([-.][a-z0-9]+)*$`)

// SemverPattern matches semantic versions with optional pre-release
var SemverPattern = regexp.MustCompile(`(?i)^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-([\da-z-]+(?:\.[\da-z-]+)*))?$`)

// ValidTools are the tool names Claude Code recognizes
var ValidTools = map[string]bool{
	"Read":            true,
	"Write":           true,
	"Edit":            true,
	"Bash":            true,
	"Grep":            true,
	"Glob":            true,
	"Task":            true,
	"WebFetch":        true,
	"WebSearch":       true,
	"NotebookEdit":    true,
	"AskUserQuestion": true,
	"TodoWrite":       true,
	"Skill":           true,
}

// ValidModels are accepted model values for skills and commands
var ValidModels = map[string]bool{
	"sonnet":  true,
	"opus":    true,
	"haiku":   true,
	"inherit": true,
}

// AgentValidModels are accepted for agents; inherit only warns
var AgentValidModels = map[string]bool{
	"sonnet": true,
	"opus":   true,
	"haiku":  true,
}

// ReservedWords cannot be used as component names
var ReservedWords = map[string]bool{
	"help": true, "status": true, "model": true, "agents": true, "config": true,
	"compact": true, "memory": true, "slash": true, "command": true, "skills": true,
	"init": true, "clone": true, "add": true, "commit": true, "push": true, "pull": true,
	"test": true, "debug": true, "run": true, "build": true, "deploy": true,
}

// SkillProhibitedFiles may not appear in a skill directory
var SkillProhibitedFiles = []string{"README.md", "CHANGELOG.md"}

// SkillAllowedSubdirs are the bundled resource directories a skill may carry
var SkillAllowedSubdirs = map[string]bool{
	"scripts":    true,
	"references": true,
	"assets":     true,
}

// SkillProhibitedFields may not appear in skill frontmatter
var SkillProhibitedFields = []string{
	"language",
	"framework",
	"context7_library",
	"context7_trust_score",
}

// KebabCaseExemptFiles are standard documentation filenames exempt from
// kebab-case naming.
var KebabCaseExemptFiles = map[string]bool{
	"README.md": true, "CHANGELOG.md": true, "CLAUDE.md": true, "LICENSE.md": true,
	"CONTRIBUTING.md": true, "CODE_OF_CONDUCT.md": true, "SECURITY.md": true,
	"PRIVACY.md": true, "NOTICE.md": true, "AUTHORS.md": true, "COPYING.md": true,
	"INSTALL.md": true, "BUILD.md": true, "DEPLOY.md": true, "RELEASE.md": true,
	"VERSION.md": true, "TODO.md": true, "ROADMAP.md": true, "FAQ.md": true,
	"GUIDE.md": true, "TUTORIAL.md": true, "MANUAL.md": true, "QUICKSTART.md": true,
	"GETTING_STARTED.md": true, "SKILL.md": true,
}

// sectionCheck pairs a human-readable section name with its header pattern
type sectionCheck struct {
	Name    string
	Pattern *regexp.Regexp
}

// Required and recommended sections per component type.
var (
	SkillRequiredSections = []sectionCheck{
		{"Overview", regexp.MustCompile(`(?im)^#{1,3}\s+Overview`)},
		{"When to Use", regexp.MustCompile(`(?im)^#{1,3}\s+When\s+to\s+Use`)},
		{"Instructions", regexp.MustCompile(`(?im)^#{1,3}\s+Instructions`)},
		{"Examples", regexp.MustCompile(`(?im)^#{1,3}\s+Examples`)},
	}
	SkillRecommendedSections = []sectionCheck{
		{"Best Practices", regexp.MustCompile(`(?im)^#{1,3}\s+Best Practices`)},
		{"Constraints and Warnings", regexp.MustCompile(`(?im)^#{1,3}\s+Constraints and Warnings`)},
	}

	AgentRequiredSections = []sectionCheck{
		{"Role", regexp.MustCompile(`(?im)^#{1,3}\s+(?:Role|You\s+Are|Description)`)},
		{"Process", regexp.MustCompile(`(?im)^#{1,3}\s+(?:Process|Workflow|Steps|When\s+Invoked|Instructions)`)},
		{"Guidelines", regexp.MustCompile(`(?im)^#{1,3}\s+(?:Guidelines|Best\s+Practices|Checklist|Review\s+(?:Checklist|Focus))`)},
	}
	AgentRecommendedSections = []sectionCheck{
		{"Skills Integration", regexp.MustCompile(`(?im)^#{1,3}\s+Skills Integration`)},
		{"Common Patterns", regexp.MustCompile(`(?im)^#{1,3}\s+Common Patterns`)},
		{"Output Format", regexp.MustCompile(`(?im)^#{1,3}\s+Output Format`)},
	}

	CommandRequiredSections = []sectionCheck{
		{"Overview", regexp.MustCompile(`(?im)^#{1,3}\s+Overview`)},
		{"Usage", regexp.MustCompile(`(?im)^#{1,3}\s+Usage`)},
		{"Arguments", regexp.MustCompile(`(?im)^#{1,3}\s+Arguments`)},
		{"Examples", regexp.MustCompile(`(?im)^#{1,3}\s+Examples`)},
	}

	RuleRequiredSections = []sectionCheck{
		{"Guidelines", regexp.MustCompile(`(?im)^#{1,3}\s+Guidelines`)},
	}
	RuleRecommendedSections = []sectionCheck{
		{"Context", regexp.MustCompile(`(?im)^#{1,3}\s+Context`)},
		{"Examples", regexp.MustCompile(`(?im)^#{1,3}\s+Examples`)},
	}
)

// CommandSectionsOrder is the required ordering of command sections. Sections
// absent from this list may appear after the last listed one.
var CommandSectionsOrder = []sectionCheck{
	{"Overview", regexp.MustCompile(`(?im)^#{1,3}\s+Overview`)},
	{"Usage", regexp.MustCompile(`(?im)^#{1,3}\s+Usage`)},
	{"Arguments", regexp.MustCompile(`(?im)^#{1,3}\s+Arguments`)},
	{"Current Context", regexp.MustCompile(`(?im)^#{1,3}\s+Current\s+Context`)},
	{"Execution Steps", regexp.MustCompile(`(?im)^#{1,3}\s+Execution\s+Steps`)},
	{"Execution Instructions", regexp.MustCompile(`(?im)^#{1,3}\s+Execution\s+Instructions`)},
	{"Integration with Sub-agents", regexp.MustCompile(`(?im)^#{1,3}\s+Integration\s+with\s+Sub-agents`)},
	{"Examples", regexp.MustCompile(`(?im)^#{1,3}\s+Examples`)},
}

// Keywords suggesting a description covers WHAT the component does
var WhatKeywords = []string{
	"does", "functionality", "capability", "skill", "creates",
	"generates", "validates", "processes", "transforms", "handles",
	"implements", "provides", "enables", "supports", "manages",
}

// Keywords suggesting a description covers WHEN to use the component
var WhenKeywords = []string{
	"when", "use", "trigger", "context", "invoke", "if",
	"during", "before", "after", "while", "proactively",
}

// sortedSample joins the first n sorted keys of a set for suggestions
func sortedSample(set map[string]bool, n int) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > n {
		keys = keys[:n]
	}
	return strings.Join(keys, ", ")
}

// sortedKeys joins all sorted keys of a set
func sortedKeys(set map[string]bool) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
