package validate

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/claudeware/plugctl/internal/testutil"
)

func issueMessages(r *Result) string {
	var msgs []string
	for _, i := range r.Issues {
		msgs = append(msgs, i.Message)
	}
	return strings.Join(msgs, "; ")
}

func TestForFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"skills/extract/SKILL.md", "skill"},
		{"plugins/devkit/skills/go/extract/SKILL.md", "skill"},
		{"agents/reviewer.md", "agent"},
		{"plugins/devkit/agents/reviewer.md", "agent"},
		{".claude/commands/deploy-app.md", "command"},
		{"plugins/devkit/commands/deploy-app.md", "command"},
		{"plugins/devkit/rules/naming.md", "rule"},
		{"docs/some-guide.md", "naming"},
		{"dist/extract.skill", "prohibited"},
		{"plugins/devkit/.claude-plugin/plugin.json", "plugin"},
		{"devkit/plugin.json", "plugin.json"},
		{"main.go", ""},
		{"README.md", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v := ForFile(tt.path)
			got := ""
			if v != nil {
				got = v.ComponentType()
			}
			if got != tt.want {
				t.Errorf("ForFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSkillValidator_Valid(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSkill(t, dir, "data-extractor")

	result := SkillValidator{}.Validate(path)
	if !result.IsValid() {
		t.Errorf("expected valid, got: %s", issueMessages(result))
	}
}

func TestSkillValidator_NameMismatch(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "skills/wrong-dir/SKILL.md",
		"---\nname: data-extractor\ndescription: Provides extraction. Use when needed.\nallowed-tools: Read\n---\n\n## Overview\nx\n\n## When to Use\nx\n\n## Instructions\nx\n\n## Examples\n\n```\nx\n```\n")

	result := SkillValidator{}.Validate(path)
	if result.IsValid() {
		t.Fatal("expected name mismatch error")
	}
	if !strings.Contains(issueMessages(result), "Name mismatch") {
		t.Errorf("missing name mismatch: %s", issueMessages(result))
	}
}

func TestSkillValidator_MissingRequired(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "skills/bare/SKILL.md",
		"---\nname: bare\n---\n\n## Overview\nx\n")

	result := SkillValidator{}.Validate(path)
	msgs := issueMessages(result)
	if !strings.Contains(msgs, "Missing required field: 'description'") {
		t.Errorf("missing description error: %s", msgs)
	}
	if !strings.Contains(msgs, "Missing required field: 'allowed-tools'") {
		t.Errorf("missing allowed-tools error: %s", msgs)
	}
	if !strings.Contains(msgs, "Missing required section: '## Instructions'") {
		t.Errorf("missing section error: %s", msgs)
	}
}

func TestSkillValidator_ProhibitedField(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "skills/legacy/SKILL.md",
		"---\nname: legacy\ndescription: Provides things. Use when needed.\nallowed-tools: Read\nlanguage: go\n---\n\n## Overview\nx\n\n## When to Use\nx\n\n## Instructions\nx\n\n## Examples\n\n```\nx\n```\n")

	result := SkillValidator{}.Validate(path)
	if !strings.Contains(issueMessages(result), "Prohibited field: 'language'") {
		t.Errorf("missing prohibited field error: %s", issueMessages(result))
	}
}

func TestSkillValidator_ProhibitedFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSkill(t, dir, "tidy")
	skillDir := filepath.Dir(path)
	testutil.WriteFile(t, skillDir, "README.md", "# readme")
	testutil.WriteFile(t, skillDir, "helpers/util.py", "pass")
	testutil.WriteFile(t, skillDir, "notes.txt", "notes")

	result := SkillValidator{}.Validate(path)
	msgs := issueMessages(result)
	if !strings.Contains(msgs, "Prohibited file found: README.md") {
		t.Errorf("missing prohibited file error: %s", msgs)
	}
	if !strings.Contains(msgs, "Non-standard directory found: 'helpers/'") {
		t.Errorf("missing non-standard dir error: %s", msgs)
	}
	if !strings.Contains(msgs, "Non-standard file at skill root: 'notes.txt'") {
		t.Errorf("missing non-standard file error: %s", msgs)
	}
}

func TestSkillValidator_DeepReference(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "skills/refs/SKILL.md",
		"---\nname: refs\ndescription: Provides refs. Use when needed.\nallowed-tools: Read\n---\n\n"+
			"## Overview\nSee [guide](references/sub/deep.md)\n\n## When to Use\nx\n\n## Instructions\nx\n\n## Examples\n\n```\nx\n```\n")

	result := SkillValidator{}.Validate(path)
	found := false
	for _, i := range result.Warnings() {
		if strings.Contains(i.Message, "Deep file reference") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing deep reference warning: %s", issueMessages(result))
	}
}

func TestAgentValidator_Valid(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteAgent(t, dir, "code-reviewer")

	result := AgentValidator{}.Validate(path)
	if !result.IsValid() {
		t.Errorf("expected valid, got: %s", issueMessages(result))
	}
}

func TestAgentValidator_InheritModelWarns(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "agents/inheritor.md",
		"---\nname: inheritor\ndescription: Handles checks. Use when invoked.\ntools: Read\nmodel: inherit\n---\n\n## Role\nx\n\n## Process\nx\n\n## Guidelines\nx\n")

	result := AgentValidator{}.Validate(path)
	if result.HasErrors() {
		t.Fatalf("inherit should only warn: %s", issueMessages(result))
	}
	if !strings.Contains(issueMessages(result), "'inherit' model value is not recommended") {
		t.Errorf("missing inherit warning: %s", issueMessages(result))
	}
}

func TestAgentValidator_UnknownTool(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "agents/toolish.md",
		"---\nname: toolish\ndescription: Handles checks. Use when invoked.\ntools: Read, Teleport\n---\n\n## Role\nx\n\n## Process\nx\n\n## Guidelines\nx\n")

	result := AgentValidator{}.Validate(path)
	if !strings.Contains(issueMessages(result), "Unknown tool: 'Teleport'") {
		t.Errorf("missing unknown tool warning: %s", issueMessages(result))
	}
}

func TestCommandValidator_Valid(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteCommand(t, dir, "deploy-app")

	result := CommandValidator{}.Validate(path)
	if !result.IsValid() {
		t.Errorf("expected valid, got: %s", issueMessages(result))
	}
}

func TestCommandValidator_SectionOrder(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "commands/shuffled.md",
		"---\ndescription: Runs steps. Use when needed.\nallowed-tools: Read\n---\n\n"+
			"## Usage\nx\n\n## Overview\nx\n\n## Arguments\nx\n\n## Examples\nx\n")

	result := CommandValidator{}.Validate(path)
	if !strings.Contains(issueMessages(result), "is out of order") {
		t.Errorf("missing section order error: %s", issueMessages(result))
	}
}

func TestCommandValidator_ToolsWithArguments(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "commands/gitty.md",
		"---\ndescription: Runs git steps. Use when committing.\nallowed-tools: Bash(git commit:*), Read\n---\n\n"+
			"## Overview\nx\n\n## Usage\nx\n\n## Arguments\nx\n\n## Examples\nx\n")

	result := CommandValidator{}.Validate(path)
	for _, i := range result.Issues {
		if strings.Contains(i.Message, "Unknown tool") {
			t.Errorf("Bash with arguments should be accepted: %s", i.Message)
		}
	}
}

func TestRuleValidator_Valid(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteRule(t, dir, "naming-conventions")

	result := RuleValidator{}.Validate(path)
	if !result.IsValid() {
		t.Errorf("expected valid, got: %s", issueMessages(result))
	}
}

func TestRuleValidator_GlobList(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "rules/list-globs.md",
		"---\nglobs:\n  - \"**/*.go\"\n---\n\n## Guidelines\nx\n")

	result := RuleValidator{}.Validate(path)
	if !strings.Contains(issueMessages(result), "Globs must be a string, not a list") {
		t.Errorf("missing glob list error: %s", issueMessages(result))
	}
}

func TestRuleValidator_NoWildcard(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "rules/plain-globs.md",
		"---\nglobs: \"main.go\"\n---\n\n## Guidelines\nx\n")

	result := RuleValidator{}.Validate(path)
	if result.HasErrors() {
		t.Fatalf("wildcard-free glob should only warn: %s", issueMessages(result))
	}
	if !strings.Contains(issueMessages(result), "contains no wildcard characters") {
		t.Errorf("missing wildcard warning: %s", issueMessages(result))
	}
}

func TestRuleValidator_InvalidGlobSyntax(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "rules/broken-globs.md",
		"---\nglobs: \"**/*.{go\"\n---\n\n## Guidelines\nx\n")

	result := RuleValidator{}.Validate(path)
	if !strings.Contains(issueMessages(result), "Invalid glob pattern") {
		t.Errorf("missing glob syntax error: %s", issueMessages(result))
	}
}

func TestKebabCaseValidator(t *testing.T) {
	v := KebabCaseValidator{}

	if v.CanValidate("docs/README.md") {
		t.Error("README.md should be exempt")
	}
	if !v.CanValidate("docs/MyGuide.md") {
		t.Error("MyGuide.md should be handled")
	}

	result := v.Validate("docs/MyGuide.md")
	if !strings.Contains(issueMessages(result), "Filename must use kebab-case") {
		t.Errorf("missing kebab-case error: %s", issueMessages(result))
	}
	if !strings.Contains(result.Issues[0].Suggestion, "my-guide.md") {
		t.Errorf("suggestion should propose my-guide.md: %s", result.Issues[0].Suggestion)
	}

	good := v.Validate("docs/my-guide.md")
	if !good.IsValid() {
		t.Errorf("my-guide.md should pass: %s", issueMessages(good))
	}
}

func TestSkillPackageValidator(t *testing.T) {
	result := SkillPackageValidator{}.Validate("dist/extract.skill")
	if !strings.Contains(issueMessages(result), "Prohibited .skill package") {
		t.Errorf("missing package error: %s", issueMessages(result))
	}
}

func TestPluginVersionValidator(t *testing.T) {
	root := t.TempDir()
	dir := testutil.WritePlugin(t, root, "devkit")
	testutil.WriteFile(t, root, filepath.Join(".claude-plugin", "marketplace.json"),
		`{"name": "market", "version": "2.0.0", "plugins": [{"name": "devkit", "source": "devkit"}]}`)

	// WritePlugin pins plugin version 1.0.0, marketplace says 2.0.0
	result := PluginVersionValidator{}.Validate(filepath.Join(dir, ".claude-plugin", "plugin.json"))
	if !strings.Contains(issueMessages(result), "Version mismatch: plugin '1.0.0' != marketplace '2.0.0'") {
		t.Errorf("missing version mismatch: %s", issueMessages(result))
	}
}

func TestPluginJsonValidator(t *testing.T) {
	root := t.TempDir()
	dir := testutil.WritePlugin(t, root, "devkit")
	// An agent on disk that plugin.json does not register
	testutil.WriteAgent(t, dir, "stray-agent")

	path := filepath.Join(dir, ".claude-plugin", "plugin.json")
	result := PluginJsonValidator{}.Validate(path)
	if !strings.Contains(issueMessages(result), "Unregistered agent: 'stray-agent.md'") {
		t.Errorf("missing unregistered agent error: %s", issueMessages(result))
	}
}

func TestPluginJsonValidator_RegistrationPrefixStyles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "devkit")
	testutil.WriteAgent(t, dir, "dotted-agent")
	testutil.WriteAgent(t, dir, "bare-agent")
	// Both registration styles count: with and without the ./ prefix
	testutil.WriteFile(t, dir, filepath.Join(".claude-plugin", "plugin.json"),
		`{"name": "devkit", "agents": ["./agents/dotted-agent.md", "agents/bare-agent.md"]}`)

	path := filepath.Join(dir, ".claude-plugin", "plugin.json")
	result := PluginJsonValidator{}.Validate(path)
	if strings.Contains(issueMessages(result), "Unregistered") {
		t.Errorf("prefix style should not affect registration: %s", issueMessages(result))
	}
	if !result.IsValid() {
		t.Errorf("unexpected issues: %s", issueMessages(result))
	}
}

func TestPluginJsonValidator_MissingComponent(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, filepath.Join("ghost", ".claude-plugin", "plugin.json"),
		`{"name": "ghost", "agents": ["agents/missing.md"]}`)

	path := filepath.Join(root, "ghost", ".claude-plugin", "plugin.json")
	result := PluginJsonValidator{}.Validate(path)
	if !strings.Contains(issueMessages(result), "Agent not found: 'agents/missing.md'") {
		t.Errorf("missing component error: %s", issueMessages(result))
	}
}

func TestValidate_MissingFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "agents/no-fm.md", "# Just markdown\n")

	result := AgentValidator{}.Validate(path)
	if len(result.Issues) != 1 || result.Issues[0].Message != "Missing YAML frontmatter" {
		t.Errorf("expected single missing-frontmatter error, got: %s", issueMessages(result))
	}
	if result.Issues[0].Line != 1 {
		t.Errorf("line = %d, want 1", result.Issues[0].Line)
	}
}

func TestValidate_YAMLLintStopsParse(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "agents/bad-yaml.md",
		"---\nname: bad-yaml\ndescription: steps are (1): one, (2): two\ntools: Read\n---\n\n## Role\nx\n")

	result := AgentValidator{}.Validate(path)
	if !strings.Contains(issueMessages(result), "Potential YAML syntax error") {
		t.Errorf("missing lint error: %s", issueMessages(result))
	}
	// Lint errors stop validation before schema checks
	if strings.Contains(issueMessages(result), "Missing required field") {
		t.Errorf("schema checks should not run after lint errors: %s", issueMessages(result))
	}
}

func TestFilter(t *testing.T) {
	files := []string{"agents/a.md", "main.go", "skills/x/SKILL.md", "Makefile"}
	got := Filter(files)
	if len(got) != 2 {
		t.Errorf("Filter() = %v, want 2 component files", got)
	}
}
