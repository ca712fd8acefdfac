package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// SkillValidator checks SKILL.md files and their surrounding directories.
type SkillValidator struct{}

func (SkillValidator) ComponentType() string { return "skill" }

func (SkillValidator) CanValidate(path string) bool {
	return SkillPattern.MatchString(filepath.ToSlash(path))
}

var skillSchema = schema{
	required: []string{"name", "description", "allowed-tools"},
	optional: map[string]bool{
		"license":       true,
		"compatibility": true,
		"metadata":      true,
	},
	prohibited: SkillProhibitedFields,
}

func (v SkillValidator) Validate(path string) *Result {
	result := NewResult(path, v.ComponentType())
	doc, body, content := parseDocument(path, result)
	if doc == nil {
		return result
	}

	checkSchema(doc, skillSchema, result)
	checkCommonFields(doc, result)

	// The skill name must match its directory
	if name, ok := doc.Fields["name"]; ok {
		if nameStr, isStr := name.(string); isStr {
			parentDir := filepath.Base(filepath.Dir(path))
			if nameStr != parentDir {
				result.AddError(Issue{
					Message:    fmt.Sprintf("Name mismatch: frontmatter has '%s' but directory is '%s'", nameStr, parentDir),
					Line:       doc.Line("name", 0),
					Field:      "name",
					Suggestion: fmt.Sprintf("Rename directory to '%s' or change name to '%s'", nameStr, parentDir),
				})
			}
		}
	}

	if tools, ok := doc.Fields["allowed-tools"]; ok {
		checkTools(tools, "allowed-tools", doc.Line("allowed-tools", 0), result)
	}
	if score, ok := doc.Fields["context7_trust_score"]; ok {
		v.checkTrustScore(score, doc.Line("context7_trust_score", 0), result)
	}

	checkSections(body, SkillRequiredSections, SkillRecommendedSections, result)
	v.checkIOExamples(body, result)
	v.checkProhibitedFiles(filepath.Dir(path), result)
	v.checkDirectoryStructure(filepath.Dir(path), result)
	v.checkFileReferences(body, result)
	v.checkSize(content, result)

	return result
}

func (SkillValidator) checkTrustScore(value any, line int, result *Result) {
	var score float64
	switch n := value.(type) {
	case int:
		score = float64(n)
	case float64:
		score = n
	default:
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("context7_trust_score should be numeric, got %s", typeName(value)),
			Line:       line,
			Field:      "context7_trust_score",
			Suggestion: "Use a number between 0 and 10",
		})
		return
	}
	if score < 0 || score > 10 {
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("context7_trust_score out of range: %v", value),
			Line:       line,
			Field:      "context7_trust_score",
			Suggestion: "Use a value between 0 and 10",
		})
	}
}

var (
	ioSubsectionPattern = regexp.MustCompile(`(?im)^#{2,3}\s+(?:Input|Output|Example\s+\d+|Example:)`)
	codeBlockPattern    = regexp.MustCompile("```[a-zA-Z0-9]*\\n[\\s\\S]*?\\n```")
	examplesHeading     = regexp.MustCompile(`(?im)^#{1,3}\s+Examples`)
)

// checkIOExamples warns when an Examples section carries no concrete
// input/output demonstrations.
func (SkillValidator) checkIOExamples(body string, result *Result) {
	loc := examplesHeading.FindStringIndex(body)
	if loc == nil {
		return
	}
	section := body[loc[0]:]
	if !ioSubsectionPattern.MatchString(section) && !codeBlockPattern.MatchString(section) {
		result.AddWarning(Issue{
			Message:    "Missing Input/Output examples in Examples section",
			Suggestion: "Add concrete Input/Output examples with code blocks to demonstrate usage",
		})
	}
}

func (SkillValidator) checkProhibitedFiles(skillDir string, result *Result) {
	for _, filename := range SkillProhibitedFiles {
		if _, err := os.Stat(filepath.Join(skillDir, filename)); err == nil {
			result.AddError(Issue{
				Message:    fmt.Sprintf("Prohibited file found: %s", filename),
				Suggestion: fmt.Sprintf("Remove %s from skill directory", filename),
			})
		}
	}
}

// checkDirectoryStructure enforces the skill layout: SKILL.md at the root
// plus optional scripts/, references/, and assets/ directories.
func (SkillValidator) checkDirectoryStructure(skillDir string, result *Result) {
	entries, err := os.ReadDir(skillDir)
	if err != nil {
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		name := entry.Name()
		if name == "SKILL.md" || strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			if !SkillAllowedSubdirs[name] {
				result.AddError(Issue{
					Message:    fmt.Sprintf("Non-standard directory found: '%s/'", name),
					Suggestion: fmt.Sprintf("Move contents to one of the allowed subdirectories: %s/", sortedKeys(SkillAllowedSubdirs)),
				})
			}
		} else {
			result.AddError(Issue{
				Message:    fmt.Sprintf("Non-standard file at skill root: '%s'", name),
				Suggestion: fmt.Sprintf("Move '%s' into scripts/, references/, or assets/", name),
			})
		}
	}
}

var (
	mdLinkPattern   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	barePathPattern = regexp.MustCompile(`(?im)^(?:\s*[-*]?\s*)?(?:See|Run|Use|Check|Load|Read|Execute)?[\s:]*(scripts/|references/|assets/)(\S+)`)
)

// checkFileReferences flags bundled-resource references deeper than one
// level below the skill root, and any parent-directory traversal.
func (v SkillValidator) checkFileReferences(body string, result *Result) {
	checked := map[string]bool{}

	for _, m := range mdLinkPattern.FindAllStringSubmatch(body, -1) {
		path := strings.TrimSpace(m[2])
		if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") ||
			strings.HasPrefix(path, "#") || strings.HasPrefix(path, "mailto:") ||
			strings.HasPrefix(path, "/") {
			continue
		}
		v.checkPathDepth(path, checked, result)
	}

	for _, m := range barePathPattern.FindAllStringSubmatch(body, -1) {
		v.checkPathDepth(m[1]+m[2], checked, result)
	}
}

func (SkillValidator) checkPathDepth(path string, checked map[string]bool, result *Result) {
	path = strings.TrimLeft(path, "./")
	if checked[path] {
		return
	}
	checked[path] = true

	parts := strings.Split(path, "/")
	if !SkillAllowedSubdirs[parts[0]] {
		return
	}

	if len(parts) > 2 {
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("Deep file reference: '%s' (%d levels deep)", path, len(parts)-1),
			Suggestion: "Keep references one level deep (e.g., 'references/FILE.md', not 'references/subdir/file.md')",
		})
	}
	for _, part := range parts {
		if part == ".." {
			result.AddError(Issue{
				Message:    fmt.Sprintf("Invalid file reference: '%s' references parent directory", path),
				Suggestion: "Use relative paths within the skill directory only",
			})
			break
		}
	}
}

// checkSize warns when SKILL.md exceeds the progressive disclosure limits
func (SkillValidator) checkSize(content string, result *Result) {
	lineCount := strings.Count(content, "\n") + 1
	if lineCount > MaxSkillLines {
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("SKILL.md is too long: %d lines (max %d)", lineCount, MaxSkillLines),
			Suggestion: "Move detailed content to separate files in references/",
		})
	}
	if len(content) > MaxSkillCharacters {
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("SKILL.md is too large: %d characters (max %d, ~5000 tokens)", len(content), MaxSkillCharacters),
			Suggestion: "Move detailed content to separate files in references/",
		})
	}
}
