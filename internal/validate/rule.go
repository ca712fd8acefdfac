package validate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// RuleValidator checks rule files under rules/.
type RuleValidator struct{}

func (RuleValidator) ComponentType() string { return "rule" }

func (RuleValidator) CanValidate(path string) bool {
	return RulePattern.MatchString(filepath.ToSlash(path))
}

var ruleSchema = schema{
	required: []string{"globs"},
	optional: map[string]bool{},
}

func (v RuleValidator) Validate(path string) *Result {
	result := NewResult(path, v.ComponentType())
	doc, body, content := parseDocument(path, result)
	if doc == nil {
		return result
	}

	// Rules carry no name or description fields, so only the schema check
	// applies besides the rule-specific ones.
	checkSchema(doc, ruleSchema, result)

	if globs, ok := doc.Fields["globs"]; ok {
		v.checkGlobs(globs, doc.Line("globs", 0), result)
	}
	v.checkFilename(path, result)
	checkSections(body, RuleRequiredSections, RuleRecommendedSections, result)
	v.checkSize(content, result)

	return result
}

// checkGlobs validates the globs field. Claude Code rules want a single
// string, not a YAML list.
func (RuleValidator) checkGlobs(value any, line int, result *Result) {
	switch globs := value.(type) {
	case string:
		if strings.TrimSpace(globs) == "" {
			result.AddError(Issue{
				Message:    "Empty globs value",
				Line:       line,
				Field:      "globs",
				Suggestion: "Provide a glob pattern (e.g., '**/*.java')",
			})
			return
		}
		if !strings.ContainsAny(globs, "*?{[") {
			result.AddWarning(Issue{
				Message:    fmt.Sprintf("Globs value '%s' contains no wildcard characters", globs),
				Line:       line,
				Field:      "globs",
				Suggestion: "Use glob patterns with wildcards (e.g., '**/*.java')",
			})
			return
		}
		for _, pattern := range strings.Split(globs, ",") {
			pattern = strings.TrimSpace(pattern)
			if pattern != "" && !doublestar.ValidatePattern(pattern) {
				result.AddError(Issue{
					Message:    fmt.Sprintf("Invalid glob pattern: '%s'", pattern),
					Line:       line,
					Field:      "globs",
					Suggestion: "Fix the glob syntax (unbalanced brackets or braces)",
				})
			}
		}
	case []any:
		result.AddError(Issue{
			Message:    "Globs must be a string, not a list",
			Line:       line,
			Field:      "globs",
			Suggestion: `Use a single string value (e.g., globs: "**/*.java"). YAML arrays may cause loading issues with Claude Code rules.`,
		})
	default:
		result.AddError(Issue{
			Message:    fmt.Sprintf("Globs must be a string, got %s", typeName(value)),
			Line:       line,
			Field:      "globs",
			Suggestion: `Use a string value (e.g., globs: "**/*.java")`,
		})
	}
}

func (RuleValidator) checkFilename(path string, result *Result) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !KebabCasePattern.MatchString(stem) {
		result.AddError(Issue{
			Message:    fmt.Sprintf("Rule filename must be kebab-case: '%s'", filepath.Base(path)),
			Suggestion: "Rename to kebab-case (e.g., 'naming-conventions.md')",
		})
	}
}

func (RuleValidator) checkSize(content string, result *Result) {
	lineCount := strings.Count(content, "\n") + 1
	if lineCount > MaxRuleLines {
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("Rule file is too long: %d lines (max %d)", lineCount, MaxRuleLines),
			Suggestion: "Keep rule files concise and focused",
		})
	}
}
