// Package validate checks Claude Code plugin content for schema and
// structural compliance. Each component type (skill, agent, command, rule)
// has a validator that parses the file's YAML frontmatter, checks it against
// the type's schema, and inspects the Markdown body for required sections.
package validate

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/claudeware/plugctl/internal/frontmatter"
	"github.com/claudeware/plugctl/internal/logging"
)

// Validator checks one class of files.
type Validator interface {
	// ComponentType names the component class in reports
	ComponentType() string
	// CanValidate reports whether this validator handles the file
	CanValidate(path string) bool
	// Validate runs all checks and returns the findings
	Validate(path string) *Result
}

// schema lists the frontmatter fields a component type accepts.
type schema struct {
	required   []string
	optional   map[string]bool
	prohibited []string
}

func (s schema) known(field string) bool {
	for _, f := range s.required {
		if f == field {
			return true
		}
	}
	return s.optional[field]
}

func (s schema) isProhibited(field string) bool {
	for _, f := range s.prohibited {
		if f == field {
			return true
		}
	}
	return false
}

// parseDocument reads a file, extracts its frontmatter, and runs the YAML
// lint checks. It returns a nil document when validation cannot continue;
// the blocking findings are already on the result. The third return is the
// full file content.
func parseDocument(path string, result *Result) (*frontmatter.Document, string, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		result.AddError(Issue{
			Message:    fmt.Sprintf("File not found: %s", path),
			Suggestion: "Verify the file path is correct",
		})
		return nil, "", ""
	}
	if !utf8.Valid(data) {
		result.AddError(Issue{
			Message:    "File is not valid UTF-8",
			Suggestion: "Ensure the file uses UTF-8 encoding",
		})
		return nil, "", ""
	}
	content := string(data)

	block, err := frontmatter.Extract(content)
	if err != nil {
		switch err {
		case frontmatter.ErrMissing:
			result.AddError(Issue{
				Message:    "Missing YAML frontmatter",
				Line:       1,
				Suggestion: `Add YAML frontmatter at the beginning: ---\nname: ...\n---`,
			})
		case frontmatter.ErrUnclosed:
			result.AddError(Issue{
				Message:    "Unclosed YAML frontmatter",
				Line:       1,
				Suggestion: "Add closing '---' after frontmatter",
			})
		}
		return nil, "", content
	}

	lintIssues := block.Lint()
	for _, li := range lintIssues {
		issue := Issue{Message: li.Message, Line: li.Line, Suggestion: li.Suggestion}
		if li.Warning {
			result.AddWarning(issue)
		} else {
			result.AddError(issue)
		}
	}
	if frontmatter.HasErrors(lintIssues) {
		return nil, block.Body, content
	}

	doc, err := block.Parse()
	if err != nil {
		parseErr, ok := err.(*frontmatter.ParseError)
		line := 1
		msg := err.Error()
		if ok {
			line = parseErr.Line
			msg = fmt.Sprintf("Invalid YAML syntax: %s", parseErr.Problem)
		}
		result.AddError(Issue{
			Message:    msg,
			Line:       line,
			Suggestion: "Fix the YAML syntax error",
		})
		return nil, block.Body, content
	}

	logging.Debug("parsed frontmatter", "path", path, "fields", len(doc.Fields))
	return doc, block.Body, content
}

// checkSchema flags prohibited, missing, and unknown frontmatter fields
func checkSchema(doc *frontmatter.Document, s schema, result *Result) {
	for _, field := range s.prohibited {
		if _, ok := doc.Fields[field]; ok {
			result.AddError(Issue{
				Message:    fmt.Sprintf("Prohibited field: '%s'", field),
				Line:       doc.Line(field, 0),
				Field:      field,
				Suggestion: fmt.Sprintf("Remove '%s' from frontmatter", field),
			})
		}
	}

	for _, field := range s.required {
		if _, ok := doc.Fields[field]; !ok {
			result.AddError(Issue{
				Message:    fmt.Sprintf("Missing required field: '%s'", field),
				Field:      field,
				Suggestion: fmt.Sprintf("Add '%s: value' to frontmatter", field),
			})
		}
	}

	for field := range doc.Fields {
		if !s.known(field) && !s.isProhibited(field) {
			result.AddWarning(Issue{
				Message:    fmt.Sprintf("Unknown field: '%s'", field),
				Line:       doc.Line(field, 0),
				Field:      field,
				Suggestion: fmt.Sprintf("Remove '%s' or verify it's needed", field),
			})
		}
	}
}

// checkCommonFields validates name, description, and compatibility values
func checkCommonFields(doc *frontmatter.Document, result *Result) {
	if name, ok := doc.Fields["name"]; ok {
		checkName(name, doc.Line("name", 0), result)
	}
	if desc, ok := doc.Fields["description"]; ok {
		checkDescription(desc, doc.Line("description", 0), result)
	}
	if compat, ok := doc.Fields["compatibility"]; ok {
		checkCompatibility(compat, doc.Line("compatibility", 0), result)
	}
}

func checkName(value any, line int, result *Result) {
	name, ok := value.(string)
	if !ok {
		result.AddError(Issue{
			Message:    fmt.Sprintf("Name must be a string, got %s", typeName(value)),
			Line:       line,
			Field:      "name",
			Suggestion: "Ensure name is a plain string value",
		})
		return
	}

	if len(name) > MaxNameLength {
		result.AddError(Issue{
			Message:    fmt.Sprintf("Name too long: %d characters (max %d)", len(name), MaxNameLength),
			Line:       line,
			Field:      "name",
			Suggestion: fmt.Sprintf("Shorten name to %d characters or less", MaxNameLength),
		})
	}

	if !KebabCasePattern.MatchString(name) {
		result.AddError(Issue{
			Message:    fmt.Sprintf("Invalid name format: '%s'", name),
			Line:       line,
			Field:      "name",
			Suggestion: "Use kebab-case (e.g., 'my-component-name')",
		})
	}

	if ReservedWords[strings.ToLower(name)] {
		result.AddError(Issue{
			Message:    fmt.Sprintf("Reserved word used as name: '%s'", name),
			Line:       line,
			Field:      "name",
			Suggestion: fmt.Sprintf("Choose a different name (reserved: %s...)", sortedSample(ReservedWords, 5)),
		})
	}
}

func checkDescription(value any, line int, result *Result) {
	desc, ok := value.(string)
	if !ok {
		result.AddError(Issue{
			Message:    fmt.Sprintf("Description must be a string, got %s", typeName(value)),
			Line:       line,
			Field:      "description",
			Suggestion: "Ensure description is a plain string value",
		})
		return
	}

	if len(desc) > MaxDescriptionLength {
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("Description too long: %d characters (max %d)", len(desc), MaxDescriptionLength),
			Line:       line,
			Field:      "description",
			Suggestion: fmt.Sprintf("Shorten description to %d characters", MaxDescriptionLength),
		})
	}

	lower := strings.ToLower(desc)
	hasWhat := containsAny(lower, WhatKeywords)
	hasWhen := containsAny(lower, WhenKeywords)
	if !hasWhat || !hasWhen {
		var missing []string
		if !hasWhat {
			missing = append(missing, "WHAT")
		}
		if !hasWhen {
			missing = append(missing, "WHEN")
		}
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("Description may be missing: %s information", strings.Join(missing, ", ")),
			Line:       line,
			Field:      "description",
			Suggestion: "Include what the component does AND when to use it",
		})
	}
}

func checkCompatibility(value any, line int, result *Result) {
	compat, ok := value.(string)
	if !ok {
		result.AddError(Issue{
			Message:    fmt.Sprintf("Compatibility must be a string, got %s", typeName(value)),
			Line:       line,
			Field:      "compatibility",
			Suggestion: "Ensure compatibility is a plain string value",
		})
		return
	}
	if len(compat) > MaxCompatibilityLength {
		result.AddError(Issue{
			Message:    fmt.Sprintf("Compatibility too long: %d characters (max %d)", len(compat), MaxCompatibilityLength),
			Line:       line,
			Field:      "compatibility",
			Suggestion: fmt.Sprintf("Shorten compatibility to %d characters or less", MaxCompatibilityLength),
		})
	}
}

// checkTools validates tool names. Tools with arguments like
// "Bash(git add:*)" are reduced to their base name.
func checkTools(value any, fieldName string, line int, result *Result) {
	var tools []string
	switch v := value.(type) {
	case string:
		for _, t := range strings.Split(v, ",") {
			tools = append(tools, strings.TrimSpace(t))
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				tools = append(tools, s)
			}
		}
	default:
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("%s should be a string or list, got %s", fieldName, typeName(value)),
			Line:       line,
			Field:      fieldName,
			Suggestion: "Use comma-separated string or YAML list",
		})
		return
	}

	for _, tool := range tools {
		base := strings.TrimSpace(strings.SplitN(tool, "(", 2)[0])
		if base != "" && !ValidTools[base] {
			result.AddWarning(Issue{
				Message:    fmt.Sprintf("Unknown tool: '%s'", base),
				Line:       line,
				Field:      fieldName,
				Suggestion: fmt.Sprintf("Valid tools: %s...", sortedSample(ValidTools, 5)),
			})
		}
	}
}

// checkModel validates a model value. Commands may also use full
// "claude-*" model names.
func checkModel(value any, fieldName string, line int, result *Result, allowFullNames bool) {
	model, ok := value.(string)
	if !ok {
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("%s should be a string, got %s", fieldName, typeName(value)),
			Line:       line,
			Field:      fieldName,
			Suggestion: fmt.Sprintf("Use one of: %s", sortedKeys(ValidModels)),
		})
		return
	}

	valid := ValidModels[strings.ToLower(model)]
	if allowFullNames {
		valid = valid || strings.HasPrefix(model, "claude-")
	}
	if !valid {
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("Invalid model value: '%s'", model),
			Line:       line,
			Field:      fieldName,
			Suggestion: fmt.Sprintf("Use one of: %s", sortedKeys(ValidModels)),
		})
	}
}

func checkBoolean(value any, fieldName string, line int, result *Result) {
	if _, ok := value.(bool); !ok {
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("%s should be a boolean, got %s", fieldName, typeName(value)),
			Line:       line,
			Field:      fieldName,
			Suggestion: "Use 'true' or 'false'",
		})
	}
}

// checkSections flags missing required sections as errors and missing
// recommended sections as warnings.
func checkSections(body string, required, recommended []sectionCheck, result *Result) {
	for _, section := range required {
		if !section.Pattern.MatchString(body) {
			result.AddError(Issue{
				Message:    fmt.Sprintf("Missing required section: '## %s'", section.Name),
				Suggestion: fmt.Sprintf("Add '## %s' section", section.Name),
			})
		}
	}
	for _, section := range recommended {
		if !section.Pattern.MatchString(body) {
			result.AddWarning(Issue{
				Message:    fmt.Sprintf("Missing recommended section: '## %s'", section.Name),
				Suggestion: fmt.Sprintf("Consider adding '## %s' section", section.Name),
			})
		}
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// typeName names a decoded YAML value's type the way users think of it
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int, int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "string"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}
