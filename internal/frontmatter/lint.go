package frontmatter

import (
	"fmt"
	"regexp"
	"strings"
)

// LintIssue is a finding from the pre-parse YAML checks.
type LintIssue struct {
	Line       int
	Message    string
	Suggestion string
	// Warning marks advisory findings that do not block parsing
	Warning bool
}

var (
	parenKeyPattern   = regexp.MustCompile(`\([^)]+\):`)
	closeParenPattern = regexp.MustCompile(`\):`)
	numParenPattern   = regexp.MustCompile(`\([0-9]+\)`)
)

// Lint runs heuristic YAML checks that catch mistakes the parser reports
// poorly, mainly unquoted values containing '(N):' sequences which YAML reads
// as nested keys. Error-level findings mean the block should not be parsed.
func (b *Block) Lint() []LintIssue {
	var issues []LintIssue

	for i, line := range strings.Split(b.Source, "\n") {
		lineNum := i + b.StartLine
		stripped := strings.TrimSpace(line)

		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		// Bare keys are fine
		if strings.HasSuffix(stripped, ":") {
			continue
		}

		// Unquoted '(N):' reads as a key-value separator mid-string
		if m := parenKeyPattern.FindStringIndex(stripped); m != nil {
			before := stripped[:m[0]]
			quoteCount := strings.Count(before, `"`) + strings.Count(before, `'`)
			// Odd count means we are inside a quoted continuation
			if quoteCount%2 == 0 {
				issues = append(issues, LintIssue{
					Line:       lineNum,
					Message:    fmt.Sprintf("Potential YAML syntax error: '%s' in unquoted string", stripped[m[0]:m[1]]),
					Suggestion: "Use single quotes instead of double quotes for strings containing '):' patterns (e.g., '(1):'). YAML interprets '):' as a key-value separator in unquoted strings.",
				})
			}
		}

		if strings.Contains(stripped, ":") && !strings.HasPrefix(stripped, "- ") {
			if strings.HasPrefix(stripped, `"`) || strings.HasPrefix(stripped, `'`) {
				if strings.Count(stripped, `'`)%2 != 0 || strings.Count(stripped, `"`)%2 != 0 {
					issues = append(issues, LintIssue{
						Line:       lineNum,
						Message:    fmt.Sprintf("Unbalanced quotes in YAML value at line %d", lineNum),
						Suggestion: "Ensure all quotes are properly closed",
					})
				}
			}
		}

		// Some parsers mishandle '(N):' even inside double quotes
		if strings.Contains(stripped, `"`) {
			if closeParenPattern.MatchString(stripped) || numParenPattern.MatchString(stripped) {
				if strings.Count(stripped, `"`) >= 2 {
					issues = append(issues, LintIssue{
						Line:       lineNum,
						Message:    "Double-quoted string contains '):' pattern which may cause issues with some YAML parsers",
						Suggestion: "Consider using single quotes instead of double quotes for strings containing '):' patterns (e.g., '(1):', '(2):')",
						Warning:    true,
					})
				}
			}
		}
	}
	return issues
}

// HasErrors reports whether any lint finding is error level
func HasErrors(issues []LintIssue) bool {
	for _, issue := range issues {
		if !issue.Warning {
			return true
		}
	}
	return false
}
