package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// KebabCaseValidator enforces kebab-case filenames for Markdown files,
// exempting standard documentation names like README.md.
type KebabCaseValidator struct{}

func (KebabCaseValidator) ComponentType() string { return "naming" }

func (KebabCaseValidator) CanValidate(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".md") {
		return false
	}
	if KebabCaseExemptFiles[filepath.Base(path)] {
		return false
	}
	return MarkdownFilePattern.MatchString(filepath.ToSlash(path))
}

func (v KebabCaseValidator) Validate(path string) *Result {
	result := NewResult(path, v.ComponentType())

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !KebabCasePattern.MatchString(stem) {
		result.AddError(Issue{
			Message:    fmt.Sprintf("Filename must use kebab-case: '%s'", filepath.Base(path)),
			Suggestion: fmt.Sprintf("Rename to '%s.md' or similar", toKebabCase(stem)),
		})
	}
	return result
}

var (
	camelBoundary  = regexp.MustCompile(`([a-z])([A-Z])`)
	multipleHyphen = regexp.MustCompile(`-+`)
)

// toKebabCase converts a filename stem to kebab-case, best effort
func toKebabCase(name string) string {
	out := strings.ReplaceAll(name, "_", "-")
	out = strings.ToLower(camelBoundary.ReplaceAllString(out, "$1-$2"))
	out = multipleHyphen.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
