package validate

import "fmt"

// Severity levels for validation issues.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single validation finding in a file.
type Issue struct {
	Severity Severity
	FilePath string
	Message  string
	// Line is the 1-based file line, 0 when the issue has no location
	Line       int
	Field      string
	Suggestion string
}

func (i Issue) String() string {
	location := "frontmatter"
	if i.Line > 0 {
		location = fmt.Sprintf("line %d", i.Line)
	}
	field := ""
	if i.Field != "" {
		field = fmt.Sprintf(" [%s]", i.Field)
	}
	return fmt.Sprintf("%s%s: %s", location, field, i.Message)
}

// Result aggregates validation findings for a single file.
type Result struct {
	FilePath      string
	ComponentType string
	Issues        []Issue
}

// NewResult creates an empty result for a file
func NewResult(path, componentType string) *Result {
	return &Result{FilePath: path, ComponentType: componentType}
}

// IsValid reports whether no error-level issues were found
func (r *Result) IsValid() bool {
	return !r.HasErrors()
}

// HasErrors reports whether any error-level issues exist
func (r *Result) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any warning-level issues exist
func (r *Result) HasWarnings() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Errors returns only error-level issues
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns only warning-level issues
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(sev Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// AddIssue appends an issue, filling in the result's file path
func (r *Result) AddIssue(issue Issue) {
	issue.FilePath = r.FilePath
	r.Issues = append(r.Issues, issue)
}

// AddError appends an error-level issue
func (r *Result) AddError(issue Issue) {
	issue.Severity = SeverityError
	r.AddIssue(issue)
}

// AddWarning appends a warning-level issue
func (r *Result) AddWarning(issue Issue) {
	issue.Severity = SeverityWarning
	r.AddIssue(issue)
}
