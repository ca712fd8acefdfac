package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/claudeware/plugctl/internal/validate"
)

// JSONReporter emits the result batch as a single JSON document.
type JSONReporter struct {
	w io.Writer
}

type jsonSummary struct {
	TotalFiles    int `json:"total_files"`
	FilesValid    int `json:"files_valid"`
	TotalErrors   int `json:"total_errors"`
	TotalWarnings int `json:"total_warnings"`
}

type jsonIssue struct {
	Severity   string  `json:"severity"`
	Message    string  `json:"message"`
	LineNumber *int    `json:"line_number"`
	Field      *string `json:"field"`
	Suggestion *string `json:"suggestion"`
}

type jsonResult struct {
	File          string      `json:"file"`
	ComponentType string      `json:"component_type"`
	IsValid       bool        `json:"is_valid"`
	Issues        []jsonIssue `json:"issues"`
}

type jsonOutput struct {
	Summary jsonSummary  `json:"summary"`
	Results []jsonResult `json:"results"`
}

func (j *JSONReporter) Report(results []*validate.Result) int {
	s := summarize(results)
	out := jsonOutput{
		Summary: jsonSummary{
			TotalFiles:    s.totalFiles,
			FilesValid:    s.filesValid,
			TotalErrors:   s.totalErrors,
			TotalWarnings: s.totalWarnings,
		},
		Results: make([]jsonResult, 0, len(results)),
	}

	for _, r := range results {
		jr := jsonResult{
			File:          r.FilePath,
			ComponentType: r.ComponentType,
			IsValid:       r.IsValid(),
			Issues:        make([]jsonIssue, 0, len(r.Issues)),
		}
		for _, issue := range r.Issues {
			ji := jsonIssue{
				Severity: string(issue.Severity),
				Message:  issue.Message,
			}
			if issue.Line > 0 {
				line := issue.Line
				ji.LineNumber = &line
			}
			if issue.Field != "" {
				field := issue.Field
				ji.Field = &field
			}
			if issue.Suggestion != "" {
				suggestion := issue.Suggestion
				ji.Suggestion = &suggestion
			}
			jr.Issues = append(jr.Issues, ji)
		}
		out.Results = append(out.Results, jr)
	}

	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(j.w, `{"error": %q}`, err.Error())
	}

	if s.totalErrors > 0 {
		return 1
	}
	return 0
}
