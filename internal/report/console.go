package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/claudeware/plugctl/internal/validate"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// ConsoleReporter prints results as a human-readable listing. With color
// disabled it doubles as the plain format.
type ConsoleReporter struct {
	w     io.Writer
	opts  Options
	color bool
}

func (c *ConsoleReporter) render(style lipgloss.Style, text string) string {
	if c.color {
		return style.Render(text)
	}
	return text
}

func (c *ConsoleReporter) Report(results []*validate.Result) int {
	for _, result := range results {
		c.reportResult(result)
	}
	c.reportSummary(summarize(results))

	if summarize(results).totalErrors > 0 {
		return 1
	}
	return 0
}

func (c *ConsoleReporter) reportResult(result *validate.Result) {
	if len(result.Issues) == 0 && !c.opts.Verbose {
		return
	}

	status := c.render(successStyle, "✓")
	if !result.IsValid() {
		status = c.render(errorStyle, "✗")
	}
	fmt.Fprintf(c.w, "\n%s %s (%s)\n", status, result.FilePath, result.ComponentType)

	for _, issue := range result.Issues {
		c.reportIssue(issue)
	}
}

func (c *ConsoleReporter) reportIssue(issue validate.Issue) {
	if c.opts.Quiet && issue.Severity == validate.SeverityWarning {
		return
	}

	var symbol string
	switch issue.Severity {
	case validate.SeverityError:
		symbol = c.render(errorStyle, "✗")
	case validate.SeverityWarning:
		symbol = c.render(warningStyle, "⚠")
	default:
		symbol = c.render(infoStyle, "ℹ")
	}

	location := "frontmatter"
	if issue.Line > 0 {
		location = fmt.Sprintf("line %d", issue.Line)
	}
	field := ""
	if issue.Field != "" {
		field = fmt.Sprintf("[%s]", issue.Field)
	}

	fmt.Fprintf(c.w, "  %s %s%s: %s\n", symbol, location, field, issue.Message)
	if issue.Suggestion != "" {
		fmt.Fprintf(c.w, "    %s %s\n", c.render(infoStyle, "→"), issue.Suggestion)
	}
}

func (c *ConsoleReporter) reportSummary(s summary) {
	fmt.Fprintf(c.w, "\n%s\n", strings.Repeat("─", 60))

	switch {
	case s.totalErrors == 0 && s.totalWarnings == 0:
		msg := fmt.Sprintf("✓ All %d file(s) validated successfully", s.totalFiles)
		fmt.Fprintln(c.w, c.render(successStyle, msg))
	case s.totalErrors == 0:
		msg := fmt.Sprintf("✓ %d/%d file(s) valid with %d warning(s)", s.filesValid, s.totalFiles, s.totalWarnings)
		fmt.Fprintln(c.w, c.render(warningStyle, msg))
	default:
		var parts []string
		if s.totalErrors > 0 {
			parts = append(parts, fmt.Sprintf("%d error(s)", s.totalErrors))
		}
		if s.totalWarnings > 0 {
			parts = append(parts, fmt.Sprintf("%d warning(s)", s.totalWarnings))
		}
		msg := fmt.Sprintf("✗ Validation failed: %s", strings.Join(parts, ", "))
		fmt.Fprintln(c.w, c.render(errorStyle, msg))
	}
}
