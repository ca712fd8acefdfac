package frontmatter

import (
	"errors"
	"strings"
	"testing"
)

func TestExtract_Missing(t *testing.T) {
	_, err := Extract("# Just a heading\n\nNo frontmatter here.\n")
	if !errors.Is(err, ErrMissing) {
		t.Errorf("expected ErrMissing, got %v", err)
	}
}

func TestExtract_Unclosed(t *testing.T) {
	_, err := Extract("---\nname: example\ndescription: never closed\n")
	if !errors.Is(err, ErrUnclosed) {
		t.Errorf("expected ErrUnclosed, got %v", err)
	}
}

func TestExtract_Valid(t *testing.T) {
	block, err := Extract("---\nname: example\n---\n\n# Body\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if block.Source != "name: example" {
		t.Errorf("source = %q", block.Source)
	}
	if block.StartLine != 2 {
		t.Errorf("start line = %d", block.StartLine)
	}
	if !strings.Contains(block.Body, "# Body") {
		t.Errorf("body = %q", block.Body)
	}
}

func TestExtract_CloseAtEOF(t *testing.T) {
	block, err := Extract("---\nname: example\n---")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if block.Source != "name: example" {
		t.Errorf("source = %q", block.Source)
	}
}

func TestParse_FieldLines(t *testing.T) {
	block, err := Extract("---\nname: example\ndescription: a thing\ntools: Read, Write\n---\nbody\n")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := block.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Fields["name"] != "example" {
		t.Errorf("name = %v", doc.Fields["name"])
	}
	if doc.Lines["name"] != 2 {
		t.Errorf("name line = %d, want 2", doc.Lines["name"])
	}
	if doc.Lines["tools"] != 4 {
		t.Errorf("tools line = %d, want 4", doc.Lines["tools"])
	}
}

func TestParse_Empty(t *testing.T) {
	block := &Block{Source: "", StartLine: 2}
	doc, err := block.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Fields) != 0 {
		t.Errorf("expected empty fields, got %v", doc.Fields)
	}
}

func TestParse_NotMapping(t *testing.T) {
	block := &Block{Source: "- one\n- two", StartLine: 2}
	_, err := block.Parse()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	block := &Block{Source: "name: [unclosed", StartLine: 2}
	_, err := block.Parse()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestLint_UnquotedParenPattern(t *testing.T) {
	block := &Block{
		Source:    "name: example\ndescription: steps are (1): do this, (2): do that",
		StartLine: 2,
	}
	issues := block.Lint()
	if !HasErrors(issues) {
		t.Fatal("expected an error-level finding")
	}
	found := false
	for _, issue := range issues {
		if strings.Contains(issue.Message, "unquoted string") && issue.Line == 3 {
			found = true
		}
	}
	if !found {
		t.Errorf("missing unquoted-string finding on line 3: %+v", issues)
	}
}

func TestLint_UnbalancedQuotes(t *testing.T) {
	block := &Block{
		Source:    "description: 'starts: quoted but never ends",
		StartLine: 2,
	}
	// The value line itself starts with the key, so simulate a continuation
	block.Source = "'continuation: with odd quotes"
	issues := block.Lint()
	if !HasErrors(issues) {
		t.Errorf("expected an error-level finding, got %+v", issues)
	}
}

func TestLint_DoubleQuotedParenWarning(t *testing.T) {
	block := &Block{
		Source:    `description: "steps (1) and (2) follow"`,
		StartLine: 2,
	}
	issues := block.Lint()
	if HasErrors(issues) {
		t.Errorf("expected warnings only, got %+v", issues)
	}
	if len(issues) == 0 {
		t.Fatal("expected a warning finding")
	}
	if !issues[0].Warning {
		t.Error("expected Warning flag set")
	}
}

func TestLint_CleanBlock(t *testing.T) {
	block := &Block{
		Source:    "name: example\ndescription: plain text value\ntools:\n  - Read",
		StartLine: 2,
	}
	if issues := block.Lint(); len(issues) != 0 {
		t.Errorf("expected no findings, got %+v", issues)
	}
}
