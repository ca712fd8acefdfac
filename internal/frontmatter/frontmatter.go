// Package frontmatter extracts and parses YAML frontmatter blocks from
// Markdown files. Line numbers in parse results and lint findings refer to
// the enclosing file, not the YAML block, so they can be reported directly.
package frontmatter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissing indicates the file does not begin with a frontmatter block
	ErrMissing = errors.New("missing YAML frontmatter")
	// ErrUnclosed indicates the opening delimiter has no matching close
	ErrUnclosed = errors.New("unclosed YAML frontmatter")
)

var closeDelim = regexp.MustCompile(`\n---[ \t\r]*(\n|$)`)

// Block is a raw frontmatter block split out of a Markdown file.
type Block struct {
	// Source is the YAML text between the delimiters
	Source string
	// StartLine is the file line of the first YAML line
	StartLine int
	// Body is the Markdown content after the closing delimiter
	Body string
}

// Extract splits content into its frontmatter block and body. The block must
// open on the first line of the file.
func Extract(content string) (*Block, error) {
	if !strings.HasPrefix(content, "---") {
		return nil, ErrMissing
	}
	rest := content[3:]
	loc := closeDelim.FindStringIndex(rest)
	if loc == nil {
		return nil, ErrUnclosed
	}
	src := strings.TrimPrefix(rest[:loc[0]], "\n")
	return &Block{
		Source:    src,
		StartLine: 2,
		Body:      rest[loc[1]:],
	}, nil
}

// Document is parsed frontmatter with per-field source locations.
type Document struct {
	Fields map[string]any
	// Lines maps each top-level key to its file line number
	Lines map[string]int
}

// Line returns the file line of a field, or fallback when unknown
func (d *Document) Line(field string, fallback int) int {
	if n, ok := d.Lines[field]; ok {
		return n
	}
	return fallback
}

// ParseError describes a YAML syntax failure with its file line.
type ParseError struct {
	Line    int
	Problem string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid YAML syntax: %s", e.Problem)
}

var yamlLinePattern = regexp.MustCompile(`line (\d+):`)

// Parse decodes the block into a Document. An empty block yields empty maps.
// A block whose top level is not a mapping is an error.
func (b *Block) Parse() (*Document, error) {
	doc := &Document{
		Fields: map[string]any{},
		Lines:  map[string]int{},
	}
	if strings.TrimSpace(b.Source) == "" {
		return doc, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(b.Source), &root); err != nil {
		return nil, b.parseError(err)
	}
	if len(root.Content) == 0 {
		return doc, nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, &ParseError{
			Line:    1,
			Problem: "frontmatter must be a YAML mapping",
		}
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valNode := mapping.Content[i+1]
		var value any
		if err := valNode.Decode(&value); err != nil {
			return nil, b.parseError(err)
		}
		doc.Fields[keyNode.Value] = value
		doc.Lines[keyNode.Value] = keyNode.Line + b.StartLine - 1
	}
	return doc, nil
}

func (b *Block) parseError(err error) *ParseError {
	line := 1
	problem := err.Error()
	if m := yamlLinePattern.FindStringSubmatch(problem); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			line = n + b.StartLine - 1
		}
	}
	problem = strings.TrimPrefix(problem, "yaml: ")
	return &ParseError{Line: line, Problem: problem}
}
