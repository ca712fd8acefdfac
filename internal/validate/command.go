package validate

import (
	"fmt"
	"path/filepath"
	"sort"
)

// CommandValidator checks slash command files under commands/.
type CommandValidator struct{}

func (CommandValidator) ComponentType() string { return "command" }

func (CommandValidator) CanValidate(path string) bool {
	return CommandPattern.MatchString(filepath.ToSlash(path))
}

var commandSchema = schema{
	required: []string{"description", "allowed-tools"},
	optional: map[string]bool{
		"argument-hint":            true,
		"model":                    true,
		"disable-model-invocation": true,
	},
}

func (v CommandValidator) Validate(path string) *Result {
	result := NewResult(path, v.ComponentType())
	doc, body, _ := parseDocument(path, result)
	if doc == nil {
		return result
	}

	checkSchema(doc, commandSchema, result)
	checkCommonFields(doc, result)

	if tools, ok := doc.Fields["allowed-tools"]; ok {
		checkTools(tools, "allowed-tools", doc.Line("allowed-tools", 0), result)
	}
	if model, ok := doc.Fields["model"]; ok {
		checkModel(model, "model", doc.Line("model", 0), result, true)
	}
	if dmi, ok := doc.Fields["disable-model-invocation"]; ok {
		checkBoolean(dmi, "disable-model-invocation", doc.Line("disable-model-invocation", 0), result)
	}

	checkSections(body, CommandRequiredSections, nil, result)
	v.checkSectionOrder(body, result)
	return result
}

var commandOrderHint = "Overview → Usage → Arguments → Current Context → Execution Steps → Execution Instructions → Integration with Sub-agents → Examples"

type foundSection struct {
	orderIndex int
	pos        int
	name       string
}

// checkSectionOrder verifies the known command sections appear in their
// canonical order. Unknown sections may appear anywhere.
func (CommandValidator) checkSectionOrder(body string, result *Result) {
	var found []foundSection
	for idx, section := range CommandSectionsOrder {
		for _, loc := range section.Pattern.FindAllStringIndex(body, -1) {
			found = append(found, foundSection{orderIndex: idx, pos: loc[0], name: section.Name})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	lastOrder := -1
	for _, section := range found {
		if section.orderIndex < lastOrder {
			// Name the section this one should precede
			var expectedBefore string
			for _, prev := range found {
				if prev.pos < section.pos && prev.orderIndex > section.orderIndex {
					expectedBefore = prev.name
					break
				}
			}
			suggestion := fmt.Sprintf("Correct order: %s", commandOrderHint)
			if expectedBefore != "" {
				suggestion = fmt.Sprintf("Move '## %s' before '## %s' (correct order: %s)",
					section.name, expectedBefore, commandOrderHint)
			}
			result.AddError(Issue{
				Message:    fmt.Sprintf("Section '## %s' is out of order", section.name),
				Suggestion: suggestion,
			})
		} else {
			lastOrder = section.orderIndex
		}
	}
}
