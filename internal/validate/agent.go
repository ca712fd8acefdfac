package validate

import (
	"fmt"
	"path/filepath"
	"strings"
)

// AgentValidator checks agent prompt files under agents/.
type AgentValidator struct{}

func (AgentValidator) ComponentType() string { return "agent" }

func (AgentValidator) CanValidate(path string) bool {
	return AgentPattern.MatchString(filepath.ToSlash(path))
}

var agentSchema = schema{
	required: []string{"name", "description", "tools"},
	optional: map[string]bool{
		"model":          true,
		"permissionMode": true,
		"skills":         true,
	},
}

func (v AgentValidator) Validate(path string) *Result {
	result := NewResult(path, v.ComponentType())
	doc, body, _ := parseDocument(path, result)
	if doc == nil {
		return result
	}

	checkSchema(doc, agentSchema, result)
	checkCommonFields(doc, result)

	if tools, ok := doc.Fields["tools"]; ok {
		checkTools(tools, "tools", doc.Line("tools", 0), result)
	}
	if model, ok := doc.Fields["model"]; ok {
		v.checkModel(model, doc.Line("model", 0), result)
	}

	checkSections(body, AgentRequiredSections, AgentRecommendedSections, result)
	return result
}

// checkModel applies the agent model rules: only opus, sonnet, and haiku
// are accepted, and inherit draws a warning.
func (AgentValidator) checkModel(value any, line int, result *Result) {
	model, ok := value.(string)
	if !ok {
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("model should be a string, got %s", typeName(value)),
			Line:       line,
			Field:      "model",
			Suggestion: fmt.Sprintf("Use one of: %s", sortedKeys(AgentValidModels)),
		})
		return
	}

	if strings.ToLower(model) == "inherit" {
		result.AddWarning(Issue{
			Message:    "'inherit' model value is not recommended for agents",
			Line:       line,
			Field:      "model",
			Suggestion: fmt.Sprintf("Explicitly specify model for better control: %s", sortedKeys(AgentValidModels)),
		})
		return
	}

	if !AgentValidModels[strings.ToLower(model)] {
		result.AddWarning(Issue{
			Message:    fmt.Sprintf("Invalid model value: '%s'", model),
			Line:       line,
			Field:      "model",
			Suggestion: fmt.Sprintf("Use one of: %s", sortedKeys(AgentValidModels)),
		})
	}
}
