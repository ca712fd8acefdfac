package validate

import (
	"fmt"
	"path/filepath"
)

// SkillPackageValidator flags committed .skill package files. Packages are
// build outputs and never belong in the repository.
type SkillPackageValidator struct{}

func (SkillPackageValidator) ComponentType() string { return "prohibited" }

func (SkillPackageValidator) CanValidate(path string) bool {
	return SkillPackagePattern.MatchString(filepath.ToSlash(path))
}

func (v SkillPackageValidator) Validate(path string) *Result {
	result := NewResult(path, v.ComponentType())
	if filepath.Ext(path) == ".skill" {
		result.AddError(Issue{
			Message:    fmt.Sprintf("Prohibited .skill package found: '%s'", filepath.Base(path)),
			Suggestion: "Remove .skill files - they are build outputs and should not be committed",
		})
	}
	return result
}
