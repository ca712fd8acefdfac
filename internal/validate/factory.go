package validate

// Registered validators in matching priority order. The first validator
// whose CanValidate accepts a file handles it; in particular
// .claude-plugin/plugin.json goes to the version validator while other
// plugin.json files go to the registration validator.
var validators = []Validator{
	SkillValidator{},
	AgentValidator{},
	CommandValidator{},
	RuleValidator{},
	KebabCaseValidator{},
	SkillPackageValidator{},
	PluginVersionValidator{},
	PluginJsonValidator{},
}

// ForFile returns the validator that handles a file, or nil when the file
// is not a Claude Code component.
func ForFile(path string) Validator {
	for _, v := range validators {
		if v.CanValidate(path) {
			return v
		}
	}
	return nil
}

// Filter keeps only the files some validator handles
func Filter(files []string) []string {
	var out []string
	for _, f := range files {
		if ForFile(f) != nil {
			out = append(out, f)
		}
	}
	return out
}

// Files validates each component file and collects the results
func Files(paths []string) []*Result {
	var results []*Result
	for _, path := range paths {
		if v := ForFile(path); v != nil {
			results = append(results, v.Validate(path))
		}
	}
	return results
}
