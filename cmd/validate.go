package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/claudeware/plugctl/internal/config"
	"github.com/claudeware/plugctl/internal/errors"
	"github.com/claudeware/plugctl/internal/logging"
	"github.com/claudeware/plugctl/internal/report"
	"github.com/claudeware/plugctl/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate plugin component frontmatter and structure",
	Long: `Validates Claude Code component files: skill, agent, command, and rule
Markdown files plus plugin manifests.

With no arguments, validates the files currently staged in git. With
--all, validates every component file in the repository. Explicit file
arguments (or --files) may include glob patterns.`,
	RunE: runValidate,
}

var (
	validateAll    bool
	validateFiles  []string
	validateFormat string
	validateQuiet  bool
)

func init() {
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "Validate all component files in the repository")
	validateCmd.Flags().StringSliceVar(&validateFiles, "files", nil, "Specific files to validate (globs allowed)")
	validateCmd.Flags().StringVar(&validateFormat, "format", "console", "Output format: console, plain, or json")
	validateCmd.Flags().BoolVarP(&validateQuiet, "quiet", "q", false, "Only show errors, hide warnings")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	format := validateFormat
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		format = cfg.Format
	}

	root := validate.RepoRoot()

	var files []string
	switch {
	case validateAll:
		files, err = validate.AllComponentFiles(root)
		if err != nil {
			return errors.SystemError("discovering component files", err)
		}
	case len(validateFiles) > 0 || len(args) > 0:
		files, err = validate.ExpandGlobs(append(validateFiles, args...))
		if err != nil {
			return errors.SystemError("expanding file patterns", err)
		}
	default:
		files = validate.StagedFiles(root)
	}

	if len(files) == 0 {
		logInfo("No files to validate.")
		return nil
	}

	components := validate.Filter(files)
	if len(components) == 0 {
		logInfo("No Claude Code components to validate.")
		return nil
	}
	logging.Debug("validating components", "count", len(components))

	results := validate.Files(components)

	reporter, err := report.New(format, report.Options{
		Verbose: verbose,
		Quiet:   validateQuiet,
		NoColor: !cfg.UseColor(),
	}, os.Stdout)
	if err != nil {
		return errors.ConfigError("invalid output format", err)
	}

	if reporter.Report(results) != 0 {
		errorCount := 0
		for _, r := range results {
			errorCount += len(r.Errors())
		}
		err := errors.ValidationFailed(errorCount)
		// The reporter already printed the failure details.
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return err
	}
	return nil
}
