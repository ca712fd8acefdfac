package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/claudeware/plugctl/internal/logging"
	"github.com/claudeware/plugctl/internal/validate"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:     "plugctl",
	Short:   "Claude Code plugin management CLI",
	Version: validate.Version,
	Long: `plugctl installs and validates Claude Code plugin components.

Plugins bundle four component categories:
  - agents:   specialized sub-agent definitions
  - commands: slash command definitions
  - skills:   skill directories with a SKILL.md entry point
  - rules:    glob-scoped rule files

plugctl install copies components from plugin manifests into a Claude
configuration directory. plugctl validate checks component frontmatter
and structure. plugctl scan runs security scanning over skills and rules.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
