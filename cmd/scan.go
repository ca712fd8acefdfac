package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/claudeware/plugctl/internal/scan"
	"github.com/claudeware/plugctl/internal/validate"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Security-scan skills and rules with mcp-scan",
	Long: `Runs mcp-scan (Invariant Labs) over skill directories and rule files
to detect prompt injection, malware payloads, and hard-coded secrets.

Requires uvx or pipx on PATH to run mcp-scan. One of --all, --plugin,
--path, or --changed selects what to scan.`,
	RunE: runScan,
}

var (
	scanAll     bool
	scanPlugin  string
	scanPath    string
	scanChanged bool
	scanBase    string
)

func init() {
	scanCmd.Flags().BoolVar(&scanAll, "all", false, "Scan all skills and rules in all plugins")
	scanCmd.Flags().StringVar(&scanPlugin, "plugin", "", "Scan a specific plugin's skills and rules")
	scanCmd.Flags().StringVar(&scanPath, "path", "", "Scan a specific skill directory or rule file")
	scanCmd.Flags().BoolVar(&scanChanged, "changed", false, "Only scan components modified since the base ref")
	scanCmd.Flags().StringVar(&scanBase, "base", "", "Base ref for --changed comparison (default: auto-detect)")
	scanCmd.MarkFlagsMutuallyExclusive("all", "plugin", "path", "changed")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if !scanAll && scanPlugin == "" && scanPath == "" && !scanChanged {
		return cmd.Help()
	}

	return scan.Run(context.Background(), scan.Options{
		Root:    validate.RepoRoot(),
		Plugin:  scanPlugin,
		Path:    scanPath,
		Changed: scanChanged,
		BaseRef: scanBase,
		Verbose: verbose,
	})
}
