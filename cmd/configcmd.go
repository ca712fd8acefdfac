package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claudeware/plugctl/internal/config"
	"github.com/claudeware/plugctl/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runConfigInit,
}

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	target, err := cfg.TargetDir()
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(path); statErr == nil {
		fmt.Printf("Config file: %s\n", path)
	} else {
		fmt.Printf("Config file: %s (not present, using defaults)\n", path)
	}
	fmt.Printf("  target:        %s\n", target)
	fmt.Printf("  format:        %s\n", cfg.Format)
	fmt.Printf("  color:         %t\n", cfg.UseColor())
	fmt.Printf("  skip_existing: %t\n", cfg.SkipExisting)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(path); statErr == nil && !configInitForce {
		return errors.ConfigError(fmt.Sprintf("%s already exists (use --force to overwrite)", path), nil)
	}

	if err := config.Default().Save(); err != nil {
		return err
	}
	logSuccess("Wrote %s", path)
	return nil
}
