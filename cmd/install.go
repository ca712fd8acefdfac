package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/claudeware/plugctl/internal/config"
	"github.com/claudeware/plugctl/internal/errors"
	"github.com/claudeware/plugctl/internal/installer"
	"github.com/claudeware/plugctl/internal/logging"
	"github.com/claudeware/plugctl/internal/manifest"
	"github.com/claudeware/plugctl/internal/tui"
)

var installCmd = &cobra.Command{
	Use:   "install [manifests-or-dirs...]",
	Short: "Install plugin components into a Claude configuration directory",
	Long: `Copies plugin agents, commands, skills, and rules into the target
Claude configuration directory.

Arguments may be plugin.json manifest paths, plugin directories, or
directories to search for plugins. With no arguments the current
directory is searched.

When multiple plugins are found an interactive picker lets you choose
which to install. Existing files prompt for a resolution: overwrite,
skip, rename, or abort.`,
	Args: cobra.ArbitraryArgs,
	RunE: runInstall,
}

var (
	installTarget       string
	installForce        bool
	installSkipExisting bool
	installSelect       []string
)

func init() {
	installCmd.Flags().StringVarP(&installTarget, "target", "t", "", "Target directory (default: from config or ~/.claude)")
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Overwrite existing components without prompting")
	installCmd.Flags().BoolVar(&installSkipExisting, "skip-existing", false, "Skip components that already exist in the target")
	installCmd.Flags().StringSliceVar(&installSelect, "select", nil, "Install only the named plugins (skips the picker)")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	if installForce && installSkipExisting {
		return errors.New(errors.ExitGeneralError, "--force and --skip-existing are mutually exclusive")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	plugins, err := loadPlugins(args)
	if err != nil {
		return err
	}
	if len(plugins) == 0 {
		logWarning("No plugins found")
		return nil
	}
	logging.Debug("discovered plugins", "count", len(plugins))

	if len(installSelect) > 0 {
		plugins, err = selectPlugins(plugins, installSelect)
		if err != nil {
			return err
		}
	} else {
		plugins, err = tui.RunPicker(plugins)
		if err != nil {
			return err
		}
		if len(plugins) == 0 {
			logInfo("Nothing selected, aborting")
			return nil
		}
	}

	target := installTarget
	if target == "" {
		target, err = cfg.TargetDir()
		if err != nil {
			return err
		}
	}

	ins := installer.New(installer.Options{
		Target:       target,
		Force:        installForce,
		SkipExisting: installSkipExisting || cfg.SkipExisting,
		Resolver:     tui.InteractiveResolver{},
	})

	summary, err := ins.Install(plugins)
	if err != nil {
		return err
	}

	logSuccess("Installed %d component(s) to %s", summary.Total(), target)
	if summary.Overwritten > 0 {
		logInfo("  %d overwritten", summary.Overwritten)
	}
	if summary.Renamed > 0 {
		logInfo("  %d renamed", summary.Renamed)
	}
	if summary.Skipped > 0 {
		logInfo("  %d skipped", summary.Skipped)
	}
	if summary.Missing > 0 {
		logWarning("  %d component(s) missing from their plugins", summary.Missing)
	}
	return nil
}

// loadPlugins resolves install arguments: manifest files load directly,
// plugin directories load their manifest, and other directories are
// searched for plugins. No arguments searches the current directory.
func loadPlugins(args []string) ([]*manifest.Plugin, error) {
	if len(args) == 0 {
		return discoverPlugins(".")
	}

	var plugins []*manifest.Plugin
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.ManifestNotFound(arg)
		}
		if !info.IsDir() {
			p, err := manifest.Load(arg)
			if err != nil {
				return nil, err
			}
			plugins = append(plugins, p)
			continue
		}
		if _, err := os.Stat(filepath.Join(arg, manifest.ManifestDir, manifest.ManifestFile)); err == nil {
			p, err := manifest.LoadDir(arg)
			if err != nil {
				return nil, err
			}
			plugins = append(plugins, p)
			continue
		}
		found, err := discoverPlugins(arg)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, found...)
	}
	return plugins, nil
}

// discoverPlugins loads plugins from a marketplace manifest when one is
// present, falling back to walking the directory tree.
func discoverPlugins(source string) ([]*manifest.Plugin, error) {
	market, err := manifest.FindMarketplace(source)
	if err != nil {
		return nil, err
	}
	if market != nil {
		logInfo("Using marketplace %s", market.Name)
		return market.LoadAll(), nil
	}
	return manifest.Discover(source)
}

func selectPlugins(plugins []*manifest.Plugin, names []string) ([]*manifest.Plugin, error) {
	byName := make(map[string]*manifest.Plugin, len(plugins))
	for _, p := range plugins {
		byName[p.Name] = p
	}
	var chosen []*manifest.Plugin
	for _, name := range names {
		p, ok := byName[name]
		if !ok {
			return nil, errors.New(errors.ExitGeneralError, "plugin not found: "+name)
		}
		chosen = append(chosen, p)
	}
	return chosen, nil
}
