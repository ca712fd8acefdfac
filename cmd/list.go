package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [source-dir]",
	Short: "List plugins discovered under a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type listEntry struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Agents      int    `json:"agents"`
	Commands    int    `json:"commands"`
	Skills      int    `json:"skills"`
	Rules       int    `json:"rules"`
	Path        string `json:"path"`
}

func runList(cmd *cobra.Command, args []string) error {
	source := "."
	if len(args) == 1 {
		source = args[0]
	}

	plugins, err := discoverPlugins(source)
	if err != nil {
		return err
	}

	if jsonOutput {
		entries := make([]listEntry, 0, len(plugins))
		for _, p := range plugins {
			entries = append(entries, listEntry{
				Name:        p.Name,
				Version:     p.Version,
				Description: p.Description,
				Agents:      len(p.Agents),
				Commands:    len(p.Commands),
				Skills:      len(p.Skills),
				Rules:       len(p.Rules),
				Path:        p.Dir,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(plugins) == 0 {
		logWarning("No plugins found under %s", source)
		return nil
	}

	for _, p := range plugins {
		version := p.Version
		if version == "" {
			version = "unversioned"
		}
		fmt.Printf("%s (%s)\n", p.Name, version)
		if p.Description != "" {
			fmt.Printf("  %s\n", p.Description)
		}
		fmt.Printf("  %d agent(s), %d command(s), %d skill(s), %d rule(s)\n",
			len(p.Agents), len(p.Commands), len(p.Skills), len(p.Rules))
	}
	return nil
}
