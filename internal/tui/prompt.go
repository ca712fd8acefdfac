package tui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/claudeware/plugctl/internal/installer"
	"github.com/claudeware/plugctl/internal/manifest"
)

// promptPlugins is the line-based fallback picker: a numbered listing with
// comma-separated index selection, or "all".
func promptPlugins(plugins []*manifest.Plugin, in io.Reader, out io.Writer) ([]*manifest.Plugin, error) {
	fmt.Fprintln(out, "Available plugins:")
	for i, p := range plugins {
		fmt.Fprintf(out, "  %d. %s (%d component(s))\n", i+1, p.Name, p.Total())
	}
	fmt.Fprint(out, "Select plugins (comma-separated numbers, or 'all'): ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return nil, scanner.Err()
	}
	answer := strings.TrimSpace(scanner.Text())
	if answer == "" {
		return nil, nil
	}
	if strings.EqualFold(answer, "all") {
		return plugins, nil
	}

	var chosen []*manifest.Plugin
	seen := map[int]bool{}
	for _, part := range strings.Split(answer, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 1 || idx > len(plugins) {
			return nil, fmt.Errorf("invalid selection %q", strings.TrimSpace(part))
		}
		if !seen[idx] {
			seen[idx] = true
			chosen = append(chosen, plugins[idx-1])
		}
	}
	return chosen, nil
}

// promptConflict is the line-based fallback conflict prompt
func promptConflict(c installer.Conflict, in io.Reader, out io.Writer) (installer.Resolution, string, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "File exists: %s\n", c.Dest)
		fmt.Fprint(out, "[o]verwrite / [s]kip / [r]ename / [a]bort / [O]verwrite all / [S]kip all: ")
		if !scanner.Scan() {
			return installer.ResolutionAbort, "", scanner.Err()
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "o":
			return installer.ResolutionOverwrite, "", nil
		case "O":
			return installer.ResolutionOverwriteAll, "", nil
		case "s":
			return installer.ResolutionSkip, "", nil
		case "S":
			return installer.ResolutionSkipAll, "", nil
		case "a":
			return installer.ResolutionAbort, "", nil
		case "r":
			fmt.Fprint(out, "New name: ")
			if !scanner.Scan() {
				return installer.ResolutionAbort, "", scanner.Err()
			}
			name := strings.TrimSpace(scanner.Text())
			if name == "" {
				continue
			}
			return installer.ResolutionRename, name, nil
		}
	}
}
