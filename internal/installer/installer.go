// Package installer copies plugin components into a Claude configuration
// directory. Each manifest category lands in its own subdirectory of the
// target (agents/, commands/, skills/, rules/). Name conflicts are resolved
// through a Resolver, which the CLI backs with an interactive prompt.
package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/claudeware/plugctl/internal/errors"
	"github.com/claudeware/plugctl/internal/logging"
	"github.com/claudeware/plugctl/internal/manifest"
)

// Resolution is the outcome of a conflict prompt.
type Resolution int

const (
	ResolutionOverwrite Resolution = iota
	ResolutionSkip
	ResolutionRename
	ResolutionAbort
	// ResolutionOverwriteAll applies overwrite to every later conflict
	ResolutionOverwriteAll
	// ResolutionSkipAll applies skip to every later conflict
	ResolutionSkipAll
)

// Conflict describes a destination that already exists.
type Conflict struct {
	Plugin   string
	Category manifest.Category
	Source   string
	Dest     string
}

// Resolver decides what to do about a conflict. For ResolutionRename the
// second return value is the new base name.
type Resolver interface {
	Resolve(c Conflict) (Resolution, string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(c Conflict) (Resolution, string, error)

func (f ResolverFunc) Resolve(c Conflict) (Resolution, string, error) { return f(c) }

// Options configure an installation run.
type Options struct {
	// Target is the Claude configuration directory to install into
	Target string
	// Force overwrites conflicting files without prompting
	Force bool
	// SkipExisting skips conflicting files without prompting
	SkipExisting bool
	// Resolver handles conflicts when neither Force nor SkipExisting is set
	Resolver Resolver
}

// Summary tallies what an installation run did.
type Summary struct {
	Installed   int
	Overwritten int
	Renamed     int
	Skipped     int
	Missing     int
}

// Total returns the number of components placed in the target
func (s *Summary) Total() int {
	return s.Installed + s.Overwritten + s.Renamed
}

// Installer copies plugin components into a target directory.
type Installer struct {
	opts Options
	// sticky records an all-overwrite or all-skip choice
	sticky    Resolution
	hasSticky bool
}

// New creates an installer
func New(opts Options) *Installer {
	return &Installer{opts: opts}
}

// Install copies every component of every plugin. It keeps going past
// missing sources and returns InstallAborted when the resolver aborts.
func (ins *Installer) Install(plugins []*manifest.Plugin) (*Summary, error) {
	summary := &Summary{}
	for _, plugin := range plugins {
		logging.Debug("installing plugin", "name", plugin.Name, "components", plugin.Total())
		for _, cat := range manifest.Categories {
			for _, rel := range plugin.Components(cat) {
				if err := ins.installComponent(plugin, cat, rel, summary); err != nil {
					return summary, err
				}
			}
		}
	}
	return summary, nil
}

func (ins *Installer) installComponent(plugin *manifest.Plugin, cat manifest.Category, rel string, summary *Summary) error {
	src, err := plugin.Resolve(rel)
	if err != nil {
		return err
	}

	info, err := os.Stat(src)
	if err != nil {
		logging.UserWarning("missing component in %s: %s", plugin.Name, rel)
		summary.Missing++
		return nil
	}

	destDir := filepath.Join(ins.opts.Target, string(cat))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return errors.SystemError(fmt.Sprintf("creating %s", destDir), err)
	}

	destName := filepath.Base(src)
	renamed := false

	for {
		// Rename names come from user input, keep them inside the category dir.
		dest, err := securejoin.SecureJoin(destDir, destName)
		if err != nil {
			return errors.InstallError("resolving destination", err)
		}
		if _, statErr := os.Stat(dest); os.IsNotExist(statErr) {
			if err := copyPath(src, dest, info.IsDir()); err != nil {
				return err
			}
			if renamed {
				summary.Renamed++
			} else {
				summary.Installed++
			}
			logging.Debug("installed component", "src", src, "dest", dest)
			return nil
		}

		res, newName, err := ins.resolveConflict(Conflict{
			Plugin:   plugin.Name,
			Category: cat,
			Source:   src,
			Dest:     dest,
		})
		if err != nil {
			return err
		}
		switch res {
		case ResolutionOverwrite:
			if err := os.RemoveAll(dest); err != nil {
				return errors.InstallError("overwrite", err)
			}
			if err := copyPath(src, dest, info.IsDir()); err != nil {
				return err
			}
			summary.Overwritten++
			return nil
		case ResolutionSkip:
			summary.Skipped++
			return nil
		case ResolutionRename:
			if newName == "" || newName == destName {
				continue
			}
			destName = newName
			renamed = true
		case ResolutionAbort:
			return errors.InstallAborted()
		}
	}
}

// resolveConflict consults options, the sticky choice, then the resolver
func (ins *Installer) resolveConflict(c Conflict) (Resolution, string, error) {
	if ins.opts.Force {
		return ResolutionOverwrite, "", nil
	}
	if ins.opts.SkipExisting {
		return ResolutionSkip, "", nil
	}
	if ins.hasSticky {
		return ins.sticky, "", nil
	}
	if ins.opts.Resolver == nil {
		return ResolutionSkip, "", nil
	}

	res, name, err := ins.opts.Resolver.Resolve(c)
	if err != nil {
		return ResolutionAbort, "", err
	}
	switch res {
	case ResolutionOverwriteAll:
		ins.sticky = ResolutionOverwrite
		ins.hasSticky = true
		return ResolutionOverwrite, "", nil
	case ResolutionSkipAll:
		ins.sticky = ResolutionSkip
		ins.hasSticky = true
		return ResolutionSkip, "", nil
	}
	return res, name, nil
}

func copyPath(src, dest string, isDir bool) error {
	if isDir {
		return copyDir(src, dest)
	}
	return copyFile(src, dest)
}

func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.InstallError("stat", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return errors.InstallError("open", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.InstallError("create", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.InstallError("copy", err)
	}
	return out.Close()
}

func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.InstallError("read dir", err)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return errors.InstallError("create dir", err)
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())
		if entry.IsDir() {
			if err := copyDir(srcPath, destPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, destPath); err != nil {
				return err
			}
		}
	}
	return nil
}
