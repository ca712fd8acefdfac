package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/claudeware/plugctl/internal/installer"
)

var conflictStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("214")).
	Bold(true)

// ConflictModel is the bubbletea model for the conflict resolution prompt
type ConflictModel struct {
	conflict   installer.Conflict
	resolution installer.Resolution
	newName    string
	renaming   bool
	input      textinput.Model
	done       bool
}

// NewConflictPrompt creates a prompt for one destination conflict
func NewConflictPrompt(c installer.Conflict) ConflictModel {
	ti := textinput.New()
	ti.Placeholder = filepath.Base(c.Dest)
	ti.CharLimit = 128
	ti.Width = 48

	return ConflictModel{
		conflict:   c,
		resolution: installer.ResolutionSkip,
		input:      ti,
	}
}

func (m ConflictModel) Init() tea.Cmd {
	return nil
}

func (m ConflictModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.renaming {
		switch keyMsg.String() {
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				return m, nil
			}
			m.newName = name
			m.resolution = installer.ResolutionRename
			m.done = true
			return m, tea.Quit
		case "esc":
			m.renaming = false
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "o":
		m.resolution = installer.ResolutionOverwrite
		m.done = true
		return m, tea.Quit
	case "O":
		m.resolution = installer.ResolutionOverwriteAll
		m.done = true
		return m, tea.Quit
	case "s":
		m.resolution = installer.ResolutionSkip
		m.done = true
		return m, tea.Quit
	case "S":
		m.resolution = installer.ResolutionSkipAll
		m.done = true
		return m, tea.Quit
	case "r":
		m.renaming = true
		m.input.Focus()
		return m, textinput.Blink
	case "a", "q", "esc", "ctrl+c":
		m.resolution = installer.ResolutionAbort
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConflictModel) View() string {
	if m.done {
		return ""
	}

	header := conflictStyle.Render(fmt.Sprintf("File exists: %s", m.conflict.Dest))
	detail := fmt.Sprintf("plugin %s, %s", m.conflict.Plugin, m.conflict.Category)

	if m.renaming {
		return fmt.Sprintf("%s\n%s\n\nNew name: %s\n%s\n",
			header, detail, m.input.View(),
			helpStyle.Render("[enter] Confirm  [esc] Back"))
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n",
		header, detail,
		helpStyle.Render("[o] Overwrite  [s] Skip  [r] Rename  [a] Abort  [O] Overwrite all  [S] Skip all"))
}

// Resolution returns the chosen resolution and rename target
func (m ConflictModel) Resolution() (installer.Resolution, string) {
	return m.resolution, m.newName
}

// InteractiveResolver resolves installer conflicts by prompting the user,
// with a plain stdin prompt when no terminal is attached.
type InteractiveResolver struct{}

func (InteractiveResolver) Resolve(c installer.Conflict) (installer.Resolution, string, error) {
	if !isTerminal(os.Stdin) {
		return promptConflict(c, os.Stdin, os.Stdout)
	}

	m := NewConflictPrompt(c)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return installer.ResolutionAbort, "", err
	}
	res, name := finalModel.(ConflictModel).Resolution()
	return res, name, nil
}
