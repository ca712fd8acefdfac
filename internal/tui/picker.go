// Package tui provides terminal user interface components for plugctl
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/claudeware/plugctl/internal/manifest"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// pluginItem implements list.Item for plugin display
type pluginItem struct {
	plugin   *manifest.Plugin
	selected bool
}

func (i pluginItem) Title() string {
	mark := "[ ]"
	if i.selected {
		mark = "[x]"
	}
	title := fmt.Sprintf("%s %s", mark, i.plugin.Name)
	if i.plugin.Version != "" {
		title += " v" + i.plugin.Version
	}
	return title
}

func (i pluginItem) Description() string {
	desc := i.plugin.Description
	if desc == "" {
		desc = "no description"
	}
	return fmt.Sprintf("%s | %d component(s)", desc, i.plugin.Total())
}

func (i pluginItem) FilterValue() string {
	return i.plugin.Name
}

// PickerModel is the bubbletea model for the plugin multi-select picker
type PickerModel struct {
	list     list.Model
	chosen   []*manifest.Plugin
	aborted  bool
	quitting bool
}

// NewPicker creates a plugin picker over the discovered plugins
func NewPicker(plugins []*manifest.Plugin) PickerModel {
	items := make([]list.Item, len(plugins))
	for i, p := range plugins {
		items[i] = pluginItem{plugin: p}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "plugctl - Select Plugins"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return PickerModel{list: l}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case " ":
			if item, ok := m.list.SelectedItem().(pluginItem); ok {
				item.selected = !item.selected
				m.list.SetItem(m.list.Index(), item)
			}
			return m, nil

		case "a":
			all := !m.allSelected()
			for i, li := range m.list.Items() {
				item := li.(pluginItem)
				item.selected = all
				m.list.SetItem(i, item)
			}
			return m, nil

		case "enter":
			m.chosen = m.selectedPlugins()
			// Enter with nothing toggled installs the highlighted plugin
			if len(m.chosen) == 0 {
				if item, ok := m.list.SelectedItem().(pluginItem); ok {
					m.chosen = []*manifest.Plugin{item.plugin}
				}
			}
			m.quitting = true
			return m, tea.Quit

		case "q", "esc", "ctrl+c":
			m.aborted = true
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}
	help := helpStyle.Render("[space] Toggle  [a] All  [enter] Install  [/] Filter  [q] Quit")
	return m.list.View() + "\n" + help
}

func (m PickerModel) allSelected() bool {
	for _, li := range m.list.Items() {
		if !li.(pluginItem).selected {
			return false
		}
	}
	return len(m.list.Items()) > 0
}

func (m PickerModel) selectedPlugins() []*manifest.Plugin {
	var out []*manifest.Plugin
	for _, li := range m.list.Items() {
		if item := li.(pluginItem); item.selected {
			out = append(out, item.plugin)
		}
	}
	return out
}

// Chosen returns the plugins picked, nil when the picker was aborted
func (m PickerModel) Chosen() []*manifest.Plugin {
	if m.aborted {
		return nil
	}
	return m.chosen
}

// Aborted reports whether the user quit without choosing
func (m PickerModel) Aborted() bool {
	return m.aborted
}

// RunPicker runs the interactive plugin picker. Without a terminal it falls
// back to a numbered stdin prompt.
func RunPicker(plugins []*manifest.Plugin) ([]*manifest.Plugin, error) {
	if len(plugins) == 1 {
		return plugins, nil
	}
	if !isTerminal(os.Stdin) {
		return promptPlugins(plugins, os.Stdin, os.Stdout)
	}

	m := NewPicker(plugins)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(PickerModel).Chosen(), nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
