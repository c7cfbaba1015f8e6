package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bindgraph/dicore/binding"
	"github.com/bindgraph/dicore/normalize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	undoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// bindingItem adapts one surviving binding.Entry to bubbles/list.Item.
type bindingItem struct {
	entry binding.Entry
	undo  bool
}

func (i bindingItem) Title() string {
	t := i.entry.TypeID.String()
	if i.undo {
		t = undoStyle.Render(t) + " (compressed away, undo info retained)"
	}
	return t
}

func (i bindingItem) Description() string {
	return kindStyle.Render(i.entry.Kind.String())
}

func (i bindingItem) FilterValue() string {
	return i.entry.TypeID.String()
}

type model struct {
	list   list.Model
	result normalize.Result
	err    error
}

func newModel(result normalize.Result, width, height int) model {
	items := make([]list.Item, 0, len(result.BindingsVector)+len(result.Undo))
	for _, e := range result.BindingsVector {
		items = append(items, bindingItem{entry: e})
	}
	for c, info := range result.Undo {
		items = append(items, bindingItem{entry: binding.Entry{TypeID: c, Kind: info.CBinding.Kind}, undo: true})
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, width, height)
	l.Title = fmt.Sprintf("normalized bindings (%d direct, %d multibinding sets, %d compressed)",
		len(result.BindingsVector), len(result.Multibindings), len(result.Undo))
	l.Styles.Title = titleStyle

	return model{list: l, result: result}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ browse • / filter • q quit"))
	return b.String()
}
