package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type MenuModel struct {
	choices  []string
	cursor   int
	selected int
	width    int
	height   int
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		choices: []string{
			"Convert JSON export to choice lists",
			"Push choice list CSV to MongoDB",
			"Exit",
		},
		cursor: 0,
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.selected = m.cursor
			return m, m.handleSelection()
		}
	}
	return m, nil
}

func (m *MenuModel) handleSelection() tea.Cmd {
	switch m.selected {
	case 0:
		return ChangeScreen(ConvertScreen)
	case 1:
		return ChangeScreen(PushScreen)
	case 2:
		return tea.Quit
	}
	return nil
}

func (m *MenuModel) View() string {
	f := ui.frame(m.width)

	title := f.heading.Render("Choice Lists")

	// The highlight replaces a cursor glyph; both styles indent the text
	// by the same two cells.
	items := make([]string, len(m.choices))
	for i, choice := range m.choices {
		if m.cursor == i {
			items[i] = ui.cursor.Render(choice)
		} else {
			items[i] = ui.item.Render(choice)
		}
	}

	help := f.hint.Render("↑/↓ or j/k: move • enter: select • q: quit")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		lipgloss.JoinVertical(lipgloss.Left, items...),
		help,
	)

	if m.width > 0 {
		content = lipgloss.NewStyle().Padding(1, 2).Render(content)
	}

	return content
}
