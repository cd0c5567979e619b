package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	MenuScreen Screen = iota
	ConvertScreen
	PushScreen
)

// Defaults pre-fills the forms, usually from flags and environment.
type Defaults struct {
	OutPath    string
	SchemaFile string
	DBURI      string
	DBName     string
	Collection string
}

type Model struct {
	currentScreen Screen
	menuModel     *MenuModel
	convertModel  *ConvertModel
	pushModel     *PushModel
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(defaults Defaults) Model {
	return Model{
		currentScreen: MenuScreen,
		menuModel:     NewMenuModel(),
		convertModel:  NewConvertModel(defaults),
		pushModel:     NewPushModel(defaults),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menuModel.SetSize(msg.Width, msg.Height)
		m.convertModel.SetSize(msg.Width, msg.Height)
		m.pushModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "q":
			// Forms take "q" as text.
			if m.currentScreen == MenuScreen {
				m.quitting = true
				return m, tea.Quit
			}
		case "esc":
			if m.currentScreen != MenuScreen && !m.isBusy() && !m.isBrowsing() {
				m.currentScreen = MenuScreen
				m.err = nil
				return m, nil
			}
		}

	case ScreenChangeMsg:
		m.currentScreen = msg.Screen
		m.err = nil
		switch msg.Screen {
		case ConvertScreen:
			return m, m.convertModel.Init()
		case PushScreen:
			return m, m.pushModel.Init()
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	switch m.currentScreen {
	case MenuScreen:
		newMenuModel, cmd := m.menuModel.Update(msg)
		m.menuModel = newMenuModel.(*MenuModel)
		return m, cmd
	case ConvertScreen:
		newConvertModel, cmd := m.convertModel.Update(msg)
		m.convertModel = newConvertModel.(*ConvertModel)
		return m, cmd
	case PushScreen:
		newPushModel, cmd := m.pushModel.Update(msg)
		m.pushModel = newPushModel.(*PushModel)
		return m, cmd
	}

	return m, nil
}

func (m Model) isBusy() bool {
	return m.convertModel.state == ConvertProgressState || m.pushModel.state == PushProgressState
}

func (m Model) isBrowsing() bool {
	return m.convertModel.state == ConvertFileSelectState || m.pushModel.state == PushFileSelectState
}

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var content string
	switch m.currentScreen {
	case MenuScreen:
		content = m.menuModel.View()
	case ConvertScreen:
		content = m.convertModel.View()
	case PushScreen:
		content = m.pushModel.View()
	}

	if m.err != nil {
		content += "\n" + ui.fail.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return content
}

type ScreenChangeMsg struct {
	Screen Screen
}

type ErrorMsg struct {
	Err error
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
