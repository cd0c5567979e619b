package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"choiceLists/internal/database"
	"choiceLists/internal/publish"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type PushState int

const (
	PushInputState PushState = iota
	PushFileSelectState
	PushConfirmState
	PushProgressState
	PushResultState
)

// PushFunc stores a choice list CSV. It is swapped out in tests.
type PushFunc func(ctx context.Context, dbURI, dbName, collection, csvFile string) (publish.PushResult, error)

type PushModel struct {
	state           PushState
	csvFileInput    textinput.Model
	dbURIInput      textinput.Model
	dbNameInput     textinput.Model
	collectionInput textinput.Model
	focusedInput    int
	push            PushFunc
	result          publish.PushResult
	err             error
	files           []string
	selectedFile    int
	width           int
	height          int
}

type PushCompleteMsg struct {
	Result publish.PushResult
	Err    error
}

func NewPushModel(defaults Defaults) *PushModel {
	csvFileInput := textinput.New()
	csvFileInput.Placeholder = "choice_lists.csv"
	csvFileInput.Focus()

	dbURIInput := textinput.New()
	dbURIInput.Placeholder = "mongodb://localhost:27017"
	dbURIInput.SetValue(defaults.DBURI)

	dbNameInput := textinput.New()
	dbNameInput.Placeholder = "choicelists"
	dbNameInput.SetValue(defaults.DBName)

	collectionInput := textinput.New()
	collectionInput.Placeholder = "choices"
	collectionInput.SetValue(defaults.Collection)

	return &PushModel{
		state:           PushInputState,
		csvFileInput:    csvFileInput,
		dbURIInput:      dbURIInput,
		dbNameInput:     dbNameInput,
		collectionInput: collectionInput,
		push:            pushToMongo,
	}
}

func pushToMongo(ctx context.Context, dbURI, dbName, collection, csvFile string) (publish.PushResult, error) {
	db, err := database.NewMongoDB(ctx, dbURI, dbName)
	if err != nil {
		return publish.PushResult{}, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer db.Close()

	return publish.NewService(db).PushFile(ctx, collection, csvFile)
}

func (m *PushModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *PushModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *PushModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case PushInputState:
			return m.updateInputState(msg)
		case PushFileSelectState:
			return m.updateFileSelectState(msg)
		case PushConfirmState:
			return m.updateConfirmState(msg)
		case PushProgressState:
			return m, nil
		case PushResultState:
			if msg.String() == "enter" || msg.String() == " " {
				m.reset()
			}
			return m, nil
		}

	case PushCompleteMsg:
		m.result = msg.Result
		m.err = msg.Err
		m.state = PushResultState
		return m, nil
	}

	return m, nil
}

func (m *PushModel) updateInputState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "tab", "down":
		m.focusedInput = (m.focusedInput + 1) % 4
		m.updateInputFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusedInput = (m.focusedInput - 1 + 4) % 4
		m.updateInputFocus()
		return m, nil
	case "ctrl+f":
		return m.browseFiles()
	case "enter":
		if m.isFormValid() {
			m.state = PushConfirmState
		}
		return m, nil
	}

	switch m.focusedInput {
	case 0:
		m.csvFileInput, cmd = m.csvFileInput.Update(msg)
	case 1:
		m.dbURIInput, cmd = m.dbURIInput.Update(msg)
	case 2:
		m.dbNameInput, cmd = m.dbNameInput.Update(msg)
	case 3:
		m.collectionInput, cmd = m.collectionInput.Update(msg)
	}

	return m, cmd
}

func (m *PushModel) updateFileSelectState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedFile > 0 {
			m.selectedFile--
		}
	case "down", "j":
		if m.selectedFile < len(m.files)-1 {
			m.selectedFile++
		}
	case "enter":
		if len(m.files) > 0 {
			m.csvFileInput.SetValue(m.files[m.selectedFile])
			m.state = PushInputState
		}
	case "esc":
		m.state = PushInputState
	}
	return m, nil
}

func (m *PushModel) updateConfirmState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.state = PushProgressState
		return m, m.performPush()
	case "n", "esc":
		m.state = PushInputState
	}
	return m, nil
}

func (m *PushModel) browseFiles() (tea.Model, tea.Cmd) {
	cwd, err := os.Getwd()
	if err != nil {
		return m, ShowError(err)
	}
	files, err := filepath.Glob(filepath.Join(cwd, "*.csv"))
	if err != nil {
		return m, ShowError(err)
	}

	for i, file := range files {
		if rel, err := filepath.Rel(cwd, file); err == nil {
			files[i] = rel
		}
	}

	m.files = files
	m.selectedFile = 0
	m.state = PushFileSelectState
	return m, nil
}

func (m *PushModel) updateInputFocus() {
	inputs := []*textinput.Model{&m.csvFileInput, &m.dbURIInput, &m.dbNameInput, &m.collectionInput}
	for i, input := range inputs {
		if i == m.focusedInput {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m *PushModel) isFormValid() bool {
	return strings.TrimSpace(m.csvFileInput.Value()) != "" &&
		strings.TrimSpace(m.dbURIInput.Value()) != "" &&
		strings.TrimSpace(m.dbNameInput.Value()) != "" &&
		strings.TrimSpace(m.collectionInput.Value()) != ""
}

func (m *PushModel) performPush() tea.Cmd {
	push := m.push
	csvFile := strings.TrimSpace(m.csvFileInput.Value())
	dbURI := strings.TrimSpace(m.dbURIInput.Value())
	dbName := strings.TrimSpace(m.dbNameInput.Value())
	collection := strings.TrimSpace(m.collectionInput.Value())

	return func() tea.Msg {
		result, err := push(context.Background(), dbURI, dbName, collection, csvFile)
		return PushCompleteMsg{Result: result, Err: err}
	}
}

func (m *PushModel) reset() {
	m.state = PushInputState
	m.result = publish.PushResult{}
	m.err = nil
	m.csvFileInput.SetValue("")
	m.focusedInput = 0
	m.updateInputFocus()
}

func (m *PushModel) View() string {
	switch m.state {
	case PushInputState:
		return m.renderInputForm()
	case PushFileSelectState:
		return m.renderFileSelector()
	case PushConfirmState:
		return m.renderConfirmation()
	case PushProgressState:
		return m.renderProgress()
	case PushResultState:
		return m.renderResult()
	}
	return ""
}

func (m *PushModel) renderInputForm() string {
	f := ui.frame(m.width)

	title := f.heading.Render("Push choice list CSV to MongoDB")

	form := f.panel.Render(
		ui.label.Render("CSV File:") + "\n" + m.csvFileInput.View() + "\n\n" +
			ui.label.Render("Database URI:") + "\n" + m.dbURIInput.View() + "\n\n" +
			ui.label.Render("Database Name:") + "\n" + m.dbNameInput.View() + "\n\n" +
			ui.label.Render("Collection:") + "\n" + m.collectionInput.View(),
	)

	help := f.hint.Render("Tab/Shift+Tab: Navigate • Ctrl+F: Browse files • Enter: Push • Esc: Back to menu")

	content := lipgloss.JoinVertical(lipgloss.Left, title, form, help)

	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Top,
			content,
		)
	}

	return content
}

func (m *PushModel) renderFileSelector() string {
	title := ui.heading.Render("Select CSV File")

	if len(m.files) == 0 {
		content := ui.warn.Render("No CSV files found in current directory")
		help := ui.hint.Render("Esc: Back to form")
		return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
	}

	var fileList string
	for i, file := range m.files {
		cursor := " "
		style := ui.item
		if i == m.selectedFile {
			cursor = ">"
			style = ui.cursor
		}
		fileList += fmt.Sprintf("%s %s\n", cursor, style.Render(file))
	}

	help := ui.hint.Render("↑/↓: Navigate • Enter: Select • Esc: Cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, fileList, help)
}

func (m *PushModel) renderConfirmation() string {
	title := ui.heading.Render("Confirm Push")

	details := fmt.Sprintf(
		"Source file: %s\nTarget: %s.%s\n\n",
		strings.TrimSpace(m.csvFileInput.Value()),
		strings.TrimSpace(m.dbNameInput.Value()),
		strings.TrimSpace(m.collectionInput.Value()),
	)
	warning := ui.warn.Render("Stored options of every list in this file will be replaced.")

	help := ui.hint.Render("y/Enter: Push • n/Esc: Cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, details+warning, help)
}

func (m *PushModel) renderProgress() string {
	f := ui.frame(m.width)

	title := f.heading.Render("Pushing choice lists...")
	help := f.hint.Render("Please wait while data is being written...")

	return lipgloss.JoinVertical(lipgloss.Left, title, help)
}

func (m *PushModel) renderResult() string {
	title := ui.heading.Render("Push Complete")

	var status string
	if m.err != nil {
		status = ui.fail.Render(fmt.Sprintf("Push failed: %v", m.err))
	} else {
		status = ui.ok.Render("Push completed successfully!")
	}

	stats := fmt.Sprintf(
		"Choice lists: %d\n"+
			"Rows written: %d\n"+
			"Rows replaced: %d",
		m.result.Lists,
		m.result.Rows,
		m.result.Removed,
	)

	help := ui.hint.Render("Enter: Push another file • Esc: Back to menu")

	return lipgloss.JoinVertical(lipgloss.Left, title, status, stats, help)
}
