package tui

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"choiceLists/internal/convert"
	"choiceLists/internal/extract"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ConvertState int

const (
	ConvertInputState ConvertState = iota
	ConvertFileSelectState
	ConvertProgressState
	ConvertResultState
)

type ConvertModel struct {
	state        ConvertState
	inputsInput  textinput.Model
	outPathInput textinput.Model
	focusedInput int
	schemaFile   string
	progress     progress.Model
	progressVal  float64
	batch        *convert.Batch
	queue        []string
	results      []convert.FileResult
	err          error
	files        []string
	selectedFile int
	width        int
	height       int
}

// ConvertFileDoneMsg carries the outcome of one input of the running batch.
type ConvertFileDoneMsg struct {
	Result convert.FileResult
	Err    error
}

func NewConvertModel(defaults Defaults) *ConvertModel {
	inputsInput := textinput.New()
	inputsInput.Placeholder = "export.json other.json"
	inputsInput.Focus()

	outPathInput := textinput.New()
	outPathInput.Placeholder = "(directory of each input)"
	outPathInput.SetValue(defaults.OutPath)

	progressBar := progress.New(
		progress.WithSolidFill(ui.p.accent.Dark),
		progress.WithoutPercentage(),
	)

	return &ConvertModel{
		state:        ConvertInputState,
		inputsInput:  inputsInput,
		outPathInput: outPathInput,
		schemaFile:   defaults.SchemaFile,
		progress:     progressBar,
	}
}

func (m *ConvertModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ConvertModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ConvertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case ConvertInputState:
			return m.updateInputState(msg)
		case ConvertFileSelectState:
			return m.updateFileSelectState(msg)
		case ConvertProgressState:
			return m, nil
		case ConvertResultState:
			if msg.String() == "enter" || msg.String() == " " {
				m.reset()
			}
			return m, nil
		}

	case ConvertFileDoneMsg:
		return m.handleFileDone(msg)
	}

	return m, nil
}

func (m *ConvertModel) updateInputState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "tab", "down", "shift+tab", "up":
		m.focusedInput = (m.focusedInput + 1) % 2
		m.updateInputFocus()
		return m, nil
	case "ctrl+f":
		return m.browseFiles()
	case "enter":
		if m.isFormValid() {
			return m.startConvert()
		}
		return m, nil
	}

	switch m.focusedInput {
	case 0:
		m.inputsInput, cmd = m.inputsInput.Update(msg)
	case 1:
		m.outPathInput, cmd = m.outPathInput.Update(msg)
	}

	return m, cmd
}

func (m *ConvertModel) updateFileSelectState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
			m.addInput(m.files[m.selectedFile])
			m.state = ConvertInputState
		}
	case "esc":
		m.state = ConvertInputState
	}
	return m, nil
}

func (m *ConvertModel) addInput(path string) {
	for _, existing := range m.inputPaths() {
		if existing == path {
			return
		}
	}
	current := strings.TrimSpace(m.inputsInput.Value())
	if current == "" {
		m.inputsInput.SetValue(path)
		return
	}
	m.inputsInput.SetValue(current + " " + path)
}

func (m *ConvertModel) browseFiles() (tea.Model, tea.Cmd) {
	cwd, err := os.Getwd()
	if err != nil {
		return m, ShowError(err)
	}
	files, err := filepath.Glob(filepath.Join(cwd, "*.json"))
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
	m.state = ConvertFileSelectState
	return m, nil
}

func (m *ConvertModel) updateInputFocus() {
	inputs := []*textinput.Model{&m.inputsInput, &m.outPathInput}
	for i, input := range inputs {
		if i == m.focusedInput {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m *ConvertModel) inputPaths() []string {
	return strings.Fields(m.inputsInput.Value())
}

func (m *ConvertModel) isFormValid() bool {
	return len(m.inputPaths()) > 0
}

func (m *ConvertModel) startConvert() (tea.Model, tea.Cmd) {
	schema := extract.DefaultSchema()
	if m.schemaFile != "" {
		var err error
		schema, err = extract.LoadSchema(m.schemaFile)
		if err != nil {
			m.err = err
			m.state = ConvertResultState
			return m, nil
		}
	}

	service := convert.NewService(convert.Options{
		OutPath: strings.TrimSpace(m.outPathInput.Value()),
		Schema:  schema,
		Logger:  log.New(io.Discard, "", 0),
	})

	m.batch = service.NewBatch()
	m.queue = m.inputPaths()
	m.results = nil
	m.err = nil
	m.progressVal = 0
	m.state = ConvertProgressState
	return m, m.convertNext()
}

func (m *ConvertModel) convertNext() tea.Cmd {
	batch := m.batch
	path := m.queue[len(m.results)]
	return func() tea.Msg {
		result, err := batch.Convert(context.Background(), path)
		return ConvertFileDoneMsg{Result: result, Err: err}
	}
}

func (m *ConvertModel) handleFileDone(msg ConvertFileDoneMsg) (tea.Model, tea.Cmd) {
	if m.state != ConvertProgressState {
		return m, nil
	}
	if msg.Err != nil {
		m.err = msg.Err
		m.state = ConvertResultState
		return m, nil
	}

	m.results = append(m.results, msg.Result)
	m.progressVal = float64(len(m.results)) / float64(len(m.queue))
	if len(m.results) < len(m.queue) {
		return m, m.convertNext()
	}

	m.state = ConvertResultState
	return m, nil
}

func (m *ConvertModel) reset() {
	m.state = ConvertInputState
	m.progressVal = 0
	m.results = nil
	m.queue = nil
	m.batch = nil
	m.err = nil
	m.inputsInput.SetValue("")
	m.focusedInput = 0
	m.updateInputFocus()
}

func (m *ConvertModel) View() string {
	switch m.state {
	case ConvertInputState:
		return m.renderInputForm()
	case ConvertFileSelectState:
		return m.renderFileSelector()
	case ConvertProgressState:
		return m.renderProgress()
	case ConvertResultState:
		return m.renderResult()
	}
	return ""
}

func (m *ConvertModel) renderInputForm() string {
	f := ui.frame(m.width)

	title := f.heading.Render("Convert JSON export to choice lists")

	form := f.panel.Render(
		ui.label.Render("JSON files (space separated):") + "\n" + m.inputsInput.View() + "\n\n" +
			ui.label.Render("Output directory:") + "\n" + m.outPathInput.View(),
	)

	help := f.hint.Render("Tab: Switch field • Ctrl+F: Browse files • Enter: Convert • Esc: Back to menu")

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

func (m *ConvertModel) renderFileSelector() string {
	title := ui.heading.Render("Add JSON File")

	if len(m.files) == 0 {
		content := ui.warn.Render("No JSON files found in current directory")
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

	help := ui.hint.Render("↑/↓: Navigate • Enter: Add • Esc: Cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, fileList, help)
}

func (m *ConvertModel) renderProgress() string {
	f := ui.frame(m.width)

	title := f.heading.Render("Converting...")

	progressWidth := m.width - 10
	if progressWidth < 20 {
		progressWidth = 20
	}
	if progressWidth > 80 {
		progressWidth = 80
	}

	progressBar := lipgloss.NewStyle().Width(progressWidth).Render(m.progress.ViewAs(m.progressVal))
	progressText := fmt.Sprintf("%d of %d files", len(m.results), len(m.queue))

	content := ui.gauge.Render(progressBar + "\n" + progressText)
	help := f.hint.Render("Please wait...")

	return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
}

func (m *ConvertModel) renderResult() string {
	title := ui.heading.Render("Conversion Complete")

	var status string
	if m.err != nil {
		status = ui.fail.Render(fmt.Sprintf("An error occurred.\n\n%v", m.err))
	} else {
		status = ui.ok.Render(fmt.Sprintf("Converted %d files", len(m.results)))
	}

	var lines []string
	for _, r := range m.results {
		lines = append(lines, fmt.Sprintf("%s → %s: %d lists, %d rows", r.Input, r.Output, r.Lists, r.Rows))
		if len(r.Skipped) > 0 {
			lines = append(lines, fmt.Sprintf("   skipped empty lists: %s", strings.Join(r.Skipped, ", ")))
		}
		if len(r.Replaced) > 0 {
			lines = append(lines, ui.warn.Render(fmt.Sprintf("   repeated fields, last kept: %s", strings.Join(r.Replaced, ", "))))
		}
		if r.Overwrote {
			lines = append(lines, ui.warn.Render("   overwrote the output of an earlier file"))
		}
	}

	help := ui.hint.Render("Enter: Convert more files • Esc: Back to menu")

	return lipgloss.JoinVertical(lipgloss.Left, title, status, strings.Join(lines, "\n"), help)
}
