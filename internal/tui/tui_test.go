package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"choiceLists/internal/publish"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formJSON = `{"Name":"Q1","Properties":{"ResponseOptionsJson":"[{\"NumericValue\":1,\"ToolTip\":\"Yes\"}]"}}`

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMenu_SelectsScreens(t *testing.T) {
	t.Parallel()

	menu := NewMenuModel()
	_, cmd := menu.Update(enterKey)
	require.NotNil(t, cmd)
	assert.Equal(t, ScreenChangeMsg{Screen: ConvertScreen}, cmd())

	menu.Update(downKey)
	_, cmd = menu.Update(enterKey)
	require.NotNil(t, cmd)
	assert.Equal(t, ScreenChangeMsg{Screen: PushScreen}, cmd())
}

func TestModel_EscReturnsToMenu(t *testing.T) {
	t.Parallel()

	var m tea.Model = NewModel(Defaults{})
	m, _ = m.Update(ScreenChangeMsg{Screen: PushScreen})
	assert.Equal(t, PushScreen, m.(Model).currentScreen)

	// "q" is text on a form
	m, _ = m.Update(runeKey("q"))
	assert.Equal(t, PushScreen, m.(Model).currentScreen)

	m, _ = m.Update(escKey)
	assert.Equal(t, MenuScreen, m.(Model).currentScreen)
}

func TestModel_EscIgnoredWhileBusy(t *testing.T) {
	t.Parallel()

	model := NewModel(Defaults{})
	model.pushModel.state = PushProgressState

	var m tea.Model = model
	m, _ = m.Update(ScreenChangeMsg{Screen: PushScreen})
	m, _ = m.Update(escKey)

	assert.Equal(t, PushScreen, m.(Model).currentScreen)
}

func TestConvertModel_ConvertsEveryInput(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	firstDir, secondDir := t.TempDir(), t.TempDir()
	first := filepath.Join(firstDir, "a.json")
	second := filepath.Join(secondDir, "b.json")
	require.NoError(t, os.WriteFile(first, []byte(formJSON), 0600))
	require.NoError(t, os.WriteFile(second, []byte(formJSON), 0600))

	m := NewConvertModel(Defaults{})
	m.inputsInput.SetValue(first + " " + second)

	// --- Act ---
	_, cmd := m.Update(enterKey)
	require.NotNil(t, cmd)
	assert.Equal(t, ConvertProgressState, m.state)

	_, cmd = m.Update(cmd())
	require.NotNil(t, cmd)
	assert.InDelta(t, 0.5, m.progressVal, 0.001)

	_, cmd = m.Update(cmd())

	// --- Assert ---
	assert.Nil(t, cmd)
	assert.Equal(t, ConvertResultState, m.state)
	require.NoError(t, m.err)
	require.Len(t, m.results, 2)
	assert.FileExists(t, filepath.Join(firstDir, "choice_lists.csv"))
	assert.FileExists(t, filepath.Join(secondDir, "choice_lists.csv"))
	assert.Contains(t, m.View(), "Converted 2 files")

	m.Update(enterKey)
	assert.Equal(t, ConvertInputState, m.state)
	assert.Empty(t, m.inputsInput.Value())
}

func TestConvertModel_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(formJSON), 0600))
	missing := filepath.Join(dir, "missing.json")

	m := NewConvertModel(Defaults{})
	m.inputsInput.SetValue(missing + " " + good)

	_, cmd := m.Update(enterKey)
	require.NotNil(t, cmd)
	_, cmd = m.Update(cmd())

	assert.Nil(t, cmd)
	assert.Equal(t, ConvertResultState, m.state)
	assert.Error(t, m.err)
	assert.Empty(t, m.results)
	assert.NoFileExists(t, filepath.Join(dir, "choice_lists.csv"))
	assert.Contains(t, m.View(), "An error occurred.")
}

func TestConvertModel_BadSchemaFile(t *testing.T) {
	t.Parallel()

	m := NewConvertModel(Defaults{SchemaFile: filepath.Join(t.TempDir(), "nope.yaml")})
	m.inputsInput.SetValue("export.json")

	_, cmd := m.Update(enterKey)

	assert.Nil(t, cmd)
	assert.Equal(t, ConvertResultState, m.state)
	assert.Error(t, m.err)
}

func TestConvertModel_AddInputSkipsDuplicates(t *testing.T) {
	t.Parallel()

	m := NewConvertModel(Defaults{})
	m.addInput("a.json")
	m.addInput("b.json")
	m.addInput("a.json")

	assert.Equal(t, []string{"a.json", "b.json"}, m.inputPaths())
}

func TestPushModel_ConfirmAndPush(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var gotURI, gotDB, gotCollection, gotFile string
	m := NewPushModel(Defaults{DBURI: "mongodb://db:27017", DBName: "forms", Collection: "choices"})
	m.push = func(_ context.Context, dbURI, dbName, collection, csvFile string) (publish.PushResult, error) {
		gotURI, gotDB, gotCollection, gotFile = dbURI, dbName, collection, csvFile
		return publish.PushResult{Lists: 2, Rows: 5, Removed: 1}, nil
	}
	m.csvFileInput.SetValue("choice_lists.csv")

	// --- Act ---
	m.Update(enterKey)
	require.Equal(t, PushConfirmState, m.state)
	assert.Contains(t, m.View(), "forms.choices")

	_, cmd := m.Update(runeKey("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, PushProgressState, m.state)
	m.Update(cmd())

	// --- Assert ---
	assert.Equal(t, PushResultState, m.state)
	assert.Equal(t, "mongodb://db:27017", gotURI)
	assert.Equal(t, "forms", gotDB)
	assert.Equal(t, "choices", gotCollection)
	assert.Equal(t, "choice_lists.csv", gotFile)
	assert.Contains(t, m.View(), "Push completed successfully!")
}

func TestPushModel_Cancel(t *testing.T) {
	t.Parallel()

	called := false
	m := NewPushModel(Defaults{DBURI: "mongodb://db:27017", DBName: "forms", Collection: "choices"})
	m.push = func(context.Context, string, string, string, string) (publish.PushResult, error) {
		called = true
		return publish.PushResult{}, nil
	}
	m.csvFileInput.SetValue("choice_lists.csv")

	m.Update(enterKey)
	_, cmd := m.Update(runeKey("n"))

	assert.Nil(t, cmd)
	assert.Equal(t, PushInputState, m.state)
	assert.False(t, called)
}

func TestPushModel_RequiresEveryField(t *testing.T) {
	t.Parallel()

	m := NewPushModel(Defaults{DBURI: "mongodb://db:27017", DBName: "forms"})
	m.csvFileInput.SetValue("choice_lists.csv")

	m.Update(enterKey)

	assert.Equal(t, PushInputState, m.state)
}

func TestPushModel_ShowsFailure(t *testing.T) {
	t.Parallel()

	m := NewPushModel(Defaults{})
	m.state = PushProgressState

	m.Update(PushCompleteMsg{Err: errors.New("no reachable servers")})

	assert.Equal(t, PushResultState, m.state)
	assert.Contains(t, m.View(), "no reachable servers")
}

func TestFrame_SizesToTerminal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 24, ui.frame(0).panel.GetWidth())
	assert.Equal(t, 96, ui.frame(100).heading.GetWidth())
	assert.Equal(t, 96, ui.frame(100).hint.GetWidth())
}

func TestMenu_ViewListsEveryChoice(t *testing.T) {
	t.Parallel()

	menu := NewMenuModel()
	menu.SetSize(80, 24)

	view := menu.View()

	for _, choice := range menu.choices {
		assert.Contains(t, view, choice)
	}
}
