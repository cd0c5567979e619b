package cmd

import (
	"fmt"

	"choiceLists/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive TUI",
	Long: `Start the Terminal User Interface for converting survey JSON exports
and pushing the resulting choice lists to MongoDB.

Form defaults come from the same environment variables as the other
commands (CHOICES_OUTPATH, CHOICES_SCHEMA, DB_URI, DB_NAME, DB_COLLECTION).`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	model := tui.NewModel(tui.Defaults{
		OutPath:    outPath,
		SchemaFile: schemaFile,
		DBURI:      dbURI,
		DBName:     dbName,
		Collection: collection,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
