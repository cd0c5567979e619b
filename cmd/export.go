package cmd

import (
	"fmt"
	"log"

	"choiceLists/internal/database"
	"choiceLists/internal/publish"

	"github.com/spf13/cobra"
)

var (
	exportDir  string
	exportList string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored choice lists from MongoDB to CSV",
	Long:  "Export the choice lists stored in a MongoDB collection to a timestamped CSV file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "output", "o", "./exports", "Output directory for the CSV file")
	exportCmd.Flags().StringVarP(&exportList, "list", "l", "", "Export only this choice list (if empty, exports all lists)")
	exportCmd.Flags().StringVarP(&dbURI, "db-uri", "u", "mongodb://localhost:27017", "MongoDB connection URI")
	exportCmd.Flags().StringVarP(&dbName, "database", "d", "choicelists", "Database name")
	exportCmd.Flags().StringVarP(&collection, "collection", "t", "choices", "Collection name")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := database.NewMongoDB(cmd.Context(), dbURI, dbName)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer db.Close()

	if exportList != "" {
		log.Printf("Starting export of choice list '%s' from %s.%s...", exportList, dbName, collection)
	} else {
		log.Printf("Starting export of all choice lists from %s.%s...", dbName, collection)
	}

	path, count, err := publish.NewService(db).ExportCollection(cmd.Context(), collection, exportList, exportDir)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	log.Printf("Export completed successfully: %d rows written to %s", count, path)
	return nil
}
