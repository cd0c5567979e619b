package cmd

import (
	"fmt"
	"log"

	"choiceLists/internal/database"
	"choiceLists/internal/publish"

	"github.com/spf13/cobra"
)

var (
	csvFile    string
	dbURI      string
	dbName     string
	collection string
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push a choice list CSV to MongoDB",
	Long: `Push a choice_lists.csv to a MongoDB collection. Every list named in the
CSV replaces the options stored for it; other lists are left untouched.`,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringVarP(&csvFile, "csv", "c", "", "Choice list CSV to push (required)")
	pushCmd.Flags().StringVarP(&dbURI, "db-uri", "u", "mongodb://localhost:27017", "MongoDB connection URI")
	pushCmd.Flags().StringVarP(&dbName, "database", "d", "choicelists", "Database name")
	pushCmd.Flags().StringVarP(&collection, "collection", "t", "choices", "Collection name")

	pushCmd.MarkFlagRequired("csv")
}

func runPush(cmd *cobra.Command, args []string) error {
	db, err := database.NewMongoDB(cmd.Context(), dbURI, dbName)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer db.Close()

	result, err := publish.NewService(db).PushFile(cmd.Context(), collection, csvFile)
	if err != nil {
		return fmt.Errorf("push failed: %w", err)
	}

	log.Printf("Pushed %d choice lists (%d rows) from %s to %s.%s", result.Lists, result.Rows, csvFile, dbName, collection)
	if result.Removed > 0 {
		log.Printf("Replaced %d previously stored rows", result.Removed)
	}
	return nil
}
