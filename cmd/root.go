package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"choiceLists/internal/convert"
	"choiceLists/internal/extract"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	inputJSON  []string
	outPath    string
	schemaFile string
)

var rootCmd = &cobra.Command{
	Use:   "choicelists -i FILE [FILE ...] [-o DIR]",
	Short: "Extract choice list options from survey JSON exports into CSV",
	Long: `choicelists finds the choice lists embedded in a survey platform's JSON
export and writes their options to choice_lists.csv with the columns
list_name, name and label.

The output goes to the directory of each input unless --outpath is given.
--outpath is used as a prefix, so end it with a path separator.`,
	Args: cobra.ArbitraryArgs,
	RunE: runConvert,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringArrayVarP(&inputJSON, "input-json", "i", nil, "Input JSON file; further files may follow as arguments")
	rootCmd.Flags().StringVarP(&outPath, "outpath", "o", "", "Output directory for choice_lists.csv (defaults to each input's directory)")
	rootCmd.Flags().StringVar(&schemaFile, "schema", "", "YAML file overriding the JSON key names")

	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(tuiCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Error loading .env file: %v", err)
	}

	setFromEnv(&outPath, "CHOICES_OUTPATH", "outpath", rootCmd)
	setFromEnv(&schemaFile, "CHOICES_SCHEMA", "schema", rootCmd)
	setFromEnv(&dbURI, "DB_URI", "db-uri", pushCmd, exportCmd)
	setFromEnv(&dbName, "DB_NAME", "database", pushCmd, exportCmd)
	setFromEnv(&collection, "DB_COLLECTION", "collection", pushCmd, exportCmd)
}

// setFromEnv copies an environment variable into target unless the flag was
// given on the command line.
func setFromEnv(target *string, key, flag string, cmds ...*cobra.Command) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	for _, c := range cmds {
		if c.Flags().Changed(flag) {
			return
		}
	}
	*target = v
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputs := append(append([]string{}, inputJSON...), args...)
	if len(inputs) == 0 {
		return cmd.Help()
	}

	if err := convertInputs(cmd, inputs); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "An error occurred.\n\n%v\n", err)
	}
	return nil
}

func convertInputs(cmd *cobra.Command, inputs []string) error {
	schema, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}

	service := convert.NewService(convert.Options{
		OutPath: outPath,
		Schema:  schema,
	})

	results, err := service.Run(cmd.Context(), inputs)
	for _, r := range results {
		if len(r.Skipped) > 0 {
			log.Printf("Skipped %d fields with empty choice lists in %s", len(r.Skipped), r.Input)
		}
	}
	return err
}

func loadSchema(path string) (extract.Schema, error) {
	if path == "" {
		return extract.DefaultSchema(), nil
	}
	schema, err := extract.LoadSchema(path)
	if err != nil {
		return extract.Schema{}, err
	}
	log.Printf("Using key names from %s", path)
	return schema, nil
}
