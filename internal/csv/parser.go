package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"choiceLists/internal/models"

	"github.com/jszwec/csvutil"
)

type Parser struct {
	filename string
}

func NewParser(filename string) *Parser {
	return &Parser{filename: filename}
}

// ParseRows reads a choice list CSV. Columns are matched by header name.
func (p *Parser) ParseRows() ([]models.ChoiceRow, error) {
	file, err := os.Open(p.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return ReadRows(file)
}

func ReadRows(r io.Reader) ([]models.ChoiceRow, error) {
	decoder, err := csvutil.NewDecoder(csv.NewReader(r))
	if err == io.EOF {
		return nil, fmt.Errorf("CSV has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}

	if missing := missingColumns(decoder.Header()); len(missing) > 0 {
		return nil, fmt.Errorf("CSV is missing columns %v", missing)
	}

	rows := []models.ChoiceRow{}
	if err := decoder.Decode(&rows); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode CSV: %w", err)
	}
	return rows, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, h := range models.Header {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	return missing
}
