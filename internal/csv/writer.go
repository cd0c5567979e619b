package csv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"choiceLists/internal/models"

	"github.com/jszwec/csvutil"
)

// WriteFile creates or truncates path and writes the header followed by rows.
func WriteFile(path string, rows []models.ChoiceRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}

	if err := WriteRows(file, rows); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}
	return nil
}

// WriteRows writes the header and rows as comma separated, newline
// terminated records. The header is written even when rows is empty.
func WriteRows(w io.Writer, rows []models.ChoiceRow) error {
	writer := newRecordWriter(w)

	encoder := csvutil.NewEncoder(writer)
	encoder.AutoHeader = false
	if err := encoder.EncodeHeader(models.ChoiceRow{}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if len(rows) > 0 {
		if err := encoder.Encode(rows); err != nil {
			return fmt.Errorf("failed to encode CSV rows: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// recordWriter quotes a field only when it holds a comma, a double quote or
// a line break. Leading spaces are written as they are.
type recordWriter struct {
	w *bufio.Writer
}

func newRecordWriter(w io.Writer) *recordWriter {
	return &recordWriter{w: bufio.NewWriter(w)}
}

func (r *recordWriter) Write(record []string) error {
	for i, field := range record {
		if i > 0 {
			r.w.WriteByte(',')
		}
		if !needsQuotes(field) {
			r.w.WriteString(field)
			continue
		}
		r.w.WriteByte('"')
		r.w.WriteString(strings.ReplaceAll(field, `"`, `""`))
		r.w.WriteByte('"')
	}
	_, err := r.w.WriteString("\n")
	return err
}

func (r *recordWriter) Flush() error {
	return r.w.Flush()
}

func needsQuotes(field string) bool {
	return strings.ContainsAny(field, ",\"\r\n")
}
