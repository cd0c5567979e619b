// Package convert runs the JSON to choice list CSV conversion for whole
// files.
package convert

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"choiceLists/internal/csv"
	"choiceLists/internal/document"
	"choiceLists/internal/extract"
	"choiceLists/internal/flatten"
	"choiceLists/internal/models"
)

// OutputFileName is the name of the CSV written for every input.
const OutputFileName = "choice_lists.csv"

type Options struct {
	// OutPath is prepended verbatim to OutputFileName, so a directory needs
	// its trailing separator. Empty means the directory of each input.
	OutPath string
	// Schema defaults to extract.DefaultSchema when left zero.
	Schema extract.Schema
	Logger *log.Logger
}

type Service struct {
	outPath string
	schema  extract.Schema
	logger  *log.Logger
}

func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	schema := opts.Schema
	if schema == (extract.Schema{}) {
		schema = extract.DefaultSchema()
	}
	return &Service{
		outPath: opts.OutPath,
		schema:  schema,
		logger:  logger,
	}
}

// FileResult summarises one converted input.
type FileResult struct {
	Input  string
	Output string
	Lists  int
	Rows   int
	// Skipped lists the fields whose choice list was an empty token.
	Skipped []string
	// Replaced lists field names found more than once; the last one won.
	Replaced []string
	// Overwrote is set when an earlier input of the same run had already
	// written Output.
	Overwrote bool
}

// OutputPath returns where the CSV for input goes.
func OutputPath(input, outPath string) string {
	if outPath != "" {
		return outPath + OutputFileName
	}
	return filepath.Dir(input) + string(filepath.Separator) + OutputFileName
}

// Run converts paths one after another in the given order and stops at the
// first failure. Results of the inputs converted before it are returned
// along with the error.
func (s *Service) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	batch := s.NewBatch()
	results := make([]FileResult, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, err := batch.Convert(ctx, path)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Batch converts inputs one at a time and notices when an input's output
// replaces the file another input of the same batch produced.
type Batch struct {
	service *Service
	written map[string]string
}

func (s *Service) NewBatch() *Batch {
	return &Batch{service: s, written: make(map[string]string)}
}

func (b *Batch) Convert(ctx context.Context, path string) (FileResult, error) {
	result, err := b.service.ProcessFile(ctx, path)
	if err != nil {
		return result, err
	}

	key := filepath.Clean(result.Output)
	if previous, ok := b.written[key]; ok {
		result.Overwrote = true
		b.service.logger.Printf("Warning: %s overwrote %s written for %s", path, result.Output, previous)
	}
	b.written[key] = path
	return result, nil
}

// ProcessFile converts a single input file.
func (s *Service) ProcessFile(ctx context.Context, path string) (FileResult, error) {
	result := FileResult{Input: path, Output: OutputPath(path, s.outPath)}

	doc, err := document.Load(path)
	if err != nil {
		return result, err
	}

	rows, err := s.Rows(ctx, doc, &result)
	if err != nil {
		return result, fmt.Errorf("failed to process %s: %w", path, err)
	}

	if err := csv.WriteFile(result.Output, rows); err != nil {
		return result, fmt.Errorf("failed to write output for %s: %w", path, err)
	}

	s.logger.Printf("Processed %d choice lists (%d rows) from %s into %s", result.Lists, result.Rows, path, result.Output)
	return result, nil
}

// Rows extracts and flattens every choice list of doc. result, when not nil,
// receives the counts.
func (s *Service) Rows(ctx context.Context, doc document.Value, result *FileResult) ([]models.ChoiceRow, error) {
	if result == nil {
		result = &FileResult{}
	}

	extractor := extract.New(s.schema)
	extractor.OnReplace = func(name string) {
		result.Replaced = append(result.Replaced, name)
		s.logger.Printf("Warning: field %q appears more than once; keeping the last choice list", name)
	}

	lists, err := extractor.Find(doc)
	if err != nil {
		return nil, err
	}
	result.Skipped = lists.FilterEmpty()

	flattener := flatten.New(s.schema)
	rows := make([]models.ChoiceRow, 0, lists.Len())
	err = lists.Each(func(name, raw string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		listRows, err := flattener.Flatten(name, raw)
		if err != nil {
			return err
		}
		rows = append(rows, listRows...)
		result.Lists++
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Rows = len(rows)
	return rows, nil
}
