// Package publish moves choice list CSVs in and out of a MongoDB collection.
package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"choiceLists/internal/csv"
	"choiceLists/internal/models"
)

// Store is the subset of the database the service needs.
type Store interface {
	ReplaceList(ctx context.Context, collectionName, listName string, rows []models.ChoiceRow) (int64, error)
	LoadRows(ctx context.Context, collectionName, listName string) ([]models.ChoiceRow, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

type PushResult struct {
	Lists   int
	Rows    int
	Removed int64
}

// PushFile reads a choice list CSV and stores it list by list.
func (s *Service) PushFile(ctx context.Context, collectionName, csvFile string) (PushResult, error) {
	rows, err := csv.NewParser(csvFile).ParseRows()
	if err != nil {
		return PushResult{}, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return s.PushRows(ctx, collectionName, rows)
}

// PushRows replaces each list present in rows. Lists not mentioned in rows
// are left alone.
func (s *Service) PushRows(ctx context.Context, collectionName string, rows []models.ChoiceRow) (PushResult, error) {
	groups, err := GroupRows(rows)
	if err != nil {
		return PushResult{}, err
	}

	var result PushResult
	for _, g := range groups {
		removed, err := s.store.ReplaceList(ctx, collectionName, g.Name, g.Rows)
		if err != nil {
			return result, fmt.Errorf("failed to push choice list %s: %w", g.Name, err)
		}
		result.Lists++
		result.Rows += len(g.Rows)
		result.Removed += removed
	}
	return result, nil
}

// ExportCollection writes the stored rows (one list, or all when listName is
// empty) to a timestamped CSV in outputDir and returns its path.
func (s *Service) ExportCollection(ctx context.Context, collectionName, listName, outputDir string) (string, int, error) {
	rows, err := s.store.LoadRows(ctx, collectionName, listName)
	if err != nil {
		return "", 0, fmt.Errorf("failed to load choice rows: %w", err)
	}
	if len(rows) == 0 {
		return "", 0, fmt.Errorf("no choice rows found in collection %s", collectionName)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := s.now().Format("20060102_150405")
	filename := fmt.Sprintf("choice_lists_export_%s.csv", timestamp)
	path := filepath.Join(outputDir, filename)

	if err := csv.WriteFile(path, rows); err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("export failed: %w", err)
	}

	return path, len(rows), nil
}

// Group is the rows of one choice list.
type Group struct {
	Name string
	Rows []models.ChoiceRow
}

// GroupRows splits rows by list name, keeping the order in which lists first
// appear and the order of rows within each list.
func GroupRows(rows []models.ChoiceRow) ([]Group, error) {
	index := make(map[string]int)
	var groups []Group
	for i, row := range rows {
		if row.ListName == "" {
			return nil, fmt.Errorf("row %d has an empty list_name", i+1)
		}
		pos, ok := index[row.ListName]
		if !ok {
			pos = len(groups)
			index[row.ListName] = pos
			groups = append(groups, Group{Name: row.ListName})
		}
		groups[pos].Rows = append(groups[pos].Rows, row)
	}
	return groups, nil
}
