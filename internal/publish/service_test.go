package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"choiceLists/internal/csv"
	"choiceLists/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	lists   map[string][]models.ChoiceRow
	order   []string
	failOn  string
	loadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{lists: map[string][]models.ChoiceRow{}}
}

func (f *fakeStore) ReplaceList(_ context.Context, _ string, listName string, rows []models.ChoiceRow) (int64, error) {
	if listName == f.failOn {
		return 0, errors.New("boom")
	}
	removed := int64(len(f.lists[listName]))
	if _, ok := f.lists[listName]; !ok {
		f.order = append(f.order, listName)
	}
	f.lists[listName] = rows
	return removed, nil
}

func (f *fakeStore) LoadRows(_ context.Context, _ string, listName string) ([]models.ChoiceRow, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	var rows []models.ChoiceRow
	for _, name := range f.order {
		if listName == "" || name == listName {
			rows = append(rows, f.lists[name]...)
		}
	}
	return rows, nil
}

var sampleRows = []models.ChoiceRow{
	{ListName: "consent", Name: "1", Label: "Yes"},
	{ListName: "sex", Name: "1", Label: "Male"},
	{ListName: "consent", Name: "2", Label: "No"},
}

func TestGroupRows(t *testing.T) {
	t.Parallel()

	groups, err := GroupRows(sampleRows)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "consent", groups[0].Name)
	assert.Equal(t, []models.ChoiceRow{sampleRows[0], sampleRows[2]}, groups[0].Rows)
	assert.Equal(t, "sex", groups[1].Name)

	_, err = GroupRows([]models.ChoiceRow{{Name: "1", Label: "x"}})
	assert.Error(t, err)
}

func TestPushFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "choice_lists.csv")
	require.NoError(t, csv.WriteFile(path, sampleRows))
	store := newFakeStore()
	store.lists["consent"] = []models.ChoiceRow{{ListName: "consent", Name: "9", Label: "Old"}}
	store.order = []string{"consent"}

	// --- Act ---
	result, err := NewService(store).PushFile(context.Background(), "choices", path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, PushResult{Lists: 2, Rows: 3, Removed: 1}, result)
	assert.Len(t, store.lists["consent"], 2)
	assert.Len(t, store.lists["sex"], 1)
}

func TestPushRows_StoreFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failOn = "sex"

	result, err := NewService(store).PushRows(context.Background(), "choices", sampleRows)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sex")
	assert.Equal(t, 1, result.Lists)
}

func TestExportCollection(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	store := newFakeStore()
	_, err := NewService(store).PushRows(context.Background(), "choices", sampleRows)
	require.NoError(t, err)

	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC) }
	outDir := filepath.Join(t.TempDir(), "exports")

	// --- Act ---
	path, count, err := svc.ExportCollection(context.Background(), "choices", "consent", outDir)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "choice_lists_export_20240301_123000.csv"), path)
	assert.Equal(t, 2, count)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "list_name,name,label\nconsent,1,Yes\nconsent,2,No\n", string(data))
}

func TestExportCollection_Errors(t *testing.T) {
	t.Parallel()

	empty := NewService(newFakeStore())
	_, _, err := empty.ExportCollection(context.Background(), "choices", "", t.TempDir())
	assert.Error(t, err)

	failing := newFakeStore()
	failing.loadErr = errors.New("connection reset")
	_, _, err = NewService(failing).ExportCollection(context.Background(), "choices", "", t.TempDir())
	assert.ErrorContains(t, err, "connection reset")
}
