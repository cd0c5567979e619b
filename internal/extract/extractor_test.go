package extract

import (
	"errors"
	"testing"

	"choiceLists/internal/document"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) document.Value {
	t.Helper()
	v, err := document.Parse([]byte(src))
	require.NoError(t, err)
	return v
}

func entries(t *testing.T, lists *ChoiceLists) [][2]string {
	t.Helper()
	var out [][2]string
	require.NoError(t, lists.Each(func(name, raw string) error {
		out = append(out, [2]string{name, raw})
		return nil
	}))
	return out
}

func listNames(t *testing.T, lists *ChoiceLists) []string {
	t.Helper()
	var names []string
	for _, e := range entries(t, lists) {
		names = append(names, e[0])
	}
	return names
}

func TestFind_SingleField(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `{"Name":"Q1","Properties":{"ResponseOptionsJson":"[1]"},"SubEntities":null}`)

	lists, err := New(DefaultSchema()).Find(v)

	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"Q1", "[1]"}}, entries(t, lists))
}

func TestFind_NestedChildren(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `{
		"Name": "Group",
		"Properties": {},
		"SubEntities": [
			{"Name": "A", "Properties": {"ResponseOptionsJson": "a"}},
			{"Name": "B", "Properties": {"ResponseOptionsJson": "b"},
			 "SubEntities": {"Name": "C", "Properties": {"ResponseOptionsJson": "c"}, "SubEntities": null}}
		]
	}`)

	lists, err := New(DefaultSchema()).Find(v)

	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"A", "a"}, {"B", "b"}, {"C", "c"}}, entries(t, lists))
}

func TestFind_TopLevelArray(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `[
		{"Name": "A", "Properties": {"ResponseOptionsJson": "a"}},
		42,
		"text",
		{"Name": "B", "Properties": {"ResponseOptionsJson": "b"}}
	]`)

	lists, err := New(DefaultSchema()).Find(v)

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, listNames(t, lists))
}

func TestFind_OnlyDescendsIntoChildrenKey(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `{
		"Name": "Root",
		"Other": {"Name": "Hidden", "Properties": {"ResponseOptionsJson": "x"}}
	}`)

	lists, err := New(DefaultSchema()).Find(v)

	require.NoError(t, err)
	assert.Equal(t, 0, lists.Len())
}

func TestFind_DuplicateNamesLastWriteWins(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `[
		{"Name": "Q1", "Properties": {"ResponseOptionsJson": "first"}},
		{"Name": "Q2", "Properties": {"ResponseOptionsJson": "second"}},
		{"Name": "Q1", "Properties": {"ResponseOptionsJson": "third"}}
	]`)

	var replaced []string
	ex := New(DefaultSchema())
	ex.OnReplace = func(name string) { replaced = append(replaced, name) }

	lists, err := ex.Find(v)

	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"Q1", "third"}, {"Q2", "second"}}, entries(t, lists))
	assert.Equal(t, []string{"Q1"}, replaced)
}

func TestFind_ParentRecordedBeforeChildren(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `{
		"Name": "Q1", "Properties": {"ResponseOptionsJson": "parent"},
		"SubEntities": [{"Name": "Q1", "Properties": {"ResponseOptionsJson": "child"}}]
	}`)

	lists, err := New(DefaultSchema()).Find(v)

	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"Q1", "child"}}, entries(t, lists))
}

func TestFind_NonObjectPropertiesIsIgnored(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `[{"Name": "A", "Properties": null}, {"Name": "B", "Properties": ["ResponseOptionsJson"]}]`)

	lists, err := New(DefaultSchema()).Find(v)

	require.NoError(t, err)
	assert.Equal(t, 0, lists.Len())
}

func TestFind_SchemaErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   string
		wantKey string
		path    string
	}{
		{
			name:    "missing name",
			input:   `{"Properties": {"ResponseOptionsJson": "[]"}}`,
			wantKey: "Name",
			path:    "$",
		},
		{
			name:    "missing name in nested child",
			input:   `{"Name": "G", "SubEntities": [{}, {"Properties": {"ResponseOptionsJson": "[]"}}]}`,
			wantKey: "Name",
			path:    "$.SubEntities[1]",
		},
		{
			name:    "object name",
			input:   `{"Name": {}, "Properties": {"ResponseOptionsJson": "[]"}}`,
			wantKey: "Name",
			path:    "$",
		},
		{
			name:    "options not a string",
			input:   `{"Name": "Q", "Properties": {"ResponseOptionsJson": [1, 2]}}`,
			wantKey: "ResponseOptionsJson",
			path:    "$.Properties",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(DefaultSchema()).Find(mustParse(t, tc.input))

			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr), "expected *SchemaError, got %v", err)
			assert.Equal(t, tc.wantKey, schemaErr.Key)
			assert.Equal(t, tc.path, schemaErr.Path)
		})
	}
}

func TestFind_NumericName(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `{"Name": 7, "Properties": {"ResponseOptionsJson": "x"}}`)

	lists, err := New(DefaultSchema()).Find(v)

	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, listNames(t, lists))
}

func TestFind_CustomSchema(t *testing.T) {
	t.Parallel()

	schema := DefaultSchema()
	schema.NameKey = "Label"
	schema.ChildrenKey = "Children"

	v := mustParse(t, `{"Children": [{"Label": "L", "Properties": {"ResponseOptionsJson": "x"}}]}`)

	lists, err := New(schema).Find(v)

	require.NoError(t, err)
	assert.Equal(t, []string{"L"}, listNames(t, lists))
}

func TestFilterEmpty(t *testing.T) {
	t.Parallel()

	lists := NewChoiceLists()
	lists.Set("empty", ``)
	lists.Set("keep", `[{"NumericValue":1,"ToolTip":"Yes"}]`)
	lists.Set("double", `""`)
	lists.Set("single", `''`)
	lists.Set("spaces", ` `)

	dropped := lists.FilterEmpty()

	assert.Equal(t, []string{"empty", "double", "single"}, dropped)
	assert.Equal(t, []string{"keep", "spaces"}, listNames(t, lists))
}
