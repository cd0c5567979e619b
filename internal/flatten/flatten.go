// Package flatten turns one raw choice-list string into CSV rows.
package flatten

import (
	"fmt"
	"strings"

	"choiceLists/internal/document"
	"choiceLists/internal/extract"
	"choiceLists/internal/models"
)

// repairs are applied in order over the whole string. They only match the
// exact spellings exports are known to produce.
var repairs = []struct {
	from string
	to   string
}{
	{"}, ]", "} ]"},
	{"},]", "}]"},
	{"], ]", "] ]"},
	{"],]", "]]"},
}

// Repair removes a trailing comma before a closing bracket.
func Repair(raw string) string {
	for _, r := range repairs {
		raw = strings.ReplaceAll(raw, r.from, r.to)
	}
	return raw
}

// MalformedListError reports a choice list that is not valid JSON even after
// Repair.
type MalformedListError struct {
	Name string
	Err  error
}

func (e *MalformedListError) Error() string {
	return fmt.Sprintf("choice list for %q is not valid JSON: %v", e.Name, e.Err)
}

func (e *MalformedListError) Unwrap() error { return e.Err }

type Flattener struct {
	schema extract.Schema
}

func New(schema extract.Schema) *Flattener {
	return &Flattener{schema: schema}
}

// Flatten parses raw and returns one row per option, in list order.
func (f *Flattener) Flatten(name, raw string) ([]models.ChoiceRow, error) {
	list, err := document.Parse([]byte(Repair(raw)))
	if err != nil {
		return nil, &MalformedListError{Name: name, Err: err}
	}
	if list.Kind() != document.Array {
		return nil, &extract.SchemaError{
			Path:   name,
			Key:    f.schema.OptionsKey,
			Reason: fmt.Sprintf("must hold a JSON array, got %s", list.Kind()),
		}
	}

	rows := make([]models.ChoiceRow, 0, len(list.Elems()))
	for i, option := range list.Elems() {
		path := fmt.Sprintf("%s[%d]", name, i)
		if option.Kind() != document.Object {
			return nil, &extract.SchemaError{
				Path:   path,
				Key:    f.schema.ValueKey,
				Reason: fmt.Sprintf("cannot be read from a %s option", option.Kind()),
			}
		}

		value, err := f.scalar(option, path, f.schema.ValueKey)
		if err != nil {
			return nil, err
		}
		label, err := f.scalar(option, path, f.schema.LabelKey)
		if err != nil {
			return nil, err
		}

		rows = append(rows, models.ChoiceRow{ListName: name, Name: value, Label: label})
	}
	return rows, nil
}

func (f *Flattener) scalar(option document.Value, path, key string) (string, error) {
	v, ok := option.Get(key)
	if !ok {
		return "", &extract.SchemaError{Path: path, Key: key, Reason: "is missing"}
	}
	s, ok := v.Text()
	if !ok {
		return "", &extract.SchemaError{Path: path, Key: key, Reason: fmt.Sprintf("must be a scalar, got %s", v.Kind())}
	}
	return s, nil
}
