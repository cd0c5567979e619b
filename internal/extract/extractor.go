// Package extract finds the embedded choice-list strings of a vendor survey
// export and keys them by the name of the field that carries them.
package extract

import (
	"fmt"

	"choiceLists/internal/document"
)

type Extractor struct {
	schema Schema

	// OnReplace, when set, is called each time a field name that was already
	// found is found again. The later value is kept.
	OnReplace func(name string)
}

func New(schema Schema) *Extractor {
	return &Extractor{schema: schema}
}

// Find walks v depth-first, pre-order. A node's own choice list is recorded
// before anything found under its children key; sibling array elements are
// merged in order, later ones winning.
func (e *Extractor) Find(v document.Value) (*ChoiceLists, error) {
	return e.find(v, "$")
}

func (e *Extractor) find(v document.Value, path string) (*ChoiceLists, error) {
	w := &walker{extractor: e, path: path, found: NewChoiceLists()}
	if err := document.Accept(v, w); err != nil {
		return nil, err
	}
	return w.found, nil
}

type walker struct {
	extractor *Extractor
	path      string
	found     *ChoiceLists
}

func (w *walker) VisitObject(v document.Value) error {
	schema := w.extractor.schema

	if err := w.recordOptions(v); err != nil {
		return err
	}

	children, ok := v.Get(schema.ChildrenKey)
	if !ok || children.IsNull() {
		return nil
	}
	nested, err := w.extractor.find(children, w.path+"."+schema.ChildrenKey)
	if err != nil {
		return err
	}
	w.merge(nested)
	return nil
}

func (w *walker) VisitArray(v document.Value) error {
	for i, elem := range v.Elems() {
		nested, err := w.extractor.find(elem, fmt.Sprintf("%s[%d]", w.path, i))
		if err != nil {
			return err
		}
		w.merge(nested)
	}
	return nil
}

func (w *walker) VisitScalar(document.Value) error {
	return nil
}

func (w *walker) recordOptions(v document.Value) error {
	schema := w.extractor.schema

	props, ok := v.Get(schema.PropertiesKey)
	if !ok || props.Kind() != document.Object {
		return nil
	}
	options, ok := props.Get(schema.OptionsKey)
	if !ok {
		return nil
	}

	nameVal, ok := v.Get(schema.NameKey)
	if !ok {
		return &SchemaError{Path: w.path, Key: schema.NameKey, Reason: "is missing on a field with choice options"}
	}
	if k := nameVal.Kind(); k != document.String && k != document.Number {
		return &SchemaError{Path: w.path, Key: schema.NameKey, Reason: fmt.Sprintf("must be a string, got %s", k)}
	}
	name, _ := nameVal.Text()

	raw, ok := options.Str()
	if !ok {
		return &SchemaError{
			Path:   w.path + "." + schema.PropertiesKey,
			Key:    schema.OptionsKey,
			Reason: fmt.Sprintf("must be a JSON-encoded string, got %s", options.Kind()),
		}
	}

	if w.found.Set(name, raw) {
		w.replaced(name)
	}
	return nil
}

func (w *walker) merge(nested *ChoiceLists) {
	for _, name := range w.found.Merge(nested) {
		w.replaced(name)
	}
}

func (w *walker) replaced(name string) {
	if w.extractor.OnReplace != nil {
		w.extractor.OnReplace(name)
	}
}
