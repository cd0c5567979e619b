package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema names the keys of the vendor export that the extractor and the
// flattener look at.
type Schema struct {
	NameKey       string `yaml:"name_key"`
	PropertiesKey string `yaml:"properties_key"`
	OptionsKey    string `yaml:"options_key"`
	ChildrenKey   string `yaml:"children_key"`
	ValueKey      string `yaml:"value_key"`
	LabelKey      string `yaml:"label_key"`
}

func DefaultSchema() Schema {
	return Schema{
		NameKey:       "Name",
		PropertiesKey: "Properties",
		OptionsKey:    "ResponseOptionsJson",
		ChildrenKey:   "SubEntities",
		ValueKey:      "NumericValue",
		LabelKey:      "ToolTip",
	}
}

// LoadSchema reads a YAML override file. Keys missing from the file keep
// their default names.
func LoadSchema(path string) (Schema, error) {
	schema := DefaultSchema()

	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("failed to read schema file: %w", err)
	}
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return Schema{}, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	if err := schema.Validate(); err != nil {
		return Schema{}, fmt.Errorf("invalid schema file %s: %w", path, err)
	}
	return schema, nil
}

func (s Schema) Validate() error {
	keys := []struct {
		field string
		value string
	}{
		{"name_key", s.NameKey},
		{"properties_key", s.PropertiesKey},
		{"options_key", s.OptionsKey},
		{"children_key", s.ChildrenKey},
		{"value_key", s.ValueKey},
		{"label_key", s.LabelKey},
	}
	for _, k := range keys {
		if k.value == "" {
			return fmt.Errorf("%s must not be empty", k.field)
		}
	}
	return nil
}
