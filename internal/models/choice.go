package models

// ChoiceRow is one option of a choice list as written to choice_lists.csv.
// ListName is the field the list belongs to; Name is the option value.
type ChoiceRow struct {
	ListName string `csv:"list_name" bson:"list_name"`
	Name     string `csv:"name" bson:"name"`
	Label    string `csv:"label" bson:"label"`
}

// Header is the fixed column order of the choice list CSV.
var Header = []string{"list_name", "name", "label"}
