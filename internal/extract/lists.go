package extract

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// emptyTokens are raw option strings that mean "no choice list".
var emptyTokens = map[string]bool{
	``:   true,
	`""`: true,
	`''`: true,
}

func IsEmptyToken(raw string) bool {
	return emptyTokens[raw]
}

// ChoiceLists maps a field name to its raw choice-list JSON string.
// Iteration follows first insertion; setting an existing name replaces the
// value in place.
type ChoiceLists struct {
	m *orderedmap.OrderedMap[string, string]
}

func NewChoiceLists() *ChoiceLists {
	return &ChoiceLists{m: orderedmap.New[string, string]()}
}

// Set records raw under name and reports whether an earlier value was
// replaced.
func (c *ChoiceLists) Set(name, raw string) bool {
	_, replaced := c.m.Set(name, raw)
	return replaced
}

func (c *ChoiceLists) Len() int {
	return c.m.Len()
}

// Each calls fn for every entry in iteration order and stops at the first
// error.
func (c *ChoiceLists) Each(fn func(name, raw string) error) error {
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		if err := fn(pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}

// Merge copies other into c with other's values winning. It returns the
// names that were already present in c.
func (c *ChoiceLists) Merge(other *ChoiceLists) []string {
	var replaced []string
	for pair := other.m.Oldest(); pair != nil; pair = pair.Next() {
		if c.Set(pair.Key, pair.Value) {
			replaced = append(replaced, pair.Key)
		}
	}
	return replaced
}

// FilterEmpty drops entries whose raw string is an empty token and returns
// the dropped names.
func (c *ChoiceLists) FilterEmpty() []string {
	var dropped []string
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		if IsEmptyToken(pair.Value) {
			dropped = append(dropped, pair.Key)
		}
	}
	for _, name := range dropped {
		c.m.Delete(name)
	}
	return dropped
}
