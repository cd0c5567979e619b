package extract

import "fmt"

// SchemaError reports a key the vendor format should carry that is missing
// or holds the wrong kind of value.
type SchemaError struct {
	Path   string
	Key    string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: key %q %s", e.Path, e.Key, e.Reason)
}
