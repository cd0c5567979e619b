// Package document holds a JSON tree as a tagged value so the vendor export
// can be walked without type assertions on interface{} maps.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Member is one key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a parsed JSON value. The zero Value is null.
type Value struct {
	kind    Kind
	text    string // string contents, or the number literal as written
	boolean bool
	elems   []Value
	members []Member
}

func NullValue() Value { return Value{} }
func NewBool(b bool) Value { return Value{kind: Bool, boolean: b} }
func NewString(s string) Value { return Value{kind: String, text: s} }
func NewArray(elems ...Value) Value { return Value{kind: Array, elems: elems} }

// NewNumber wraps a number literal. The literal is not validated.
func NewNumber(literal string) Value { return Value{kind: Number, text: literal} }

func NewObject(members ...Member) Value { return Value{kind: Object, members: members} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == Null }
func (v Value) Elems() []Value { return v.elems }

// Str returns the contents of a string value.
func (v Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.text, true
}

// Get looks up key in an object. When an object repeats a key the last
// occurrence wins, the same as decoding into a map would.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	for i := len(v.members) - 1; i >= 0; i-- {
		if v.members[i].Key == key {
			return v.members[i].Value, true
		}
	}
	return Value{}, false
}

// Text renders a scalar for tabular output: strings verbatim, numbers via
// formatNumber, booleans as True/False and null as None. It reports false
// for arrays and objects.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case String:
		return v.text, true
	case Number:
		return formatNumber(v.text), true
	case Bool:
		if v.boolean {
			return "True", true
		}
		return "False", true
	case Null:
		return "None", true
	}
	return "", false
}

// Visitor receives a value dispatched on its kind by Accept.
type Visitor interface {
	VisitObject(v Value) error
	VisitArray(v Value) error
	VisitScalar(v Value) error
}

func Accept(v Value, vis Visitor) error {
	switch v.kind {
	case Object:
		return vis.VisitObject(v)
	case Array:
		return vis.VisitArray(v)
	default:
		return vis.VisitScalar(v)
	}
}

// Parse decodes exactly one JSON value from data. Number literals are kept
// verbatim so "1" never turns into "1.0".
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return Value{}, err
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return Value{}, io.ErrUnexpectedEOF
	}
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return NewString(t), nil
	case json.Number:
		return NewNumber(t.String()), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return NullValue(), nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (Value, error) {
	members := []Member{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %v, not a string", tok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		members = append(members, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return NewObject(members...), nil
}

func parseArray(dec *json.Decoder) (Value, error) {
	elems := []Value{}
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return NewArray(elems...), nil
}
