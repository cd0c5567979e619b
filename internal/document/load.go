package document

import (
	"bytes"
	"fmt"
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadError reports an input file that could not be read or is not JSON
// under either decoding attempt.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

var errInvalidUTF8 = errors.New("input is not valid UTF-8")

// Load reads and parses a JSON file. The bytes are first parsed as plain
// UTF-8; if that fails they are decoded once more with a byte order mark
// honoured and stripped, and parsed again. Bytes that are not UTF-8 fail
// both attempts.
func Load(path string) (Value, error) {
	file, err := os.Open(path)
	if err != nil {
		return Value{}, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Value{}, &LoadError{Path: path, Err: err}
	}

	if !utf8.Valid(data) {
		return Value{}, &LoadError{Path: path, Err: errInvalidUTF8}
	}

	v, err := Parse(data)
	if err == nil {
		return v, nil
	}

	decoded, decErr := decodeWithBOM(data)
	if decErr != nil {
		return Value{}, &LoadError{Path: path, Err: decErr}
	}
	v, err = Parse(decoded)
	if err != nil {
		return Value{}, &LoadError{Path: path, Err: err}
	}
	return v, nil
}

func decodeWithBOM(data []byte) ([]byte, error) {
	r := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode with byte order mark: %w", err)
	}
	return decoded, nil
}
