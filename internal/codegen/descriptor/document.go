// Package descriptor reads the description.json emitted next to every RNBO
// export and exposes typed access to its fields.
package descriptor

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/tidwall/gjson"
)

var (
	ErrNotFound     = errors.New("descriptor not found")
	ErrParseError   = errors.New("descriptor is not well-formed JSON")
	ErrMissingField = errors.New("missing field")
	ErrTypeMismatch = errors.New("field type mismatch")
)

// Document is a parsed JSON object with typed field accessors.
// It is immutable once created.
type Document struct {
	fields map[string]gjson.Result
}

// Read loads and parses the JSON object stored at path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read descriptor %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse parses data, which must hold a single JSON object.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrParseError
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrParseError)
	}
	return &Document{fields: res.Map()}, nil
}

func (d *Document) lookup(name string) (gjson.Result, error) {
	v, ok := d.fields[name]
	if !ok {
		return gjson.Result{}, fmt.Errorf("%w: %q", ErrMissingField, name)
	}
	return v, nil
}

func mismatch(name, want string, got gjson.Result) error {
	return fmt.Errorf("%w: %q is %s, expected %s", ErrTypeMismatch, name, kindOf(got), want)
}

func kindOf(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "an object"
	case r.IsArray():
		return "an array"
	}
	switch r.Type {
	case gjson.True, gjson.False:
		return "a boolean"
	case gjson.Number:
		return "a number"
	case gjson.String:
		return "a string"
	default:
		return "null"
	}
}

// Has reports whether the field is present, regardless of its type.
func (d *Document) Has(name string) bool {
	_, ok := d.fields[name]
	return ok
}

func (d *Document) Bool(name string) (bool, error) {
	v, err := d.lookup(name)
	if err != nil {
		return false, err
	}
	switch v.Type {
	case gjson.True:
		return true, nil
	case gjson.False:
		return false, nil
	}
	return false, mismatch(name, "a boolean", v)
}

func (d *Document) String(name string) (string, error) {
	v, err := d.lookup(name)
	if err != nil {
		return "", err
	}
	if v.Type != gjson.String {
		return "", mismatch(name, "a string", v)
	}
	return v.Str, nil
}

// OptionalString returns def when the field is absent. A present field of
// another type is still a mismatch.
func (d *Document) OptionalString(name, def string) (string, error) {
	if !d.Has(name) {
		return def, nil
	}
	return d.String(name)
}

// Integer returns the field as an int. Numbers with a fractional part are
// rejected.
func (d *Document) Integer(name string) (int, error) {
	v, err := d.lookup(name)
	if err != nil {
		return 0, err
	}
	if v.Type != gjson.Number {
		return 0, mismatch(name, "an integer", v)
	}
	if v.Num != math.Trunc(v.Num) || math.Abs(v.Num) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q is %s, expected an integer", ErrTypeMismatch, name, v.Raw)
	}
	return int(v.Num), nil
}

func (d *Document) Double(name string) (float64, error) {
	v, err := d.lookup(name)
	if err != nil {
		return 0, err
	}
	if v.Type != gjson.Number {
		return 0, mismatch(name, "a number", v)
	}
	return v.Num, nil
}

// ObjectArray returns the elements of an array of objects, in document order.
func (d *Document) ObjectArray(name string) ([]*Document, error) {
	v, err := d.lookup(name)
	if err != nil {
		return nil, err
	}
	if !v.IsArray() {
		return nil, mismatch(name, "an array", v)
	}
	elems := v.Array()
	out := make([]*Document, 0, len(elems))
	for i, e := range elems {
		if !e.IsObject() {
			return nil, fmt.Errorf("%w: %q[%d] is %s, expected an object", ErrTypeMismatch, name, i, kindOf(e))
		}
		out = append(out, &Document{fields: e.Map()})
	}
	return out, nil
}
