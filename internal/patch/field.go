// Package patch implements partial updates: each optional field carries an
// explicit presence flag, and only present fields are merged onto a record.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is an optional value in an update payload. Set is true when the
// field was supplied; a supplied zero value ("" or false) still overwrites.
// A JSON null is treated the same as an absent key.
type Field[T any] struct {
	Value T
	Set   bool
}

// Of returns a present field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// UnmarshalJSON marks the field present unless the value is null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Field[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = v
	f.Set = true
	return nil
}

// MarshalJSON renders an absent field as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Setter assigns one field when applied and reports the column it touched.
type Setter func() (column string, changed bool)

// Set binds a field to its destination and store column.
func Set[T any](column string, dst *T, f Field[T]) Setter {
	return func() (string, bool) {
		if !f.Set {
			return column, false
		}
		*dst = f.Value
		return column, true
	}
}

// Apply runs every setter and returns the columns that were overwritten,
// in argument order. Absent fields leave their destination untouched.
func Apply(setters ...Setter) []string {
	var columns []string
	for _, set := range setters {
		if column, changed := set(); changed {
			columns = append(columns, column)
		}
	}
	return columns
}
