package report

import "encoding/json"

// Field is a report attribute that is either a concrete value or Unknown.
// The zero Field is Unknown.
type Field[T any] struct {
	value T
	known bool
}

func Known[T any](v T) Field[T] {
	return Field[T]{value: v, known: true}
}

func Unknown[T any]() Field[T] {
	return Field[T]{}
}

// Get returns the value and whether it is known. An unknown field always
// yields the zero value; callers must check the flag.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.known
}

func (f Field[T]) IsKnown() bool {
	return f.known
}

// MarshalJSON encodes Unknown as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.known {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
