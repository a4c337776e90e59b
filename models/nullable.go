package models

import (
	"bytes"
	"encoding/json"
)

type nullState uint8

const (
	stateUnset nullState = iota
	stateNull
	stateValue
)

// Nullable is a three-state field for partial updates: unset (leave the
// stored value alone), null (clear it) or a concrete value.
//
// Use the `omitzero` JSON option so unset fields are dropped on encode.
type Nullable[T any] struct {
	value T
	state nullState
}

// Value returns a Nullable holding v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, state: stateValue}
}

// Null returns a Nullable that explicitly clears the field.
func Null[T any]() Nullable[T] {
	return Nullable[T]{state: stateNull}
}

// Unset returns a Nullable that leaves the field unchanged.
func Unset[T any]() Nullable[T] {
	return Nullable[T]{}
}

// FromPtr maps nil to Null and anything else to Value.
func FromPtr[T any](p *T) Nullable[T] {
	if p == nil {
		return Null[T]()
	}
	return Value(*p)
}

func (n Nullable[T]) IsSet() bool   { return n.state != stateUnset }
func (n Nullable[T]) IsNull() bool  { return n.state == stateNull }
func (n Nullable[T]) IsValue() bool { return n.state == stateValue }

// IsZero reports whether the field is unset. encoding/json consults it for omitzero.
func (n Nullable[T]) IsZero() bool { return n.state == stateUnset }

// Get returns the wrapped value and whether one is present.
func (n Nullable[T]) Get() (T, bool) {
	return n.value, n.state == stateValue
}

// Ptr returns a pointer to the value, or nil when unset or null.
func (n Nullable[T]) Ptr() *T {
	if n.state != stateValue {
		return nil
	}
	v := n.value
	return &v
}

// Apply records the field in a column update map. Unset fields are skipped,
// null fields map to nil.
func (n Nullable[T]) Apply(updates map[string]interface{}, column string) {
	switch n.state {
	case stateNull:
		updates[column] = nil
	case stateValue:
		updates[column] = n.value
	}
}

// Interface returns the wrapped value or nil. The validator uses it to look
// through the wrapper.
func (n Nullable[T]) Interface() interface{} {
	if n.state != stateValue {
		return nil
	}
	return n.value
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.state != stateValue {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		n.value = zero
		n.state = stateNull
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.value = v
	n.state = stateValue
	return nil
}
