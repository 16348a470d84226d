package models

import (
	"bytes"
	"encoding/json"
)

type patchState uint8

const (
	patchUnset patchState = iota
	patchClear
	patchSet
)

// Patch is a tri-state update field: Unset leaves the target alone, Clear
// resets it and Set replaces it with a value. The zero value is Unset.
//
// Decoded from JSON, an absent key stays Unset, an explicit null becomes
// Clear and anything else becomes Set.
type Patch[T any] struct {
	state patchState
	value T
}

func Unset[T any]() Patch[T] {
	return Patch[T]{}
}

func Clear[T any]() Patch[T] {
	return Patch[T]{state: patchClear}
}

func Set[T any](value T) Patch[T] {
	return Patch[T]{state: patchSet, value: value}
}

func (p Patch[T]) IsUnset() bool { return p.state == patchUnset }
func (p Patch[T]) IsClear() bool { return p.state == patchClear }
func (p Patch[T]) IsSet() bool   { return p.state == patchSet }

// Value returns the value and whether the patch is Set.
func (p Patch[T]) Value() (T, bool) {
	return p.value, p.state == patchSet
}

func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = Clear[T]()
		return nil
	}

	var value T
	err := json.Unmarshal(data, &value)
	if err != nil {
		return err
	}
	*p = Set(value)
	return nil
}

func (p Patch[T]) MarshalJSON() ([]byte, error) {
	if p.state != patchSet {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}
