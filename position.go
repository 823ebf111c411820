package tonetrack

import (
	"fmt"
	"reflect"
)

// Position is anything that can be resolved to a Cursor: a flat Index or a
// Cursor itself.
type Position interface {
	Cursor() (Cursor, error)
}

// Index is a flat sample index.
type Index int

func (i Index) Cursor() (Cursor, error) {
	return CursorAt(int(i))
}

// Cursor implements Position, so that a cursor can be passed wherever an index
// is expected.
func (c Cursor) Cursor() (Cursor, error) {
	if c.block < 0 || c.offset < 0 || c.offset >= BlockSize {
		return Cursor{}, fmt.Errorf("cursor (%d, %d): %w", c.block, c.offset, ErrInvalidAddress)
	}
	return c, nil
}

// Resolve converts a dynamically typed value into a Cursor. It accepts plain
// integers, Index, Cursor and any other Position; everything else fails with
// ErrTypeMismatch.
func Resolve(v any) (Cursor, error) {
	switch p := v.(type) {
	case int:
		return CursorAt(p)
	case int64:
		return CursorAt(int(p))
	case int32:
		return CursorAt(int(p))
	case Position:
		return resolve(p)
	default:
		return Cursor{}, fmt.Errorf("cannot address a sample with %T: %w", v, ErrTypeMismatch)
	}
}

// resolve is the single step turning a Position into a validated Cursor. Nil
// positions, including typed nil pointers, fail with ErrTypeMismatch.
func resolve(p Position) (Cursor, error) {
	if p == nil {
		return Cursor{}, fmt.Errorf("cannot address a sample with nil: %w", ErrTypeMismatch)
	}
	if v := reflect.ValueOf(p); v.Kind() == reflect.Pointer && v.IsNil() {
		return Cursor{}, fmt.Errorf("cannot address a sample with nil %T: %w", p, ErrTypeMismatch)
	}
	return p.Cursor()
}
