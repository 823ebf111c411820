package tonetrack

import (
	"fmt"
	"math"
)

const (
	BlockBits = 10
	BlockSize = 1 << BlockBits // samples in each block

	// LabelDigits is the width of the base-26 block labels returned by
	// Cursor.Label.
	LabelDigits = 8
)

// Cursor addresses a single sample of a track as a (block, offset) pair. The
// zero Cursor points at the first sample. Cursors are plain values and are not
// bound to any particular Track.
type Cursor struct {
	block  int
	offset int
}

// CursorAt returns the cursor for the flat sample index n.
func CursorAt(n int) (Cursor, error) {
	if n < 0 {
		return Cursor{}, fmt.Errorf("sample index %d: %w", n, ErrInvalidAddress)
	}
	return Cursor{block: n >> BlockBits, offset: n & (BlockSize - 1)}, nil
}

// CursorAtTime returns the cursor for the sample at t seconds, truncating
// t*sampleRate toward zero.
func CursorAtTime(t float64, sampleRate int) (Cursor, error) {
	f := t * float64(sampleRate)
	if math.IsNaN(f) || math.Abs(f) >= 1<<53 {
		return Cursor{}, fmt.Errorf("time %v s at %d Hz: %w", t, sampleRate, ErrInvalidAddress)
	}
	return CursorAt(int(f))
}

// Position returns the flat sample index of the cursor.
func (c Cursor) Position() int {
	return c.block<<BlockBits + c.offset
}

func (c Cursor) Block() int  { return c.block }
func (c Cursor) Offset() int { return c.offset }

// Advance returns the cursor moved by delta samples. delta may be negative as
// long as the result does not point before the first sample.
func (c Cursor) Advance(delta int) (Cursor, error) {
	return CursorAt(c.Position() + delta)
}

// Label returns the block index of the cursor as a fixed width lowercase
// base-26 string. Labels sort lexicographically in block order.
func (c Cursor) Label() string {
	return BlockLabel(c.block)
}

// BlockLabel encodes block as LabelDigits base-26 digits, 'a' being zero and
// the most significant digit first. Blocks at or beyond 26^LabelDigits wrap
// around.
func BlockLabel(block int) string {
	var b [LabelDigits]byte
	for i := LabelDigits - 1; i >= 0; i-- {
		b[i] = 'a' + byte(block%26)
		block /= 26
	}
	return string(b[:])
}

func (c Cursor) String() string {
	return fmt.Sprintf("%s+%d", c.Label(), c.offset)
}
