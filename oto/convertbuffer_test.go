package oto

import (
	"bytes"
	"testing"
)

func TestInt16BufferToLE(t *testing.T) {
	got := Int16BufferToLE([]int16{0x1234, -2, 0}, nil)
	expected := []byte{0x34, 0x12, 0xFE, 0xFF, 0, 0}
	if !bytes.Equal(got, expected) {
		t.Errorf("Int16BufferToLE = % x, expected % x", got, expected)
	}
	reused := Int16BufferToLE([]int16{1}, got[:0])
	if &reused[0] != &got[0] {
		t.Errorf("the destination buffer was not reused")
	}
}
