package tonetrack

import (
	"errors"
	"io"
	"testing"
)

func TestWavHeaderSizeLimit(t *testing.T) {
	largest := int64(maxWavData)
	if err := wavHeader(int(largest), 44100, io.Discard); err != nil {
		t.Errorf("largest data chunk rejected: %v", err)
	}
	for _, n := range []int64{maxWavData + 1, 1 << 33, -2} {
		if err := wavHeader(int(n), 44100, io.Discard); !errors.Is(err, ErrResourceExhausted) {
			t.Errorf("wavHeader(%d) error = %v, expected ErrResourceExhausted", n, err)
		}
	}
}
