package tonetrack

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/xid"
)

const (
	ScaleBits = 12
	Scale     = 1 << ScaleBits // fixed point scale of float samples

	DefaultSampleRate = 44100
)

type (
	// Track is a mono recording of signed 16-bit samples, stored in blocks of
	// BlockSize samples. Blocks are allocated on demand: touching a sample in
	// block k allocates all blocks up to and including k, zero-filled. A track
	// never shrinks.
	//
	// Track is not safe for concurrent use.
	Track struct {
		id         xid.ID
		dir        string
		sampleRate int
		blocks     []*block
		cursor     Cursor
		recorder   Recorder
	}

	block [BlockSize]int16

	// TrackOption configures a Track created with NewTrack.
	TrackOption func(*Track)

	// Recorder receives counts of what a Track does. It is satisfied by
	// metrics.Metrics.
	Recorder interface {
		SamplesRecorded(n int)
		BlocksAllocated(n int)
		BytesWritten(n int)
	}

	nopRecorder struct{}
)

func (nopRecorder) SamplesRecorded(int) {}
func (nopRecorder) BlocksAllocated(int) {}
func (nopRecorder) BytesWritten(int)    {}

// WithDir sets the directory where the track places its output files. By
// default, a temporary directory is created when it is first needed.
func WithDir(dir string) TrackOption {
	return func(t *Track) { t.dir = dir }
}

// WithRecorder reports block allocations, recorded samples and written bytes
// to r.
func WithRecorder(r Recorder) TrackOption {
	return func(t *Track) {
		if r != nil {
			t.recorder = r
		}
	}
}

// NewTrack returns an empty track for the given sample rate. Non-positive
// sample rates fall back to DefaultSampleRate.
func NewTrack(sampleRate int, opts ...TrackOption) *Track {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	t := &Track{id: xid.New(), sampleRate: sampleRate, recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Track) ID() string      { return t.id.String() }
func (t *Track) SampleRate() int { return t.sampleRate }
func (t *Track) NumBlocks() int  { return len(t.blocks) }

// Len returns the number of allocated samples.
func (t *Track) Len() int { return len(t.blocks) * BlockSize }

// Seconds returns the length of the allocated part of the track in seconds.
func (t *Track) Seconds() float64 {
	return float64(BlockSize*len(t.blocks)) / float64(t.sampleRate)
}

func (t *Track) Duration() time.Duration {
	return time.Duration(t.Seconds() * float64(time.Second))
}

// ByteLength returns the size of the sample data, as written in the data chunk
// of the wav file.
func (t *Track) ByteLength() int {
	return BytesPerSample * BlockSize * len(t.blocks)
}

// Dir returns the output directory of the track, creating a temporary one
// named after the track if none was given.
func (t *Track) Dir() (string, error) {
	if t.dir != "" {
		return t.dir, nil
	}
	dir, err := os.MkdirTemp("", "tonetrack-"+t.id.String()+"-")
	if err != nil {
		return "", fmt.Errorf("could not create track directory: %w: %w", ErrResourceExhausted, err)
	}
	t.dir = dir
	return dir, nil
}

func (t *Track) String() string {
	return fmt.Sprintf("<Track %s %g seconds>", t.id, t.Seconds())
}

// Read returns the sample at p.
func (t *Track) Read(p Position) (int16, error) {
	c, err := resolve(p)
	if err != nil {
		return 0, err
	}
	return t.ensure(c.block)[c.offset], nil
}

// Write adds delta to the sample at p. Overlapping writes mix by addition and
// wrap around on int16 overflow.
func (t *Track) Write(p Position, delta int16) error {
	c, err := resolve(p)
	if err != nil {
		return err
	}
	t.ensure(c.block)[c.offset] += delta
	return nil
}

// WriteNext adds delta at the current cursor of the track and moves the cursor
// one sample forward.
func (t *Track) WriteNext(delta int16) error {
	if err := t.Write(t.cursor, delta); err != nil {
		return err
	}
	c, err := t.cursor.Advance(1)
	if err != nil {
		return err
	}
	t.cursor = c
	return nil
}

// Seek moves the current cursor used by WriteNext.
func (t *Track) Seek(p Position) error {
	c, err := resolve(p)
	if err != nil {
		return err
	}
	t.cursor = c
	return nil
}

// Cursor returns the current cursor used by WriteNext.
func (t *Track) Cursor() Cursor { return t.cursor }

// ReadRange is reserved for bulk reads and always fails.
func (t *Track) ReadRange(from, to Position) ([]int16, error) {
	return nil, fmt.Errorf("Track.ReadRange: %w", ErrNotImplemented)
}

// WriteRange is reserved for bulk writes and always fails.
func (t *Track) WriteRange(from, to Position, samples []int16) error {
	return fmt.Errorf("Track.WriteRange: %w", ErrNotImplemented)
}

// Record drives src until it is done, writing its samples to consecutive
// positions starting at start seconds. Float samples are scaled by Scale and
// truncated; sources implementing QuantizedSource are written as is. Record
// returns the number of samples written.
func (t *Track) Record(start float64, src Source) (int, error) {
	c, err := CursorAtTime(start, t.sampleRate)
	if err != nil {
		return 0, err
	}
	q, quantized := src.(QuantizedSource)
	n := 0
	for !src.Done() {
		var sample int16
		if quantized {
			sample = q.NextQuantized()
		} else {
			sample = Quantize(src.NextSample())
		}
		t.ensure(c.block)[c.offset] += sample
		n++
		// Advance cannot fail going forward from a valid cursor.
		c, _ = c.Advance(1)
	}
	t.recorder.SamplesRecorded(n)
	return n, nil
}

// Quantize converts a float sample into the fixed point storage domain,
// truncating toward zero.
func Quantize(v float64) int16 {
	return int16(int(Scale * v))
}

// ensure grows the track to contain block k and returns it.
func (t *Track) ensure(k int) *block {
	if added := k + 1 - len(t.blocks); added > 0 {
		for len(t.blocks) <= k {
			t.blocks = append(t.blocks, new(block))
		}
		t.recorder.BlocksAllocated(added)
	}
	return t.blocks[k]
}
