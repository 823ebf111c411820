package tonetrack

import "fmt"

// AudioSink consumes mono 16-bit samples at the sample rate of the track being
// played. Close blocks until everything written has been played.
type AudioSink interface {
	WriteAudio(buffer []int16) error
	Close() error
}

type AudioContext interface {
	Output() AudioSink
	Close() error
}

// Play writes all allocated blocks of the track to sink, in order. The caller
// is responsible for closing the sink.
func (t *Track) Play(sink AudioSink) error {
	for i, b := range t.blocks {
		if err := sink.WriteAudio(b[:]); err != nil {
			return fmt.Errorf("could not play block %d: %w", i, err)
		}
	}
	return nil
}
