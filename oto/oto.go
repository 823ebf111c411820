package oto

import (
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/tonetrack/tonetrack"
)

// OtoContext plays mono 16-bit audio through the default audio device. oto
// allows only one context per process, so the sample rate is fixed when the
// context is created.
type OtoContext struct {
	context    *oto.Context
	sampleRate int
}

type OtoOutput struct {
	player    *oto.Player
	writer    *io.PipeWriter
	tmpBuffer []byte
}

const otoBufferSize = 100 * time.Millisecond

// NewContext creates and initializes a new OtoContext, waiting until the audio
// device is ready.
func NewContext(sampleRate int) (*OtoContext, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: tonetrack.NumChannels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   otoBufferSize,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context, sampleRate: sampleRate}, nil
}

func (c *OtoContext) SampleRate() int { return c.sampleRate }

// Output returns a new sink; samples written to it start playing immediately.
func (c *OtoContext) Output() tonetrack.AudioSink {
	r, w := io.Pipe()
	player := c.context.NewPlayer(r)
	player.Play()
	return &OtoOutput{player: player, writer: w}
}

// Close suspends the audio device. oto contexts cannot be disposed of, so the
// context is only paused.
func (c *OtoContext) Close() error {
	if err := c.context.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

// WriteAudio blocks until the player has consumed the samples.
func (o *OtoOutput) WriteAudio(buffer []int16) error {
	// we reuse the old capacity tmpBuffer by setting its length to zero. then,
	// we save the tmpBuffer so we can reuse it next time
	o.tmpBuffer = Int16BufferToLE(buffer, o.tmpBuffer[:0])
	if _, err := o.writer.Write(o.tmpBuffer); err != nil {
		return fmt.Errorf("cannot write to player: %w", err)
	}
	return nil
}

// Close waits for the queued audio to finish and disposes of the player.
func (o *OtoOutput) Close() error {
	o.writer.Close()
	for o.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
