package tonetrack

import "math"

// Tone is a Source producing a waveform of fixed frequency for a given
// duration.
type Tone struct {
	Osc       Oscillator
	Wave      Waveform
	Duty      float64 // pulse width of Pulse waves, in radians
	Amplitude float64

	duration float64
	dt       float64
	t        float64
}

// ToneOption configures a Tone created with NewTone.
type ToneOption func(*Tone)

func WithWaveform(w Waveform) ToneOption {
	return func(t *Tone) { t.Wave = w }
}

// WithDuty sets the pulse width of Pulse waves, in radians.
func WithDuty(duty float64) ToneOption {
	return func(t *Tone) { t.Duty = duty }
}

func WithAmplitude(a float64) ToneOption {
	return func(t *Tone) { t.Amplitude = a }
}

// NewTone returns a sine wave of the given frequency, lasting duration seconds
// when sampled at sampleRate. Non-positive sample rates fall back to
// DefaultSampleRate.
func NewTone(duration, frequency float64, sampleRate int, opts ...ToneOption) *Tone {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	t := &Tone{
		Osc:       Oscillator{Frequency: frequency},
		Duty:      math.Pi,
		Amplitude: 1,
		duration:  duration,
		dt:        1 / float64(sampleRate),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tone) Done() bool {
	return t.t >= t.duration
}

// NextSample returns the waveform at the current time and advances time by one
// sample. A finished tone returns silence.
func (t *Tone) NextSample() float64 {
	var v float64
	if !t.Done() {
		v = t.Amplitude * t.Osc.Value(t.Wave, t.t, t.Duty)
	}
	t.t += t.dt
	return v
}

// Elapsed returns the time of the next sample, in seconds.
func (t *Tone) Elapsed() float64 { return t.t }
