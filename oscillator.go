package tonetrack

import (
	"fmt"
	"math"
	"strings"
)

const twoPi = 2 * math.Pi

// Oscillator computes periodic waveforms of a fixed frequency as a function of
// elapsed time. Zero or negative frequencies are accepted and just produce a
// degenerate (constant or reversed) phase.
type Oscillator struct {
	Frequency float64 // cycles per second
}

// Waveform selects one of the waveforms produced by an Oscillator.
type Waveform int

const (
	Sine Waveform = iota
	Ramp
	Triangle
	Pulse
)

var waveformNames = [...]string{"sine", "ramp", "triangle", "pulse"}

// Phase returns the phase of the oscillator at time t, in radians. For t >= 0
// and a positive frequency the result is in [0, 2π).
func (o Oscillator) Phase(t float64) float64 {
	return math.Mod(twoPi*o.Frequency*t, twoPi)
}

func (o Oscillator) Sine(t float64) float64 {
	return math.Sin(o.Phase(t))
}

// Ramp rises linearly from -1 at phase 0 to just under +1 at the end of the
// cycle, then wraps.
func (o Oscillator) Ramp(t float64) float64 {
	return o.Phase(t)/math.Pi - 1
}

// Triangle rises from -1 to +1 during the first half cycle and falls back to
// -1 during the second.
func (o Oscillator) Triangle(t float64) float64 {
	p := o.Phase(t)
	if p < math.Pi {
		return 2/math.Pi*p - 1
	}
	return -2/math.Pi*p + 3
}

// PWM returns +1 when the phase is past duty and -1 otherwise. duty is in
// radians, so math.Pi gives a square wave.
func (o Oscillator) PWM(t, duty float64) float64 {
	if o.Phase(t) > duty {
		return 1
	}
	return -1
}

// Value evaluates the waveform w at time t. duty is only used by Pulse.
func (o Oscillator) Value(w Waveform, t, duty float64) float64 {
	switch w {
	case Ramp:
		return o.Ramp(t)
	case Triangle:
		return o.Triangle(t)
	case Pulse:
		return o.PWM(t, duty)
	default:
		return o.Sine(t)
	}
}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

func (w Waveform) MarshalText() ([]byte, error) {
	if w < 0 || int(w) >= len(waveformNames) {
		return nil, fmt.Errorf("unknown waveform %d", int(w))
	}
	return []byte(waveformNames[w]), nil
}

func (w *Waveform) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	if name == "" {
		*w = Sine
		return nil
	}
	for i, n := range waveformNames {
		if n == name {
			*w = Waveform(i)
			return nil
		}
	}
	switch name {
	case "saw", "sawtooth":
		*w = Ramp
	case "square", "pwm":
		*w = Pulse
	default:
		return fmt.Errorf("unknown waveform %q", name)
	}
	return nil
}
