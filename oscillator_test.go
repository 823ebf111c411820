package tonetrack_test

import (
	"math"
	"testing"

	"github.com/tonetrack/tonetrack"
)

const tolerance = 1e-9

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%v = %v, expected %v", name, got, want)
	}
}

func TestOscillatorReferencePoints(t *testing.T) {
	for _, f := range []float64{1, 2, 440} {
		osc := tonetrack.Oscillator{Frequency: f}
		T := 1 / f
		approx(t, "sine(0)", osc.Sine(0), 0)
		approx(t, "sine(T/4)", osc.Sine(T/4), 1)
		approx(t, "sine(T/2)", osc.Sine(T/2), 0)
		approx(t, "sine(3T/4)", osc.Sine(3*T/4), -1)
		approx(t, "ramp(0)", osc.Ramp(0), -1)
		approx(t, "ramp(T/4)", osc.Ramp(T/4), -0.5)
		approx(t, "ramp(T/2)", osc.Ramp(T/2), 0)
		approx(t, "ramp(3T/4)", osc.Ramp(3*T/4), 0.5)
		approx(t, "triangle(0)", osc.Triangle(0), -1)
		approx(t, "triangle(T/4)", osc.Triangle(T/4), 0)
		approx(t, "triangle(T/2)", osc.Triangle(T/2), 1)
		approx(t, "triangle(3T/4)", osc.Triangle(3*T/4), 0)
	}
}

func TestOscillatorRanges(t *testing.T) {
	osc := tonetrack.Oscillator{Frequency: 440}
	for i := 0; i < 10000; i++ {
		ti := float64(i) / 44100
		if p := osc.Phase(ti); p < 0 || p >= 2*math.Pi {
			t.Fatalf("phase(%v) = %v, expected to be in [0, 2π)", ti, p)
		}
		for _, w := range []tonetrack.Waveform{tonetrack.Sine, tonetrack.Ramp, tonetrack.Triangle, tonetrack.Pulse} {
			if v := osc.Value(w, ti, math.Pi); v < -1 || v > 1 {
				t.Fatalf("%v(%v) = %v, expected to be in [-1, 1]", w, ti, v)
			}
		}
	}
}

func TestPWM(t *testing.T) {
	osc := tonetrack.Oscillator{Frequency: 1}
	if v := osc.PWM(0.25, math.Pi); v != -1 {
		t.Errorf("pwm before duty = %v, expected -1", v)
	}
	if v := osc.PWM(0.75, math.Pi); v != 1 {
		t.Errorf("pwm after duty = %v, expected 1", v)
	}
	if v := osc.PWM(0.25, 0.1); v != 1 {
		t.Errorf("pwm with narrow duty = %v, expected 1", v)
	}
}

func TestDegenerateFrequency(t *testing.T) {
	osc := tonetrack.Oscillator{}
	for _, ti := range []float64{0, 0.3, 10} {
		approx(t, "zero frequency sine", osc.Sine(ti), 0)
		approx(t, "zero frequency ramp", osc.Ramp(ti), -1)
	}
	neg := tonetrack.Oscillator{Frequency: -3}
	if v := neg.Sine(0.1); math.IsNaN(v) {
		t.Errorf("negative frequency gave NaN")
	}
}

func TestWaveformText(t *testing.T) {
	for _, tc := range []struct {
		text string
		want tonetrack.Waveform
	}{
		{"sine", tonetrack.Sine},
		{"", tonetrack.Sine},
		{"Ramp", tonetrack.Ramp},
		{"saw", tonetrack.Ramp},
		{"triangle", tonetrack.Triangle},
		{"square", tonetrack.Pulse},
		{"pulse", tonetrack.Pulse},
	} {
		var w tonetrack.Waveform
		if err := w.UnmarshalText([]byte(tc.text)); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", tc.text, err)
		}
		if w != tc.want {
			t.Errorf("UnmarshalText(%q) = %v, expected %v", tc.text, w, tc.want)
		}
	}
	var w tonetrack.Waveform
	if err := w.UnmarshalText([]byte("wobble")); err == nil {
		t.Errorf("UnmarshalText should fail for unknown waveforms")
	}
	if b, err := tonetrack.Triangle.MarshalText(); err != nil || string(b) != "triangle" {
		t.Errorf("MarshalText = %q, %v, expected \"triangle\"", b, err)
	}
}
