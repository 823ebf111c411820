package tonetrack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"gopkg.in/yaml.v3"
)

// DefaultOutput is the output file name template used when a Score does not
// define one.
const DefaultOutput = "{{ .Name }}.wav"

type (
	// Score lists the notes to be recorded into a track. Scores are usually
	// loaded from .yml or .json files with LoadScore. Output may use the Sprig
	// template functions, e.g. "{{ .Name | snakecase }}.wav".
	Score struct {
		Name       string `yaml:",omitempty" json:"name,omitempty"`
		SampleRate int    `yaml:",omitempty" json:"samplerate,omitempty"`
		Output     string `yaml:",omitempty" json:"output,omitempty"` // text/template of the output file name
		Notes      []Note `json:"notes"`
	}

	// Note is a single tone in a Score. Start and Duration are in seconds,
	// Frequency in Hz. A zero Amplitude means full amplitude (1). FixedPoint
	// notes are generated with the integer Voice oscillator instead of
	// Oscillator and ignore Amplitude and Duty.
	Note struct {
		Start      float64
		Duration   float64
		Frequency  float64
		Waveform   Waveform `yaml:",omitempty" json:"waveform,omitempty"`
		Duty       float64  `yaml:",omitempty" json:"duty,omitempty"`
		Amplitude  float64  `yaml:",omitempty" json:"amplitude,omitempty"`
		FixedPoint bool     `yaml:",omitempty" json:"fixedpoint,omitempty"`
	}
)

// LoadScore parses a score from either JSON or YAML.
func LoadScore(data []byte) (Score, error) {
	var score Score
	if errJSON := json.Unmarshal(data, &score); errJSON != nil {
		score = Score{}
		if errYaml := yaml.Unmarshal(data, &score); errYaml != nil {
			return Score{}, fmt.Errorf("the score could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	return score, nil
}

// DemoScore returns four staggered beeps of rising pitch.
func DemoScore() Score {
	return Score{
		Name:       "demo",
		SampleRate: DefaultSampleRate,
		Notes: []Note{
			{Start: 0, Duration: 4, Frequency: 800},
			{Start: 1, Duration: 3, Frequency: 1000},
			{Start: 2, Duration: 2, Frequency: 1200},
			{Start: 3, Duration: 1, Frequency: 1600},
		},
	}
}

// Validate checks that the score can be rendered: non-negative sample rate,
// at least one note, and every note starting at a finite, non-negative time.
// Frequencies are not checked; odd ones just give odd sounds.
func (s *Score) Validate() error {
	if s.SampleRate < 0 {
		return errors.New("sample rate should be >= 0")
	}
	if len(s.Notes) == 0 {
		return errors.New("score contains no notes")
	}
	for i, n := range s.Notes {
		if n.Start < 0 || math.IsNaN(n.Start) || math.IsInf(n.Start, 0) {
			return fmt.Errorf("note %d: start time %v: %w", i, n.Start, ErrInvalidAddress)
		}
		if math.IsNaN(n.Duration) || math.IsInf(n.Duration, 0) {
			return fmt.Errorf("note %d: duration should be finite", i)
		}
	}
	return nil
}

// Rate returns the sample rate of the score, DefaultSampleRate if unset.
func (s *Score) Rate() int {
	if s.SampleRate <= 0 {
		return DefaultSampleRate
	}
	return s.SampleRate
}

// Render records all the notes of the score, in order, into a new track.
func (s *Score) Render(opts ...TrackOption) (*Track, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid score: %w", err)
	}
	track := NewTrack(s.Rate(), opts...)
	for i, n := range s.Notes {
		if _, err := track.Record(n.Start, n.Source(s.Rate())); err != nil {
			return nil, fmt.Errorf("could not record note %d: %w", i, err)
		}
	}
	return track, nil
}

// Source returns the Source playing the note at sampleRate.
func (n Note) Source(sampleRate int) Source {
	amplitude := n.Amplitude
	if amplitude == 0 {
		amplitude = 1
	}
	if n.FixedPoint {
		samples := int(math.Max(0, math.Ceil(n.Duration*float64(sampleRate))))
		return NewVoiceSource(NewVoice(n.Frequency, sampleRate), n.Waveform, samples)
	}
	opts := []ToneOption{WithWaveform(n.Waveform), WithAmplitude(amplitude)}
	if n.Duty != 0 {
		opts = append(opts, WithDuty(n.Duty))
	}
	return NewTone(n.Duration, n.Frequency, sampleRate, opts...)
}

// OutputName executes the Output template of the score. The template sees the
// fields Name, SampleRate and Notes (the number of notes).
func (s *Score) OutputName() (string, error) {
	text := s.Output
	if text == "" {
		text = DefaultOutput
	}
	tmpl, err := template.New("output").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("could not parse output template: %w", err)
	}
	name := s.Name
	if name == "" {
		name = "track"
	}
	var buf bytes.Buffer
	data := struct {
		Name       string
		SampleRate int
		Notes      int
	}{name, s.Rate(), len(s.Notes)}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("could not execute output template: %w", err)
	}
	name = buf.String()
	if name == "" {
		return "", errors.New("output template produced an empty name")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("output name %q should be a plain file name", name)
	}
	return name, nil
}
