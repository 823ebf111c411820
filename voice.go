package tonetrack

import "math"

// Fixed point layout of Voice. The phase accumulator wraps at
// 1<<PhaseModuloBits and the waveforms swing within ±(1<<WaveMaxBits).
const (
	WaveMaxBits     = 24
	TableSizeBits   = 13
	PhaseModuloBits = 30

	WaveMax     = 1 << WaveMaxBits
	TableSize   = 1 << TableSizeBits
	PhaseModulo = 1 << PhaseModuloBits
)

var sineTable = func() (table [TableSize]int32) {
	for i := range table {
		table[i] = int32(WaveMax * math.Sin(2*math.Pi*float64(i)/TableSize))
	}
	return
}()

// Voice is an integer phase accumulator oscillator. Unlike Oscillator it keeps
// state: every Step moves it forward by one sample.
type Voice struct {
	phase, dphase int
	sampleRate    int
}

func NewVoice(frequency float64, sampleRate int) *Voice {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	v := &Voice{sampleRate: sampleRate}
	v.SetFrequency(frequency)
	return v
}

func (v *Voice) SetFrequency(f float64) {
	v.dphase = int(PhaseModulo * f / float64(v.sampleRate))
}

func (v *Voice) Step() {
	v.phase = (v.phase + v.dphase) & (PhaseModulo - 1)
}

func (v *Voice) Phase() int { return v.phase }

func (v *Voice) tableIndex() int {
	return v.phase >> (PhaseModuloBits - TableSizeBits)
}

// Sine, Ramp and Triangle are scaled to the same RMS as Square, so they peak
// above WaveMax.
func (v *Voice) Sine() int {
	return int(math.Sqrt2 * float64(sineTable[v.tableIndex()]))
}

func (v *Voice) Square() int {
	if v.phase < PhaseModulo>>1 {
		return WaveMax
	}
	return -WaveMax
}

func (v *Voice) Ramp() int {
	return int(math.Sqrt(3) * float64((v.phase>>(PhaseModuloBits-WaveMaxBits-1))-WaveMax))
}

func (v *Voice) Triangle() int {
	if v.phase < PhaseModulo>>1 {
		return int(math.Sqrt(3) * float64((v.phase>>(PhaseModuloBits-WaveMaxBits-2))-WaveMax))
	}
	return int(math.Sqrt(3) * float64((-v.phase>>(PhaseModuloBits-WaveMaxBits-2))+3*WaveMax))
}

// Value returns the current value of waveform w. Pulse waves of a Voice are
// always square.
func (v *Voice) Value(w Waveform) int {
	switch w {
	case Ramp:
		return v.Ramp()
	case Triangle:
		return v.Triangle()
	case Pulse:
		return v.Square()
	default:
		return v.Sine()
	}
}

// VoiceSource plays a Voice for a fixed number of samples. Its samples are
// already quantized, so Track.Record stores them without rescaling.
type VoiceSource struct {
	Voice *Voice
	Wave  Waveform
	n     int
}

func NewVoiceSource(v *Voice, w Waveform, samples int) *VoiceSource {
	return &VoiceSource{Voice: v, Wave: w, n: samples}
}

func (s *VoiceSource) Done() bool { return s.n <= 0 }

func (s *VoiceSource) NextQuantized() int16 {
	if s.Done() {
		return 0
	}
	ret := int16(s.Voice.Value(s.Wave) >> (WaveMaxBits - ScaleBits))
	s.Voice.Step()
	s.n--
	return ret
}

// NextSample returns the next sample as a float, where WaveMax maps to 1.
func (s *VoiceSource) NextSample() float64 {
	if s.Done() {
		return 0
	}
	ret := float64(s.Voice.Value(s.Wave)) / WaveMax
	s.Voice.Step()
	s.n--
	return ret
}
