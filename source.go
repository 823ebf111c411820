package tonetrack

// Source supplies samples to Track.Record one at a time. Once Done reports
// true it must keep doing so.
type Source interface {
	Done() bool
	NextSample() float64
}

// QuantizedSource is a Source whose samples are already in the fixed point
// storage domain of a Track. Record uses NextQuantized instead of NextSample
// for such sources.
type QuantizedSource interface {
	Source
	NextQuantized() int16
}

// SourceFunc turns a function of the sample number into a Source that produces
// n samples.
func SourceFunc(n int, f func(i int) float64) Source {
	return &funcSource{n: n, f: f}
}

type funcSource struct {
	i, n int
	f    func(i int) float64
}

func (s *funcSource) Done() bool { return s.i >= s.n }

func (s *funcSource) NextSample() float64 {
	if s.Done() {
		return 0
	}
	v := s.f(s.i)
	s.i++
	return v
}
