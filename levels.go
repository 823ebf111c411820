package tonetrack

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// Levels summarizes the loudness of a track. Peak and RMS are relative to
// int16 full scale; the decibel values are dBFS and -Inf for silence.
type Levels struct {
	Peak, RMS     float64
	PeakDB, RMSDB float64
}

// Levels computes the peak and RMS levels over all allocated samples.
func (t *Track) Levels() Levels {
	if len(t.blocks) == 0 {
		return Levels{PeakDB: math.Inf(-1), RMSDB: math.Inf(-1)}
	}
	x := make([]float32, BlockSize)
	sq := make([]float32, BlockSize)
	var peak, power float64
	for _, b := range t.blocks {
		for i, v := range b {
			x[i] = float32(v)
		}
		vek32.MulNumber_Inplace(x, 1/float32(math.MaxInt16+1))
		vek32.Mul_Into(sq, x, x)
		peak = math.Max(peak, float64(vek32.Max(sq)))
		power += float64(vek32.Mean(sq))
	}
	l := Levels{Peak: math.Sqrt(peak), RMS: math.Sqrt(power / float64(len(t.blocks)))}
	l.PeakDB = 20 * math.Log10(l.Peak)
	l.RMSDB = 20 * math.Log10(l.RMS)
	return l
}
