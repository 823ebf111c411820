package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what the tracks of one process do. It implements
// tonetrack.Recorder. Every Metrics has its own registry, so several can live
// side by side in tests.
type Metrics struct {
	Registry *prometheus.Registry

	samples  prometheus.Counter
	blocks   prometheus.Counter
	bytes    prometheus.Counter
	rendered *prometheus.CounterVec
	duration prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tonetrack_samples_recorded_total",
			Help: "Total samples recorded into tracks",
		}),
		blocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tonetrack_blocks_allocated_total",
			Help: "Total sample blocks allocated",
		}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tonetrack_bytes_written_total",
			Help: "Total bytes of audio files written",
		}),
		rendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tonetrack_tracks_rendered_total",
			Help: "Total scores rendered by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tonetrack_track_duration_seconds",
			Help:    "Length of the rendered tracks in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 300, 600},
		}),
	}
	m.Registry.MustRegister(m.samples, m.blocks, m.bytes, m.rendered, m.duration)
	return m
}

func (m *Metrics) SamplesRecorded(n int) { m.samples.Add(float64(n)) }
func (m *Metrics) BlocksAllocated(n int) { m.blocks.Add(float64(n)) }
func (m *Metrics) BytesWritten(n int)    { m.bytes.Add(float64(n)) }

// Rendered records the outcome of rendering one score; seconds is only
// observed for successful renders.
func (m *Metrics) Rendered(seconds float64, err error) {
	if err != nil {
		m.rendered.WithLabelValues("error").Inc()
		return
	}
	m.rendered.WithLabelValues("ok").Inc()
	m.duration.Observe(seconds)
}

// WriteTextfile writes the current values in the text exposition format, to be
// picked up by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("could not write metrics to %v: %w", path, err)
	}
	return nil
}
