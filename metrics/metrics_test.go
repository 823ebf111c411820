package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tonetrack/tonetrack"
)

var _ tonetrack.Recorder = (*Metrics)(nil)

func TestTrackReportsToMetrics(t *testing.T) {
	m := New()
	track := tonetrack.NewTrack(8000, tonetrack.WithRecorder(m))
	track.Read(tonetrack.Index(2*tonetrack.BlockSize - 1))
	track.Read(tonetrack.Index(0))
	if got := testutil.ToFloat64(m.blocks); got != 2 {
		t.Errorf("blocks allocated = %v, expected 2", got)
	}
	n, err := track.Record(0, tonetrack.NewTone(0.01, 440, 8000))
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if got := testutil.ToFloat64(m.samples); got != float64(n) {
		t.Errorf("samples recorded = %v, expected %v", got, n)
	}
	if _, err := track.Wav(); err != nil {
		t.Fatalf("Wav failed: %v", err)
	}
	if got := testutil.ToFloat64(m.bytes); got != float64(tonetrack.WavHeaderSize+track.ByteLength()) {
		t.Errorf("bytes written = %v, expected %v", got, tonetrack.WavHeaderSize+track.ByteLength())
	}
}

func TestRendered(t *testing.T) {
	m := New()
	m.Rendered(2.5, nil)
	m.Rendered(0, errors.New("boom"))
	m.Rendered(1, nil)
	if got := testutil.ToFloat64(m.rendered.WithLabelValues("ok")); got != 2 {
		t.Errorf("ok renders = %v, expected 2", got)
	}
	if got := testutil.ToFloat64(m.rendered.WithLabelValues("error")); got != 1 {
		t.Errorf("failed renders = %v, expected 1", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 1 {
		t.Errorf("duration histogram has %d series, expected 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.SamplesRecorded(10)
	path := filepath.Join(t.TempDir(), "tonetrack.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read metrics file: %v", err)
	}
	if !strings.Contains(string(data), "tonetrack_samples_recorded_total 10") {
		t.Errorf("metrics file does not contain the sample count:\n%s", data)
	}
}
