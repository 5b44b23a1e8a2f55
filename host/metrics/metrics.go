// Package metrics exposes the running sequence as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ledseq/core"
)

// Metrics holds the sequence collectors.
type Metrics struct {
	position   prometheus.Gauge
	positions  prometheus.Gauge
	frames     prometheus.Counter
	sinkErrors prometheus.Counter
}

// New registers the sequence collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		position: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "ledseq",
			Subsystem: "sequence",
			Name:      "position",
			Help:      "Index of the active LED",
		}),
		positions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "ledseq",
			Subsystem: "sequence",
			Name:      "positions",
			Help:      "Number of LEDs in the cycle",
		}),
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ledseq",
			Subsystem: "sequence",
			Name:      "frames_total",
			Help:      "Frames rendered to the output",
		}),
		sinkErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ledseq",
			Subsystem: "sink",
			Name:      "errors_total",
			Help:      "Output writes rejected by the sink",
		}),
	}
}

// Wrap returns a sink that records every frame before passing it on.
func (m *Metrics) Wrap(sink core.OutputSink, count int) core.OutputSink {
	m.positions.Set(float64(count))
	return &instrumentedSink{next: sink, m: m}
}

// Handler serves the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

type instrumentedSink struct {
	next core.OutputSink
	m    *Metrics
}

func (s *instrumentedSink) Drive(index int, on bool) error {
	if err := s.next.Drive(index, on); err != nil {
		s.m.sinkErrors.Inc()
		return err
	}
	if on {
		s.m.position.Set(float64(index))
	}
	return nil
}

// Flush forwards to the wrapped sink when it latches frames itself.
func (s *instrumentedSink) Flush() error {
	if f, ok := s.next.(core.Flusher); ok {
		if err := f.Flush(); err != nil {
			s.m.sinkErrors.Inc()
			return err
		}
	}
	s.m.frames.Inc()
	return nil
}
