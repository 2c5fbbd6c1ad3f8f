// Package track is the event-tracking sink: client events land in the
// structured log and a per-event Prometheus counter.
package track

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Sink struct {
	log    *zap.Logger
	events *prometheus.CounterVec
}

func NewSink(log *zap.Logger, reg *prometheus.Registry) *Sink {
	s := &Sink{log: log}

	if reg != nil {
		s.events = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealboard_tracked_events_total",
				Help: "Client events received on the track endpoint",
			},
			[]string{"event"},
		)
		reg.MustRegister(s.events)
	}

	return s
}

func (s *Sink) Record(event string, data map[string]any) {
	if s.events != nil {
		s.events.WithLabelValues(event).Inc()
	}
	if s.log != nil {
		s.log.Info("tracked event",
			zap.String("event", event),
			zap.Any("data", data),
		)
	}
}
