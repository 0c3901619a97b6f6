package emit

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// PromEmitter records node outcomes as Prometheus metrics: a histogram of
// execution duration, a counter of exceptions, and a gauge tracking the
// most recent feature-flag gate result seen per node.
type PromEmitter struct {
	duration   *prometheus.HistogramVec
	exceptions *prometheus.CounterVec
	flagGate   *prometheus.GaugeVec
}

// NewPromEmitter registers its metrics against reg and returns an Emitter.
// Pass prometheus.DefaultRegisterer to expose metrics on the default
// /metrics handler.
func NewPromEmitter(reg prometheus.Registerer) *PromEmitter {
	p := &PromEmitter{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "enrichgraph",
			Name:      "node_duration_seconds",
			Help:      "Node execution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"node"}),
		exceptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "enrichgraph",
			Name:      "node_exceptions_total",
			Help:      "Count of node invocations that ended in node.exception.",
		}, []string{"node"}),
		flagGate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "enrichgraph",
			Name:      "flags_enabled",
			Help:      "1 if the node's feature flag was enabled on its most recent gate check, else 0.",
		}, []string{"node"}),
	}
	reg.MustRegister(p.duration, p.exceptions, p.flagGate)
	return p
}

func (p *PromEmitter) Emit(event Event) {
	if event.NodeName == "" {
		return
	}
	switch event.Msg {
	case "node.execution":
		if d, ok := event.Meta["duration_seconds"].(float64); ok {
			p.duration.WithLabelValues(event.NodeName).Observe(d)
		}
	case "node.exception":
		p.exceptions.WithLabelValues(event.NodeName).Inc()
	case "node.feature_flag_skip":
		p.flagGate.WithLabelValues(event.NodeName).Set(0)
	case "node.start":
		p.flagGate.WithLabelValues(event.NodeName).Set(1)
	}
}

func (p *PromEmitter) EmitBatch(_ context.Context, events []Event) error {
	for _, event := range events {
		p.Emit(event)
	}
	return nil
}

// Flush is a no-op: Prometheus metrics are pulled, not pushed.
func (p *PromEmitter) Flush(context.Context) error { return nil }
