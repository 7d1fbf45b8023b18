// Package observe holds the OpenTelemetry metric instruments of the daemon
// and the Prometheus bridge that exposes them on /metrics.
//
// Tests should build [Metrics] with [NewMetrics] over their own
// [metric.MeterProvider]; [Discard] is a no-op instance for callers that do
// not record.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/rbright/animalese"

// Metrics holds every instrument the daemon records.
type Metrics struct {
	// Events counts character and delete events by effect
	// (played, throttled, silent) and sink.
	Events metric.Int64Counter

	// SinkFailures counts rejected play attempts by sink and error kind.
	SinkFailures metric.Int64Counter

	// SynthDuration tracks how long tone synthesis takes.
	SynthDuration metric.Float64Histogram
}

var synthBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025,
}

// NewMetrics creates every instrument on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Events, err = m.Int64Counter("animalese.events",
		metric.WithDescription("Keystroke events by effect and sink."),
	); err != nil {
		return nil, err
	}
	if met.SinkFailures, err = m.Int64Counter("animalese.sink.failures",
		metric.WithDescription("Rejected play attempts by sink and error kind."),
	); err != nil {
		return nil, err
	}
	if met.SynthDuration, err = m.Float64Histogram("animalese.synth.duration",
		metric.WithDescription("Latency of tone synthesis."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(synthBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// Discard returns instruments that record nothing.
func Discard() *Metrics {
	met, _ := NewMetrics(noop.NewMeterProvider())
	return met
}

// RecordEvent counts one handled event.
func (m *Metrics) RecordEvent(ctx context.Context, effect string, sink string) {
	if m == nil {
		return
	}
	m.Events.Add(ctx, 1, metric.WithAttributes(
		attribute.String("effect", effect),
		attribute.String("sink", sink),
	))
}

// RecordSinkFailure counts one rejected play attempt.
func (m *Metrics) RecordSinkFailure(ctx context.Context, sink string, kind string) {
	if m == nil {
		return
	}
	m.SinkFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("sink", sink),
		attribute.String("kind", kind),
	))
}

// RecordSynth observes one synthesis run that started at start.
func (m *Metrics) RecordSynth(ctx context.Context, start time.Time) {
	if m == nil {
		return
	}
	m.SynthDuration.Record(ctx, time.Since(start).Seconds())
}
