package shm

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/srediag/shm-segment/pkg/shm"

type telemetry struct {
	tracer   trace.Tracer
	attrs    metric.MeasurementOption
	writes   metric.Int64Counter
	written  metric.Int64Counter
	rejected metric.Int64Counter
	reads    metric.Int64Counter
}

func newTelemetry(cfg Config) *telemetry {
	meter := cfg.Meter
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter(instrumentationName)
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(instrumentationName)
	}
	t := &telemetry{
		tracer: tracer,
		attrs: metric.WithAttributes(
			attribute.String("shm.name", cfg.Name),
			attribute.Bool("shm.creator", cfg.Create),
		),
	}
	t.writes = counter(meter, "shm.segment.writes", "Successful writes.")
	t.written = counter(meter, "shm.segment.written_bytes", "Payload bytes written.")
	t.rejected = counter(meter, "shm.segment.rejected_writes", "Writes refused because the payload exceeded capacity.")
	t.reads = counter(meter, "shm.segment.reads", "Reads of the segment.")
	return t
}

func counter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		internalLogger.warnf("create counter %s failed: %v", name, err)
		c, _ = metricnoop.NewMeterProvider().Meter(instrumentationName).Int64Counter(name)
	}
	return c
}

func (t *telemetry) startAcquire(ctx context.Context, cfg Config) (context.Context, trace.Span) {
	op := "shm.Open"
	if cfg.Create {
		op = "shm.Create"
	}
	return t.tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("shm.name", cfg.Name),
		attribute.Int("shm.capacity", cfg.Capacity),
	))
}

func endAcquire(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, KindOf(err).String())
	}
	span.End()
}

func (t *telemetry) wrote(n int) {
	ctx := context.Background()
	t.writes.Add(ctx, 1, t.attrs)
	t.written.Add(ctx, int64(n), t.attrs)
}

func (t *telemetry) rejectedWrite() {
	t.rejected.Add(context.Background(), 1, t.attrs)
}

func (t *telemetry) read() {
	t.reads.Add(context.Background(), 1, t.attrs)
}
