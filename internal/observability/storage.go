package observability

import (
	"context"
	"time"
	"waitlist/internal/models"
	"waitlist/internal/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedStorage wraps a storage.Storage implementation with
// OpenTelemetry tracing and metrics instrumentation. Entry emails are never
// attached to spans; attributes stick to operation names and counts.
type InstrumentedStorage struct {
	inner    storage.Storage
	tracer   trace.Tracer
	duration metric.Float64Histogram
	errors   metric.Int64Counter
}

// NewInstrumentedStorage creates a storage wrapper that records trace spans,
// operation latency histograms, and error counters for every storage call.
func NewInstrumentedStorage(inner storage.Storage) (*InstrumentedStorage, error) {
	tracer := otel.Tracer("waitlist/storage")
	meter := otel.Meter("waitlist/storage")

	duration, err := meter.Float64Histogram(
		"storage.operation.duration",
		metric.WithDescription("Duration of storage operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	errCounter, err := meter.Int64Counter(
		"storage.operation.errors",
		metric.WithDescription("Number of storage operation errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	return &InstrumentedStorage{
		inner:    inner,
		tracer:   tracer,
		duration: duration,
		errors:   errCounter,
	}, nil
}

func (s *InstrumentedStorage) startSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, "storage."+operation,
		trace.WithAttributes(append([]attribute.KeyValue{
			attribute.String("storage.operation", operation),
		}, attrs...)...),
	)
	return ctx, span
}

func (s *InstrumentedStorage) record(ctx context.Context, span trace.Span, operation string, start time.Time, err error) {
	elapsed := time.Since(start).Seconds()
	attrs := metric.WithAttributes(attribute.String("operation", operation))

	s.duration.Record(ctx, elapsed, attrs)

	if err != nil {
		s.errors.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}

func (s *InstrumentedStorage) LookupByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	ctx, span := s.startSpan(ctx, "LookupByEmail")
	start := time.Now()
	result, err := s.inner.LookupByEmail(ctx, email)
	s.record(ctx, span, "LookupByEmail", start, err)
	return result, err
}

func (s *InstrumentedStorage) UpsertEntry(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	ctx, span := s.startSpan(ctx, "UpsertEntry")
	start := time.Now()
	result, err := s.inner.UpsertEntry(ctx, email)
	s.record(ctx, span, "UpsertEntry", start, err)
	return result, err
}

func (s *InstrumentedStorage) Count(ctx context.Context) (int64, error) {
	ctx, span := s.startSpan(ctx, "Count")
	start := time.Now()
	result, err := s.inner.Count(ctx)
	s.record(ctx, span, "Count", start, err)
	return result, err
}

func (s *InstrumentedStorage) EntriesBetween(ctx context.Context, from, to *time.Time) ([]*models.WaitlistEntry, error) {
	ctx, span := s.startSpan(ctx, "EntriesBetween",
		attribute.Bool("bounded_from", from != nil),
		attribute.Bool("bounded_to", to != nil),
	)
	start := time.Now()
	result, err := s.inner.EntriesBetween(ctx, from, to)
	s.record(ctx, span, "EntriesBetween", start, err)
	return result, err
}

func (s *InstrumentedStorage) Close() error {
	return s.inner.Close()
}
