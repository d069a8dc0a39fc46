package storage

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"parley/internal/platform/metrics"
	"parley/pkg/domain"
)

const instrumentationName = "parley/internal/dialogue/storage"

// Operation names used for span names and metric labels.
const (
	opRemove = "remove"
	opUpdate = "update"
	opGet    = "get"
)

// Instrumented wraps a Storage with a span and Prometheus metrics per call.
// Results and errors from the inner store are returned untouched.
type Instrumented[D any, S Storage[D]] struct {
	inner   S
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// InstrumentedOption configures an Instrumented decorator.
type InstrumentedOption func(*instrumentedConfig)

type instrumentedConfig struct {
	tracer trace.Tracer
}

// WithTracer overrides the global OpenTelemetry tracer.
func WithTracer(tracer trace.Tracer) InstrumentedOption {
	return func(c *instrumentedConfig) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

func NewInstrumented[D any, S Storage[D]](inner S, m *metrics.Metrics, opts ...InstrumentedOption) *Instrumented[D, S] {
	cfg := instrumentedConfig{tracer: otel.Tracer(instrumentationName)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Instrumented[D, S]{
		inner:   inner,
		metrics: m,
		tracer:  cfg.tracer,
	}
}

// Inner returns the wrapped store.
func (s *Instrumented[D, S]) Inner() S {
	return s.inner
}

func (s *Instrumented[D, S]) RemoveDialogue(ctx context.Context, chatID domain.ChatID) (err error) {
	ctx, done := s.start(ctx, opRemove, chatID)
	defer func() { done(err) }()
	return s.inner.RemoveDialogue(ctx, chatID)
}

func (s *Instrumented[D, S]) UpdateDialogue(ctx context.Context, chatID domain.ChatID, dialogue D) (err error) {
	ctx, done := s.start(ctx, opUpdate, chatID)
	defer func() { done(err) }()
	return s.inner.UpdateDialogue(ctx, chatID, dialogue)
}

func (s *Instrumented[D, S]) GetDialogue(ctx context.Context, chatID domain.ChatID) (dialogue D, ok bool, err error) {
	ctx, done := s.start(ctx, opGet, chatID)
	defer func() {
		if err == nil {
			trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("dialogue.found", ok))
		}
		done(err)
	}()
	return s.inner.GetDialogue(ctx, chatID)
}

func (s *Instrumented[D, S]) start(ctx context.Context, op string, chatID domain.ChatID) (context.Context, func(error)) {
	startedAt := time.Now()
	ctx, span := s.tracer.Start(ctx, "dialogue.storage."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int64("chat.id", chatID.Int64())),
	)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if s.metrics != nil {
			s.metrics.ObserveStorage(op, err, time.Since(startedAt))
		}
	}
}
