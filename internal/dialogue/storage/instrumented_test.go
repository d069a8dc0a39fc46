package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"parley/internal/dialogue/storage"
	"parley/internal/dialogue/storage/mocks"
	"parley/internal/platform/metrics"
	"parley/pkg/domain"
)

func newInstrumented(t *testing.T, inner storage.Storage[string]) (*storage.Instrumented[string, storage.Storage[string]], *metrics.Metrics, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m := metrics.New(prometheus.NewRegistry())
	return storage.NewInstrumented[string](inner, m, storage.WithTracer(provider.Tracer("test"))), m, recorder
}

func TestInstrumented_Success(t *testing.T) {
	ctx := context.Background()
	s, m, spans := newInstrumented(t, storage.NewMemory[string]())

	require.NoError(t, s.UpdateDialogue(ctx, 8, "start"))
	got, ok, err := s.GetDialogue(ctx, 8)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "start", got)
	require.NoError(t, s.RemoveDialogue(ctx, 8))

	for _, op := range []string{"update", "get", "remove"} {
		assert.Equal(t, 1.0, promtest.ToFloat64(m.StorageOperations.WithLabelValues(op, metrics.OutcomeSuccess)), op)
	}

	ended := spans.Ended()
	require.Len(t, ended, 3)
	assert.Equal(t, "dialogue.storage.update", ended[0].Name())
	assert.Equal(t, "dialogue.storage.get", ended[1].Name())
	assert.Equal(t, "dialogue.storage.remove", ended[2].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.Int64("chat.id", 8))
	assert.Contains(t, ended[1].Attributes(), attribute.Bool("dialogue.found", true))
}

func TestInstrumented_ErrorPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockStorage[string](ctrl)
	s, m, spans := newInstrumented(t, inner)
	ctx := context.Background()
	backendErr := errors.New("timeout")

	inner.EXPECT().UpdateDialogue(gomock.Any(), domain.ChatID(3), "x").Return(backendErr)
	err := s.UpdateDialogue(ctx, 3, "x")
	assert.Same(t, backendErr, err)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.StorageOperations.WithLabelValues("update", metrics.OutcomeError)))
	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "timeout", ended[0].Status().Description)
}

func TestInstrumented_ChainedUnderTrace(t *testing.T) {
	mem := storage.NewMemory[string]()
	instrumented := storage.NewInstrumented[string](mem, nil)
	traced := storage.NewTrace[string](instrumented)

	require.NoError(t, traced.UpdateDialogue(context.Background(), 1, "ok"))
	assert.Same(t, mem, traced.Inner().Inner())

	var _ storage.Storage[string] = traced
}
