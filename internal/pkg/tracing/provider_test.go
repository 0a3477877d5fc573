package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/logging"
)

// Тесты меняют глобальный otel TracerProvider: без t.Parallel().

func installRecorder(t *testing.T, opts ...sdktrace.TracerProviderOption) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(append([]sdktrace.TracerProviderOption{sdktrace.WithSyncer(exporter)}, opts...)...)
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(noop.NewTracerProvider())
	})
	return exporter
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	shutdown, err := NewTracerProvider(Config{}, logging.NewNopLogger())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewTracerProvider_InvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Endpoint = ""
	shutdown, err := NewTracerProvider(cfg, logging.NewNopLogger())
	assert.ErrorIs(t, err, ErrTracingEndpointRequired)
	assert.Nil(t, shutdown)
}

func TestNewTracerProvider_Enabled(t *testing.T) {
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })

	shutdown, err := NewTracerProvider(validConfig(), logging.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// экспортировать нечего, shutdown завершается без сети
	_ = shutdown(ctx)
}

func TestContextWithOTelTraceID(t *testing.T) {
	const id = "abcdef1234567890abcdef1234567890"
	sc := trace.SpanContextFromContext(ContextWithOTelTraceID(context.Background(), id))
	assert.True(t, sc.IsRemote())
	assert.Equal(t, id, sc.TraceID().String())

	sc = trace.SpanContextFromContext(ContextWithOTelTraceID(context.Background(), "not-hex"))
	assert.False(t, sc.IsValid())
}

func TestStartCommand_Success(t *testing.T) {
	exporter := installRecorder(t)

	const id = "abcdef1234567890abcdef1234567890"
	ctx := WithTraceID(context.Background(), id)
	ctx = ContextWithOTelTraceID(ctx, id)

	_, span := StartCommand(ctx, "read-lines")
	EndSpan(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "command.read-lines", s.Name)
	assert.Equal(t, id, s.SpanContext.TraceID().String())
	assert.Equal(t, codes.Ok, s.Status.Code)

	attrs := make(map[string]string)
	for _, a := range s.Attributes {
		attrs[string(a.Key)] = a.Value.AsString()
	}
	assert.Equal(t, "read-lines", attrs["command"])
	assert.Equal(t, id, attrs["trace_id"])
}

func TestStartCommand_Error(t *testing.T) {
	exporter := installRecorder(t)

	_, span := StartCommand(context.Background(), "ini-get")
	EndSpan(span, apperrors.NotFound("app.ini", errors.New("missing")))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, codes.Error, s.Status.Code)
	require.Len(t, s.Events, 1)
	assert.Equal(t, "exception", s.Events[0].Name)

	var code string
	for _, a := range s.Attributes {
		if a.Key == "error.code" {
			code = a.Value.AsString()
		}
	}
	assert.Equal(t, apperrors.ErrNotFound, code)
}

func TestSampler(t *testing.T) {
	exporter := installRecorder(t, sdktrace.WithSampler(newSampler(0)))

	ctx := ContextWithOTelTraceID(context.Background(), "abcdef1234567890abcdef1234567890")
	_, span := otel.Tracer("test").Start(ctx, "dropped")
	span.End()
	assert.Empty(t, exporter.GetSpans(), "rate 0 отбрасывает span-ы даже с sampled remote parent")
}
