package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/textkit/pkg/apperrors"
)

// TracerName: имя инструментирующей библиотеки для otel.Tracer.
const TracerName = "github.com/Kargones/textkit"

// StartCommand открывает span команды CLI. Span наследует trace ID из ctx
// (см. ContextWithOTelTraceID) и получает атрибуты command и trace_id.
func StartCommand(ctx context.Context, command string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append([]attribute.KeyValue{attribute.String("command", command)}, attrs...)
	if id := TraceIDFromContext(ctx); id != "" {
		attrs = append(attrs, attribute.String("trace_id", id))
	}
	return otel.Tracer(TracerName).Start(ctx, "command."+command, trace.WithAttributes(attrs...))
}

// EndSpan завершает span. Ошибка записывается в span вместе с кодом AppError.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		if code := apperrors.Code(err); code != "" {
			span.SetAttributes(attribute.String("error.code", code))
		}
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
