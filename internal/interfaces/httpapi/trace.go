package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName        = "github.com/riskibarqy/rpg-players/internal/interfaces/httpapi"
	handlerSpanPrefix = "httpapi.Handler."
)

var (
	apiTracer = otel.Tracer(tracerName)
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startSpan opens a child span for Handler methods only. Requests the tracing
// middleware skipped, such as /healthz, carry no parent and stay untraced.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !isHandlerSpan(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix) && len(name) > len(handlerSpanPrefix)
}
