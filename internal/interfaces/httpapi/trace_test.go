package httpapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestIsHandlerSpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "list players", in: "httpapi.Handler.ListPlayers", want: true},
		{name: "request validation", in: "httpapi.Handler.validateRequest", want: true},
		{name: "bare prefix", in: "httpapi.Handler.", want: false},
		{name: "middleware", in: "httpapi.RequestLogging", want: false},
		{name: "response helper", in: "httpapi.writeError", want: false},
		{name: "usecase span", in: "usecase.PlayerService.GetPlayer", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, isHandlerSpan(tt.in))
		})
	}
}

func TestStartSpan_WithoutParentReturnsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.GetPlayer")
	defer span.End()

	require.Equal(t, ctx, got)
	require.False(t, span.SpanContext().IsValid())
}

func TestStartSpan_NonHandlerNameKeepsParent(t *testing.T) {
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	got, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	require.Equal(t, ctx, got)
	require.Equal(t, parent, trace.SpanContextFromContext(got))
}
