package httpapi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: " /Healthz ", want: false},
		{path: "/health", want: false},
		{path: "/livez", want: false},
		{path: "/readyz", want: false},
		{path: "/rest/players", want: true},
		{path: "/rest/players/count", want: true},
		{path: "/rest/players/7", want: true},
		{path: "/healthz/players", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, shouldTraceRequest(tt.path))
		})
	}
}
