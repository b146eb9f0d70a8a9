package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/rpg-players/internal/platform/logging"
)

func TestRequestLogging_AssignsRequestID(t *testing.T) {
	var out bytes.Buffer
	logger := logging.NewJSONWriter(&out, logging.LevelInfo)

	handler := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rest/players", nil))

	requestID := rec.Header().Get(requestIDHeader)
	if len(requestID) != 36 {
		t.Fatalf("expected generated uuid request id, got %q", requestID)
	}
	line := out.String()
	if !strings.Contains(line, `"request_id":"`+requestID+`"`) {
		t.Fatalf("expected request id in log line: %s", line)
	}
	if !strings.Contains(line, `"status":201`) {
		t.Fatalf("expected status in log line: %s", line)
	}
}

func TestRequestLogging_KeepsIncomingRequestID(t *testing.T) {
	handler := RequestLogging(logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/rest/players", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected incoming request id to be echoed, got %q", got)
	}
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rest/players", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
