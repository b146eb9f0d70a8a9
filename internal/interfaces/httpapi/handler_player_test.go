package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/rpg-players/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/rpg-players/internal/platform/logging"
	"github.com/riskibarqy/rpg-players/internal/usecase"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	repo := memory.NewPlayerRepository(memory.SeedPlayers())
	logger := logging.NewNop()
	svc := usecase.NewPlayerService(repo, usecase.NewPlayerValidator(repo, nil), logger)
	return NewRouter(NewHandler(svc, logger), logger, RouterOptions{})
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	require.Equal(t, "ok", body.Data["status"])
}

func TestListPlayers_FilterOrderAndDefaultPage(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/rest/players?race=ELF&order=NAME", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[[]playerDTO](t, rec)
	require.Len(t, body.Data, 3)
	require.Equal(t, []string{"Arilan", "Derakt", "Eman"}, []string{body.Data[0].Name, body.Data[1].Name, body.Data[2].Name})
}

func TestListPlayers_Paging(t *testing.T) {
	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/rest/players?pageNumber=1&pageSize=4", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[[]playerDTO](t, rec)
	require.Len(t, body.Data, 4)
	require.Equal(t, int64(5), body.Data[0].ID)
}

func TestListPlayers_RejectsBadQuery(t *testing.T) {
	router := newTestRouter(t)
	targets := []string{
		"/rest/players?race=ELVES",
		"/rest/players?order=AGE",
		"/rest/players?pageSize=abc",
		"/rest/players?pageNumber=-1",
		"/rest/players?banned=maybe",
		"/rest/players?minLevel=-2",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, target, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody[any](t, rec)
			require.NotNil(t, body.Error)
			require.Equal(t, "INVALID_ARGUMENT", body.Error.Status)
		})
	}
}

func TestCountPlayers(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/rest/players/count?banned=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(3), decodeBody[playerCountDTO](t, rec).Data.Count)

	rec = doRequest(t, router, http.MethodGet, "/rest/players/count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(10), decodeBody[playerCountDTO](t, rec).Data.Count)
}

func TestGetPlayer(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/rest/players/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[playerDTO](t, rec).Data
	require.Equal(t, "Nikrashsh", got.Name)
	require.Equal(t, "Nightwolf", got.Title)
	require.Equal(t, "ORC", got.Race)

	tests := []struct {
		target string
		status int
		reason string
	}{
		{target: "/rest/players/0", status: http.StatusBadRequest, reason: "invalidId"},
		{target: "/rest/players/-4", status: http.StatusBadRequest, reason: "invalidId"},
		{target: "/rest/players/abc", status: http.StatusBadRequest, reason: "invalidId"},
		{target: "/rest/players/99", status: http.StatusNotFound, reason: "notFound"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, tt.target, "")
			require.Equal(t, tt.status, rec.Code)
			body := decodeBody[any](t, rec)
			require.NotNil(t, body.Error)
			require.Equal(t, tt.reason, body.Error.Errors[0].Reason)
		})
	}
}

func TestCreatePlayer(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/rest/players",
		`{"name":" Abra ","title":"Knight","race":"ELF","profession":"WARRIOR","birthday":964310400000,"experience":5000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decodeBody[playerDTO](t, rec).Data
	require.Equal(t, int64(11), got.ID)
	require.Equal(t, "Abra", got.Name)
	require.False(t, got.Banned)
	require.Equal(t, int64(9), got.Level)
	require.Equal(t, int64(500), got.UntilNextLevel)
	require.Equal(t, int64(964310400000), got.Birthday)

	rec = doRequest(t, router, http.MethodGet, "/rest/players/11", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreatePlayer_Rejected(t *testing.T) {
	router := newTestRouter(t)
	bodies := map[string]string{
		"empty body":      "",
		"missing fields":  `{"name":"Abra"}`,
		"unknown field":   `{"name":"Abra","title":"Knight","race":"ELF","profession":"WARRIOR","birthday":964310400000,"experience":5000,"level":3}`,
		"unknown race":    `{"name":"Abra","title":"Knight","race":"ELVES","profession":"WARRIOR","birthday":964310400000,"experience":5000}`,
		"long name":       `{"name":"Abracadabrass","title":"Knight","race":"ELF","profession":"WARRIOR","birthday":964310400000,"experience":5000}`,
		"old birthday":    `{"name":"Abra","title":"Knight","race":"ELF","profession":"WARRIOR","birthday":0,"experience":5000}`,
		"huge experience": `{"name":"Abra","title":"Knight","race":"ELF","profession":"WARRIOR","birthday":964310400000,"experience":10000001}`,
		"malformed json":  `{"name":`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/rest/players", body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	rec := doRequest(t, router, http.MethodGet, "/rest/players/count", "")
	require.Equal(t, int64(10), decodeBody[playerCountDTO](t, rec).Data.Count)
}

func TestUpdatePlayer(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/rest/players/2", `{"experience":100,"banned":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[playerDTO](t, rec).Data
	require.Equal(t, "Nikrashsh", got.Name)
	require.True(t, got.Banned)
	require.Equal(t, int64(1), got.Level)
	require.Equal(t, int64(200), got.UntilNextLevel)

	rec = doRequest(t, router, http.MethodPost, "/rest/players/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(100), decodeBody[playerDTO](t, rec).Data.Experience)

	rec = doRequest(t, router, http.MethodPost, "/rest/players/2", `{"title":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/rest/players/99", `{"name":"Ghost"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/rest/players/0", `{"name":"Ghost"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePlayer(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodDelete, "/rest/players/3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/rest/players/3", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/rest/players/3", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/rest/players/x", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
