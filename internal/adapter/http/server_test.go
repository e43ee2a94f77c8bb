package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/moon-house-service/internal/adapter/http"
	"github.com/couchcryptid/moon-house-service/internal/adapter/refdata"
	"github.com/couchcryptid/moon-house-service/internal/domain"
	"github.com/couchcryptid/moon-house-service/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newAPI(t *testing.T, rps float64, burst int) (*httpadapter.API, *observability.Metrics) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	calc, err := refdata.LoadCalculator(context.Background(), refdata.Embedded(), domain.DefaultAyanamsa, logger)
	require.NoError(t, err)
	metrics := observability.NewMetricsForTesting()
	return httpadapter.NewAPI(calc, rps, burst, metrics, logger), metrics
}

func newTestServer(t *testing.T, readyErr error) *httpadapter.Server {
	t.Helper()
	api, _ := newAPI(t, 1000, 1000)
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, api, slog.New(slog.DiscardHandler))
}

func get(srv http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := get(newTestServer(t, nil), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := get(newTestServer(t, nil), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := get(newTestServer(t, fmt.Errorf("not ready yet")), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(newTestServer(t, nil), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestReadyzWithoutCheckerIsReady(t *testing.T) {
	api, _ := newAPI(t, 1, 1)
	srv := httpadapter.NewServer(":0", nil, api, slog.New(slog.DiscardHandler))

	rec := get(srv, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestRequestsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	api, _ := newAPI(t, 1000, 1000)
	srv := httpadapter.NewServer(":0", nil, api, logger)

	rec := get(srv, "/api/v1/house?date=1999-01-01")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "/api/v1/house", line["path"])
	assert.InDelta(t, 404.0, line["status"], 0)
}

type houseBody struct {
	Result struct {
		Date      string  `json:"date"`
		System    string  `json:"system"`
		Rising    string  `json:"rising"`
		Sign      string  `json:"sign"`
		Longitude float64 `json:"longitude"`
		House     int     `json:"house"`
		Nakshatra *struct {
			Ordinal int    `json:"ordinal"`
			Name    string `json:"name"`
		} `json:"nakshatra"`
		Numerology struct {
			Figure int `json:"figure"`
		} `json:"numerology"`
	} `json:"result"`
	View struct {
		Title    string `json:"title"`
		SignLine string `json:"sign_line"`
	} `json:"view"`
}

func TestHouse_Sidereal(t *testing.T) {
	rec := get(newTestServer(t, nil), "/api/v1/house?system=sidereal&rising=aries&date=2025-01-13")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body houseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sidereal", body.Result.System)
	assert.Equal(t, "Aries", body.Result.Rising)
	assert.Equal(t, "Gemini", body.Result.Sign)
	assert.Equal(t, 3, body.Result.House)
	require.NotNil(t, body.Result.Nakshatra)
	assert.Equal(t, "Punarvasu", body.Result.Nakshatra.Name)
	assert.Equal(t, 5, body.Result.Numerology.Figure)
	assert.Equal(t, "House 3", body.View.Title)
	assert.True(t, strings.HasPrefix(body.View.SignLine, "Sidereal Moon in Gemini · "))
}

func TestHouse_Defaults(t *testing.T) {
	rec := get(newTestServer(t, nil), "/api/v1/house")
	require.Equal(t, http.StatusOK, rec.Code)

	var body houseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-01-13", body.Result.Date)
	assert.Equal(t, "tropical", body.Result.System)
	assert.Equal(t, "Aries", body.Result.Rising)
	assert.Equal(t, 4, body.Result.House)
	assert.Nil(t, body.Result.Nakshatra)
}

func TestHouse_RisingByOrdinal(t *testing.T) {
	rec := get(newTestServer(t, nil), "/api/v1/house?rising=3&date=2025-01-13")
	require.Equal(t, http.StatusOK, rec.Code)

	var body houseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Result.House)
}

func TestHouse_TextFormat(t *testing.T) {
	rec := get(newTestServer(t, nil), "/api/v1/house?system=tropical&rising=Leo&date=2025-02-12&format=text")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "House 1\nTropical Moon in Leo\n"))
	assert.Contains(t, rec.Body.String(), "Peak time (source tz): 13:53 UTC")
}

func TestHouse_NotFound(t *testing.T) {
	api, metrics := newAPI(t, 1000, 1000)
	srv := httpadapter.NewServer(":0", nil, api, slog.New(slog.DiscardHandler))

	rec := get(srv, "/api/v1/house?system=sidereal&rising=Aries&date=1999-01-01")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.APIComputations.WithLabelValues("sidereal", "not_found")), 0)
}

func TestHouse_BadRequest(t *testing.T) {
	srv := newTestServer(t, nil)
	for _, q := range []string{
		"system=draconic",
		"rising=Ophiuchus",
		"rising=12",
		"date=13-01-2025",
	} {
		rec := get(srv, "/api/v1/house?"+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"], q)
	}
}

func TestFullMoons(t *testing.T) {
	rec := get(newTestServer(t, nil), "/api/v1/fullmoons")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 12)
	assert.Equal(t, "2025-01-13", body[0]["date"])
	assert.Equal(t, "Mon, Jan 13, 2025", body[0]["label"])
	assert.Equal(t, "Cancer", body[0]["sign"])
	assert.Equal(t, "2025-12-04", body[11]["date"])
}

func TestSigns(t *testing.T) {
	rec := get(newTestServer(t, nil), "/api/v1/signs")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []struct {
		Ordinal int    `json:"ordinal"`
		Name    string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 12)
	assert.Equal(t, "Aries", body[0].Name)
	assert.Equal(t, 11, body[11].Ordinal)
	assert.Equal(t, "Pisces", body[11].Name)
}

func TestNext(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	rec := get(newTestServer(t, nil), "/api/v1/next")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-06-11", body["date"])
	assert.Equal(t, "Sagittarius", body["sign"])
}

func TestRateLimit(t *testing.T) {
	api, metrics := newAPI(t, 0.001, 2)
	srv := httpadapter.NewServer(":0", nil, api, slog.New(slog.DiscardHandler))

	assert.Equal(t, http.StatusOK, get(srv, "/api/v1/signs").Code)
	assert.Equal(t, http.StatusOK, get(srv, "/api/v1/signs").Code)

	rec := get(srv, "/api/v1/signs")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.APIRateLimited), 0)

	// Probes are never rate limited.
	assert.Equal(t, http.StatusOK, get(srv, "/healthz").Code)
}
