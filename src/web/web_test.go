package web

import (
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iafilius/BikeSharingDashboard/src/dataset/datasettest"
)

func newTestServer(t *testing.T) (*Server, *observer.ObservedLogs) {
	t.Helper()
	ds := datasettest.Load(t, 40)
	core, logs := observer.New(zapcore.InfoLevel)
	s := New(ds, Options{Width: 800}, zap.New(core))
	return s, logs
}

func do(t *testing.T, s *Server, target string) *http.Response {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	resp := do(t, s, "/api/v1/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 40, body["days"])
	assert.EqualValues(t, 200, body["hours"])
}

func TestChart_PNG(t *testing.T) {
	s, _ := newTestServer(t)
	resp := do(t, s, "/charts/seasons.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
}

func TestChart_FilteredTrendRangeAndWidth(t *testing.T) {
	s, _ := newTestServer(t)
	resp := do(t, s, "/charts/filtered_trend.png?start=2011-01-05&end=2011-01-20&width=1000")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().chartRenders.WithLabelValues("filtered_trend", "ok")))
}

func TestChart_HalfFilledRangeRendersPrompt(t *testing.T) {
	s, _ := newTestServer(t)
	resp := do(t, s, "/charts/filtered_trend.png?start=2011-01-05")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().chartRenders.WithLabelValues("filtered_trend", "prompt")))
}

func TestChart_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	cases := []struct {
		target string
		want   int
	}{
		{"/charts/seasons.png?start=2011-13-01&end=2011-02-01", http.StatusBadRequest},
		{"/charts/nope.png", http.StatusNotFound},
		{"/charts/seasons", http.StatusNotFound},
		{"/charts/seasons.gif", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			resp := do(t, s, tc.target)
			assert.Equal(t, tc.want, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
		})
	}
}

func TestSummary(t *testing.T) {
	s, _ := newTestServer(t)
	resp := do(t, s, "/api/v1/summary?start=2011-01-01&end=2011-01-10")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Days        int               `json:"days"`
		Hourly      []json.RawMessage `json:"hourly"`
		Correlation struct {
			Names  []string     `json:"names"`
			Values [][]*float64 `json:"values"`
		} `json:"correlation"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 10, body.Days)
	assert.Len(t, body.Hourly, 24)
	require.NotEmpty(t, body.Correlation.Names)
	assert.Len(t, body.Correlation.Values, len(body.Correlation.Names))
}

func TestSummary_DefaultsToBounds(t *testing.T) {
	s, _ := newTestServer(t)
	resp := do(t, s, "/api/v1/summary")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Days int `json:"days"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 40, body.Days)
}

func TestSummary_InvalidDate(t *testing.T) {
	s, _ := newTestServer(t)
	resp := do(t, s, "/api/v1/summary?start=yesterday&end=2011-01-10")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t)
	resp := do(t, s, "/?start=2011-01-03&end=2011-01-09&agg=sum")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(raw)
	assert.Contains(t, page, "Bike Sharing Dashboard")
	assert.Contains(t, page, "2011-01-03")
	assert.Contains(t, page, "/charts/humidity_box.png?")
	assert.Contains(t, page, "agg=sum")
	assert.Contains(t, page, "Hurricane Sandy")
	assert.Contains(t, page, "7 days")
}

func TestIndex_IncompleteRangeShowsPrompt(t *testing.T) {
	s, _ := newTestServer(t)
	resp := do(t, s, "/?start=2011-01-03")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Please select a date range")
}

func TestIndex_InvalidDate(t *testing.T) {
	s, _ := newTestServer(t)
	resp := do(t, s, "/?start=bogus")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotFoundIsJSON(t *testing.T) {
	s, _ := newTestServer(t)
	resp := do(t, s, "/does/not/exist")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "/does/not/exist", body["path"])
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, "/api/v1/health")
	resp := do(t, s, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `bikedash_http_requests_total{method="GET",route="/api/v1/health",status="200"} 1`)
	assert.Contains(t, string(raw), "go_goroutines")
}

func TestRequestLogging(t *testing.T) {
	s, logs := newTestServer(t)
	resp := do(t, s, "/api/v1/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/v1/health", fields["path"])
	assert.EqualValues(t, 200, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRequestLogging_ErrorStatus(t *testing.T) {
	s, logs := newTestServer(t)
	do(t, s, "/charts/nope.png")
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 404, entries[0].ContextMap()["status"])
	assert.True(t, strings.HasPrefix(entries[0].ContextMap()["path"].(string), "/charts/"))
}
