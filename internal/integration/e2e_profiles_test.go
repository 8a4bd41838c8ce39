package integration

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"kawase-service/internal/application"
	"kawase-service/internal/bootstrap"
	"kawase-service/internal/config"
	"kawase-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	expectedUSDJPY     = 151.25
	expectedEURJPY     = 163.5
	predictionAnswer   = "やや円安方向の推移が見込まれます。"
	requestContentType = "application/json"
	readyTimeout       = 5 * time.Second
	readyPollInterval  = 50 * time.Millisecond
)

// upstreams stands in for the rate API and the completion endpoint.
type upstreams struct {
	rates      *httptest.Server
	completion *httptest.Server
	rateCalls  atomic.Int32
	rateDown   atomic.Bool
	lastPrompt atomic.Value
}

func startUpstreams(t *testing.T) *upstreams {
	t.Helper()
	u := &upstreams{}
	u.rates = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.rateCalls.Add(1)
		if u.rateDown.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
		price := expectedUSDJPY
		if from == "EUR" {
			price = expectedEURJPY
		}
		w.Header().Set("Content-Type", requestContentType)
		if r.URL.Path == "/latest" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"amount": 1, "base": from, "date": "2025-06-30",
				"rates": map[string]float64{to: price},
			})
			return
		}
		span := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "..", 2)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"amount": 1, "base": from, "start_date": span[0], "end_date": span[1],
			"rates": map[string]map[string]float64{
				span[1]: {to: price},
				span[0]: {to: price - 2},
			},
		})
	}))
	u.completion = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req struct {
			Prompt string `json:"prompt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		u.lastPrompt.Store(req.Prompt)
		w.Header().Set("Content-Type", requestContentType)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]string{{"text": predictionAnswer}},
		})
	}))
	t.Cleanup(func() {
		u.rates.Close()
		u.completion.Close()
	})
	return u
}

func startAPI(t *testing.T, cfg config.Config) string {
	t.Helper()
	h, cleanup, err := bootstrap.InitAPI(context.Background(), cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	t.Cleanup(func() {
		srv.Close()
		cleanup()
	})
	return srv.URL
}

func profileConfig(u *upstreams) config.Config {
	return config.Config{
		Env:            "test",
		RateProvider:   "frankfurter",
		RateAPIBase:    u.rates.URL,
		RequestTimeout: 2 * time.Second,
		SessionBackend: "memory",
		SessionTTL:     time.Hour,
		Storage:        "memory",
		LLMProvider:    "completion",
		LLMAPIKey:      "test-key",
		LLMModel:       "test-model",
		LLMBaseURL:     u.completion.URL,
		LLMMaxTokens:   200,
	}
}

func TestE2E_MemoryProfile(t *testing.T) {
	u := startUpstreams(t)
	baseURL := startAPI(t, profileConfig(u))
	runUserJourney(t, u, baseURL)
}

func TestE2E_RedisProfile(t *testing.T) {
	u := startUpstreams(t)
	mr := miniredis.RunT(t)
	cfg := profileConfig(u)
	cfg.SessionBackend = "redis"
	cfg.RedisAddr = mr.Addr()

	baseURL := startAPI(t, cfg)
	runUserJourney(t, u, baseURL)
	assert.NotEmpty(t, mr.Keys())
}

func TestE2E_RateOutageFallsBackToManual(t *testing.T) {
	u := startUpstreams(t)
	u.rateDown.Store(true)
	baseURL := startAPI(t, profileConfig(u))
	client := newClient(t)

	waitForReady(t, client, baseURL)
	var v application.View
	doJSON(t, client, http.MethodGet, baseURL+"/api/state", nil, http.StatusOK, &v)
	require.Nil(t, v.LiveRate)
	require.Len(t, v.Notices, 2)
	assert.Equal(t, domain.NoticeError, v.Notices[0].Level)
	assert.Equal(t, domain.NoticeWarning, v.Notices[1].Level)

	doJSON(t, client, http.MethodPut, baseURL+"/api/rate/source",
		map[string]any{"source": "manual", "manual_rate": 140.0}, http.StatusOK, &v)
	var conv application.Conversion
	doJSON(t, client, http.MethodPost, baseURL+"/api/convert", map[string]any{"amount": 2}, http.StatusOK, &conv)
	assertApproxEqual(t, conv.Result, 280, 1e-9)
	assert.Equal(t, "280.00 JPY", conv.Entry.Output)
}

func runUserJourney(t *testing.T, u *upstreams, baseURL string) {
	t.Helper()
	client := newClient(t)
	waitForReady(t, client, baseURL)

	var v application.View
	doJSON(t, client, http.MethodGet, baseURL+"/api/state", nil, http.StatusOK, &v)
	require.NotNil(t, v.LiveRate)
	assertApproxEqual(t, *v.LiveRate, expectedUSDJPY, 1e-9)
	callsAfterOpen := u.rateCalls.Load()

	doJSON(t, client, http.MethodGet, baseURL+"/api/state", nil, http.StatusOK, &v)
	assert.Equal(t, callsAfterOpen, u.rateCalls.Load(), "rendering must not refetch")

	var conv application.Conversion
	doJSON(t, client, http.MethodPost, baseURL+"/api/convert", map[string]any{"amount": 100}, http.StatusOK, &conv)
	assertApproxEqual(t, conv.Result, 15125, 1e-9)

	doJSON(t, client, http.MethodPut, baseURL+"/api/pair", map[string]string{"from": "EUR", "to": "JPY"}, http.StatusOK, &v)
	assert.Equal(t, domain.EUR, v.From)
	assertApproxEqual(t, *v.LiveRate, expectedUSDJPY, 1e-9)

	doJSON(t, client, http.MethodPost, baseURL+"/api/rate/refresh", nil, http.StatusOK, &v)
	assertApproxEqual(t, *v.LiveRate, expectedEURJPY, 1e-9)

	doJSON(t, client, http.MethodPost, baseURL+"/api/convert", map[string]any{"amount": 10}, http.StatusOK, &conv)
	assert.Equal(t, "EUR to JPY", conv.Entry.Direction)

	rows := getHistoryCSV(t, client, baseURL)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.HistoryColumns, rows[0])
	assert.Equal(t, "100.00 USD", rows[1][1])
	assert.Equal(t, "1635.00 JPY", rows[2][2])

	var series domain.RateSeries
	doJSON(t, client, http.MethodGet, baseURL+"/api/series?days=14", nil, http.StatusOK, &series)
	require.Len(t, series.Points, 2)
	assertApproxEqual(t, series.Points[1].Rate, expectedEURJPY, 1e-9)

	doJSON(t, client, http.MethodPost, baseURL+"/api/prediction/template",
		map[string]string{"title": domain.TemplatesFor(domain.NewPair(domain.EUR, domain.JPY))[0].Title}, http.StatusOK, &v)
	prompt := v.Prompt
	doJSON(t, client, http.MethodPost, baseURL+"/api/prediction", map[string]string{"prompt": prompt}, http.StatusOK, &v)
	require.NotNil(t, v.Prediction)
	assert.Equal(t, predictionAnswer, *v.Prediction)
	assert.Equal(t, prompt, u.lastPrompt.Load())

	var q struct {
		Pair  string  `json:"pair"`
		Price float64 `json:"price"`
	}
	doJSON(t, client, http.MethodGet, baseURL+"/api/quotes/last?pair=EUR/JPY", nil, http.StatusOK, &q)
	assertApproxEqual(t, q.Price, expectedEURJPY, 1e-9)

	var archived []domain.QuoteHistory
	doJSON(t, client, http.MethodGet, baseURL+"/api/quotes/history?pair=EUR/JPY&limit=5", nil, http.StatusOK, &archived)
	require.Len(t, archived, 1)
	assertApproxEqual(t, archived[0].Price, expectedEURJPY, 1e-9)

	doJSON(t, client, http.MethodDelete, baseURL+"/api/history", nil, http.StatusOK, &v)
	assert.Empty(t, v.History)
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Timeout: 5 * time.Second, Jar: jar}
}

func waitForReady(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()
	deadline := time.Now().Add(readyTimeout)
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/readyz")
		if err == nil && resp.StatusCode == http.StatusOK {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(readyPollInterval)
	}
	t.Fatalf("API did not become ready within %s", readyTimeout)
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any, wantStatus int, out any) {
	t.Helper()
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", requestContentType)

	resp, err := client.Do(req)
	require.NoError(t, err, "%s %s", method, url)
	defer resp.Body.Close()
	require.Equal(t, wantStatus, resp.StatusCode, "unexpected status for %s %s", method, url)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
}

func getHistoryCSV(t *testing.T, client *http.Client, baseURL string) [][]string {
	t.Helper()
	resp, err := client.Get(baseURL + "/api/history.csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Disposition"), application.HistoryFileName)
	rows, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	return rows
}

func assertApproxEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if got > want+tol || got < want-tol {
		t.Fatalf("unexpected value: got %.6f, want %.6f (±%s)", got, want, fmt.Sprint(tol))
	}
}
