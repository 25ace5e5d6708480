package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	body := scrape(t, metrics)
	require.Contains(t, body, `kontobok_http_requests_total{code="418",route="unknown"} 1`)
}

func TestVoucherCounters(t *testing.T) {
	metrics := NewMetrics()
	metrics.VoucherCreated()
	metrics.VoucherCreated()
	metrics.VoucherPosted()

	body := scrape(t, metrics)
	require.Contains(t, body, "kontobok_vouchers_created_total 2")
	require.Contains(t, body, "kontobok_vouchers_posted_total 1")
}

func TestNilMetricsAreInert(t *testing.T) {
	var metrics *Metrics
	metrics.VoucherCreated()
	metrics.VoucherPosted()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	passed := false
	metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		passed = true
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, passed)
}

func scrape(t *testing.T, metrics *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return strings.TrimSpace(rec.Body.String())
}
