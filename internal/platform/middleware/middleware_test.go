package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetgate/internal/platform/metrics"
	"fleetgate/internal/platform/middleware"
)

func TestLatencyMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.LatencyMiddleware(m))
	router.Get("/assets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/assets/111", "/assets/222", "/assets/333"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	// Three distinct paths collapse into one series for the route pattern.
	assert.Equal(t, 1, promtestutil.CollectAndCount(m.RequestLatency))
}

func TestRequestID_GeneratedAndPropagated(t *testing.T) {
	var seen string
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get("X-Request-ID"))

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "req-42", seen)
}
