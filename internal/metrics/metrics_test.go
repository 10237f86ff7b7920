package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCall(t *testing.T) {
	ok := testutil.ToFloat64(UpstreamCalls(CallSheetRead, OutcomeSuccess))
	failed := testutil.ToFloat64(UpstreamCalls(CallSheetRead, OutcomeFailure))

	ObserveCall(CallSheetRead, nil)
	ObserveCall(CallSheetRead, errors.New("boom"))
	ObserveCall(CallSheetRead, errors.New("boom"))

	assert.Equal(t, ok+1, testutil.ToFloat64(UpstreamCalls(CallSheetRead, OutcomeSuccess)))
	assert.Equal(t, failed+2, testutil.ToFloat64(UpstreamCalls(CallSheetRead, OutcomeFailure)))
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/query", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/api/query", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/query", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/api/query", "418")))
}
