package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCounters(t *testing.T) {
	m := New()

	m.UserRegistered()
	m.UserRegistered()
	m.LecturerAdded()
	m.EvaluationSubmitted(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.usersRegistered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lecturersAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluationsSubmitted))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ratings))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	m.UserRegistered()
	m.LecturerAdded()
	m.EvaluationSubmitted(5)

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	m := New()
	router := mux.NewRouter()
	router.Use(m.Middleware)
	router.HandleFunc("/lecturers/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"L0001", "L0002"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lecturers/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/lecturers/{id}", "404")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.EvaluationSubmitted(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "lecture_eval_evaluations_submitted_total 1"), body)
	assert.Contains(t, body, "lecture_eval_evaluation_rating_bucket")
	assert.Contains(t, body, "go_goroutines")
}
