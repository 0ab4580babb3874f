package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	var seen string
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(UserIDHeader, " 0b7c6f1e-3c1d-4c55-9a55-2b0f1f5e6a11 ")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "0b7c6f1e-3c1d-4c55-9a55-2b0f1f5e6a11", seen)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "req-1")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "req-1", seen)
}

type observed struct {
	method, path string
	status       int
}

type fakeMetrics struct{ calls []observed }

func (f *fakeMetrics) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	f.calls = append(f.calls, observed{method: method, path: path, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/sitters/{sitterId}/availability/slots", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sitters/abc/availability/slots", nil))

	assert.Equal(t, []observed{{method: http.MethodGet, path: "/sitters/{sitterId}/availability/slots", status: http.StatusBadRequest}}, m.calls)
}
