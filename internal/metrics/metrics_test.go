package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	before := testutil.CollectAndCount(httpRequests)

	handler := Middleware("test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("middleware altered the response status: %d", rec.Code)
	}
	if after := testutil.CollectAndCount(httpRequests); after <= before {
		t.Fatalf("expected a new request series, before=%d after=%d", before, after)
	}
}

func TestMiddlewareLabelsRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Middleware("test"))
	router.Get("/sessions/{session_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// two requests with distinct IDs must land in one series keyed by the
	// route pattern, not one series per URL
	for _, id := range []string{"11111111-aaaa", "22222222-bbbb"} {
		req := httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
	}

	got := testutil.ToFloat64(httpRequests.WithLabelValues("test", http.MethodGet, "/sessions/{session_id}", "200"))
	if got < 2 {
		t.Fatalf("expected both requests under the route pattern label, got %f", got)
	}
}

func TestObserveTurn(t *testing.T) {
	ObserveTurn("Backend", "ok")
	ObserveTurn("Backend", "ok")

	got := testutil.ToFloat64(turns.WithLabelValues("Backend", "ok"))
	if got < 2 {
		t.Fatalf("expected at least 2 turns recorded, got %f", got)
	}
}

func TestObserveModelLatency(t *testing.T) {
	ObserveModelLatency("groq", 250*time.Millisecond)

	if count := testutil.CollectAndCount(modelLatency); count == 0 {
		t.Fatal("expected model latency series to exist")
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics endpoint, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected metrics output")
	}
}
