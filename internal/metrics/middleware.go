package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "formsearch",
			Name:      "http_request_duration_seconds",
			Help:      "API request duration in seconds (health and metrics endpoints excluded)",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "formsearch",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpSearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "formsearch",
			Name:      "http_search_requests_total",
			Help:      "Search API requests by the mode the engine answered with",
		},
		[]string{"mode", "status"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpSearchRequestsTotal)
}

// scrapePaths are scraped by infrastructure; they are counted but kept out of the latency histogram.
var scrapePaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type searchModeKey struct{}

// searchMode carries the mode a search handler reports back to Middleware.
type searchMode struct {
	mode string
}

// SetSearchMode records the search mode for the current request.
// No-op outside Middleware.
func SetSearchMode(ctx context.Context, mode string) {
	if sm, ok := ctx.Value(searchModeKey{}).(*searchMode); ok {
		sm.mode = mode
	}
}

// Middleware records HTTP request duration and count, plus the search mode of
// search requests.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			sm := &searchMode{}
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), searchModeKey{}, sm)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			statusLabel := strconv.Itoa(status)
			path := routePath(r)

			httpRequestsTotal.WithLabelValues(r.Method, path, statusLabel).Inc()
			if _, scraped := scrapePaths[path]; !scraped {
				httpRequestDuration.WithLabelValues(r.Method, path, statusLabel).Observe(time.Since(start).Seconds())
			}
			if sm.mode != "" {
				httpSearchRequestsTotal.WithLabelValues(sm.mode, statusLabel).Inc()
			}
		})
	}
}

// routePath returns the chi route pattern so path parameters (form codes) do not
// explode label cardinality.
func routePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return normalizePath(rctx.RoutePattern())
	}
	return normalizePath("")
}

func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}
