package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
)

const namespace = "stickybar"

// Metrics owns a private Prometheus registry with the service collectors.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	resolutions     *prometheus.CounterVec
	expiredClears   prometheus.Counter
	requestDuration *prometheus.HistogramVec
	catalogReloads  *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolutions_total",
		Help:      "Banner resolutions by outcome",
	}, []string{"outcome"})

	expiredClears := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expired_clears_total",
		Help:      "Selections cleared because their expiry passed",
	})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	catalogReloads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_reloads_total",
		Help:      "Post catalog reload attempts by result",
	}, []string{"result"})

	registry.MustRegister(
		resolutions,
		expiredClears,
		requestDuration,
		catalogReloads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Pre-create the outcome series so dashboards see zeros.
	for _, outcome := range []string{
		domain.OutcomeShown,
		domain.OutcomeNoSelection,
		domain.OutcomeExpired,
		domain.OutcomePostUnavailable,
		domain.OutcomeError,
	} {
		resolutions.WithLabelValues(outcome)
	}

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		resolutions:     resolutions,
		expiredClears:   expiredClears,
		requestDuration: requestDuration,
		catalogReloads:  catalogReloads,
	}
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveResolution implements domain.ResolutionObserver.
func (m *Metrics) ObserveResolution(outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(outcome).Inc()
	if outcome == domain.OutcomeExpired {
		m.expiredClears.Inc()
	}
}

// ObserveCatalogReload counts one reload attempt.
func (m *Metrics) ObserveCatalogReload(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.catalogReloads.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest records one request duration.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Middleware times every request. The route label is the chi pattern, so
// path parameters don't explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.ObserveHTTPRequest(r.Method, route, status, time.Since(start))
	})
}
