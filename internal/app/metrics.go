package app

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xpsychometrics/collabmap/graph"
	"github.com/xpsychometrics/collabmap/internal/controller"
	"github.com/xpsychometrics/collabmap/layout"
)

// Metrics keeps its own registry so that several servers can coexist.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	LayoutIterations    prometheus.Histogram
	LayoutDuration      prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.HTTPRequestsTotal = promauto.With(m.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "collabmap_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	m.HTTPRequestDuration = promauto.With(m.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "collabmap_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	m.LayoutIterations = promauto.With(m.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collabmap_layout_iterations",
			Help:    "Simulation steps until the force layout settled",
			Buckets: []float64{50, 100, 200, 300, 400, 600},
		},
	)
	m.LayoutDuration = promauto.With(m.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collabmap_layout_duration_seconds",
			Help:    "Time spent computing the force layout",
			Buckets: prometheus.DefBuckets,
		},
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts requests by their route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	}
	return http.HandlerFunc(fn)
}

type instrumentedLayouter struct {
	controller.Layouter
	metrics *Metrics
}

// InstrumentLayouter records the stats of every layout computation.
func (m *Metrics) InstrumentLayouter(l controller.Layouter) controller.Layouter {
	return &instrumentedLayouter{Layouter: l, metrics: m}
}

func (l *instrumentedLayouter) Reload(ctx context.Context, g *graph.ForceGraph) layout.Stats {
	stats := l.Layouter.Reload(ctx, g)
	l.metrics.LayoutIterations.Observe(float64(stats.Iterations))
	l.metrics.LayoutDuration.Observe(stats.TotalTime.Seconds())
	return stats
}
