// Copyright (c) 2026 FutureKey. All rights reserved.

/*
Package metrics exposes Prometheus collectors for the HTTP layer and the store.

# Collectors

  - futurekey_http_requests_total{method,route,status}
  - futurekey_http_request_duration_seconds{method,route}
  - futurekey_http_inflight_requests
  - futurekey_store_queries_total{operation,outcome}
  - futurekey_store_query_duration_seconds{operation}
  - futurekey_db_pool_{total,acquired,idle,max}_conns (after [RegisterPool])

Route labels use the chi route pattern ("/api/v1/provinces/{id}"), never the raw
path, so label cardinality stays bounded.
*/
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "futurekey"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	storeQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "queries_total",
			Help:      "Total number of instrumented store operations.",
		},
		[]string{"operation", "outcome"},
	)

	storeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Duration of instrumented store operations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		storeQueries,
		storeDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// PoolStatter is satisfied by *pgxpool.Pool.
type PoolStatter interface {
	Stat() *pgxpool.Stat
}

// RegisterPool exposes connection pool gauges, sampled at scrape time.
func RegisterPool(pool PoolStatter) error {
	gauge := func(name, help string, value func(*pgxpool.Stat) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		}, func() float64 { return value(pool.Stat()) })
	}

	for _, collector := range []prometheus.Collector{
		gauge("total_conns", "Connections currently open.", func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }),
		gauge("acquired_conns", "Connections checked out by queries.", func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }),
		gauge("idle_conns", "Idle connections.", func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }),
		gauge("max_conns", "Configured pool ceiling.", func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }),
	} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/metrics" {
			next.ServeHTTP(writer, request)
			return
		}

		recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(recorder, request)

		route := routePattern(request)
		method := strings.ToUpper(request.Method)

		httpRequests.WithLabelValues(method, route, strconv.Itoa(recorder.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

/*
ObserveQuery records one store operation. Designed for defer:

	defer metrics.ObserveQuery("overview_system_stats", time.Now(), &err)

Parameters:
  - operation: string (Stable, low-cardinality name)
  - start: time.Time
  - errp: *error (Named return of the caller; nil counts as success)
*/
func ObserveQuery(operation string, start time.Time, errp *error) {
	outcome := "ok"
	if errp != nil && *errp != nil {
		outcome = "error"
	}

	storeQueries.WithLabelValues(operation, outcome).Inc()
	storeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// routePattern resolves the matched chi pattern after routing has completed.
func routePattern(request *http.Request) string {
	if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
		if pattern := routeContext.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
