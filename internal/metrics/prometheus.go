package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Metrics holds the Prometheus collectors for bigcalc. Each instance owns
// its registry, so tests and multiple tables never collide on registration.
//
// Metrics implements ntt.Observer.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	convolutions       *prometheus.CounterVec
	convolutionSeconds prometheus.Histogram
	levelPopulations   prometheus.Counter
	levelSeconds       prometheus.Histogram
	evaluations        *prometheus.CounterVec
	evaluationSeconds  *prometheus.HistogramVec
	activeEvaluations  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		convolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_convolutions_total",
			Help: "Number of transform convolutions, by transform length.",
		}, []string{"size"}),
		convolutionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bigcalc_convolution_duration_seconds",
			Help:    "Time spent in one convolution, including waiting for the table lock.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12),
		}),
		levelPopulations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bigcalc_transform_levels_populated_total",
			Help: "Number of transform table levels computed.",
		}),
		levelSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bigcalc_transform_level_duration_seconds",
			Help:    "Time spent computing the roots of one level.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12),
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_evaluations_total",
			Help: "Number of evaluated expressions, by operator and outcome.",
		}, []string{"op", "status"}),
		evaluationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bigcalc_evaluation_duration_seconds",
			Help:    "Time spent evaluating one expression.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		activeEvaluations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bigcalc_active_evaluations",
			Help: "Number of expressions currently being evaluated.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.convolutions,
		m.convolutionSeconds,
		m.levelPopulations,
		m.levelSeconds,
		m.evaluations,
		m.evaluationSeconds,
		m.activeEvaluations,
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveLevel records one populated transform level.
func (m *Metrics) ObserveLevel(_ int, elapsed time.Duration) {
	m.levelPopulations.Inc()
	m.levelSeconds.Observe(elapsed.Seconds())
}

// ObserveConvolution records one convolution of the given transform length.
func (m *Metrics) ObserveConvolution(size int, elapsed time.Duration) {
	m.convolutions.WithLabelValues(strconv.Itoa(size)).Inc()
	m.convolutionSeconds.Observe(elapsed.Seconds())
}

// EvaluationStarted increments the active evaluations gauge.
func (m *Metrics) EvaluationStarted() { m.activeEvaluations.Inc() }

// EvaluationFinished records the outcome of one expression and decrements
// the active evaluations gauge.
func (m *Metrics) EvaluationFinished(op string, err error, elapsed time.Duration) {
	m.activeEvaluations.Dec()
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.evaluations.WithLabelValues(op, status).Inc()
	m.evaluationSeconds.WithLabelValues(op).Observe(elapsed.Seconds())
}

// WritePrometheus serves the metrics in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Handler returns an http.Handler exposing /metrics. Only GET and HEAD are
// allowed.
func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		m.WritePrometheus(w, r)
	})
	return mux
}

// Serve exposes Handler on addr until ctx is canceled, then shuts the
// server down gracefully.
func (m *Metrics) Serve(ctx context.Context, addr string, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("serving metrics")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
