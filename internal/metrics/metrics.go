// internal/metrics/metrics.go
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Metrics holds the campaign's Prometheus collectors. A nil *Metrics
// is valid and records nothing, so the runner never branches on
// whether metrics are enabled.
type Metrics struct {
	cycles        prometheus.Counter
	cyclesSkipped prometheus.Counter
	submissions   *prometheus.CounterVec
	readiness     *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autosip_cycles_total",
			Help: "Measurement cycles attempted.",
		}),
		cyclesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autosip_cycles_skipped_total",
			Help: "Cycles skipped because the device never became ready.",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autosip_submissions_total",
			Help: "Per-channel submissions by outcome.",
		}, []string{"outcome"}),
		readiness: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autosip_readiness_checks_total",
			Help: "Readiness checks by result.",
		}, []string{"ready"}),
	}

	reg.MustRegister(m.cycles, m.cyclesSkipped, m.submissions, m.readiness)
	return m
}

// CycleStarted counts one attempted cycle.
func (m *Metrics) CycleStarted() {
	if m == nil {
		return
	}
	m.cycles.Inc()
}

// CycleSkipped counts a cycle abandoned after the readiness recheck.
func (m *Metrics) CycleSkipped() {
	if m == nil {
		return
	}
	m.cyclesSkipped.Inc()
}

// SubmissionObserved counts one per-channel submission outcome.
func (m *Metrics) SubmissionObserved(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

// ReadinessChecked counts one group readiness check.
func (m *Metrics) ReadinessChecked(ready bool) {
	if m == nil {
		return
	}
	label := "false"
	if ready {
		label = "true"
	}
	m.readiness.WithLabelValues(label).Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled. Blocks.
func Serve(ctx context.Context, addr string, log logrus.FieldLogger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Errorf("metrics server failed: %v", err)
	}
}
