// internal/metrics/metrics_test.go
package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CycleStarted()
	m.CycleStarted()
	m.CycleSkipped()
	m.SubmissionObserved("success")
	m.SubmissionObserved("success")
	m.SubmissionObserved("submission_failed")

	if got := testutil.ToFloat64(m.cycles); got != 2 {
		t.Fatalf("cycles=%v, want 2", got)
	}
	if got := testutil.ToFloat64(m.cyclesSkipped); got != 1 {
		t.Fatalf("cyclesSkipped=%v, want 1", got)
	}
	if got := testutil.ToFloat64(m.submissions.WithLabelValues("success")); got != 2 {
		t.Fatalf("submissions{success}=%v, want 2", got)
	}
	if got := testutil.ToFloat64(m.submissions.WithLabelValues("submission_failed")); got != 1 {
		t.Fatalf("submissions{submission_failed}=%v, want 1", got)
	}
}

func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics
	m.CycleStarted()
	m.CycleSkipped()
	m.SubmissionObserved("success")
	m.ReadinessChecked(true)
}
