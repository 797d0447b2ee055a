// Package metrics exposes Prometheus instrumentation for the judging
// core. It is additive observability alongside the wire protocol's
// stats action, not a replacement for it.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SubmissionsTotal counts every accepted submit call.
	SubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "judge_submissions_total",
		Help: "Total number of tasks submitted to the judging core.",
	})

	// VerdictsTotal counts terminal verdicts landed by status.
	VerdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "judge_verdicts_total",
		Help: "Total number of terminal verdicts, by status.",
	}, []string{"status"})

	// ActiveWorkers holds the pool's active-task count as of the last
	// Facade.Stats call; it is not updated between calls.
	ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "judge_active_workers",
		Help: "Number of workers currently executing a task.",
	})

	// QueueDepth holds the pool's pending-queue length as of the last
	// Facade.Stats call; it is not updated between calls.
	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "judge_queue_depth",
		Help: "Approximate number of tasks waiting to be dequeued.",
	})
)

// Handler returns the HTTP handler to serve on the metrics address.
func Handler() http.Handler {
	return promhttp.Handler()
}
