// Package facade exposes the judging core as a single entry point:
// Submit a task, poll Status by id. It owns the worker pool and the
// verdict table and is the only package the request multiplexer talks
// to.
package facade

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"judged/internal/judgeerr"
	"judged/internal/metrics"
	"judged/internal/model"
	"judged/internal/obslog"
	"judged/internal/pool"
	"judged/internal/verdict"
)

// Submitter is the subset of *pool.Pool the facade depends on, so tests
// can substitute a fake.
type Submitter interface {
	Submit(work pool.Work) error
	ActiveCount() int
	QueueDepth() int
	Shutdown()
}

// Facade wires a pool and a verdict table into the submit/status API the
// spec's request multiplexer exposes over the wire.
type Facade struct {
	pool  Submitter
	table *verdict.Table
}

// New builds a Facade over an already-started pool.
func New(p Submitter) *Facade {
	return &Facade{pool: p, table: verdict.New()}
}

// SubmitRequest carries everything needed to build a model.Task.
type SubmitRequest struct {
	SubmissionID     int32
	ProblemID        int32
	Code             string
	Language         string
	TimeLimitMs      int32
	MemoryLimitBytes uint64
}

// Submit assigns a fresh task id, records it PENDING, enqueues the work,
// and spawns a collector that writes the terminal verdict once the
// worker that picks it up finishes. It returns the task id immediately;
// the verdict is fetched later through Status.
func (f *Facade) Submit(req SubmitRequest) string {
	taskID := uuid.NewString()
	f.table.Insert(taskID, model.Pending())

	task := model.Task{
		ID:               taskID,
		SubmissionID:     req.SubmissionID,
		ProblemID:        req.ProblemID,
		Code:             req.Code,
		Language:         req.Language,
		TimeLimitMs:      req.TimeLimitMs,
		MemoryLimitBytes: req.MemoryLimitBytes,
	}

	replyCh := make(chan model.Verdict, 1)
	if err := f.pool.Submit(pool.Work{Task: task, ReplyCh: replyCh}); err != nil {
		obslog.L().Warn("submit rejected by pool", obslog.TaskField(taskID), zap.Error(err))
		v := model.SystemError(err.Error())
		f.table.Insert(taskID, v)
		metrics.VerdictsTotal.WithLabelValues(string(v.Status)).Inc()
		return taskID
	}

	metrics.SubmissionsTotal.Inc()
	go f.collect(taskID, replyCh)
	return taskID
}

// collect waits for the worker's reply and writes the terminal verdict.
// It runs once per submitted task and exits after a single receive.
func (f *Facade) collect(taskID string, replyCh <-chan model.Verdict) {
	v, ok := <-replyCh
	if !ok {
		err := judgeerr.New(judgeerr.CollectorFailed, "reply channel closed without a verdict")
		obslog.L().Warn("collector failed", obslog.TaskField(taskID), zap.Error(err))
		v = model.SystemError(err.Error())
		f.table.Insert(taskID, v)
		metrics.VerdictsTotal.WithLabelValues(string(v.Status)).Inc()
		return
	}
	f.table.Insert(taskID, v)
	metrics.VerdictsTotal.WithLabelValues(string(v.Status)).Inc()
}

// Status returns the current verdict for taskID and whether it is known
// to the table at all.
func (f *Facade) Status(taskID string) (model.Verdict, bool) {
	return f.table.Get(taskID)
}

// Stats is a snapshot of pool occupancy for the stats wire action.
type Stats struct {
	ActiveWorkers int
	QueueDepth    int
	TrackedTasks  int
}

// Stats reports current pool occupancy and table size, and refreshes
// the corresponding gauges for the metrics endpoint.
func (f *Facade) Stats() Stats {
	active := f.pool.ActiveCount()
	depth := f.pool.QueueDepth()
	metrics.ActiveWorkers.Set(float64(active))
	metrics.QueueDepth.Set(float64(depth))
	return Stats{
		ActiveWorkers: active,
		QueueDepth:    depth,
		TrackedTasks:  f.table.Len(),
	}
}

// Shutdown stops accepting new work and blocks until in-flight tasks
// finish.
func (f *Facade) Shutdown() {
	f.pool.Shutdown()
}
