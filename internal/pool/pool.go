// Package pool implements the fixed-size worker pool that dequeues
// judging work and drives it through the execution pipeline, tracking
// how many workers are currently executing.
package pool

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"judged/internal/judgeerr"
	"judged/internal/model"
	"judged/internal/obslog"
)

// dequeueTimeout bounds how long a worker blocks on an empty queue
// before re-checking the shutdown flag.
const dequeueTimeout = 100 * time.Millisecond

// Judger runs one task through the execution pipeline to completion.
type Judger interface {
	Judge(task model.Task) model.Verdict
}

// Pool is a fixed set of workers consuming a shared FIFO. Workers are
// started by New and run until Shutdown is called.
type Pool struct {
	queue    *fifoQueue
	judger   Judger
	shutdown atomic.Bool
	active   atomic.Int64
	wg       sync.WaitGroup
}

// New starts size workers backed by judger, each polling a FIFO bounded
// by maxQueue items (0 means unbounded).
func New(size int, maxQueue int, judger Judger) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{
		queue:  newFIFOQueue(maxQueue),
		judger: judger,
	}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.runWorker(i)
	}
	return p
}

func (p *Pool) runWorker(id int) {
	defer p.wg.Done()
	log := obslog.L().With(zap.Int("worker_id", id))
	log.Info("worker started")

	for {
		if p.shutdown.Load() {
			log.Info("worker shutting down")
			return
		}

		work, ok, closed := p.queue.pop(dequeueTimeout)
		if closed {
			log.Info("worker queue closed")
			return
		}
		if !ok {
			continue
		}

		p.active.Add(1)
		verdict := p.judger.Judge(work.Task)
		p.active.Add(-1)

		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Warn("reply channel send panicked, discarding", zap.Any("recover", r))
				}
			}()
			select {
			case work.ReplyCh <- verdict:
			default:
				// The first send did not go through at once (the
				// channel's buffer, if any, is full and no reader is
				// ready). Wait at most a second for a reader, then
				// discard the reply rather than block the worker.
				select {
				case work.ReplyCh <- verdict:
				case <-time.After(time.Second):
					log.Warn("reply channel send timed out, discarding")
				}
			}
		}()
	}
}

// ErrQueueClosed is returned by Submit once the pool has been shut down.
var ErrQueueClosed = judgeerr.New(judgeerr.QueueClosed, "worker pool is shut down")

// ErrQueueFull is returned by Submit when the bounded queue is at
// capacity.
var ErrQueueFull = judgeerr.New(judgeerr.QueueFull, "worker pool queue is full")

// Submit enqueues work in FIFO order. It never blocks waiting for a
// worker: an unbounded queue absorbs any overload, while a bounded queue
// at capacity rejects the work with ErrQueueFull.
func (p *Pool) Submit(work Work) error {
	ok, closed, full := p.queue.push(work)
	if ok {
		return nil
	}
	if closed {
		return ErrQueueClosed
	}
	if full {
		return ErrQueueFull
	}
	return ErrQueueClosed
}

// ActiveCount reports how many workers are currently executing a task.
func (p *Pool) ActiveCount() int {
	return int(p.active.Load())
}

// QueueDepth reports the approximate number of tasks waiting to be
// dequeued, for metrics/stats purposes.
func (p *Pool) QueueDepth() int {
	return p.queue.len()
}

// Shutdown sets the shutdown flag, closes the queue to new submissions,
// and blocks until every worker has exited.
func (p *Pool) Shutdown() {
	p.shutdown.Store(true)
	p.queue.close()
	p.wg.Wait()
}
