// Package model holds the judging core's plain data types, shared by the
// registry, loader, pipeline, pool, facade, and multiplexer without any
// of those packages depending on each other.
package model

// Task is the immutable record produced at submission time. Once built,
// it is handed to the queue, consumed exactly once by a worker, and
// discarded after the verdict is produced.
type Task struct {
	ID               string
	SubmissionID     int32
	ProblemID        int32
	Code             string
	Language         string
	TimeLimitMs      int32
	MemoryLimitBytes uint64
}
