// Package judgeerr defines the typed error taxonomy for the judging core.
//
// Internal failures of the registry, pipeline, pool, and facade, and the
// multiplexer's protocol errors, are constructed as an *Error carrying a
// stable Code, so callers can switch on Code instead of matching message
// strings, and the underlying cause survives through Unwrap for
// errors.Is/errors.As.
package judgeerr

import (
	"fmt"

	"judged/internal/model"
)

// Code identifies a class of judging-core failure.
type Code int

const (
	// Unknown is the zero value; never constructed deliberately.
	Unknown Code = iota

	// LanguageNotFound means the registry has no template for a
	// (normalized) language name.
	LanguageNotFound
	// ScratchDirFailed means the per-task scratch directory could not
	// be prepared.
	ScratchDirFailed
	// SourceWriteFailed means the source file could not be written to
	// scratch.
	SourceWriteFailed
	// ShellSpawnFailed means the platform shell itself could not be
	// started for a compile or run step.
	ShellSpawnFailed
	// CompileFailed means the compile command ran and exited non-zero.
	CompileFailed
	// RunFailed means a test run exited non-zero.
	RunFailed
	// TimeLimitExceeded means a test run's wall clock exceeded the
	// task's time limit.
	TimeLimitExceeded
	// CollectorFailed means the per-task result collector did not
	// receive a verdict from its worker.
	CollectorFailed
	// QueueClosed means submission was attempted after pool shutdown.
	QueueClosed
	// QueueFull means the bounded queue rejected a submission.
	QueueFull

	// ProtocolInvalidJSON means a request frame did not parse as JSON.
	ProtocolInvalidJSON
	// ProtocolMissingField means a request was missing a field its
	// action requires.
	ProtocolMissingField
	// ProtocolUnknownAction means the request named an action the
	// multiplexer does not dispatch.
	ProtocolUnknownAction
	// ProtocolUnknownID means a status request named an id absent
	// from the verdict table.
	ProtocolUnknownID
)

var codeNames = map[Code]string{
	Unknown:               "unknown",
	LanguageNotFound:      "language_not_found",
	ScratchDirFailed:      "scratch_dir_failed",
	SourceWriteFailed:     "source_write_failed",
	ShellSpawnFailed:      "shell_spawn_failed",
	CompileFailed:         "compile_failed",
	RunFailed:             "run_failed",
	TimeLimitExceeded:     "time_limit_exceeded",
	CollectorFailed:       "collector_failed",
	QueueClosed:           "queue_closed",
	QueueFull:             "queue_full",
	ProtocolInvalidJSON:   "protocol_invalid_json",
	ProtocolMissingField:  "protocol_missing_field",
	ProtocolUnknownAction: "protocol_unknown_action",
	ProtocolUnknownID:     "protocol_unknown_id",
}

// String returns the stable, lowercase name of the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Error is a judging-core failure with a stable code and an optional
// wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code.String()
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a code and formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a code, keeping its message.
func Wrap(err error, code Code) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		e.Code = code
		return e
	}
	return &Error{Code: code, Message: err.Error(), Err: err}
}

// Wrapf wraps an existing error with a code and a formatted message.
func Wrapf(err error, code Code, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the Code from any error, defaulting to Unknown.
func CodeOf(err error) Code {
	if err == nil {
		return Unknown
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return Unknown
}

// StatusFor maps a judgeerr.Code to the terminal model.Status the
// execution pipeline reports when an error carrying that code is the
// reason a task did not reach Scoring normally. Compile, run, and
// time-limit outcomes are expected judging results rather than internal
// failures, so the pipeline builds those verdicts directly instead of
// routing them through this taxonomy; their codes are still given an
// explicit case here so every declared code maps to a status. Protocol
// codes never reach the pipeline (they terminate a wire request before
// a Task exists) and fall back to SYSTEM_ERROR like any other internal
// failure would.
func StatusFor(code Code) model.Status {
	switch code {
	case CompileFailed:
		return model.StatusCompilationError
	case RunFailed:
		return model.StatusRuntimeError
	case TimeLimitExceeded:
		return model.StatusTimeLimitExceeded
	case LanguageNotFound, ScratchDirFailed, SourceWriteFailed, ShellSpawnFailed,
		CollectorFailed, QueueClosed, QueueFull,
		ProtocolInvalidJSON, ProtocolMissingField, ProtocolUnknownAction, ProtocolUnknownID,
		Unknown:
		return model.StatusSystemError
	default:
		return model.StatusSystemError
	}
}
