// Package pipeline implements the per-task execution state machine:
// resolve language -> prepare scratch -> write source -> compile ->
// load test cases -> run -> score. Judge is deterministic and
// synchronous; it is the only operation workers call.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"judged/internal/judgeerr"
	"judged/internal/model"
	"judged/internal/obslog"
	"judged/internal/registry"
	"judged/internal/testcases"
)

// Pipeline assembles the registry, test-case loader, and scratch root a
// worker needs to judge one task at a time.
type Pipeline struct {
	registry    *registry.Registry
	loader      *testcases.Loader
	scratchRoot string
}

// New builds a Pipeline. scratchRoot is the temp directory under which
// each task gets its own subdirectory named by task id.
func New(reg *registry.Registry, loader *testcases.Loader, scratchRoot string) *Pipeline {
	return &Pipeline{registry: reg, loader: loader, scratchRoot: scratchRoot}
}

// Judge runs task through the full pipeline and returns its terminal
// verdict. It never panics: every failure mode maps to a terminal
// Status instead.
func (p *Pipeline) Judge(task model.Task) model.Verdict {
	log := obslog.L().With(obslog.TaskField(task.ID))

	// Resolving.
	tmpl, err := p.registry.Resolve(task.Language)
	if err != nil {
		log.Warn("language resolution failed", zap.Error(err))
		return systemError(err)
	}

	// Preparing.
	scratchDir := filepath.Join(p.scratchRoot, task.ID)
	if err := os.MkdirAll(scratchDir, 0755); err != nil && !os.IsExist(err) {
		wrapped := judgeerr.Wrapf(err, judgeerr.ScratchDirFailed, "create scratch dir: %v", err)
		log.Warn("scratch dir creation failed", zap.Error(wrapped))
		return systemError(wrapped)
	}

	// Writing.
	sourcePath := filepath.Join(scratchDir, "code"+tmpl.FileExtension)
	if err := os.WriteFile(sourcePath, []byte(task.Code), 0644); err != nil {
		wrapped := judgeerr.Wrapf(err, judgeerr.SourceWriteFailed, "write source file: %v", err)
		log.Warn("source write failed", zap.Error(wrapped))
		return systemError(wrapped)
	}

	// Compiling.
	if tmpl.NeedsCompilation && tmpl.CompileCommand != "" {
		res, err := runShell(tmpl.CompileCommand, sourcePath, scratchDir, nil)
		if err != nil {
			wrapped := judgeerr.Wrapf(err, judgeerr.ShellSpawnFailed, "spawn compile shell: %v", err)
			log.Warn("compile shell spawn failed", zap.Error(wrapped))
			return systemError(wrapped)
		}
		if !res.exitOK {
			msg := string(res.stderr)
			log.Info("compilation failed", zap.String("stderr", msg))
			return model.Verdict{Status: model.StatusCompilationError, Score: 0, ErrorMessage: &msg}
		}
	}

	// Loading.
	cases := p.loader.Load(fmt.Sprintf("%d", task.ProblemID))
	if len(cases) == 0 {
		zero := int32(0)
		return model.Verdict{Status: model.StatusAccepted, Score: 100, ExecutionTimeMs: &zero}
	}

	// Running.
	passed := 0
	var totalTimeMs int64
	for i, tc := range cases {
		inputPath := filepath.Join(scratchDir, fmt.Sprintf("input%d.txt", i))
		if err := os.WriteFile(inputPath, []byte(tc.Input), 0644); err != nil {
			wrapped := judgeerr.Wrapf(err, judgeerr.SourceWriteFailed, "write input file: %v", err)
			log.Warn("input write failed", zap.Error(wrapped))
			return systemError(wrapped)
		}

		start := time.Now()
		res, err := runShell(tmpl.RunCommand, sourcePath, scratchDir, &tc.Input)
		elapsedMs := int32(time.Since(start).Milliseconds())
		if err != nil {
			wrapped := judgeerr.Wrapf(err, judgeerr.ShellSpawnFailed, "spawn run shell: %v", err)
			log.Warn("run shell spawn failed", zap.Error(wrapped))
			return systemError(wrapped)
		}
		totalTimeMs += int64(elapsedMs)

		if elapsedMs > task.TimeLimitMs {
			msg := fmt.Sprintf("time limit exceeded: %dms > %dms", elapsedMs, task.TimeLimitMs)
			log.Info("time limit exceeded", zap.Int32("elapsed_ms", elapsedMs), zap.Int32("limit_ms", task.TimeLimitMs))
			return model.Verdict{Status: model.StatusTimeLimitExceeded, Score: 0, ExecutionTimeMs: &elapsedMs, ErrorMessage: &msg}
		}
		if !res.exitOK {
			msg := string(res.stderr)
			log.Info("runtime error", zap.Int("test_index", i))
			return model.Verdict{Status: model.StatusRuntimeError, Score: 0, ExecutionTimeMs: &elapsedMs, ErrorMessage: &msg}
		}
		if compareOutputs(string(res.stdout), tc.Expected) {
			passed++
		}
	}

	// Scoring.
	total := len(cases)
	score := int32((passed * 100) / total)
	avgMs := int32(totalTimeMs / int64(total))
	status := model.StatusWrongAnswer
	switch {
	case score == 100:
		status = model.StatusAccepted
	case score > 0:
		status = model.StatusPartiallyCorrect
	}
	log.Info("judged", zap.String("status", string(status)), zap.Int32("score", score))
	return model.Verdict{Status: status, Score: score, ExecutionTimeMs: &avgMs}
}

// Cleanup removes a task's scratch directory. Not called by Judge itself
// (cleanup is an optional external concern per the data model's
// lifecycle contract); an operator-facing cron or CLI command invokes
// this once a verdict has been read.
func (p *Pipeline) Cleanup(taskID string) error {
	return os.RemoveAll(filepath.Join(p.scratchRoot, taskID))
}

func systemError(err error) model.Verdict {
	msg := err.Error()
	status := judgeerr.StatusFor(judgeerr.CodeOf(err))
	return model.Verdict{Status: status, Score: 0, ErrorMessage: &msg}
}
