package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/entur/oav/internal/config"
	"github.com/entur/oav/internal/container"
)

// Run executes the Lint -> Generate -> Compile pipeline for input and
// returns a channel of ordered events. The channel is closed after exactly
// one of EventCompleted or EventAborted is sent. cancel lets a caller abort
// a run in progress (e.g. on SIGINT); it is checked after every phase.
func Run(ctx context.Context, input Input, cancel container.CancelToken) <-chan Event {
	events := make(chan Event, 16)
	go runInner(ctx, input, cancel, events)
	return events
}

func runInner(ctx context.Context, input Input, cancel container.CancelToken, events chan<- Event) {
	defer close(events)

	runID := uuid.NewString()
	logger := slog.With("run_id", runID, "spec", input.SpecPath)
	logger.Info("pipeline run starting")

	var phases Phases
	var summary Summary

	cfg := input.Config

	if cfg.Lint && cfg.Linter != "" && cfg.Linter != config.LinterNone {
		result := runLint(ctx, input, cancel, events)
		phases.Lint = &result
		summary.Total++
		if result.Status == statusPass {
			summary.Passed++
		} else {
			summary.Failed++
		}

		if cancel.IsCancelled() {
			logger.Warn("pipeline cancelled after lint phase")
			events <- Event{Kind: EventAborted, Reason: "Cancelled by user"}
			return
		}
	}

	generators := BuildGeneratorList(cfg)

	if cfg.Generate && len(generators) > 0 {
		allGeneratePassed := true

		results := runStepsParallel(ctx, input, cancel, PhaseGenerate, generators, events)
		phases.Generate = results
		for _, r := range results {
			summary.Total++
			if r.Status == statusPass {
				summary.Passed++
			} else {
				summary.Failed++
				allGeneratePassed = false
			}
		}

		if cancel.IsCancelled() {
			logger.Warn("pipeline cancelled after generate phase")
			events <- Event{Kind: EventAborted, Reason: "Cancelled by user"}
			return
		}

		if cfg.Compile && allGeneratePassed {
			results := runStepsParallel(ctx, input, cancel, PhaseCompile, generators, events)
			phases.Compile = results
			for _, r := range results {
				summary.Total++
				if r.Status == statusPass {
					summary.Passed++
				} else {
					summary.Failed++
				}
			}

			if cancel.IsCancelled() {
				logger.Warn("pipeline cancelled after compile phase")
				events <- Event{Kind: EventAborted, Reason: "Cancelled by user"}
				return
			}
		}
	}

	report := &ValidateReport{
		Spec:    filepath.Base(input.SpecPath),
		Mode:    string(cfg.Mode),
		Phases:  phases,
		Summary: summary,
	}
	logger.Info("pipeline run completed", "total", summary.Total, "passed", summary.Passed, "failed", summary.Failed)
	events <- Event{Kind: EventCompleted, Report: report}
}

func runLint(ctx context.Context, input Input, cancel container.CancelToken, events chan<- Event) LintResult {
	phase := Phase{Kind: PhaseLint}
	events <- Event{Kind: EventPhaseStarted, Phase: phase}

	cfg := input.Config
	var cmd container.Command
	switch cfg.Linter {
	case config.LinterRedocly:
		cmd = RedoclyCommand(cfg, input.WorkDir, input.SpecPath)
	default:
		cmd = SpectralCommand(cfg, input.WorkDir, input.SpecPath)
	}

	result := runContainer(ctx, cmd, cancel, phase, events)
	success := result.Success
	events <- Event{Kind: EventPhaseFinished, Phase: phase, Success: success}

	return LintResult{Linter: string(cfg.Linter), Status: statusFor(success), Log: result.Log}
}

// runStepsParallel runs every generator step through the given phase kind in
// chunks of cfg.Jobs.Resolve(), waiting for an entire chunk to finish before
// starting the next — bounded fan-out/fan-in, not full parallelism.
func runStepsParallel(
	ctx context.Context,
	input Input,
	cancel container.CancelToken,
	kind PhaseKind,
	generators []generatorStep,
	events chan<- Event,
) []StepResult {
	jobs := input.Config.Jobs.Resolve()
	if jobs < 1 {
		jobs = 1
	}

	results := make([]StepResult, len(generators))

	for start := 0; start < len(generators); start += jobs {
		if cancel.IsCancelled() {
			break
		}
		end := start + jobs
		if end > len(generators) {
			end = len(generators)
		}
		chunk := generators[start:end]

		g, gctx := errgroup.WithContext(ctx)
		for offset, step := range chunk {
			idx := start + offset
			step := step
			g.Go(func() error {
				results[idx] = runStep(gctx, input, cancel, kind, step, events)
				return nil
			})
		}
		_ = g.Wait()
	}

	return results
}

func runStep(ctx context.Context, input Input, cancel container.CancelToken, kind PhaseKind, step generatorStep, events chan<- Event) StepResult {
	phase := Phase{Kind: kind, Generator: step.Generator, Scope: step.Scope}
	events <- Event{Kind: EventPhaseStarted, Phase: phase}

	cfg := input.Config
	var cmd container.Command
	if kind == PhaseGenerate {
		cmd = GenerateCommand(cfg, input.WorkDir, input.SpecPath, step.Generator, step.Scope)
	} else {
		cmd = CompileCommand(cfg, input.WorkDir, step.Generator, step.Scope)
	}

	result := runContainer(ctx, cmd, cancel, phase, events)
	events <- Event{Kind: EventPhaseFinished, Phase: phase, Success: result.Success}

	return StepResult{
		Generator: step.Generator,
		Scope:     step.Scope,
		Status:    statusFor(result.Success),
		Log:       result.Log,
	}
}

// runContainer spawns cmd, forwards stdout/stderr as Log events tagged with
// phase, accumulates a local log from those same lines, and on completion
// falls back to the container's own accumulated log if the local one ended
// up empty (the orchestrator's own layer of the same empty-log fallback
// internal/container's streamBufs already applies one level down).
func runContainer(ctx context.Context, cmd container.Command, cancel container.CancelToken, phase Phase, events chan<- Event) container.Result {
	lines, err := container.Spawn(ctx, cmd, cancel)
	if err != nil {
		msg := "failed to spawn: " + err.Error()
		events <- Event{Kind: EventLog, Phase: phase, Line: msg}
		failed := 1
		return container.Result{Success: false, ExitCode: &failed, Log: msg}
	}

	var log []byte
	var final container.Result

	for line := range lines {
		switch line.Kind {
		case container.LineStdout, container.LineStderr:
			log = append(log, line.Text...)
			log = append(log, '\n')
			events <- Event{Kind: EventLog, Phase: phase, Line: line.Text}
		case container.LineDone:
			final = *line.Done
		}
	}

	success := final.Success
	if final.Cancelled {
		success = false
	}

	result := final
	result.Success = success
	if len(log) == 0 {
		result.Log = final.Log
	} else {
		result.Log = string(log)
	}
	return result
}
