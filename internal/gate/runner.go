package gate

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	pipelineerrors "github.com/wwiii/pipeline/internal/errors"
)

// Mode selects the pipeline's failure-handling behavior.
type Mode int

const (
	// FailFast stops at the first failing gate. Gates after the failure are
	// never executed and are absent from the report, not "failed".
	FailFast Mode = iota

	// CollectAll runs every gate regardless of earlier failures and
	// aggregates the results.
	CollectAll
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case FailFast:
		return "fail-fast"
	case CollectAll:
		return "collect-all"
	default:
		return "unknown"
	}
}

// Pipeline is an ordered sequence of gates plus an execution mode.
// A Pipeline is constructed once per invocation from a static definition.
type Pipeline struct {
	// Name identifies the pipeline (e.g. "ci", "quality-gates").
	Name string

	// Mode is the execution mode.
	Mode Mode

	// Gates run in order; order is fixed and significant.
	Gates []Gate
}

// Report is the outcome of one pipeline run: an ordered sequence of gate
// results plus an overall success flag. A Report is produced fresh per run
// and discarded after reporting; nothing is persisted.
type Report struct {
	Pipeline   string   `json:"pipeline"`
	Mode       string   `json:"mode"`
	Results    []Result `json:"results"`
	Success    bool     `json:"success"`
	DurationMs int64    `json:"duration_ms"`
}

// Failed returns the results of gates that failed.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Run executes the pipeline's gates strictly sequentially, one attempt each,
// no retries. In fail-fast mode it stops and returns immediately on the
// first failed gate; in collect-all mode every gate runs exactly once and
// failures are aggregated.
//
// The returned Report always contains the results collected so far, even
// when an error is returned. The error is ErrPipelineFailed when any gate
// failed (ErrCommandTimeout when a fail-fast run stopped on a timed-out
// command), or the context error when the run was interrupted.
func (p *Pipeline) Run(ctx context.Context, rc *RunContext) (*Report, error) {
	log := zerolog.Ctx(ctx)
	report := &Report{
		Pipeline: p.Name,
		Mode:     p.Mode.String(),
		Results:  make([]Result, 0, len(p.Gates)),
	}
	startTime := rc.now()

	log.Info().
		Str("pipeline", p.Name).
		Str("mode", p.Mode.String()).
		Int("gates", len(p.Gates)).
		Str("work_dir", rc.WorkDir).
		Msg("starting pipeline")

	for _, g := range p.Gates {
		// Check for context cancellation between gates
		select {
		case <-ctx.Done():
			report.Success = false
			return p.finalize(report, rc, startTime), ctx.Err()
		default:
		}

		result := g.Run(ctx, rc)
		report.Results = append(report.Results, result)

		if result.Outcome == OutcomeFailed && p.Mode == FailFast {
			report.Success = false
			log.Error().
				Str("pipeline", p.Name).
				Str("gate", g.Name).
				Str("reason", result.Reason).
				Msg("pipeline failed, skipping remaining gates")
			sentinel := pipelineerrors.ErrPipelineFailed
			if result.Reason == ReasonTimeout {
				sentinel = pipelineerrors.ErrCommandTimeout
			}
			return p.finalize(report, rc, startTime),
				pipelineerrors.Wrapf(sentinel, "gate %s failed", g.Name)
		}
	}

	report.Success = len(report.Failed()) == 0
	p.finalize(report, rc, startTime)

	if !report.Success {
		failed := report.Failed()
		log.Error().
			Str("pipeline", p.Name).
			Int("failed_gates", len(failed)).
			Msg("pipeline failed")
		return report, pipelineerrors.Wrapf(pipelineerrors.ErrPipelineFailed, "%d gate(s) failed", len(failed))
	}

	log.Info().
		Str("pipeline", p.Name).
		Int64("duration_ms", report.DurationMs).
		Msg("pipeline completed successfully")
	return report, nil
}

// finalize stamps the report with its total duration.
func (p *Pipeline) finalize(report *Report, rc *RunContext, startTime time.Time) *Report {
	report.DurationMs = rc.now().Sub(startTime).Milliseconds()
	return report
}
