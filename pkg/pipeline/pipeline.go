// Package pipeline runs the publishing steps in order and records what
// happened. Steps run sequentially; once a step fails, later steps are
// skipped unless they are marked Always, which mirrors a CI job that is
// gated on the prior job completing rather than succeeding.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	clog "github.com/xrsl/blogx/pkg/log"
)

// Outcome is the terminal state of one step.
type Outcome string

const (
	Success Outcome = "success"
	Failure Outcome = "failure"
	Skipped Outcome = "skipped"
)

// Step is one unit of pipeline work.
type Step struct {
	Name string
	// Always runs the step even when an earlier step failed.
	Always bool
	// Skip, when set, is consulted before running; a non-empty reason
	// skips the step. A skipped step still counts as completed for gating.
	Skip func() (reason string, skip bool)
	Run  func(ctx context.Context) error
}

// StepResult records one step's outcome.
type StepResult struct {
	Name     string        `yaml:"name"`
	Outcome  Outcome       `yaml:"outcome"`
	Detail   string        `yaml:"detail,omitempty"`
	Duration time.Duration `yaml:"duration"`
}

// Report is the record of one pipeline run.
type Report struct {
	ID         string       `yaml:"id"`
	StartedAt  time.Time    `yaml:"started_at"`
	FinishedAt time.Time    `yaml:"finished_at"`
	Branch     string       `yaml:"branch,omitempty"`
	Event      string       `yaml:"event,omitempty"`
	Steps      []StepResult `yaml:"steps"`
	Failed     bool         `yaml:"failed"`
}

// Run executes the steps in order and returns the report.
func Run(ctx context.Context, branch, event string, steps []Step) Report {
	report := Report{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Branch:    branch,
		Event:     event,
	}

	failed := false
	for _, step := range steps {
		result := StepResult{Name: step.Name}

		switch {
		case ctx.Err() != nil:
			result.Outcome = Skipped
			result.Detail = "run cancelled"
		case failed && !step.Always:
			result.Outcome = Skipped
			result.Detail = "earlier step failed"
		default:
			if step.Skip != nil {
				if reason, skip := step.Skip(); skip {
					result.Outcome = Skipped
					result.Detail = reason
					break
				}
			}

			start := time.Now()
			err := step.Run(ctx)
			result.Duration = time.Since(start)

			if err != nil {
				result.Outcome = Failure
				result.Detail = err.Error()
				failed = true
				clog.Error("pipeline step failed", "step", step.Name, "error", err)
			} else {
				result.Outcome = Success
			}
		}

		report.Steps = append(report.Steps, result)
	}

	report.FinishedAt = time.Now()
	report.Failed = failed
	return report
}

// Result returns the recorded result for a step name, if present.
func (r Report) Result(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}
