package pipeline

import (
	"context"
	"errors"
	"testing"
)

func TestRunAllSuccess(t *testing.T) {
	var order []string
	step := func(name string) Step {
		return Step{Name: name, Run: func(ctx context.Context) error {
			order = append(order, name)
			return nil
		}}
	}

	report := Run(context.Background(), "main", "push", []Step{
		step("lint"), step("build"), step("publish"),
	})

	if report.Failed {
		t.Error("report should not be failed")
	}
	if report.ID == "" {
		t.Error("report should have a run ID")
	}
	if len(order) != 3 {
		t.Errorf("expected 3 steps run, got %v", order)
	}
	for _, s := range report.Steps {
		if s.Outcome != Success {
			t.Errorf("step %s outcome = %s, want success", s.Name, s.Outcome)
		}
	}
}

func TestRunFailureSkipsLaterSteps(t *testing.T) {
	ran := map[string]bool{}
	report := Run(context.Background(), "main", "push", []Step{
		{Name: "lint", Run: func(ctx context.Context) error {
			ran["lint"] = true
			return errors.New("missing front matter")
		}},
		{Name: "build", Run: func(ctx context.Context) error {
			ran["build"] = true
			return nil
		}},
	})

	if !report.Failed {
		t.Error("report should be failed")
	}
	if ran["build"] {
		t.Error("build should not run after lint failed")
	}

	lint, _ := report.Result("lint")
	if lint.Outcome != Failure || lint.Detail != "missing front matter" {
		t.Errorf("unexpected lint result %+v", lint)
	}
	build, _ := report.Result("build")
	if build.Outcome != Skipped || build.Detail != "earlier step failed" {
		t.Errorf("unexpected build result %+v", build)
	}
}

func TestRunAlwaysStepRunsAfterFailure(t *testing.T) {
	ran := map[string]bool{}
	report := Run(context.Background(), "main", "push", []Step{
		{Name: "resume", Run: func(ctx context.Context) error {
			return errors.New("compile failed")
		}},
		{Name: "build", Always: true, Run: func(ctx context.Context) error {
			ran["build"] = true
			return nil
		}},
		{Name: "publish", Run: func(ctx context.Context) error {
			ran["publish"] = true
			return nil
		}},
	})

	if !ran["build"] {
		t.Error("Always step should run after a failure")
	}
	if ran["publish"] {
		t.Error("non-Always step should stay skipped after a failure")
	}
	build, _ := report.Result("build")
	if build.Outcome != Success {
		t.Errorf("build outcome = %s, want success", build.Outcome)
	}
}

func TestRunSkipFunc(t *testing.T) {
	ran := false
	report := Run(context.Background(), "feature", "push", []Step{
		{
			Name: "publish",
			Skip: func() (string, bool) { return "not on main", true },
			Run: func(ctx context.Context) error {
				ran = true
				return nil
			},
		},
		{Name: "after", Run: func(ctx context.Context) error { return nil }},
	})

	if ran {
		t.Error("skipped step should not run")
	}
	if report.Failed {
		t.Error("a skip is not a failure")
	}
	pub, _ := report.Result("publish")
	if pub.Outcome != Skipped || pub.Detail != "not on main" {
		t.Errorf("unexpected publish result %+v", pub)
	}
	after, _ := report.Result("after")
	if after.Outcome != Success {
		t.Errorf("step after a skip should still run, got %s", after.Outcome)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	report := Run(ctx, "main", "push", []Step{
		{Name: "build", Run: func(ctx context.Context) error {
			ran = true
			return nil
		}},
	})

	if ran {
		t.Error("no step should run on a cancelled context")
	}
	build, _ := report.Result("build")
	if build.Outcome != Skipped {
		t.Errorf("build outcome = %s, want skipped", build.Outcome)
	}
}

func TestResultMissing(t *testing.T) {
	report := Run(context.Background(), "", "", nil)
	if _, ok := report.Result("nope"); ok {
		t.Error("Result should report absence for unknown step")
	}
}
