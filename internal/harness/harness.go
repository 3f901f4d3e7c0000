package harness

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/tagmerge/internal/builder"
	"github.com/roach88/tagmerge/internal/executor"
	"github.com/roach88/tagmerge/internal/ir"
	"github.com/roach88/tagmerge/internal/plan"
)

// DefaultParallelism bounds concurrent scenario runs in RunFiles.
const DefaultParallelism = 4

// Run builds and executes the scenario's plan and checks the expectation.
//
// A mismatch is reported through Result (Pass=false, Errors); the returned
// error is reserved for scenarios that cannot be evaluated, such as an
// expect document that is not JSON.
func Run(s *Scenario) (*Result, error) {
	result := NewResult()

	policy, err := plan.ParsePolicy(s.Policy)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	planText, err := builder.Build([]byte(s.Left), []byte(s.Right), s.Keys,
		builder.WithPolicy(policy),
		builder.WithKeyNormalization(s.NormalizeKeys),
	)
	if err == nil {
		result.Plan = planText
		result.Merged, err = executor.Execute(planText)
	}

	if s.ExpectError != "" {
		checkExpectedError(result, s.ExpectError, err)
		return result, nil
	}
	if err != nil {
		result.AddError(fmt.Sprintf("merge failed: %v", err))
		return result, nil
	}

	expected, err := ir.Decode([]byte(s.Expect))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: expect is not valid JSON: %w", s.Name, err)
	}
	actual, err := ir.Decode(result.Merged)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: merged output is not valid JSON: %w", s.Name, err)
	}
	if !ir.Equal(expected, actual) {
		want, _ := ir.Marshal(expected, "")
		got, _ := ir.Marshal(actual, "")
		result.AddError(fmt.Sprintf("merged document mismatch:\n  expected: %s\n  actual:   %s", want, got))
	}

	return result, nil
}

func checkExpectedError(result *Result, want string, err error) {
	if err == nil {
		result.AddError(fmt.Sprintf("expected error %s, but merge succeeded", want))
		return
	}
	if got := plan.KindOf(err); string(got) != want {
		result.AddError(fmt.Sprintf("expected error %s, got %v", want, err))
	}
}

// RunFiles loads and runs scenario files concurrently, at most limit at a
// time (DefaultParallelism if limit < 1). Outcomes are returned in path
// order regardless of completion order. Load and run failures are recorded
// per outcome; the returned error is non-nil only if ctx is cancelled.
func RunFiles(ctx context.Context, paths []string, limit int) ([]Outcome, error) {
	if limit < 1 {
		limit = DefaultParallelism
	}
	outcomes := make([]Outcome, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = runFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func runFile(path string) Outcome {
	out := Outcome{Path: path}
	s, err := LoadScenario(path)
	if err != nil {
		out.Err = err
		return out
	}
	out.Scenario = s
	out.Result, out.Err = Run(s)
	return out
}
