package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/tagmerge/internal/builder"
	"github.com/roach88/tagmerge/internal/executor"
)

// MergeOptions holds flags for the merge command.
type MergeOptions struct {
	PlanOptions
	PlanOutput string
}

// NewMergeCommand creates the merge command.
func NewMergeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MergeOptions{PlanOptions: PlanOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "merge <left> <right>",
		Short: "Plan and execute a merge in one step",
		Long: `Plan and execute a merge in one step.

Equivalent to "tagmerge plan" followed by "tagmerge execute". The plan can
be kept for review with --plan-output.

Examples:
  tagmerge merge left.json right.json -k id
  tagmerge merge left.json right.json -k id --plan-output plan.json -o merged.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, opts, args[0], args[1])
		},
	}

	addPlanFlags(cmd, &opts.PlanOptions)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the merged document to a file instead of stdout")
	cmd.Flags().StringVar(&opts.PlanOutput, "plan-output", "", "also write the plan to this file")

	return cmd
}

func runMerge(cmd *cobra.Command, opts *MergeOptions, leftPath, rightPath string) error {
	f := opts.formatter(cmd)

	if leftPath == stdinName && rightPath == stdinName {
		return reportError(f, ErrCodeReadFailed, "invalid arguments", errBothStdin)
	}

	var left, right []byte
	var g errgroup.Group
	g.Go(func() error {
		var err error
		if left, err = readInput(cmd.InOrStdin(), leftPath); err != nil {
			return fmt.Errorf("left document: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if right, err = readInput(cmd.InOrStdin(), rightPath); err != nil {
			return fmt.Errorf("right document: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return reportError(f, ErrCodeReadFailed, "failed to read input", err)
	}

	keys, bopts, err := opts.builderOptions(cmd)
	if err != nil {
		return reportError(f, "", "invalid options", err)
	}

	planText, err := builder.Build(left, right, keys, bopts...)
	if err != nil {
		return reportError(f, "", "failed to build plan", err)
	}
	if opts.PlanOutput != "" {
		if err := writeOutput(cmd.OutOrStdout(), opts.PlanOutput, planText); err != nil {
			return reportError(f, ErrCodeWriteFailed, "failed to write plan", err)
		}
		f.VerboseLog("Wrote plan to %s", opts.PlanOutput)
	}

	merged, err := executor.Execute(planText,
		executor.WithIndent(opts.Config.IndentString()),
		executor.WithLogger(opts.Logger),
	)
	if err != nil {
		return reportError(f, "", "failed to execute plan", err)
	}

	return emitMerged(cmd, f, opts.Output, merged)
}
