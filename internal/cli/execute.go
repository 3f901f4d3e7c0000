package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/roach88/tagmerge/internal/executor"
)

// ExecuteOptions holds flags for the execute command.
type ExecuteOptions struct {
	*RootOptions
	Output string
}

// NewExecuteCommand creates the execute command.
func NewExecuteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecuteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "execute <plan>",
		Short: "Apply a merge plan and print the merged document",
		Long: `Apply a merge plan and print the merged document.

Execution reads only the plan: the source documents are not needed. Use "-"
to read the plan from stdin.

Exit codes:
  0 - Merged document written
  1 - Plan rejected (MALFORMED_PLAN)
  2 - Command error (unreadable file, bad flags)

Examples:
  tagmerge execute plan.json
  tagmerge plan a.json b.json -k id | tagmerge execute -
  tagmerge execute plan.json -o merged.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the merged document to a file instead of stdout")

	return cmd
}

func runExecute(cmd *cobra.Command, opts *ExecuteOptions, planPath string) error {
	f := opts.formatter(cmd)

	planText, err := readInput(cmd.InOrStdin(), planPath)
	if err != nil {
		return reportError(f, ErrCodeReadFailed, "failed to read plan", err)
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

// emitMerged writes a merged document to path or stdout. In JSON format
// stdout output is wrapped in the standard response envelope.
func emitMerged(cmd *cobra.Command, f *OutputFormatter, path string, merged []byte) error {
	if f.Format == "json" && path == "" {
		return f.Success(json.RawMessage(merged))
	}
	if err := writeOutput(cmd.OutOrStdout(), path, merged); err != nil {
		return reportError(f, ErrCodeWriteFailed, "failed to write merged document", err)
	}
	if f.Format == "json" {
		return f.Success(map[string]string{"merged": path})
	}
	return nil
}
