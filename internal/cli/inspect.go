package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/tagmerge/internal/plan"
)

// InspectResult is the JSON payload of the inspect command.
type InspectResult struct {
	ID      string       `json:"id"`
	Keys    []string     `json:"keys"`
	Policy  string       `json:"policy"`
	Summary plan.Summary `json:"summary"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <plan>",
		Short: "Validate a plan and summarize it",
		Long: `Validate a plan and summarize its entries and conflicts.

Examples:
  tagmerge inspect plan.json
  tagmerge inspect plan.json --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, opts *RootOptions, planPath string) error {
	f := opts.formatter(cmd)

	planText, err := readInput(cmd.InOrStdin(), planPath)
	if err != nil {
		return reportError(f, ErrCodeReadFailed, "failed to read plan", err)
	}

	p, err := plan.Decode(planText)
	if err != nil {
		return reportError(f, "", "invalid plan", err)
	}
	id := p.ID
	if id == "" {
		if id, err = plan.ComputeID(p); err != nil {
			return reportError(f, "", "invalid plan", err)
		}
	}

	result := InspectResult{
		ID:      id,
		Keys:    p.Keys,
		Policy:  string(p.EffectivePolicy()),
		Summary: p.Summarize(),
	}
	if opts.Format == "json" {
		return f.Success(result)
	}

	writeInspectText(cmd.OutOrStdout(), result, p.ConflictFields())
	return nil
}

func writeInspectText(w io.Writer, r InspectResult, fields []string) {
	fmt.Fprintf(w, "Plan %s\n", r.ID)
	fmt.Fprintf(w, "  keys:       %v\n", r.Keys)
	fmt.Fprintf(w, "  policy:     %s\n", r.Policy)
	fmt.Fprintf(w, "  entries:    %d\n", r.Summary.Entries)
	fmt.Fprintf(w, "  matched:    %d\n", r.Summary.Matched)
	fmt.Fprintf(w, "  left_only:  %d\n", r.Summary.LeftOnly)
	fmt.Fprintf(w, "  right_only: %d\n", r.Summary.RightOnly)
	fmt.Fprintf(w, "  conflicts:  %d\n", r.Summary.Conflicts)

	if len(fields) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conflicting fields:")
	width := len(slices.MaxFunc(fields, func(a, b string) int { return len(a) - len(b) }))
	for _, name := range fields {
		fmt.Fprintf(w, "  %-*s %d\n", width, name, r.Summary.ConflictsByField[name])
	}
}
