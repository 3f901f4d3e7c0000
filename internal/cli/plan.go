package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/roach88/tagmerge/internal/builder"
	"github.com/roach88/tagmerge/internal/plan"
)

// PlanOptions holds flags shared by the plan and merge commands.
type PlanOptions struct {
	*RootOptions
	Keys          []string
	Policy        string
	NormalizeKeys bool
	Output        string
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plan <left> <right>",
		Short: "Build a merge plan for two JSON documents",
		Long: `Build a merge plan for two JSON documents.

Each document is an object or an array of objects. Records correspond when
all key fields are equal; a missing key field counts as null. Use "-" to
read one of the documents from stdin.

Exit codes:
  0 - Plan written
  1 - Input rejected (MALFORMED_INPUT, INVALID_SHAPE, INVALID_KEY_SET)
  2 - Command error (unreadable file, bad flags)

Examples:
  tagmerge plan left.json right.json --key id
  tagmerge plan left.json right.json -k tenant -k id -o plan.json
  tagmerge plan left.json right.json -k id --policy left_wins`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts, args[0], args[1])
		},
	}

	addPlanFlags(cmd, opts)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the plan to a file instead of stdout")

	return cmd
}

func addPlanFlags(cmd *cobra.Command, opts *PlanOptions) {
	cmd.Flags().StringArrayVarP(&opts.Keys, "key", "k", nil, "key field (repeatable, order is preserved)")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "conflict policy (right_wins|left_wins)")
	cmd.Flags().BoolVar(&opts.NormalizeKeys, "normalize-keys", false, "compare key strings after Unicode NFC normalization")
}

// builderOptions merges flags over config. Flags win when set explicitly.
func (o *PlanOptions) builderOptions(cmd *cobra.Command) ([]string, []builder.Option, error) {
	keys := o.Config.Keys
	if cmd.Flags().Changed("key") {
		keys = o.Keys
	}

	policyName := o.Config.Policy
	if cmd.Flags().Changed("policy") {
		policyName = o.Policy
	}
	policy, err := plan.ParsePolicy(policyName)
	if err != nil {
		return nil, nil, &plan.Error{Kind: plan.KindInvalidOption, Message: "invalid policy", Err: err}
	}

	normalize := o.Config.NormalizeKeys
	if cmd.Flags().Changed("normalize-keys") {
		normalize = o.NormalizeKeys
	}

	return keys, []builder.Option{
		builder.WithPolicy(policy),
		builder.WithKeyNormalization(normalize),
		builder.WithLogger(o.Logger),
	}, nil
}

func runPlan(cmd *cobra.Command, opts *PlanOptions, leftPath, rightPath string) error {
	f := opts.formatter(cmd)

	if leftPath == stdinName && rightPath == stdinName {
		return reportError(f, ErrCodeReadFailed, "invalid arguments", errBothStdin)
	}
	left, err := readInput(cmd.InOrStdin(), leftPath)
	if err != nil {
		return reportError(f, ErrCodeReadFailed, "failed to read left document", err)
	}
	right, err := readInput(cmd.InOrStdin(), rightPath)
	if err != nil {
		return reportError(f, ErrCodeReadFailed, "failed to read right document", err)
	}

	keys, bopts, err := opts.builderOptions(cmd)
	if err != nil {
		return reportError(f, "", "invalid options", err)
	}

	planText, err := builder.Build(left, right, keys, bopts...)
	if err != nil {
		return reportError(f, "", "failed to build plan", err)
	}
	f.VerboseLog("Built plan from %s and %s", leftPath, rightPath)

	if opts.Format == "json" && opts.Output == "" {
		return f.Success(json.RawMessage(planText))
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.Output, planText); err != nil {
		return reportError(f, ErrCodeWriteFailed, "failed to write plan", err)
	}
	if opts.Output != "" && opts.Format == "json" {
		return f.Success(map[string]string{"plan": opts.Output})
	}
	return nil
}
