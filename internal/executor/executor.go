// Package executor materializes merged documents from plans.
//
// Execution is a pure function of the plan: it reads no documents, clocks or
// other ambient state, and identical plan text always yields identical output.
package executor

import (
	"io"
	"log/slog"

	"github.com/roach88/tagmerge/internal/ir"
	"github.com/roach88/tagmerge/internal/plan"
)

// DefaultIndent is the per-level indentation of merged output.
const DefaultIndent = "  "

// Options configures execution.
type Options struct {
	// Indent is the per-level indentation of the output; empty means compact.
	Indent string

	// Logger receives debug diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithIndent sets output indentation. An empty string produces compact JSON.
func WithIndent(indent string) Option {
	return func(o *Options) { o.Indent = indent }
}

// WithLogger sets the logger for debug diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Execute decodes plan text and returns the merged document as JSON text.
// Malformed plans fail with a MalformedPlan error and produce no output.
func Execute(planText []byte, opts ...Option) ([]byte, error) {
	o := Options{Indent: DefaultIndent}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p, err := plan.Decode(planText)
	if err != nil {
		return nil, err
	}

	merged, err := Materialize(p)
	if err != nil {
		return nil, err
	}

	out, err := ir.Marshal(merged, o.Indent)
	if err != nil {
		return nil, plan.NewMalformedPlanError(err, "cannot encode merged document")
	}

	o.Logger.Debug("plan executed", "id", p.ID, "entries", len(p.Entries), "records", len(merged))
	return out, nil
}

// Materialize applies a plan, producing one record per entry in entry order.
// The plan is validated first. Records embedded in the plan are not modified;
// unmatched records are passed through as-is.
func Materialize(p *plan.Plan) (ir.Array, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	policy := p.EffectivePolicy()
	merged := make(ir.Array, 0, len(p.Entries))
	for _, e := range p.Entries {
		switch e.Type {
		case plan.Matched:
			merged = append(merged, mergeRecords(e.Left, e.Right, policy))
		case plan.LeftOnly:
			merged = append(merged, e.Left)
		case plan.RightOnly:
			merged = append(merged, e.Right)
		}
	}
	return merged, nil
}

// mergeRecords unions the fields of a matched pair: left fields in left
// order, then right-only fields in right order. Differing shared fields go
// through the policy; equal ones keep the left value.
func mergeRecords(left, right *ir.Object, policy plan.Policy) *ir.Object {
	out := ir.NewObject()
	for _, k := range left.Keys() {
		lv, _ := left.Get(k)
		if rv, ok := right.Get(k); ok && !ir.Equal(lv, rv) {
			out.Set(k, policy.Resolve(lv, rv))
			continue
		}
		out.Set(k, lv)
	}
	for _, k := range right.Keys() {
		if !left.Has(k) {
			rv, _ := right.Get(k)
			out.Set(k, rv)
		}
	}
	return out
}
