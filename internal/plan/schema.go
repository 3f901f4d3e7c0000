package plan

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/roach88/tagmerge/internal/ir"
)

//go:embed schema.cue
var schemaSource string

// compiledSchema is the #Plan definition bound to its own CUE context.
// CUE contexts are not safe for concurrent use, so each one is held by a
// single caller at a time through schemaPool.
type compiledSchema struct {
	ctx *cue.Context
	def cue.Value
}

var schemaPool = sync.Pool{
	New: func() any {
		s, err := compileSchema()
		if err != nil {
			return err
		}
		return s
	},
}

func compileSchema() (*compiledSchema, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile plan schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Plan"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("lookup #Plan: %w", err)
	}
	return &compiledSchema{ctx: ctx, def: def}, nil
}

// validateShape checks a decoded plan against the #Plan definition in
// schema.cue. Only the plan skeleton is validated: record bodies and unknown
// members are opaque to the schema.
func validateShape(root ir.Value) error {
	data, err := ir.Marshal(skeleton(root), "")
	if err != nil {
		return fmt.Errorf("encode plan skeleton: %w", err)
	}

	got := schemaPool.Get()
	s, ok := got.(*compiledSchema)
	if !ok {
		return got.(error)
	}
	defer schemaPool.Put(s)

	expr, err := cuejson.Extract("plan.json", data)
	if err != nil {
		return fmt.Errorf("extract plan: %w", err)
	}
	doc := s.ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("build plan: %w", err)
	}

	if err := s.def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return errors.New(cueerrors.Details(err, nil))
	}
	return nil
}

// skeleton projects a plan onto the members the schema constrains. Records
// become empty objects; values of the wrong type are kept so the schema
// reports them.
func skeleton(root ir.Value) ir.Value {
	obj, ok := root.(*ir.Object)
	if !ok {
		return root
	}
	out := ir.NewObject()
	for _, k := range []string{"version", "id", "keys", "policy", "entries"} {
		v, ok := obj.Get(k)
		if !ok {
			continue
		}
		if k == "entries" {
			v = entriesSkeleton(v)
		}
		out.Set(k, v)
	}
	return out
}

func entriesSkeleton(v ir.Value) ir.Value {
	arr, ok := v.(ir.Array)
	if !ok {
		return v
	}
	out := make(ir.Array, len(arr))
	for i, ev := range arr {
		entry, ok := ev.(*ir.Object)
		if !ok {
			out[i] = ev
			continue
		}
		e := ir.NewObject()
		for _, k := range []string{"type", "left", "right", "conflicts"} {
			fv, ok := entry.Get(k)
			if !ok {
				continue
			}
			if _, isRecord := fv.(*ir.Object); isRecord {
				fv = ir.NewObject()
			}
			e.Set(k, fv)
		}
		out[i] = e
	}
	return out
}
