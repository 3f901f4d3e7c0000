package plan

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/tagmerge/internal/ir"
)

// Indent is the per-level indentation of encoded plan text.
const Indent = "  "

// idNamespace is the UUIDv5 namespace for plan IDs.
// The version suffix enables future algorithm migration.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("tagmerge/plan/v1"))

// EffectivePolicy returns the plan's policy, or DefaultPolicy if unset.
func (p *Plan) EffectivePolicy() Policy {
	if p.Policy == "" {
		return DefaultPolicy
	}
	return p.Policy
}

// ComputeID derives the plan ID from its keys, policy and entries.
// The ID is a UUIDv5 over the compact encoding of that content, so identical
// plans always carry identical IDs. Version and any existing ID are excluded.
func ComputeID(p *Plan) (string, error) {
	content := ir.ObjectOf(
		ir.O("keys", stringArray(p.Keys)),
		ir.O("policy", ir.String(p.EffectivePolicy())),
		ir.O("entries", entriesValue(p.Entries)),
	)
	data, err := ir.Marshal(content, "")
	if err != nil {
		return "", fmt.Errorf("ComputeID: failed to marshal: %w", err)
	}
	return uuid.NewSHA1(idNamespace, data).String(), nil
}

// Encode renders a plan as text. The plan is validated first, and the
// written ID is always recomputed from content.
func Encode(p *Plan) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	id, err := ComputeID(p)
	if err != nil {
		return nil, err
	}

	root := ir.ObjectOf(
		ir.O("version", ir.String(ir.PlanVersion)),
		ir.O("id", ir.String(id)),
		ir.O("keys", stringArray(p.Keys)),
		ir.O("policy", ir.String(p.EffectivePolicy())),
		ir.O("entries", entriesValue(p.Entries)),
	)
	data, err := ir.Marshal(root, Indent)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return data, nil
}

// Decode parses and validates plan text. Any failure is a MalformedPlan
// error.
func Decode(data []byte) (*Plan, error) {
	root, err := ir.Decode(data)
	if err != nil {
		return nil, NewMalformedPlanError(err, "plan is not valid JSON")
	}

	if err := validateShape(root); err != nil {
		return nil, NewMalformedPlanError(err, "plan does not match schema")
	}

	p, err := fromValue(root)
	if err != nil {
		return nil, NewMalformedPlanError(err, "plan structure is invalid")
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.ID != "" {
		want, err := ComputeID(p)
		if err != nil {
			return nil, NewMalformedPlanError(err, "cannot compute plan id")
		}
		if want != p.ID {
			return nil, NewMalformedPlanError(nil, "plan id %q does not match content (expected %q)", p.ID, want)
		}
	}

	return p, nil
}

func stringArray(ss []string) ir.Array {
	arr := make(ir.Array, len(ss))
	for i, s := range ss {
		arr[i] = ir.String(s)
	}
	return arr
}

func entriesValue(entries []Entry) ir.Array {
	arr := make(ir.Array, len(entries))
	for i, e := range entries {
		arr[i] = ir.ObjectOf(
			ir.O("type", ir.String(e.Type)),
			ir.O("left", recordValue(e.Left)),
			ir.O("right", recordValue(e.Right)),
			ir.O("conflicts", stringArray(e.Conflicts)),
		)
	}
	return arr
}

func recordValue(rec *ir.Object) ir.Value {
	if rec == nil {
		return ir.Null{}
	}
	return rec
}

// fromValue converts a decoded JSON value into a Plan.
// Required members are "keys" and "entries".
func fromValue(root ir.Value) (*Plan, error) {
	obj, ok := root.(*ir.Object)
	if !ok {
		return nil, fmt.Errorf("plan must be an object, got %s", ir.TypeName(root))
	}

	p := &Plan{}
	var err error

	if p.Version, err = optionalString(obj, "version"); err != nil {
		return nil, err
	}
	if p.ID, err = optionalString(obj, "id"); err != nil {
		return nil, err
	}
	policy, err := optionalString(obj, "policy")
	if err != nil {
		return nil, err
	}
	p.Policy = Policy(policy)

	keysVal, ok := obj.Get("keys")
	if !ok {
		return nil, fmt.Errorf("missing required field %q", "keys")
	}
	if p.Keys, err = stringList(keysVal, "keys"); err != nil {
		return nil, err
	}

	entriesVal, ok := obj.Get("entries")
	if !ok {
		return nil, fmt.Errorf("missing required field %q", "entries")
	}
	arr, ok := entriesVal.(ir.Array)
	if !ok {
		return nil, fmt.Errorf("entries must be an array, got %s", ir.TypeName(entriesVal))
	}
	p.Entries = make([]Entry, 0, len(arr))
	for i, ev := range arr {
		e, err := entryFromValue(ev)
		if err != nil {
			return nil, fmt.Errorf("entries[%d]: %w", i, err)
		}
		p.Entries = append(p.Entries, e)
	}

	return p, nil
}

func entryFromValue(v ir.Value) (Entry, error) {
	obj, ok := v.(*ir.Object)
	if !ok {
		return Entry{}, fmt.Errorf("entry must be an object, got %s", ir.TypeName(v))
	}

	typ, err := optionalString(obj, "type")
	if err != nil {
		return Entry{}, err
	}
	if !EntryType(typ).Valid() {
		return Entry{}, fmt.Errorf("unknown entry type %q", typ)
	}
	e := Entry{Type: EntryType(typ)}

	if e.Left, err = recordField(obj, "left"); err != nil {
		return Entry{}, err
	}
	if e.Right, err = recordField(obj, "right"); err != nil {
		return Entry{}, err
	}
	e.Conflicts = []string{}
	if cv, ok := obj.Get("conflicts"); ok {
		if e.Conflicts, err = stringList(cv, "conflicts"); err != nil {
			return Entry{}, err
		}
	}
	return e, nil
}

func recordField(obj *ir.Object, name string) (*ir.Object, error) {
	v, ok := obj.Get(name)
	if !ok {
		return nil, nil
	}
	switch rec := v.(type) {
	case ir.Null:
		return nil, nil
	case *ir.Object:
		return rec, nil
	default:
		return nil, fmt.Errorf("%s must be an object or null, got %s", name, ir.TypeName(v))
	}
}

func optionalString(obj *ir.Object, name string) (string, error) {
	v, ok := obj.Get(name)
	if !ok {
		return "", nil
	}
	s, ok := v.(ir.String)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %s", name, ir.TypeName(v))
	}
	return string(s), nil
}

func stringList(v ir.Value, name string) ([]string, error) {
	arr, ok := v.(ir.Array)
	if !ok {
		return nil, fmt.Errorf("%s must be an array, got %s", name, ir.TypeName(v))
	}
	out := make([]string, len(arr))
	for i, elem := range arr {
		s, ok := elem.(ir.String)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string, got %s", name, i, ir.TypeName(elem))
		}
		out[i] = string(s)
	}
	return out, nil
}
