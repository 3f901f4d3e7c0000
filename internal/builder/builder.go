package builder

import (
	"github.com/roach88/tagmerge/internal/ir"
	"github.com/roach88/tagmerge/internal/plan"
)

// Build computes the merge plan for two JSON documents and returns it as
// plan text.
func Build(left, right []byte, keys []string, opts ...Option) ([]byte, error) {
	p, err := BuildPlan(left, right, keys, opts...)
	if err != nil {
		return nil, err
	}
	return plan.Encode(p)
}

// BuildPlan computes the merge plan for two JSON documents.
//
// It fails with InvalidKeySet for an empty key set or empty key name,
// MalformedInput if either document is not JSON, and InvalidShape if either
// document is not an object or an array of objects. Inputs are not modified.
func BuildPlan(left, right []byte, keys []string, opts ...Option) (*plan.Plan, error) {
	o := newOptions(opts)

	keySet, err := normalizeKeySet(keys)
	if err != nil {
		return nil, err
	}
	policy, err := plan.ParsePolicy(string(o.Policy))
	if err != nil {
		return nil, &plan.Error{Kind: plan.KindInvalidOption, Message: "invalid policy", Err: err}
	}

	leftRecords, err := parseDocument(left, plan.SideLeft)
	if err != nil {
		return nil, err
	}
	rightRecords, err := parseDocument(right, plan.SideRight)
	if err != nil {
		return nil, err
	}

	canon := ir.CanonicalOptions{NormalizeStrings: o.NormalizeKeys}
	leftIdx, err := newRecordIndex(leftRecords, keySet, canon)
	if err != nil {
		return nil, plan.NewMalformedInputError(plan.SideLeft, err)
	}
	rightIdx, err := newRecordIndex(rightRecords, keySet, canon)
	if err != nil {
		return nil, plan.NewMalformedInputError(plan.SideRight, err)
	}

	p := &plan.Plan{
		Version: ir.PlanVersion,
		Keys:    keySet,
		Policy:  policy,
		Entries: correspond(leftIdx, rightIdx),
	}
	if p.ID, err = plan.ComputeID(p); err != nil {
		return nil, err
	}

	s := p.Summarize()
	o.Logger.Debug("plan built",
		"id", p.ID,
		"keys", keySet,
		"left_records", len(leftRecords),
		"right_records", len(rightRecords),
		"matched", s.Matched,
		"left_only", s.LeftOnly,
		"right_only", s.RightOnly,
		"conflicts", s.Conflicts,
	)
	return p, nil
}

// correspond pairs records across the two indexes. Keys are visited in left
// order, then right-only keys in right order. Within a key the i-th left and
// right records pair; leftovers follow as unmatched entries.
func correspond(left, right *recordIndex) []plan.Entry {
	entries := []plan.Entry{}

	for _, fp := range left.order {
		ls := left.groups[fp]
		rs := right.groups[fp]
		n := min(len(ls), len(rs))

		for i := 0; i < n; i++ {
			entries = append(entries, plan.Entry{
				Type:      plan.Matched,
				Left:      ls[i],
				Right:     rs[i],
				Conflicts: conflicts(ls[i], rs[i]),
			})
		}
		for _, rec := range ls[n:] {
			entries = append(entries, plan.Entry{Type: plan.LeftOnly, Left: rec, Conflicts: []string{}})
		}
		for _, rec := range rs[n:] {
			entries = append(entries, plan.Entry{Type: plan.RightOnly, Right: rec, Conflicts: []string{}})
		}
	}

	for _, fp := range right.order {
		if left.has(fp) {
			continue
		}
		for _, rec := range right.groups[fp] {
			entries = append(entries, plan.Entry{Type: plan.RightOnly, Right: rec, Conflicts: []string{}})
		}
	}

	return entries
}

// conflicts lists fields present in both records whose values differ, in
// left-record field order.
func conflicts(left, right *ir.Object) []string {
	fields := []string{}
	for _, k := range left.Keys() {
		rv, ok := right.Get(k)
		if !ok {
			continue
		}
		lv, _ := left.Get(k)
		if !ir.Equal(lv, rv) {
			fields = append(fields, k)
		}
	}
	return fields
}
