package plan

import (
	"fmt"
	"slices"

	"github.com/roach88/tagmerge/internal/ir"
)

// EntryType tags a correspondence entry.
type EntryType string

const (
	// Matched pairs a left record with a right record sharing its key.
	Matched EntryType = "matched"

	// LeftOnly carries a left record with no right counterpart.
	LeftOnly EntryType = "left_only"

	// RightOnly carries a right record with no left counterpart.
	RightOnly EntryType = "right_only"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	switch t {
	case Matched, LeftOnly, RightOnly:
		return true
	}
	return false
}

// Entry is one correspondence entry. Left and Right are record snapshots;
// the side an entry type does not carry is nil.
type Entry struct {
	Type      EntryType
	Left      *ir.Object
	Right     *ir.Object
	Conflicts []string // field names, in merged field order
}

// Plan is the complete input to execution.
// A Plan is immutable once built; callers must not modify the records it
// embeds.
type Plan struct {
	Version string
	ID      string // content-derived, see ComputeID
	Keys    []string
	Policy  Policy
	Entries []Entry
}

// Validate checks the semantic rules every plan must satisfy.
// It returns a MalformedPlan error describing the first violation.
func (p *Plan) Validate() error {
	if p.Version != "" && p.Version != ir.PlanVersion {
		return NewMalformedPlanError(nil, "unsupported plan version %q", p.Version)
	}
	if len(p.Keys) == 0 {
		return NewMalformedPlanError(nil, "key set is empty")
	}
	for i, k := range p.Keys {
		if k == "" {
			return NewMalformedPlanError(nil, "keys[%d] is empty", i)
		}
	}
	if _, err := ParsePolicy(string(p.Policy)); err != nil {
		return NewMalformedPlanError(err, "invalid policy")
	}
	for i, e := range p.Entries {
		if err := validateEntry(e); err != nil {
			return NewMalformedPlanError(nil, "entries[%d]: %s", i, err)
		}
	}
	return nil
}

func validateEntry(e Entry) error {
	switch e.Type {
	case Matched:
		if e.Left == nil || e.Right == nil {
			return fmt.Errorf("matched entry requires both left and right records")
		}
		for _, f := range e.Conflicts {
			if !e.Left.Has(f) || !e.Right.Has(f) {
				return fmt.Errorf("conflict field %q is not present in both records", f)
			}
		}
	case LeftOnly:
		if e.Left == nil || e.Right != nil {
			return fmt.Errorf("left_only entry requires a left record and no right record")
		}
	case RightOnly:
		if e.Right == nil || e.Left != nil {
			return fmt.Errorf("right_only entry requires a right record and no left record")
		}
	default:
		return fmt.Errorf("unknown entry type %q", e.Type)
	}
	if e.Type != Matched && len(e.Conflicts) > 0 {
		return fmt.Errorf("%s entry cannot record conflicts", e.Type)
	}
	return nil
}

// Summary counts plan entries by type.
type Summary struct {
	Entries          int            `json:"entries"`
	Matched          int            `json:"matched"`
	LeftOnly         int            `json:"left_only"`
	RightOnly        int            `json:"right_only"`
	Conflicts        int            `json:"conflicts"`
	ConflictsByField map[string]int `json:"conflicts_by_field"`
}

// Summarize computes a Summary of the plan.
func (p *Plan) Summarize() Summary {
	s := Summary{
		Entries:          len(p.Entries),
		ConflictsByField: make(map[string]int),
	}
	for _, e := range p.Entries {
		switch e.Type {
		case Matched:
			s.Matched++
		case LeftOnly:
			s.LeftOnly++
		case RightOnly:
			s.RightOnly++
		}
		s.Conflicts += len(e.Conflicts)
		for _, f := range e.Conflicts {
			s.ConflictsByField[f]++
		}
	}
	return s
}

// ConflictFields returns the distinct conflicting field names in the order
// they first appear in the plan.
func (p *Plan) ConflictFields() []string {
	var fields []string
	for _, e := range p.Entries {
		for _, f := range e.Conflicts {
			if !slices.Contains(fields, f) {
				fields = append(fields, f)
			}
		}
	}
	return fields
}
