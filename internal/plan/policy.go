package plan

import (
	"fmt"

	"github.com/roach88/tagmerge/internal/ir"
)

// Policy names the conflict resolution rule recorded in a plan.
type Policy string

const (
	// RightWins keeps the right document's value for a conflicting field.
	RightWins Policy = "right_wins"

	// LeftWins keeps the left document's value for a conflicting field.
	LeftWins Policy = "left_wins"

	// DefaultPolicy is used when a plan does not name one.
	DefaultPolicy = RightWins
)

// ParsePolicy returns the Policy named by s. The empty string selects
// DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return DefaultPolicy, nil
	case RightWins, LeftWins:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown policy %q: must be %q or %q", s, RightWins, LeftWins)
	}
}

// Resolve returns the value a merged record keeps for a field whose left
// and right values conflict. Resolution depends only on document side,
// never on time or record content.
func (p Policy) Resolve(left, right ir.Value) ir.Value {
	if p == LeftWins {
		return left
	}
	return right
}
