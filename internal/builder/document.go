package builder

import (
	"slices"

	"github.com/roach88/tagmerge/internal/ir"
	"github.com/roach88/tagmerge/internal/plan"
)

// parseDocument decodes one input document into its records.
// A top-level object is a one-element document; a top-level array must hold
// only objects. Any other shape is an InvalidShape error.
func parseDocument(data []byte, side plan.Side) ([]*ir.Object, error) {
	root, err := ir.Decode(data)
	if err != nil {
		return nil, plan.NewMalformedInputError(side, err)
	}

	switch v := root.(type) {
	case *ir.Object:
		return []*ir.Object{v}, nil
	case ir.Array:
		records := make([]*ir.Object, len(v))
		for i, elem := range v {
			rec, ok := elem.(*ir.Object)
			if !ok {
				return nil, plan.NewInvalidShapeError(side, "element %d is %s, expected object", i, ir.TypeName(elem))
			}
			records[i] = rec
		}
		return records, nil
	default:
		return nil, plan.NewInvalidShapeError(side, "top-level value is %s, expected object or array of objects", ir.TypeName(root))
	}
}

// normalizeKeySet validates the key set and drops repeated names, keeping
// the first occurrence. Repeating a name does not change any composite key.
func normalizeKeySet(keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, plan.NewInvalidKeySetError("at least one key is required")
	}
	out := make([]string, 0, len(keys))
	for i, k := range keys {
		if k == "" {
			return nil, plan.NewInvalidKeySetError("key %d is empty", i)
		}
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out, nil
}
