package builder

import (
	"github.com/roach88/tagmerge/internal/ir"
)

// recordIndex groups one document's records by composite key.
// order lists each distinct fingerprint once, by first appearance; each
// group keeps records in encounter order.
type recordIndex struct {
	order  []string
	groups map[string][]*ir.Object
}

func newRecordIndex(records []*ir.Object, keys []string, opts ir.CanonicalOptions) (*recordIndex, error) {
	idx := &recordIndex{groups: make(map[string][]*ir.Object)}
	for _, rec := range records {
		fp, err := ir.Fingerprint(ir.KeyTuple(rec, keys), opts)
		if err != nil {
			return nil, err
		}
		if _, seen := idx.groups[fp]; !seen {
			idx.order = append(idx.order, fp)
		}
		idx.groups[fp] = append(idx.groups[fp], rec)
	}
	return idx, nil
}

func (idx *recordIndex) has(fp string) bool {
	_, ok := idx.groups[fp]
	return ok
}
