package ir

// Equal reports whether a and b are structurally equal JSON values.
//
// Objects compare member-order-insensitively, arrays element by element.
// Numbers compare by exact value, so 1, 1.0 and 1e0 are equal; strings compare
// byte for byte. Values of different JSON types are never equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && numbersEqual(av, bv)
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, ok := bv.vals[k]
			if !ok || !Equal(av.vals[k], other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numbersEqual(a, b Number) bool {
	if a == b {
		return true
	}
	ad, err := parseDecimal(a)
	if err != nil {
		return false
	}
	bd, err := parseDecimal(b)
	if err != nil {
		return false
	}
	return ad.equal(bd)
}
