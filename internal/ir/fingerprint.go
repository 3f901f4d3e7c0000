package ir

import "fmt"

// Fingerprint returns a string identifying the composite key formed by vals.
// Two tuples have the same fingerprint exactly when they are element-wise
// structurally equal, so the result can be used as a map key.
func Fingerprint(vals []Value, opts CanonicalOptions) (string, error) {
	data, err := MarshalCanonical(Array(vals), opts)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return string(data), nil
}

// KeyTuple extracts the values of fields from record, in field order.
// A missing field contributes Null, so {"a":1} and {"a":1,"b":null} share a
// tuple over [a, b].
func KeyTuple(record *Object, fields []string) []Value {
	tuple := make([]Value, len(fields))
	for i, f := range fields {
		v, ok := record.Get(f)
		if !ok {
			v = Null{}
		}
		tuple[i] = v
	}
	return tuple
}
