package ir

import (
	"bytes"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// CanonicalOptions controls canonical encoding.
type CanonicalOptions struct {
	// NormalizeStrings applies Unicode NFC normalization to string values and
	// object keys, so canonically equivalent strings encode identically.
	NormalizeStrings bool
}

// MarshalCanonical produces RFC 8785-style canonical JSON.
//
// Differences from Marshal:
//  1. Object keys sorted by UTF-16 code units (not insertion order)
//  2. Numbers written in normalized exact form: 1, 1.0 and 1e0 all encode as 1
//  3. No HTML escaping, no U+2028/U+2029 escaping
//
// Two values encode identically if and only if Equal reports them equal
// (modulo NFC when NormalizeStrings is set).
func MarshalCanonical(v Value, opts CanonicalOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v Value, opts CanonicalOptions) error {
	switch val := v.(type) {
	case Null:
		buf.WriteString("null")
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		s, err := canonicalNumber(val)
		if err != nil {
			return err
		}
		buf.WriteString(s)
	case String:
		return writeCanonicalString(buf, string(val), opts)
	case Array:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem, opts); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case *Object:
		return writeCanonicalObject(buf, val, opts)
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

func writeCanonicalObject(buf *bytes.Buffer, obj *Object, opts CanonicalOptions) error {
	// Normalize keys first so that NFC-equivalent keys collapse before sorting.
	members := obj
	if opts.NormalizeStrings {
		members = NewObject()
		for _, k := range obj.keys {
			members.Set(norm.NFC.String(k), obj.vals[k])
		}
	}

	buf.WriteByte('{')
	for i, k := range members.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(buf, k, opts); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		buf.WriteByte(':')
		if err := writeCanonical(buf, members.vals[k], opts); err != nil {
			return fmt.Errorf("value for key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeCanonicalString(buf *bytes.Buffer, s string, opts CanonicalOptions) error {
	if opts.NormalizeStrings {
		s = norm.NFC.String(s)
	}
	start := buf.Len()
	if err := writeString(buf, s); err != nil {
		return err
	}
	// RFC 8785: U+2028 and U+2029 are not escaped. The encoder escapes them
	// for JavaScript, so restore them. An escaped backslash is always written
	// as a pair, so a \u2028 sequence preceded by an even run of backslashes is a
	// real escape sequence.
	encoded := buf.Bytes()[start:]
	if !bytes.Contains(encoded, []byte(`\u202`)) {
		return nil
	}
	restored := unescapeLineSeparators(encoded)
	buf.Truncate(start)
	buf.Write(restored)
	return nil
}

func unescapeLineSeparators(data []byte) []byte {
	out := make([]byte, 0, len(data))
	backslashes := 0
	for i := 0; i < len(data); i++ {
		if data[i] == '\\' && backslashes%2 == 0 && i+5 < len(data) &&
			string(data[i+1:i+5]) == "u202" && (data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			backslashes = 0
			continue
		}
		if data[i] == '\\' {
			backslashes++
		} else {
			backslashes = 0
		}
		out = append(out, data[i])
	}
	return out
}

// canonicalNumber renders a number literal in its normalized form, so
// numerically equal literals render identically.
func canonicalNumber(n Number) (string, error) {
	d, err := parseDecimal(n)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}
