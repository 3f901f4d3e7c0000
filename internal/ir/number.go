package ir

import (
	"fmt"
	"math/big"
	"strings"
)

// decimal is the normalized form of a JSON number: the value is
// (-1)^neg * digits * 10^exp. digits has no leading or trailing zeros; zero
// is the empty digit string with neg false and exp 0.
//
// Normalization works on the literal text in linear time, so exponents of
// any size are handled without materializing the value.
type decimal struct {
	neg    bool
	digits string
	exp    *big.Int
}

// parseDecimal normalizes a JSON number literal.
func parseDecimal(n Number) (decimal, error) {
	s := string(n)
	bad := func() (decimal, error) {
		return decimal{}, fmt.Errorf("invalid number literal %q", s)
	}

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	end := scanDigits(s, 0)
	intPart := s[:end]
	if intPart == "" || (len(intPart) > 1 && intPart[0] == '0') {
		return bad()
	}
	rest := s[end:]

	var fracPart string
	if strings.HasPrefix(rest, ".") {
		end = scanDigits(rest, 1)
		fracPart = rest[1:end]
		if fracPart == "" {
			return bad()
		}
		rest = rest[end:]
	}

	exp := new(big.Int)
	if rest != "" {
		if rest[0] != 'e' && rest[0] != 'E' {
			return bad()
		}
		body := rest[1:]
		negExp := strings.HasPrefix(body, "-")
		if negExp || strings.HasPrefix(body, "+") {
			body = body[1:]
		}
		if body == "" || scanDigits(body, 0) != len(body) {
			return bad()
		}
		if _, ok := exp.SetString(body, 10); !ok {
			return bad()
		}
		if negExp {
			exp.Neg(exp)
		}
	}

	digits := strings.TrimLeft(intPart+fracPart, "0")
	trimmed := strings.TrimRight(digits, "0")
	shift := int64(len(digits)-len(trimmed)) - int64(len(fracPart))
	exp.Add(exp, big.NewInt(shift))

	if trimmed == "" {
		return decimal{exp: new(big.Int)}, nil
	}
	return decimal{neg: neg, digits: trimmed, exp: exp}, nil
}

func scanDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func (d decimal) equal(o decimal) bool {
	return d.neg == o.neg && d.digits == o.digits && d.exp.Cmp(o.exp) == 0
}

// String renders d in the ECMAScript number form used by RFC 8785: plain
// notation when the decimal point falls within [-6, 21], exponent notation
// otherwise. Digits are never rounded.
func (d decimal) String() string {
	if d.digits == "" {
		return "0"
	}

	var b strings.Builder
	if d.neg {
		b.WriteByte('-')
	}

	k := int64(len(d.digits))
	// n is the position of the decimal point relative to the first digit.
	n := new(big.Int).Add(d.exp, big.NewInt(k))

	if n.IsInt64() {
		switch p := n.Int64(); {
		case k <= p && p <= 21:
			b.WriteString(d.digits)
			b.WriteString(strings.Repeat("0", int(p-k)))
			return b.String()
		case 0 < p && p <= 21:
			b.WriteString(d.digits[:p])
			b.WriteByte('.')
			b.WriteString(d.digits[p:])
			return b.String()
		case -6 < p && p <= 0:
			b.WriteString("0.")
			b.WriteString(strings.Repeat("0", int(-p)))
			b.WriteString(d.digits)
			return b.String()
		}
	}

	b.WriteByte(d.digits[0])
	if k > 1 {
		b.WriteByte('.')
		b.WriteString(d.digits[1:])
	}
	b.WriteByte('e')
	e := n.Sub(n, big.NewInt(1))
	if e.Sign() >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(e.String())
	return b.String()
}
