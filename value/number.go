package value

import (
	"cmp"
	"strconv"
)

// NumberTag records which of the three representations a Number was
// constructed with. Equality and comparisons coerce across tags — equality
// is defined by numeric value, not representation — but preserving the tag
// lets a round-tripping encoder print "3" instead of "3.0" for values that
// were read in as unsigned or signed integers.
type NumberTag uint8

const (
	Unsigned NumberTag = iota
	Signed
	FloatTag
)

// Number is a JSON number, retained internally as the most specific of
// Unsigned(uint64), Signed(int64) or Float(float64): an unsigned parse is
// attempted first, then signed, then float.
type Number struct {
	tag   NumberTag
	u     uint64
	i     int64
	f     float64
}

func (Number) value() {}

func (n Number) String() string {
	switch n.tag {
	case Unsigned:
		return strconv.FormatUint(n.u, 10)
	case Signed:
		return strconv.FormatInt(n.i, 10)
	default:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
}

func Uint(u uint64) Number { return Number{tag: Unsigned, u: u} }
func Int(i int64) Number {
	if i >= 0 {
		return Number{tag: Unsigned, u: uint64(i)}
	}
	return Number{tag: Signed, i: i}
}
func Float(f float64) Number { return Number{tag: FloatTag, f: f} }

// Tag reports which representation the number was constructed with.
func (n Number) Tag() NumberTag { return n.tag }

// Float64 coerces the number to a float64, losslessly for the Unsigned and
// Signed tags up to 2^53.
func (n Number) Float64() float64 {
	switch n.tag {
	case Unsigned:
		return float64(n.u)
	case Signed:
		return float64(n.i)
	default:
		return n.f
	}
}

// Int64 coerces the number to an int64, truncating a Float value.
func (n Number) Int64() int64 {
	switch n.tag {
	case Unsigned:
		return int64(n.u)
	case Signed:
		return n.i
	default:
		return int64(n.f)
	}
}

// IsInt reports whether the number has no fractional part, so callers that
// need an array index (e.g. `get`, `sub`) can reject floats like 1.5.
func (n Number) IsInt() bool {
	switch n.tag {
	case Unsigned, Signed:
		return true
	default:
		return n.f == float64(int64(n.f))
	}
}

// ParseNumberBytes parses a JSON number literal, preferring the most
// specific representation.
func ParseNumberBytes(b []byte) (Number, bool) {
	s := string(b)
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint(u), true
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Number{tag: Signed, i: i}, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f), true
	}
	return Number{}, false
}

// NumbersEqual compares two numbers by coerced value, so Unsigned(0),
// Signed(0) and Float(0.0) are equal.
func NumbersEqual(a, b Number) bool {
	if a.tag == b.tag {
		switch a.tag {
		case Unsigned:
			return a.u == b.u
		case Signed:
			return a.i == b.i
		default:
			return a.f == b.f
		}
	}
	return a.Float64() == b.Float64()
}

// CompareNumbers implements total ordering over Number by comparing the
// coerced float64 value, falling back to direct integer comparison for two
// non-float numbers so that values outside float64's exact integer range
// still order correctly.
func CompareNumbers(a, b Number) int {
	if a.tag != FloatTag && b.tag != FloatTag {
		// Signed only holds negative values (Int and ParseNumberBytes store
		// every non-negative integer as Unsigned).
		switch {
		case a.tag == Unsigned && b.tag == Unsigned:
			return cmp.Compare(a.u, b.u)
		case a.tag == Signed && b.tag == Signed:
			return cmp.Compare(a.i, b.i)
		case a.tag == Signed:
			return -1
		default:
			return 1
		}
	}
	af, bf := a.Float64(), b.Float64()
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}
