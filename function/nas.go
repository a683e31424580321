// Number-as-string arithmetic and comparison: the mirror of the ordinary
// arithmetic and compare functions, but operating on decimal strings via
// math/big.Rat so that values outside float64's exact range (large IDs,
// currency amounts) survive round trips losslessly.
package function

import (
	"math/big"

	"github.com/arnodel/jsel/value"
)

func init() {
	registerNASArith("nas_add", func(z, a, b *big.Rat) *big.Rat { return z.Add(a, b) })
	registerNASArith("nas_sub", func(z, a, b *big.Rat) *big.Rat { return z.Sub(a, b) })
	registerNASArith("nas_mul", func(z, a, b *big.Rat) *big.Rat { return z.Mul(a, b) })
	Default.Register(Def{
		Name: "nas_div", Group: "nas",
		MinArgs: 2, MaxArgs: 2,
		Doc: "Decimal-string division; nothing if either operand doesn't parse, or the divisor is zero.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			a, b, isNum := nasPair(args)
			if !isNum || b.Sign() == 0 {
				return nil, false
			}
			var z big.Rat
			z.Quo(a, b)
			return ok(value.String(z.RatString()))
		}),
	})
	for name, accept := range map[string]func(int) bool{
		"nas_eq": func(c int) bool { return c == 0 },
		"nas_ne": func(c int) bool { return c != 0 },
		"nas_lt": func(c int) bool { return c < 0 },
		"nas_le": func(c int) bool { return c <= 0 },
		"nas_gt": func(c int) bool { return c > 0 },
		"nas_ge": func(c int) bool { return c >= 0 },
	} {
		accept := accept
		Default.Register(Def{
			Name: name, Group: "nas",
			MinArgs: 2, MaxArgs: 2,
			Doc: "Decimal-string comparison of two arbitrary-precision numbers.",
			Build: simple(func(args []value.Value) (value.Value, bool) {
				a, b, isNum := nasPair(args)
				if !isNum {
					return nil, false
				}
				return ok(value.Bool(accept(a.Cmp(b))))
			}),
		})
	}
}

func nasRat(v value.Value) (*big.Rat, bool) {
	s, isStr := asString(v)
	if !isStr {
		return nil, false
	}
	r, ok := new(big.Rat).SetString(s)
	return r, ok
}

func nasPair(args []value.Value) (*big.Rat, *big.Rat, bool) {
	a, aok := nasRat(args[0])
	b, bok := nasRat(args[1])
	if !aok || !bok {
		return nil, nil, false
	}
	return a, b, true
}

func registerNASArith(name string, op func(z, a, b *big.Rat) *big.Rat) {
	Default.Register(Def{
		Name: name, Group: "nas",
		MinArgs: 2, MaxArgs: 2,
		Doc: "Decimal-string arithmetic on arbitrary-precision operands.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			a, b, isNum := nasPair(args)
			if !isNum {
				return nil, false
			}
			var z big.Rat
			op(&z, a, b)
			return ok(value.String(z.RatString()))
		}),
	})
}
