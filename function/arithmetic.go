package function

import "github.com/arnodel/jsel/value"

func init() {
	registerArith("+", func(a, b float64) float64 { return a + b })
	registerArith("-", func(a, b float64) float64 { return a - b })
	registerArith("*", func(a, b float64) float64 { return a * b })
	Default.Register(Def{
		Name: "/", Group: "arithmetic",
		MinArgs: 2, MaxArgs: 2,
		Doc: "Division; nothing if either operand is non-numeric or the divisor is zero.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			a, b, bok := numericPair(args)
			if !bok || b == 0 {
				return nil, false
			}
			return ok(value.Float(a / b))
		}),
	})
	Default.Register(Def{
		Name: "%", Group: "arithmetic",
		MinArgs: 2, MaxArgs: 2,
		Doc: "Modulo; nothing if either operand is non-numeric or the divisor is zero.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			an, aok := asNumber(args[0])
			bn, bok := asNumber(args[1])
			if !aok || !bok || bn.Int64() == 0 && bn.Float64() == 0 {
				return nil, false
			}
			if an.IsInt() && bn.IsInt() && bn.Int64() != 0 {
				return ok(value.Int(an.Int64() % bn.Int64()))
			}
			a, b := an.Float64(), bn.Float64()
			if b == 0 {
				return nil, false
			}
			return ok(value.Float(mod(a, b)))
		}),
	})
}

func mod(a, b float64) float64 {
	m := a - b*float64(int64(a/b))
	return m
}

func numericPair(args []value.Value) (float64, float64, bool) {
	a, aok := asNumber(args[0])
	b, bok := asNumber(args[1])
	if !aok || !bok {
		return 0, 0, false
	}
	return a.Float64(), b.Float64(), true
}

func registerArith(name string, op func(a, b float64) float64) {
	Default.Register(Def{
		Name: name, Group: "arithmetic",
		MinArgs: 2, MaxArgs: 2,
		Doc: "Arithmetic operation over two numeric operands.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			an, aok := asNumber(args[0])
			bn, bok := asNumber(args[1])
			if !aok || !bok {
				return nil, false
			}
			if an.IsInt() && bn.IsInt() && an.Tag() != value.FloatTag && bn.Tag() != value.FloatTag {
				return ok(value.Int(int64(op(float64(an.Int64()), float64(bn.Int64())))))
			}
			return ok(value.Float(op(an.Float64(), bn.Float64())))
		}),
	})
}
