package function

import (
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

func init() {
	registerCompare("=", func(c int) bool { return c == 0 })
	registerCompare("!=", func(c int) bool { return c != 0 }, "<>")
	registerCompare("<", func(c int) bool { return c < 0 })
	registerCompare("<=", func(c int) bool { return c <= 0 })
	registerCompare(">", func(c int) bool { return c > 0 })
	registerCompare(">=", func(c int) bool { return c >= 0 })

	Default.Register(Def{
		Name: "and", Aliases: []string{"&&"}, Group: "boolean",
		MinArgs: 2, MaxArgs: -1,
		Doc:   "Short-circuiting logical AND; nothing if any operand is non-Boolean.",
		Build: buildAndOr(true),
	})
	Default.Register(Def{
		Name: "or", Aliases: []string{"||"}, Group: "boolean",
		MinArgs: 2, MaxArgs: -1,
		Doc:   "Short-circuiting logical OR; nothing if any operand is non-Boolean.",
		Build: buildAndOr(false),
	})
	Default.Register(Def{
		Name: "xor", Aliases: []string{"^"}, Group: "boolean",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Exclusive OR of two Booleans.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			a, aok := asBool(args[0])
			b, bok := asBool(args[1])
			if !aok || !bok {
				return nil, false
			}
			return ok(value.Bool(a != b))
		}),
	})
	Default.Register(Def{
		Name: "not", Aliases: []string{"!"}, Group: "boolean",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Negates a Boolean.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			b, bok := asBool(args[0])
			if !bok {
				return nil, false
			}
			return ok(value.Bool(!b))
		}),
	})
}

func registerCompare(name string, accept func(int) bool, aliases ...string) {
	Default.Register(Def{
		Name: name, Aliases: aliases, Group: "boolean",
		MinArgs: 2, MaxArgs: 2,
		Doc: "Compares two values using the total Value ordering.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			return ok(value.Bool(accept(value.Compare(args[0], args[1]))))
		}),
	})
}

// buildAndOr implements short-circuiting AND/OR semantics: evaluation
// stops as soon as the result is determined, and any non-Boolean operand
// encountered along the way yields nothing.
func buildAndOr(isAnd bool) Builder {
	return func(args []parser.Expression) Callable {
		return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
			for _, a := range args {
				v, ok, err := ev(a, ctx)
				if err != nil || !ok {
					return nil, false, err
				}
				b, isBool := asBool(v)
				if !isBool {
					return nil, false, nil
				}
				if b != isAnd {
					return value.Bool(b), true, nil
				}
			}
			return value.Bool(isAnd), true, nil
		}
	}
}
