package function

import (
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

// evalAll evaluates every expression in args, left to right, stopping and
// returning (nil, false, nil) as soon as one yields nothing.
func evalAll(ev Evaluate, ctx Context, args []parser.Expression) ([]value.Value, bool, error) {
	out := make([]value.Value, 0, len(args))
	for _, a := range args {
		v, ok, err := ev(a, ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		out = append(out, v)
	}
	return out, true, nil
}

func asNumber(v value.Value) (value.Number, bool) {
	n, ok := v.(value.Number)
	return n, ok
}

func asString(v value.Value) (string, bool) {
	s, ok := v.(value.String)
	if !ok {
		return "", false
	}
	return string(s), true
}

func asBool(v value.Value) (bool, bool) {
	return value.AsBool(v)
}

func asArray(v value.Value) (*value.Array, bool) {
	a, ok := v.(*value.Array)
	return a, ok
}

func asObject(v value.Value) (*value.Object, bool) {
	o, ok := v.(*value.Object)
	return o, ok
}

func isNil(v value.Value) bool {
	_, ok := v.(value.Null)
	return ok
}

// simple registers a function whose Callable signature ignores laziness:
// all arguments are evaluated eagerly before run is invoked. Most
// functions in this library fit this shape; the handful that need lazy
// evaluation (if, and, or, default, set, define, pipe) build their
// Callable directly.
func simple(run func(args []value.Value) (value.Value, bool)) Builder {
	return func(exprs []parser.Expression) Callable {
		return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
			vals, ok, err := evalAll(ev, ctx, exprs)
			if err != nil || !ok {
				return nil, false, err
			}
			v, ok := run(vals)
			return v, ok, nil
		}
	}
}

func ok(v value.Value) (value.Value, bool) { return v, true }

var nothing value.Value = nil
