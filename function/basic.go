package function

import (
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

func init() {
	Default.Register(Def{
		Name: "get", Aliases: []string{"[]"}, Group: "basic",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Looks up B in A: a string key for an object, a non-negative integer index for an array.",
		Build: simple(runGet),
	})
	Default.Register(Def{
		Name: "|", Group: "basic",
		MinArgs: 1, MaxArgs: -1,
		Doc:   "Left-to-right pipe: evaluates each argument with the previous result as input.",
		Build: buildPipe,
	})
	for _, name := range []string{"size", "count", "length", "len"} {
		Default.Register(Def{
			Name: name, Group: "basic",
			MinArgs: 1, MaxArgs: 1,
			Doc:   "Element count of an array, object, or string; nothing otherwise.",
			Build: simple(runSize),
		})
	}
	Default.Register(Def{
		Name: "take", Aliases: []string{"take_first"}, Group: "basic",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "First N elements or characters of A, clamped to its length.",
		Build: simple(runTake),
	})
	Default.Register(Def{
		Name: "take_last", Group: "basic",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Last N elements or characters of A, clamped to its length.",
		Build: simple(runTakeLast),
	})
	Default.Register(Def{
		Name: "sub", Group: "basic",
		MinArgs: 3, MaxArgs: 3,
		Doc:   "Substring/subarray of A starting at start, up to length elements; empty if out of range.",
		Build: simple(runSub),
	})
	Default.Register(Def{
		Name: "default", Aliases: []string{"or_else"}, Group: "basic",
		MinArgs: 1, MaxArgs: -1,
		Doc:   "Evaluates its arguments left to right and returns the first that yields a value.",
		Build: buildDefault,
	})
	Default.Register(Def{
		Name: "?", Aliases: []string{"if"}, Group: "basic",
		MinArgs: 3, MaxArgs: 3,
		Doc:   "If C (which must be Boolean) then T else F.",
		Build: buildIf,
	})
	Default.Register(Def{
		Name: "stringify", Group: "basic",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Compact JSON text of A.",
		Build: simple(runStringify),
	})
}

func runGet(args []value.Value) (value.Value, bool) {
	a, key := args[0], args[1]
	switch container := a.(type) {
	case *value.Object:
		k, isStr := asString(key)
		if !isStr {
			return nil, false
		}
		return container.Get(k)
	case *value.Array:
		n, isNum := asNumber(key)
		if !isNum || !n.IsInt() || n.Int64() < 0 {
			return nil, false
		}
		i := int(n.Int64())
		if i >= container.Len() {
			return nil, false
		}
		return container.Items[i], true
	default:
		return nil, false
	}
}

func buildPipe(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		v, ok, err := ev(args[0], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		for _, step := range args[1:] {
			childCtx := ctx.WithInput(v)
			v, ok, err = ev(step, childCtx)
			if err != nil || !ok {
				return nil, false, err
			}
		}
		return v, true, nil
	}
}

func runSize(args []value.Value) (value.Value, bool) {
	switch x := args[0].(type) {
	case *value.Array:
		return ok(value.Uint(uint64(x.Len())))
	case *value.Object:
		return ok(value.Uint(uint64(x.Len())))
	case value.String:
		return ok(value.Uint(uint64(len([]rune(string(x))))))
	default:
		return nil, false
	}
}

func clampRange(start, length, total int) (int, int) {
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + length
	if end > total {
		end = total
	}
	if end < start {
		end = start
	}
	return start, end
}

func runTake(args []value.Value) (value.Value, bool) {
	n, isNum := asNumber(args[1])
	if !isNum || !n.IsInt() || n.Int64() < 0 {
		return nil, false
	}
	return takeRange(args[0], 0, int(n.Int64()))
}

func runTakeLast(args []value.Value) (value.Value, bool) {
	n, isNum := asNumber(args[1])
	if !isNum || !n.IsInt() || n.Int64() < 0 {
		return nil, false
	}
	count := int(n.Int64())
	switch x := args[0].(type) {
	case *value.Array:
		start := x.Len() - count
		if start < 0 {
			start = 0
		}
		return takeRange(args[0], start, x.Len()-start)
	case value.String:
		runes := []rune(string(x))
		start := len(runes) - count
		if start < 0 {
			start = 0
		}
		return takeRange(args[0], start, len(runes)-start)
	default:
		return nil, false
	}
}

func takeRange(v value.Value, start, length int) (value.Value, bool) {
	switch x := v.(type) {
	case *value.Array:
		s, e := clampRange(start, length, x.Len())
		return ok(value.NewArray(x.Items[s:e]...))
	case value.String:
		runes := []rune(string(x))
		s, e := clampRange(start, length, len(runes))
		return ok(value.String(string(runes[s:e])))
	default:
		return nil, false
	}
}

func runSub(args []value.Value) (value.Value, bool) {
	startN, isStart := asNumber(args[1])
	lenN, isLen := asNumber(args[2])
	if !isStart || !isLen || !startN.IsInt() || !lenN.IsInt() {
		return nil, false
	}
	start, length := int(startN.Int64()), int(lenN.Int64())
	if start < 0 || length < 0 {
		return nil, false
	}
	switch x := args[0].(type) {
	case *value.Array:
		return takeRange(x, start, length)
	case value.String:
		return takeRange(x, start, length)
	case *value.Object:
		keys := x.Keys()
		s, e := clampRange(start, length, len(keys))
		out := value.NewObject()
		for _, k := range keys[s:e] {
			v, _ := x.Get(k)
			out.Set(k, v)
		}
		return ok(out)
	default:
		return nil, false
	}
}

func buildDefault(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		for _, a := range args {
			v, ok, err := ev(a, ctx)
			if err != nil {
				return nil, false, err
			}
			if ok {
				return v, true, nil
			}
		}
		return nil, false, nil
	}
}

func buildIf(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		c, ok, err := ev(args[0], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		b, isBool := asBool(c)
		if !isBool {
			return nil, false, nil
		}
		if b {
			return ev(args[1], ctx)
		}
		return ev(args[2], ctx)
	}
}

func runStringify(args []value.Value) (value.Value, bool) {
	return ok(value.String(stringifyValue(args[0])))
}
