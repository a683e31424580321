package function

import (
	"encoding/base64"
	"os"
	"strings"

	"github.com/arnodel/jsel/jsonvalue"
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

func init() {
	Default.Register(Def{
		Name: "parse", Group: "string",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Parses a string as a single JSON value.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			s, isStr := asString(args[0])
			if !isStr {
				return nil, false
			}
			v, _, err := jsonvalue.NewDecoder(strings.NewReader(s), "<parse>", 0).ReadValue()
			if err != nil {
				return nil, false
			}
			return ok(v)
		}),
	})
	Default.Register(Def{
		Name: "parse_selection", Group: "string",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Parses a string as a selection expression and evaluates it against the current input.",
		Build: buildParseSelection,
	})
	Default.Register(Def{
		Name: "env", Group: "string",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Value of environment variable NAME; nothing if unset.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			name, isStr := asString(args[0])
			if !isStr {
				return nil, false
			}
			v, found := os.LookupEnv(name)
			if !found {
				return nil, false
			}
			return ok(value.String(v))
		}),
	})
	Default.Register(Def{
		Name: "concat", Group: "string",
		MinArgs: 1, MaxArgs: -1,
		Doc:   "Concatenates one or more strings.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			var b strings.Builder
			for _, a := range args {
				s, isStr := asString(a)
				if !isStr {
					return nil, false
				}
				b.WriteString(s)
			}
			return ok(value.String(b.String()))
		}),
	})
	Default.Register(Def{
		Name: "split", Group: "string",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Splits S on sep into an array of strings.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			s, isStr := asString(args[0])
			sep, isSep := asString(args[1])
			if !isStr || !isSep {
				return nil, false
			}
			parts := strings.Split(s, sep)
			out := make([]value.Value, len(parts))
			for i, p := range parts {
				out[i] = value.String(p)
			}
			return ok(value.NewArray(out...))
		}),
	})
	Default.Register(Def{
		Name: "head", Group: "string",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "First N characters of S, clamped.",
		Build: simple(runTake),
	})
	Default.Register(Def{
		Name: "tail", Group: "string",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Last N characters of S, clamped.",
		Build: simple(runTakeLast),
	})
	Default.Register(Def{
		Name: "base64", Group: "string",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Decodes a base64 string to UTF-8 text; nothing if invalid.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			s, isStr := asString(args[0])
			if !isStr {
				return nil, false
			}
			decoded, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, false
			}
			return ok(value.String(string(decoded)))
		}),
	})
	Default.Register(Def{
		Name: "match", Group: "string",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "True if S matches the regular expression RE.",
		Build: buildRegexFunc(func(s string, m []string) (value.Value, bool) {
			return value.Bool(m != nil), true
		}),
	})
	Default.Register(Def{
		Name: "extract_regex_group", Group: "string",
		MinArgs: 3, MaxArgs: 3,
		Doc:   "The Nth capture group of RE matched against S; nothing if no match.",
		Build: buildExtractRegexGroup,
	})
}

func buildParseSelection(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		v, ok, err := ev(args[0], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		s, isStr := asString(v)
		if !isStr {
			return nil, false, nil
		}
		expr, err := parser.ParseExpression(s)
		if err != nil {
			return nil, false, nil
		}
		return ev(expr, ctx)
	}
}

func buildRegexFunc(result func(s string, m []string) (value.Value, bool)) Builder {
	return func(args []parser.Expression) Callable {
		return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
			sv, ok, err := ev(args[0], ctx)
			if err != nil || !ok {
				return nil, false, err
			}
			rv, ok, err := ev(args[1], ctx)
			if err != nil || !ok {
				return nil, false, err
			}
			s, isStr := asString(sv)
			pattern, isPattern := asString(rv)
			if !isStr || !isPattern {
				return nil, false, nil
			}
			re, err := ctx.CompileRegex(pattern)
			if err != nil {
				return nil, false, nil
			}
			m := re.FindStringSubmatch(s)
			v, ok := result(s, m)
			return v, ok, nil
		}
	}
}

func buildExtractRegexGroup(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		sv, ok, err := ev(args[0], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		rv, ok, err := ev(args[1], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		nv, ok, err := ev(args[2], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		s, isStr := asString(sv)
		pattern, isPattern := asString(rv)
		n, isNum := asNumber(nv)
		if !isStr || !isPattern || !isNum || !n.IsInt() || n.Int64() < 0 {
			return nil, false, nil
		}
		re, err := ctx.CompileRegex(pattern)
		if err != nil {
			return nil, false, nil
		}
		m := re.FindStringSubmatch(s)
		idx := int(n.Int64())
		if m == nil || idx >= len(m) {
			return nil, false, nil
		}
		return value.String(m[idx]), true, nil
	}
}
