package function

import (
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

func init() {
	Default.Register(Def{
		Name: "set", Group: "variables",
		MinArgs: 3, MaxArgs: 3,
		Doc:   "Evaluates body with :name bound to the evaluated value. name is written as :name or @name; only its identifier is used.",
		Build: buildSet,
	})
	Default.Register(Def{
		Name: "define", Group: "variables",
		MinArgs: 3, MaxArgs: 3,
		Doc:   "Evaluates body with @name bound to the unevaluated expr, expanded at each use of @name. name is written as :name or @name; only its identifier is used.",
		Build: buildDefine,
	})
	Default.Register(Def{
		Name: "#", Group: "variables",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Expands and evaluates the macro bound to name, equivalent to @name.",
		Build: buildMacroCall,
	})
	Default.Register(Def{
		Name: ":", Group: "variables",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Reads the variable whose name is the string A evaluates to. Unlike :name, the name is computed at evaluation time.",
		Build: buildGetVariable,
	})
}

func nameOf(expr parser.Expression) (string, bool) {
	switch e := expr.(type) {
	case parser.VariableRef:
		return e.Name, true
	case parser.MacroRef:
		return e.Name, true
	case parser.Constant:
		if s, isStr := e.Value.(value.String); isStr {
			return string(s), true
		}
	}
	return "", false
}

func buildSet(args []parser.Expression) Callable {
	name, isName := nameOf(args[0])
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		if !isName {
			return nil, false, nil
		}
		v, ok, err := ev(args[1], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		return ev(args[2], ctx.WithVariable(name, v))
	}
}

func buildDefine(args []parser.Expression) Callable {
	name, isName := nameOf(args[0])
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		if !isName {
			return nil, false, nil
		}
		return ev(args[2], ctx.WithDefinition(name, args[1]))
	}
}

// buildGetVariable implements ":", the dynamic counterpart to the parser's
// static ":name" sugar: the name is an expression evaluated at runtime
// rather than fixed at parse time, e.g. (: .which).
func buildGetVariable(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		v, ok, err := ev(args[0], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		name, isStr := v.(value.String)
		if !isStr {
			return nil, false, nil
		}
		return ctx.GetVariable(string(name))
	}
}

func buildMacroCall(args []parser.Expression) Callable {
	name, isName := nameOf(args[0])
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		if !isName {
			return nil, false, nil
		}
		expr, found := ctx.GetMacro(name)
		if !found {
			return nil, false, nil
		}
		return ev(expr, ctx)
	}
}
