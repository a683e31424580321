package eval

import (
	"fmt"

	"github.com/arnodel/jsel/function"
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

// Eval walks expr against ctx and returns its value. ok is false when the
// expression "yields nothing": a definite, non-error absence of a
// result, as opposed to err, which signals a fatal condition (an
// unknown function name, or a builder rejecting an invalid argument
// shape it cannot express as "nothing").
func Eval(expr parser.Expression, ctx *Context) (value.Value, bool, error) {
	return evalExpr(expr, ctx)
}

func evalExpr(expr parser.Expression, ctx function.Context) (value.Value, bool, error) {
	switch e := expr.(type) {
	case parser.Constant:
		return e.Value, true, nil
	case parser.Root:
		return ctx.Input(), true, nil
	case parser.Extract:
		return evalExtract(e, ctx)
	case parser.Call:
		return evalCall(e, ctx)
	case parser.VariableRef:
		v, ok := ctx.GetVariable(e.Name)
		return v, ok, nil
	case parser.MacroRef:
		body, found := ctx.GetMacro(e.Name)
		if !found {
			return nil, false, nil
		}
		return evalExpr(body, ctx)
	case parser.InputContextField:
		v, ok := ctx.InputContextField(e.Tag)
		return v, ok, nil
	case parser.PreviousSelection:
		v, ok := ctx.GetSelected(e.Name)
		return v, ok, nil
	default:
		return nil, false, fmt.Errorf("eval: unhandled expression type %T", expr)
	}
}

func evalExtract(e parser.Extract, ctx function.Context) (value.Value, bool, error) {
	var v value.Value
	if e.ParentDepth == 0 {
		v = ctx.Input()
	} else {
		pv, found := ctx.ParentInput(e.ParentDepth)
		if !found {
			return nil, false, nil
		}
		v = pv
	}
	for _, step := range e.Path {
		var ok bool
		if step.IsIndex {
			arr, isArr := v.(*value.Array)
			if !isArr || step.Index < 0 || step.Index >= arr.Len() {
				return nil, false, nil
			}
			v, ok = arr.Items[step.Index], true
		} else {
			obj, isObj := v.(*value.Object)
			if !isObj {
				return nil, false, nil
			}
			v, ok = obj.Get(step.Key)
		}
		if !ok {
			return nil, false, nil
		}
	}
	return v, true, nil
}

func evalCall(e parser.Call, ctx function.Context) (value.Value, bool, error) {
	callable, err := function.Default.Build(e.Name, e.Args)
	if err != nil {
		return nil, false, err
	}
	return callable(evalExpr, ctx)
}
