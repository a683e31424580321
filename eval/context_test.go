package eval

import (
	"testing"

	"github.com/arnodel/jsel/jsonvalue"
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

func assertTrue(t *testing.T, cond bool, msg string) {
	t.Helper()
	if !cond {
		t.Error(msg)
	}
}

func TestEvalRootAndExtract(t *testing.T) {
	obj := value.NewObject()
	obj.Set("a", value.NewArray(value.Int(10), value.Int(20)))
	ctx := New(obj, nil, 16)

	expr, err := parser.ParseExpression(".a#1")
	assertTrue(t, err == nil, "expected no parse error")
	v, ok, err := Eval(expr, ctx)
	assertTrue(t, err == nil && ok, "expected a result")
	assertTrue(t, value.Equal(v, value.Int(20)), "expected 20")
}

func TestEvalParentInput(t *testing.T) {
	ctx := New(value.Int(1), nil, 16)
	child := ctx.WithInput(value.Int(2)).(*Context)
	expr, err := parser.ParseExpression("^.")
	assertTrue(t, err == nil, "expected no parse error")
	v, ok, err := Eval(expr, child)
	assertTrue(t, err == nil && ok, "expected a result")
	assertTrue(t, value.Equal(v, value.Int(1)), "expected parent input 1")
}

func TestEvalVariableBinding(t *testing.T) {
	ctx := New(value.Nil, nil, 16)
	expr, err := parser.ParseExpression("(set :x 42 :x)")
	assertTrue(t, err == nil, "expected no parse error")
	v, ok, err := Eval(expr, ctx)
	assertTrue(t, err == nil && ok, "expected a result")
	assertTrue(t, value.Equal(v, value.Int(42)), "expected 42")
}

func TestEvalMacroExpandsAtUse(t *testing.T) {
	ctx := New(value.Int(5), nil, 16)
	expr, err := parser.ParseExpression("(define @double (* . 2) (+ @double @double))")
	assertTrue(t, err == nil, "expected no parse error")
	v, ok, err := Eval(expr, ctx)
	assertTrue(t, err == nil && ok, "expected a result")
	assertTrue(t, value.Equal(v, value.Int(20)), "expected 20")
}

func TestEvalPreviousSelection(t *testing.T) {
	ctx := New(value.Nil, nil, 16)
	ctx = ctx.WithResult("total", value.Int(7), true)
	expr, err := parser.ParseExpression("/total/")
	assertTrue(t, err == nil, "expected no parse error")
	v, ok, err := Eval(expr, ctx)
	assertTrue(t, err == nil && ok, "expected a result")
	assertTrue(t, value.Equal(v, value.Int(7)), "expected 7")
}

func TestEvalInputContextField(t *testing.T) {
	ic := &jsonvalue.InputContext{GlobalIndex: 3}
	ctx := New(value.Nil, ic, 16)
	expr, err := parser.ParseExpression("&index")
	assertTrue(t, err == nil, "expected no parse error")
	v, ok, err := Eval(expr, ctx)
	assertTrue(t, err == nil && ok, "expected a result")
	assertTrue(t, value.Equal(v, value.Int(3)), "expected 3")
}

func TestBuildWithEmptyTitlesYieldsRawInput(t *testing.T) {
	ctx := New(value.String("raw"), nil, 16)
	v := ctx.Build(nil)
	assertTrue(t, value.Equal(v, value.String("raw")), "expected the raw input")
}

func TestBuildOmitsMissingResults(t *testing.T) {
	ctx := New(value.Nil, nil, 16)
	ctx = ctx.WithResult("a", value.Int(1), true)
	v := ctx.Build([]string{"a", "b"})
	obj := v.(*value.Object)
	_, hasB := obj.Get("b")
	assertTrue(t, !hasB, "expected missing result b to be omitted")
	a, _ := obj.Get("a")
	assertTrue(t, value.Equal(a, value.Int(1)), "expected a=1")
}
