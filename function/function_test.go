package function

import (
	"regexp"
	"testing"

	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

// fakeContext is a minimal, standalone implementation of Context used to
// unit-test builders without depending on the eval package (which itself
// depends on this one).
type fakeContext struct {
	input     value.Value
	parents   []value.Value
	variables map[string]value.Value
	macros    map[string]parser.Expression
	selected  map[string]value.Value
}

func newFakeContext(input value.Value) *fakeContext {
	return &fakeContext{input: input, variables: map[string]value.Value{}, macros: map[string]parser.Expression{}, selected: map[string]value.Value{}}
}

func (c *fakeContext) Input() value.Value { return c.input }

func (c *fakeContext) ParentInput(depth int) (value.Value, bool) {
	if depth <= 0 || depth > len(c.parents) {
		return nil, false
	}
	return c.parents[len(c.parents)-depth], true
}

func (c *fakeContext) clone() *fakeContext {
	cp := *c
	return &cp
}

func (c *fakeContext) WithInput(v value.Value) Context {
	cp := c.clone()
	cp.parents = append(append([]value.Value(nil), c.parents...), c.input)
	cp.input = v
	return cp
}

func (c *fakeContext) GetVariable(name string) (value.Value, bool) {
	v, ok := c.variables[name]
	return v, ok
}

func (c *fakeContext) WithVariable(name string, v value.Value) Context {
	cp := c.clone()
	cp.variables = copyVars(c.variables)
	cp.variables[name] = v
	return cp
}

func (c *fakeContext) WithVariables(vars map[string]value.Value) Context {
	cp := c.clone()
	cp.variables = copyVars(c.variables)
	for k, v := range vars {
		cp.variables[k] = v
	}
	return cp
}

func (c *fakeContext) GetMacro(name string) (parser.Expression, bool) {
	e, ok := c.macros[name]
	return e, ok
}

func (c *fakeContext) WithDefinition(name string, expr parser.Expression) Context {
	cp := c.clone()
	cp.macros = copyMacros(c.macros)
	cp.macros[name] = expr
	return cp
}

func (c *fakeContext) WithDefinitions(defs map[string]parser.Expression) Context {
	cp := c.clone()
	cp.macros = copyMacros(c.macros)
	for k, v := range defs {
		cp.macros[k] = v
	}
	return cp
}

func (c *fakeContext) GetSelected(name string) (value.Value, bool) {
	v, ok := c.selected[name]
	return v, ok
}

func (c *fakeContext) InputContextField(tag parser.InputContextTag) (value.Value, bool) {
	return nil, false
}

func (c *fakeContext) CompileRegex(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(pattern)
}

func copyVars(m map[string]value.Value) map[string]value.Value {
	out := make(map[string]value.Value, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyMacros(m map[string]parser.Expression) map[string]parser.Expression {
	out := make(map[string]parser.Expression, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// fakeEval is a tiny expression evaluator sufficient for these tests: it
// handles Root, Constant, and Call (dispatching through Default), which is
// everything the test expressions below need.
func fakeEval(expr parser.Expression, ctx Context) (value.Value, bool, error) {
	switch e := expr.(type) {
	case parser.Root:
		return ctx.Input(), true, nil
	case parser.Constant:
		return e.Value, true, nil
	case parser.VariableRef:
		v, ok := ctx.GetVariable(e.Name)
		return v, ok, nil
	case parser.Call:
		fn, err := Default.Build(e.Name, e.Args)
		if err != nil {
			return nil, false, err
		}
		return fn(fakeEval, ctx)
	default:
		return nil, false, nil
	}
}

func assertTrue(t *testing.T, cond bool, msg string) {
	t.Helper()
	if !cond {
		t.Error(msg)
	}
}

func TestGetFromObjectAndArray(t *testing.T) {
	obj := value.NewObject()
	obj.Set("a", value.Int(1))
	call := parser.Call{Name: "get", Args: []parser.Expression{
		parser.Constant{Value: obj},
		parser.Constant{Value: value.String("a")},
	}}
	v, ok, err := fakeEval(call, newFakeContext(value.Nil))
	assertTrue(t, err == nil && ok, "expected a result")
	assertTrue(t, value.Equal(v, value.Int(1)), "expected 1")
}

func TestIfShortCircuits(t *testing.T) {
	call := parser.Call{Name: "if", Args: []parser.Expression{
		parser.Constant{Value: value.Bool(true)},
		parser.Constant{Value: value.String("yes")},
		parser.Call{Name: "no_such_function"},
	}}
	v, ok, err := fakeEval(call, newFakeContext(value.Nil))
	assertTrue(t, err == nil && ok, "expected a result")
	assertTrue(t, value.Equal(v, value.String("yes")), "expected yes")
}

func TestFilterPredicate(t *testing.T) {
	arr := value.NewArray(value.Int(1), value.Int(2), value.Int(3))
	call := parser.Call{Name: "filter", Args: []parser.Expression{
		parser.Constant{Value: arr},
		parser.Call{Name: ">", Args: []parser.Expression{parser.Root{}, parser.Constant{Value: value.Int(1)}}},
	}}
	v, ok, err := fakeEval(call, newFakeContext(value.Nil))
	assertTrue(t, err == nil && ok, "expected a result")
	result := v.(*value.Array)
	assertTrue(t, result.Len() == 2, "expected two elements")
}

func TestGroupByBuildsObjectOfArrays(t *testing.T) {
	arr := value.NewArray(value.Int(1), value.Int(2), value.Int(3), value.Int(4))
	call := parser.Call{Name: "group_by", Args: []parser.Expression{
		parser.Constant{Value: arr},
		parser.Call{Name: "stringify", Args: []parser.Expression{
			parser.Call{Name: "%", Args: []parser.Expression{parser.Root{}, parser.Constant{Value: value.Int(2)}}},
		}},
	}}
	v, ok, err := fakeEval(call, newFakeContext(value.Nil))
	assertTrue(t, err == nil && ok, "expected a result")
	obj := v.(*value.Object)
	assertTrue(t, obj.Len() == 2, "expected two groups")
}

func TestSum(t *testing.T) {
	arr := value.NewArray(value.Int(1), value.Int(2), value.Int(3))
	sumCall := parser.Call{Name: "sum", Args: []parser.Expression{parser.Constant{Value: arr}}}
	v, ok, err := fakeEval(sumCall, newFakeContext(value.Nil))
	assertTrue(t, err == nil && ok, "expected a result")
	assertTrue(t, value.Equal(v, value.Int(6)), "expected 6")
}

func TestEmptyPredicateSeesNothing(t *testing.T) {
	call := parser.Call{Name: "empty?", Args: []parser.Expression{
		parser.Call{Name: "get", Args: []parser.Expression{
			parser.Constant{Value: value.NewArray()},
			parser.Constant{Value: value.Int(0)},
		}},
	}}
	v, ok, err := fakeEval(call, newFakeContext(value.Nil))
	assertTrue(t, err == nil && ok, "expected a result")
	assertTrue(t, value.Equal(v, value.Bool(true)), "expected true for a nothing-yielding argument")
}

func TestEmptyPredicateIsFalseForPresentEmptyValues(t *testing.T) {
	for _, v := range []value.Value{value.NewArray(), value.NewObject(), value.String("")} {
		call := parser.Call{Name: "empty?", Args: []parser.Expression{parser.Constant{Value: v}}}
		out, ok, err := fakeEval(call, newFakeContext(value.Nil))
		assertTrue(t, err == nil && ok, "expected a result")
		assertTrue(t, value.Equal(out, value.Bool(false)), "expected false for a present (if empty) value")
	}
}

func TestDynamicVariableLookup(t *testing.T) {
	call := parser.Call{Name: "set", Args: []parser.Expression{
		parser.VariableRef{Name: "x"},
		parser.Constant{Value: value.Int(7)},
		parser.Call{Name: ":", Args: []parser.Expression{
			parser.Constant{Value: value.String("x")},
		}},
	}}
	v, ok, err := fakeEval(call, newFakeContext(value.Nil))
	assertTrue(t, err == nil && ok, "expected a result")
	assertTrue(t, value.Equal(v, value.Int(7)), "expected the value bound by set")
}

func TestArityIsEnforced(t *testing.T) {
	_, err := Default.Build("get", []parser.Expression{parser.Constant{Value: value.Nil}})
	assertTrue(t, err != nil, "expected an arity error")
}

func TestNASArithmeticOnBigDecimals(t *testing.T) {
	call := parser.Call{Name: "nas_add", Args: []parser.Expression{
		parser.Constant{Value: value.String("99999999999999999999")},
		parser.Constant{Value: value.String("1")},
	}}
	v, ok, err := fakeEval(call, newFakeContext(value.Nil))
	assertTrue(t, err == nil && ok, "expected a result")
	assertTrue(t, value.Equal(v, value.String("100000000000000000000")), "expected exact big-integer addition")
}
