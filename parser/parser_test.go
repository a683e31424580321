package parser

import (
	"testing"

	"github.com/arnodel/jsel/value"
)

func assertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

func TestParseRoot(t *testing.T) {
	expr, err := ParseExpression(".")
	assertTrue(t, err == nil, "expected no error")
	_, ok := expr.(Root)
	assertTrue(t, ok, "expected Root")
}

func TestParseExtractorPath(t *testing.T) {
	expr, err := ParseExpression(".b#1")
	assertTrue(t, err == nil, "expected no error")
	ext, ok := expr.(Extract)
	assertTrue(t, ok, "expected Extract")
	assertTrue(t, ext.ParentDepth == 0, "expected depth 0")
	assertTrue(t, len(ext.Path) == 2, "expected two path steps")
	assertTrue(t, ext.Path[0].Key == "b" && !ext.Path[0].IsIndex, "expected .b")
	assertTrue(t, ext.Path[1].IsIndex && ext.Path[1].Index == 1, "expected #1")
}

func TestParseParentReference(t *testing.T) {
	expr, err := ParseExpression("^^.x")
	assertTrue(t, err == nil, "expected no error")
	ext, ok := expr.(Extract)
	assertTrue(t, ok, "expected Extract")
	assertTrue(t, ext.ParentDepth == 2, "expected depth 2")
}

func TestParseCallWithDotPrefixSugar(t *testing.T) {
	sugared, err := ParseExpression("(.sum)")
	assertTrue(t, err == nil, "expected no error")
	desugared, err := ParseExpression("(sum .)")
	assertTrue(t, err == nil, "expected no error")
	sc := sugared.(Call)
	dc := desugared.(Call)
	assertTrue(t, sc.Name == dc.Name && len(sc.Args) == len(dc.Args), "dot-prefix sugar should desugar to the same call shape")
}

func TestParseCallCommaAndWhitespaceSeparators(t *testing.T) {
	a, err := ParseExpression("(+ 1, 2)")
	assertTrue(t, err == nil, "expected no error")
	b, err := ParseExpression("(+ 1 2)")
	assertTrue(t, err == nil, "expected no error")
	assertTrue(t, len(a.(Call).Args) == 2 && len(b.(Call).Args) == 2, "comma and whitespace should both separate arguments")
}

func TestParseVariableAndMacroRefs(t *testing.T) {
	v, err := ParseExpression(":foo")
	assertTrue(t, err == nil, "expected no error")
	assertTrue(t, v.(VariableRef).Name == "foo", "expected variable ref foo")
	m, err := ParseExpression("@bar")
	assertTrue(t, err == nil, "expected no error")
	assertTrue(t, m.(MacroRef).Name == "bar", "expected macro ref bar")
}

func TestParseInputContextField(t *testing.T) {
	expr, err := ParseExpression("&index")
	assertTrue(t, err == nil, "expected no error")
	assertTrue(t, expr.(InputContextField).Tag == TagIndex, "expected &index tag")
}

func TestParsePreviousSelection(t *testing.T) {
	expr, err := ParseExpression("/total/")
	assertTrue(t, err == nil, "expected no error")
	assertTrue(t, expr.(PreviousSelection).Name == "total", "expected previous selection named total")
}

func TestParseLiteral(t *testing.T) {
	expr, err := ParseExpression(`{"a": [1, 2.5, true, null]}`)
	assertTrue(t, err == nil, "expected no error")
	c, ok := expr.(Constant)
	assertTrue(t, ok, "expected Constant")
	obj, ok := c.Value.(*value.Object)
	assertTrue(t, ok, "expected an object literal")
	a, _ := obj.Get("a")
	arr := a.(*value.Array)
	assertTrue(t, arr.Len() == 4, "expected 4 items")
}

func TestParseSelectionWithExplicitName(t *testing.T) {
	sel, err := ParseSelection(".b#1 = second")
	assertTrue(t, err == nil, "expected no error")
	assertTrue(t, sel.Name == "second", "expected explicit name")
	_, ok := sel.Root.(Extract)
	assertTrue(t, ok, "expected Extract root")
}

func TestParseSelectionDefaultName(t *testing.T) {
	sel, err := ParseSelection("(sum .)")
	assertTrue(t, err == nil, "expected no error")
	assertTrue(t, sel.Name == "(sum .)", "expected name to default to the textual source")
}

func TestParseSortExpressionDirection(t *testing.T) {
	_, desc, err := ParseSortExpression(". desc")
	assertTrue(t, err == nil, "expected no error")
	assertTrue(t, desc, "expected descending")
	_, asc, err := ParseSortExpression(".")
	assertTrue(t, err == nil, "expected no error")
	assertTrue(t, !asc, "expected ascending by default")
}

func TestParseTrailingContentIsAnError(t *testing.T) {
	_, err := ParseExpression(". garbage")
	assertTrue(t, err != nil, "expected a trailing-content error")
}
