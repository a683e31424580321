// Package eval implements the evaluation context (C6): it walks a
// parser.Expression tree, threading a value-semantic Context through
// function calls resolved from the function package's registry.
package eval

import (
	"regexp"

	"github.com/arnodel/jsel/function"
	"github.com/arnodel/jsel/jsonvalue"
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

// Context is the evaluation context threaded through an expression tree.
// It is value-semantic: every With* method returns a new Context without
// mutating the receiver. The regex cache is the one piece of genuinely
// shared, mutable state, since it is purely a
// performance device and never observable from selection semantics.
type Context struct {
	input        value.Value
	parents      []value.Value
	variables    map[string]value.Value
	macros       map[string]parser.Expression
	results      map[string]value.Value
	inputContext *jsonvalue.InputContext
	regexes      *regexCache
}

// New returns a root Context for one record, with no variables, macros, or
// accumulated results bound yet.
func New(input value.Value, ic *jsonvalue.InputContext, regexCacheSize int) *Context {
	return &Context{
		input:        input,
		variables:    map[string]value.Value{},
		macros:       map[string]parser.Expression{},
		results:      map[string]value.Value{},
		inputContext: ic,
		regexes:      newRegexCache(regexCacheSize),
	}
}

func (c *Context) clone() *Context {
	cp := *c
	return &cp
}

// Input returns the current record's input value.
func (c *Context) Input() value.Value { return c.input }

// ParentInput returns the input that was current `depth` with_input calls
// ago (depth 1 is the immediate parent); ok is false if depth exceeds the
// stack.
func (c *Context) ParentInput(depth int) (value.Value, bool) {
	if depth <= 0 || depth > len(c.parents) {
		return nil, false
	}
	return c.parents[len(c.parents)-depth], true
}

// WithInput pushes the current input onto the parent stack and returns a
// derived Context whose input is v.
func (c *Context) WithInput(v value.Value) function.Context {
	return c.WithInputValue(v)
}

// WithInputValue is WithInput with the concrete *Context return type the
// process package needs when it isn't going through the function package's
// interface boundary.
func (c *Context) WithInputValue(v value.Value) *Context {
	cp := c.clone()
	cp.parents = append(append([]value.Value(nil), c.parents...), c.input)
	cp.input = v
	return cp
}

// Fresh returns a new root Context for a synthesised record (one built by
// group-by, merge, or similar), sharing this Context's regex cache but
// starting with no parent stack, variables, macros, or recorded results.
func (c *Context) Fresh(input value.Value, ic *jsonvalue.InputContext) *Context {
	cp := New(input, ic, 0)
	cp.regexes = c.regexes
	return cp
}

// WithResult returns a derived Context recording the named selection's
// evaluated value (for subsequent /name/ references in the same list). A
// missing value (ok=false) is simply not recorded.
func (c *Context) WithResult(name string, v value.Value, ok bool) *Context {
	cp := c.clone()
	cp.results = copyResults(c.results)
	if ok {
		cp.results[name] = v
	}
	return cp
}

// GetSelected returns a previously recorded named result.
func (c *Context) GetSelected(name string) (value.Value, bool) {
	v, found := c.results[name]
	return v, found
}

// GetVariable looks up a lexically bound variable.
func (c *Context) GetVariable(name string) (value.Value, bool) {
	v, found := c.variables[name]
	return v, found
}

// WithVariable returns a derived Context with name bound to v.
func (c *Context) WithVariable(name string, v value.Value) function.Context {
	cp := c.clone()
	cp.variables = copyVars(c.variables)
	cp.variables[name] = v
	return cp
}

// WithVariables returns a derived Context with every entry of vars bound.
func (c *Context) WithVariables(vars map[string]value.Value) function.Context {
	cp := c.clone()
	cp.variables = copyVars(c.variables)
	for k, v := range vars {
		cp.variables[k] = v
	}
	return cp
}

// GetMacro looks up a lexically bound, unevaluated macro expression.
func (c *Context) GetMacro(name string) (parser.Expression, bool) {
	e, found := c.macros[name]
	return e, found
}

// WithDefinition returns a derived Context with name bound to expr.
func (c *Context) WithDefinition(name string, expr parser.Expression) function.Context {
	cp := c.clone()
	cp.macros = copyMacros(c.macros)
	cp.macros[name] = expr
	return cp
}

// WithDefinitions returns a derived Context with every entry of defs bound.
func (c *Context) WithDefinitions(defs map[string]parser.Expression) function.Context {
	cp := c.clone()
	cp.macros = copyMacros(c.macros)
	for k, v := range defs {
		cp.macros[k] = v
	}
	return cp
}

// CompileRegex compiles pattern, or returns it from the bounded cache.
func (c *Context) CompileRegex(pattern string) (*regexp.Regexp, error) {
	return c.regexes.compile(pattern)
}

// InputContextField reads one field of the current record's InputContext,
// resolving the parser's &tag syntax.
func (c *Context) InputContextField(tag parser.InputContextTag) (value.Value, bool) {
	if c.inputContext == nil {
		return nil, false
	}
	ic := c.inputContext
	switch tag {
	case parser.TagIndex:
		return value.Int(int64(ic.GlobalIndex)), true
	case parser.TagIndexInFile:
		return value.Int(int64(ic.IndexInFile)), true
	case parser.TagStartedAtLine:
		return value.Int(int64(ic.Start.Line)), true
	case parser.TagStartedAtChar:
		return value.Int(int64(ic.Start.Col)), true
	case parser.TagEndedAtLine:
		return value.Int(int64(ic.End.Line)), true
	case parser.TagEndedAtChar:
		return value.Int(int64(ic.End.Col)), true
	case parser.TagFileName:
		return value.String(ic.Start.SourceName), true
	default:
		return nil, false
	}
}

// Build assembles the downstream record: the raw input value when titles
// is empty, otherwise an Object keyed by title with the accumulated named
// results (missing results omitted).
func (c *Context) Build(titles []string) value.Value {
	if len(titles) == 0 {
		return c.input
	}
	obj := value.NewObject()
	for _, t := range titles {
		if v, found := c.results[t]; found {
			obj.Set(t, v)
		}
	}
	return obj
}

func copyVars(m map[string]value.Value) map[string]value.Value {
	out := make(map[string]value.Value, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyMacros(m map[string]parser.Expression) map[string]parser.Expression {
	out := make(map[string]parser.Expression, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyResults(m map[string]value.Value) map[string]value.Value {
	out := make(map[string]value.Value, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
