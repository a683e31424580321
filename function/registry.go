// Package function implements the function library (C5): a flat registry
// of function descriptors keyed by canonical name and aliases, each
// carrying a builder that turns parsed argument expressions into a
// callable closure. Grouping exists only for help-text rendering; it does
// not affect lookup.
package function

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

// Context is the subset of the evaluation context (C6) that function
// bodies need. eval.Context implements it; this package never imports
// eval, so the dependency only runs one way.
type Context interface {
	Input() value.Value
	ParentInput(depth int) (value.Value, bool)
	WithInput(v value.Value) Context
	GetVariable(name string) (value.Value, bool)
	WithVariable(name string, v value.Value) Context
	WithVariables(vars map[string]value.Value) Context
	GetMacro(name string) (parser.Expression, bool)
	WithDefinition(name string, expr parser.Expression) Context
	WithDefinitions(defs map[string]parser.Expression) Context
	GetSelected(name string) (value.Value, bool)
	InputContextField(tag parser.InputContextTag) (value.Value, bool)
	CompileRegex(pattern string) (*regexp.Regexp, error)
}

// Evaluate evaluates expr in ctx, returning (value, true, nil) on success,
// (zero, false, nil) when the expression yields nothing, and a non-nil
// error only for fatal failures (e.g. unknown function).
type Evaluate func(expr parser.Expression, ctx Context) (value.Value, bool, error)

// Callable is the closure a builder produces; it runs a call's body given
// the surrounding Evaluate (for lazily evaluating its own arguments) and
// Context.
type Callable func(ev Evaluate, ctx Context) (value.Value, bool, error)

// Builder turns a call's parsed argument expressions into a Callable.
type Builder func(args []parser.Expression) Callable

// Def describes one registered function.
type Def struct {
	Name     string
	Aliases  []string
	Group    string
	MinArgs  int
	MaxArgs  int // -1 means unbounded
	Doc      string
	Examples []string
	Build    Builder
}

func (d *Def) names() []string {
	return append([]string{d.Name}, d.Aliases...)
}

// checkArity reports whether n arguments satisfy d's declared range.
func (d *Def) checkArity(n int) bool {
	if n < d.MinArgs {
		return false
	}
	return d.MaxArgs < 0 || n <= d.MaxArgs
}

// Registry is a lookup table of function definitions by name and alias.
type Registry struct {
	byName map[string]*Def
	all    []*Def
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Def)}
}

// Register adds def under its canonical name and every alias. It panics on
// a name collision: that is a programming error, caught at init time.
func (r *Registry) Register(def Def) {
	r.all = append(r.all, &def)
	for _, n := range def.names() {
		if _, exists := r.byName[n]; exists {
			panic(fmt.Sprintf("function name collision: %q", n))
		}
		r.byName[n] = &def
	}
}

// Lookup returns the Def registered under name, if any.
func (r *Registry) Lookup(name string) (*Def, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Build resolves name, checks arity, and returns a Callable for args.
func (r *Registry) Build(name string, args []parser.Expression) (Callable, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown function %q", name)
	}
	if !def.checkArity(len(args)) {
		return nil, fmt.Errorf("function %q takes between %d and %s arguments, got %d", name, def.MinArgs, maxArgsString(def.MaxArgs), len(args))
	}
	return def.Build(args), nil
}

func maxArgsString(max int) string {
	if max < 0 {
		return "unbounded"
	}
	return fmt.Sprintf("%d", max)
}

// Defs returns every registered definition, sorted by canonical name, for
// --available-functions output.
func (r *Registry) Defs() []*Def {
	out := make([]*Def, len(r.all))
	copy(out, r.all)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Default is the registry populated by this package's init functions,
// mirroring the single shared DefaultFunctionRegistry idiom used
// elsewhere in this module family.
var Default = NewRegistry()
