package function

import (
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

func init() {
	registerPredicate("array", func(v value.Value) bool { _, is := v.(*value.Array); return is }, "list")
	registerPredicate("object", func(v value.Value) bool { _, is := v.(*value.Object); return is }, "map", "hash")
	registerPredicate("null", func(v value.Value) bool { _, is := v.(value.Null); return is }, "nil")
	registerPredicate("bool", func(v value.Value) bool { _, is := v.(value.Bool); return is }, "boolean")
	registerPredicate("number", func(v value.Value) bool { _, is := v.(value.Number); return is })
	registerPredicate("string", func(v value.Value) bool { _, is := v.(value.String); return is })

	// empty?/nothing? is true only when the argument yields nothing at
	// all: unlike the other predicates it must see the not-ok case, so it
	// can't go through simple()'s eager short-circuiting evalAll.
	Default.Register(Def{
		Name: "empty?", Aliases: []string{"nothing?"}, Group: "predicate",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "True if A yields nothing.",
		Build: buildEmpty,
	})
}

func buildEmpty(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		_, ok, err := ev(args[0], ctx)
		if err != nil {
			return nil, false, err
		}
		return value.Bool(!ok), true, nil
	}
}

func registerPredicate(name string, test func(value.Value) bool, extraAliases ...string) {
	Default.Register(Def{
		Name: name + "?", Aliases: aliasesWithSuffix(extraAliases, "?"), Group: "predicate",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "True if A has the named type.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			return ok(value.Bool(test(args[0])))
		}),
	})
}

func aliasesWithSuffix(names []string, suffix string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n + suffix
	}
	return out
}
