package function

import (
	"sort"

	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

func init() {
	Default.Register(Def{
		Name: "keys", Group: "object",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Array of an object's keys, in insertion order.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			o, isObj := asObject(args[0])
			if !isObj {
				return nil, false
			}
			keys := o.Keys()
			out := make([]value.Value, len(keys))
			for i, k := range keys {
				out[i] = value.String(k)
			}
			return ok(value.NewArray(out...))
		}),
	})
	Default.Register(Def{
		Name: "values", Group: "object",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Array of an object's values, in insertion order.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			o, isObj := asObject(args[0])
			if !isObj {
				return nil, false
			}
			out := make([]value.Value, 0, o.Len())
			for _, k := range o.Keys() {
				v, _ := o.Get(k)
				out = append(out, v)
			}
			return ok(value.NewArray(out...))
		}),
	})
	Default.Register(Def{
		Name: "entries", Group: "object",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Array of {key, value} objects, in insertion order.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			o, isObj := asObject(args[0])
			if !isObj {
				return nil, false
			}
			out := make([]value.Value, 0, o.Len())
			for _, k := range o.Keys() {
				v, _ := o.Get(k)
				e := value.NewObject()
				e.Set("key", value.String(k))
				e.Set("value", v)
				out = append(out, e)
			}
			return ok(value.NewArray(out...))
		}),
	})
	Default.Register(Def{
		Name: "sort_by_keys", Group: "object",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Object with the same entries, reordered by key.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			o, isObj := asObject(args[0])
			if !isObj {
				return nil, false
			}
			keys := o.SortedKeys()
			out := value.NewObject()
			for _, k := range keys {
				v, _ := o.Get(k)
				out.Set(k, v)
			}
			return ok(out)
		}),
	})
	Default.Register(Def{
		Name: "sort_by_values", Group: "object",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Object with the same entries, reordered by value in natural order.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			return sortObjectByValues(args[0], func(k string, o *value.Object) value.Value {
				v, _ := o.Get(k)
				return v
			})
		}),
	})
	Default.Register(Def{
		Name: "sort_by_values_by", Group: "object",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Object with the same entries, reordered by K evaluated with each value as input.",
		Build: buildSortByValuesBy,
	})
	Default.Register(Def{
		Name: "filter_keys", Group: "object",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Keeps entries whose key (as a string input) satisfies predicate P.",
		Build: buildObjectFilter(true),
	})
	Default.Register(Def{
		Name: "filter_values", Group: "object",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Keeps entries whose value satisfies predicate P.",
		Build: buildObjectFilter(false),
	})
	Default.Register(Def{
		Name: "map_keys", Group: "object",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Maps each key through F, which must return a string.",
		Build: buildMapKeys,
	})
	Default.Register(Def{
		Name: "map_values", Group: "object",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Maps each value through F.",
		Build: buildMapValues,
	})
	Default.Register(Def{
		Name: "put", Aliases: []string{"insert", "replace", "{}"}, Group: "object",
		MinArgs: 3, MaxArgs: 3,
		Doc:   "Object with key set to value, inserting or replacing as needed.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			o, isObj := asObject(args[0])
			k, isStr := asString(args[1])
			if !isObj || !isStr {
				return nil, false
			}
			clone := o.Clone()
			clone.Set(k, args[2])
			return ok(clone)
		}),
	})
	Default.Register(Def{
		Name: "insert_if_absent", Aliases: []string{"{-}"}, Group: "object",
		MinArgs: 3, MaxArgs: 3,
		Doc:   "Like put, but leaves an existing key's value unchanged.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			o, isObj := asObject(args[0])
			k, isStr := asString(args[1])
			if !isObj || !isStr {
				return nil, false
			}
			clone := o.Clone()
			if _, exists := clone.Get(k); !exists {
				clone.Set(k, args[2])
			}
			return ok(clone)
		}),
	})
	Default.Register(Def{
		Name: "replace_if_exists", Aliases: []string{"{+}"}, Group: "object",
		MinArgs: 3, MaxArgs: 3,
		Doc:   "Like put, but does nothing if the key is absent.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			o, isObj := asObject(args[0])
			k, isStr := asString(args[1])
			if !isObj || !isStr {
				return nil, false
			}
			clone := o.Clone()
			if _, exists := clone.Get(k); exists {
				clone.Set(k, args[2])
			}
			return ok(clone)
		}),
	})
}

func sortObjectByValues(v value.Value, keyOf func(string, *value.Object) value.Value) (value.Value, bool) {
	o, isObj := asObject(v)
	if !isObj {
		return nil, false
	}
	keys := append([]string(nil), o.Keys()...)
	sort.SliceStable(keys, func(i, j int) bool {
		return value.Less(keyOf(keys[i], o), keyOf(keys[j], o))
	})
	out := value.NewObject()
	for _, k := range keys {
		val, _ := o.Get(k)
		out.Set(k, val)
	}
	return out, true
}

func buildSortByValuesBy(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		v, ok, err := ev(args[0], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		o, isObj := asObject(v)
		if !isObj {
			return nil, false, nil
		}
		type keyed struct {
			key   string
			order value.Value
		}
		rows := make([]keyed, 0, o.Len())
		for _, k := range o.Keys() {
			val, _ := o.Get(k)
			order, ok, err := ev(args[1], ctx.WithInput(val))
			if err != nil {
				return nil, false, err
			}
			if !ok {
				continue
			}
			rows = append(rows, keyed{key: k, order: order})
		}
		sort.SliceStable(rows, func(i, j int) bool { return value.Less(rows[i].order, rows[j].order) })
		out := value.NewObject()
		for _, r := range rows {
			val, _ := o.Get(r.key)
			out.Set(r.key, val)
		}
		return out, true, nil
	}
}

func buildObjectFilter(byKey bool) Builder {
	return func(args []parser.Expression) Callable {
		return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
			v, ok, err := ev(args[0], ctx)
			if err != nil || !ok {
				return nil, false, err
			}
			o, isObj := asObject(v)
			if !isObj {
				return nil, false, nil
			}
			out := value.NewObject()
			for _, k := range o.Keys() {
				val, _ := o.Get(k)
				input := value.Value(val)
				if byKey {
					input = value.String(k)
				}
				keep, ok, err := ev(args[1], ctx.WithInput(input))
				if err != nil {
					return nil, false, err
				}
				if !ok {
					continue
				}
				if b, isBool := asBool(keep); isBool && b {
					out.Set(k, val)
				}
			}
			return out, true, nil
		}
	}
}

func buildMapKeys(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		v, ok, err := ev(args[0], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		o, isObj := asObject(v)
		if !isObj {
			return nil, false, nil
		}
		out := value.NewObject()
		for _, k := range o.Keys() {
			val, _ := o.Get(k)
			mapped, ok, err := ev(args[1], ctx.WithInput(value.String(k)))
			if err != nil {
				return nil, false, err
			}
			if !ok {
				continue
			}
			newKey, isStr := asString(mapped)
			if !isStr {
				return nil, false, nil
			}
			out.Set(newKey, val)
		}
		return out, true, nil
	}
}

func buildMapValues(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		v, ok, err := ev(args[0], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		o, isObj := asObject(v)
		if !isObj {
			return nil, false, nil
		}
		out := value.NewObject()
		for _, k := range o.Keys() {
			val, _ := o.Get(k)
			mapped, ok, err := ev(args[1], ctx.WithInput(val))
			if err != nil {
				return nil, false, err
			}
			if !ok {
				continue
			}
			out.Set(k, mapped)
		}
		return out, true, nil
	}
}
