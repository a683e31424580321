package function

import (
	"sort"
	"strings"

	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

func init() {
	Default.Register(Def{
		Name: "filter", Group: "list",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Keeps elements of L for which P (evaluated with the element as input) is true.",
		Build: buildFilter,
	})
	Default.Register(Def{
		Name: "map", Group: "list",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Evaluates F with each element of L as input, keeping results in order.",
		Build: buildMap(false),
	})
	Default.Register(Def{
		Name: "flat_map", Group: "list",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Like map, but flattens array results of F one level.",
		Build: buildMap(true),
	})
	Default.Register(Def{
		Name: "sort", Group: "list",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Sorts L in natural Value order.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			arr, isArr := asArray(args[0])
			if !isArr {
				return nil, false
			}
			items := append([]value.Value(nil), arr.Items...)
			sort.SliceStable(items, func(i, j int) bool { return value.Less(items[i], items[j]) })
			return ok(value.NewArray(items...))
		}),
	})
	Default.Register(Def{
		Name: "sort_by", Group: "list",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Stably sorts L by the Value of K evaluated with each element as input.",
		Build: buildSortBy,
	})
	Default.Register(Def{
		Name: "sort_unique", Group: "list",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Sorts L in natural order and removes consecutive duplicates.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			arr, isArr := asArray(args[0])
			if !isArr {
				return nil, false
			}
			items := append([]value.Value(nil), arr.Items...)
			sort.SliceStable(items, func(i, j int) bool { return value.Less(items[i], items[j]) })
			out := items[:0]
			for i, v := range items {
				if i == 0 || !value.Equal(v, items[i-1]) {
					out = append(out, v)
				}
			}
			return ok(value.NewArray(out...))
		}),
	})
	Default.Register(Def{
		Name: "group_by", Group: "list",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Groups elements of L into an Object keyed by the string result of K.",
		Build: buildGroupBy,
	})
	Default.Register(Def{
		Name: "fold", Group: "list",
		MinArgs: 2, MaxArgs: 3,
		Doc:   "Folds over L; F sees {so_far?, value, index}. Two-arg form uses the first element as the seed.",
		Build: buildFold,
	})
	Default.Register(Def{
		Name: "sum", Group: "list",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Sum of a list of numbers.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			arr, isArr := asArray(args[0])
			if !isArr {
				return nil, false
			}
			total := 0.0
			allInt := true
			for _, item := range arr.Items {
				n, isNum := asNumber(item)
				if !isNum {
					return nil, false
				}
				if !n.IsInt() {
					allInt = false
				}
				total += n.Float64()
			}
			if allInt {
				return ok(value.Int(int64(total)))
			}
			return ok(value.Float(total))
		}),
	})
	Default.Register(Def{
		Name: "any", Group: "list",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "True if any element of L (which must be a list of Booleans) is true.",
		Build: simple(func(args []value.Value) (value.Value, bool) { return boolReduce(args[0], false) }),
	})
	Default.Register(Def{
		Name: "all", Group: "list",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "True if every element of L (which must be a list of Booleans) is true.",
		Build: simple(func(args []value.Value) (value.Value, bool) { return boolReduce(args[0], true) }),
	})
	Default.Register(Def{
		Name: "first", Group: "list",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "First element of L; nothing if empty.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			arr, isArr := asArray(args[0])
			if !isArr || arr.Len() == 0 {
				return nil, false
			}
			return ok(arr.Items[0])
		}),
	})
	Default.Register(Def{
		Name: "last", Group: "list",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Last element of L; nothing if empty.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			arr, isArr := asArray(args[0])
			if !isArr || arr.Len() == 0 {
				return nil, false
			}
			return ok(arr.Items[arr.Len()-1])
		}),
	})
	Default.Register(Def{
		Name: "join", Group: "list",
		MinArgs: 1, MaxArgs: 2,
		Doc:   "Joins a list of strings with an optional separator (default \"\").",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			arr, isArr := asArray(args[0])
			if !isArr {
				return nil, false
			}
			sep := ""
			if len(args) == 2 {
				s, isStr := asString(args[1])
				if !isStr {
					return nil, false
				}
				sep = s
			}
			parts := make([]string, arr.Len())
			for i, item := range arr.Items {
				s, isStr := asString(item)
				if !isStr {
					return nil, false
				}
				parts[i] = s
			}
			return ok(value.String(strings.Join(parts, sep)))
		}),
	})
	Default.Register(Def{
		Name: "range", Group: "list",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Array [0, 1, ..., N-1].",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			n, isNum := asNumber(args[0])
			if !isNum || !n.IsInt() || n.Int64() < 0 {
				return nil, false
			}
			items := make([]value.Value, n.Int64())
			for i := range items {
				items[i] = value.Uint(uint64(i))
			}
			return ok(value.NewArray(items...))
		}),
	})
	Default.Register(Def{
		Name: "reverse", Group: "list",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "Reverses a list.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			arr, isArr := asArray(args[0])
			if !isArr {
				return nil, false
			}
			n := arr.Len()
			items := make([]value.Value, n)
			for i, v := range arr.Items {
				items[n-1-i] = v
			}
			return ok(value.NewArray(items...))
		}),
	})
	Default.Register(Def{
		Name: "pop", Aliases: []string{"pop_last"}, Group: "list",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "L with its last element removed.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			arr, isArr := asArray(args[0])
			if !isArr || arr.Len() == 0 {
				return nil, false
			}
			return ok(value.NewArray(arr.Items[:arr.Len()-1]...))
		}),
	})
	Default.Register(Def{
		Name: "pop_first", Group: "list",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "L with its first element removed.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			arr, isArr := asArray(args[0])
			if !isArr || arr.Len() == 0 {
				return nil, false
			}
			return ok(value.NewArray(arr.Items[1:]...))
		}),
	})
	Default.Register(Def{
		Name: "push", Aliases: []string{"push_back"}, Group: "list",
		MinArgs: 2, MaxArgs: -1,
		Doc:   "L with one or more values appended.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			arr, isArr := asArray(args[0])
			if !isArr {
				return nil, false
			}
			items := append(append([]value.Value(nil), arr.Items...), args[1:]...)
			return ok(value.NewArray(items...))
		}),
	})
	Default.Register(Def{
		Name: "push_front", Group: "list",
		MinArgs: 2, MaxArgs: -1,
		Doc:   "L with one or more values prepended.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			arr, isArr := asArray(args[0])
			if !isArr {
				return nil, false
			}
			items := append(append([]value.Value(nil), args[1:]...), arr.Items...)
			return ok(value.NewArray(items...))
		}),
	})
	Default.Register(Def{
		Name: "zip", Group: "list",
		MinArgs: 2, MaxArgs: -1,
		Doc:   "Zips parallel lists into a list of arrays; length is the shortest input.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			lists, minLen, isArr := arrayArgs(args)
			if !isArr {
				return nil, false
			}
			out := make([]value.Value, minLen)
			for i := 0; i < minLen; i++ {
				row := make([]value.Value, len(lists))
				for j, l := range lists {
					row[j] = l.Items[i]
				}
				out[i] = value.NewArray(row...)
			}
			return ok(value.NewArray(out...))
		}),
	})
	Default.Register(Def{
		Name: "cross", Group: "list",
		MinArgs: 2, MaxArgs: -1,
		Doc:   "Cartesian product of lists; each result item is an object keyed \".0\", \".1\", ....",
		Build: simple(runCross),
	})
	Default.Register(Def{
		Name: "indexed", Group: "list",
		MinArgs: 1, MaxArgs: 1,
		Doc:   "List of {index, value} objects.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			arr, isArr := asArray(args[0])
			if !isArr {
				return nil, false
			}
			out := make([]value.Value, arr.Len())
			for i, v := range arr.Items {
				o := value.NewObject()
				o.Set("index", value.Uint(uint64(i)))
				o.Set("value", v)
				out[i] = o
			}
			return ok(value.NewArray(out...))
		}),
	})
}

func boolReduce(v value.Value, identity bool) (value.Value, bool) {
	arr, isArr := asArray(v)
	if !isArr {
		return nil, false
	}
	for _, item := range arr.Items {
		b, isBool := asBool(item)
		if !isBool {
			return nil, false
		}
		if b != identity {
			return value.Bool(!identity), true
		}
	}
	return value.Bool(identity), true
}

func arrayArgs(args []value.Value) ([]*value.Array, int, bool) {
	lists := make([]*value.Array, len(args))
	minLen := -1
	for i, a := range args {
		arr, isArr := asArray(a)
		if !isArr {
			return nil, 0, false
		}
		lists[i] = arr
		if minLen == -1 || arr.Len() < minLen {
			minLen = arr.Len()
		}
	}
	return lists, minLen, true
}

func runCross(args []value.Value) (value.Value, bool) {
	lists := make([]*value.Array, len(args))
	for i, a := range args {
		arr, isArr := asArray(a)
		if !isArr {
			return nil, false
		}
		lists[i] = arr
	}
	rows := []*value.Object{value.NewObject()}
	for i, l := range lists {
		var next []*value.Object
		key := keyFor(i)
		for _, row := range rows {
			for _, item := range l.Items {
				clone := row.Clone()
				clone.Set(key, item)
				next = append(next, clone)
			}
		}
		rows = next
	}
	out := make([]value.Value, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return ok(value.NewArray(out...))
}

func keyFor(i int) string {
	return "." + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

func buildFilter(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		v, ok, err := ev(args[0], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		arr, isArr := asArray(v)
		if !isArr {
			return nil, false, nil
		}
		var out []value.Value
		for _, item := range arr.Items {
			keep, ok, err := ev(args[1], ctx.WithInput(item))
			if err != nil {
				return nil, false, err
			}
			if !ok {
				continue
			}
			b, isBool := asBool(keep)
			if isBool && b {
				out = append(out, item)
			}
		}
		return value.NewArray(out...), true, nil
	}
}

func buildMap(flatten bool) Builder {
	return func(args []parser.Expression) Callable {
		return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
			v, ok, err := ev(args[0], ctx)
			if err != nil || !ok {
				return nil, false, err
			}
			arr, isArr := asArray(v)
			if !isArr {
				return nil, false, nil
			}
			var out []value.Value
			for _, item := range arr.Items {
				mapped, ok, err := ev(args[1], ctx.WithInput(item))
				if err != nil {
					return nil, false, err
				}
				if !ok {
					continue
				}
				if flatten {
					if sub, isArr := asArray(mapped); isArr {
						out = append(out, sub.Items...)
						continue
					}
				}
				out = append(out, mapped)
			}
			return value.NewArray(out...), true, nil
		}
	}
}

func buildSortBy(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		v, ok, err := ev(args[0], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		arr, isArr := asArray(v)
		if !isArr {
			return nil, false, nil
		}
		type keyed struct {
			key  value.Value
			item value.Value
		}
		rows := make([]keyed, 0, arr.Len())
		for _, item := range arr.Items {
			k, ok, err := ev(args[1], ctx.WithInput(item))
			if err != nil {
				return nil, false, err
			}
			if !ok {
				continue
			}
			rows = append(rows, keyed{key: k, item: item})
		}
		sort.SliceStable(rows, func(i, j int) bool { return value.Less(rows[i].key, rows[j].key) })
		out := make([]value.Value, len(rows))
		for i, r := range rows {
			out[i] = r.item
		}
		return value.NewArray(out...), true, nil
	}
}

func buildGroupBy(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		v, ok, err := ev(args[0], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		arr, isArr := asArray(v)
		if !isArr {
			return nil, false, nil
		}
		groups := value.NewObject()
		for _, item := range arr.Items {
			k, ok, err := ev(args[1], ctx.WithInput(item))
			if err != nil {
				return nil, false, err
			}
			if !ok {
				continue
			}
			key, isStr := asString(k)
			if !isStr {
				key = stringifyValue(k)
			}
			existing, found := groups.Get(key)
			var bucket *value.Array
			if found {
				bucket, _ = existing.(*value.Array)
			} else {
				bucket = value.NewArray()
			}
			bucket.Items = append(bucket.Items, item)
			groups.Set(key, bucket)
		}
		return groups, true, nil
	}
}

func buildFold(args []parser.Expression) Callable {
	return func(ev Evaluate, ctx Context) (value.Value, bool, error) {
		v, ok, err := ev(args[0], ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		arr, isArr := asArray(v)
		if !isArr {
			return nil, false, nil
		}
		var fExpr parser.Expression
		var soFar value.Value
		haveSoFar := false
		items := arr.Items
		if len(args) == 3 {
			seed, ok, err := ev(args[1], ctx)
			if err != nil || !ok {
				return nil, false, err
			}
			soFar, haveSoFar = seed, true
			fExpr = args[2]
		} else {
			fExpr = args[1]
			if len(items) == 0 {
				return nil, false, nil
			}
			soFar, haveSoFar = items[0], true
			items = items[1:]
		}
		for i, item := range items {
			step := value.NewObject()
			if haveSoFar {
				step.Set("so_far", soFar)
			}
			step.Set("value", item)
			step.Set("index", value.Uint(uint64(i)))
			next, ok, err := ev(fExpr, ctx.WithInput(step))
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, nil
			}
			soFar, haveSoFar = next, true
		}
		return soFar, haveSoFar, nil
	}
}
