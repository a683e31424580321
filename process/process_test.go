package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnodel/jsel/eval"
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

// collector is a terminal Stage that records every Build()'d row it sees,
// for assertions in these tests.
type collector struct {
	titles []string
	rows   []value.Value
}

func (c *collector) Start(titlesSoFar []string) ([]string, error) {
	c.titles = titlesSoFar
	return titlesSoFar, nil
}

func (c *collector) Process(ctx *eval.Context) (Signal, error) {
	c.rows = append(c.rows, ctx.Build(c.titles))
	return Continue, nil
}

func (c *collector) Complete() error { return nil }

func sourceFrom(values []value.Value) Source {
	i := 0
	return func() (*eval.Context, bool, error) {
		if i >= len(values) {
			return nil, false, nil
		}
		ctx := eval.New(values[i], nil, 0)
		i++
		return ctx, true, nil
	}
}

func mustParse(t *testing.T, src string) parser.Expression {
	t.Helper()
	expr, err := parser.ParseExpression(src)
	require.NoError(t, err)
	return expr
}

func TestFilterDropsNonMatchingRecords(t *testing.T) {
	out := &collector{}
	chain := &Filter{Predicate: mustParse(t, "(> . 2)"), Next: out}
	err := Run(chain, sourceFrom([]value.Value{value.Int(1), value.Int(2), value.Int(3), value.Int(4)}))
	require.NoError(t, err)
	require.Len(t, out.rows, 2)
	assert.True(t, value.Equal(out.rows[0], value.Int(3)))
}

func TestSelectBuildsNamedColumns(t *testing.T) {
	out := &collector{}
	chain := &Select{
		Projections: []Projection{
			{Name: "doubled", Expr: mustParse(t, "(* . 2)")},
		},
		Next: out,
	}
	err := Run(chain, sourceFrom([]value.Value{value.Int(5)}))
	require.NoError(t, err)
	require.Len(t, out.rows, 1)
	obj := out.rows[0].(*value.Object)
	v, found := obj.Get("doubled")
	require.True(t, found)
	assert.True(t, value.Equal(v, value.Int(10)))
}

func TestSortOrdersRecords(t *testing.T) {
	out := &collector{}
	chain := &Sort{KeyExpr: parser.Root{}, Next: out}
	err := Run(chain, sourceFrom([]value.Value{value.Int(3), value.Int(1), value.Int(2)}))
	require.NoError(t, err)
	require.Len(t, out.rows, 3)
	assert.True(t, value.Equal(out.rows[0], value.Int(1)))
	assert.True(t, value.Equal(out.rows[2], value.Int(3)))
}

func TestSortDescending(t *testing.T) {
	out := &collector{}
	chain := &Sort{KeyExpr: parser.Root{}, Descending: true, Next: out}
	err := Run(chain, sourceFrom([]value.Value{value.Int(3), value.Int(1), value.Int(2)}))
	require.NoError(t, err)
	require.Len(t, out.rows, 3)
	assert.True(t, value.Equal(out.rows[0], value.Int(3)))
	assert.True(t, value.Equal(out.rows[2], value.Int(1)))
}

func TestGroupByEmitsOneSynthesisedRecord(t *testing.T) {
	out := &collector{}
	chain := &GroupBy{KeyExpr: mustParse(t, "(stringify (% . 2))"), Next: out}
	err := Run(chain, sourceFrom([]value.Value{value.Int(1), value.Int(2), value.Int(3), value.Int(4)}))
	require.NoError(t, err)
	require.Len(t, out.rows, 1)
	obj := out.rows[0].(*value.Object)
	assert.Equal(t, 2, obj.Len())
}

func TestSplitEmitsOneChildPerElement(t *testing.T) {
	out := &collector{}
	chain := &Split{Expr: parser.Root{}, Next: out}
	arr := value.NewArray(value.Int(1), value.Int(2), value.Int(3))
	err := Run(chain, sourceFrom([]value.Value{arr}))
	require.NoError(t, err)
	require.Len(t, out.rows, 3)
}

func TestMergeEmitsOneArrayRecord(t *testing.T) {
	out := &collector{}
	chain := &Merge{Next: out}
	err := Run(chain, sourceFrom([]value.Value{value.Int(1), value.Int(2)}))
	require.NoError(t, err)
	require.Len(t, out.rows, 1)
	arr := out.rows[0].(*value.Array)
	assert.Equal(t, 2, arr.Len())
}

func TestUniqueKeepsFirstOccurrence(t *testing.T) {
	out := &collector{}
	chain := &Unique{Next: out}
	err := Run(chain, sourceFrom([]value.Value{value.Int(1), value.Int(1), value.Int(2)}))
	require.NoError(t, err)
	require.Len(t, out.rows, 2)
}

func TestLimitSkipsAndTakes(t *testing.T) {
	out := &collector{}
	chain := &Limit{Skip: 1, Take: 2, Next: out}
	err := Run(chain, sourceFrom([]value.Value{value.Int(1), value.Int(2), value.Int(3), value.Int(4)}))
	require.NoError(t, err)
	require.Len(t, out.rows, 2)
	assert.True(t, value.Equal(out.rows[0], value.Int(2)))
	assert.True(t, value.Equal(out.rows[1], value.Int(3)))
}

func TestPreSetBindsVariables(t *testing.T) {
	out := &collector{}
	chain := &PreSet{
		Variables: map[string]value.Value{"k": value.Int(10)},
		Next: &Select{
			Projections: []Projection{{Name: "v", Expr: mustParse(t, ":k")}},
			Next:        out,
		},
	}
	err := Run(chain, sourceFrom([]value.Value{value.Nil}))
	require.NoError(t, err)
	require.Len(t, out.rows, 1)
	obj := out.rows[0].(*value.Object)
	v, found := obj.Get("v")
	require.True(t, found)
	assert.True(t, value.Equal(v, value.Int(10)))
}
