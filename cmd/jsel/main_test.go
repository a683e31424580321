package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnodel/jsel/eval"
	"github.com/arnodel/jsel/output"
	"github.com/arnodel/jsel/process"
	"github.com/arnodel/jsel/value"
)

// collector is a terminal process.Stage that records every Build()'d row,
// mirroring process_test.go's own helper so chain-composition tests here
// can run a real graph end to end.
type collector struct {
	titles []string
	rows   []value.Value
}

func (c *collector) Start(titlesSoFar []string) ([]string, error) {
	c.titles = titlesSoFar
	return titlesSoFar, nil
}

func (c *collector) Process(ctx *eval.Context) (process.Signal, error) {
	c.rows = append(c.rows, ctx.Build(c.titles))
	return process.Continue, nil
}

func (c *collector) Complete() error { return nil }

func sourceFrom(values []value.Value) process.Source {
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

func TestParseOnError(t *testing.T) {
	for _, s := range []string{"ignore", "panic", "stderr", "stdout"} {
		_, err := parseOnError(s)
		require.NoError(t, err)
	}
	_, err := parseOnError("bogus")
	assert.Error(t, err)
}

func TestParseJSONStyle(t *testing.T) {
	_, err := parseJSONStyle("bogus")
	assert.Error(t, err)

	style, err := parseJSONStyle("pretty")
	require.NoError(t, err)
	assert.Equal(t, output.Pretty, style)

	style, err = parseJSONStyle("one-line")
	require.NoError(t, err)
	assert.Equal(t, output.OneLine, style)
}

func TestStringListAccumulates(t *testing.T) {
	var l stringList
	require.NoError(t, l.Set("a"))
	require.NoError(t, l.Set("b"))
	assert.Equal(t, []string{"a", "b"}, l.values)
}

func TestEscapeListParsesCharEqualsSeq(t *testing.T) {
	var l escapeList
	require.NoError(t, l.Set(`\=t=TAB`))
	require.Len(t, l.entries, 1)
	assert.Equal(t, '\\', l.entries[0].Char)
	assert.Equal(t, "t=TAB", l.entries[0].Seq)

	var l2 escapeList
	require.NoError(t, l2.Set("x=y"))
	assert.Equal(t, 'x', l2.entries[0].Char)
	assert.Equal(t, "y", l2.entries[0].Seq)

	var l3 escapeList
	assert.Error(t, l3.Set("no-equals-sign"))
}

func TestBuildPreSetBindsVariableAndMacro(t *testing.T) {
	preset, err := buildPreSet([]string{`x=42`, `@double=(* . 2)`})
	require.NoError(t, err)
	require.NotNil(t, preset)
	collector := &collector{}
	preset.Next = collector
	err = process.Run(preset, sourceFrom([]value.Value{value.Int(1)}))
	require.NoError(t, err)
	require.Len(t, collector.rows, 1)
}

func TestBuildPreSetEmptyReturnsNil(t *testing.T) {
	preset, err := buildPreSet(nil)
	require.NoError(t, err)
	assert.Nil(t, preset)
}

func TestBuildPreSetRejectsMalformed(t *testing.T) {
	_, err := buildPreSet([]string{"no-equals-sign"})
	assert.Error(t, err)
}

func TestBuildChainFilterDropsNonMatching(t *testing.T) {
	c := &collector{}
	chain, err := buildChain(chainOptions{filter: "(> . 2)", sink: nil})
	require.NoError(t, err)
	wireSinkless(t, chain, c)

	err = process.Run(chain, sourceFrom([]value.Value{value.Int(1), value.Int(3), value.Int(5)}))
	require.NoError(t, err)
	require.Len(t, c.rows, 2)
}

// wireSinkless replaces the constructed chain's terminal output.Stage with
// c, so chain-composition tests can assert on the rows that reach the end
// without going through a real Sink.
func wireSinkless(t *testing.T, chain process.Stage, c *collector) {
	t.Helper()
	var next *process.Stage
	switch s := chain.(type) {
	case *process.Filter:
		next = &s.Next
	case *process.Select:
		next = &s.Next
	case *process.Split:
		next = &s.Next
	case *process.Unique:
		next = &s.Next
	case *process.Sort:
		next = &s.Next
	case *process.GroupBy:
		next = &s.Next
	case *process.Merge:
		next = &s.Next
	case *process.Limit:
		next = &s.Next
	default:
		t.Fatalf("unexpected chain stage type %T", chain)
	}
	if _, isSink := (*next).(*output.Stage); !isSink {
		wireSinkless(t, *next, c)
		return
	}
	*next = c
}

func obj(a, b int64) *value.Object {
	o := value.NewObject()
	o.Set("a", value.Int(a))
	o.Set("b", value.Int(b))
	return o
}

// TestBuildChainMultiSortPrimaryKeyWins exercises two nested -sort-by
// stages and checks that the first-specified key (a) dominates the
// second (b): each Sort stage does its own full stable sort, so the
// first-specified key's stage must be the one whose stable pass runs
// last.
func TestBuildChainMultiSortPrimaryKeyWins(t *testing.T) {
	c := &collector{}
	chain, err := buildChain(chainOptions{
		sortBy: []string{".a", ".b"},
	})
	require.NoError(t, err)
	wireSinkless(t, chain, c)

	rows := []value.Value{obj(2, 1), obj(1, 2), obj(1, 1), obj(2, 0)}
	err = process.Run(chain, sourceFrom(rows))
	require.NoError(t, err)
	require.Len(t, c.rows, 4)

	var keys [][2]int64
	for _, r := range c.rows {
		o := r.(*value.Object)
		av, _ := o.Get("a")
		bv, _ := o.Get("b")
		keys = append(keys, [2]int64{av.(value.Number).Int64(), bv.(value.Number).Int64()})
	}
	assert.Equal(t, [][2]int64{{1, 1}, {1, 2}, {2, 0}, {2, 1}}, keys)
}
