package process

import (
	"github.com/arnodel/jsel/eval"
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

// GroupBy buffers every record and, on Complete, emits one synthesised
// record whose input is an Object mapping each evaluated key to the array
// of rows sharing it. It replaces downstream titles with the empty list.
type GroupBy struct {
	KeyExpr parser.Expression
	Next    Stage

	upstreamTitles []string
	keys           []string
	buckets        map[string]*value.Array
}

func (g *GroupBy) Start(titlesSoFar []string) ([]string, error) {
	g.upstreamTitles = titlesSoFar
	g.buckets = map[string]*value.Array{}
	if _, err := g.Next.Start(nil); err != nil {
		return nil, err
	}
	return titlesSoFar, nil
}

func (g *GroupBy) Process(ctx *eval.Context) (Signal, error) {
	k, ok, err := eval.Eval(g.KeyExpr, ctx)
	if err != nil {
		return Continue, err
	}
	if !ok {
		return Continue, nil
	}
	key, isStr := k.(value.String)
	keyStr := string(key)
	if !isStr {
		keyStr = value.CanonicalString(k)
	}
	row := ctx.Build(g.upstreamTitles)
	bucket, found := g.buckets[keyStr]
	if !found {
		bucket = value.NewArray()
		g.keys = append(g.keys, keyStr)
	}
	bucket.Items = append(bucket.Items, row)
	g.buckets[keyStr] = bucket
	return Continue, nil
}

func (g *GroupBy) Complete() error {
	grouped := value.NewObject()
	for _, k := range g.keys {
		grouped.Set(k, g.buckets[k])
	}
	synthetic := eval.New(grouped, nil, 0)
	if _, err := g.Next.Process(synthetic); err != nil {
		return err
	}
	return g.Next.Complete()
}
