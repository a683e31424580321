package process

import (
	"github.com/arnodel/jsel/eval"
	"github.com/arnodel/jsel/parser"
)

// Projection is one named expression in a Select's projection list.
type Projection struct {
	Name string
	Expr parser.Expression
}

// Select evaluates a list of named projections against each record and
// forwards a context carrying one recorded result per projection.
type Select struct {
	Projections []Projection
	Next        Stage
}

func (s *Select) Start(titlesSoFar []string) ([]string, error) {
	titles := titlesSoFar
	for _, p := range s.Projections {
		titles = append(titles, p.Name)
	}
	return s.Next.Start(titles)
}

func (s *Select) Process(ctx *eval.Context) (Signal, error) {
	out := ctx
	for _, p := range s.Projections {
		v, ok, err := eval.Eval(p.Expr, out)
		if err != nil {
			return Continue, err
		}
		out = out.WithResult(p.Name, v, ok)
	}
	return s.Next.Process(out)
}

func (s *Select) Complete() error {
	return s.Next.Complete()
}
