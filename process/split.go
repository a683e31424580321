package process

import (
	"fmt"

	"github.com/arnodel/jsel/eval"
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

// Split evaluates an expression that must yield an Array and forwards one
// child record per element, each with that element as its input.
type Split struct {
	Expr parser.Expression
	Next Stage
}

func (s *Split) Start(titlesSoFar []string) ([]string, error) {
	return s.Next.Start(titlesSoFar)
}

func (s *Split) Process(ctx *eval.Context) (Signal, error) {
	v, ok, err := eval.Eval(s.Expr, ctx)
	if err != nil {
		return Continue, err
	}
	if !ok {
		return Continue, nil
	}
	arr, isArr := v.(*value.Array)
	if !isArr {
		return Continue, nil
	}
	for _, item := range arr.Items {
		child := ctx.WithInputValue(item)
		signal, err := s.Next.Process(child)
		if err != nil {
			return Continue, fmt.Errorf("split: %w", err)
		}
		if signal == Break {
			return Break, nil
		}
	}
	return Continue, nil
}

func (s *Split) Complete() error {
	return s.Next.Complete()
}
