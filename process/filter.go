package process

import (
	"github.com/arnodel/jsel/eval"
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

// Filter forwards a record iff its predicate evaluates to true; any other
// result, including nothing, drops the record.
type Filter struct {
	Predicate parser.Expression
	Next      Stage
}

func (f *Filter) Start(titlesSoFar []string) ([]string, error) {
	return f.Next.Start(titlesSoFar)
}

func (f *Filter) Process(ctx *eval.Context) (Signal, error) {
	v, ok, err := eval.Eval(f.Predicate, ctx)
	if err != nil {
		return Continue, err
	}
	if !ok {
		return Continue, nil
	}
	if b, isBool := value.AsBool(v); !isBool || !b {
		return Continue, nil
	}
	return f.Next.Process(ctx)
}

func (f *Filter) Complete() error {
	return f.Next.Complete()
}
