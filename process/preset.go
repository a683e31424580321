package process

import (
	"github.com/arnodel/jsel/eval"
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

// PreSet applies a fixed set of variable and macro bindings to every
// record's context, evaluated once at construction time (the variable
// values) or bound unevaluated (the macro bodies).
type PreSet struct {
	Variables map[string]value.Value
	Macros    map[string]parser.Expression
	Next      Stage
}

func (p *PreSet) Start(titlesSoFar []string) ([]string, error) {
	return p.Next.Start(titlesSoFar)
}

func (p *PreSet) Process(ctx *eval.Context) (Signal, error) {
	out := ctx
	if len(p.Variables) > 0 {
		out = out.WithVariables(p.Variables).(*eval.Context)
	}
	if len(p.Macros) > 0 {
		out = out.WithDefinitions(p.Macros).(*eval.Context)
	}
	return p.Next.Process(out)
}

func (p *PreSet) Complete() error {
	return p.Next.Complete()
}
