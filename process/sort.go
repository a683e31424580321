package process

import (
	"sort"

	"github.com/arnodel/jsel/eval"
	"github.com/arnodel/jsel/parser"
	"github.com/arnodel/jsel/value"
)

// Sort buffers every record and, on Complete, drains them downstream in
// key order, honouring Descending, and preserving input order within equal
// keys (a stable sort).
type Sort struct {
	KeyExpr    parser.Expression
	Descending bool
	Next       Stage

	rows []sortRow
}

type sortRow struct {
	key value.Value
	ctx *eval.Context
}

func (s *Sort) Start(titlesSoFar []string) ([]string, error) {
	return s.Next.Start(titlesSoFar)
}

func (s *Sort) Process(ctx *eval.Context) (Signal, error) {
	k, ok, err := eval.Eval(s.KeyExpr, ctx)
	if err != nil {
		return Continue, err
	}
	if !ok {
		return Continue, nil
	}
	s.rows = append(s.rows, sortRow{key: k, ctx: ctx})
	return Continue, nil
}

func (s *Sort) Complete() error {
	sort.SliceStable(s.rows, func(i, j int) bool {
		less := value.Less(s.rows[i].key, s.rows[j].key)
		if s.Descending {
			return value.Less(s.rows[j].key, s.rows[i].key)
		}
		return less
	})
	for _, r := range s.rows {
		signal, err := s.Next.Process(r.ctx)
		if err != nil {
			return err
		}
		if signal == Break {
			break
		}
	}
	return s.Next.Complete()
}
