package process

import (
	"github.com/arnodel/jsel/eval"
	"github.com/arnodel/jsel/value"
)

// Merge is the inverse of Split: it buffers every built record and, on
// Complete, emits a single record whose input is the array of buffered
// rows, then resets downstream titles to empty, mirroring GroupBy.
type Merge struct {
	Next Stage

	upstreamTitles []string
	rows           []value.Value
}

func (m *Merge) Start(titlesSoFar []string) ([]string, error) {
	m.upstreamTitles = titlesSoFar
	if _, err := m.Next.Start(nil); err != nil {
		return nil, err
	}
	return titlesSoFar, nil
}

func (m *Merge) Process(ctx *eval.Context) (Signal, error) {
	m.rows = append(m.rows, ctx.Build(m.upstreamTitles))
	return Continue, nil
}

func (m *Merge) Complete() error {
	synthetic := eval.New(value.NewArray(m.rows...), nil, 0)
	if _, err := m.Next.Process(synthetic); err != nil {
		return err
	}
	return m.Next.Complete()
}
