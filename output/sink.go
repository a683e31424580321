// Package output implements the output sinks (C8): the three terminal
// record formats a pipeline can write to, each wired as a process.Stage so
// it composes with the rest of the process graph like any other stage.
package output

import (
	"fmt"

	"github.com/arnodel/jsel/eval"
	"github.com/arnodel/jsel/process"
	"github.com/arnodel/jsel/value"
)

// Sink is a terminal record writer.
type Sink interface {
	// Start validates titles (e.g. CSV requires non-empty titles) and
	// writes any leading output (e.g. a CSV/text header row).
	Start(titles []string) error
	// Write renders one built record.
	Write(v value.Value) error
	// End flushes any buffered output.
	End() error
}

// Stage adapts a Sink to process.Stage, terminating a process graph.
type Stage struct {
	Sink   Sink
	titles []string
}

func (s *Stage) Start(titlesSoFar []string) ([]string, error) {
	s.titles = titlesSoFar
	if err := s.Sink.Start(titlesSoFar); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	return titlesSoFar, nil
}

func (s *Stage) Process(ctx *eval.Context) (process.Signal, error) {
	row := ctx.Build(s.titles)
	if err := s.Sink.Write(row); err != nil {
		return process.Continue, fmt.Errorf("output: %w", err)
	}
	return process.Continue, nil
}

func (s *Stage) Complete() error {
	return s.Sink.End()
}

var _ process.Stage = (*Stage)(nil)
