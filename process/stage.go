// Package process implements the process graph (C7): a chain of Stages
// wired output-innermost, each buffering or passing through records as
// they flow from a source down to an output sink.
package process

import "github.com/arnodel/jsel/eval"

// Signal is a stage's verdict on whether upstream should keep feeding it
// records.
type Signal int

const (
	// Continue asks upstream to keep sending records.
	Continue Signal = iota
	// Break asks upstream to stop; complete() still runs afterwards.
	Break
)

// Stage is the interface every node of the process graph implements.
type Stage interface {
	// Start is called once, top-down, before any records flow. titlesSoFar
	// is the list of column titles accumulated by stages upstream of this
	// one; a Stage that adds columns (Select) returns the extended list.
	Start(titlesSoFar []string) ([]string, error)
	// Process handles one record's context.
	Process(ctx *eval.Context) (Signal, error)
	// Complete is called once, top-down, when input is exhausted or a
	// downstream stage returned Break.
	Complete() error
}
