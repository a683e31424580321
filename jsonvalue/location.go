package jsonvalue

import "github.com/arnodel/jsel/internal/scanner"

// Location is a single point in a named input, used for diagnostics and
// attached to parsed values so expressions like &started-at-line-number can
// read it back. Line and Col are 1-based for human-facing output.
type Location struct {
	SourceName string
	Line, Col  int
}

func locationFromPos(sourceName string, pos scanner.Position) Location {
	return Location{SourceName: sourceName, Line: pos.Line + 1, Col: pos.Col + 1}
}

// InputContext is the source-position metadata the decoder attaches to
// each parsed top-level value.
type InputContext struct {
	Start, End          Location
	FileIndex           int
	GlobalIndex         int
	IndexInFile         int
}
