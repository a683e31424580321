package output

import (
	"encoding/csv"
	"errors"
	"io"

	"github.com/arnodel/jsel/value"
)

// CSVSink writes records as CSV rows, column order matching titles.
// Composite values (arrays, objects) are compacted to JSON text and then
// string-escaped like any other cell; titles must be non-empty, checked
// in Start.
type CSVSink struct {
	writer *csv.Writer
	titles []string
}

// NewCSVSink returns a CSVSink writing to w.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{writer: csv.NewWriter(w)}
}

func (s *CSVSink) Start(titles []string) error {
	if len(titles) == 0 {
		return errors.New("csv output requires at least one named selection")
	}
	s.titles = titles
	return s.writer.Write(titles)
}

func (s *CSVSink) Write(v value.Value) error {
	obj, isObj := v.(*value.Object)
	row := make([]string, len(s.titles))
	for i, t := range s.titles {
		var cell value.Value
		if isObj {
			cell, _ = obj.Get(t)
		}
		row[i] = cellToString(cell)
	}
	return s.writer.Write(row)
}

func (s *CSVSink) End() error {
	s.writer.Flush()
	return s.writer.Error()
}

func cellToString(v value.Value) string {
	switch x := v.(type) {
	case nil, value.Null:
		return ""
	case value.Bool:
		if x {
			return "true"
		}
		return "false"
	case value.String:
		return string(x)
	case value.Number:
		return x.String()
	default:
		return value.CanonicalString(v)
	}
}
