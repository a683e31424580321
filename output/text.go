package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/arnodel/jsel/value"
)

// TextOptions configures TextSink's tab-separated rendering: configurable
// separator, string wrapping, keyword spellings for the
// scalar constants, a missing-value keyword, per-character escapes, and an
// optional header row.
type TextOptions struct {
	Separator      string
	StringPrefix   string
	StringSuffix   string
	NullKeyword    string
	TrueKeyword    string
	FalseKeyword   string
	MissingKeyword string
	Escapes        map[rune]string
	Header         bool
	// RowSeparator is written after each record; defaults to "\n" when empty.
	RowSeparator string
}

// DefaultTextOptions returns the conventional tab-separated defaults.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Separator:      "\t",
		NullKeyword:    "null",
		TrueKeyword:    "true",
		FalseKeyword:   "false",
		MissingKeyword: "",
		Escapes: map[rune]string{
			'\t': `\t`,
			'\n': `\n`,
			'\r': `\r`,
		},
	}
}

// TextSink writes records as one row of separator-joined cells per record.
type TextSink struct {
	Options TextOptions

	w      *bufio.Writer
	titles []string
}

// NewTextSink returns a TextSink writing to w with the given options.
func NewTextSink(w io.Writer, opts TextOptions) *TextSink {
	return &TextSink{Options: opts, w: bufio.NewWriter(w)}
}

func (s *TextSink) Start(titles []string) error {
	s.titles = titles
	if s.Options.Header && len(titles) > 0 {
		s.w.WriteString(strings.Join(titles, s.Options.Separator))
		s.w.WriteByte('\n')
	}
	return nil
}

func (s *TextSink) Write(v value.Value) error {
	cells := s.cellsFor(v)
	for i, c := range cells {
		if i > 0 {
			s.w.WriteString(s.Options.Separator)
		}
		s.w.WriteString(c)
	}
	sep := s.Options.RowSeparator
	if sep == "" {
		sep = "\n"
	}
	_, err := s.w.WriteString(sep)
	return err
}

func (s *TextSink) End() error {
	return s.w.Flush()
}

func (s *TextSink) cellsFor(v value.Value) []string {
	if len(s.titles) == 0 {
		return []string{s.cell(v)}
	}
	obj, isObj := v.(*value.Object)
	cells := make([]string, len(s.titles))
	for i, t := range s.titles {
		var item value.Value
		found := false
		if isObj {
			item, found = obj.Get(t)
		}
		if !found {
			cells[i] = s.Options.MissingKeyword
			continue
		}
		cells[i] = s.cell(item)
	}
	return cells
}

func (s *TextSink) cell(v value.Value) string {
	switch x := v.(type) {
	case nil:
		return s.Options.MissingKeyword
	case value.Null:
		return s.Options.NullKeyword
	case value.Bool:
		if x {
			return s.Options.TrueKeyword
		}
		return s.Options.FalseKeyword
	case value.String:
		return s.Options.StringPrefix + s.escape(string(x)) + s.Options.StringSuffix
	case value.Number:
		return x.String()
	default:
		return s.escape(value.CanonicalString(v))
	}
}

func (s *TextSink) escape(str string) string {
	if len(s.Options.Escapes) == 0 {
		return str
	}
	var b strings.Builder
	for _, r := range str {
		if seq, found := s.Options.Escapes[r]; found {
			b.WriteString(seq)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
