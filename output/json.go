package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/arnodel/jsel/value"
)

// JSONStyle selects one of the three rendering styles: one-line, concise,
// or pretty.
type JSONStyle int

const (
	// OneLine writes one JSON value per line with spaces after separators.
	OneLine JSONStyle = iota
	// Concise writes one JSON value per line with no extra spaces.
	Concise
	// Pretty writes each value with two-space indentation across lines.
	Pretty
)

// Colorizer supplies ANSI escape sequences for JSONSink's pretty/concise
// output: one code per scalar kind plus one for object keys.
type Colorizer struct {
	NullColor, BoolColor, NumberColor, StringColor []byte
	KeyColor                                       []byte
	Reset                                           []byte
}

func (c *Colorizer) scalarColor(v value.Value) []byte {
	switch v.(type) {
	case value.Null:
		return c.NullColor
	case value.Bool:
		return c.BoolColor
	case value.Number:
		return c.NumberColor
	case value.String:
		return c.StringColor
	default:
		return nil
	}
}

// JSONSink writes one JSON value per record to w.
type JSONSink struct {
	Style     JSONStyle
	UTF8      bool
	Colorizer *Colorizer
	// RowSeparator is written after each record; defaults to "\n" when empty.
	RowSeparator string
	w            *bufio.Writer
}

// NewJSONSink returns a JSONSink writing to w.
func NewJSONSink(w io.Writer, style JSONStyle, utf8 bool) *JSONSink {
	return &JSONSink{Style: style, UTF8: utf8, w: bufio.NewWriter(w)}
}

func (s *JSONSink) Start(titles []string) error {
	return nil
}

func (s *JSONSink) Write(v value.Value) error {
	switch s.Style {
	case Pretty:
		s.writePretty(v, 0)
	default:
		s.writeFlat(v)
	}
	_, err := s.w.WriteString(s.rowSeparator())
	return err
}

func (s *JSONSink) rowSeparator() string {
	if s.RowSeparator == "" {
		return "\n"
	}
	return s.RowSeparator
}

func (s *JSONSink) End() error {
	return s.w.Flush()
}

func (s *JSONSink) sep() string {
	if s.Style == OneLine {
		return ", "
	}
	return ","
}

func (s *JSONSink) colon() string {
	if s.Style == OneLine {
		return ": "
	}
	return ":"
}

func (s *JSONSink) writeFlat(v value.Value) {
	switch x := v.(type) {
	case value.Null:
		s.writeColored(v, "null")
	case value.Bool:
		if x {
			s.writeColored(v, "true")
		} else {
			s.writeColored(v, "false")
		}
	case value.String:
		s.writeColoredString(string(x))
	case value.Number:
		s.writeColored(v, x.String())
	case *value.Array:
		s.w.WriteByte('[')
		for i, item := range x.Items {
			if i > 0 {
				s.w.WriteString(s.sep())
			}
			s.writeFlat(item)
		}
		s.w.WriteByte(']')
	case *value.Object:
		s.w.WriteByte('{')
		for i, k := range x.Keys() {
			if i > 0 {
				s.w.WriteString(s.sep())
			}
			s.writeColoredKey(k)
			s.w.WriteString(s.colon())
			item, _ := x.Get(k)
			s.writeFlat(item)
		}
		s.w.WriteByte('}')
	}
}

func (s *JSONSink) writePretty(v value.Value, depth int) {
	switch x := v.(type) {
	case *value.Array:
		if x.Len() == 0 {
			s.w.WriteString("[]")
			return
		}
		s.w.WriteString("[\n")
		for i, item := range x.Items {
			writeIndent(s.w, depth+1)
			s.writePretty(item, depth+1)
			if i < x.Len()-1 {
				s.w.WriteByte(',')
			}
			s.w.WriteByte('\n')
		}
		writeIndent(s.w, depth)
		s.w.WriteByte(']')
	case *value.Object:
		keys := x.Keys()
		if len(keys) == 0 {
			s.w.WriteString("{}")
			return
		}
		s.w.WriteString("{\n")
		for i, k := range keys {
			writeIndent(s.w, depth+1)
			s.writeColoredKey(k)
			s.w.WriteString(": ")
			item, _ := x.Get(k)
			s.writePretty(item, depth+1)
			if i < len(keys)-1 {
				s.w.WriteByte(',')
			}
			s.w.WriteByte('\n')
		}
		writeIndent(s.w, depth)
		s.w.WriteByte('}')
	default:
		s.writeFlat(v)
	}
}

func writeIndent(w *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString("  ")
	}
}

func (s *JSONSink) writeColored(v value.Value, literal string) {
	c := s.Colorizer
	if c == nil {
		s.w.WriteString(literal)
		return
	}
	s.w.Write(c.scalarColor(v))
	s.w.WriteString(literal)
	s.w.Write(c.Reset)
}

func (s *JSONSink) writeColoredString(str string) {
	c := s.Colorizer
	if c == nil {
		s.writeString(str)
		return
	}
	s.w.Write(c.StringColor)
	s.writeString(str)
	s.w.Write(c.Reset)
}

func (s *JSONSink) writeColoredKey(key string) {
	c := s.Colorizer
	if c == nil {
		s.writeString(key)
		return
	}
	s.w.Write(c.KeyColor)
	s.writeString(key)
	s.w.Write(c.Reset)
}

func (s *JSONSink) writeString(str string) {
	s.w.WriteByte('"')
	for _, r := range str {
		switch r {
		case '"':
			s.w.WriteString(`\"`)
		case '\\':
			s.w.WriteString(`\\`)
		case '\n':
			s.w.WriteString(`\n`)
		case '\r':
			s.w.WriteString(`\r`)
		case '\t':
			s.w.WriteString(`\t`)
		default:
			switch {
			case r < 0x20:
				fmt.Fprintf(s.w, `\u%04x`, r)
			case r > 0x7e && !s.UTF8:
				if r > 0xffff {
					r1, r2 := utf16Pair(r)
					fmt.Fprintf(s.w, `\u%04x\u%04x`, r1, r2)
				} else {
					fmt.Fprintf(s.w, `\u%04x`, r)
				}
			default:
				s.w.WriteRune(r)
			}
		}
	}
	s.w.WriteByte('"')
}

func utf16Pair(r rune) (rune, rune) {
	r -= 0x10000
	return 0xd800 + (r >> 10), 0xdc00 + (r & 0x3ff)
}
