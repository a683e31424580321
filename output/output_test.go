package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arnodel/jsel/value"
)

func assertTrue(t *testing.T, cond bool, msg string) {
	t.Helper()
	if !cond {
		t.Error(msg)
	}
}

func TestJSONOneLineStyle(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf, OneLine, false)
	obj := value.NewObject()
	obj.Set("a", value.Int(1))
	obj.Set("b", value.String("x"))
	assertTrue(t, sink.Start(nil) == nil, "expected Start to succeed")
	assertTrue(t, sink.Write(obj) == nil, "expected Write to succeed")
	assertTrue(t, sink.End() == nil, "expected End to succeed")
	assertTrue(t, buf.String() == `{"a": 1, "b": "x"}`+"\n", "unexpected output: "+buf.String())
}

func TestJSONConciseStyle(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf, Concise, false)
	arr := value.NewArray(value.Int(1), value.Int(2))
	sink.Start(nil)
	sink.Write(arr)
	sink.End()
	assertTrue(t, buf.String() == "[1,2]\n", "unexpected output: "+buf.String())
}

func TestJSONPrettyStyle(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf, Pretty, false)
	arr := value.NewArray(value.Int(1), value.Int(2))
	sink.Start(nil)
	sink.Write(arr)
	sink.End()
	assertTrue(t, buf.String() == "[\n  1,\n  2\n]\n", "unexpected output: "+buf.String())
}

func TestJSONNonASCIIEscaping(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf, Concise, false)
	sink.Start(nil)
	sink.Write(value.String("é"))
	sink.End()
	assertTrue(t, strings.Contains(buf.String(), "\\u00e9"), "expected \\u00e9 escape, got "+buf.String())
	assertTrue(t, !strings.Contains(buf.String(), "é"), "expected no literal UTF-8 byte, got "+buf.String())
}

func TestJSONUTF8Mode(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf, Concise, true)
	sink.Start(nil)
	sink.Write(value.String("é"))
	sink.End()
	assertTrue(t, strings.Contains(buf.String(), "é"), "expected literal UTF-8, got "+buf.String())
}

func TestCSVRequiresTitles(t *testing.T) {
	var buf bytes.Buffer
	sink := NewCSVSink(&buf)
	assertTrue(t, sink.Start(nil) != nil, "expected an error for empty titles")
}

func TestCSVWritesColumnsInTitleOrder(t *testing.T) {
	var buf bytes.Buffer
	sink := NewCSVSink(&buf)
	obj := value.NewObject()
	obj.Set("b", value.Int(2))
	obj.Set("a", value.Int(1))
	sink.Start([]string{"a", "b"})
	sink.Write(obj)
	sink.End()
	assertTrue(t, strings.Contains(buf.String(), "a,b\n1,2\n"), "unexpected CSV: "+buf.String())
}

func TestTextSinkDefaultTabSeparated(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultTextOptions()
	opts.Header = true
	sink := NewTextSink(&buf, opts)
	obj := value.NewObject()
	obj.Set("a", value.Int(1))
	obj.Set("b", value.Bool(true))
	sink.Start([]string{"a", "b"})
	sink.Write(obj)
	sink.End()
	assertTrue(t, buf.String() == "a\tb\n1\ttrue\n", "unexpected output: "+buf.String())
}

func TestTextSinkMissingValueKeyword(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultTextOptions()
	opts.MissingKeyword = "-"
	sink := NewTextSink(&buf, opts)
	obj := value.NewObject()
	obj.Set("a", value.Int(1))
	sink.Start([]string{"a", "b"})
	sink.Write(obj)
	sink.End()
	assertTrue(t, buf.String() == "1\t-\n", "unexpected output: "+buf.String())
}
