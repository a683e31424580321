package jsonvalue

import (
	"io"
	"strings"
	"testing"

	"github.com/arnodel/jsel/value"
)

func assertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

func readAll(t *testing.T, input string) []value.Value {
	t.Helper()
	d := NewDecoder(strings.NewReader(input), "test", 0)
	var values []value.Value
	for {
		v, _, err := d.ReadValue()
		if err == io.EOF {
			return values
		}
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		values = append(values, v)
	}
}

func TestDecodeScalars(t *testing.T) {
	values := readAll(t, `true false null 1 -2.5 "hi"`)
	assertTrue(t, len(values) == 6, "expected 6 values")
	assertTrue(t, value.Equal(values[0], value.Bool(true)), "expected true")
	assertTrue(t, value.Equal(values[1], value.Bool(false)), "expected false")
	assertTrue(t, value.Equal(values[2], value.Nil), "expected null")
	assertTrue(t, value.Equal(values[3], value.Int(1)), "expected 1")
	assertTrue(t, value.Equal(values[4], value.Float(-2.5)), "expected -2.5")
	assertTrue(t, value.Equal(values[5], value.String("hi")), "expected \"hi\"")
}

func TestDecodeNestedContainers(t *testing.T) {
	values := readAll(t, `{"a":1,"b":[10,20,30]}`)
	assertTrue(t, len(values) == 1, "expected one value")
	obj, ok := values[0].(*value.Object)
	assertTrue(t, ok, "expected an object")
	a, ok := obj.Get("a")
	assertTrue(t, ok, "expected key a")
	assertTrue(t, value.Equal(a, value.Int(1)), "a should be 1")
	b, ok := obj.Get("b")
	assertTrue(t, ok, "expected key b")
	arr, ok := b.(*value.Array)
	assertTrue(t, ok, "b should be an array")
	assertTrue(t, arr.Len() == 3, "b should have 3 items")
}

func TestDuplicateKeysReplaceButKeepPosition(t *testing.T) {
	values := readAll(t, `{"a":1,"b":2,"a":3}`)
	obj := values[0].(*value.Object)
	keys := obj.Keys()
	assertTrue(t, len(keys) == 2, "expected 2 keys after dedup")
	assertTrue(t, keys[0] == "a" && keys[1] == "b", "key order should be first-appearance order")
	a, _ := obj.Get("a")
	assertTrue(t, value.Equal(a, value.Int(3)), "later duplicate should win")
}

func TestRecoverableErrorAllowsResync(t *testing.T) {
	d := NewDecoder(strings.NewReader(`@@@ 42`), "test", 0)
	_, _, err := d.ReadValue()
	assertTrue(t, err != nil && IsRecoverable(err), "expected a recoverable syntax error")
	v, _, err := d.ReadValue()
	assertTrue(t, err == nil, "expected to resynchronise to the next value")
	assertTrue(t, value.Equal(v, value.Int(42)), "expected 42 after resync")
}

func TestEmptyArrayAndObject(t *testing.T) {
	values := readAll(t, `[] {}`)
	assertTrue(t, len(values) == 2, "expected two values")
	arr := values[0].(*value.Array)
	assertTrue(t, arr.Len() == 0, "expected empty array")
	obj := values[1].(*value.Object)
	assertTrue(t, obj.Len() == 0, "expected empty object")
}

func TestSurrogatePairCombinesIntoOneRune(t *testing.T) {
	values := readAll(t, `"\uD83D\uDE00"`)
	assertTrue(t, len(values) == 1, "expected one value")
	assertTrue(t, value.Equal(values[0], value.String("\U0001F600")), "expected the combined emoji rune")
}

func TestUnpairedHighSurrogateIsRecoverableError(t *testing.T) {
	d := NewDecoder(strings.NewReader(`"\uD83D" 42`), "test", 0)
	_, _, err := d.ReadValue()
	assertTrue(t, err != nil && IsRecoverable(err), "expected a recoverable syntax error for an unpaired high surrogate")
	v, _, err := d.ReadValue()
	assertTrue(t, err == nil, "expected to resynchronise to the next value")
	assertTrue(t, value.Equal(v, value.Int(42)), "expected 42 after resync")
}

func TestUnpairedLowSurrogateIsRecoverableError(t *testing.T) {
	d := NewDecoder(strings.NewReader(`"\uDE00" 42`), "test", 0)
	_, _, err := d.ReadValue()
	assertTrue(t, err != nil && IsRecoverable(err), "expected a recoverable syntax error for an unpaired low surrogate")
	v, _, err := d.ReadValue()
	assertTrue(t, err == nil, "expected to resynchronise to the next value")
	assertTrue(t, value.Equal(v, value.Int(42)), "expected 42 after resync")
}
