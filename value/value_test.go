package value

import "testing"

func assertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

func assertEqual(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}

func TestNumberEqualityAcrossTags(t *testing.T) {
	cases := []Number{Uint(0), Int(0), Float(0.0)}
	for i := range cases {
		for j := range cases {
			assertTrue(t, NumbersEqual(cases[i], cases[j]), "expected numeric equality regardless of tag")
		}
	}
	assertTrue(t, !NumbersEqual(Uint(1), Uint(2)), "1 should not equal 2")
}

func TestKindOrdering(t *testing.T) {
	assertTrue(t, Compare(Nil, Bool(true)) < 0, "null should sort before boolean")
	assertTrue(t, Compare(Bool(true), String("x")) < 0, "boolean should sort before string")
	assertTrue(t, Compare(String("x"), Int(1)) < 0, "string should sort before number")
	assertTrue(t, Compare(Int(1), NewObject()) < 0, "number should sort before object")
	assertTrue(t, Compare(NewObject(), NewArray()) < 0, "object should sort before array")
}

func TestArrayCompareIsLexicographic(t *testing.T) {
	a := NewArray(Int(1), Int(2))
	b := NewArray(Int(1), Int(3))
	assertTrue(t, Less(a, b), "[1,2] should sort before [1,3]")
	assertTrue(t, Less(NewArray(Int(1)), NewArray(Int(1), Int(2))), "a prefix should sort first")
}

func TestObjectSetPreservesInsertionOrderOnReplace(t *testing.T) {
	o := NewObject()
	o.Set("a", Int(1))
	o.Set("b", Int(2))
	o.Set("a", Int(3))
	keys := o.Keys()
	assertEqual(t, len(keys), 2)
	assertTrue(t, keys[0] == "a" && keys[1] == "b", "replacing a key must not move it")
	v, ok := o.Get("a")
	assertTrue(t, ok, "a must still be present")
	assertTrue(t, Equal(v, Int(3)), "a must have been replaced, not duplicated")
}

func TestEqualIsStructural(t *testing.T) {
	a := NewArray(String("x"), NewObject())
	b := NewArray(String("x"), NewObject())
	assertTrue(t, Equal(a, b), "structurally identical arrays should be equal")
}
