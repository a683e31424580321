package function

import "github.com/arnodel/jsel/value"

// stringifyValue renders v as compact JSON text, used by the "stringify"
// function and by CSV/text output sinks for composite cell values.
func stringifyValue(v value.Value) string {
	return value.CanonicalString(v)
}
