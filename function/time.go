package function

import (
	"strings"
	"time"

	"github.com/arnodel/jsel/value"
)

func init() {
	Default.Register(Def{
		Name: "now", Group: "time",
		MinArgs: 0, MaxArgs: 0,
		Doc:   "Current time as seconds since the Unix epoch.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			return ok(value.Float(float64(nowFunc().UnixNano()) / 1e9))
		}),
	})
	Default.Register(Def{
		Name: "format_time", Group: "time",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Formats a Unix timestamp (seconds) using a strftime-like format string.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			ts, isNum := asNumber(args[0])
			format, isFmt := asString(args[1])
			if !isNum || !isFmt {
				return nil, false
			}
			sec := ts.Float64()
			t := time.Unix(int64(sec), int64((sec-float64(int64(sec)))*1e9)).UTC()
			return ok(value.String(t.Format(strftimeToGo(format))))
		}),
	})
	Default.Register(Def{
		Name: "parse_time", Group: "time",
		MinArgs: 2, MaxArgs: 2,
		Doc:   "Parses S as a time using a strftime-like format, returning seconds since the epoch (UTC).",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			s, isStr := asString(args[0])
			format, isFmt := asString(args[1])
			if !isStr || !isFmt {
				return nil, false
			}
			t, err := time.Parse(strftimeToGo(format), s)
			if err != nil {
				return nil, false
			}
			return ok(value.Float(float64(t.UnixNano()) / 1e9))
		}),
	})
	Default.Register(Def{
		Name: "parse_time_with_zone", Group: "time",
		MinArgs: 3, MaxArgs: 3,
		Doc:   "Like parse_time, but interprets S in the named IANA time zone.",
		Build: simple(func(args []value.Value) (value.Value, bool) {
			s, isStr := asString(args[0])
			format, isFmt := asString(args[1])
			zoneName, isZone := asString(args[2])
			if !isStr || !isFmt || !isZone {
				return nil, false
			}
			loc, err := time.LoadLocation(zoneName)
			if err != nil {
				return nil, false
			}
			t, err := time.ParseInLocation(strftimeToGo(format), s, loc)
			if err != nil {
				return nil, false
			}
			return ok(value.Float(float64(t.UnixNano()) / 1e9))
		}),
	})
}

// nowFunc is overridden in tests to avoid depending on wall-clock time.
var nowFunc = time.Now

// strftimeToGo translates a small, documented subset of strftime directives
// into a Go reference-time layout string.
func strftimeToGo(format string) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.WriteByte(c)
			continue
		}
		i++
		switch format[i] {
		case 'Y':
			b.WriteString("2006")
		case 'y':
			b.WriteString("06")
		case 'm':
			b.WriteString("01")
		case 'd':
			b.WriteString("02")
		case 'H':
			b.WriteString("15")
		case 'M':
			b.WriteString("04")
		case 'S':
			b.WriteString("05")
		case 'z':
			b.WriteString("-0700")
		case 'Z':
			b.WriteString("MST")
		case 'b':
			b.WriteString("Jan")
		case 'B':
			b.WriteString("January")
		case 'a':
			b.WriteString("Mon")
		case 'A':
			b.WriteString("Monday")
		case 'p':
			b.WriteString("PM")
		case 'I':
			b.WriteString("03")
		case 'T':
			b.WriteString("15:04:05")
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteByte(format[i])
		}
	}
	return b.String()
}
