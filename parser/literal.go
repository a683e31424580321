package parser

import (
	"strconv"
	"unicode/utf8"

	"github.com/arnodel/jsel/internal/scanner"
	"github.com/arnodel/jsel/value"
)

// parseJSONLiteral parses one embedded JSON value literal. It is a small
// self-contained recursive-descent parser operating on the same in-memory
// string the rest of the selection-language lexer uses, rather than
// reusing jsonvalue.Decoder's io.Reader-oriented API.
func parseJSONLiteral(l *lexer) (value.Value, error) {
	l.skipWS()
	switch b := l.peek(); {
	case b == '"':
		s, err := parseJSONString(l)
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	case b == '[':
		return parseJSONArray(l)
	case b == '{':
		return parseJSONObject(l)
	case b == 't':
		if l.src[l.pos:min(l.pos+4, len(l.src))] == "true" {
			l.pos += 4
			return value.Bool(true), nil
		}
		return nil, l.errorf("expected 'true'")
	case b == 'f':
		if l.src[l.pos:min(l.pos+5, len(l.src))] == "false" {
			l.pos += 5
			return value.Bool(false), nil
		}
		return nil, l.errorf("expected 'false'")
	case b == 'n':
		if l.src[l.pos:min(l.pos+4, len(l.src))] == "null" {
			l.pos += 4
			return value.Nil, nil
		}
		return nil, l.errorf("expected 'null'")
	case b == '-' || scanner.IsDigit(b):
		return parseJSONNumber(l)
	default:
		return nil, l.errorf("expected a JSON literal, got %q", b)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func parseJSONString(l *lexer) (string, error) {
	l.pos++ // opening quote
	var out []byte
	for {
		b := l.next()
		switch {
		case b == eof:
			return "", l.errorf("unterminated string literal")
		case b == '"':
			return string(out), nil
		case b == '\\':
			x := l.next()
			switch x {
			case '"', '\\', '/':
				out = append(out, x)
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'u':
				if l.pos+4 > len(l.src) {
					return "", l.errorf("truncated \\u escape")
				}
				n, err := strconv.ParseInt(l.src[l.pos:l.pos+4], 16, 32)
				if err != nil {
					return "", l.errorf("invalid \\u escape")
				}
				l.pos += 4
				out = utf8.AppendRune(out, rune(n))
			default:
				return "", l.errorf("invalid escape sequence \\%c", x)
			}
		default:
			out = append(out, b)
		}
	}
}

func parseJSONArray(l *lexer) (value.Value, error) {
	l.pos++ // '['
	arr := &value.Array{}
	l.skipWS()
	if l.peek() == ']' {
		l.pos++
		return arr, nil
	}
	for {
		v, err := parseJSONLiteral(l)
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, v)
		l.skipWS()
		switch l.peek() {
		case ']':
			l.pos++
			return arr, nil
		case ',':
			l.pos++
			l.skipWS()
		default:
			return nil, l.errorf("expected ',' or ']' in array literal")
		}
	}
}

func parseJSONObject(l *lexer) (value.Value, error) {
	l.pos++ // '{'
	obj := value.NewObject()
	l.skipWS()
	if l.peek() == '}' {
		l.pos++
		return obj, nil
	}
	for {
		l.skipWS()
		if l.peek() != '"' {
			return nil, l.errorf("expected string key in object literal")
		}
		key, err := parseJSONString(l)
		if err != nil {
			return nil, err
		}
		l.skipWS()
		if l.peek() != ':' {
			return nil, l.errorf("expected ':' in object literal")
		}
		l.pos++
		v, err := parseJSONLiteral(l)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
		l.skipWS()
		switch l.peek() {
		case '}':
			l.pos++
			return obj, nil
		case ',':
			l.pos++
		default:
			return nil, l.errorf("expected ',' or '}' in object literal")
		}
	}
}

func parseJSONNumber(l *lexer) (value.Value, error) {
	start := l.pos
	if l.peek() == '-' {
		l.pos++
	}
	if l.peek() == '0' {
		l.pos++
	} else if scanner.IsDigit(l.peek()) {
		for scanner.IsDigit(l.peek()) {
			l.pos++
		}
	} else {
		return nil, l.errorf("expected digit in number literal")
	}
	if l.peek() == '.' {
		l.pos++
		if !scanner.IsDigit(l.peek()) {
			return nil, l.errorf("expected digit after '.' in number literal")
		}
		for scanner.IsDigit(l.peek()) {
			l.pos++
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		l.pos++
		if l.peek() == '+' || l.peek() == '-' {
			l.pos++
		}
		if !scanner.IsDigit(l.peek()) {
			return nil, l.errorf("expected digit in exponent")
		}
		for scanner.IsDigit(l.peek()) {
			l.pos++
		}
	}
	n, ok := value.ParseNumberBytes([]byte(l.src[start:l.pos]))
	if !ok {
		return nil, l.errorf("invalid number literal %q", l.src[start:l.pos])
	}
	return n, nil
}
