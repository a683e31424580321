package parser

import (
	"fmt"

	"github.com/arnodel/jsel/internal/scanner"
)

// lexer is a simple string-backed cursor. The selection language is small
// enough, and always supplied as a single in-memory string (a command-line
// flag value), that there is no need for the buffered byte-at-a-time
// scanner.Scanner C1 uses for file input; this package still reuses its
// character classification helpers (scanner.IsAlpha etc.) to stay
// consistent with the rest of the module.
type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

const eof = 0

func (l *lexer) peek() byte {
	if l.pos >= len(l.src) {
		return eof
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return eof
	}
	return l.src[l.pos+offset]
}

func (l *lexer) next() byte {
	b := l.peek()
	if b != eof {
		l.pos++
	}
	return b
}

func (l *lexer) skipWS() {
	for {
		switch l.peek() {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

// skipWSAndCommas skips whitespace and argument-separating commas:
// arguments are separated by any mix of whitespace or commas, zero or
// more allowed between two args.
func (l *lexer) skipWSAndCommas() {
	for {
		switch l.peek() {
		case ' ', '\t', '\n', '\r', ',':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) errorf(format string, args ...interface{}) error {
	return &ParseError{Pos: l.pos, Message: fmt.Sprintf(format, args...)}
}

// ParseError is a fatal expression-parse error: parsing always fails
// before any record flows.
type ParseError struct {
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expression parse error at offset %d: %s", e.Pos, e.Message)
}

func isIdentStart(b byte) bool {
	return scanner.IsAlpha(b)
}

func isIdentCont(b byte) bool {
	return scanner.IsAlnum(b) || b == '-'
}

// stopsExtractor reports whether b cannot belong to an identifier or index
// inside an extractor.
func stopsExtractor(b byte) bool {
	switch b {
	case eof, ' ', '\t', '\n', '\r', '.', ',', '=', '(', ')', '"', '[', ']', '{', '}', '#':
		return true
	default:
		return scanner.IsCtrl(b)
	}
}

// readIdent reads a run of identifier characters starting at the current
// position (which must already point at an identifier-start character).
func (l *lexer) readIdent() string {
	start := l.pos
	for !stopsExtractor(l.peek()) {
		l.pos++
	}
	return l.src[start:l.pos]
}

// readDigits reads a run of decimal digits.
func (l *lexer) readDigits() string {
	start := l.pos
	for scanner.IsDigit(l.peek()) {
		l.pos++
	}
	return l.src[start:l.pos]
}

// readFunctionName reads the (possibly symbolic) name of a function call,
// e.g. "get", "?", "<=", "{}", "{-}", "sort_by". It stops at whitespace,
// comma, or the closing paren.
func (l *lexer) readFunctionName() string {
	start := l.pos
	for {
		b := l.peek()
		switch b {
		case eof, ' ', '\t', '\n', '\r', ',', ')':
			return l.src[start:l.pos]
		default:
			l.pos++
		}
	}
}
