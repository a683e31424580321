package parser

import (
	"strconv"
	"strings"

	"github.com/arnodel/jsel/internal/scanner"
)

var inputContextTags = map[string]InputContextTag{
	"index":                  TagIndex,
	"index-in-file":          TagIndexInFile,
	"started-at-line-number": TagStartedAtLine,
	"started-at-char-number": TagStartedAtChar,
	"ended-at-line-number":   TagEndedAtLine,
	"ended-at-char-number":   TagEndedAtChar,
	"file-name":              TagFileName,
}

// ParseExpression parses src as a single expression with no trailing
// content, e.g. a --filter or --group-by argument.
func ParseExpression(src string) (Expression, error) {
	l := newLexer(src)
	expr, err := parseExpr(l)
	if err != nil {
		return nil, err
	}
	l.skipWS()
	if l.pos != len(l.src) {
		return nil, l.errorf("unexpected trailing content: %q", l.src[l.pos:])
	}
	return expr, nil
}

// ParseSelection parses src as a named selection, honouring the optional
// " = <name>" suffix. When the suffix is absent the name defaults to the
// expression's own textual source.
func ParseSelection(src string) (*Selection, error) {
	l := newLexer(src)
	expr, err := parseExpr(l)
	if err != nil {
		return nil, err
	}
	exprEnd := l.pos
	l.skipWS()
	var name string
	if l.peek() == '=' {
		l.pos++
		l.skipWS()
		name = strings.TrimSpace(l.src[l.pos:])
	} else if l.pos != len(l.src) {
		return nil, l.errorf("unexpected trailing content: %q", l.src[l.pos:])
	} else {
		name = strings.TrimSpace(l.src[:exprEnd])
	}
	return &Selection{Name: name, Root: expr}, nil
}

// ParseSortExpression parses a --sort-by argument, which is an expression
// optionally followed by a trailing ASC or DESC keyword (default ASC).
func ParseSortExpression(src string) (Expression, bool, error) {
	trimmed := strings.TrimRight(src, " \t")
	descending := false
	switch {
	case strings.HasSuffix(strings.ToUpper(trimmed), " DESC"):
		trimmed = strings.TrimSpace(trimmed[:len(trimmed)-len(" DESC")])
		descending = true
	case strings.HasSuffix(strings.ToUpper(trimmed), " ASC"):
		trimmed = strings.TrimSpace(trimmed[:len(trimmed)-len(" ASC")])
	}
	expr, err := ParseExpression(trimmed)
	return expr, descending, err
}

func parseExpr(l *lexer) (Expression, error) {
	l.skipWS()
	switch b := l.peek(); {
	case b == eof:
		return nil, l.errorf("unexpected end of expression")
	case b == '^' || b == '.' || b == '#':
		return parseExtractor(l)
	case b == '(':
		return parseCall(l)
	case b == ':':
		l.pos++
		if !isIdentStart(l.peek()) {
			return nil, l.errorf("expected identifier after ':'")
		}
		return VariableRef{Name: l.readIdent()}, nil
	case b == '@':
		l.pos++
		if !isIdentStart(l.peek()) {
			return nil, l.errorf("expected identifier after '@'")
		}
		return MacroRef{Name: l.readIdent()}, nil
	case b == '&':
		l.pos++
		start := l.pos
		for isIdentStart(l.peek()) || l.peek() == '-' || scanner.IsDigit(l.peek()) {
			l.pos++
		}
		tagName := l.src[start:l.pos]
		tag, ok := inputContextTags[tagName]
		if !ok {
			return nil, l.errorf("unknown input-context field %q", tagName)
		}
		return InputContextField{Tag: tag}, nil
	case b == '/':
		l.pos++
		start := l.pos
		for l.peek() != '/' && l.peek() != eof {
			l.pos++
		}
		if l.peek() != '/' {
			return nil, l.errorf("unterminated previous-selection reference")
		}
		name := l.src[start:l.pos]
		l.pos++
		return PreviousSelection{Name: name}, nil
	default:
		v, err := parseJSONLiteral(l)
		if err != nil {
			return nil, err
		}
		return Constant{Value: v}, nil
	}
}

// parseExtractor parses the '^'* ('.' ident? | '#' digits)* grammar.
func parseExtractor(l *lexer) (Expression, error) {
	depth := 0
	for l.peek() == '^' {
		depth++
		l.pos++
	}
	var path []PathStep
	sawSegment := false
	for {
		switch l.peek() {
		case '.':
			l.pos++
			sawSegment = true
			if isIdentStart(l.peek()) {
				path = append(path, PathStep{Key: l.readIdent()})
			}
		case '#':
			l.pos++
			sawSegment = true
			digits := l.readDigits()
			if digits == "" {
				return nil, l.errorf("expected digits after '#'")
			}
			idx, err := strconv.Atoi(digits)
			if err != nil {
				return nil, l.errorf("invalid index %q", digits)
			}
			path = append(path, PathStep{IsIndex: true, Index: idx})
		default:
			goto done
		}
	}
done:
	if !sawSegment && depth == 0 {
		return nil, l.errorf("expected an extractor")
	}
	if depth == 0 && len(path) == 0 {
		return Root{}, nil
	}
	return Extract{ParentDepth: depth, Path: path}, nil
}

// parseCall parses '(' [dot-prefix] name {ws expr | ',' expr} ws ')'.
func parseCall(l *lexer) (Expression, error) {
	l.pos++ // '('
	l.skipWS()
	dotPrefix := false
	if l.peek() == '.' {
		dotPrefix = true
		l.pos++
	}
	name := l.readFunctionName()
	if name == "" {
		return nil, l.errorf("expected a function name")
	}
	var args []Expression
	if dotPrefix {
		args = append(args, Root{})
	}
	for {
		l.skipWSAndCommas()
		if l.peek() == ')' {
			l.pos++
			return Call{Name: name, Args: args}, nil
		}
		if l.peek() == eof {
			return nil, l.errorf("unexpected end of expression inside call to %q", name)
		}
		arg, err := parseExpr(l)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
}
