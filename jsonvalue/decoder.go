// Package jsonvalue implements the incremental JSON parser (C2) on top of
// the byte-level reader in internal/scanner (C1): it turns a byte stream into a sequence of
// value.Value trees, one per top-level JSON document, with source-position
// metadata attached to each.
package jsonvalue

import (
	"io"
	"unicode/utf8"

	"github.com/arnodel/jsel/internal/scanner"
	"github.com/arnodel/jsel/value"
	"github.com/pkg/errors"
)

// A Decoder reads a concatenation of JSON values from a single named
// source, separated by arbitrary whitespace.
type Decoder struct {
	scanr       *scanner.Scanner
	sourceName  string
	fileIndex   int
	indexInFile int
}

// NewDecoder sets up a Decoder reading from in. sourceName is attached to
// every Location this Decoder produces (e.g. a file path, or "" for
// stdin); fileIndex is this source's position among the files given on the
// command line.
func NewDecoder(in io.Reader, sourceName string, fileIndex int) *Decoder {
	return &Decoder{scanr: scanner.NewScanner(in), sourceName: sourceName, fileIndex: fileIndex}
}

// ReadValue reads the next top-level JSON value. It returns io.EOF (with a
// nil value) once the source is exhausted. A *SyntaxError is recoverable:
// the Decoder has already resynchronised to the next value boundary and a
// subsequent call to ReadValue can continue. Any other error is fatal.
func (d *Decoder) ReadValue() (value.Value, *InputContext, error) {
	b, err := d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading input")
	}
	if b == scanner.EOF {
		return nil, nil, io.EOF
	}
	startPos := d.scanr.CurrentPos()
	v, err := d.parseValue()
	if err != nil {
		if se, ok := err.(*SyntaxError); ok {
			d.resync()
			err = se
		}
		return nil, nil, err
	}
	endPos := d.scanr.CurrentPos()
	ctx := &InputContext{
		Start:       locationFromPos(d.sourceName, startPos),
		End:         locationFromPos(d.sourceName, endPos),
		FileIndex:   d.fileIndex,
		IndexInFile: d.indexInFile,
	}
	d.indexInFile++
	return v, ctx, nil
}

// resync skips bytes up to and including the next run of whitespace, so
// that a subsequent ReadValue call starts at (what is hopefully) the next
// value boundary.
func (d *Decoder) resync() {
	for {
		b, err := d.scanr.Read()
		if err != nil || b == scanner.EOF {
			return
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			d.scanr.SkipSpaceAndPeek()
			return
		}
	}
}

func (d *Decoder) parseValue() (value.Value, error) {
	b, err := d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	switch b {
	case scanner.EOF:
		return nil, syntaxErrorf(d.scanr, "unexpected end of input")
	case '"':
		d.scanr.Read()
		s, err := d.parseStringBody()
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	case '[':
		return d.parseArray()
	case '{':
		return d.parseObject()
	case 't':
		return value.Bool(true), d.expectWord("true")
	case 'f':
		return value.Bool(false), d.expectWord("false")
	case 'n':
		return value.Nil, d.expectWord("null")
	default:
		if b == '-' || b >= '0' && b <= '9' {
			return d.parseNumber()
		}
		d.scanr.Read()
		return nil, unexpectedByte(d.scanr, "invalid value", b, nil)
	}
}

func (d *Decoder) expectWord(word string) error {
	for i := 0; i < len(word); i++ {
		b, err := d.scanr.Read()
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
		if b != word[i] {
			return unexpectedByte(d.scanr, "expected "+word, b, nil)
		}
	}
	return nil
}

func (d *Decoder) parseArray() (value.Value, error) {
	d.scanr.Read() // '['
	arr := &value.Array{}
	b, err := d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	if b == ']' {
		d.scanr.Read()
		return arr, nil
	}
	for {
		item, err := d.parseValue()
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, item)
		b, err = d.scanr.SkipSpaceAndPeek()
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
		switch b {
		case ']':
			d.scanr.Read()
			return arr, nil
		case ',':
			d.scanr.Read()
		default:
			d.scanr.Read()
			return nil, unexpectedByte(d.scanr, "expected ']' or ','", b, nil)
		}
	}
}

func (d *Decoder) parseObject() (value.Value, error) {
	d.scanr.Read() // '{'
	obj := value.NewObject()
	b, err := d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	if b == '}' {
		d.scanr.Read()
		return obj, nil
	}
	for {
		b, err = d.scanr.SkipSpaceAndPeek()
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
		if b != '"' {
			d.scanr.Read()
			return nil, unexpectedByte(d.scanr, "expected object key", b, nil)
		}
		d.scanr.Read()
		key, err := d.parseStringBody()
		if err != nil {
			return nil, err
		}
		b, err = d.scanr.SkipSpaceAndPeek()
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
		if b != ':' {
			d.scanr.Read()
			return nil, unexpectedByte(d.scanr, "expected ':'", b, nil)
		}
		d.scanr.Read()
		val, err := d.parseValue()
		if err != nil {
			return nil, err
		}
		// Duplicate keys: the later one replaces the earlier one but keeps
		// its position.
		obj.Set(key, val)
		b, err = d.scanr.SkipSpaceAndPeek()
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
		switch b {
		case '}':
			d.scanr.Read()
			return obj, nil
		case ',':
			d.scanr.Read()
		default:
			d.scanr.Read()
			return nil, unexpectedByte(d.scanr, "expected '}' or ','", b, nil)
		}
	}
}

// parseStringBody parses a JSON string after the opening quote has already
// been consumed, decoding standard JSON escape sequences. A \uXXXX escape
// in the high-surrogate range requires an immediately following \uXXXX low
// surrogate; the two combine into one rune. An unpaired surrogate is a
// syntax error, not a replacement character.
func (d *Decoder) parseStringBody() (string, error) {
	var out []byte
	for {
		b, err := d.scanr.Read()
		if err != nil {
			return "", errors.Wrap(err, "reading input")
		}
		switch {
		case b == '"':
			if !utf8.Valid(out) {
				return "", errors.New("invalid UTF-8 in string literal")
			}
			return string(out), nil
		case b == '\\':
			x, err := d.scanr.Read()
			if err != nil {
				return "", errors.Wrap(err, "reading input")
			}
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
				r, err := d.readHex4()
				if err != nil {
					return "", err
				}
				switch {
				case r >= 0xd800 && r <= 0xdbff:
					lo, err := d.readLowSurrogate()
					if err != nil {
						return "", err
					}
					combined := 0x10000 + (r-0xd800)<<10 + (lo - 0xdc00)
					out = utf8.AppendRune(out, rune(combined))
				case r >= 0xdc00 && r <= 0xdfff:
					return "", syntaxErrorf(d.scanr, "unpaired low surrogate escape \\u%04x", r)
				default:
					out = utf8.AppendRune(out, rune(r))
				}
			default:
				return "", unexpectedByte(d.scanr, "invalid escape sequence", x, nil)
			}
		case scanner.IsCtrl(b):
			return "", unexpectedByte(d.scanr, "invalid control character in string", b, nil)
		default:
			out = append(out, b)
		}
	}
}

func (d *Decoder) readHex4() (int, error) {
	n := 0
	for i := 0; i < 4; i++ {
		b, err := d.scanr.Read()
		if err != nil {
			return 0, errors.Wrap(err, "reading input")
		}
		var digit int
		switch {
		case b >= '0' && b <= '9':
			digit = int(b - '0')
		case b >= 'a' && b <= 'f':
			digit = int(b-'a') + 10
		case b >= 'A' && b <= 'F':
			digit = int(b-'A') + 10
		default:
			return 0, unexpectedByte(d.scanr, "expected hex digit", b, nil)
		}
		n = n<<4 | digit
	}
	return n, nil
}

// readLowSurrogate reads the "\uXXXX" expected immediately after a
// high-surrogate escape and validates it falls in the low-surrogate range.
func (d *Decoder) readLowSurrogate() (int, error) {
	b, err := d.scanr.Read()
	if err != nil {
		return 0, errors.Wrap(err, "reading input")
	}
	if b != '\\' {
		d.scanr.Back()
		return 0, syntaxErrorf(d.scanr, "unpaired high surrogate: expected a following \\u low surrogate")
	}
	x, err := d.scanr.Read()
	if err != nil {
		return 0, errors.Wrap(err, "reading input")
	}
	if x != 'u' {
		return 0, syntaxErrorf(d.scanr, "unpaired high surrogate: expected a following \\u low surrogate")
	}
	lo, err := d.readHex4()
	if err != nil {
		return 0, err
	}
	if lo < 0xdc00 || lo > 0xdfff {
		return 0, syntaxErrorf(d.scanr, "invalid low surrogate escape \\u%04x", lo)
	}
	return lo, nil
}

func (d *Decoder) parseNumber() (value.Value, error) {
	d.scanr.StartToken()
	b, err := d.scanr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	if b == '-' {
		b, err = d.scanr.Read()
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
	}
	switch {
	case b == '0':
		b, err = d.scanr.Read()
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
	case b >= '1' && b <= '9':
		b, _, err = d.readDigits(b)
		if err != nil {
			return nil, err
		}
	default:
		return nil, unexpectedByte(d.scanr, "expected digit", b, nil)
	}
	if b == '.' {
		b, err = d.scanr.Read()
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
		var n int
		b, n, err = d.readDigits(b)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, unexpectedByte(d.scanr, "expected digit after '.'", b, nil)
		}
	}
	if b == 'e' || b == 'E' {
		b, err = d.scanr.Read()
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
		if b == '-' || b == '+' {
			b, err = d.scanr.Read()
			if err != nil {
				return nil, errors.Wrap(err, "reading input")
			}
		}
		var n int
		_, n, err = d.readDigits(b)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, unexpectedByte(d.scanr, "expected digit in exponent", b, nil)
		}
	}
	d.scanr.Back()
	tok := d.scanr.EndToken()
	n, ok := value.ParseNumberBytes(tok)
	if !ok {
		return nil, syntaxErrorf(d.scanr, "invalid number literal %q", tok)
	}
	return n, nil
}

func (d *Decoder) readDigits(first byte) (byte, int, error) {
	b := first
	n := 0
	for scanner.IsDigit(b) {
		n++
		next, err := d.scanr.Read()
		if err != nil {
			return 0, 0, errors.Wrap(err, "reading input")
		}
		b = next
	}
	return b, n, nil
}
