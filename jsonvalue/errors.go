package jsonvalue

import (
	"fmt"

	"github.com/arnodel/jsel/internal/scanner"
	"github.com/pkg/errors"
)

// SyntaxError is a recoverable JSON parse error: a malformed value was
// encountered but the reader can resynchronise to the next
// whitespace-delimited value and keep going.
type SyntaxError struct {
	Pos     scanner.Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at L%d,C%d: %s", e.Pos.Line+1, e.Pos.Col+1, e.Message)
}

func syntaxErrorf(scanr *scanner.Scanner, format string, args ...interface{}) error {
	return &SyntaxError{Pos: scanr.CurrentPos(), Message: fmt.Sprintf(format, args...)}
}

func unexpectedByte(scanr *scanner.Scanner, expected string, b byte, err error) error {
	if err != nil {
		return errors.Wrap(err, "reading input")
	}
	if b == scanner.EOF {
		return syntaxErrorf(scanr, "%s: <EOF>", expected)
	}
	return syntaxErrorf(scanr, "%s: %q", expected, b)
}

// IsRecoverable reports whether err is a *SyntaxError, i.e. the kind of
// error the `on-error` policy applies to. Any other error (I/O, invalid
// UTF-8) is fatal and must abort the run.
func IsRecoverable(err error) bool {
	_, ok := errors.Cause(err).(*SyntaxError)
	return ok
}
