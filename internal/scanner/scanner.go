// Package scanner implements the byte-level cursor (C1) that the JSON
// decoder (jsonvalue) reads from: a buffered reader with line/column
// tracking, one-step lookahead, and token recording, so the decoder can
// report source-accurate diagnostics without managing its own buffer. The
// selection-language lexer (parser) uses only the helpers in charutil.go.
package scanner

import (
	"io"
	"slices"
)

// Position is a line/column coordinate into a Scanner's source, 0-based.
// jsonvalue adds 1 when it turns one into a user-facing Location.
type Position struct {
	Line int
	Col  int
}

// Scanner is a single-pass, buffered cursor over a byte stream. It
// supports one byte of pushback (Back), a current-token recording mode
// (StartToken/EndToken) for carving out number and string literals, and
// whitespace-skipping reads for the JSON grammar, which treats ' ', '\t',
// '\n', '\r' as insignificant between tokens.
type Scanner struct {
	src io.Reader
	buf []byte

	// The first unfilled position in buf.
	// 0 <= readLimit <= len(buf)
	readLimit int

	// Current position in buf.
	// 0 <= cursor <= readLimit
	cursor int

	// Line/column of the current and previous cursor position.
	pos, lastPos Position

	// Position in buf of the token currently being recorded.
	// -1 means no token is being recorded.
	// 0 means some of the token's bytes may no longer be in buf.
	// tokenStart <= cursor
	tokenStart int

	// Chunks of the current token that have already been evicted from buf.
	tokenChunks [][]byte

	rerr error

	// Counts how many times EOF has been read in a row, so Back() still
	// works immediately after the stream has been exhausted.
	eofSeen int
}

func NewScanner(src io.Reader) *Scanner {
	return NewScannerSize(src, defaultBufSize)
}

func NewScannerSize(src io.Reader, size int) *Scanner {
	return &Scanner{
		src:        src,
		buf:        make([]byte, size),
		tokenStart: -1,
		lastPos:    Position{Line: -1},
	}
}

func (s *Scanner) fillBuf() {
	if s.readLimit == len(s.buf) {
		var baseIndex int
		// If a token is being recorded, shift the buffer so the token
		// stays wholly within it.
		if s.tokenStart > 0 {
			baseIndex = s.tokenStart
			s.tokenStart = 0
		} else if s.cursor >= lookBackSize {
			baseIndex = s.cursor - lookBackSize
			if s.tokenStart >= 0 {
				// At this point s.tokenStart is 0.
				newChunk := make([]byte, baseIndex)
				copy(newChunk, s.buf)
				s.tokenChunks = append(s.tokenChunks, newChunk)
			}
		}
		if baseIndex > 0 {
			copy(s.buf, s.buf[baseIndex:s.readLimit])
			s.readLimit -= baseIndex
			s.cursor -= baseIndex
		}
	}
	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := s.src.Read(s.buf[s.readLimit:])
		s.readLimit += n
		if err != nil {
			s.rerr = err
			return
		}
		if n > 0 {
			return
		}
	}
	s.rerr = io.ErrNoProgress
}

// Read returns the next byte, or EOF once the source is exhausted.
func (s *Scanner) Read() (byte, error) {
	if s.cursor >= s.readLimit {
		s.fillBuf()
	}
	if s.cursor < s.readLimit {
		b := s.buf[s.cursor]
		s.lastPos = s.pos
		switch {
		case b == '\n':
			s.pos.Line++
			s.pos.Col = 0
		case b < 0xC0:
			// Last byte of a UTF-8 encoded code point.
			s.pos.Col++
		}
		s.cursor++
		return b, nil
	}
	if s.rerr == io.EOF {
		s.eofSeen++
		return EOF, nil
	}
	return 0, s.rerr
}

// StartToken begins recording a token at the current position, returning
// that position for later diagnostics (e.g. "string literal starting at
// L3,C9").
func (s *Scanner) StartToken() Position {
	if s.tokenStart >= 0 {
		panic("already in record mode")
	}
	s.tokenStart = s.cursor
	return s.pos
}

func (s *Scanner) CurrentPos() Position {
	return s.pos
}

// EndToken stops recording and returns the bytes read since StartToken.
func (s *Scanner) EndToken() []byte {
	if s.tokenStart < 0 {
		panic("not in record mode")
	}
	if s.tokenChunks == nil {
		tok := slices.Clone(s.buf[s.tokenStart:s.cursor])
		s.tokenStart = -1
		return tok
	}
	tokLen := s.cursor - s.tokenStart
	for _, c := range s.tokenChunks {
		tokLen += len(c)
	}
	tok := make([]byte, 0, tokLen)
	for _, c := range s.tokenChunks {
		tok = append(tok, c...)
	}
	tok = append(tok, s.buf[s.tokenStart:s.cursor]...)
	s.tokenStart = -1
	s.tokenChunks = nil
	return tok
}

// Back undoes the single most recent Read call. It panics if called twice
// in a row without an intervening Read, or before any byte has been read
// since the current token (if any) started.
func (s *Scanner) Back() {
	if s.cursor <= 0 || s.cursor <= s.tokenStart {
		panic("cannot go back from start")
	}
	if s.lastPos.Line < 0 {
		panic("cannot go back twice")
	}
	if s.eofSeen > 0 {
		s.eofSeen--
		return
	}
	s.cursor--
	s.pos = s.lastPos
	s.lastPos.Line = -1
}

// Peek returns the next byte without consuming it.
func (s *Scanner) Peek() (byte, error) {
	if s.cursor >= s.readLimit {
		s.fillBuf()
	}
	if s.cursor < s.readLimit {
		return s.buf[s.cursor], nil
	}
	return s.errOrEOF()
}

func (s *Scanner) errOrEOF() (byte, error) {
	if s.rerr == io.EOF {
		return EOF, nil
	}
	return 0, s.rerr
}

// SkipSpaceAndPeek skips ' ', '\t', '\n', '\r' and returns the first
// non-space byte without consuming it.
func (s *Scanner) SkipSpaceAndPeek() (byte, error) {
	for {
		for i, b := range s.buf[s.cursor:s.readLimit] {
			switch {
			case b == '\n':
				s.pos.Line++
				s.pos.Col = 0
			case b == ' ' || b == '\t' || b == '\r':
				s.pos.Col++
			default:
				s.cursor += i
				return b, nil
			}
		}
		s.cursor = s.readLimit
		s.fillBuf()
		if s.cursor >= s.readLimit {
			return s.errOrEOF()
		}
	}
}

// SkipSpaceAndRead skips ' ', '\t', '\n', '\r' and consumes and returns the
// first non-space byte.
func (s *Scanner) SkipSpaceAndRead() (byte, error) {
	for {
		for i, b := range s.buf[s.cursor:s.readLimit] {
			switch {
			case b == '\n':
				s.pos.Line++
				s.pos.Col = 0
			case b == ' ' || b == '\t' || b == '\r':
				s.pos.Col++
			default:
				s.cursor += i + 1
				if b < 0xC0 {
					s.pos.Col++
				}
				return b, nil
			}
		}
		s.cursor = s.readLimit
		s.fillBuf()
		if s.cursor >= s.readLimit {
			return s.errOrEOF()
		}
	}
}

const (
	lookBackSize             = 1
	maxConsecutiveEmptyReads = 100
	defaultBufSize           = 8192
)

// EOF is a byte value that cannot appear in a UTF-8 encoded stream,
// reserved as the Scanner's end-of-input marker so callers needn't plumb
// io.EOF through their byte-at-a-time state machines.
const EOF byte = 0xFF
