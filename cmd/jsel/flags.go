package main

import (
	"fmt"
	"strings"
)

// stringList collects a repeatable string flag (--choose, --sort-by,
// --set), using the standard flag.Value-with-custom-type idiom.
type stringList struct {
	values []string
}

func (l *stringList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(l.values, ",")
}

func (l *stringList) Set(s string) error {
	l.values = append(l.values, s)
	return nil
}

// escapeEntry parses one --text-escape "char=seq" entry.
type escapeEntry struct {
	Char rune
	Seq  string
}

func parseEscapeEntry(s string) (escapeEntry, error) {
	idx := strings.IndexByte(s, '=')
	if idx < 0 {
		return escapeEntry{}, fmt.Errorf("invalid -text-escape %q: expected CHAR=SEQ", s)
	}
	chars := []rune(s[:idx])
	if len(chars) != 1 {
		return escapeEntry{}, fmt.Errorf("invalid -text-escape %q: left side must be one character", s)
	}
	return escapeEntry{Char: chars[0], Seq: s[idx+1:]}, nil
}

type escapeList struct {
	entries []escapeEntry
}

func (l *escapeList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(l.entries))
	for i, e := range l.entries {
		parts[i] = fmt.Sprintf("%c=%s", e.Char, e.Seq)
	}
	return strings.Join(parts, ",")
}

func (l *escapeList) Set(s string) error {
	e, err := parseEscapeEntry(s)
	if err != nil {
		return err
	}
	l.entries = append(l.entries, e)
	return nil
}
