// Package textutil normalizes snapshot text so that files written on one
// platform compare cleanly on another.
package textutil

import (
	"bytes"
	"strings"
)

// NormalizeUTF8LF converts CRLF to LF and ensures the output is valid UTF-8
// by replacing invalid byte sequences with the Unicode replacement character.
func NormalizeUTF8LF(b []byte) []byte {
	// Normalize newlines first
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	// Ensure valid UTF-8
	return bytes.ToValidUTF8(b, []byte("\uFFFD"))
}

// EnsureTrailingLF appends a single \n if not already present.
func EnsureTrailingLF(b []byte) []byte {
	if len(b) == 0 || b[len(b)-1] == '\n' {
		return b
	}
	return append(b, '\n')
}

// Lines normalizes b and splits it into lines without terminators.
// Trailing empty lines are dropped, so "a\n" and "a" both yield ["a"]
// and empty input yields nil.
func Lines(b []byte) []string {
	s := strings.TrimRight(string(NormalizeUTF8LF(b)), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
