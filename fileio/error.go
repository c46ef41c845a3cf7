// Package fileio reads crisp palettes (.cns) and reads and writes
// serialized fuzzy color spaces (.fcs).
package fileio

import (
	"errors"
	"strconv"
)

// ErrUnsupportedFormat is returned by Load for an unknown file extension.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Kind classifies a ParseError.
type Kind string

const (
	KindMissingHeader Kind = "missing header"
	KindInvalidNumber Kind = "invalid number"
	KindOutOfRange    Kind = "value out of range"
	KindSyntax        Kind = "syntax error"
	KindUnexpectedEOF Kind = "unexpected end of file"
	KindEmpty         Kind = "no colors"
)

// ParseError indicates that a .cns or .fcs file is malformed.
// Line is 1-based; 0 means the error concerns the file as a whole.
type ParseError struct {
	Path string
	Line int
	Kind Kind
	Err  error
}

func (err *ParseError) Error() string {
	head := err.Path
	if head == "" {
		head = "input"
	}
	if err.Line > 0 {
		head += ":" + strconv.Itoa(err.Line)
	}
	tail := ""
	if err.Err != nil {
		tail = ": " + err.Err.Error()
	}
	return head + ": " + string(err.Kind) + tail
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// withPath fills in the file name of a ParseError coming from a reader.
func withPath(err error, path string) error {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		parseErr.Path = path
	}
	return err
}
