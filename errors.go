// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bitforge

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is returned for digit strings that are not valid in the declared base.
	ErrParse = errors.New("parse error")
	// ErrUnsupportedBase is returned for bases other than 2, 8, 10 and 16.
	ErrUnsupportedBase = errors.New("unsupported base")
	// ErrUnsupportedOperation is returned for unknown operation names.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrInvalidExpression is returned for expressions with disallowed characters or bad syntax.
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrInvalidResult is returned when an evaluation does not produce a usable integer.
	ErrInvalidResult = errors.New("invalid result")
	// ErrOutOfRange is an advisory error: the value does not fit the declared bit width.
	ErrOutOfRange = errors.New("value out of range")
	// ErrBitWidth is returned for non-positive bit widths.
	ErrBitWidth = errors.New("invalid bit width")
)

// ParseError describes a malformed digit string.
// Pos is a 1-based position in the cleaned input, or 0 if the whole input is at fault.
type ParseError struct {
	Base Base
	Pos  int
	Msg  string
}

func newParseError(base Base, msg string, pos int) *ParseError {
	return &ParseError{Base: base, Msg: msg, Pos: pos}
}

// NewParseError returns a ParseError for packages that parse their own digit strings.
func NewParseError(base Base, msg string, pos int) *ParseError {
	return newParseError(base, msg, pos)
}

func (pe *ParseError) Error() string {
	msg := pe.Msg
	if pe.Pos > 0 {
		msg += fmt.Sprintf(" at pos %d", pe.Pos)
	}
	if pe.Base != 0 {
		msg = fmt.Sprintf("base %d: %s", pe.Base, msg)
	}
	return "parsing failed: " + msg
}

// Unwrap allows errors.Is(err, ErrParse).
func (pe *ParseError) Unwrap() error {
	return ErrParse
}
