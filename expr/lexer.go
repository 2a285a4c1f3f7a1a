// Copyright 2020 Aleksandr Demakin. All rights reserved.

package expr

import (
	"fmt"
	"math/big"
	"unicode"
	"unicode/utf8"

	"github.com/avdva/bitforge"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokAnd
	tokOr
	tokXor
	tokNot
	tokShl
	tokShr
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of expression"
	case tokNumber:
		return "number"
	case tokAnd:
		return "'&'"
	case tokOr:
		return "'|'"
	case tokXor:
		return "'^'"
	case tokNot:
		return "'~'"
	case tokShl:
		return "'<<'"
	case tokShr:
		return "'>>'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

type token struct {
	kind tokenKind
	// pos is a 1-based byte position in the sanitized expression.
	pos   int
	value *big.Int
}

// SyntaxError describes a malformed expression.
// Pos is a 1-based position in the expression after variables and keywords are replaced.
type SyntaxError struct {
	Pos int
	Msg string
}

func newSyntaxError(msg string, pos int) *SyntaxError {
	return &SyntaxError{Msg: msg, Pos: pos}
}

func (se *SyntaxError) Error() string {
	return fmt.Sprintf("%v: %s at pos %d", bitforge.ErrInvalidExpression, se.Msg, se.Pos)
}

// Unwrap allows errors.Is(err, bitforge.ErrInvalidExpression).
func (se *SyntaxError) Unwrap() error {
	return bitforge.ErrInvalidExpression
}

// tokenize splits a sanitized expression into tokens. The last token is always tokEOF.
func tokenize(s string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		pos := i + 1
		switch {
		case unicode.IsSpace(r):
			i += size
			continue
		case '0' <= r && r <= '9':
			v, n, err := scanNumber(s[i:], pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokNumber, pos: pos, value: v})
			i += n
			continue
		case r == '<' || r == '>':
			if i+1 >= len(s) || s[i+1] != byte(r) {
				return nil, newSyntaxError(fmt.Sprintf("unexpected symbol %q", r), pos)
			}
			kind := tokShl
			if r == '>' {
				kind = tokShr
			}
			tokens = append(tokens, token{kind: kind, pos: pos})
			i += 2
			continue
		}
		var kind tokenKind
		switch r {
		case '&':
			kind = tokAnd
		case '|':
			kind = tokOr
		case '^':
			kind = tokXor
		case '~':
			kind = tokNot
		case '(':
			kind = tokLParen
		case ')':
			kind = tokRParen
		default:
			return nil, newSyntaxError(fmt.Sprintf("unexpected symbol %q", r), pos)
		}
		tokens = append(tokens, token{kind: kind, pos: pos})
		i += size
	}
	return append(tokens, token{kind: tokEOF, pos: len(s) + 1}), nil
}

// scanNumber reads a decimal or a 0x-prefixed hex literal from the beginning of s.
// Returns the value and the number of bytes consumed.
func scanNumber(s string, pos int) (*big.Int, int, error) {
	base, start := 10, 0
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, start = 16, 2
	}
	end := start
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == start {
		return nil, 0, newSyntaxError("missing hex digits", pos)
	}
	// a literal must not run into letters, like 12ab or 0x1fz.
	if end < len(s) && isWordByte(s[end]) {
		return nil, 0, newSyntaxError(fmt.Sprintf("unexpected symbol %q", s[end]), pos+end)
	}
	v, ok := new(big.Int).SetString(s[start:end], base)
	if !ok {
		return nil, 0, newSyntaxError("malformed number", pos)
	}
	return v, end, nil
}

func isDigit(b byte, base int) bool {
	if '0' <= b && b <= '9' {
		return true
	}
	return base == 16 && ('a' <= b && b <= 'f' || 'A' <= b && b <= 'F')
}

func isWordByte(b byte) bool {
	return '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || b == '_'
}
