// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package bitforge converts arbitrary-precision integers between binary,
// octal, decimal and hexadecimal digit strings.
//
// All values are *big.Int, so there is no overflow anywhere in conversion.
// Sub-packages build on it: bitops (fixed-width bitwise operations),
// twos (two's complement), ieee754 (float decomposition) and expr
// (a restricted bitwise expression language).
package bitforge

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"

	mu "github.com/avdva/bitforge/internal/mathutil"
)

// Base is a numeric base supported by Parse.
type Base int

const (
	// Binary is base 2.
	Binary Base = 2
	// Octal is base 8.
	Octal Base = 8
	// Decimal is base 10.
	Decimal Base = 10
	// Hex is base 16.
	Hex Base = 16
)

// Bases lists all supported bases in ascending order.
var Bases = [...]Base{Binary, Octal, Decimal, Hex}

// Valid returns true for 2, 8, 10 and 16.
func (b Base) Valid() bool {
	switch b {
	case Binary, Octal, Decimal, Hex:
		return true
	default:
		return false
	}
}

// String returns a human readable name of the base.
func (b Base) String() string {
	switch b {
	case Binary:
		return "binary"
	case Octal:
		return "octal"
	case Decimal:
		return "decimal"
	case Hex:
		return "hex"
	default:
		return fmt.Sprintf("base(%d)", int(b))
	}
}

func (b Base) isDigit(r byte) bool {
	switch b {
	case Binary:
		return r == '0' || r == '1'
	case Octal:
		return '0' <= r && r <= '7'
	case Decimal:
		return '0' <= r && r <= '9'
	default:
		return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
	}
}

// Parse parses a digit string in the given base.
// An empty string is zero. Whitespace is ignored; for the decimal base commas are ignored as well,
// and a leading '-' is allowed. Octal strings may start with "0o", hex strings with "0x".
// Any other symbol is a *ParseError.
func Parse(s string, base Base) (*big.Int, error) {
	if !base.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBase, int(base))
	}
	if len(s) == 0 {
		return new(big.Int), nil
	}
	cleaned := clean(s, base)
	if err := validate(cleaned, base); err != nil {
		return nil, err
	}
	v, ok := new(big.Int).SetString(cleaned, int(base))
	if !ok { // should not happen after validation.
		return nil, newParseError(base, "malformed number", 0)
	}
	return v, nil
}

// MustParse is like Parse, but panics on errors.
func MustParse(s string, base Base) *big.Int {
	v, err := Parse(s, base)
	if err != nil {
		panic(err)
	}
	return v
}

var baseNames = map[string]Base{
	"2": Binary, "bin": Binary, "binary": Binary,
	"8": Octal, "oct": Octal, "octal": Octal,
	"10": Decimal, "dec": Decimal, "decimal": Decimal,
	"16": Hex, "hex": Hex, "hexadecimal": Hex,
}

// ParseBase returns a base by its case-insensitive name, like "hex", "bin" or "10".
func ParseBase(name string) (Base, error) {
	if b, found := baseNames[strings.ToLower(strings.TrimSpace(name))]; found {
		return b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedBase, name)
}

// ParseLiteral parses an integer, choosing the base by its prefix:
// "0x" for hex, "0b" for binary, "0o" for octal and decimal otherwise.
// A leading '-' is allowed in every base. Unlike Parse, an empty string is an error.
func ParseLiteral(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	body, neg := s, false
	if strings.HasPrefix(body, "-") {
		body, neg = body[1:], true
	}
	var base Base
	switch {
	case hasPrefixFold(body, "0x"):
		base = Hex
	case hasPrefixFold(body, "0b"):
		base = Binary
	case hasPrefixFold(body, "0o"):
		base = Octal
	default:
		if len(s) == 0 {
			return nil, newParseError(Decimal, "no digits", 0)
		}
		return Parse(s, Decimal)
	}
	if len(body) == 2 {
		return nil, newParseError(base, "no digits", 0)
	}
	v, err := Parse(body[2:], base)
	if err != nil {
		return nil, err
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

// clean strips base prefixes, whitespace, and decimal thousands separators.
func clean(s string, base Base) string {
	switch base {
	case Octal:
		s = trimPrefixFold(s, "0o")
	case Hex:
		s = trimPrefixFold(s, "0x")
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || base == Decimal && r == ',' {
			return -1
		}
		return r
	}, s)
}

func trimPrefixFold(s, prefix string) string {
	if hasPrefixFold(s, prefix) {
		return s[len(prefix):]
	}
	return s
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func validate(s string, base Base) error {
	if len(s) == 0 {
		return newParseError(base, "no digits", 0)
	}
	start := 0
	if base == Decimal && s[0] == '-' {
		start = 1
		if len(s) == 1 {
			return newParseError(base, "no digits", 0)
		}
	}
	for i := start; i < len(s); i++ {
		if !base.isDigit(s[i]) {
			r := []rune(s[i:])[0]
			return newParseError(base, fmt.Sprintf("unexpected symbol %q", r), i+1)
		}
	}
	return nil
}

// IsValidForBase returns true, if s can be parsed in the given base.
// The empty string is valid.
func IsValidForBase(s string, base Base) bool {
	if !base.Valid() {
		return false
	}
	if len(s) == 0 {
		return true
	}
	return validate(clean(s, base), base) == nil
}

// Format returns the digits of v in the given base, using uppercase letters.
// Negative values are rendered as '-' followed by the digits of the magnitude,
// in every base. Use package twos for a fixed-width two's complement view.
func Format(v *big.Int, base Base) string {
	return strings.ToUpper(mu.OrZero(v).Text(int(base)))
}

// Convert parses s in the 'from' base and formats the result in the 'to' base.
func Convert(s string, from, to Base) (string, error) {
	if !to.Valid() {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedBase, int(to))
	}
	v, err := Parse(s, from)
	if err != nil {
		return "", err
	}
	return Format(v, to), nil
}

// PadBinary left-pads a binary string with zeros to 'width' digits.
// Longer strings are truncated to the last 'width' digits. An empty string is treated as "0".
func PadBinary(s string, width int) string {
	if len(s) == 0 {
		s = "0"
	}
	return mu.PadLeft(s, width)
}

// GroupDigits separates s into groups of 'size' digits with spaces, aligned from the right.
// An empty string is returned as "0".
func GroupDigits(s string, size int) string {
	if len(s) == 0 {
		return "0"
	}
	return mu.Group(s, size)
}
