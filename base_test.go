// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bitforge

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s    string
		base Base
		v    string
		err  string
	}{
		{"", Binary, "0", ""},
		{"", Hex, "0", ""},
		{"0", Octal, "0", ""},
		{"1010 1010", Binary, "170", ""},
		{"377", Octal, "255", ""},
		{"0o377", Octal, "255", ""},
		{"0O17", Octal, "15", ""},
		{"ff", Hex, "255", ""},
		{"0xFF", Hex, "255", ""},
		{"0Xdead beef", Hex, "3735928559", ""},
		{"1,234,567", Decimal, "1234567", ""},
		{" -42 ", Decimal, "-42", ""},
		{"-0", Decimal, "0", ""},
		{"123456789012345678901234567890", Decimal, "123456789012345678901234567890", ""},

		{"102", Binary, "", "parsing failed: base 2: unexpected symbol '2' at pos 3"},
		{"8", Octal, "", "parsing failed: base 8: unexpected symbol '8' at pos 1"},
		{"12.5", Decimal, "", "parsing failed: base 10: unexpected symbol '.' at pos 3"},
		{"-", Decimal, "", "parsing failed: base 10: no digits"},
		{"   ", Binary, "", "parsing failed: base 2: no digits"},
		{"-1", Hex, "", "parsing failed: base 16: unexpected symbol '-' at pos 1"},
		{"1,000", Hex, "", "parsing failed: base 16: unexpected symbol ',' at pos 2"},
		{"fg", Hex, "", "parsing failed: base 16: unexpected symbol 'g' at pos 2"},
		{"0x", Hex, "", "parsing failed: base 16: no digits"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			v, err := Parse(test.s, test.base)
			if len(test.err) == 0 {
				if a.NoError(err) {
					a.Equal(test.v, v.String(), test.s)
				}
			} else {
				a.EqualError(err, test.err)
				a.True(errors.Is(err, ErrParse))
			}
		})
	}
}

func TestParseUnsupportedBase(t *testing.T) {
	_, err := Parse("12", Base(3))
	assert.True(t, errors.Is(err, ErrUnsupportedBase))
	_, err = Convert("12", Decimal, Base(36))
	assert.True(t, errors.Is(err, ErrUnsupportedBase))
}

func TestFormat(t *testing.T) {
	a := assert.New(t)
	for _, b := range Bases {
		a.Equal("0", Format(big.NewInt(0), b))
		a.Equal("0", Format(nil, b))
	}
	tests := []struct {
		v    int64
		base Base
		res  string
	}{
		{255, Binary, "11111111"},
		{255, Octal, "377"},
		{255, Decimal, "255"},
		{255, Hex, "FF"},
		{-42, Binary, "-101010"},
		{-42, Octal, "-52"},
		{-255, Hex, "-FF"},
		{-42, Decimal, "-42"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.res, Format(big.NewInt(test.v), test.base))
		})
	}
}

func TestConvert(t *testing.T) {
	a := assert.New(t)
	res, err := Convert("FF", Hex, Binary)
	a.NoError(err)
	a.Equal("11111111", res)

	res, err = Convert("-10", Decimal, Hex)
	a.NoError(err)
	a.Equal("-A", res)

	res, err = Convert("777", Octal, Decimal)
	a.NoError(err)
	a.Equal("511", res)

	_, err = Convert("2", Binary, Decimal)
	a.True(errors.Is(err, ErrParse))
}

func TestRoundTrip(t *testing.T) {
	r := require.New(t)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	values := []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(255)}
	for i := 0; i < 50; i++ {
		v := new(big.Int).Rand(rnd, new(big.Int).Lsh(big.NewInt(1), 130))
		values = append(values, v)
	}
	for _, v := range values {
		for _, b1 := range Bases {
			s := Format(v, b1)
			parsed, err := Parse(s, b1)
			r.NoError(err)
			r.Equal(0, v.Cmp(parsed), "%s in %v", v, b1)
			for _, b2 := range Bases {
				converted, err := Convert(s, b1, b2)
				r.NoError(err)
				back, err := Parse(converted, b2)
				r.NoError(err)
				r.Equal(0, v.Cmp(back), "%s from %v to %v", v, b1, b2)
			}
		}
	}
	neg := big.NewInt(-1234567)
	parsed, err := Parse(Format(neg, Decimal), Decimal)
	r.NoError(err)
	r.Equal(0, neg.Cmp(parsed))
}

func TestIsValidForBase(t *testing.T) {
	a := assert.New(t)
	a.True(IsValidForBase("", Binary))
	a.True(IsValidForBase("1 0 1", Binary))
	a.False(IsValidForBase("12", Binary))
	a.True(IsValidForBase("-12", Decimal))
	a.False(IsValidForBase("-12", Octal))
	a.True(IsValidForBase("aBc", Hex))
	a.False(IsValidForBase("1", Base(7)))
}

func TestParseBase(t *testing.T) {
	a := assert.New(t)
	for name, expected := range map[string]Base{"bin": Binary, "Octal": Octal, " 10 ": Decimal, "HEX": Hex, "16": Hex} {
		b, err := ParseBase(name)
		a.NoError(err, name)
		a.Equal(expected, b, name)
	}
	_, err := ParseBase("base64")
	a.True(errors.Is(err, ErrUnsupportedBase))
}

func TestParseLiteral(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s   string
		res int64
		err bool
	}{
		{"170", 170, false},
		{" -5 ", -5, false},
		{"1,000", 1000, false},
		{"0xFF", 255, false},
		{"0XaB", 171, false},
		{"-0x10", -16, false},
		{"0b1010", 10, false},
		{"0B 1111 0000", 240, false},
		{"0o17", 15, false},
		{"-0o10", -8, false},
		{"", 0, true},
		{"-", 0, true},
		{"0x", 0, true},
		{"0b102", 0, true},
		{"0o8", 0, true},
		{"12ab", 0, true},
		{"--5", 0, true},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			v, err := ParseLiteral(test.s)
			if test.err {
				a.True(errors.Is(err, ErrParse), "%q: %v", test.s, err)
				return
			}
			if a.NoError(err, test.s) {
				a.Equal(test.res, v.Int64(), test.s)
			}
		})
	}
}

func TestPadAndGroup(t *testing.T) {
	a := assert.New(t)
	a.Equal("00000000", PadBinary("", 8))
	a.Equal("00000101", PadBinary("101", 8))
	a.Equal("0101", PadBinary("10101", 4))
	a.Equal("0", GroupDigits("", 4))
	a.Equal("1 0000 0000", GroupDigits("100000000", 4))
	a.Equal("10000000 00000000", GroupDigits("1000000000000000", 8))
}

func BenchmarkParseHex(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Parse("dead beef cafe babe 0123 4567 89ab cdef", Hex)
	}
}

func BenchmarkFormatBinary(b *testing.B) {
	v, _ := new(big.Int).SetString("deadbeefcafebabe0123456789abcdef", 16)
	for i := 0; i < b.N; i++ {
		_ = Format(v, Binary)
	}
}
