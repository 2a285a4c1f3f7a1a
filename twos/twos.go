// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package twos encodes and decodes signed integers in two's complement form.
package twos

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/avdva/bitforge"
	mu "github.com/avdva/bitforge/internal/mathutil"
)

// Result holds the steps of a two's complement encoding.
type Result struct {
	Value *big.Int `json:"value" yaml:"value"`
	Width int      `json:"width" yaml:"width"`
	// Original is the binary magnitude of Value in Width bits.
	Original string `json:"original" yaml:"original"`
	// Inverted is Original with all bits flipped.
	Inverted string `json:"inverted" yaml:"inverted"`
	// Bits is the encoded value: Inverted+1 for negatives, Original otherwise.
	Bits string `json:"bits" yaml:"bits"`
	// Hex is Bits in hexadecimal with the 0x prefix.
	Hex     string   `json:"hex" yaml:"hex"`
	Min     *big.Int `json:"min" yaml:"min"`
	Max     *big.Int `json:"max" yaml:"max"`
	InRange bool     `json:"in_range" yaml:"in_range"`
}

// Encode returns the two's complement encoding of v in 'width' bits.
// Magnitudes wider than 'width' keep only the low bits; InRange reports that.
func Encode(v *big.Int, width int) (Result, error) {
	if width <= 0 {
		return Result{}, fmt.Errorf("%w: %d", bitforge.ErrBitWidth, width)
	}
	v = new(big.Int).Set(mu.OrZero(v))
	original := mu.PadLeft(mu.Abs(v).Text(2), width)
	inverted := Invert(original)
	bits := original
	if v.Sign() < 0 {
		bits = AddOne(inverted)
	}
	min, max := Range(width)
	return Result{
		Value:    v,
		Width:    width,
		Original: original,
		Inverted: inverted,
		Bits:     bits,
		Hex:      hexOf(bits),
		Min:      min,
		Max:      max,
		InRange:  v.Cmp(min) >= 0 && v.Cmp(max) <= 0,
	}, nil
}

// Decode returns the signed value of a two's complement bit string.
func Decode(bits string) (*big.Int, error) {
	if !mu.IsBinary(bits) {
		return nil, invalidBits(bits)
	}
	if bits[0] == '1' {
		magnitude, _ := new(big.Int).SetString(AddOne(Invert(bits)), 2)
		return magnitude.Neg(magnitude), nil
	}
	v, _ := new(big.Int).SetString(bits, 2)
	return v, nil
}

func invalidBits(bits string) error {
	if len(bits) == 0 {
		return bitforge.NewParseError(bitforge.Binary, "no digits", 0)
	}
	for i, r := range bits {
		if r != '0' && r != '1' {
			return bitforge.NewParseError(bitforge.Binary, fmt.Sprintf("unexpected symbol %q", r), i+1)
		}
	}
	return bitforge.NewParseError(bitforge.Binary, "malformed number", 0)
}

// Range returns the minimum and the maximum signed values for 'width' bits.
func Range(width int) (min, max *big.Int) {
	return bitforge.MinValue(width), bitforge.MaxValue(width, true)
}

// InRange returns true, if v fits 'width' bits as a signed number.
func InRange(v *big.Int, width int) bool {
	return CheckRange(v, width) == nil
}

// CheckRange returns an error wrapping bitforge.ErrOutOfRange, if v does not fit 'width' bits.
// The error is advisory: Encode still produces the truncated encoding.
func CheckRange(v *big.Int, width int) error {
	if width <= 0 {
		return fmt.Errorf("%w: %d", bitforge.ErrBitWidth, width)
	}
	v = mu.OrZero(v)
	min, max := Range(width)
	if v.Cmp(min) < 0 || v.Cmp(max) > 0 {
		return fmt.Errorf("%w: %s is not in [%s, %s]", bitforge.ErrOutOfRange, v, min, max)
	}
	return nil
}

// Invert flips all bits of a binary string.
func Invert(bits string) string {
	return mu.InvertBits(bits)
}

// AddOne adds 1 to a binary string. The carry out of the most significant bit is dropped.
func AddOne(bits string) string {
	return mu.AddOne(bits)
}

func hexOf(bits string) string {
	v, _ := new(big.Int).SetString(bits, 2)
	digits := (len(bits) + 3) / 4
	return "0x" + strings.ToUpper(mu.PadLeft(v.Text(16), digits))
}
