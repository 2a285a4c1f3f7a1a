// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package compare shows two integers side by side, bit by bit.
package compare

import (
	"math/big"
	"strconv"

	"github.com/avdva/bitforge"
	"github.com/avdva/bitforge/bitops"
	mu "github.com/avdva/bitforge/internal/mathutil"
	"github.com/robaho/fixed"
)

var (
	max8  = big.NewInt(0xFF)
	max16 = big.NewInt(0xFFFF)
	max32 = big.NewInt(0xFFFFFFFF)
)

// Panel is one side of a comparison.
type Panel struct {
	Value  *big.Int    `json:"value" yaml:"value"`
	Hex    string      `json:"hex" yaml:"hex"`
	Binary string      `json:"binary" yaml:"binary"`
	Bits   bitops.Bits `json:"-" yaml:"-"`
}

// Result is a comparison of two values.
type Result struct {
	A     Panel `json:"a" yaml:"a"`
	B     Panel `json:"b" yaml:"b"`
	Width int   `json:"width" yaml:"width"`
	// Diff has a 1 at every position, where A and B differ.
	Diff bitops.Bits `json:"diff" yaml:"diff"`
	Xor  *big.Int    `json:"xor" yaml:"xor"`
	// XorHex is "0x" followed by the uppercase hex digits of Xor.
	XorHex string `json:"xor_hex" yaml:"xor_hex"`
	// Hamming is the number of differing bits of the whole values.
	Hamming int `json:"hamming" yaml:"hamming"`
	// Similarity is the share of equal bits within Width, in percent.
	Similarity fixed.Fixed `json:"-" yaml:"-"`
}

// Width returns the number of bits used to display v and w: 8, 16, 32 or 64,
// depending on the larger magnitude. Values wider than 64 bits get 64 as well.
func Width(v, w *big.Int) int {
	m := mu.Abs(v)
	if abs := mu.Abs(w); abs.Cmp(m) > 0 {
		m = abs
	}
	switch {
	case m.Cmp(max32) > 0:
		return 64
	case m.Cmp(max16) > 0:
		return 32
	case m.Cmp(max8) > 0:
		return 16
	default:
		return 8
	}
}

// Compare compares a and b. nil is treated as zero.
func Compare(a, b *big.Int) Result {
	a, b = mu.OrZero(a), mu.OrZero(b)
	width := Width(a, b)
	xor := bitops.XorOf(a, b)
	hamming := bitops.HammingDistance(a, b)
	return Result{
		A:          newPanel(a, width),
		B:          newPanel(b, width),
		Width:      width,
		Diff:       bitops.ToBitArray(xor, width),
		Xor:        xor,
		XorHex:     "0x" + bitforge.Format(xor, bitforge.Hex),
		Hamming:    hamming,
		Similarity: Similarity(hamming, width),
	}
}

// newPanel renders v. Binary is the same two's complement pattern as Bits,
// while Hex keeps the sign of v.
func newPanel(v *big.Int, width int) Panel {
	bits := bitops.ToBitArray(v, width)
	return Panel{
		Value:  new(big.Int).Set(v),
		Hex:    bitforge.Format(v, bitforge.Hex),
		Binary: bits.String(),
		Bits:   bits,
	}
}

// Similarity returns (width - hamming) / width * 100.
// The result is negative, if hamming exceeds width, and zero for a non-positive width.
func Similarity(hamming, width int) fixed.Fixed {
	if width <= 0 {
		return fixed.NewI(0, 0)
	}
	return fixed.NewI(int64(width-hamming)*100, 0).Div(fixed.NewI(int64(width), 0))
}

// SimilarityString returns the similarity rounded to one decimal place, followed by '%'.
func (r Result) SimilarityString() string {
	return strconv.FormatFloat(r.Similarity.Round(1).Float(), 'f', 1, 64) + "%"
}

// Same returns whether the bits at the given index, counting from the most significant one, are equal.
func (r Result) Same(i int) bool {
	return i >= 0 && i < len(r.Diff) && r.Diff[i] == 0
}
