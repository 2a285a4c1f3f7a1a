package mathutil

import (
	"math/big"
	"math/bits"
	"strings"
)

var (
	one = big.NewInt(1)

	// 64 zeros, enough for the usual widths.
	manyZeros = "0000000000000000000000000000000000000000000000000000000000000000"
)

// OrZero returns v, or a zero value if v is nil.
func OrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// Pow2 returns 2^n.
func Pow2(n uint) *big.Int {
	return new(big.Int).Lsh(one, n)
}

// Mask returns 2^width - 1. Returns zero for width <= 0.
func Mask(width int) *big.Int {
	if width <= 0 {
		return new(big.Int)
	}
	m := Pow2(uint(width))
	return m.Sub(m, one)
}

// Truncate returns the low 'width' bits of v, treating negative values
// as infinite two's complement bit patterns.
func Truncate(v *big.Int, width int) *big.Int {
	return new(big.Int).And(OrZero(v), Mask(width))
}

// Abs returns |v|.
func Abs(v *big.Int) *big.Int {
	return new(big.Int).Abs(OrZero(v))
}

// OnesCount returns the number of set bits in |v|.
func OnesCount(v *big.Int) int {
	var n int
	for _, w := range OrZero(v).Bits() {
		n += bits.OnesCount(uint(w))
	}
	return n
}

// PadLeft returns s left-padded with zeros to 'width' characters.
// If s is longer, only the last 'width' characters are kept.
func PadLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) >= width {
		return s[len(s)-width:]
	}
	diff := width - len(s)
	if diff <= len(manyZeros) {
		return manyZeros[:diff] + s
	}
	return strings.Repeat("0", diff) + s
}

// Group splits s into space separated groups of 'size' characters,
// counting from the right, so that only the first group can be shorter.
func Group(s string, size int) string {
	if size <= 0 || len(s) <= size {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/size)
	head := len(s) % size
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += size {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+size])
	}
	return b.String()
}

// InvertBits flips every '0' into '1' and every other character into '0'.
func InvertBits(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '0' {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// AddOne adds 1 to a binary string, propagating the carry from the rightmost digit.
// A carry out of the leftmost digit is dropped, so the length never changes.
func AddOne(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == '0' {
			b[i] = '1'
			return string(b)
		}
		b[i] = '0'
	}
	return string(b)
}

// IsBinary returns true, if s is a non-empty string of '0' and '1'.
func IsBinary(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return false
		}
	}
	return true
}

// EuclidMod returns a mod m in the range [0, m). m must be positive.
func EuclidMod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
