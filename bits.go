// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bitforge

import (
	"math/big"

	mu "github.com/avdva/bitforge/internal/mathutil"
)

// GetBit returns the bit at 'pos' (0 is the least significant bit).
// Negative values are treated as infinite two's complement bit patterns.
func GetBit(v *big.Int, pos uint) uint {
	return mu.OrZero(v).Bit(int(pos))
}

// SetBit returns v with the bit at 'pos' set to 1, if on is true, or cleared otherwise.
func SetBit(v *big.Int, pos uint, on bool) *big.Int {
	bit := mu.Pow2(pos)
	if on {
		return bit.Or(mu.OrZero(v), bit)
	}
	return bit.AndNot(mu.OrZero(v), bit)
}

// ToggleBit returns v with the bit at 'pos' flipped.
func ToggleBit(v *big.Int, pos uint) *big.Int {
	bit := mu.Pow2(pos)
	return bit.Xor(mu.OrZero(v), bit)
}

// CountSetBits returns the number of set bits of |v|.
// Note, that for negative numbers the result is the popcount of the magnitude,
// not of the two's complement pattern.
func CountSetBits(v *big.Int) int {
	return mu.OnesCount(v)
}

// BitLength returns the number of characters needed to write v in binary,
// including the '-' sign for negative values. Zero has length 1.
func BitLength(v *big.Int) int {
	v = mu.OrZero(v)
	n := v.BitLen()
	if n == 0 {
		return 1
	}
	if v.Sign() < 0 {
		n++
	}
	return n
}

// MaxValue returns the largest value representable in 'width' bits.
func MaxValue(width int, signed bool) *big.Int {
	if signed {
		return mu.Mask(width - 1)
	}
	return mu.Mask(width)
}

// MinValue returns the smallest signed value representable in 'width' bits.
func MinValue(width int) *big.Int {
	if width <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Neg(mu.Pow2(uint(width - 1)))
}
