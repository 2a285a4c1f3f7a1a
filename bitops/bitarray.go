// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bitops

import (
	"fmt"
	"math/big"

	"github.com/avdva/bitforge"
	mu "github.com/avdva/bitforge/internal/mathutil"
)

// Bits is a sequence of 0 and 1, the most significant bit first.
type Bits []uint8

// String returns bits as a string of '0' and '1'.
func (b Bits) String() string {
	s := make([]byte, len(b))
	for i, bit := range b {
		s[i] = '0' + bit&1
	}
	return string(s)
}

// MarshalText encodes bits as a string of '0' and '1'.
func (b Bits) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// ToBitArray returns the low 'width' bits of v, the most significant one first.
// Negative values are taken as two's complement bit patterns.
func ToBitArray(v *big.Int, width int) Bits {
	if width <= 0 {
		return Bits{}
	}
	v = mu.OrZero(v)
	res := make(Bits, width)
	for i := 0; i < width; i++ {
		res[width-1-i] = uint8(v.Bit(i))
	}
	return res
}

// FromBitArray is the inverse of ToBitArray: it returns the unsigned value of the bits.
// Any non-zero element counts as a set bit.
func FromBitArray(bits Bits) *big.Int {
	res := new(big.Int)
	n := len(bits)
	for i, bit := range bits {
		if bit != 0 {
			res.SetBit(res, n-1-i, 1)
		}
	}
	return res
}

// HammingDistance returns the number of differing bits of a and b.
// It counts the set bits of a^b using bitforge.CountSetBits,
// so that for a negative xor the magnitude is counted.
func HammingDistance(a, b *big.Int) int {
	return bitforge.CountSetBits(XorOf(a, b))
}

// Step is a single position of a visualized operation.
type Step struct {
	// Position is the bit index, 0 for the least significant bit.
	Position int
	BitA     uint8
	BitB     uint8
	Result   uint8
	// Partial holds the result bits computed so far, from the most significant one.
	Partial Bits
}

// Visualization describes an operation bit by bit.
type Visualization struct {
	Op     Op
	A      Bits
	B      Bits
	Result Bits
	Value  *big.Int
	Steps  []Step
}

// Visualize applies op to a and b within 'width' bits and returns a step for each bit,
// from the most significant one. Shifts and rotations use the shift amount of 1.
func Visualize(op Op, a, b *big.Int, width int) (Visualization, error) {
	if width <= 0 {
		return Visualization{}, fmt.Errorf("%w: %d", bitforge.ErrBitWidth, width)
	}
	value, err := Operate(op, a, b, width, 1)
	if err != nil {
		return Visualization{}, err
	}
	v := Visualization{
		Op:     op,
		A:      ToBitArray(a, width),
		B:      ToBitArray(b, width),
		Result: ToBitArray(value, width),
		Value:  value,
		Steps:  make([]Step, width),
	}
	for i := range v.Steps {
		v.Steps[i] = Step{
			Position: width - 1 - i,
			BitA:     v.A[i],
			BitB:     v.B[i],
			Result:   v.Result[i],
			Partial:  append(Bits(nil), v.Result[:i+1]...),
		}
	}
	return v, nil
}
