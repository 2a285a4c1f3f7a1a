// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bitops

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/avdva/bitforge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBitArray(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v     int64
		width int
		res   string
	}{
		{0, 8, "00000000"},
		{5, 4, "0101"},
		{255, 8, "11111111"},
		{256, 8, "00000000"},
		{-42, 8, "11010110"},
		{-1, 16, "1111111111111111"},
		{1, 1, "1"},
		{1, 0, ""},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			bits := ToBitArray(big.NewInt(test.v), test.width)
			a.Len(bits, len(test.res))
			a.Equal(test.res, bits.String())
		})
	}
}

func TestFromBitArray(t *testing.T) {
	a := assert.New(t)
	a.Equal(int64(214), FromBitArray(Bits{1, 1, 0, 1, 0, 1, 1, 0}).Int64())
	a.Equal(int64(0), FromBitArray(nil).Int64())
	a.Equal(int64(5), FromBitArray(Bits{0, 0, 0, 1, 0, 1}).Int64())
}

func TestBitArrayRoundTrip(t *testing.T) {
	r := require.New(t)
	for _, width := range []int{1, 8, 16, 32, 64, 100} {
		for _, v := range []int64{0, 1, 42, -42, 255, -255, 1 << 40, -1} {
			wrapped := new(big.Int).And(big.NewInt(v), new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width)), big.NewInt(1)))
			bits := ToBitArray(wrapped, width)
			r.Len(bits, width)
			r.Equal(0, wrapped.Cmp(FromBitArray(bits)), "%d in %d bits", v, width)
		}
	}
}

func TestHammingDistance(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x, y int64
		res  int
	}{
		{0, 0, 0},
		{170, 170, 0},
		{170, 85, 8},
		{5, 3, 2},
		{1, 1 << 40, 2},
		{-1, 0, 1},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x, y := big.NewInt(test.x), big.NewInt(test.y)
			a.Equal(test.res, HammingDistance(x, y))
			a.Equal(HammingDistance(y, x), HammingDistance(x, y))
		})
	}
}

func TestVisualize(t *testing.T) {
	a := assert.New(t)
	v, err := Visualize(And, big.NewInt(12), big.NewInt(10), 4)
	if !a.NoError(err) {
		return
	}
	a.Equal("1100", v.A.String())
	a.Equal("1010", v.B.String())
	a.Equal("1000", v.Result.String())
	a.Equal(int64(8), v.Value.Int64())
	if a.Len(v.Steps, 4) {
		a.Equal(Step{Position: 3, BitA: 1, BitB: 1, Result: 1, Partial: Bits{1}}, v.Steps[0])
		a.Equal(Step{Position: 0, BitA: 0, BitB: 0, Result: 0, Partial: Bits{1, 0, 0, 0}}, v.Steps[3])
		v.Result[0] = 0
		a.Equal(Bits{1}, v.Steps[0].Partial)
		a.Equal(Bits{1, 0, 0, 0}, v.Steps[3].Partial)
	}

	v, err = Visualize(Rol, big.NewInt(0b1000), nil, 4)
	a.NoError(err)
	a.Equal("0001", v.Result.String())

	_, err = Visualize(And, big.NewInt(1), big.NewInt(1), 0)
	a.True(errors.Is(err, bitforge.ErrBitWidth))
	_, err = Visualize(Op(-1), big.NewInt(1), big.NewInt(1), 8)
	a.True(errors.Is(err, bitforge.ErrUnsupportedOperation))
}
