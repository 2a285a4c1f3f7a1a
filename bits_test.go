// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bitforge

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSetToggleBit(t *testing.T) {
	a := assert.New(t)
	v := big.NewInt(0b1010)
	a.Equal(uint(0), GetBit(v, 0))
	a.Equal(uint(1), GetBit(v, 1))
	a.Equal(uint(1), GetBit(big.NewInt(-1), 100))
	a.Equal(uint(0), GetBit(big.NewInt(-2), 0))

	a.Equal(int64(0b1011), SetBit(v, 0, true).Int64())
	a.Equal(int64(0b1000), SetBit(v, 1, false).Int64())
	a.Equal(int64(0b0010), ToggleBit(v, 3).Int64())
	a.Equal(int64(0b1010), v.Int64(), "arguments must not be modified")
	a.Equal("1267650600228229401496703205386", SetBit(big.NewInt(10), 100, true).String())
}

func TestCountSetBits(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v   int64
		res int
	}{
		{0, 0},
		{1, 1},
		{170, 4},
		{255, 8},
		// magnitude is counted for negatives, not the two's complement pattern.
		{-1, 1},
		{-170, 4},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.res, CountSetBits(big.NewInt(test.v)))
		})
	}
}

func TestBitLength(t *testing.T) {
	a := assert.New(t)
	a.Equal(1, BitLength(big.NewInt(0)))
	a.Equal(1, BitLength(big.NewInt(1)))
	a.Equal(8, BitLength(big.NewInt(255)))
	a.Equal(9, BitLength(big.NewInt(256)))
	a.Equal(7, BitLength(big.NewInt(-42)))
	a.Equal(len(Format(big.NewInt(-42), Binary)), BitLength(big.NewInt(-42)))
}

func TestMinMaxValue(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		width          int
		umax, smax, mn string
	}{
		{8, "255", "127", "-128"},
		{16, "65535", "32767", "-32768"},
		{32, "4294967295", "2147483647", "-2147483648"},
		{64, "18446744073709551615", "9223372036854775807", "-9223372036854775808"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.umax, MaxValue(test.width, false).String())
			a.Equal(test.smax, MaxValue(test.width, true).String())
			a.Equal(test.mn, MinValue(test.width).String())
		})
	}
}
