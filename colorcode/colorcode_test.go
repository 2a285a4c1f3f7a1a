// Copyright 2020 Aleksandr Demakin. All rights reserved.

package colorcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/avdva/bitforge"
	"github.com/stretchr/testify/assert"
)

func TestIsValidHex(t *testing.T) {
	a := assert.New(t)
	for _, s := range []string{"#3B82F6", "3b82f6", "#abc", "ABC", "#000000"} {
		a.True(IsValidHex(s), s)
	}
	for _, s := range []string{"", "#", "#abcd", "#3B82F", "#GGGGGG", "##abc", "#abc ", "3b82f6a"} {
		a.False(IsValidHex(s), s)
	}
}

func TestNormalizeHex(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s, expected string
	}{
		{"#abc", "#AABBCC"},
		{"abc", "#AABBCC"},
		{"#3b82f6", "#3B82F6"},
		{"3B82F6", "#3B82F6"},
		{"#", ""},
		{"##abc", ""},
		{"#12345", ""},
		{"#12345G", ""},
		{"#xyz", ""},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			s, err := NormalizeHex(test.s)
			if len(test.expected) == 0 {
				a.True(errors.Is(err, bitforge.ErrParse), "%q: %v", test.s, err)
				return
			}
			if a.NoError(err) {
				a.Equal(test.expected, s)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	a := assert.New(t)
	c, err := ParseHex("#3B82F6")
	a.NoError(err)
	a.Equal(RGB{R: 59, G: 130, B: 246}, c)
	a.Equal("#3B82F6", c.Hex())
	a.Equal("rgb(59, 130, 246)", c.String())
	a.Equal("00111011 10000010 11110110", c.Binary())

	c, err = ParseHex("f0a")
	a.NoError(err)
	a.Equal(RGB{R: 255, G: 0, B: 170}, c)
	a.Equal("#FF00AA", c.Hex())

	_, err = ParseHex("#12")
	a.True(errors.Is(err, bitforge.ErrParse))
}

func TestHSL(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		c RGB
		h HSL
	}{
		{RGB{59, 130, 246}, HSL{217, 91, 60}},
		{RGB{255, 0, 0}, HSL{0, 100, 50}},
		{RGB{0, 255, 0}, HSL{120, 100, 50}},
		{RGB{0, 0, 255}, HSL{240, 100, 50}},
		{RGB{255, 0, 255}, HSL{300, 100, 50}},
		{RGB{255, 128, 0}, HSL{30, 100, 50}},
		{RGB{255, 255, 255}, HSL{0, 0, 100}},
		{RGB{0, 0, 0}, HSL{0, 0, 0}},
		{RGB{128, 128, 128}, HSL{0, 0, 50}},
		{RGB{0xAA, 0xBB, 0xCC}, HSL{210, 25, 73}},
		{RGB{0x12, 0x34, 0x56}, HSL{210, 65, 20}},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.h, test.c.HSL(), test.c.Hex())
		})
	}
	a.Equal("hsl(217, 91%, 60%)", RGB{59, 130, 246}.HSL().String())
}

func TestChannelBits(t *testing.T) {
	a := assert.New(t)
	a.Equal("00000000", ChannelBits(0))
	a.Equal("00000101", ChannelBits(5))
	a.Equal("11111111", ChannelBits(255))
}
