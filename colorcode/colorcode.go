// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package colorcode converts hex color codes to RGB and HSL.
package colorcode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/avdva/bitforge"
)

var hexColorRe = regexp.MustCompile(`^#?([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// RGB is a 24-bit color.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// HSL is a color in the HSL space. H is in degrees, S and L are in percent.
type HSL struct {
	H int `json:"h" yaml:"h"`
	S int `json:"s" yaml:"s"`
	L int `json:"l" yaml:"l"`
}

// IsValidHex returns true for 3 or 6 hex digits with an optional leading '#'.
func IsValidHex(s string) bool {
	return hexColorRe.MatchString(s)
}

// NormalizeHex returns s in the "#RRGGBB" form, uppercase.
// The short form "#RGB" is expanded by doubling every digit. The leading '#' is optional.
func NormalizeHex(s string) (string, error) {
	cleaned := strings.Replace(s, "#", "", 1)
	if len(cleaned) == 3 {
		cleaned = string([]byte{cleaned[0], cleaned[0], cleaned[1], cleaned[1], cleaned[2], cleaned[2]})
	}
	if len(cleaned) != 6 {
		return "", fmt.Errorf("%w: invalid color %q: expected 3 or 6 hex digits", bitforge.ErrParse, s)
	}
	for i := 0; i < len(cleaned); i++ {
		if !isHexDigit(cleaned[i]) {
			return "", fmt.Errorf("%w: invalid color %q: unexpected symbol %q", bitforge.ErrParse, s, cleaned[i])
		}
	}
	return "#" + strings.ToUpper(cleaned), nil
}

// ParseHex parses a color in the "#RGB" or "#RRGGBB" form.
func ParseHex(s string) (RGB, error) {
	normalized, err := NormalizeHex(s)
	if err != nil {
		return RGB{}, err
	}
	v, err := strconv.ParseUint(normalized[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: invalid color %q: %v", bitforge.ErrParse, s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color in the "#RRGGBB" form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String returns the color in the CSS "rgb(r, g, b)" form.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Binary returns the 8-bit binary strings of the channels, separated with spaces.
func (c RGB) Binary() string {
	return ChannelBits(c.R) + " " + ChannelBits(c.G) + " " + ChannelBits(c.B)
}

// HSL converts the color to HSL. The components are rounded to integers, halves up.
func (c RGB) HSL() HSL {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	max, min := math.Max(r, math.Max(g, b)), math.Min(r, math.Min(g, b))
	l := (max + min) / 2
	if max == min {
		return HSL{L: round(l * 100)}
	}
	d := max - min
	var s, h float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return HSL{H: round(h / 6 * 360), S: round(s * 100), L: round(l * 100)}
}

// String returns the color in the CSS "hsl(h, s%, l%)" form.
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// ChannelBits returns v as an 8-digit binary string.
func ChannelBits(v uint8) string {
	return fmt.Sprintf("%08b", v)
}

func round(f float64) int {
	return int(math.Floor(f + 0.5))
}

func isHexDigit(b byte) bool {
	return '0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}
