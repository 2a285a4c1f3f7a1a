// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package ieee754 splits IEEE-754 single and double precision numbers into
// their sign, exponent and mantissa fields, and puts them back together.
//
//   single: 31 30      23 22                    0
//           s  eeeeeeee  mmmmmmmmmmmmmmmmmmmmmmm
//   double: 63 62         52 51                                                  0
//           s  eeeeeeeeeee  mmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmmm
package ieee754

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/avdva/bitforge"
	mu "github.com/avdva/bitforge/internal/mathutil"
	"github.com/shopspring/decimal"
)

// Precision is a floating-point format.
type Precision int

const (
	// Single is the 32-bit binary32 format.
	Single Precision = 32
	// Double is the 64-bit binary64 format.
	Double Precision = 64
)

type layout struct {
	expBits, mantBits uint
	bias              int
}

var layouts = map[Precision]layout{
	Single: {expBits: 8, mantBits: 23, bias: 127},
	Double: {expBits: 11, mantBits: 52, bias: 1023},
}

func (p Precision) layout() layout {
	if l, found := layouts[p]; found {
		return l
	}
	return layouts[Double]
}

// Valid returns true for Single and Double.
func (p Precision) Valid() bool {
	_, found := layouts[p]
	return found
}

// ExponentBits returns the width of the exponent field.
func (p Precision) ExponentBits() int { return int(p.layout().expBits) }

// MantissaBits returns the width of the mantissa field.
func (p Precision) MantissaBits() int { return int(p.layout().mantBits) }

// Bias returns the exponent bias.
func (p Precision) Bias() int { return p.layout().bias }

// MaxExponent returns the all-ones exponent, used by infinities and NaNs.
func (p Precision) MaxExponent() uint64 { return 1<<p.layout().expBits - 1 }

// Class is a category of floating-point values.
type Class int

const (
	// Zero is a signed zero.
	Zero Class = iota
	// Denormal is a subnormal number with a zero exponent field.
	Denormal
	// Normal is a regular finite number.
	Normal
	// Infinity is a signed infinity.
	Infinity
	// NaN is not-a-number.
	NaN
)

func (c Class) String() string {
	switch c {
	case Zero:
		return "zero"
	case Denormal:
		return "denormal"
	case Normal:
		return "normal"
	case Infinity:
		return "infinity"
	case NaN:
		return "nan"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Fields are the parts of a floating-point number.
type Fields struct {
	Sign      uint8  `json:"sign" yaml:"sign"`
	Exponent  uint64 `json:"exponent" yaml:"exponent"`
	Mantissa  uint64 `json:"mantissa" yaml:"mantissa"`
	Bias      int    `json:"bias" yaml:"bias"`
	TotalBits int    `json:"total_bits" yaml:"total_bits"`
}

// Encode32 returns the fields of a single precision number.
func Encode32(f float32) Fields {
	return FromBits(uint64(math.Float32bits(f)), Single)
}

// Encode64 returns the fields of a double precision number.
func Encode64(f float64) Fields {
	return FromBits(math.Float64bits(f), Double)
}

// Encode returns the fields of f in the given precision.
// For Single, f is rounded to the nearest float32 first.
func Encode(f float64, p Precision) Fields {
	if p == Single {
		return Encode32(float32(f))
	}
	return Encode64(f)
}

// FromBits splits a raw bit pattern. For Single only the low 32 bits are used.
func FromBits(bits uint64, p Precision) Fields {
	if !p.Valid() {
		p = Double
	}
	l := p.layout()
	total := 1 + l.expBits + l.mantBits
	bits &= mu.Mask(int(total)).Uint64()
	return Fields{
		Sign:      uint8(bits >> (total - 1) & 1),
		Exponent:  bits >> l.mantBits & (1<<l.expBits - 1),
		Mantissa:  bits & (1<<l.mantBits - 1),
		Bias:      l.bias,
		TotalBits: int(total),
	}
}

// FromBytes splits a big-endian serialized number of 4 or 8 bytes.
func FromBytes(b []byte) (Fields, error) {
	switch len(b) {
	case 4:
		return FromBits(uint64(binary.BigEndian.Uint32(b)), Single), nil
	case 8:
		return FromBits(binary.BigEndian.Uint64(b), Double), nil
	default:
		return Fields{}, fmt.Errorf("%w: expected 4 or 8 bytes, got %d", bitforge.ErrParse, len(b))
	}
}

// Decode32 returns the single precision number of a raw bit pattern.
func Decode32(bits uint32) float32 {
	return math.Float32frombits(bits)
}

// Decode64 returns the double precision number of a raw bit pattern.
func Decode64(bits uint64) float64 {
	return math.Float64frombits(bits)
}

// Precision returns the format of the fields.
func (f Fields) Precision() Precision {
	if f.TotalBits == int(Single) {
		return Single
	}
	return Double
}

// Bits assembles the raw bit pattern.
func (f Fields) Bits() uint64 {
	l := f.Precision().layout()
	return uint64(f.Sign&1)<<(l.expBits+l.mantBits) |
		(f.Exponent&(1<<l.expBits-1))<<l.mantBits |
		f.Mantissa&(1<<l.mantBits-1)
}

// Bytes returns the big-endian serialization of the number.
func (f Fields) Bytes() []byte {
	if f.Precision() == Single {
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(f.Bits()))
		return b
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, f.Bits())
	return b
}

// Class returns the category of the number.
func (f Fields) Class() Class {
	switch {
	case f.Exponent == 0 && f.Mantissa == 0:
		return Zero
	case f.Exponent == 0:
		return Denormal
	case f.Exponent == f.Precision().MaxExponent() && f.Mantissa == 0:
		return Infinity
	case f.Exponent == f.Precision().MaxExponent():
		return NaN
	default:
		return Normal
	}
}

// ActualExponent returns the unbiased exponent. Denormals use 1-bias.
func (f Fields) ActualExponent() int {
	if f.Exponent == 0 {
		return 1 - f.Bias
	}
	return int(f.Exponent) - f.Bias
}

// Float64 computes the value from the fields:
//   zero:     ±0
//   denormal: (-1)^s × 2^(1-bias) × 0.mantissa
//   normal:   (-1)^s × 2^(exponent-bias) × 1.mantissa
//   max exponent: ±Inf for a zero mantissa, NaN otherwise.
func (f Fields) Float64() float64 {
	sign := 1
	if f.Sign == 1 {
		sign = -1
	}
	mantBits := f.Precision().MantissaBits()
	var res float64
	switch f.Class() {
	case Zero:
		res = 0
	case Infinity:
		return math.Inf(sign)
	case NaN:
		return math.NaN()
	case Denormal:
		res = math.Ldexp(float64(f.Mantissa), f.ActualExponent()-mantBits)
	default:
		res = math.Ldexp(float64(f.Mantissa|1<<uint(mantBits)), f.ActualExponent()-mantBits)
	}
	if sign < 0 {
		res = math.Copysign(res, -1)
	}
	return res
}

// Float32 returns the number as a float32. Exact for single precision fields.
func (f Fields) Float32() float32 {
	if f.Precision() == Single {
		return Decode32(uint32(f.Bits()))
	}
	return float32(f.Float64())
}

// SignBits returns the sign as a one-character binary string.
func (f Fields) SignBits() string {
	return strconv.Itoa(int(f.Sign & 1))
}

// ExponentBits returns the exponent field as a zero-padded binary string.
func (f Fields) ExponentBits() string {
	return mu.PadLeft(strconv.FormatUint(f.Exponent, 2), f.Precision().ExponentBits())
}

// MantissaBits returns the mantissa field as a zero-padded binary string.
func (f Fields) MantissaBits() string {
	return mu.PadLeft(strconv.FormatUint(f.Mantissa, 2), f.Precision().MantissaBits())
}

// FullBits returns the whole pattern as a zero-padded binary string.
func (f Fields) FullBits() string {
	return mu.PadLeft(strconv.FormatUint(f.Bits(), 2), f.TotalBits)
}

// Significand returns the exact value of the significand:
// 1.mantissa for normal numbers, 0.mantissa for zeros and denormals.
// Infinities and NaNs return the 1.mantissa form as well.
func (f Fields) Significand() decimal.Decimal {
	mantBits := f.Precision().MantissaBits()
	m := new(big.Int).SetUint64(f.Mantissa)
	if f.Exponent != 0 {
		m.SetBit(m, mantBits, 1)
	}
	// m / 2^k == m * 5^k / 10^k
	return decimal.NewFromBigInt(m.Mul(m, pow5(mantBits)), -int32(mantBits))
}

// Exact returns the exact decimal value of a finite number.
// Returns an error wrapping bitforge.ErrInvalidResult for infinities and NaNs.
// Note, that -0 has no decimal representation other than 0.
func (f Fields) Exact() (decimal.Decimal, error) {
	switch f.Class() {
	case Infinity, NaN:
		return decimal.Zero, fmt.Errorf("%w: %v has no exact value", bitforge.ErrInvalidResult, f.Class())
	case Zero:
		return decimal.Zero, nil
	}
	mantBits := f.Precision().MantissaBits()
	m := new(big.Int).SetUint64(f.Mantissa)
	if f.Exponent != 0 {
		m.SetBit(m, mantBits, 1)
	}
	if f.Sign == 1 {
		m.Neg(m)
	}
	e := f.ActualExponent() - mantBits
	if e >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(e)), 0), nil
	}
	return decimal.NewFromBigInt(m.Mul(m, pow5(-e)), int32(e)), nil
}

// Formula returns a short human readable form of the number, like
// "(-1)^0 × 2^1 × 1.5707963705062866", "-0", "+∞" or "NaN".
func (f Fields) Formula() string {
	switch f.Class() {
	case Zero:
		if f.Sign == 1 {
			return "-0"
		}
		return "+0"
	case NaN:
		return "NaN"
	case Infinity:
		if f.Sign == 1 {
			return "-∞"
		}
		return "+∞"
	}
	return fmt.Sprintf("(-1)^%d × 2^%d × %s", f.Sign, f.ActualExponent(), f.Significand().String())
}

func pow5(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(n)), nil)
}

// ParseFloat parses a floating-point number.
// Besides the strconv.ParseFloat syntax it accepts "Infinity", "+Infinity" and "-Infinity".
// Values beyond the float64 range overflow to ±Inf.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) {
		return f, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", bitforge.ErrParse, err)
	}
	return f, nil
}
