// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package bitops implements bitwise operations over arbitrary-precision integers.
//
// And, Or and Xor are unbounded. Not, Nand, Nor and Xnor mask the complement
// to the given bit width. Shl and Shr are unbounded arithmetic shifts, while
// Ushr, Rol and Ror work on the operand masked to the bit width. Shift counts
// are limited, see Operator.
package bitops

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/avdva/bitforge"
	mu "github.com/avdva/bitforge/internal/mathutil"
)

// Op is a bitwise operation.
type Op int

const (
	And Op = iota
	Or
	Xor
	Not
	Nand
	Nor
	Xnor
	Shl
	Shr
	Ushr
	Rol
	Ror

	numOps
)

var (
	opNames = [numOps]string{
		And:  "and",
		Or:   "or",
		Xor:  "xor",
		Not:  "not",
		Nand: "nand",
		Nor:  "nor",
		Xnor: "xnor",
		Shl:  "shl",
		Shr:  "shr",
		Ushr: "ushr",
		Rol:  "rol",
		Ror:  "ror",
	}
	opSymbols = [numOps]string{
		And:  "&",
		Or:   "|",
		Xor:  "^",
		Not:  "~",
		Nand: "⊼",
		Nor:  "⊽",
		Xnor: "⊙",
		Shl:  "<<",
		Shr:  ">>",
		Ushr: ">>>",
		Rol:  "↻",
		Ror:  "↺",
	}
	aliases = map[string]Op{
		"<<":  Shl,
		">>":  Shr,
		">>>": Ushr,
	}
)

// DefaultMaxShift is the largest shift count magnitude allowed by default.
const DefaultMaxShift = 1 << 16

// Ops returns all operations in declaration order.
func Ops() []Op {
	res := make([]Op, numOps)
	for i := range res {
		res[i] = Op(i)
	}
	return res
}

// ParseOp returns an operation by its case-insensitive name.
// Shift symbols "<<", ">>" and ">>>" are accepted too.
func ParseOp(name string) (Op, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range opNames {
		if n == lower {
			return Op(i), nil
		}
	}
	if op, found := aliases[lower]; found {
		return op, nil
	}
	return 0, fmt.Errorf("%w: %q", bitforge.ErrUnsupportedOperation, name)
}

// String returns the lowercase name of the operation.
func (op Op) String() string {
	if op.valid() {
		return opNames[op]
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// Symbol returns a short symbol for the operation, like "&" or "<<".
func (op Op) Symbol() string {
	if op.valid() {
		return opSymbols[op]
	}
	return op.String()
}

// Binary returns true, if the operation uses the second operand.
func (op Op) Binary() bool {
	switch op {
	case And, Or, Xor, Nand, Nor, Xnor:
		return true
	default:
		return false
	}
}

// IsShift returns true for shifts and rotations.
func (op Op) IsShift() bool {
	switch op {
	case Shl, Shr, Ushr, Rol, Ror:
		return true
	default:
		return false
	}
}

func (op Op) valid() bool {
	return op >= 0 && op < numOps
}

// widthBound returns true for the operations, which need a positive bit width.
func (op Op) widthBound() bool {
	switch op {
	case Not, Nand, Nor, Xnor, Ushr, Rol, Ror:
		return true
	default:
		return false
	}
}

// Operator applies operations with a limit on shift counts.
// The zero value uses DefaultMaxShift.
type Operator struct {
	// MaxShift limits the magnitude of Shl, Shr and Ushr counts, 0 means DefaultMaxShift.
	// Rotation counts are taken modulo the width and are not limited.
	MaxShift int
}

// Operate applies op to the operands with the default shift limit.
// b is used by binary operations only, shift is used by shifts and rotations only.
// Returns an error for unknown operations, for non-positive widths where the width matters,
// and for shift counts beyond DefaultMaxShift.
func Operate(op Op, a, b *big.Int, width, shift int) (*big.Int, error) {
	return Operator{}.Operate(op, a, b, width, shift)
}

// Operate applies op to the operands. See the package level Operate.
func (o Operator) Operate(op Op, a, b *big.Int, width, shift int) (*big.Int, error) {
	if !op.valid() {
		return nil, fmt.Errorf("%w: %v", bitforge.ErrUnsupportedOperation, op)
	}
	if op.widthBound() && width <= 0 {
		return nil, fmt.Errorf("%w: %d", bitforge.ErrBitWidth, width)
	}
	if op == Shl || op == Shr || op == Ushr {
		if err := o.checkShift(shift); err != nil {
			return nil, err
		}
	}
	a, b = mu.OrZero(a), mu.OrZero(b)
	switch op {
	case And:
		return AndOf(a, b), nil
	case Or:
		return OrOf(a, b), nil
	case Xor:
		return XorOf(a, b), nil
	case Not:
		return NotOf(a, width), nil
	case Nand:
		return NotOf(AndOf(a, b), width), nil
	case Nor:
		return NotOf(OrOf(a, b), width), nil
	case Xnor:
		return NotOf(XorOf(a, b), width), nil
	case Shl:
		return ShiftLeft(a, shift), nil
	case Shr:
		return ShiftRight(a, shift), nil
	case Ushr:
		return UnsignedShiftRight(a, shift, width), nil
	case Rol:
		return RotateLeft(a, shift, width), nil
	case Ror:
		return RotateRight(a, shift, width), nil
	default:
		panic("unreachable")
	}
}

func (o Operator) checkShift(n int) error {
	limit := o.MaxShift
	if limit <= 0 {
		limit = DefaultMaxShift
	}
	if magnitude(n) > uint(limit) {
		return fmt.Errorf("%w: shift count %d exceeds %d", bitforge.ErrInvalidResult, n, limit)
	}
	return nil
}

// magnitude returns |n| without overflowing on the minimal int.
func magnitude(n int) uint {
	if n < 0 {
		return uint(-(n + 1)) + 1
	}
	return uint(n)
}

// OperateName is like Operate, but looks the operation up by name. See ParseOp.
func OperateName(name string, a, b *big.Int, width, shift int) (*big.Int, error) {
	op, err := ParseOp(name)
	if err != nil {
		return nil, err
	}
	return Operate(op, a, b, width, shift)
}

// AndOf returns a & b.
func AndOf(a, b *big.Int) *big.Int {
	return new(big.Int).And(mu.OrZero(a), mu.OrZero(b))
}

// OrOf returns a | b.
func OrOf(a, b *big.Int) *big.Int {
	return new(big.Int).Or(mu.OrZero(a), mu.OrZero(b))
}

// XorOf returns a ^ b.
func XorOf(a, b *big.Int) *big.Int {
	return new(big.Int).Xor(mu.OrZero(a), mu.OrZero(b))
}

// NotOf returns ^a masked to 'width' bits.
func NotOf(a *big.Int, width int) *big.Int {
	return new(big.Int).AndNot(mu.Mask(width), mu.OrZero(a))
}

// ShiftLeft returns a << n. A negative n shifts to the right.
// The count is not limited, see Operator for a bounded version.
func ShiftLeft(a *big.Int, n int) *big.Int {
	if n < 0 {
		return new(big.Int).Rsh(mu.OrZero(a), magnitude(n))
	}
	return new(big.Int).Lsh(mu.OrZero(a), uint(n))
}

// ShiftRight returns a >> n, keeping the sign. A negative n shifts to the left.
// The count is not limited, see Operator for a bounded version.
func ShiftRight(a *big.Int, n int) *big.Int {
	if n < 0 {
		return new(big.Int).Lsh(mu.OrZero(a), magnitude(n))
	}
	return new(big.Int).Rsh(mu.OrZero(a), uint(n))
}

// UnsignedShiftRight masks a to 'width' bits and shifts it right by n.
// The result is never negative.
func UnsignedShiftRight(a *big.Int, n, width int) *big.Int {
	masked := mu.Truncate(a, width)
	if n < 0 {
		return masked.Lsh(masked, magnitude(n))
	}
	return masked.Rsh(masked, uint(n))
}

// RotateLeft rotates the low 'width' bits of a to the left by n mod width.
func RotateLeft(a *big.Int, n, width int) *big.Int {
	if width <= 0 {
		return new(big.Int)
	}
	return rotate(mu.Truncate(a, width), uint(mu.EuclidMod(n, width)), width)
}

// RotateRight rotates the low 'width' bits of a to the right by n mod width.
func RotateRight(a *big.Int, n, width int) *big.Int {
	if width <= 0 {
		return new(big.Int)
	}
	left := mu.EuclidMod(width-mu.EuclidMod(n, width), width)
	return rotate(mu.Truncate(a, width), uint(left), width)
}

// rotate does a left rotation of an already masked value.
func rotate(masked *big.Int, n uint, width int) *big.Int {
	if n == 0 {
		return masked
	}
	hi := new(big.Int).Lsh(masked, n)
	lo := masked.Rsh(masked, uint(width)-n)
	hi.Or(hi, lo)
	return hi.And(hi, mu.Mask(width))
}
