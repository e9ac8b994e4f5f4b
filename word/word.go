package word

import (
	"math/big"
)

// Value is a masked magnitude held by a register or memory cell.
// A Value is created by, and only valid with, an Arith of the same width.
type Value interface {
	value()
}

// Arith performs all arithmetic for one configured bit width.
// Inputs are assumed masked; every result is masked before return.
type Arith interface {
	// Width returns the configured bit width.
	Width() uint

	// Zero returns the zero value.
	Zero() Value

	// FromUint64 masks a raw uint64 into a Value.
	FromUint64(raw uint64) Value

	// Parse parses an unsigned literal (decimal, or prefixed 0x/0b/0o)
	// and masks it. Sign prefixes are rejected.
	Parse(s string) (Value, error)

	// Add returns the masked sum, and whether the unmasked sum
	// reached 2^width.
	Add(a, b Value) (Value, bool)

	// Sub returns the masked difference, and whether a < b (borrow).
	Sub(a, b Value) (Value, bool)

	// Mul returns the wrapping product.
	Mul(a, b Value) Value

	// Div returns the truncated quotient. The caller must reject a
	// zero divisor first; Div panics on one.
	Div(a, b Value) Value

	And(a, b Value) Value
	Or(a, b Value) Value
	Xor(a, b Value) Value
	Not(a Value) Value

	// Shl and Shr are logical shifts. Amounts of width or more yield 0.
	Shl(a Value, n uint64) Value
	Shr(a Value, n uint64) Value

	// IsZero reports whether the value is 0.
	IsZero(a Value) bool

	// SignBit reports whether bit width-1 is set.
	SignBit(a Value) bool

	// Big returns the unsigned magnitude as a big integer.
	Big(a Value) *big.Int

	// Signed returns the two's-complement decode of the magnitude.
	Signed(a Value) *big.Int

	// Format renders the magnitude in decimal.
	Format(a Value) string

	// Hex renders the magnitude as 0x-prefixed upper-case hex.
	Hex(a Value) string

	// Binary renders the magnitude in binary, zero-padded to exactly
	// width digits.
	Binary(a Value) string

	// Addr returns the magnitude as a uint64 index. ok is false when
	// the magnitude does not fit in 64 bits.
	Addr(a Value) (addr uint64, ok bool)
}

// New returns the Arith for the given width: native uint64 arithmetic
// through 64 bits, big-integer arithmetic above.
func New(width uint) (a Arith, err error) {
	if width == 0 {
		err = ErrWidthZero
		return
	}

	if width <= 64 {
		a = newNative(width)
	} else {
		a = newWide(width)
	}

	return
}

// parseMagnitude parses an unsigned literal of any size in base 0
// (decimal, 0x, 0b, 0o). Both arithmetic paths share it so that
// oversized literals mask down identically.
func parseMagnitude(s string) (i *big.Int, err error) {
	if len(s) == 0 || s[0] == '-' || s[0] == '+' {
		err = ErrNumber(s)
		return
	}

	i, ok := new(big.Int).SetString(s, 0)
	if !ok {
		err = ErrNumber(s)
		i = nil
	}

	return
}
