package word

import (
	"fmt"
	"math/big"
	"math/bits"
)

// natValue is a masked magnitude on the native path.
type natValue uint64

func (natValue) value() {}

// native is the Arith for widths of 64 bits or less, backed by uint64
// arithmetic with hardware carry detection via math/bits.
type native struct {
	width uint
	mask  uint64
}

func newNative(width uint) (a *native) {
	a = &native{width: width}
	if width == 64 {
		a.mask = ^uint64(0)
	} else {
		a.mask = (uint64(1) << width) - 1
	}

	return
}

func (a *native) nat(v Value) uint64 {
	return uint64(v.(natValue))
}

func (a *native) Width() uint {
	return a.width
}

func (a *native) Zero() Value {
	return natValue(0)
}

func (a *native) FromUint64(raw uint64) Value {
	return natValue(raw & a.mask)
}

func (a *native) Parse(s string) (v Value, err error) {
	i, err := parseMagnitude(s)
	if err != nil {
		return
	}

	i.And(i, new(big.Int).SetUint64(a.mask))
	v = natValue(i.Uint64())

	return
}

func (a *native) Add(x, y Value) (v Value, carry bool) {
	sum, out := bits.Add64(a.nat(x), a.nat(y), 0)
	carry = out == 1 || sum > a.mask
	v = natValue(sum & a.mask)

	return
}

func (a *native) Sub(x, y Value) (v Value, borrow bool) {
	diff, out := bits.Sub64(a.nat(x), a.nat(y), 0)
	borrow = out == 1
	v = natValue(diff & a.mask)

	return
}

func (a *native) Mul(x, y Value) Value {
	return natValue((a.nat(x) * a.nat(y)) & a.mask)
}

func (a *native) Div(x, y Value) Value {
	return natValue((a.nat(x) / a.nat(y)) & a.mask)
}

func (a *native) And(x, y Value) Value {
	return natValue(a.nat(x) & a.nat(y))
}

func (a *native) Or(x, y Value) Value {
	return natValue(a.nat(x) | a.nat(y))
}

func (a *native) Xor(x, y Value) Value {
	return natValue(a.nat(x) ^ a.nat(y))
}

func (a *native) Not(x Value) Value {
	return natValue(^a.nat(x) & a.mask)
}

func (a *native) Shl(x Value, n uint64) Value {
	if n >= uint64(a.width) {
		return natValue(0)
	}

	return natValue((a.nat(x) << n) & a.mask)
}

func (a *native) Shr(x Value, n uint64) Value {
	if n >= uint64(a.width) {
		return natValue(0)
	}

	return natValue(a.nat(x) >> n)
}

func (a *native) IsZero(x Value) bool {
	return a.nat(x) == 0
}

func (a *native) SignBit(x Value) bool {
	return (a.nat(x)>>(a.width-1))&1 == 1
}

func (a *native) Big(x Value) *big.Int {
	return new(big.Int).SetUint64(a.nat(x))
}

func (a *native) Signed(x Value) (i *big.Int) {
	i = a.Big(x)
	if a.SignBit(x) {
		i.Sub(i, new(big.Int).Lsh(big.NewInt(1), a.width))
	}

	return
}

func (a *native) Format(x Value) string {
	return fmt.Sprintf("%d", a.nat(x))
}

func (a *native) Hex(x Value) string {
	return fmt.Sprintf("0x%X", a.nat(x))
}

func (a *native) Binary(x Value) string {
	return fmt.Sprintf("%0*b", int(a.width), a.nat(x))
}

func (a *native) Addr(x Value) (addr uint64, ok bool) {
	return a.nat(x), true
}
