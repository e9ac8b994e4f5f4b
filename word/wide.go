package word

import (
	"fmt"
	"math/big"
)

// wideValue is a masked magnitude on the big-integer path. The held
// integer is never mutated after construction.
type wideValue struct {
	i *big.Int
}

func (wideValue) value() {}

// wide is the Arith for widths above 64 bits. The backing integers have
// no native overflow signal, so carry and borrow come from explicit
// comparison against the mask boundary.
type wide struct {
	width uint
	mask  *big.Int // 2^width - 1
	bound *big.Int // 2^width
}

func newWide(width uint) (a *wide) {
	bound := new(big.Int).Lsh(big.NewInt(1), width)

	return &wide{
		width: width,
		mask:  new(big.Int).Sub(bound, big.NewInt(1)),
		bound: bound,
	}
}

func (a *wide) big(v Value) *big.Int {
	return v.(wideValue).i
}

func (a *wide) norm(i *big.Int) Value {
	return wideValue{i: i.And(i, a.mask)}
}

func (a *wide) Width() uint {
	return a.width
}

func (a *wide) Zero() Value {
	return wideValue{i: big.NewInt(0)}
}

func (a *wide) FromUint64(raw uint64) Value {
	return a.norm(new(big.Int).SetUint64(raw))
}

func (a *wide) Parse(s string) (v Value, err error) {
	i, err := parseMagnitude(s)
	if err != nil {
		return
	}

	v = a.norm(i)

	return
}

func (a *wide) Add(x, y Value) (v Value, carry bool) {
	sum := new(big.Int).Add(a.big(x), a.big(y))
	carry = sum.Cmp(a.bound) >= 0
	v = a.norm(sum)

	return
}

func (a *wide) Sub(x, y Value) (v Value, borrow bool) {
	borrow = a.big(x).Cmp(a.big(y)) < 0
	diff := new(big.Int).Sub(a.big(x), a.big(y))
	if borrow {
		diff.Add(diff, a.bound)
	}
	v = a.norm(diff)

	return
}

func (a *wide) Mul(x, y Value) Value {
	return a.norm(new(big.Int).Mul(a.big(x), a.big(y)))
}

func (a *wide) Div(x, y Value) Value {
	return a.norm(new(big.Int).Quo(a.big(x), a.big(y)))
}

func (a *wide) And(x, y Value) Value {
	return a.norm(new(big.Int).And(a.big(x), a.big(y)))
}

func (a *wide) Or(x, y Value) Value {
	return a.norm(new(big.Int).Or(a.big(x), a.big(y)))
}

func (a *wide) Xor(x, y Value) Value {
	return a.norm(new(big.Int).Xor(a.big(x), a.big(y)))
}

func (a *wide) Not(x Value) Value {
	// Xor with the mask instead of big.Int Not, which would go negative.
	return a.norm(new(big.Int).Xor(a.big(x), a.mask))
}

func (a *wide) Shl(x Value, n uint64) Value {
	if n >= uint64(a.width) {
		return a.Zero()
	}

	return a.norm(new(big.Int).Lsh(a.big(x), uint(n)))
}

func (a *wide) Shr(x Value, n uint64) Value {
	if n >= uint64(a.width) {
		return a.Zero()
	}

	return a.norm(new(big.Int).Rsh(a.big(x), uint(n)))
}

func (a *wide) IsZero(x Value) bool {
	return a.big(x).Sign() == 0
}

func (a *wide) SignBit(x Value) bool {
	return a.big(x).Bit(int(a.width)-1) == 1
}

func (a *wide) Big(x Value) *big.Int {
	return new(big.Int).Set(a.big(x))
}

func (a *wide) Signed(x Value) (i *big.Int) {
	i = a.Big(x)
	if a.SignBit(x) {
		i.Sub(i, a.bound)
	}

	return
}

func (a *wide) Format(x Value) string {
	return a.big(x).Text(10)
}

func (a *wide) Hex(x Value) string {
	return fmt.Sprintf("0x%X", a.big(x))
}

func (a *wide) Binary(x Value) string {
	return fmt.Sprintf("%0*b", int(a.width), a.big(x))
}

func (a *wide) Addr(x Value) (addr uint64, ok bool) {
	ok = a.big(x).IsUint64()
	if ok {
		addr = a.big(x).Uint64()
	}

	return
}
