// Package word implements width-parameterized machine word arithmetic.
//
// An Arith is fixed to a bit width at construction and performs all
// operations modulo 2^width: masked add/sub with carry/borrow detection,
// wrapping multiply, truncating divide, bitwise logic, logical shifts,
// and two's-complement decoding for display. Widths of 64 bits or less
// run on native uint64 arithmetic; wider configurations run on math/big
// with explicit comparison against the mask boundary for carry tracking.
//
// Values are opaque masked magnitudes. They are only meaningful to the
// Arith that produced them, and every operation returns a value already
// truncated to the configured width.
package word
