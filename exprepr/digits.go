// Package exprepr implements the signed-digit exponent representation spec
// §9 "Signed-digit exponents" describes: compact `{-1, 0, 1}` digit vectors
// used to drive the unrolled Miller loop and hard-exponentiation builders
// without ever looping at script-evaluation time (every digit is consumed
// at compile time, one symbolic squaring/multiplication per digit).
package exprepr

import (
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"
)

// Digits is a signed-digit representation of an integer exponent, stored as
// two bitsets (instead of a []int8) so a curve's Miller-loop or hard-exponent
// expansion — often several hundred digits for MNT4-753 — stays compact.
// Digit i (0 is the least significant) is:
//
//	magnitude.Test(i) == false            -> 0
//	magnitude.Test(i) == true, sign unset -> +1
//	magnitude.Test(i) == true, sign set   -> -1
type Digits struct {
	magnitude *bitset.BitSet
	sign      *bitset.BitSet
	length    uint
}

// New builds a Digits of the given length, every digit initially 0.
func New(length uint) *Digits {
	return &Digits{
		magnitude: bitset.New(length),
		sign:      bitset.New(length),
		length:    length,
	}
}

// Len returns the number of digit slots (including leading zero digits).
func (d *Digits) Len() uint { return d.length }

// Set stores digit v (must be -1, 0 or 1) at position i, most-significant
// digit last counted from 0.
func (d *Digits) Set(i uint, v int) error {
	if i >= d.length {
		return fmt.Errorf("exprepr: digit index %d out of range [0, %d)", i, d.length)
	}
	switch v {
	case 0:
		d.magnitude.Clear(i)
		d.sign.Clear(i)
	case 1:
		d.magnitude.Set(i)
		d.sign.Clear(i)
	case -1:
		d.magnitude.Set(i)
		d.sign.Set(i)
	default:
		return fmt.Errorf("exprepr: digit must be -1, 0 or 1, got %d", v)
	}
	return nil
}

// At returns the digit at position i.
func (d *Digits) At(i uint) int {
	if !d.magnitude.Test(i) {
		return 0
	}
	if d.sign.Test(i) {
		return -1
	}
	return 1
}

// MSBToLSB returns the digit sequence most-significant first, the order the
// Miller-loop and hard-exponentiation builders unroll in (spec §4.5/§4.7:
// "MSB to LSB over the signed-digit exponent expansion").
func (d *Digits) MSBToLSB() []int {
	out := make([]int, d.length)
	for i := uint(0); i < d.length; i++ {
		out[d.length-1-i] = d.At(i)
	}
	return out
}

// Int recovers the integer value sum(digit_i * 2^i) the representation
// encodes, for use in tests and in curve-parameter-table self-checks.
func (d *Digits) Int() *big.Int {
	out := new(big.Int)
	pow := new(big.Int).SetInt64(1)
	two := big.NewInt(2)
	for i := uint(0); i < d.length; i++ {
		if v := d.At(i); v != 0 {
			term := new(big.Int).Set(pow)
			if v < 0 {
				term.Neg(term)
			}
			out.Add(out, term)
		}
		pow.Mul(pow, two)
	}
	return out
}

// FromNAF builds a Digits from n's non-adjacent form, the canonical minimal-
// weight signed-digit expansion used for the Miller-loop and hard-exponent
// tables embedded in curveparams. n must be non-negative.
func FromNAF(n *big.Int) (*Digits, error) {
	if n.Sign() < 0 {
		return nil, fmt.Errorf("exprepr: FromNAF requires a non-negative integer, got %s", n.String())
	}
	if n.Sign() == 0 {
		return New(1), nil
	}

	k := new(big.Int).Set(n)
	two := big.NewInt(2)
	four := big.NewInt(4)
	var digits []int
	for k.Sign() != 0 {
		if k.Bit(0) == 1 {
			mod4 := new(big.Int).Mod(k, four).Int64()
			if mod4 == 3 {
				digits = append(digits, -1)
				k.Add(k, big.NewInt(1))
			} else {
				digits = append(digits, 1)
				k.Sub(k, big.NewInt(1))
			}
		} else {
			digits = append(digits, 0)
		}
		k.Div(k, two)
	}

	out := New(uint(len(digits)))
	for i, v := range digits {
		if err := out.Set(uint(i), v); err != nil {
			return nil, err
		}
	}
	return out, nil
}
