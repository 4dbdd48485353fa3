// Package math implements the fixed-point Decimal used for payout
// computation. A Decimal stores value * 10^18 (WAD) in an unsigned integer
// bounded to 192 bits. Every operation is checked: overflow, underflow and
// division by zero return a fault.Math error instead of wrapping.
package math

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"

	"github.com/coinbacked/coinbacked/cbgo/fault"
)

type U256 = uint256.Int

const (
	// Scale is the number of decimal digits after the point.
	Scale = 18
	// Bits bounds the raw representation.
	Bits = 192
)

// WAD is 10^Scale.
const WAD = uint64(1_000_000_000_000_000_000)

var wad = *uint256.NewInt(WAD)

// Decimal is immutable; all methods take and return values.
type Decimal struct {
	v U256
}

var Zero = Decimal{}

// One is the decimal value 1.
var One = Decimal{v: wad}

func bounded(v *U256) error {
	if v.BitLen() > Bits {
		return fault.Math.New("result exceeds %d bits", Bits)
	}
	return nil
}

// FromUint64 scales v by WAD. It cannot overflow.
func FromUint64(v uint64) Decimal {
	var out U256
	out.Mul(uint256.NewInt(v), &wad)
	return Decimal{v: out}
}

// FromUint128 scales the 128-bit integer hi<<64|lo by WAD. It cannot
// overflow 192 bits.
func FromUint128(hi, lo uint64) Decimal {
	x := U256{lo, hi, 0, 0}
	var out U256
	out.Mul(&x, &wad)
	return Decimal{v: out}
}

// FromRaw wraps an already scaled value.
func FromRaw(raw *U256) (Decimal, error) {
	if err := bounded(raw); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: *raw}, nil
}

// Raw returns a copy of the scaled representation.
func (d Decimal) Raw() *U256 {
	return d.v.Clone()
}

func (d Decimal) IsZero() bool {
	return d.v.IsZero()
}

func (d Decimal) Cmp(o Decimal) int {
	return d.v.Cmp(&o.v)
}

func (d Decimal) Eq(o Decimal) bool {
	return d.v.Eq(&o.v)
}

func (d Decimal) TryAdd(o Decimal) (Decimal, error) {
	var out U256
	if _, overflow := out.AddOverflow(&d.v, &o.v); overflow {
		return Decimal{}, fault.Math.New("add overflow")
	}
	if err := bounded(&out); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: out}, nil
}

func (d Decimal) TrySub(o Decimal) (Decimal, error) {
	var out U256
	if _, underflow := out.SubOverflow(&d.v, &o.v); underflow {
		return Decimal{}, fault.Math.New("sub underflow")
	}
	return Decimal{v: out}, nil
}

// TryMul multiplies the raw values and divides once by WAD. The product is
// formed in 256 bits, so only the normalized result has to fit 192 bits.
func (d Decimal) TryMul(o Decimal) (Decimal, error) {
	var out U256
	if _, overflow := out.MulOverflow(&d.v, &o.v); overflow {
		return Decimal{}, fault.Math.New("mul overflow")
	}
	out.Div(&out, &wad)
	if err := bounded(&out); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: out}, nil
}

// TryMulUint64 multiplies by an unscaled integer.
func (d Decimal) TryMulUint64(v uint64) (Decimal, error) {
	var out U256
	if _, overflow := out.MulOverflow(&d.v, uint256.NewInt(v)); overflow {
		return Decimal{}, fault.Math.New("mul overflow")
	}
	if err := bounded(&out); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: out}, nil
}

// TryDiv scales the dividend by WAD before dividing by the divisor's raw
// value.
func (d Decimal) TryDiv(o Decimal) (Decimal, error) {
	if o.v.IsZero() {
		return Decimal{}, fault.Math.New("division by zero")
	}
	var out U256
	if _, overflow := out.MulOverflow(&d.v, &wad); overflow {
		return Decimal{}, fault.Math.New("div overflow")
	}
	out.Div(&out, &o.v)
	if err := bounded(&out); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: out}, nil
}

// TryDivUint64 divides by an unscaled integer.
func (d Decimal) TryDivUint64(v uint64) (Decimal, error) {
	if v == 0 {
		return Decimal{}, fault.Math.New("division by zero")
	}
	var out U256
	out.Div(&d.v, uint256.NewInt(v))
	return Decimal{v: out}, nil
}

// TryFloorUint64 drops the fractional part and returns the integer, failing
// if it does not fit 64 bits.
func (d Decimal) TryFloorUint64() (uint64, error) {
	var out U256
	out.Div(&d.v, &wad)
	if !out.IsUint64() {
		return 0, fault.Math.New("floor exceeds 64 bits")
	}
	return out.Uint64(), nil
}

// String renders the value with the point Scale digits from the right.
func (d Decimal) String() string {
	digits := d.v.ToBig().String()
	if len(digits) <= Scale {
		return "0." + strings.Repeat("0", Scale-len(digits)) + digits
	}
	return digits[:len(digits)-Scale] + "." + digits[len(digits)-Scale:]
}

// Big returns the scaled representation as a big.Int.
func (d Decimal) Big() *big.Int {
	return d.v.ToBig()
}
