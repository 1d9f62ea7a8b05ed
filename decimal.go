// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import (
	"errors"
	"fmt"
)

const debugDecimal = true

const (
	// MaxScale is the largest power of ten by which the mantissa may be
	// scaled down. A scale of 0 denotes an integral value.
	MaxScale = 28

	// scale and sign live in the flags word: bits 16-23 hold the scale,
	// bit 31 holds the sign. All other bits are reserved and must be zero.
	scaleShift = 16
	scaleMask  = 0xff << scaleShift
	signMask   = 1 << 31
	flagsMask  = scaleMask | signMask
)

// Arithmetic errors. Operations report these unwrapped; the marshalling
// layer may add context around them.
var (
	ErrOverflow       = errors.New("decimal overflow")
	ErrDivisionByZero = errors.New("decimal division by zero")
	ErrScaleRange     = errors.New("scale out of range")
)

// A Decimal is a fixed-point decimal number with a 96-bit unsigned mantissa,
// a scale in [0, MaxScale] and a sign. The represented value is
//
//	(-1)^sign × mantissa × 10^-scale
//
// The zero value is ready to use and denotes 0 (scale 0).
//
// Decimals are immutable values: operations take their operands by value and
// return fresh results. Two decimals may represent the same number at
// different scales (1, 1.0 and 1.00 differ in scale but compare equal via
// Cmp). Equality of the struct itself is representation equality.
type Decimal struct {
	lo    uint64 // mantissa bits 0-63
	hi    uint32 // mantissa bits 64-95
	flags uint32 // scale and sign
}

// New returns the decimal with the given 96-bit mantissa words (least
// significant first), sign and scale. It returns ErrScaleRange if scale is
// outside [0, MaxScale].
func New(lo, mid, hi uint32, neg bool, scale int) (Decimal, error) {
	if scale < 0 || scale > MaxScale {
		return Decimal{}, ErrScaleRange
	}
	d := Decimal{
		lo:    uint64(mid)<<32 | uint64(lo),
		hi:    hi,
		flags: uint32(scale) << scaleShift,
	}
	if neg {
		d.flags |= signMask
	}
	return d, nil
}

// FromUint64 returns the decimal representing x at scale 0.
func FromUint64(x uint64) Decimal {
	return Decimal{lo: x}
}

// FromInt64 returns the decimal representing x at scale 0.
func FromInt64(x int64) Decimal {
	if x < 0 {
		// two's complement negation also covers MinInt64
		return Decimal{lo: uint64(-x), flags: signMask}
	}
	return Decimal{lo: uint64(x)}
}

// Scale returns the number of digits after the decimal point.
func (d Decimal) Scale() int {
	return int(d.flags&scaleMask) >> scaleShift
}

// Signbit reports whether the sign bit of d is set. It is true for a
// negative zero.
func (d Decimal) Signbit() bool {
	return d.flags&signMask != 0
}

// Sign returns -1, 0 or +1 depending on whether d is negative, zero or
// positive. A negative zero has sign 0.
func (d Decimal) Sign() int {
	if d.lo|uint64(d.hi) == 0 {
		return 0
	}
	if d.flags&signMask != 0 {
		return -1
	}
	return 1
}

// IsZero reports whether d has a zero mantissa, regardless of sign and
// scale.
func (d Decimal) IsZero() bool {
	return d.lo|uint64(d.hi) == 0
}

// Neg returns d with its sign flipped. Negating a zero yields a negative
// zero, which compares equal to zero.
func (d Decimal) Neg() Decimal {
	d.flags ^= signMask
	return d
}

// Abs returns d with a cleared sign bit.
func (d Decimal) Abs() Decimal {
	d.flags &^= signMask
	return d
}

func (d Decimal) scale8() uint32 {
	return (d.flags & scaleMask) >> scaleShift
}

// setScale stamps scale and keeps the sign bit. scale must be in
// [0, MaxScale].
func (d Decimal) setScale(scale int) Decimal {
	d.flags = d.flags&signMask | uint32(scale)<<scaleShift
	return d
}

func (d Decimal) validate() {
	if !debugDecimal {
		// avoid performance bugs
		panic("validate called but debugDecimal is not set")
	}
	if d.flags&^flagsMask != 0 {
		panic(fmt.Sprintf("reserved flag bits set: %#08x", d.flags))
	}
	if s := d.scale8(); s > MaxScale {
		panic(fmt.Sprintf("scale %d out of range", s))
	}
}

// Cmp compares d and e and returns -1, 0 or +1. Comparison is by numeric
// value: scale is aligned first, and zeros compare equal regardless of sign
// and scale.
func (d Decimal) Cmp(e Decimal) int {
	ds, es := d.Sign(), e.Sign()
	if ds != es {
		if ds < es {
			return -1
		}
		return 1
	}
	if ds == 0 {
		return 0
	}
	// same non-zero sign, compare aligned magnitudes
	c := cmpMagnitude(d, e)
	if ds < 0 {
		c = -c
	}
	return c
}

// cmpMagnitude compares |d| and |e| after aligning their scales. The
// smaller-scaled magnitude is widened into a 3-word buffer, so alignment
// itself cannot overflow.
func cmpMagnitude(d, e Decimal) int {
	sd, se := int(d.scale8()), int(e.scale8())
	if sd == se {
		return cmp96(d.lo, d.hi, e.lo, e.hi)
	}
	if sd < se {
		return -cmpMagnitude(e, d)
	}
	// sd > se: widen e by 10^(sd-se) and compare against d's 96 bits.
	var buf [3]uint64
	hiw := upscale(&buf, e, sd-se)
	if hiw > 1 || buf[1] > maxUint32 {
		return -1
	}
	return cmp96(d.lo, d.hi, buf[0], uint32(buf[1]))
}

func cmp96(alo uint64, ahi uint32, blo uint64, bhi uint32) int {
	switch {
	case ahi != bhi:
		if ahi < bhi {
			return -1
		}
		return 1
	case alo != blo:
		if alo < blo {
			return -1
		}
		return 1
	}
	return 0
}
