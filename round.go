// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

// Round returns d rounded to n digits after the decimal point, rounding
// half to even. It returns ErrScaleRange if n is outside [0, MaxScale].
// When d's scale is already n or smaller, d is returned unchanged,
// trailing zeros included.
func (d Decimal) Round(n int) (Decimal, error) {
	if n < 0 || n > MaxScale {
		return Decimal{}, ErrScaleRange
	}
	if debugDecimal {
		d.validate()
	}
	scale := int(d.scale8())
	if scale <= n {
		return d, nil
	}

	// Divide out the dropped digits, keeping a sticky bit so that only
	// an exact half rounds to even.
	lo, hi := d.lo, d.hi
	drop := scale - n
	var sticky, rem, den uint32
	for drop > 0 {
		sticky |= rem
		k := drop
		if k > maxPow32 {
			k = maxPow32
		}
		den = uint32(pow10(k))
		rem = div96by32(&lo, &hi, den)
		drop -= k
	}

	half := den >> 1 // power of ten, always even
	if rem > half || (rem == half && (low32(lo)&1|sticky) != 0) {
		// Cannot carry past 96 bits: the mantissa just shrank by at
		// least one digit.
		lo, hi, _ = add96(lo, hi, 1)
	}
	return Decimal{lo: lo, hi: hi, flags: d.flags&signMask | uint32(n)<<scaleShift}, nil
}

// Truncate returns d with its fractional digits removed, rounding toward
// zero. The result has scale 0.
func (d Decimal) Truncate() Decimal {
	if debugDecimal {
		d.validate()
	}
	lo, hi, _ := d.dropFraction()
	return Decimal{lo: lo, hi: hi, flags: d.flags & signMask}
}

// Floor returns the largest integral decimal not greater than d. Negative
// values with a fractional part round away from zero.
func (d Decimal) Floor() Decimal {
	if debugDecimal {
		d.validate()
	}
	lo, hi, frac := d.dropFraction()
	if frac && d.flags&signMask != 0 {
		// The truncated magnitude lost at least one digit, so this
		// cannot carry past 96 bits.
		lo, hi, _ = add96(lo, hi, 1)
	}
	return Decimal{lo: lo, hi: hi, flags: d.flags & signMask}
}

// dropFraction divides the mantissa by 10^scale and reports whether any
// non-zero fractional digit was discarded.
func (d Decimal) dropFraction() (lo uint64, hi uint32, frac bool) {
	lo, hi = d.lo, d.hi
	for scale := int(d.scale8()); scale > 0; {
		k := scale
		if k > maxPow32 {
			k = maxPow32
		}
		if div96by32(&lo, &hi, uint32(pow10(k))) != 0 {
			frac = true
		}
		scale -= k
	}
	return lo, hi, frac
}
