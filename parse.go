// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import "github.com/pkg/errors"

// Absorbing another digit is safe while the mantissa is below this value:
// one more multiply by ten plus any digit still fits in 96 bits. At exactly
// this value only the digits 0 to 5 fit (see absorbOK).
const (
	absorbMaxHi  = 0x19999999
	absorbMaxMid = 0x99999999
	absorbMaxLo  = 0x99999999
)

// FromDigits converts a string of ASCII decimal digits, a decimal exponent
// applied to the digit string read as an integer, and a sign into a
// decimal. Digits beyond the 96-bit mantissa capacity are rounded half to
// even. It returns ErrOverflow when the value's magnitude is too large.
//
// When the leading digit lies beyond the 29th decimal place (exp+len(digits)
// <= -29), the value collapses to a mantissa-zero decimal with scale 27; the
// non-zero scale marker on such zeros is kept for compatibility with existing
// consumers. A leading digit at the 29th place rounds normally at scale 28.
func FromDigits(digits string, exp int, neg bool) (Decimal, error) {
	for i := 0; i < len(digits); i++ {
		if c := digits[i]; c < '0' || c > '9' {
			return Decimal{}, errors.Errorf("decimal: invalid digit %q in %q", c, digits)
		}
	}

	// e tracks the decimal-point position relative to the digits
	// consumed so far: the value equals 0.<digits> x 10^e.
	e := exp + len(digits)
	var lo uint64
	var hi uint32

	if len(digits) == 0 {
		if e > 0 {
			e = 0
		}
	} else {
		if e > MaxScale+1 {
			return Decimal{}, ErrOverflow
		}

		p := 0
		for (e > 0 || (p < len(digits) && e > -MaxScale)) && absorbOK(lo, hi, digitAt(digits, p)) {
			hi2 := mul96by32(&lo, &hi, 10)
			if debugDecimal && hi2 != 0 {
				panic("mantissa overflow while absorbing digits")
			}
			if p < len(digits) {
				lo, hi, _ = add96(lo, hi, uint64(digits[p]-'0'))
				p++
			}
			e--
		}

		if digitAt(digits, p) >= '5' {
			round := true
			if digitAt(digits, p) == '5' && prevDigit(digits, p)%2 == 0 {
				// A bare 5 after an even digit may still be a
				// tie: scan up to 20 more digits for a
				// non-zero one.
				p++
				count := 20
				for p < len(digits) && digits[p] == '0' && count != 0 {
					p++
					count--
				}
				if p == len(digits) || count == 0 {
					round = false
				}
			}
			if round {
				lo, hi, _ = add96(lo, hi, 1)
				if lo|uint64(hi) == 0 {
					// The mantissa was at its maximum and
					// wrapped: fold the carry into one
					// more power of ten.
					hi = absorbMaxHi
					lo = uint64(absorbMaxMid)<<32 | uint64(absorbMaxLo+1)
					e++
				}
			}
		}
	}

	if e > 0 {
		return Decimal{}, ErrOverflow
	}

	d := Decimal{}
	if e <= -(MaxScale + 1) {
		// More precision than fits: this only happens for zeros and
		// values that round to zero.
		d = Decimal{flags: (MaxScale - 1) << scaleShift}
	} else {
		d = Decimal{lo: lo, hi: hi, flags: uint32(-e) << scaleShift}
	}
	if neg {
		d.flags |= signMask
	}
	if debugDecimal {
		d.validate()
	}
	return d, nil
}

// digitAt returns the digit at index i, or 0 when i is past the end.
func digitAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// prevDigit returns the last absorbed digit before index i, or an even
// placeholder when no digit was absorbed.
func prevDigit(s string, i int) byte {
	if i > 0 {
		return s[i-1]
	}
	return '0'
}

// absorbOK reports whether the mantissa can take one more digit. The next
// digit participates in the boundary case where the low word is all nines.
func absorbOK(lo uint64, hi uint32, next byte) bool {
	l, m := low32(lo), high32(lo)
	return hi < absorbMaxHi || (hi == absorbMaxHi &&
		(m < absorbMaxMid || (m == absorbMaxMid &&
			(l < absorbMaxLo || (l == absorbMaxLo && next <= '5')))))
}
