// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import "math/bits"

// Div returns d / e. It reports ErrDivisionByZero when e is zero and
// ErrOverflow when the quotient cannot be represented.
//
// The quotient is computed at the natural scale scale(d)-scale(e) first,
// then scaled up by powers of ten while a remainder persists and the
// quotient still has room, so an inexact quotient carries as many
// significant digits as fit in 96 bits. The final bit is rounded half to
// even, and trailing decimal zeros are trimmed, so an exact quotient is
// produced at its smallest scale.
func (d Decimal) Div(e Decimal) (Decimal, error) {
	if debugDecimal {
		d.validate()
		e.validate()
	}
	scale := int(d.scale8()) - int(e.scale8())
	sign := (d.flags ^ e.flags) & signMask

	var qlo uint64 // quotient bits 0-63
	var qhi uint32 // quotient bits 64-95

	if e.hi == 0 && e.lo <= maxUint32 {
		// Divisor fits in 32 bits. Easy divide.
		den := low32(e.lo)
		if den == 0 {
			return Decimal{}, ErrDivisionByZero
		}

		qlo, qhi = d.lo, d.hi
		rem := div96by32(&qlo, &qhi, den)

		for {
			var cur int
			if rem == 0 {
				if scale >= 0 {
					break
				}
				cur = -scale
				if cur > maxPow32 {
					cur = maxPow32
				}
			} else {
				// A non-zero remainder: the quotient gains
				// significant digits while it has room.
				cur = searchScale(qlo, qhi, scale)
				if cur == 0 {
					// No more room. Round the quotient.
					tmp := rem << 1
					if tmp < rem || tmp > den ||
						(tmp == den && qlo&1 != 0) {
						qlo, qhi, _ = add96(qlo, qhi, 1)
					}
					break
				}
				if cur < 0 {
					return Decimal{}, ErrOverflow
				}
				if cur > maxPow32 {
					cur = maxPow32
				}
			}

			pwr := uint32(pow10(cur))
			scale += cur
			if mul96by32(&qlo, &qhi, pwr) != 0 {
				return Decimal{}, ErrOverflow
			}
			// rem*pwr < den << 32, so a single narrowing divide
			// suffices.
			num := uint64(rem) * uint64(pwr)
			var q32 uint32
			q32, rem = div64by32(low32(num), high32(num), den)
			qlo, qhi, _ = add96(qlo, qhi, uint64(q32))
		}
	} else if e.hi == 0 {
		// 64-bit divisor. Normalize so that its top bit is set; the
		// dividend shifts by the same amount, leaving the quotient
		// unchanged.
		shift := uint(31 - msb32(high32(e.lo)))
		remLo := d.lo << shift
		remHi := shl128(d.lo, uint64(d.hi), shift)
		den := e.lo << shift

		// remHi < 2^63 <= den, so the 128/64 divide cannot trap.
		var rem uint64
		qlo, rem = div128by64(remLo, remHi, den)

		for {
			var cur int
			if rem == 0 {
				if scale >= 0 {
					break
				}
				cur = -scale
				if cur > maxPow64 {
					cur = maxPow64
				}
			} else {
				cur = searchScale(qlo, qhi, scale)
				if cur == 0 {
					tmp := rem
					if tmp >= 1<<63 || tmp<<1 > den ||
						(tmp<<1 == den && qlo&1 != 0) {
						qlo, qhi, _ = add96(qlo, qhi, 1)
					}
					break
				}
				if cur < 0 {
					return Decimal{}, ErrOverflow
				}
			}

			if cur > maxPow32 {
				cur = maxPow32
			}
			pwr := uint32(pow10(cur))
			scale += cur
			if mul96by32(&qlo, &qhi, pwr) != 0 {
				return Decimal{}, ErrOverflow
			}
			// The remainder fits in 64 bits, so one widening
			// multiply grows it to at most 96.
			h, l := mul64by32(rem, pwr)
			q32 := div96by64(&l, h, den)
			rem = l
			qlo, qhi, _ = add96(qlo, qhi, uint64(q32))
		}
	} else {
		// 96-bit divisor. Normalize on the top 32-bit word.
		shift := uint(31 - msb32(e.hi))
		var rem [6]uint32
		put64(rem[:], 0, d.lo<<shift)
		put64(rem[:], 2, shl128(d.lo, uint64(d.hi), shift))
		denLo := e.lo << shift
		denHi := uint32(shl128(e.lo, uint64(e.hi), shift))

		qlo = uint64(div128by96(rem[:4], denLo, denHi))

		for {
			var cur int
			if get64(rem[:], 0)|uint64(rem[2]) == 0 {
				if scale >= 0 {
					break
				}
				cur = -scale
				if cur > maxPow64 {
					cur = maxPow64
				}
			} else {
				cur = searchScale(qlo, qhi, scale)
				if cur == 0 {
					// Round: compare twice the remainder
					// against the divisor.
					if rem[2] >= 1<<31 {
						qlo, qhi, _ = add96(qlo, qhi, 1)
						break
					}
					rlo, c := bits.Add64(get64(rem[:], 0), get64(rem[:], 0), 0)
					rhi := rem[2]<<1 | uint32(c)
					if rhi > denHi || (rhi == denHi &&
						(rlo > denLo || (rlo == denLo && qlo&1 != 0))) {
						qlo, qhi, _ = add96(qlo, qhi, 1)
					}
					break
				}
				if cur < 0 {
					return Decimal{}, ErrOverflow
				}
			}

			pwr := pow10(cur)
			scale += cur
			if mul96by64(&qlo, &qhi, pwr) != 0 {
				return Decimal{}, ErrOverflow
			}
			over := increaseScale96by64(rem[:], pwr)
			put64(rem[:], 3, over)
			quo := div160by96(rem[:], denLo, denHi)
			var c uint64
			qlo, c = bits.Add64(qlo, quo, 0)
			qhi += uint32(c)
		}
	}

	// An exact quotient takes its shortest form: peel off trailing
	// decimal zeros by test-dividing by 10^8, 10^4, 10^2 and 10, keeping
	// a division only when its remainder is zero. Since 10 = 2*5, a
	// factor of two is a cheap pre-test.
	for qlo&0xff == 0 && scale >= 8 {
		sl, sh := qlo, qhi
		if div96by32(&sl, &sh, 100000000) != 0 {
			break
		}
		qlo, qhi = sl, sh
		scale -= 8
	}
	if qlo&0xf == 0 && scale >= 4 {
		sl, sh := qlo, qhi
		if div96by32(&sl, &sh, 10000) == 0 {
			qlo, qhi = sl, sh
			scale -= 4
		}
	}
	if qlo&3 == 0 && scale >= 2 {
		sl, sh := qlo, qhi
		if div96by32(&sl, &sh, 100) == 0 {
			qlo, qhi = sl, sh
			scale -= 2
		}
	}
	if qlo&1 == 0 && scale >= 1 {
		sl, sh := qlo, qhi
		if div96by32(&sl, &sh, 10) == 0 {
			qlo, qhi = sl, sh
			scale -= 1
		}
	}

	res := Decimal{lo: qlo, hi: qhi, flags: sign | uint32(scale)<<scaleShift}
	if debugDecimal {
		res.validate()
	}
	return res, nil
}

// get64 reads the 64-bit value stored at 32-bit words a[i] and a[i+1].
func get64(a []uint32, i int) uint64 {
	return uint64(a[i]) | uint64(a[i+1])<<32
}

func put64(a []uint32, i int, v uint64) {
	a[i] = uint32(v)
	a[i+1] = uint32(v >> 32)
}

// div96by64 divides the 96-bit dividend (*lo, hi) by den, yielding a 32-bit
// quotient and a 64-bit remainder written to *lo. den must be larger than
// the upper 64 bits of the dividend.
func div96by64(lo *uint64, hi uint32, den uint64) uint32 {
	num := *lo
	var quo uint32
	var rem uint64

	if hi >= high32(den) {
		// The divide would overflow. Assume a quotient of 2^32 and
		// set up the remainder accordingly, then reduce the quotient
		// in the correction loop below.
		rem = uint64(high32(num)-low32(den))<<32 | uint64(low32(num))
		quo = 0
		for {
			quo--
			rem += den
			if rem < den {
				break
			}
		}
		*lo = rem
		return quo
	}

	if hi == 0 && num < den {
		// The quotient is zero, the entire dividend is remainder.
		return 0
	}

	var r32 uint32
	quo, r32 = div64by32(high32(num), hi, high32(den))

	// Full remainder: rem = dividend - quo*divisor.
	prod := uint64(quo) * uint64(low32(den))
	rem = uint64(r32)<<32 | uint64(low32(num))
	var borrow uint64
	rem, borrow = bits.Sub64(rem, prod, 0)
	if borrow != 0 {
		// The trial quotient was high by at most two.
		for {
			quo--
			rem += den
			if rem < den {
				break
			}
		}
	}
	*lo = rem
	return quo
}

// div128by96 partial-divides the 128-bit dividend in num[0..3] by the
// normalized 96-bit divisor (denLo, denHi), yielding a 32-bit quotient.
// The 96-bit remainder overwrites num[0..2]. The divisor's top word must
// exceed the dividend's.
func div128by96(num []uint32, denLo uint64, denHi uint32) uint32 {
	if num[3] == 0 && num[2] < denHi {
		// The quotient is zero, the entire dividend is remainder.
		return 0
	}

	quo, r32 := div64by32(num[2], num[3], denHi)

	// Full remainder: rem = dividend - quo*divisor.
	prodHi, prodLo := mul64by32(denLo, quo)
	sdl, b := bits.Sub64(get64(num, 0), prodLo, 0)
	nhi, b2 := bits.Sub32(r32, prodHi, uint32(b))
	num[2] = nhi
	if b2 != 0 {
		// Remainder went negative. Add the divisor back until it
		// turns positive, at most twice.
		for {
			quo--
			var c uint64
			sdl, c = bits.Add64(sdl, denLo, 0)
			var c2 uint32
			num[2], c2 = bits.Add32(num[2], denHi, uint32(c))
			if c2 != 0 {
				break
			}
		}
	}
	put64(num, 0, sdl)
	return quo
}

// div160by96 partial-divides the 160-bit dividend in num[0..4] by the
// normalized 96-bit divisor, yielding a 64-bit quotient. The 96-bit
// remainder overwrites num[0..2].
func div160by96(num []uint32, denLo uint64, denHi uint32) uint64 {
	var quo uint64
	if get64(num, 3) >= uint64(denHi) {
		quo = uint64(div128by96(num[1:5], denLo, denHi)) << 32
	}
	return quo + uint64(div128by96(num[0:4], denLo, denHi))
}

// increaseScale96by64 multiplies the 96-bit value in num[0..2] by pwr in
// place and returns bits 96-159 of the product.
func increaseScale96by64(num []uint32, pwr uint64) uint64 {
	h, l := bits.Mul64(get64(num, 0), pwr)
	oh, ol := bits.Mul64(uint64(num[2]), pwr)
	var c uint64
	ol, c = bits.Add64(ol, h, 0)
	oh += c
	put64(num, 0, l)
	num[2] = uint32(ol)
	return oh<<32 | ol>>32
}
