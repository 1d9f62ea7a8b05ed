// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import "math/bits"

// Add returns d + e, or ErrOverflow if the sum cannot be represented.
func (d Decimal) Add(e Decimal) (Decimal, error) {
	return decAddSub(d, e, 0)
}

// Sub returns d - e, or ErrOverflow if the difference cannot be
// represented.
func (d Decimal) Sub(e Decimal) (Decimal, error) {
	return decAddSub(d, e, signMask)
}

// decAddSub computes l + r (bSign == 0) or l - r (bSign == signMask).
func decAddSub(l, r Decimal, bSign uint32) (Decimal, error) {
	if debugDecimal {
		l.validate()
		r.validate()
	}
	// After this, bSign != 0 means the magnitudes subtract.
	bSign ^= (l.flags ^ r.flags) & signMask

	if l.scale8() == r.scale8() {
		// Scale factors are equal, no alignment necessary.
		return addAligned(l.lo, l.hi, r, l.flags, bSign)
	}

	// Scale factors differ. The result takes the larger scale factor,
	// and starts with the sign of the left operand. l becomes the
	// operand that needs multiplying by 10^diff.
	resFlags := r.flags&scaleMask | l.flags&signMask
	diff := int(r.scale8()) - int(l.scale8())
	if diff < 0 {
		diff = -diff
		resFlags = l.flags&scaleMask | (l.flags^bSign)&signMask
		l, r = r, l
	}

	// l is multiplied by 10^diff so that it aligns with r. The result
	// may need up to 190 bits.
	var buf [3]uint64
	var hiProd int
	if diff <= maxPow64 {
		pwr := pow10(diff)
		var h, c uint64
		h, buf[0] = bits.Mul64(l.lo, pwr)
		buf[2], buf[1] = bits.Mul64(uint64(l.hi), pwr)
		buf[1], c = bits.Add64(buf[1], h, 0)
		buf[2] += c

		if buf[2] != 0 {
			hiProd = 2
		} else if buf[1] <= maxUint32 {
			// Result fits in 96 bits. Use the aligned path.
			return addAligned(buf[0], uint32(buf[1]), r, resFlags, bSign)
		} else {
			hiProd = 1
		}
	} else {
		// Have to scale by a bunch. Move the number to a buffer where
		// it has room to grow.
		buf[0], buf[1] = l.lo, uint64(l.hi)
		hiProd = 1
		if l.hi == 0 {
			hiProd = 0
			if l.lo == 0 {
				// Left operand is zero, return right.
				res := Decimal{lo: r.lo, hi: r.hi, flags: resFlags ^ bSign}
				return res, nil
			}
		}
		for ; diff > 0; diff -= maxPow64 {
			k := diff
			if k > maxPow64 {
				k = maxPow64
			}
			hiProd = mul192by64(&buf, hiProd, pow10(k))
		}
	}

	// Scaling complete; add or subtract against r's 96 bits.
	res := Decimal{flags: resFlags}
	if bSign != 0 {
		var b, b2 uint64
		res.lo, b = bits.Sub64(buf[0], r.lo, 0)
		buf[1], b2 = bits.Sub64(buf[1], uint64(r.hi), b)
		res.hi = low32(buf[1])
		if b2 != 0 {
			// A borrow out of the top word. If the scaled operand
			// was only 96 bits, the subtraction went the wrong way
			// around: flip the result's sign. Otherwise carry the
			// borrow into the third word.
			if hiProd <= 1 {
				res.lo, res.hi = neg96(res.lo, res.hi)
				res.flags ^= signMask
				return res, nil
			}
			buf[2]--
			if buf[2] == 0 {
				hiProd = 1
			}
		}
	} else {
		var c, c2 uint64
		res.lo, c = bits.Add64(buf[0], r.lo, 0)
		buf[1], c2 = bits.Add64(buf[1], uint64(r.hi), c)
		res.hi = low32(buf[1])
		if c2 != 0 {
			if hiProd < 2 {
				buf[2] = 1
				hiProd = 2
			} else {
				buf[2]++
			}
		}
	}

	if hiProd > 1 || (hiProd == 1 && buf[1] > maxUint32) {
		buf[0] = res.lo
		scale := scaleResult(&buf, hiProd, int(res.scale8()))
		if scale < 0 {
			return Decimal{}, ErrOverflow
		}
		res.lo = buf[0]
		res.hi = low32(buf[1])
		res = res.setScale(scale)
	}
	return res, nil
}

// addAligned adds or subtracts the 96-bit magnitudes (llo, lhi) and r,
// which share the same scale. flags supplies the result's sign and scale.
func addAligned(llo uint64, lhi uint32, r Decimal, flags, bSign uint32) (Decimal, error) {
	res := Decimal{flags: flags}
	if bSign != 0 {
		// Signs differ - subtract.
		var borrow uint32
		res.lo, res.hi, borrow = sub96(llo, lhi, r.lo, r.hi)
		if borrow != 0 {
			// Got a negative result. Flip its sign.
			res.lo, res.hi = neg96(res.lo, res.hi)
			res.flags ^= signMask
		}
		return res, nil
	}

	// Signs are the same - add.
	var c uint64
	var c2 uint32
	res.lo, c = bits.Add64(llo, r.lo, 0)
	res.hi, c2 = bits.Add32(lhi, r.hi, uint32(c))
	if c2 == 0 {
		return res, nil
	}

	// The addition carried above 96 bits. Divide the result by ten,
	// dropping one scale digit.
	if res.scale8() == 0 {
		return Decimal{}, ErrOverflow
	}
	res.flags -= 1 << scaleShift

	h, m, l := res.hi, high32(res.lo), low32(res.lo)
	rem := div64by32InPlace(&h, 1, 10) // carry bit 96 comes in on top
	rem = div64by32InPlace(&m, rem, 10)
	rem = div64by32InPlace(&l, rem, 10)
	res.lo = uint64(m)<<32 | uint64(l)
	res.hi = h

	if rem >= 5 && (rem > 5 || l&1 != 0) {
		// Adding one cannot overflow: we just divided by ten.
		res.lo, res.hi, _ = add96(res.lo, res.hi, 1)
	}
	return res, nil
}
