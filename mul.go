// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import "math/bits"

// Mul returns d * e, or ErrOverflow if the product cannot be represented.
func (d Decimal) Mul(e Decimal) (Decimal, error) {
	if debugDecimal {
		d.validate()
		e.validate()
	}
	scale := int(d.scale8()) + int(e.scale8())
	sign := (d.flags ^ e.flags) & signMask

	if d.hi|e.hi == 0 {
		// Both mantissas fit in 64 bits: a single widening multiply.
		hi, lo := bits.Mul64(d.lo, e.lo)
		if hi == 0 {
			if scale > MaxScale {
				// The combined scale is too big. Divide the
				// result by a power of ten to bring it down to
				// MaxScale.
				scale -= MaxScale
				if scale > maxPow64 {
					// Dividing by more than 10^19 leaves
					// less than 1/2: the result is zero.
					return Decimal{}, nil
				}
				pwr := pow10(scale)
				q, rem := lo/pwr, lo%pwr
				// Round half to even.
				pwr >>= 1 // power of ten, always even
				if rem > pwr || (rem == pwr && q&1 != 0) {
					q++
				}
				lo = q
				scale = MaxScale
			}
			res := Decimal{lo: lo, flags: sign | uint32(scale)<<scaleShift}
			return res, nil
		}

		var buf [3]uint64
		buf[0], buf[1] = lo, hi
		scale = scaleResult(&buf, 1, scale)
		if scale < 0 {
			return Decimal{}, ErrOverflow
		}
		res := Decimal{lo: buf[0], hi: low32(buf[1]), flags: sign | uint32(scale)<<scaleShift}
		return res, nil
	}

	// At least one operand has bits set above 64. Accumulate the four
	// partial products into a 192-bit buffer:
	//
	//                [l-hi][l-lo]   left high32, low64
	//             x  [r-hi][r-lo]   right high32, low64
	// -------------------------------
	//                [ 0-h][0-l ]   l-lo * r-lo -> 128 bits
	//          [    ][    ]         l-lo * r-hi ->  96 bits
	//          [    ][    ]         l-hi * r-lo ->  96 bits
	//          [    ]               l-hi * r-hi ->  64 bits
	// -------------------------------
	//          [p-2 ][p-1 ][p-0 ]
	//
	// The two cross products carry into p-2 without overflowing it.
	var buf [3]uint64
	var sum uint64
	sum, buf[0] = bits.Mul64(d.lo, e.lo)
	buf[2] = uint64(d.hi) * uint64(e.hi)

	h1, l1 := mul64by32(d.lo, e.hi)
	var c uint64
	sum, c = bits.Add64(l1, sum, 0)
	buf[2], _ = bits.Add64(uint64(h1), buf[2], c)

	h2, l2 := mul64by32(e.lo, d.hi)
	sum, c = bits.Add64(l2, sum, 0)
	buf[2], _ = bits.Add64(uint64(h2), buf[2], c)

	buf[1] = sum

	hiProd := 2
	for buf[hiProd] == 0 {
		hiProd--
		if hiProd < 0 {
			return Decimal{}, nil
		}
	}

	scale = scaleResult(&buf, hiProd, scale)
	if scale < 0 {
		return Decimal{}, ErrOverflow
	}
	res := Decimal{lo: buf[0], hi: low32(buf[1]), flags: sign | uint32(scale)<<scaleShift}
	return res, nil
}
