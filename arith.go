// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import "math/bits"

const (
	maxUint32 = 1<<32 - 1

	// Largest powers of ten that fit in 32 and 64 bits.
	maxPow32 = 9
	maxPow64 = 19
)

var pow10s = [...]uint64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
	10000000000, 100000000000, 1000000000000, 10000000000000, 100000000000000, 1000000000000000,
	10000000000000000, 100000000000000000, 1000000000000000000, 10000000000000000000,
}

func pow10(n int) uint64 {
	if debugDecimal && (n < 0 || n > maxPow64) {
		panic("pow10: exponent out of range")
	}
	return pow10s[n]
}

// low32 and high32 split a 64-bit word into its 32-bit halves.
func low32(x uint64) uint32  { return uint32(x) }
func high32(x uint64) uint32 { return uint32(x >> 32) }

// mul64by32 returns x*y as a 96-bit value split into a low 64-bit word and a
// high 32-bit word.
func mul64by32(x uint64, y uint32) (hi uint32, lo uint64) {
	h, l := bits.Mul64(x, uint64(y))
	return uint32(h), l
}

// div64by32 returns (hi<<32 | lo) / d and the remainder. hi must be < d.
func div64by32(lo, hi, d uint32) (q, r uint32) {
	return bits.Div32(hi, lo, d)
}

// div64by32InPlace divides (rem<<32 | *lo) by d, stores the quotient in *lo
// and returns the new remainder. rem must be < d.
func div64by32InPlace(lo *uint32, rem, d uint32) uint32 {
	q, r := bits.Div32(rem, *lo, d)
	*lo = q
	return r
}

// div128by64 returns (hi<<64 | lo) / d and the remainder. hi must be < d.
func div128by64(lo, hi, d uint64) (q, r uint64) {
	return bits.Div64(hi, lo, d)
}

// msb64 returns the position of the most significant set bit of x,
// 0 for the low bit. x must not be zero.
func msb64(x uint64) int {
	if debugDecimal && x == 0 {
		panic("msb64: zero input")
	}
	return bits.Len64(x) - 1
}

func msb32(x uint32) int {
	if debugDecimal && x == 0 {
		panic("msb32: zero input")
	}
	return bits.Len32(x) - 1
}

// shl128 returns the high half of (hi<<64 | lo) << s for 0 <= s < 64.
func shl128(lo, hi uint64, s uint) uint64 {
	if s == 0 {
		return hi
	}
	return hi<<s | lo>>(64-s)
}

// add96 adds y to the 96-bit value (lo, hi) and returns the sum with the
// outgoing carry.
func add96(lo uint64, hi uint32, y uint64) (rlo uint64, rhi uint32, carry uint32) {
	rlo, c := bits.Add64(lo, y, 0)
	s, c2 := bits.Add32(hi, 0, uint32(c))
	return rlo, s, c2
}

// sub96 returns (alo, ahi) - (blo, bhi) with the outgoing borrow.
func sub96(alo uint64, ahi uint32, blo uint64, bhi uint32) (rlo uint64, rhi uint32, borrow uint32) {
	rlo, b := bits.Sub64(alo, blo, 0)
	rhi, b2 := bits.Sub32(ahi, bhi, uint32(b))
	return rlo, rhi, b2
}

// neg96 negates the 96-bit value (lo, hi) in two's complement.
func neg96(lo uint64, hi uint32) (uint64, uint32) {
	hi = ^hi
	lo = -lo
	if lo == 0 {
		hi++
	}
	return lo, hi
}

// div96by32 divides the 96-bit value (*lo, *hi) by d in place and returns
// the remainder.
func div96by32(lo *uint64, hi *uint32, d uint32) uint32 {
	var rem uint32
	l0, l1, h := low32(*lo), high32(*lo), *hi
	if h >= d {
		h, rem = h/d, h%d
	} else {
		rem, h = h, 0
	}
	if rem|l1 != 0 {
		rem = div64by32InPlace(&l1, rem, d)
	}
	rem = div64by32InPlace(&l0, rem, d)
	*lo = uint64(l1)<<32 | uint64(l0)
	*hi = h
	return rem
}

// mul96by32 multiplies the 96-bit value (*lo, *hi) by m in place and
// returns the overflow word. A zero return means the product still fits in
// 96 bits.
func mul96by32(lo *uint64, hi *uint32, m uint32) uint32 {
	h, l := mul64by32(*lo, m)
	t := uint64(*hi)*uint64(m) + uint64(h)
	*lo = l
	*hi = low32(t)
	return high32(t)
}

// mul96by64 multiplies the 96-bit value (*lo, *hi) by m in place and
// returns the overflow, i.e. bits 96-159 of the product.
func mul96by64(lo *uint64, hi *uint32, m uint64) uint64 {
	h, l := bits.Mul64(*lo, m)
	th, tl := bits.Mul64(uint64(*hi), m)
	tl, c := bits.Add64(tl, h, 0)
	th += c
	*lo = l
	*hi = low32(tl)
	// bits 96-159: low 32 bits of th and high 32 bits of tl
	return th<<32 | uint64(high32(tl))
}
