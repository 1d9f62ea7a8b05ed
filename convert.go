// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decimal

import (
	"math"
	"strconv"
)

// Int32 returns d as a signed 32-bit integer. The value is first rounded
// to zero fractional digits, half to even. ErrOverflow is reported when
// the rounded value does not fit; the single two's-complement encoding of
// math.MinInt32 is accepted.
func (d Decimal) Int32() (int32, error) {
	r, err := d.Round(0)
	if err != nil {
		return 0, err
	}
	if r.hi == 0 && high32(r.lo) == 0 {
		i := int32(low32(r.lo))
		if !r.Signbit() {
			if i >= 0 {
				return i, nil
			}
		} else {
			if uint32(i) == 1<<31 {
				// math.MinInt32 is stored as sign bit plus
				// the magnitude 0x80000000.
				return i, nil
			}
			i = -i
			if i <= 0 {
				return i, nil
			}
		}
	}
	return 0, ErrOverflow
}

// Int64 returns d as a signed 64-bit integer, under the same contract as
// Int32.
func (d Decimal) Int64() (int64, error) {
	r, err := d.Round(0)
	if err != nil {
		return 0, err
	}
	if r.hi == 0 {
		i := int64(r.lo)
		if !r.Signbit() {
			if i >= 0 {
				return i, nil
			}
		} else {
			if r.lo == 1<<63 {
				return i, nil
			}
			i = -i
			if i <= 0 {
				return i, nil
			}
		}
	}
	return 0, ErrOverflow
}

// Float64 returns a binary floating-point approximation of d: the mantissa
// converted to float64, divided by 10^scale. Each step rounds, so the result
// is not always the float64 nearest to d, and the conversion is lossy for
// mantissas wider than 53 bits.
func (d Decimal) Float64() float64 {
	f := (float64(d.hi)*(1<<64) + float64(d.lo)) / math.Pow10(int(d.scale8()))
	if d.Signbit() {
		f = -f
	}
	return f
}

// Float32 returns d.Float64() converted to float32.
func (d Decimal) Float32() float32 {
	return float32(d.Float64())
}

// maxDecimalFloat is the smallest float64 that exceeds every representable
// decimal: 2^96 rounded up.
const maxDecimalFloat = 7.9228162514264338e28

// FromFloat64 converts a float64 into a decimal, keeping 15 significant
// digits as the reference conversion does. NaN, infinities and values of
// magnitude 2^96 or larger report ErrOverflow.
func FromFloat64(v float64) (Decimal, error) {
	return fromFloat(v, 14, 64)
}

// FromFloat32 converts a float32 into a decimal, keeping 7 significant
// digits.
func FromFloat32(v float32) (Decimal, error) {
	return fromFloat(float64(v), 6, 32)
}

func fromFloat(v float64, prec, bitSize int) (Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Decimal{}, ErrOverflow
	}
	neg := math.Signbit(v)
	v = math.Abs(v)
	if v >= maxDecimalFloat {
		return Decimal{}, ErrOverflow
	}
	if v == 0 {
		if neg {
			// -0.0 converts to a plain zero.
			neg = false
		}
		return Decimal{}, nil
	}

	// Format to prec+1 significant digits and feed the digit parser.
	// strconv produces d.ddd...de±dd.
	buf := strconv.AppendFloat(make([]byte, 0, 32), v, 'e', prec, bitSize)
	digits := make([]byte, 0, prec+1)
	exp := 0
	for i := 0; i < len(buf); i++ {
		switch c := buf[i]; {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		case c == 'e':
			e, err := strconv.Atoi(string(buf[i+1:]))
			if err != nil {
				return Decimal{}, err
			}
			exp = e
			i = len(buf)
		}
	}
	// value = digits x 10^(exp-prec); drop trailing zeros so that e.g.
	// 1.5 parses with scale 1 rather than scale prec.
	exp -= prec
	for len(digits) > 1 && digits[len(digits)-1] == '0' {
		digits = digits[:len(digits)-1]
		exp++
	}
	return FromDigits(string(digits), exp, neg)
}

// Currency returns d as a count of 1/10000 currency units, rounded half to
// even, or ErrOverflow if the scaled value does not fit in an int64.
func (d Decimal) Currency() (int64, error) {
	const currencyScale = 4
	r, err := d.Round(currencyScale)
	if err != nil {
		return 0, err
	}
	lo, hi := r.lo, r.hi
	if s := int(r.scale8()); s < currencyScale {
		if mul96by32(&lo, &hi, uint32(pow10(currencyScale-s))) != 0 {
			return 0, ErrOverflow
		}
	}
	if hi != 0 {
		return 0, ErrOverflow
	}
	if r.Signbit() {
		if lo > 1<<63 {
			return 0, ErrOverflow
		}
		return -int64(lo), nil
	}
	if lo >= 1<<63 {
		return 0, ErrOverflow
	}
	return int64(lo), nil
}

// Hash returns a hash code that is identical for numerically equal
// decimals, regardless of scale. Both zeros hash to 0.
func (d Decimal) Hash() uint32 {
	f := d.Float64()
	if f == 0 {
		return 0
	}
	// The conversion to float64 is lossy and numerically equal decimals
	// with different representations can differ in the last few mantissa
	// bits, so the low nibble is masked off.
	b := math.Float64bits(f)
	return uint32(b)&0xFFFFFFF0 ^ uint32(b>>32)
}
