// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package decimal implements fixed-point decimal arithmetic on 128-bit
values: a 96-bit unsigned mantissa, a decimal scale in [0, 28] and a sign
bit. The represented value is

	(-1)^sign × mantissa × 10^-scale

All arithmetic is performed directly on the 96-bit mantissa using 32 and 64
bit multi-word primitives; there is no conversion to or from binary
floating point except in the explicit Float32/Float64 conversions, and no
dynamic memory allocation.

Unlike an arbitrary-precision number, a Decimal is a small immutable value.
Operations take their operands by value and return a fresh result together
with an error:

	sum, err := x.Add(y)

The error is non-nil when the exact result's magnitude exceeds 96 bits and
cannot be brought back into range by dropping scale (ErrOverflow), or on
division by zero (ErrDivisionByZero). Wherever precision must be dropped
(multiplication and addition results wider than 96 bits, inexact division,
rounding, parsing) the mantissa is rounded half to even, with a sticky bit
accumulated across partial reductions so that only exact halves round to
even. The digit parser is the exception: it looks at most 20 digits past a
5, so a 5 followed by 20 zeros is taken as a tie whatever follows.

The scale of a result follows fixed rules rather than being normalized:
addition and subtraction use the larger of the operand scales, and
multiplication uses the sum of the scales; either is reduced only when the
mantissa would not fit otherwise or, for a product, when the sum exceeds 28. Trailing zeros are therefore significant: 1.0 and
1.00 are different representations that compare equal via Cmp. Division is
the exception: trailing zeros of the quotient are trimmed, so an exact
quotient takes its shortest form.

The zero value of Decimal is ready to use and represents 0.
*/
package decimal
