// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements encoding/decoding of Decimals.

package decimal

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Size of the binary representation: four little-endian 32-bit words.
const binarySize = 16

// Bits returns the four 32-bit words of d's representation: the mantissa
// words least-significant first, then the flags word.
func (d Decimal) Bits() (lo, mid, hi, flags uint32) {
	return low32(d.lo), high32(d.lo), d.hi, d.flags
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The
// layout is four little-endian 32-bit words: {lo, mid, hi, flags}.
func (d Decimal) MarshalBinary() ([]byte, error) {
	buf := make([]byte, binarySize)
	binary.LittleEndian.PutUint32(buf[0:], low32(d.lo))
	binary.LittleEndian.PutUint32(buf[4:], high32(d.lo))
	binary.LittleEndian.PutUint32(buf[8:], d.hi)
	binary.LittleEndian.PutUint32(buf[12:], d.flags)
	return buf, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. It
// rejects buffers of the wrong size, set reserved flag bits and scales
// beyond MaxScale.
func (d *Decimal) UnmarshalBinary(data []byte) error {
	if len(data) != binarySize {
		return errors.Errorf("decimal: cannot unmarshal %d bytes, want %d", len(data), binarySize)
	}
	lo := binary.LittleEndian.Uint32(data[0:])
	mid := binary.LittleEndian.Uint32(data[4:])
	hi := binary.LittleEndian.Uint32(data[8:])
	flags := binary.LittleEndian.Uint32(data[12:])

	if flags&^flagsMask != 0 {
		return errors.Errorf("decimal: reserved flag bits set in %#08x", flags)
	}
	v, err := New(lo, mid, hi, flags&signMask != 0, int(flags&scaleMask)>>scaleShift)
	if err != nil {
		return errors.Wrap(err, "decimal: cannot unmarshal")
	}
	*d = v
	return nil
}
