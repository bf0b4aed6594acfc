package texture

import "math"

// float32ToHalf converts a float32 to IEEE 754 binary16 bits, rounding to nearest even.
// Values beyond the half range saturate to infinity; NaN stays NaN.
func float32ToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	exp := int32(bits>>23) & 0xff
	mant := bits & 0x7fffff

	if exp == 0xff {
		if mant != 0 {
			return sign | 0x7e00
		}
		return sign | 0x7c00
	}

	e := exp - 127
	switch {
	case e > 15:
		return sign | 0x7c00
	case e < -25:
		return sign
	case e < -14:
		// subnormal half: value / 2^-24 = mant24 * 2^(e+1)
		mant |= 0x800000
		shift := uint32(-(e + 1))
		half := mant >> shift
		rem := mant & (1<<shift - 1)
		halfway := uint32(1) << (shift - 1)
		if rem > halfway || (rem == halfway && half&1 != 0) {
			half++
		}
		return sign | uint16(half)
	}

	h := uint32(e+15)<<10 | mant>>13
	rem := mant & 0x1fff
	if rem > 0x1000 || (rem == 0x1000 && h&1 != 0) {
		// a carry out of the mantissa correctly bumps the exponent
		h++
	}
	return sign | uint16(h)
}
