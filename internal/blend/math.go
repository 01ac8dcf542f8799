// Package blend provides exact 8-bit scaling and interpolation for LED
// pixel channels.
//
// Everything here works on integers: channel values and scale factors are
// bytes, products fit in uint16, and division by 255 uses Alvy Ray Smith's
// shift formula instead of a hardware divide. These helpers run per channel
// per pixel per frame.
//
// References:
//   - Alpha blending without division: https://arxiv.org/abs/2202.02864
//   - Alvy Ray Smith's technical memos: http://alvyray.com/Memos/
package blend

// div255 divides x by 255 exactly (truncating) without using division.
//
// Formula: ((x + 1) + ((x + 1) >> 8)) >> 8
//
// Exact for every x up to 255*255 + 127, which covers all products and
// rounded products of two bytes.
func div255(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// Scale multiplies v by f/255, truncating.
//
// This is how LED drivers apply per-channel color correction, so a small
// nonzero v can become 0: Scale(1, 128) == 0.
func Scale(v, f byte) byte {
	return byte(div255(uint16(v) * uint16(f)))
}

// ScaleRound multiplies v by f/255, rounding to nearest.
//
// Scale factors 0 and 255 are exact: ScaleRound(v, 255) == v.
func ScaleRound(v, f byte) byte {
	return byte(div255(uint16(v)*uint16(f) + 127))
}

// Lerp interpolates between a and b by amount/255.
//
// amount 0 returns a, amount 255 returns b. The weighted sum is divided by
// 255 rounding to nearest. The divisor is odd, so an exact half never occurs.
func Lerp(a, b, amount byte) byte {
	sum := uint16(a)*uint16(255-amount) + uint16(b)*uint16(amount)
	return byte(div255(sum + 127))
}

// Floor raises v to floor when it is nonzero and below it.
func Floor(v, floor byte) byte {
	if v != 0 && v < floor {
		return floor
	}
	return v
}
