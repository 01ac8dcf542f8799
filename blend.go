package ledgamma

import "github.com/gogpu/ledgamma/internal/blend"

// Blend interpolates between two already corrected pixels.
//
// Interpolating corrected levels directly gives midpoints that look too
// dark, so both pixels are first mapped back to raw levels with the inverse
// tables, interpolated there, and corrected again.
//
// amount 0 yields a and 255 yields b exactly; blending a pixel with itself
// yields the pixel unchanged.
func Blend(a, b Pixel, amount uint8, t *Tables) Pixel {
	switch {
	case amount == 0 || a == b:
		return a
	case amount == 255:
		return b
	}
	la := t.Inverse(a)
	lb := t.Inverse(b)
	return t.Correct(Pixel{
		R: blend.Lerp(la.R, lb.R, amount),
		G: blend.Lerp(la.G, lb.G, amount),
		B: blend.Lerp(la.B, lb.B, amount),
	})
}

// BlendInPlace is Blend storing the result in a. b is passed by value and
// is never modified.
func BlendInPlace(a *Pixel, b Pixel, amount uint8, t *Tables) {
	*a = Blend(*a, b, amount, t)
}

// BlendPixels blends each pixel of dst toward the matching pixel of src,
// in place. Extra pixels in the longer slice are ignored.
func BlendPixels(dst, src []Pixel, amount uint8, t *Tables) {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Blend(dst[i], src[i], amount, t)
	}
}
