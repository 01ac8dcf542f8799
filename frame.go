package ledgamma

import (
	"errors"
	"fmt"
)

// ErrAuxLength is returned when a frame's auxiliary brightness slice is
// present but does not match the pixel count.
var ErrAuxLength = errors.New("ledgamma: aux brightness length mismatch")

// Frame is the pixel buffer handed to a renderer.
//
// Aux is optional. When present it has one byte per pixel. Before
// processing it holds each pixel's brightness level (0-255); after
// Tuner.Process it holds the value for LEDs with a separate
// global-brightness field (0-AuxMax): AuxMax for lit pixels, since the
// channels already carry the dimming, and 0 for pixels at level 0.
type Frame struct {
	Pixels []Pixel
	Aux    []uint8
}

// NewFrame allocates a black frame of n pixels. When withAux is true the
// aux slice is allocated too, with every pixel at full brightness.
func NewFrame(n int, withAux bool) Frame {
	f := Frame{Pixels: make([]Pixel, n)}
	if withAux {
		f.Aux = make([]uint8, n)
		for i := range f.Aux {
			f.Aux[i] = 255
		}
	}
	return f
}

// Len returns the number of pixels.
func (f Frame) Len() int {
	return len(f.Pixels)
}

// Validate checks that Aux is either absent or one byte per pixel.
func (f Frame) Validate() error {
	if f.Aux != nil && len(f.Aux) != len(f.Pixels) {
		return fmt.Errorf("%w: %d pixels, %d aux", ErrAuxLength, len(f.Pixels), len(f.Aux))
	}
	return nil
}

// Clear turns every pixel off. Aux is left untouched.
func (f Frame) Clear() {
	clear(f.Pixels)
}

// Fill sets every pixel to p.
func (f Frame) Fill(p Pixel) {
	for i := range f.Pixels {
		f.Pixels[i] = p
	}
}

// Slice returns the sub-frame [lo, hi), sharing storage with f.
func (f Frame) Slice(lo, hi int) Frame {
	s := Frame{Pixels: f.Pixels[lo:hi]}
	if f.Aux != nil {
		s.Aux = f.Aux[lo:hi]
	}
	return s
}

// Clone returns a deep copy of f.
func (f Frame) Clone() Frame {
	c := Frame{Pixels: append([]Pixel(nil), f.Pixels...)}
	if f.Aux != nil {
		c.Aux = append([]uint8(nil), f.Aux...)
	}
	return c
}
