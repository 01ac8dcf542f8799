// Package pattern draws calibration patterns into LED frames.
//
// The patterns are meant for tuning a strip by eye: pure primaries for
// color balance, white runs for color correction, 50% mixes and gradients
// for gamma, and aux brightness ramps for the dimming curve. They write raw
// (uncorrected) colors; run the frame through a ledgamma.Tuner before
// handing it to the renderer.
package pattern

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/ledgamma"
)

// Simple draws repeating red, green and blue bands of thickness pixels,
// separated by one dark pixel. Only the first n pixels are used.
func Simple(f ledgamma.Frame, n, thickness int) {
	n = min(n, f.Len())
	thickness = max(min(thickness, n/3-1), 1)
	period := 3 * (thickness + 1)

	for i := 0; i+period <= n; i += period {
		for j := range thickness {
			set(f, i+j, ledgamma.Red, 255)
			set(f, i+j+thickness+1, ledgamma.Green, 255)
			set(f, i+j+2*(thickness+1), ledgamma.Blue, 255)
		}
	}
}

// White lights every (spacing+1)th pixel with the color-correction color,
// i.e. the renderer's idea of white.
func White(f ledgamma.Frame, spacing int, c ledgamma.Correction) {
	interval := max(spacing, 0) + 1
	for i := 0; i < f.Len(); i += interval {
		set(f, i, c.Pixel(), 255)
	}
}

// Midpoint draws bands of the primaries interleaved with their 50% mixes:
// red, red+green, green, green+blue, blue, blue+red. Comparing a mix with
// its neighbors shows whether the gamma curves of the two channels match.
// When one is set only the first period is drawn.
func Midpoint(f ledgamma.Frame, thickness int, one bool) {
	thickness = max(min(thickness, f.Len()/6), 1)
	period := 6 * thickness

	bands := [6]ledgamma.Pixel{
		ledgamma.Red,
		ledgamma.RGB(128, 128, 0),
		ledgamma.Green,
		ledgamma.RGB(0, 128, 128),
		ledgamma.Blue,
		ledgamma.RGB(128, 0, 128),
	}
	for i := 0; i+period <= f.Len(); i += period {
		for b, p := range bands {
			for j := range thickness {
				set(f, i+b*thickness+j, p, 255)
			}
		}
		if one {
			break
		}
	}
}

// Gradient draws red→green→blue→red RGB gradients from the head of the
// strip and a full HSV hue sweep at the tail, each segment length pixels
// long. Both are doubled when the strip is long enough.
func Gradient(f ledgamma.Frame, length int) {
	n := f.Len()
	if n < 6 {
		return
	}
	length = max(min(length, n/6), 1)
	double := n > 12*length

	sweeps := 1
	if double {
		sweeps = 2
	}
	for s := range sweeps {
		start := n - (s+1)*3*length
		hueSweep(f, start, 3*length)
	}

	stops := []colorful.Color{
		{R: 1}, {G: 1}, {B: 1}, {R: 1}, {G: 1}, {B: 1}, {R: 1},
	}
	segments := 3 * sweeps
	for s := range segments {
		rgbGradient(f, s*length, (s+1)*length, stops[s], stops[s+1])
	}
}

// hueSweep fills count pixels from start with hues running from red back
// around the wheel to red, fully saturated.
func hueSweep(f ledgamma.Frame, start, count int) {
	for i := range count {
		h := 360 * (1 - float64(i)/float64(count))
		set(f, start+i, fromColorful(colorful.Hsv(h, 1, 1)), 255)
	}
}

// rgbGradient blends linearly in RGB from a at lo to b at hi, inclusive.
func rgbGradient(f ledgamma.Frame, lo, hi int, a, b colorful.Color) {
	span := max(hi-lo, 1)
	for i := lo; i <= hi && i < f.Len(); i++ {
		t := float64(i-lo) / float64(span)
		set(f, i, fromColorful(a.BlendRgb(b, t)), 255)
	}
}

// Dimming draws aux brightness ramps of 2*length pixels: the correction
// color, the correction color without blue, and a dim fuchsia, separated by
// 5 dark pixels when they fit.
func Dimming(f ledgamma.Frame, length int, c ledgamma.Correction) {
	n := f.Len()
	ramp := min(2*length, n)
	if ramp <= 0 {
		return
	}
	step := 255.0 / float64(ramp)

	yellow := (c & 0xFFFF00).Pixel()
	fuchsia := ledgamma.RGB(c.R(), 0, c.R()>>3)

	for i := range ramp {
		level := uint8(float64(i+1) * step)
		set(f, i, c.Pixel(), level)
		if n >= 2*ramp+5 {
			set(f, i+ramp+5, yellow, level)
		}
		if n >= 3*ramp+10 {
			set(f, i+2*ramp+10, fuchsia, level)
		}
	}
}

func set(f ledgamma.Frame, i int, p ledgamma.Pixel, level uint8) {
	if i < 0 || i >= f.Len() {
		return
	}
	f.Pixels[i] = p
	if f.Aux != nil {
		f.Aux[i] = level
	}
}

func fromColorful(c colorful.Color) ledgamma.Pixel {
	r, g, b := c.Clamped().RGB255()
	return ledgamma.RGB(r, g, b)
}
