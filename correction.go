package ledgamma

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/ledgamma/internal/blend"
	"github.com/gogpu/ledgamma/internal/curve"
)

// Correction is a 24-bit color-correction value, 0xRRGGBB, holding one
// scale factor per channel. LED drivers multiply each channel by
// factor/255 (truncating) to balance the chromaticity of the diodes.
type Correction uint32

// UncorrectedColor leaves every channel at full scale.
const UncorrectedColor Correction = 0xFFFFFF

// ErrInvalidCorrection is returned when a correction value cannot be parsed
// or does not fit in 24 bits.
var ErrInvalidCorrection = errors.New("ledgamma: invalid color correction")

// R returns the red scale factor.
func (c Correction) R() uint8 { return uint8(c >> 16) }

// G returns the green scale factor.
func (c Correction) G() uint8 { return uint8(c >> 8) }

// B returns the blue scale factor.
func (c Correction) B() uint8 { return uint8(c) }

// Factor returns the scale factor of one channel.
func (c Correction) Factor(ch Channel) uint8 {
	switch ch {
	case ChannelG:
		return c.G()
	case ChannelB:
		return c.B()
	default:
		return c.R()
	}
}

// Pixel returns the correction factors as a pixel, i.e. the color a
// full-white pixel becomes after correction.
func (c Correction) Pixel() Pixel {
	return Pixel{R: c.R(), G: c.G(), B: c.B()}
}

// Apply scales p the way the renderer will, truncating each channel.
func (c Correction) Apply(p Pixel) Pixel {
	return Pixel{
		R: blend.Scale(p.R, c.R()),
		G: blend.Scale(p.G, c.G()),
		B: blend.Scale(p.B, c.B()),
	}
}

// Floors derives the per-channel floors for this correction.
//
// Example:
//
//	ledgamma.Correction(0xFF8040).Floors() // {R:1 G:2 B:4}
func (c Correction) Floors() Floors {
	return Floors{
		R: curve.Floor(c.R()),
		G: curve.Floor(c.G()),
		B: curve.Floor(c.B()),
	}
}

// String formats the correction as "0xRRGGBB".
func (c Correction) String() string {
	return fmt.Sprintf("0x%06X", uint32(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Correction) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Correction) UnmarshalText(text []byte) error {
	v, err := ParseCorrection(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCorrection parses a 6-digit hex correction value. A "0x" or "#"
// prefix is optional and case is ignored.
func ParseCorrection(s string) (Correction, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	if len(h) > 1 && (h[:2] == "0x" || h[:2] == "0X") {
		h = h[2:]
	}
	if h == "" || len(h) > 6 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCorrection, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCorrection, s)
	}
	return Correction(v), nil
}
