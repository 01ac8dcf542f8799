package ledgamma

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Pixel is one LED's red, green and blue drive levels.
//
// Pixel implements color.Color so frames can be handed to image code
// directly; the alpha channel is always opaque.
type Pixel struct {
	R, G, B uint8
}

// Common pixels.
var (
	Black   = Pixel{}
	White   = Pixel{255, 255, 255}
	Red     = Pixel{R: 255}
	Green   = Pixel{G: 255}
	Blue    = Pixel{B: 255}
	Yellow  = Pixel{R: 255, G: 255}
	Cyan    = Pixel{G: 255, B: 255}
	Magenta = Pixel{R: 255, B: 255}
)

// RGB creates a pixel from its channel levels.
func RGB(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b}
}

// RGBA implements color.Color.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.R) * 0x101
	g = uint32(p.G) * 0x101
	b = uint32(p.B) * 0x101
	return r, g, b, 0xffff
}

// FromColor converts any color.Color to a Pixel, dropping alpha after
// un-premultiplying.
func FromColor(c color.Color) Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: n.R, G: n.G, B: n.B}
}

// Channel returns the level of a single channel.
func (p Pixel) Channel(ch Channel) uint8 {
	switch ch {
	case ChannelG:
		return p.G
	case ChannelB:
		return p.B
	default:
		return p.R
	}
}

// WithChannel returns a copy of p with one channel replaced.
func (p Pixel) WithChannel(ch Channel, v uint8) Pixel {
	switch ch {
	case ChannelG:
		p.G = v
	case ChannelB:
		p.B = v
	default:
		p.R = v
	}
	return p
}

// IsBlack reports whether every channel is off.
func (p Pixel) IsBlack() bool {
	return p.R == 0 && p.G == 0 && p.B == 0
}

// Hex returns the pixel as "#rrggbb".
func (p Pixel) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B)
}

func (p Pixel) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.R, p.G, p.B)
}

// Channel identifies one of the three color channels.
type Channel uint8

// Color channels, in table order.
const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
)

// NumChannels is the number of color channels in a Pixel.
const NumChannels = 3

// Channels lists the channels in table order.
var Channels = [NumChannels]Channel{ChannelR, ChannelG, ChannelB}

// ErrInvalidChannel is returned for a channel outside R, G and B.
var ErrInvalidChannel = errors.New("ledgamma: invalid channel")

// Valid reports whether ch names a color channel.
func (ch Channel) Valid() bool {
	return ch < NumChannels
}

// String returns "R", "G" or "B".
func (ch Channel) String() string {
	switch ch {
	case ChannelR:
		return "R"
	case ChannelG:
		return "G"
	case ChannelB:
		return "B"
	default:
		return fmt.Sprintf("Channel(%d)", uint8(ch))
	}
}

// ParseChannel parses "r", "g", "b" (or "red", "green", "blue"),
// ignoring case.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "red":
		return ChannelR, nil
	case "g", "green":
		return ChannelG, nil
	case "b", "blue":
		return ChannelB, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidChannel, s)
}
