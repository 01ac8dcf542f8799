package ledgamma

import (
	"fmt"

	"github.com/gogpu/ledgamma/internal/blend"
	"github.com/gogpu/ledgamma/internal/curve"
)

// AuxMax is the largest reduced-precision brightness value, matching the
// 5-bit global brightness field of APA102-style LEDs.
const AuxMax = 31

// Dimmer turns a brightness level into a channel scale factor and an
// auxiliary reduced-precision brightness byte.
//
// Both come from the same gamma-shaped curve, so a pixel dimmed through its
// channels and one dimmed through its aux field fade together. Level 0
// always turns both off; any nonzero level keeps both nonzero.
type Dimmer struct {
	gamma float64
	dim   curve.Table // level -> channel scale factor, 0..255
	aux   curve.Table // level -> aux brightness, 0..AuxMax
}

// NewDimmer builds a dimmer from the dimming gamma.
func NewDimmer(gamma float64) (*Dimmer, error) {
	dim, err := curve.Build(gamma, 255, 255)
	if err != nil {
		return nil, fmt.Errorf("ledgamma: dimming curve: %w", err)
	}
	aux, err := curve.Build(gamma, 255, AuxMax)
	if err != nil {
		return nil, fmt.Errorf("ledgamma: aux brightness curve: %w", err)
	}
	return &Dimmer{gamma: gamma, dim: dim, aux: aux}, nil
}

// Gamma returns the dimming exponent.
func (d *Dimmer) Gamma() float64 {
	return d.gamma
}

// Factor returns the channel scale factor for level.
func (d *Dimmer) Factor(level uint8) uint8 {
	return d.dim[level]
}

// Aux returns the reduced-precision brightness for level.
func (d *Dimmer) Aux(level uint8) uint8 {
	if level == 0 {
		return 0
	}
	if a := d.aux[level]; a != 0 {
		return a
	}
	return 1
}

// Scale dims p to level and returns the dimmed pixel with its aux byte.
//
// The two results are alternative ways of reaching the same brightness: a
// renderer either sends the dimmed pixel at full aux brightness, or the
// undimmed pixel with the returned aux byte. Applying both dims twice.
func (d *Dimmer) Scale(p Pixel, level uint8) (Pixel, uint8) {
	f := d.dim[level]
	return Pixel{
		R: blend.ScaleRound(p.R, f),
		G: blend.ScaleRound(p.G, f),
		B: blend.ScaleRound(p.B, f),
	}, d.Aux(level)
}

// ScaleFrame dims every pixel of f to level in place. The dimming is carried
// by the channels, so when f.Aux is present it is set to AuxMax (0 at level
// 0) rather than to the aux byte for level.
func (d *Dimmer) ScaleFrame(f Frame, level uint8) error {
	if err := f.Validate(); err != nil {
		return err
	}
	aux := channelDimmedAux(level)
	for i := range f.Pixels {
		f.Pixels[i], _ = d.Scale(f.Pixels[i], level)
	}
	for i := range f.Aux {
		f.Aux[i] = aux
	}
	return nil
}

// channelDimmedAux is the aux byte sent with a pixel whose channels already
// carry the dimming.
func channelDimmedAux(level uint8) uint8 {
	if level == 0 {
		return 0
	}
	return AuxMax
}
