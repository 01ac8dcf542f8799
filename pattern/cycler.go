package pattern

import (
	"fmt"
	"strings"

	"github.com/gogpu/ledgamma"
)

// Mode is one of the calibration patterns a Cycler steps through.
type Mode int

// Patterns, in cycling order.
const (
	ModeGradient          Mode = iota // RGB gradients at the head, hue sweep at the tail
	ModeSingleRGB                     // one set of red, green and blue bands
	ModeRepeatingRGB                  // red, green and blue bands along the whole strip
	ModeWhiteEnds                     // a short white run at each end
	ModeWhiteSpaced                   // white on every third pixel
	ModeWhiteAll                      // every pixel white
	ModeMidpointSingle                // one set of primaries and 50% mixes
	ModeMidpointRepeating             // primaries and 50% mixes along the whole strip
	ModeDimming                       // aux brightness ramps

	numModes
)

var modeNames = [numModes]string{
	"gradient",
	"single-rgb",
	"repeating-rgb",
	"white-ends",
	"white-spaced",
	"white-all",
	"midpoint-single",
	"midpoint-repeating",
	"dimming",
}

func (m Mode) String() string {
	if m < 0 || m >= numModes {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Modes returns every pattern in cycling order.
func Modes() []Mode {
	modes := make([]Mode, numModes)
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// ParseMode looks a pattern up by name.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("pattern: unknown pattern %q", s)
}

// Params sizes the patterns.
type Params struct {
	// Thickness is the width of a color band in pixels.
	Thickness int
	// GradientLength is the length of one gradient segment in pixels.
	GradientLength int
	// Correction is the color drawn as "white".
	Correction ledgamma.Correction
}

// DefaultParams returns the sizes used for a typical 60-144 LED strip.
func DefaultParams() Params {
	return Params{
		Thickness:      4,
		GradientLength: 32,
		Correction:     ledgamma.UncorrectedColor,
	}
}

// Cycler steps through the calibration patterns.
//
// A Cycler is not safe for concurrent use.
type Cycler struct {
	mode   Mode
	params Params
}

// NewCycler returns a cycler positioned on the first pattern.
func NewCycler(p Params) *Cycler {
	return &Cycler{params: p}
}

// Mode returns the current pattern.
func (c *Cycler) Mode() Mode {
	return c.mode
}

// SetMode jumps to a pattern.
func (c *Cycler) SetMode(m Mode) error {
	if m < 0 || m >= numModes {
		return fmt.Errorf("pattern: invalid mode %d", int(m))
	}
	c.mode = m
	return nil
}

// Next advances to the following pattern, wrapping after the last, and
// returns it.
func (c *Cycler) Next() Mode {
	c.mode = (c.mode + 1) % numModes
	return c.mode
}

// Params returns the pattern sizes.
func (c *Cycler) Params() Params {
	return c.params
}

// SetCorrection changes the color drawn as white.
func (c *Cycler) SetCorrection(corr ledgamma.Correction) {
	c.params.Correction = corr
}

// Render clears f and draws the current pattern into it. Every aux byte is
// reset to full brightness first; the dimming pattern then lowers its own.
func (c *Cycler) Render(f ledgamma.Frame) {
	f.Clear()
	for i := range f.Aux {
		f.Aux[i] = 255
	}

	p := c.params
	n := f.Len()
	switch c.mode {
	case ModeGradient:
		Gradient(f, p.GradientLength)
	case ModeSingleRGB:
		if n > 6*(p.Thickness+1) {
			Simple(f, 3*(p.Thickness+1), p.Thickness)
		}
	case ModeRepeatingRGB:
		Simple(f, n, p.Thickness)
	case ModeWhiteEnds:
		run := min(n, 2*p.Thickness)
		White(f.Slice(0, run), 0, p.Correction)
		if n > 4*p.Thickness {
			White(f.Slice(n-run, n), 0, p.Correction)
		}
	case ModeWhiteSpaced:
		White(f, 2, p.Correction)
	case ModeWhiteAll:
		White(f, 0, p.Correction)
	case ModeMidpointSingle:
		Midpoint(f, p.Thickness, true)
	case ModeMidpointRepeating:
		Midpoint(f, p.Thickness, false)
	case ModeDimming:
		Dimming(f, p.GradientLength, p.Correction)
	}
}
