package ledgamma

import (
	"fmt"
	"strings"

	"github.com/gogpu/ledgamma/internal/curve"
)

// Corrector applies gamma correction to a single pixel.
//
// Both strategies below implement the same contract and produce identical
// output for the same gammas, so callers can switch between them at any
// time.
type Corrector interface {
	Correct(p Pixel) Pixel
}

// LookupCorrector corrects through precomputed tables.
type LookupCorrector struct {
	Tables *Tables
}

// Correct implements Corrector.
func (c LookupCorrector) Correct(p Pixel) Pixel {
	return c.Tables.Correct(p)
}

// ClosedFormCorrector evaluates the gamma curve per channel per pixel
// instead of using a table. It is slower but needs no rebuild when a gamma
// changes.
type ClosedFormCorrector struct {
	Gamma [NumChannels]float64
}

// Correct implements Corrector.
func (c ClosedFormCorrector) Correct(p Pixel) Pixel {
	return Pixel{
		R: curve.Level(int(p.R), c.Gamma[ChannelR], 255, 255),
		G: curve.Level(int(p.G), c.Gamma[ChannelG], 255, 255),
		B: curve.Level(int(p.B), c.Gamma[ChannelB], 255, 255),
	}
}

// CorrectPixels applies c to every pixel in place.
func CorrectPixels(c Corrector, pixels []Pixel) {
	for i := range pixels {
		pixels[i] = c.Correct(pixels[i])
	}
}

// Mode selects the correction strategy a Tuner uses.
type Mode uint8

const (
	// ModeLookup corrects through tables.
	ModeLookup Mode = iota
	// ModeClosedForm evaluates the gamma curve directly.
	ModeClosedForm
)

// String returns "lookup" or "closed-form".
func (m Mode) String() string {
	switch m {
	case ModeLookup:
		return "lookup"
	case ModeClosedForm:
		return "closed-form"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m <= ModeClosedForm
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("ledgamma: invalid mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMode parses "lookup" or "closed-form" ("closed", "formula" accepted).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lookup", "table", "tables":
		return ModeLookup, nil
	case "closed-form", "closed", "formula":
		return ModeClosedForm, nil
	}
	return 0, fmt.Errorf("ledgamma: unknown mode %q", s)
}
