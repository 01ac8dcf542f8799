package ledgamma

import (
	"errors"
	"fmt"

	"github.com/gogpu/ledgamma/internal/curve"
)

// ErrMissingTable is returned when an externally supplied forward table is nil.
var ErrMissingTable = errors.New("ledgamma: missing forward table")

// Tables holds a forward and an inverse gamma table per channel.
//
// Tables never writes to the arrays it references. Tables built by
// NewTables own their arrays; tables passed to ExternalTables are borrowed
// and must not be modified by the caller while in use.
type Tables struct {
	forward [NumChannels]*curve.Table
	inverse [NumChannels]*curve.Table
	gammas  [NumChannels]float64 // zero for external tables
}

// NewTables builds forward and inverse tables from one gamma per channel.
func NewTables(gammas [NumChannels]float64) (*Tables, error) {
	t := &Tables{gammas: gammas}
	for _, ch := range Channels {
		fwd, inv, err := curve.BuildPair(gammas[ch], 255, 255)
		if err != nil {
			return nil, fmt.Errorf("ledgamma: channel %s: %w", ch, err)
		}
		t.forward[ch] = &fwd
		t.inverse[ch] = &inv
	}
	return t, nil
}

// ExternalTables wraps precomputed tables, typically constants compiled
// into the program. The forward tables are required. A nil inverse table is
// derived from its forward table.
func ExternalTables(forward, inverse [NumChannels]*[256]uint8) (*Tables, error) {
	t := &Tables{}
	for _, ch := range Channels {
		if forward[ch] == nil {
			return nil, fmt.Errorf("%w: channel %s", ErrMissingTable, ch)
		}
		t.forward[ch] = (*curve.Table)(forward[ch])
		if inverse[ch] != nil {
			t.inverse[ch] = (*curve.Table)(inverse[ch])
		} else {
			inv := curve.Invert(*t.forward[ch], 255)
			t.inverse[ch] = &inv
		}
	}
	return t, nil
}

// Correct maps each channel of p through its forward table.
func (t *Tables) Correct(p Pixel) Pixel {
	return Pixel{
		R: t.forward[ChannelR][p.R],
		G: t.forward[ChannelG][p.G],
		B: t.forward[ChannelB][p.B],
	}
}

// Inverse maps each channel of p through its inverse table. Use it on
// already corrected pixels before interpolating them.
func (t *Tables) Inverse(p Pixel) Pixel {
	return Pixel{
		R: t.inverse[ChannelR][p.R],
		G: t.inverse[ChannelG][p.G],
		B: t.inverse[ChannelB][p.B],
	}
}

// Forward returns a copy of a channel's forward table.
func (t *Tables) Forward(ch Channel) [256]uint8 {
	return *t.forward[ch%NumChannels]
}

// InverseTable returns a copy of a channel's inverse table.
func (t *Tables) InverseTable(ch Channel) [256]uint8 {
	return *t.inverse[ch%NumChannels]
}

// Gamma returns the exponent a channel was built from, or 0 for external
// tables.
func (t *Tables) Gamma(ch Channel) float64 {
	return t.gammas[ch%NumChannels]
}

// External reports whether the tables were supplied by the caller.
func (t *Tables) External() bool {
	return t.gammas == [NumChannels]float64{}
}
