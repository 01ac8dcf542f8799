package ledgamma

import (
	"log/slog"

	"github.com/gogpu/ledgamma/internal/blend"
	"github.com/gogpu/ledgamma/internal/parallel"
)

// Floors holds the minimum nonzero level of each channel.
//
// A nonzero level below its channel's floor would be scaled to 0 by color
// correction, turning a dim-but-lit LED off. Floors are always derived from
// a Correction (see Correction.Floors); a floor of 1 means the channel
// needs no protection.
type Floors struct {
	R, G, B uint8
}

// NoFloors protects nothing.
var NoFloors = Floors{1, 1, 1}

// Apply raises each nonzero channel of p to at least its floor.
func (f Floors) Apply(p Pixel) Pixel {
	return Pixel{
		R: blend.Floor(p.R, f.R),
		G: blend.Floor(p.G, f.G),
		B: blend.Floor(p.B, f.B),
	}
}

// LogValue implements slog.LogValuer.
func (f Floors) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("r", int(f.R)),
		slog.Int("g", int(f.G)),
		slog.Int("b", int(f.B)),
	)
}

// mask returns a 3-bit set of the channels whose floor is above 1.
func (f Floors) mask() uint8 {
	var m uint8
	if f.R > 1 {
		m |= 1
	}
	if f.G > 1 {
		m |= 2
	}
	if f.B > 1 {
		m |= 4
	}
	return m
}

// EnforceFloors raises every nonzero channel in pixels to at least its
// floor. Zero channels stay zero. The pass is idempotent.
//
// This runs on the whole buffer every frame, so each combination of active
// floors gets its own loop that touches only those channels.
func EnforceFloors(pixels []Pixel, f Floors) {
	switch f.mask() {
	case 0:
		// Nothing to raise.
	case 1:
		for i := range pixels {
			pixels[i].R = blend.Floor(pixels[i].R, f.R)
		}
	case 2:
		for i := range pixels {
			pixels[i].G = blend.Floor(pixels[i].G, f.G)
		}
	case 3:
		for i := range pixels {
			p := &pixels[i]
			p.R = blend.Floor(p.R, f.R)
			p.G = blend.Floor(p.G, f.G)
		}
	case 4:
		for i := range pixels {
			pixels[i].B = blend.Floor(pixels[i].B, f.B)
		}
	case 5:
		for i := range pixels {
			p := &pixels[i]
			p.R = blend.Floor(p.R, f.R)
			p.B = blend.Floor(p.B, f.B)
		}
	case 6:
		for i := range pixels {
			p := &pixels[i]
			p.G = blend.Floor(p.G, f.G)
			p.B = blend.Floor(p.B, f.B)
		}
	default:
		for i := range pixels {
			p := &pixels[i]
			p.R = blend.Floor(p.R, f.R)
			p.G = blend.Floor(p.G, f.G)
			p.B = blend.Floor(p.B, f.B)
		}
	}
}

// enforceFloorsParallel is EnforceFloors split across pool. It returns
// once every pixel has been processed. A nil pool runs sequentially.
func enforceFloorsParallel(pool *parallel.WorkerPool, pixels []Pixel, f Floors) {
	if f.mask() == 0 {
		return
	}
	pool.Run(len(pixels), func(lo, hi int) {
		EnforceFloors(pixels[lo:hi], f)
	})
}
