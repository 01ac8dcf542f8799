package ledgamma

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/ledgamma/internal/blend"
)

// Preview renders a frame as a horizontal strip image, one cell per LED.
//
// The aux brightness, when present, is folded into the color the way a
// global-brightness LED would show it. Previews approximate what the strip
// looks like on a monitor; they make no attempt to model the LEDs' color
// response.
func Preview(f Frame, cellSize int) *image.RGBA {
	if cellSize < 1 {
		cellSize = 1
	}
	n := max(f.Len(), 1)

	// One source pixel per LED, then a nearest-neighbor upscale keeps the
	// cell edges hard.
	src := image.NewRGBA(image.Rect(0, 0, n, 1))
	for i := range f.Pixels {
		p := f.Displayed(i)
		src.SetRGBA(i, 0, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
	}

	dst := image.NewRGBA(image.Rect(0, 0, n*cellSize, cellSize))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Displayed returns pixel i as a strip honoring the aux field would show
// it. After Tuner.Process the dimming lives in the channels and aux is
// AuxMax or 0, so Displayed equals the processed pixel (or black).
// Unprocessed frames hold 0-255 levels in Aux; call FoldLevels first.
func (f Frame) Displayed(i int) Pixel {
	if f.Aux == nil {
		return f.Pixels[i]
	}
	return auxScaled(f.Pixels[i], f.Aux[i])
}

// auxScaled dims p by an aux brightness in [0, AuxMax].
func auxScaled(p Pixel, aux uint8) Pixel {
	if aux >= AuxMax {
		return p
	}
	f := uint8(int(aux) * 255 / AuxMax) //nolint:gosec // aux < AuxMax
	return Pixel{
		R: blend.ScaleRound(p.R, f),
		G: blend.ScaleRound(p.G, f),
		B: blend.ScaleRound(p.B, f),
	}
}

// FoldLevels applies the unprocessed per-pixel levels in Aux directly to
// the channels, linearly and rounding, and leaves Aux at AuxMax. It is the
// raw counterpart of Tuner.Process for showing a frame as drawn.
func (f Frame) FoldLevels() {
	for i := range min(len(f.Aux), len(f.Pixels)) {
		l := f.Aux[i]
		p := f.Pixels[i]
		f.Pixels[i] = Pixel{
			R: blend.ScaleRound(p.R, l),
			G: blend.ScaleRound(p.G, l),
			B: blend.ScaleRound(p.B, l),
		}
		f.Aux[i] = AuxMax
	}
}

// SavePreviewPNG renders f with Preview and writes it to path.
func SavePreviewPNG(path string, f Frame, cellSize int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, Preview(f, cellSize)); err != nil {
		_ = file.Close()
		return fmt.Errorf("ledgamma: encode preview: %w", err)
	}
	return file.Close()
}
