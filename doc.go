// Package ledgamma gamma-corrects and tunes colors for addressable LED
// strips.
//
// # Overview
//
// LEDs and human vision both respond non-linearly to drive level, so a raw
// 8-bit color has to pass through a transfer function before it is written
// to the hardware. ledgamma builds that function as 256-entry lookup tables
// (one per channel), derives their approximate inverses for blending, and
// applies them to frames together with brightness dimming and
// color-correction floors.
//
// # Quick Start
//
//	import "github.com/gogpu/ledgamma"
//
//	tu, err := ledgamma.NewTuner(ledgamma.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer tu.Close()
//
//	frame := ledgamma.NewFrame(144, false)
//	frame.Fill(ledgamma.RGB(255, 128, 0))
//	_ = tu.Process(frame) // frame is now ready for the renderer
//
// # Pipeline
//
// Tuner.Process runs, per pixel:
//   - gamma correction through the active Corrector (tables or closed form)
//   - dimming to the global brightness with a Dimmer; the channels carry
//     the dimming and the 5-bit aux field of APA102-style LEDs is left at
//     full (Dimmer.Scale offers the aux byte as the alternative path)
//   - EnforceFloors, so color correction applied later by the renderer
//     cannot round a lit channel to zero
//
// Blend interpolates already corrected pixels by moving them back through
// the inverse tables first.
//
// # Tuning
//
// A Tuner owns the live Config. Its setters rebuild tables and floors
// off to the side and publish them atomically, so a frame in flight always
// sees one consistent set. Config values can be stored as TOML or YAML
// profiles, and Tuner.Dump writes the tables as C arrays for embedding in
// firmware.
//
// ledgamma never talks to hardware; the renderer that owns the strip
// consumes the processed Frame.
package ledgamma

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
