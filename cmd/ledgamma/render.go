package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/ledgamma"
	"github.com/gogpu/ledgamma/pattern"
)

// patternFlags selects and sizes a calibration pattern.
type patternFlags struct {
	name      string
	leds      int
	thickness int
	gradient  int
	raw       bool
}

func (p *patternFlags) register(cmd *cobra.Command, leds int) {
	f := cmd.Flags()
	d := pattern.DefaultParams()
	f.StringVarP(&p.name, "pattern", "p", pattern.ModeGradient.String(), "pattern to draw")
	f.IntVarP(&p.leds, "leds", "n", leds, "number of LEDs on the strip")
	f.IntVar(&p.thickness, "thickness", d.Thickness, "color band width in pixels")
	f.IntVar(&p.gradient, "gradient-length", d.GradientLength, "gradient segment length in pixels")
	f.BoolVar(&p.raw, "raw", false, "skip gamma and color correction")
}

// render draws the selected pattern and, unless --raw is set, runs it
// through a Tuner built from the active profile.
func (p *patternFlags) render(g *globals) (ledgamma.Frame, error) {
	mode, err := pattern.ParseMode(p.name)
	if err != nil {
		return ledgamma.Frame{}, err
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return ledgamma.Frame{}, err
	}

	c := pattern.NewCycler(pattern.Params{
		Thickness:      p.thickness,
		GradientLength: p.gradient,
		Correction:     cfg.Correction,
	})
	if err := c.SetMode(mode); err != nil {
		return ledgamma.Frame{}, err
	}
	f := ledgamma.NewFrame(max(p.leds, 0), true)
	c.Render(f)
	if p.raw {
		f.FoldLevels()
		return f, nil
	}

	t, err := ledgamma.NewTuner(cfg, ledgamma.WithWorkers(-1))
	if err != nil {
		return ledgamma.Frame{}, err
	}
	defer t.Close()
	return f, t.Process(f)
}
