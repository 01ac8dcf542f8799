package main

import (
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/gogpu/ledgamma"
)

func newShowCommand(g *globals) *cobra.Command {
	var (
		p     patternFlags
		width int
		force bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Draw a calibration pattern as terminal color swatches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := p.render(g)
			if err != nil {
				return err
			}
			var opts []termenv.OutputOption
			if force {
				opts = append(opts, termenv.WithProfile(termenv.TrueColor))
			}
			out := termenv.NewOutput(cmd.OutOrStdout(), opts...)
			_, err = out.WriteString(swatches(out, f, width))
			return err
		},
	}
	p.register(cmd, 60)
	cmd.Flags().IntVar(&width, "width", 30, "swatches per line")
	cmd.Flags().BoolVar(&force, "force-color", false, "emit truecolor escapes even when not writing to a terminal")
	return cmd
}

// swatches renders each LED as a two-cell block in its color, as it would
// look with the aux brightness applied.
func swatches(out *termenv.Output, f ledgamma.Frame, width int) string {
	width = max(width, 1)
	var sb strings.Builder
	for i := range f.Pixels {
		px := f.Displayed(i)
		sb.WriteString(out.String("  ").Background(out.Color(px.Hex())).String())
		if (i+1)%width == 0 || i == len(f.Pixels)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
