package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/ledgamma"
)

func newPreviewCommand(g *globals) *cobra.Command {
	var (
		p      patternFlags
		cell   int
		output string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a calibration pattern to a PNG strip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := p.render(g)
			if err != nil {
				return err
			}
			if err := ledgamma.SavePreviewPNG(output, f, cell); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Preview saved to %s (%d LEDs, %s)\n", output, f.Len(), p.name)
			return nil
		},
	}
	p.register(cmd, 144)
	cmd.Flags().IntVar(&cell, "cell", 8, "pixel size of one LED in the image")
	cmd.Flags().StringVarP(&output, "output", "o", "preview.png", "output file")
	return cmd
}
