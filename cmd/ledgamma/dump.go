package main

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/ledgamma"
)

func newDumpCommand(g *globals) *cobra.Command {
	var (
		gamma   float64
		maxIn   int
		maxOut  int
		suffix  string
		inverse bool
		output  string
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print gamma tables as C arrays",
		Long: `Print gamma tables as PROGMEM C arrays.

Without --gamma the R, G and B tables of the active profile are printed.
With --gamma a single table is built for that exponent and range.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			w := cmd.OutOrStdout()
			if output != "" {
				f, cerr := os.Create(output)
				if cerr != nil {
					return cerr
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				w = f
			}
			bw := bufio.NewWriter(w)

			if cmd.Flags().Changed("gamma") {
				if err := ledgamma.DumpGamma(bw, gamma, maxIn, maxOut, suffix, inverse); err != nil {
					return err
				}
				return bw.Flush()
			}

			t, err := g.tuner()
			if err != nil {
				return err
			}
			defer t.Close()
			if err := t.Dump(bw, inverse); err != nil {
				return err
			}
			return bw.Flush()
		},
	}
	f := cmd.Flags()
	f.Float64Var(&gamma, "gamma", 2.2, "build a single table for this exponent instead of the profile")
	f.IntVar(&maxIn, "max-in", 255, "largest input level (with --gamma)")
	f.IntVar(&maxOut, "max-out", 255, "largest output level (with --gamma)")
	f.StringVar(&suffix, "suffix", "", "array name suffix (with --gamma)")
	f.BoolVar(&inverse, "inverse", false, "also print the inverse tables")
	f.StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
