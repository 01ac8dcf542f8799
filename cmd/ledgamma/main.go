// Command ledgamma builds, dumps and previews LED gamma tables.
//
//	ledgamma dump --config strip.toml --inverse
//	ledgamma dump --gamma 2.2 --max-out 31 --suffix Dim
//	ledgamma preview --pattern midpoint-repeating -o midpoint.png
//	ledgamma show --pattern gradient --leds 60
//	ledgamma profile init strip.toml
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/ledgamma"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ledgamma:", err)
		os.Exit(1)
	}
}

// globals holds the flags shared by every subcommand.
type globals struct {
	config  string
	verbose bool
}

func newRootCommand() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "ledgamma",
		Short:         "Gamma tables and color correction for addressable LEDs",
		Version:       ledgamma.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if g.verbose {
				ledgamma.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	root.PersistentFlags().StringVarP(&g.config, "config", "c", "", "tuning profile (.toml or .yaml)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log tuning changes to stderr")

	root.AddCommand(
		newDumpCommand(g),
		newPreviewCommand(g),
		newShowCommand(g),
		newProfileCommand(g),
	)
	return root
}

// loadConfig returns the profile named by --config, or the defaults.
func (g *globals) loadConfig() (ledgamma.Config, error) {
	if g.config == "" {
		return ledgamma.DefaultConfig(), nil
	}
	return ledgamma.LoadConfig(g.config)
}

// tuner builds a Tuner from the active profile.
func (g *globals) tuner() (*ledgamma.Tuner, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	return ledgamma.NewTuner(cfg, ledgamma.WithWorkers(-1))
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
