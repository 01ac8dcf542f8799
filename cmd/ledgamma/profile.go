package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/ledgamma"
)

func newProfileCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Create and inspect tuning profiles",
	}
	cmd.AddCommand(newProfileInitCommand(), newProfileShowCommand(g))
	return cmd
}

func newProfileInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init PATH",
		Short: "Write the default profile to PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}
			if err := ledgamma.DefaultConfig().Save(path); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Profile written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newProfileShowCommand(g *globals) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active profile with defaults filled in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			return ledgamma.EncodeConfig(cmd.OutOrStdout(), cfg, ledgamma.Format(format))
		},
	}
	cmd.Flags().StringVar(&format, "format", string(ledgamma.FormatTOML), "output format (toml or yaml)")
	return cmd
}
