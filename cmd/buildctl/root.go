package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tveita/femctl/internal/buildinfo"
	"github.com/tveita/femctl/internal/config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "buildctl",
		Short:         "buildctl - native extension build driver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(probeCmd(), requirementsCmd(), buildCmd(), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

// loadBuildConfig returns defaults when no config path is given, so every
// subcommand works out of the box.
func loadBuildConfig(path string) (config.BuildConfig, error) {
	if path == "" {
		return config.DefaultBuildConfig(), nil
	}
	return config.LoadBuildConfig(path)
}

func fail(err error) error {
	fmt.Fprintf(os.Stderr, "buildctl: %v\n", err)
	return err
}
