package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tveita/femctl/internal/buildinfo"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plotctl",
		Short:         "plotctl - special function plot driver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(renderCmd(), versionCmd())
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

func fail(err error) error {
	fmt.Fprintf(os.Stderr, "plotctl: %v\n", err)
	return err
}
