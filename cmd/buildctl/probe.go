package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tveita/femctl/internal/pkgconf"
	"github.com/tveita/femctl/internal/tools"
)

func probeCmd() *cobra.Command {
	var configPath string
	var pkg string

	c := &cobra.Command{
		Use:   "probe",
		Short: "Discover the installed core library version via pkg-config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadBuildConfig(configPath)
			if err != nil {
				return fail(err)
			}
			if pkg == "" {
				pkg = cfg.Package
			}

			info, err := pkgconf.Probe(cmd.Context(), tools.ExecRunner{}, pkg)
			if err != nil {
				return fail(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "package:  %s\n", info.Pkg)
			fmt.Fprintf(out, "version:  %s\n", info.Version)
			for _, dir := range info.IncludeDirs {
				fmt.Fprintf(out, "include:  %s\n", dir)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "", "Build config path (optional)")
	c.Flags().StringVarP(&pkg, "package", "p", "", "Package name (overrides config)")
	return c
}
