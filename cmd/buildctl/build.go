package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tveita/femctl/internal/extension"
	"github.com/tveita/femctl/internal/runstore"
	"github.com/tveita/femctl/internal/tools"
)

func buildCmd() *cobra.Command {
	var configPath string
	var buildType string
	var jobs int
	var noSave bool

	c := &cobra.Command{
		Use:   "build",
		Short: "Configure, compile and install the native extension",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadBuildConfig(configPath)
			if err != nil {
				return fail(err)
			}
			if buildType != "" {
				cfg.BuildType = buildType
			}
			if jobs > 0 {
				cfg.Jobs = jobs
			}

			var store *runstore.Store
			if !noSave {
				store = runstore.New(".", runstore.WithDir(cfg.RunsDir))
			}

			builder := extension.NewBuilder(tools.ExecRunner{}, cfg, store)
			report, err := builder.Run(cmd.Context())
			printReport(cmd, report)
			if err != nil {
				return fail(err)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "", "Build config path (optional)")
	c.Flags().StringVar(&buildType, "build-type", "", "Override build type: Debug|Release")
	c.Flags().IntVar(&jobs, "jobs", 0, "Override parallel build jobs")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save a build report under runs/")
	return c
}

func printReport(cmd *cobra.Command, report extension.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Package:   %s\n", report.Package)
	if report.Version != "" {
		fmt.Fprintf(out, "Version:   %s\n", report.Version)
	}
	fmt.Fprintf(out, "Run ID:    %s\n", report.ID)
	for _, s := range report.Steps {
		status := "OK"
		if s.Status != "ok" {
			status = "FAIL"
		}
		fmt.Fprintf(out, "- [%s] %s (%dms)\n", status, s.Name, s.DurationMS)
		if s.Detail != "" {
			fmt.Fprintf(out, "  %s\n", s.Detail)
		}
	}
	for _, a := range report.Artifacts {
		fmt.Fprintf(out, "installed: %s\n", a)
	}
}
