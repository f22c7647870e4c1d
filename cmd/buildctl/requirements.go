package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tveita/femctl/internal/config"
	"github.com/tveita/femctl/internal/deps"
	"github.com/tveita/femctl/internal/pkgconf"
	"github.com/tveita/femctl/internal/tools"
)

func requirementsCmd() *cobra.Command {
	var configPath string
	var output string
	var asManifest bool

	c := &cobra.Command{
		Use:   "requirements",
		Short: "Emit the companion requirement set pinned to the installed core version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadBuildConfig(configPath)
			if err != nil {
				return fail(err)
			}

			info, err := pkgconf.Probe(cmd.Context(), tools.ExecRunner{}, cfg.Package)
			if err != nil {
				return fail(err)
			}

			pins, err := deps.PinTo(requirementSet(cfg), info.Version)
			if err != nil {
				return fail(err)
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fail(fmt.Errorf("create %s: %w", output, err))
				}
				defer f.Close()
				w = f
			}

			if asManifest {
				if err := deps.NewManifest(cfg.Package, info.Version, pins).Encode(w); err != nil {
					return fail(err)
				}
				return nil
			}
			fmt.Fprint(w, deps.Render(pins))
			return nil
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "", "Build config path (optional)")
	c.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	c.Flags().BoolVar(&asManifest, "manifest", false, "Emit the TOML manifest instead of requirements lines")
	return c
}

func requirementSet(cfg config.BuildConfig) []deps.Requirement {
	if len(cfg.Requirements) == 0 {
		return deps.DefaultSet()
	}
	set := make([]deps.Requirement, 0, len(cfg.Requirements))
	for _, rc := range cfg.Requirements {
		set = append(set, deps.Requirement{Name: rc.Name, Pin: rc.Pin})
	}
	return set
}
