package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tveita/femctl/internal/config"
	"github.com/tveita/femctl/internal/expr"
	"github.com/tveita/femctl/internal/mesh"
	"github.com/tveita/femctl/internal/render"
	"github.com/tveita/femctl/internal/runstore"
	"github.com/tveita/femctl/internal/specfile"
	"github.com/tveita/femctl/internal/tools"
)

type figureResult struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Artifact string `json:"artifact,omitempty"`
	Error    string `json:"error,omitempty"`
}

type plotReport struct {
	ID        string         `json:"id"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   time.Time      `json:"ended_at"`
	Headless  bool           `json:"headless"`
	Figures   []figureResult `json:"figures"`
}

func renderCmd() *cobra.Command {
	var configPath string
	var outDir string
	var specPath string
	var cells int
	var show bool
	var noSave bool

	c := &cobra.Command{
		Use:   "render",
		Short: "Render the special function figures to plot files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.DefaultPlotConfig()
			if configPath != "" {
				var err error
				cfg, err = config.LoadPlotConfig(configPath)
				if err != nil {
					return fail(err)
				}
			}
			if outDir != "" {
				cfg.OutDir = outDir
			}
			if specPath != "" {
				cfg.SpecFile = specPath
			}

			spec := specfile.Default()
			if cfg.SpecFile != "" {
				var err error
				spec, err = specfile.Load(cfg.SpecFile)
				if err != nil {
					return fail(err)
				}
			}
			applyCells(&spec, cells, cfg.Cells)

			// The file renderer is always headless; DISPLAY only gates the
			// viewer.
			headless := os.Getenv("DISPLAY") == ""
			if headless {
				log.Info().Msg("no display found, rendering to files only")
			}

			report, err := renderAll(cfg, spec, headless)
			if !noSave {
				saveReport(cfg, report)
			}
			if err != nil {
				return fail(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "rendered %d figure(s) to %s\n", len(report.Figures), cfg.OutDir)
			if show {
				if headless {
					log.Warn().Msg("--show ignored: no display available")
				} else if err := openViewer(cmd.Context(), cfg); err != nil {
					log.Warn().Err(err).Msg("viewer failed")
				}
			}
			return nil
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "", "Plot config path (optional)")
	c.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (overrides config)")
	c.Flags().StringVarP(&specPath, "spec", "s", "", "Figure spec file (overrides config)")
	c.Flags().IntVar(&cells, "cells", 0, "Override mesh cells for every figure")
	c.Flags().BoolVar(&show, "show", false, "Open the output directory in the configured viewer")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save a plot report under runs/")
	return c
}

// applyCells resolves the mesh resolution for every figure: the --cells flag
// wins, then a non-default config value; otherwise the spec's own cells stand.
func applyCells(spec *specfile.Spec, flagCells, cfgCells int) {
	n := flagCells
	if n < 1 && cfgCells != specfile.DefaultCells {
		n = cfgCells
	}
	if n < 1 {
		return
	}
	for i := range spec.Figures {
		spec.Figures[i].Domain.Cells = n
	}
}

// renderAll evaluates and renders every figure, stopping at the first failure.
func renderAll(cfg config.PlotConfig, spec specfile.Spec, headless bool) (plotReport, error) {
	report := plotReport{
		ID:        runstore.NewID(),
		StartedAt: time.Now().UTC(),
		Headless:  headless,
	}

	for _, fig := range spec.Figures {
		result, err := renderFigure(cfg, fig)
		report.Figures = append(report.Figures, result)
		if err != nil {
			report.EndedAt = time.Now().UTC()
			return report, fmt.Errorf("figure %s: %w", fig.Name, err)
		}
		log.Debug().Str("figure", fig.Name).Str("artifact", result.Artifact).Msg("figure rendered")
	}

	report.EndedAt = time.Now().UTC()
	return report, nil
}

func renderFigure(cfg config.PlotConfig, fig specfile.Figure) (figureResult, error) {
	result := figureResult{Name: fig.Name, Title: fig.Title()}

	e, err := expr.Build(fig.Fn, fig.Order)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	a, b := fig.Domain.Resolve()
	m, err := mesh.NewInterval(fig.Domain.Cells, a, b)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	p, err := render.Line(render.Sample(e, m), fig.Title())
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	path := filepath.Join(cfg.OutDir, render.FileName(fig.Name))
	if err := render.SavePNG(p, path); err != nil {
		result.Error = err.Error()
		return result, err
	}
	result.Artifact = path
	return result, nil
}

func saveReport(cfg config.PlotConfig, report plotReport) {
	store := runstore.New(".", runstore.WithDir(cfg.RunsDir))
	path, err := store.Save("plot", report.ID, report)
	if err != nil {
		log.Warn().Err(err).Msg("plot report not saved")
		return
	}
	log.Debug().Str("path", path).Msg("plot report saved")
}

func openViewer(ctx context.Context, cfg config.PlotConfig) error {
	if cfg.Viewer == "" {
		return fmt.Errorf("no viewer configured")
	}
	var runner tools.ExecRunner
	_, stderr, _, err := runner.Run(ctx, cfg.Viewer, cfg.OutDir)
	if err != nil {
		return fmt.Errorf("%s %s: %s: %w", cfg.Viewer, cfg.OutDir, stderr, err)
	}
	return nil
}
