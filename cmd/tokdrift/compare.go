package main

import (
	"fmt"
	"log/slog"

	"github.com/example/go-tokdrift/internal/compare"
	"github.com/example/go-tokdrift/internal/config"
	"github.com/example/go-tokdrift/internal/report"
	"github.com/example/go-tokdrift/internal/transport"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare agreement distributions of the baseline and refined runs",
		Long: "Builds the agreement distribution of every unit in the manifest for both\n" +
			"runs, solves the earth mover's distance between them and reports which\n" +
			"words moved into and out of the target category.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			format, err := config.NormalizeFormat(cfg.Analysis.Format)
			if err != nil {
				return err
			}

			costs, err := transport.DefaultCosts().WithOverrides(cfg.Costs)
			if err != nil {
				return fmt.Errorf("costs: %w", err)
			}

			units, err := loadUnits(cfg)
			if err != nil {
				return err
			}

			outs := compare.Sweep(cmd.Context(), units, costs, cfg.Analysis.Workers,
				transport.WithTolerance(cfg.Analysis.Tolerance))
			rep := report.FromOutcomes(outs)

			w, closeOut, err := openOutput(cfg.Paths.Output, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			err = report.Write(w, format, rep)
			if cerr := closeOut(); err == nil {
				err = cerr
			}

			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			if len(rep.Failures) > 0 {
				return fmt.Errorf("%d of %d units failed", len(rep.Failures), len(outs))
			}

			return nil
		},
	}

	return cmd
}

// loadUnits reads and validates the manifest, filling the language label
// and target from the configuration when the manifest leaves them out.
func loadUnits(cfg config.Config) ([]compare.Unit, error) {
	m, err := config.LoadManifest(cfg.Paths.Manifest)
	if err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", cfg.Paths.Manifest, err)
	}

	if m.L1 == "" {
		m.L1 = cfg.Analysis.L1
	}

	if m.Target == "" {
		m.Target = cfg.Analysis.Target
	}

	units, err := compare.FromManifest(m, nil)
	if err != nil {
		return nil, err
	}

	slog.Info("manifest loaded", "path", cfg.Paths.Manifest, "units", len(units))

	return units, nil
}
