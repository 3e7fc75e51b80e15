package main

import (
	"fmt"
	"strings"

	"github.com/example/go-tokdrift/internal/compare"
	"github.com/example/go-tokdrift/internal/report"
	"github.com/spf13/cobra"
)

func newSplitsCmd() *cobra.Command {
	var (
		unit string
		run  string
	)

	cmd := &cobra.Command{
		Use:   "splits",
		Short: "Export how each tokenizer of a run splits the unit's words (CSV)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			units, err := loadUnits(cfg)
			if err != nil {
				return err
			}

			u, err := pickUnit(units, unit)
			if err != nil {
				return err
			}

			r, err := pickRun(u, run)
			if err != nil {
				return err
			}

			rows, err := report.Splits(u.Words, r.Tokenizers)
			if err != nil {
				return fmt.Errorf("%s %s: %w", u.Name(), r.Name, err)
			}

			w, closeOut, err := openOutput(cfg.Paths.Output, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			err = report.WriteSplits(w, u.Labels, rows)
			if cerr := closeOut(); err == nil {
				err = cerr
			}

			return err
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "", "Second-language label of the unit (default: first unit)")
	cmd.Flags().StringVar(&run, "run", "baseline", "Run to export: baseline, refined or a run name")

	return cmd
}

func pickUnit(units []compare.Unit, l2 string) (compare.Unit, error) {
	if len(units) == 0 {
		return compare.Unit{}, fmt.Errorf("manifest has no units")
	}

	if l2 == "" {
		return units[0], nil
	}

	for _, u := range units {
		if u.Labels.L2 == l2 {
			return u, nil
		}
	}

	return compare.Unit{}, fmt.Errorf("no unit with l2 %q", l2)
}

func pickRun(u compare.Unit, name string) (compare.Run, error) {
	switch strings.ToLower(name) {
	case "", "baseline":
		return u.Baseline, nil
	case "refined":
		return u.Refined, nil
	}

	for _, r := range []compare.Run{u.Baseline, u.Refined} {
		if r.Name == name {
			return r, nil
		}
	}

	return compare.Run{}, fmt.Errorf("%s: no run named %q", u.Name(), name)
}
