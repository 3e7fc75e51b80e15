package main

import (
	"github.com/example/go-tokdrift/internal/agreement"
	"github.com/example/go-tokdrift/internal/config"
	"github.com/example/go-tokdrift/internal/report"
	"github.com/example/go-tokdrift/internal/transport"
	"github.com/spf13/cobra"
)

func newCostCmd() *cobra.Command {
	var l2 string

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Print the ground-cost matrix between agreement categories",
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
				return err
			}

			labels := agreement.Labels{L1: cfg.Analysis.L1, L2: l2}
			if err := labels.Validate(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			switch format {
			case config.FormatJSON:
				return report.WriteJSON(w, costTable(labels, costs))
			case config.FormatYAML:
				return report.WriteYAML(w, costTable(labels, costs))
			default:
				return report.WriteCosts(w, labels, costs)
			}
		},
	}

	cmd.Flags().StringVar(&l2, "l2", "l2", "Label of the second language used in category names")

	return cmd
}

func costTable(l agreement.Labels, m transport.CostMatrix) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, agreement.NumCategories)

	for _, a := range agreement.Categories {
		row := make(map[string]float64, agreement.NumCategories)
		for _, b := range agreement.Categories {
			row[l.Name(b)] = m.Cost(a, b)
		}

		out[l.Name(a)] = row
	}

	return out
}
