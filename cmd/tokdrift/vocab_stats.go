package main

import (
	"path/filepath"

	"github.com/example/go-tokdrift/internal/config"
	"github.com/example/go-tokdrift/internal/report"
	"github.com/example/go-tokdrift/internal/vocab"
	"github.com/spf13/cobra"
)

func newVocabStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab-stats <vocab-file>...",
		Short: "Average token length and token-length distribution of vocabularies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			format, err := config.NormalizeFormat(cfg.Analysis.Format)
			if err != nil {
				return err
			}

			stats := make([]report.VocabStats, 0, len(args))

			for _, path := range args {
				toks, err := vocab.Load(path)
				if err != nil {
					return err
				}

				s, err := report.NewVocabStats(filepath.Base(path), toks)
				if err != nil {
					return err
				}

				stats = append(stats, s)
			}

			w, closeOut, err := openOutput(cfg.Paths.Output, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			err = report.WriteVocabStats(w, format, stats)
			if cerr := closeOut(); err == nil {
				err = cerr
			}

			return err
		},
	}

	return cmd
}
