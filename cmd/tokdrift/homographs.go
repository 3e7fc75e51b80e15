package main

import (
	"fmt"
	"strings"

	"github.com/example/go-tokdrift/internal/words"
	"github.com/spf13/cobra"
)

func newHomographsCmd() *cobra.Command {
	var src words.HomographSources

	cmd := &cobra.Command{
		Use:   "homographs",
		Short: "List frequent words spelled identically in both languages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			list, err := words.LoadHomographs(src)
			if err != nil {
				return err
			}

			w, closeOut, err := openOutput(cfg.Paths.Output, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(w, strings.Join(list, "\n"))
			if cerr := closeOut(); err == nil {
				err = cerr
			}

			return err
		},
	}

	cmd.Flags().StringVar(&src.L1Dictionary, "l1-dictionary", "", "First-language dictionary (comma-separated words)")
	cmd.Flags().StringVar(&src.L2Dictionary, "l2-dictionary", "", "Second-language dictionary (comma-separated words)")
	cmd.Flags().StringVar(&src.L1Frequencies, "l1-frequencies", "", "First-language frequency file (id<TAB>word<TAB>count)")
	cmd.Flags().StringVar(&src.L2Frequencies, "l2-frequencies", "", "Second-language frequency file (id<TAB>word<TAB>count)")
	cmd.Flags().IntVar(&src.Threshold, "threshold", words.DefaultFrequencyThreshold, "Minimum count in both corpora")

	for _, name := range []string{"l1-dictionary", "l2-dictionary", "l1-frequencies", "l2-frequencies"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
