package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/go-tokdrift/internal/doctor"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var skipTokenizers bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the manifest, its input files and tokenizers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			result := doctor.Run(doctor.Config{
				ManifestPath:   cfg.Paths.Manifest,
				SkipTokenizers: skipTokenizers,
				Costs:          cfg.Costs,
			}, out)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(out, "doctor checks passed")

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipTokenizers, "skip-tokenizers", false, "Only check that tokenizer files exist")

	return cmd
}
