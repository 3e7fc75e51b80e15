package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/go-tokdrift/internal/config"
	"github.com/example/go-tokdrift/internal/vocab"
)

// VocabStats summarizes one vocabulary file.
type VocabStats struct {
	Name          string              `json:"name" yaml:"name"`
	Size          int                 `json:"size" yaml:"size"`
	AverageLength float64             `json:"average_length" yaml:"average_length"`
	Lengths       []vocab.LengthShare `json:"lengths" yaml:"lengths"`
}

// NewVocabStats computes the statistics of tokens.
func NewVocabStats(name string, tokens []string) (VocabStats, error) {
	avg, err := vocab.AverageLength(tokens)
	if err != nil {
		return VocabStats{}, fmt.Errorf("%s: %w", name, err)
	}

	dist, err := vocab.LengthDistribution(tokens)
	if err != nil {
		return VocabStats{}, fmt.Errorf("%s: %w", name, err)
	}

	return VocabStats{Name: name, Size: len(tokens), AverageLength: avg, Lengths: dist}, nil
}

// WriteVocabStats renders stats in format.
func WriteVocabStats(w io.Writer, format string, stats []VocabStats) error {
	switch format {
	case config.FormatJSON:
		return WriteJSON(w, stats)
	case config.FormatYAML:
		return WriteYAML(w, stats)
	}

	sb := &strings.Builder{}

	for i, s := range stats {
		if i > 0 {
			fmt.Fprintln(sb)
		}

		fmt.Fprintf(sb, "%s  size=%d  avg_len=%.3f\n", s.Name, s.Size, s.AverageLength)
		fmt.Fprintf(sb, "%6s  %8s\n", "Length", "Share")

		for _, ls := range s.Lengths {
			fmt.Fprintf(sb, "%6d  %8.4f\n", ls.Length, ls.Share)
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err
}
