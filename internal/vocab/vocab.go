// Package vocab computes summary statistics over a tokenizer vocabulary.
package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode/utf8"
)

// ErrEmptyVocab is returned when statistics are requested for no tokens.
var ErrEmptyVocab = errors.New("vocab: no tokens")

// Load reads a vocabulary file with one token per line. Lines may carry a
// tab-separated score, as in SentencePiece .vocab files; only the token is
// kept.
func Load(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- vocabulary files are operator-supplied inputs.
	if err != nil {
		return nil, fmt.Errorf("open vocab: %w", err)
	}
	defer func() { _ = f.Close() }()

	toks, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read vocab %s: %w", path, err)
	}

	return toks, nil
}

// Read parses a vocabulary from r. Empty lines are skipped.
func Read(r io.Reader) ([]string, error) {
	var out []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		tok, _, _ := strings.Cut(strings.TrimRight(sc.Text(), "\r"), "\t")
		if tok == "" {
			continue
		}

		out = append(out, tok)
	}

	return out, sc.Err()
}

// AverageLength returns the mean token length in code points.
func AverageLength(tokens []string) (float64, error) {
	if len(tokens) == 0 {
		return 0, ErrEmptyVocab
	}

	var chars int
	for _, t := range tokens {
		chars += utf8.RuneCountInString(t)
	}

	return float64(chars) / float64(len(tokens)), nil
}

// LengthShare is the fraction of the vocabulary with a given token length.
type LengthShare struct {
	Length int     `json:"length" yaml:"length"`
	Share  float64 `json:"share" yaml:"share"`
}

// LengthDistribution returns the share of tokens per length in code points,
// ordered by ascending length. Shares sum to one.
func LengthDistribution(tokens []string) ([]LengthShare, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyVocab
	}

	counts := make(map[int]int)
	for _, t := range tokens {
		counts[utf8.RuneCountInString(t)]++
	}

	out := make([]LengthShare, 0, len(counts))
	for l, n := range counts {
		out = append(out, LengthShare{Length: l, Share: float64(n) / float64(len(tokens))})
	}

	slices.SortFunc(out, func(a, b LengthShare) int { return a.Length - b.Length })

	return out, nil
}
