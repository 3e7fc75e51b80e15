package report

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/example/go-tokdrift/internal/agreement"
)

// SplitRow holds the tokenization of one word by every tokenizer of a run.
type SplitRow struct {
	Word     string
	L1       []string
	L2       []string
	Multi    []string
	Category agreement.Category
}

// Splits tokenizes words with tri. The first tokenizer error is returned.
func Splits(words []string, tri agreement.Triple) ([]SplitRow, error) {
	rows := make([]SplitRow, 0, len(words))

	for _, w := range words {
		r := SplitRow{Word: w}

		var err error

		if r.L1, err = tri.L1.Tokenize(w); err != nil {
			return nil, err
		}

		if r.L2, err = tri.L2.Tokenize(w); err != nil {
			return nil, err
		}

		if r.Multi, err = tri.Multi.Tokenize(w); err != nil {
			return nil, err
		}

		r.Category = agreement.Classify(r.L1, r.L2, r.Multi)
		rows = append(rows, r)
	}

	return rows, nil
}

// WriteSplits writes rows as CSV with columns word, <l1>_tokenizer,
// <l2>_tokenizer, <l1>_<l2>_tokenizer and category. Tokens are space
// separated.
func WriteSplits(w io.Writer, l agreement.Labels, rows []SplitRow) error {
	cw := csv.NewWriter(w)

	header := []string{
		"word",
		l.L1 + "_tokenizer",
		l.L2 + "_tokenizer",
		l.L1 + "_" + l.L2 + "_tokenizer",
		"category",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		rec := []string{
			r.Word,
			strings.Join(r.L1, " "),
			strings.Join(r.L2, " "),
			strings.Join(r.Multi, " "),
			l.Name(r.Category),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
