package tokenizer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is a closed-set tokenizer backed by splits computed elsewhere, for
// example exported from a Python tokenizer pipeline. Each record maps a word
// to its space-separated tokens:
//
//	word<TAB>tok tok tok
type Table struct {
	splits map[string][]string
}

// NewTable builds a Table from an in-memory word-to-tokens map.
func NewTable(splits map[string][]string) *Table {
	cp := make(map[string][]string, len(splits))
	for w, toks := range splits {
		cp[w] = append([]string(nil), toks...)
	}

	return &Table{splits: cp}
}

// NewTableFromFile reads a tab-separated split table from path.
func NewTableFromFile(path string) (*Table, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	f, err := os.Open(path) // #nosec G304 -- split tables are operator-supplied inputs.
	if err != nil {
		return nil, fmt.Errorf("open split table: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("read split table %q: %w", path, err)
	}

	return t, nil
}

// ReadTable parses a split table. Lines starting with '#' are skipped.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	splits := make(map[string][]string)

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		if len(rec) != 2 {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: want 2 fields, got %d", line, len(rec))
		}

		word := strings.TrimSpace(rec[0])
		if word == "" {
			continue
		}

		splits[word] = strings.Fields(rec[1])
	}

	return &Table{splits: splits}, nil
}

// Len returns the number of words in the table.
func (t *Table) Len() int { return len(t.splits) }

// Tokenize returns the stored split for word.
func (t *Table) Tokenize(word string) ([]string, error) {
	if word == "" {
		return nil, &Error{Word: word, Backend: KindTable, Err: ErrEmptyInput}
	}

	toks, ok := t.splits[word]
	if !ok {
		return nil, &Error{Word: word, Backend: KindTable, Err: ErrUnknownWord}
	}

	return append([]string(nil), toks...), nil
}
