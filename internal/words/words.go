// Package words loads the word universes compared by tokdrift: plain word
// lists, flagged (false friend) subsets, corpus frequency tables and
// language dictionaries from which cross-lingual homographs are derived.
package words

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultFlaggedColumn is the CSV header holding flagged words.
const DefaultFlaggedColumn = "False Friend"

// DefaultFrequencyThreshold is the minimum corpus frequency of a homograph.
const DefaultFrequencyThreshold = 50

// ErrColumnNotFound is returned when a CSV lacks the requested column.
var ErrColumnNotFound = errors.New("column not found")

// Normalize returns word in NFC form, lowercased and trimmed, so "Chat" and
// "chat" count as the same word. A Caser is stateful, so one is created per
// call.
func Normalize(word string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(strings.TrimSpace(word)))
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path) // #nosec G304 -- word files are operator-supplied inputs.
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return f, nil
}

// LoadList reads one word per line from path.
func LoadList(path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	ws, err := ReadList(f)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}

	return ws, nil
}

// ReadList reads one word per line. Blank lines and lines starting with '#'
// are skipped; words are kept verbatim apart from surrounding whitespace.
func ReadList(r io.Reader) ([]string, error) {
	var out []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}

		out = append(out, w)
	}

	return out, sc.Err()
}

// LoadFlagged reads the given column of a CSV file with a header row. An
// empty column selects DefaultFlaggedColumn.
func LoadFlagged(path, column string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	ws, err := ReadFlagged(f, column)
	if err != nil {
		return nil, fmt.Errorf("read flagged words %s: %w", path, err)
	}

	return ws, nil
}

// ReadFlagged reads the named column of CSV data, dropping duplicates and
// empty cells while keeping first-seen order.
func ReadFlagged(r io.Reader, column string) ([]string, error) {
	if column == "" {
		column = DefaultFlaggedColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := slices.IndexFunc(header, func(h string) bool {
		return strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), column)
	})
	if col < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	var out []string

	seen := make(map[string]struct{})

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		if col >= len(rec) {
			continue
		}

		w := strings.TrimSpace(rec[col])
		if _, dup := seen[w]; dup || w == "" {
			continue
		}

		seen[w] = struct{}{}
		out = append(out, w)
	}

	return out, nil
}

// LoadFrequencies reads a corpus word-frequency file.
func LoadFrequencies(path string) (map[string]int, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	freqs, err := ReadFrequencies(f)
	if err != nil {
		return nil, fmt.Errorf("read frequencies %s: %w", path, err)
	}

	return freqs, nil
}

// ReadFrequencies parses "id<TAB>word<TAB>count" lines. Words are
// normalized, so counts of case variants are summed.
func ReadFrequencies(r io.Reader) (map[string]int, error) {
	freqs := make(map[string]int)

	sc := bufio.NewScanner(r)
	line := 0

	for sc.Scan() {
		line++

		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want 3 tab-separated fields, got %d", line, len(fields))
		}

		n, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad count: %w", line, err)
		}

		freqs[Normalize(fields[1])] += n
	}

	return freqs, sc.Err()
}

// FilterByFrequency returns the words whose count is at least threshold.
func FilterByFrequency(freqs map[string]int, threshold int) map[string]struct{} {
	out := make(map[string]struct{})
	for w, n := range freqs {
		if n >= threshold {
			out[w] = struct{}{}
		}
	}

	return out
}

// LoadDictionary reads a language dictionary stored as a single
// comma-separated line.
func LoadDictionary(path string) (map[string]struct{}, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	d, err := ReadDictionary(f)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}

	return d, nil
}

// ReadDictionary parses the first line of r as comma-separated words.
func ReadDictionary(r io.Reader) (map[string]struct{}, error) {
	br := bufio.NewReader(r)

	first, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	out := make(map[string]struct{})
	for _, w := range strings.Split(first, ",") {
		if w = Normalize(w); w != "" {
			out[w] = struct{}{}
		}
	}

	return out, nil
}

// Homographs returns the sorted words present in every set: typically both
// language dictionaries and the frequent words of both corpora.
func Homographs(sets ...map[string]struct{}) []string {
	if len(sets) == 0 {
		return nil
	}

	smallest := slices.MinFunc(sets, func(a, b map[string]struct{}) int { return len(a) - len(b) })

	var out []string

	for w := range smallest {
		inAll := true

		for _, s := range sets {
			if _, ok := s[w]; !ok {
				inAll = false
				break
			}
		}

		if inAll {
			out = append(out, w)
		}
	}

	slices.Sort(out)

	return out
}
