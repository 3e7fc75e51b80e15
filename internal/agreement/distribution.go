package agreement

import (
	"fmt"

	"github.com/example/go-tokdrift/internal/tokenizer"
)

// Triple holds the three tokenizers of one training run.
type Triple struct {
	L1    tokenizer.Tokenizer
	L2    tokenizer.Tokenizer
	Multi tokenizer.Tokenizer
}

// Counts is an aggregated distribution indexed by Category.
type Counts [NumCategories]float64

// Total returns the sum over all categories.
func (c Counts) Total() float64 {
	var sum float64
	for _, v := range c {
		sum += v
	}

	return sum
}

// Distribution maps every category to the words classified into it.
// It is built once by Build and never modified afterwards.
type Distribution struct {
	words [NumCategories][]string
	index map[string]Category
	n     int
}

// Build tokenizes every word with the three tokenizers of tri and groups the
// words by agreement category. The first tokenizer failure aborts the build
// and is returned unchanged.
func Build(words []string, tri Triple) (*Distribution, error) {
	if tri.L1 == nil || tri.L2 == nil || tri.Multi == nil {
		return nil, fmt.Errorf("agreement: incomplete tokenizer triple")
	}

	d := &Distribution{index: make(map[string]Category, len(words))}

	for _, w := range words {
		t0, err := tri.L1.Tokenize(w)
		if err != nil {
			return nil, err
		}

		t1, err := tri.L2.Tokenize(w)
		if err != nil {
			return nil, err
		}

		t2, err := tri.Multi.Tokenize(w)
		if err != nil {
			return nil, err
		}

		c := Classify(t0, t1, t2)
		d.words[c] = append(d.words[c], w)
		d.index[w] = c
		d.n++
	}

	return d, nil
}

// FromWords builds a Distribution from already classified word lists.
func FromWords(byCategory map[Category][]string) (*Distribution, error) {
	for c := range byCategory {
		if !c.Valid() {
			return nil, fmt.Errorf("agreement: invalid category %d", int(c))
		}
	}

	d := &Distribution{index: make(map[string]Category)}

	for _, c := range Categories {
		for _, w := range byCategory[c] {
			if prev, ok := d.index[w]; ok && prev != c {
				return nil, fmt.Errorf("agreement: word %q in both %s and %s", w, prev, c)
			}

			d.words[c] = append(d.words[c], w)
			d.index[w] = c
			d.n++
		}
	}

	return d, nil
}

// Words returns a copy of the words in category c, in input order.
func (d *Distribution) Words(c Category) []string {
	if !c.Valid() {
		return nil
	}

	return append([]string(nil), d.words[c]...)
}

// Count returns the number of words in category c.
func (d *Distribution) Count(c Category) int {
	if !c.Valid() {
		return 0
	}

	return len(d.words[c])
}

// Counts returns the aggregated distribution.
func (d *Distribution) Counts() Counts {
	var out Counts
	for i := range d.words {
		out[i] = float64(len(d.words[i]))
	}

	return out
}

// Len returns the number of classified words, duplicates included.
func (d *Distribution) Len() int { return d.n }

// CategoryOf returns the category a word was classified into.
func (d *Distribution) CategoryOf(word string) (Category, bool) {
	c, ok := d.index[word]
	return c, ok
}

// Contains reports whether word is in category c.
func (d *Distribution) Contains(c Category, word string) bool {
	got, ok := d.index[word]
	return ok && got == c
}
