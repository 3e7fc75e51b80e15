// Package movement attributes category changes to concrete words by
// comparing two distributions built from the same word list.
package movement

import (
	"slices"

	"github.com/example/go-tokdrift/internal/agreement"
)

// Record maps a category to the words attributed to it. Word order follows
// the first distribution.
type Record map[agreement.Category][]string

// Words returns the sorted union of all words in r.
func (r Record) Words() []string {
	seen := make(map[string]struct{})
	for _, ws := range r {
		for _, w := range ws {
			seen[w] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}

	slices.Sort(out)

	return out
}

// Total returns the number of distinct words in r.
func (r Record) Total() int { return len(r.Words()) }

// MovedToTarget reports, for every category c, the words that were in c in
// before and are in target in after. Words already in target in both runs
// appear under target itself.
func MovedToTarget(before, after *agreement.Distribution, target agreement.Category) Record {
	out := make(Record, agreement.NumCategories)

	for _, c := range agreement.Categories {
		out[c] = collect(before.Words(c), func(w string) bool {
			return after.Contains(target, w)
		})
	}

	return out
}

// RemovedFromTarget reports, for every category other than target, the words
// that were in target in before and are in that category in after.
func RemovedFromTarget(before, after *agreement.Distribution, target agreement.Category) Record {
	out := make(Record, agreement.NumCategories-1)
	for _, c := range agreement.Categories {
		if c != target {
			out[c] = []string{}
		}
	}

	seen := make(map[string]struct{})

	for _, w := range before.Words(target) {
		if _, dup := seen[w]; dup {
			continue
		}

		seen[w] = struct{}{}

		c, ok := after.CategoryOf(w)
		if !ok || c == target {
			continue
		}

		out[c] = append(out[c], w)
	}

	return out
}

// MovedToTargetFiltered is MovedToTarget restricted to the flagged words,
// for example the false friends among a list of homographs. Words keep the
// order of before, not of flagged; the order of flagged has no effect on the
// result.
func MovedToTargetFiltered(before, after *agreement.Distribution, flagged []string, target agreement.Category) Record {
	keep := make(map[string]struct{}, len(flagged))
	for _, w := range flagged {
		keep[w] = struct{}{}
	}

	moved := MovedToTarget(before, after, target)

	out := make(Record, len(moved))
	for c, ws := range moved {
		out[c] = collect(ws, func(w string) bool {
			_, ok := keep[w]
			return ok
		})
	}

	return out
}

// collect returns the distinct words of ws accepted by keep, in order.
func collect(ws []string, keep func(string) bool) []string {
	out := []string{}
	seen := make(map[string]struct{})

	for _, w := range ws {
		if _, dup := seen[w]; dup || !keep(w) {
			continue
		}

		seen[w] = struct{}{}
		out = append(out, w)
	}

	return out
}
