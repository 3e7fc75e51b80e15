package movement

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/example/go-tokdrift/internal/agreement"
	"github.com/google/go-cmp/cmp"
)

func mustDist(t *testing.T, byCat map[agreement.Category][]string) *agreement.Distribution {
	t.Helper()

	d, err := agreement.FromWords(byCat)
	if err != nil {
		t.Fatalf("FromWords: %v", err)
	}

	return d
}

// before: baseline run; after: refined run over the same homographs.
func fixture(t *testing.T) (*agreement.Distribution, *agreement.Distribution) {
	t.Helper()

	before := mustDist(t, map[agreement.Category][]string{
		agreement.Same:      {"chat", "art"},
		agreement.Different: {"pain", "coin"},
		agreement.L1EqMulti: {"main", "four"},
		agreement.L2EqMulti: {"lit"},
		agreement.L1EqL2:    {"sale"},
	})

	after := mustDist(t, map[agreement.Category][]string{
		agreement.Same:      {"chat", "pain", "main", "sale"},
		agreement.Different: {"coin"},
		agreement.L1EqMulti: {"art"},
		agreement.L2EqMulti: {"lit", "four"},
	})

	return before, after
}

func TestMovedToTarget(t *testing.T) {
	before, after := fixture(t)

	got := MovedToTarget(before, after, agreement.Same)
	want := Record{
		agreement.Same:      {"chat"},
		agreement.Different: {"pain"},
		agreement.L1EqMulti: {"main"},
		agreement.L2EqMulti: {},
		agreement.L1EqL2:    {"sale"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MovedToTarget mismatch (-want +got):\n%s", diff)
	}
}

func TestRemovedFromTarget(t *testing.T) {
	before, after := fixture(t)

	got := RemovedFromTarget(before, after, agreement.Same)
	want := Record{
		agreement.Different: {},
		agreement.L1EqMulti: {"art"},
		agreement.L2EqMulti: {},
		agreement.L1EqL2:    {},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RemovedFromTarget mismatch (-want +got):\n%s", diff)
	}

	if _, ok := got[agreement.Same]; ok {
		t.Error("target category must not be a key of the removal record")
	}
}

func TestRemovedFromTarget_WordMissingFromAfter(t *testing.T) {
	before := mustDist(t, map[agreement.Category][]string{agreement.Same: {"gone", "kept"}})
	after := mustDist(t, map[agreement.Category][]string{agreement.Same: {"kept"}})

	got := RemovedFromTarget(before, after, agreement.Same)
	if got.Total() != 0 {
		t.Errorf("words absent from the second run must not be attributed: %v", got)
	}
}

func TestMovedToTargetFiltered(t *testing.T) {
	before, after := fixture(t)

	got := MovedToTargetFiltered(before, after, []string{"pain", "sale", "lit", "unrelated"}, agreement.Same)
	want := Record{
		agreement.Same:      {},
		agreement.Different: {"pain"},
		agreement.L1EqMulti: {},
		agreement.L2EqMulti: {},
		agreement.L1EqL2:    {"sale"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MovedToTargetFiltered mismatch (-want +got):\n%s", diff)
	}
}

func TestMovedToTargetFiltered_IgnoresFlaggedOrder(t *testing.T) {
	before, after := fixture(t)

	a := MovedToTargetFiltered(before, after, []string{"sale", "main", "pain"}, agreement.Same)
	b := MovedToTargetFiltered(before, after, []string{"pain", "sale", "main"}, agreement.Same)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("result depends on flagged order (-a +b):\n%s", diff)
	}
}

func TestRecord_Helpers(t *testing.T) {
	r := Record{agreement.Same: {"b", "a"}, agreement.Different: {"a", "c"}}

	if diff := cmp.Diff([]string{"a", "b", "c"}, r.Words()); diff != "" {
		t.Errorf("Words mismatch (-want +got):\n%s", diff)
	}

	if r.Total() != 3 {
		t.Errorf("Total = %d, want 3", r.Total())
	}
}

// randomDist assigns every word a random category; words with drop set are
// left out.
func randomDist(t *testing.T, rng *rand.Rand, words []string, drop func(int) bool) *agreement.Distribution {
	t.Helper()

	byCat := map[agreement.Category][]string{}
	for i, w := range words {
		if drop(i) {
			continue
		}

		c := agreement.Categories[rng.IntN(agreement.NumCategories)]
		byCat[c] = append(byCat[c], w)
	}

	return mustDist(t, byCat)
}

func TestMovedToTarget_Consistency(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	words := make([]string, 40)
	for i := range words {
		words[i] = fmt.Sprintf("w%02d", i)
	}

	for trial := range 100 {
		d1 := randomDist(t, rng, words, func(i int) bool { return i%7 == 0 })
		d2 := randomDist(t, rng, words, func(i int) bool { return i%5 == 0 })

		for _, target := range agreement.Categories {
			got := MovedToTarget(d1, d2, target).Words()

			var want []string
			for _, w := range d2.Words(target) {
				if _, ok := d1.CategoryOf(w); ok {
					want = append(want, w)
				}
			}

			slices.Sort(want)
			want = slices.Compact(want)

			if want == nil {
				want = []string{}
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("trial %d target %v: union mismatch (-want +got):\n%s", trial, target, diff)
			}

			removed := RemovedFromTarget(d1, d2, target)
			for c, ws := range removed {
				for _, w := range ws {
					if !d1.Contains(target, w) || !d2.Contains(c, w) {
						t.Fatalf("trial %d: %q wrongly attributed to %v", trial, w, c)
					}
				}
			}
		}
	}
}
