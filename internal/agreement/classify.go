package agreement

import "slices"

// Sequence is the ordered token output of one tokenizer for one word.
type Sequence []string

// Equal reports whole-sequence equality.
func (s Sequence) Equal(o Sequence) bool { return slices.Equal(s, o) }

// pattern is the equality relation over the three labelled sequences.
type pattern struct {
	l1Multi bool // t0 == t2
	l2Multi bool // t1 == t2
	l1L2    bool // t0 == t1
}

// Classify returns the agreement category of the L1 (t0), L2 (t1) and
// multilingual (t2) segmentations of one word.
//
// Sequence equality is an equivalence relation, so exactly five of the eight
// boolean patterns can occur: all equal, one of three single pairs, or none.
func Classify(t0, t1, t2 Sequence) Category {
	p := pattern{
		l1Multi: t0.Equal(t2),
		l2Multi: t1.Equal(t2),
		l1L2:    t0.Equal(t1),
	}

	switch p {
	case pattern{l1Multi: true, l2Multi: true, l1L2: true}:
		return Same
	case pattern{l1Multi: true}:
		return L1EqMulti
	case pattern{l2Multi: true}:
		return L2EqMulti
	case pattern{}:
		return Different
	case pattern{l1L2: true}:
		return L1EqL2
	}

	panic("agreement: sequence equality is not transitive")
}
