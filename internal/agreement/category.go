// Package agreement classifies how three tokenizers segment the same word
// and aggregates a word list into per-category distributions.
//
// The three tokenizers are, in order, the one trained on language L1 alone,
// the one trained on L2 alone, and the multilingual one trained on L1+L2.
package agreement

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the five mutually exclusive agreement patterns of three
// token sequences.
type Category int

const (
	Same      Category = iota // all three sequences agree
	Different                 // all three pairwise distinct
	L1EqMulti                 // only the L1 and multilingual sequences agree
	L2EqMulti                 // only the L2 and multilingual sequences agree
	L1EqL2                    // the monolingual sequences agree, the multilingual differs
)

// NumCategories is the size of the closed category set.
const NumCategories = 5

// Categories lists every category in canonical order.
var Categories = [NumCategories]Category{Same, Different, L1EqMulti, L2EqMulti, L1EqL2}

var symbols = [NumCategories]string{"SAME", "DIFFERENT", "L1_EQ_MULTI", "L2_EQ_MULTI", "L1_EQ_L2"}

// Valid reports whether c is one of the five categories.
func (c Category) Valid() bool { return c >= 0 && int(c) < NumCategories }

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}

	return symbols[c]
}

// ParseCategory parses a symbolic category name such as "L1_EQ_MULTI".
// Matching ignores case and treats '-' like '_'.
func ParseCategory(s string) (Category, error) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for i, sym := range symbols {
		if key == sym {
			return Category(i), nil
		}
	}

	return 0, fmt.Errorf("unknown category %q (want %s)", s, strings.Join(symbols[:], "|"))
}

// MarshalText encodes c by its symbolic name.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}

	return []byte(symbols[c]), nil
}

// UnmarshalText decodes a symbolic name.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// Labels names categories for presentation. L1 and L2 are opaque language
// identifiers ("en", "fr"); they never influence classification.
type Labels struct {
	L1 string
	L2 string
}

// ErrAmbiguousLabels is returned when L1 and L2 would give two categories the
// same presentation name.
var ErrAmbiguousLabels = errors.New("agreement: l1 and l2 labels must differ")

// Validate rejects empty labels and labels that collide in Names.
func (l Labels) Validate() error {
	if strings.TrimSpace(l.L1) == "" || strings.TrimSpace(l.L2) == "" {
		return fmt.Errorf("agreement: labels %q and %q must be non-empty", l.L1, l.L2)
	}

	if l.L1 == l.L2 {
		return fmt.Errorf("%w: both are %q", ErrAmbiguousLabels, l.L1)
	}

	return nil
}

// Name returns the presentation name of c, e.g. "en_t==multi_t".
func (l Labels) Name(c Category) string {
	switch c {
	case Same:
		return "same_splits"
	case Different:
		return "different_splits"
	case L1EqMulti:
		return l.L1 + "_t==multi_t"
	case L2EqMulti:
		return l.L2 + "_t==multi_t"
	case L1EqL2:
		return l.L1 + "_t==" + l.L2 + "_t"
	default:
		return c.String()
	}
}

// Names returns the presentation names in canonical order.
func (l Labels) Names() []string {
	out := make([]string, NumCategories)
	for i, c := range Categories {
		out[i] = l.Name(c)
	}

	return out
}

// Parse accepts either a presentation name or a symbolic name.
func (l Labels) Parse(name string) (Category, error) {
	for _, c := range Categories {
		if name == l.Name(c) {
			return c, nil
		}
	}

	return ParseCategory(name)
}
