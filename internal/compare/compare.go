// Package compare runs the full analysis for one language pair: two
// agreement distributions, the transport plan between them and the word
// level movement records.
package compare

import (
	"errors"
	"fmt"

	"github.com/example/go-tokdrift/internal/agreement"
	"github.com/example/go-tokdrift/internal/movement"
	"github.com/example/go-tokdrift/internal/transport"
)

var ErrInvalidTarget = errors.New("compare: invalid target category")

// Run is one tokenizer training run.
type Run struct {
	Name       string
	Tokenizers agreement.Triple
}

// Unit compares a baseline and a refined run over the same word list.
type Unit struct {
	Labels   agreement.Labels
	Baseline Run
	Refined  Run
	Words    []string
	// Flagged restricts the third movement record. Empty means the record
	// is not computed.
	Flagged []string
	Target  agreement.Category
}

// Name identifies the unit by its language pair.
func (u Unit) Name() string { return u.Labels.L1 + "-" + u.Labels.L2 }

type Result struct {
	Labels   agreement.Labels
	Baseline string
	Refined  string
	Target   agreement.Category

	Before *agreement.Distribution
	After  *agreement.Distribution

	Transport *transport.Result
	// MovedIn is the probability mass arriving in Target, by source category.
	MovedIn map[agreement.Category]float64

	Moved        movement.Record
	Removed      movement.Record
	MovedFlagged movement.Record
}

// Compare builds both distributions, solves the transport problem between
// them and attributes the movement towards u.Target to words.
func Compare(u Unit, costs transport.CostMatrix, opts ...transport.Option) (*Result, error) {
	if !u.Target.Valid() {
		return nil, fmt.Errorf("%s: %w: %d", u.Name(), ErrInvalidTarget, int(u.Target))
	}

	if err := u.Labels.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", u.Name(), err)
	}

	before, err := agreement.Build(u.Words, u.Baseline.Tokenizers)
	if err != nil {
		return nil, fmt.Errorf("%s: build %s: %w", u.Name(), u.Baseline.Name, err)
	}

	after, err := agreement.Build(u.Words, u.Refined.Tokenizers)
	if err != nil {
		return nil, fmt.Errorf("%s: build %s: %w", u.Name(), u.Refined.Name, err)
	}

	plan, err := transport.Solve(before.Counts(), after.Counts(), costs, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: transport: %w", u.Name(), err)
	}

	res := &Result{
		Labels:    u.Labels,
		Baseline:  u.Baseline.Name,
		Refined:   u.Refined.Name,
		Target:    u.Target,
		Before:    before,
		After:     after,
		Transport: plan,
		MovedIn:   plan.Into(u.Target),
		Moved:     movement.MovedToTarget(before, after, u.Target),
		Removed:   movement.RemovedFromTarget(before, after, u.Target),
	}

	if len(u.Flagged) > 0 {
		res.MovedFlagged = movement.MovedToTargetFiltered(before, after, u.Flagged, u.Target)
	}

	return res, nil
}
