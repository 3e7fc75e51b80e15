// Package transport measures how far one agreement distribution is from
// another: the earth mover's distance under a ground cost between
// categories, and the optimal flow that realizes it.
package transport

import (
	"fmt"
	"math"
	"strings"

	"github.com/example/go-tokdrift/internal/agreement"
)

// CostMatrix is the ground cost between categories, indexed by Category.
type CostMatrix [agreement.NumCategories][agreement.NumCategories]float64

// DefaultCosts returns the hand-tuned proximity table. Categories agreeing
// with the multilingual tokenizer are close to each other (0.5); SAME and
// DIFFERENT are the opposite extremes (2).
func DefaultCosts() CostMatrix {
	const (
		s  = agreement.Same
		d  = agreement.Different
		m1 = agreement.L1EqMulti
		m2 = agreement.L2EqMulti
		mm = agreement.L1EqL2
	)

	var m CostMatrix
	m = m.With(s, d, 2)
	m = m.With(s, m1, 1)
	m = m.With(s, m2, 1)
	m = m.With(s, mm, 1)
	m = m.With(d, m1, 1)
	m = m.With(d, m2, 1)
	m = m.With(d, mm, 1)
	m = m.With(m1, m2, 0.5)
	m = m.With(m1, mm, 0.7)
	m = m.With(m2, mm, 0.7)

	return m
}

// Cost returns the cost of moving one unit of mass from a to b.
func (m CostMatrix) Cost(a, b agreement.Category) float64 { return m[a][b] }

// With returns a copy of m with the cost between a and b set to v in both
// directions.
func (m CostMatrix) With(a, b agreement.Category, v float64) CostMatrix {
	m[a][b] = v
	m[b][a] = v

	return m
}

// Validate checks that m is symmetric with a zero diagonal and finite,
// non-negative entries. The triangle inequality is not required.
func (m CostMatrix) Validate() error {
	for i := range m {
		if m[i][i] != 0 {
			return fmt.Errorf("transport: cost %v->%v is %v, want 0", agreement.Category(i), agreement.Category(i), m[i][i])
		}

		for j := range m[i] {
			v := m[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("transport: cost %v->%v is %v, want finite and >= 0",
					agreement.Category(i), agreement.Category(j), v)
			}

			if v != m[j][i] {
				return fmt.Errorf("transport: cost %v->%v (%v) != %v->%v (%v)",
					agreement.Category(i), agreement.Category(j), v,
					agreement.Category(j), agreement.Category(i), m[j][i])
			}
		}
	}

	return nil
}

// WithOverrides applies entries of the form "SAME:DIFFERENT" = 1.5 on top of
// m. Each entry sets both directions. The result is validated.
func (m CostMatrix) WithOverrides(overrides map[string]float64) (CostMatrix, error) {
	for key, v := range overrides {
		from, to, ok := strings.Cut(key, ":")
		if !ok {
			return CostMatrix{}, fmt.Errorf("transport: cost key %q: want FROM:TO", key)
		}

		a, err := agreement.ParseCategory(from)
		if err != nil {
			return CostMatrix{}, fmt.Errorf("transport: cost key %q: %w", key, err)
		}

		b, err := agreement.ParseCategory(to)
		if err != nil {
			return CostMatrix{}, fmt.Errorf("transport: cost key %q: %w", key, err)
		}

		m = m.With(a, b, v)
	}

	if err := m.Validate(); err != nil {
		return CostMatrix{}, err
	}

	return m, nil
}
