package transport

import (
	"errors"
	"fmt"
	"math"

	"github.com/example/go-tokdrift/internal/agreement"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// DefaultTolerance bounds the acceptable drift of the solved flow from the
// normalized marginals.
const DefaultTolerance = 1e-9

var (
	// ErrDegenerateDistribution is returned when a count vector sums to zero
	// and cannot be normalized.
	ErrDegenerateDistribution = errors.New("transport: distribution has zero total mass")
	// ErrInvalidCounts is returned for negative, NaN or infinite counts.
	ErrInvalidCounts = errors.New("transport: counts must be finite and non-negative")
	// ErrSolver matches every *SolverError.
	ErrSolver = errors.New("transport: solver failed")
)

// SolverError reports a failed LP solve. It is fatal for the comparison and
// never replaced by a default distance.
type SolverError struct {
	Err error
}

func (e *SolverError) Error() string { return fmt.Sprintf("transport: solve: %v", e.Err) }

func (e *SolverError) Unwrap() error { return e.Err }

// Is reports ErrSolver equivalence.
func (e *SolverError) Is(target error) bool { return target == ErrSolver }

// Result is an optimal transport plan between two distributions.
type Result struct {
	// Distance is the earth mover's distance: sum of Costs[i][j] * Flow[i][j].
	Distance float64
	// Flow[i][j] is the probability mass moved from category i of the
	// source to category j of the target.
	Flow *mat.Dense
	// Source and Target are the normalized input distributions.
	Source agreement.Counts
	Target agreement.Counts
}

// Into returns how much of the mass arriving in target came from each source
// category: {c: Flow[c][target]}.
func (r *Result) Into(target agreement.Category) map[agreement.Category]float64 {
	if !target.Valid() {
		return nil
	}

	out := make(map[agreement.Category]float64, agreement.NumCategories)
	for _, c := range agreement.Categories {
		out[c] = r.Flow.At(int(c), int(target))
	}

	return out
}

// OutOf returns where the mass leaving source went: {c: Flow[source][c]}.
func (r *Result) OutOf(source agreement.Category) map[agreement.Category]float64 {
	if !source.Valid() {
		return nil
	}

	out := make(map[agreement.Category]float64, agreement.NumCategories)
	for _, c := range agreement.Categories {
		out[c] = r.Flow.At(int(source), int(c))
	}

	return out
}

// Moved returns the total off-diagonal mass, the share of words that changed
// category under the optimal plan.
func (r *Result) Moved() float64 {
	var sum float64

	n, _ := r.Flow.Dims()
	for i := range n {
		for j := range n {
			if i != j {
				sum += r.Flow.At(i, j)
			}
		}
	}

	return sum
}

type options struct {
	tol float64
}

// Option configures Solve.
type Option func(*options)

// WithTolerance overrides DefaultTolerance. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tol = tol
		}
	}
}

// Normalize scales counts to sum to one.
func Normalize(counts agreement.Counts) (agreement.Counts, error) {
	for _, v := range counts {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return agreement.Counts{}, ErrInvalidCounts
		}
	}

	total := counts.Total()
	if total == 0 {
		return agreement.Counts{}, ErrDegenerateDistribution
	}

	var out agreement.Counts
	for i, v := range counts {
		out[i] = v / total
	}

	return out, nil
}

// Solve computes the earth mover's distance from source to target under
// costs by solving the balanced transportation problem
//
//	minimize   sum_ij C[i][j] F[i][j]
//	subject to sum_j F[i][j] = s[i], sum_i F[i][j] = t[j], F >= 0
//
// over the normalized distributions s and t.
func Solve(source, target agreement.Counts, costs CostMatrix, opts ...Option) (*Result, error) {
	o := options{tol: DefaultTolerance}
	for _, opt := range opts {
		opt(&o)
	}

	if err := costs.Validate(); err != nil {
		return nil, err
	}

	s, err := Normalize(source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	t, err := Normalize(target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	const n = agreement.NumCategories

	x, err := solveReduced(s, t, costs, o.tol)
	if err != nil {
		return nil, &SolverError{Err: err}
	}

	flow := mat.NewDense(n, n, nil)
	for i := range n {
		for j := range n {
			v := x[i][j]
			if v < 0 {
				if v < -o.tol {
					return nil, &SolverError{Err: fmt.Errorf("negative flow %v at (%v,%v)",
						v, agreement.Category(i), agreement.Category(j))}
				}

				v = 0
			}

			flow.Set(i, j, v)
		}
	}

	if err := checkMarginals(flow, s, t, o.tol); err != nil {
		return nil, &SolverError{Err: err}
	}

	var dist float64
	for i := range n {
		for j := range n {
			dist += costs[i][j] * flow.At(i, j)
		}
	}

	return &Result{Distance: dist, Flow: flow, Source: s, Target: t}, nil
}

// checkMarginals verifies the transportation invariant: row sums equal the
// source and column sums equal the target.
func checkMarginals(flow *mat.Dense, s, t agreement.Counts, tol float64) error {
	n, _ := flow.Dims()
	slack := tol * float64(n)

	for i := range n {
		if got := mat.Sum(flow.RowView(i)); math.Abs(got-s[i]) > slack {
			return fmt.Errorf("row %d sums to %v, want %v", i, got, s[i])
		}

		if got := mat.Sum(flow.ColView(i)); math.Abs(got-t[i]) > slack {
			return fmt.Errorf("column %d sums to %v, want %v", i, got, t[i])
		}
	}

	return nil
}

// solveReduced solves the LP over the categories with positive mass only;
// every flow touching an empty category is zero in any feasible plan.
func solveReduced(s, t agreement.Counts, costs CostMatrix, tol float64) (flow [agreement.NumCategories][agreement.NumCategories]float64, err error) {
	src := support(s)
	dst := support(t)
	m, k := len(src), len(dst)

	c := make([]float64, m*k)
	for i, si := range src {
		for j, tj := range dst {
			c[i*k+j] = costs[si][tj]
		}
	}

	// Row constraints for every source category and column constraints for
	// all but the last target category. The dropped column is implied by the
	// others because both sides carry unit mass, and Simplex needs A to have
	// full row rank.
	rows := m + k - 1
	A := mat.NewDense(rows, m*k, nil)
	b := make([]float64, rows)

	for i, si := range src {
		for j := range k {
			A.Set(i, i*k+j, 1)
		}

		b[i] = s[si]
	}

	for j := range k - 1 {
		for i := range m {
			A.Set(m+j, i*k+j, 1)
		}

		b[m+j] = t[dst[j]]
	}

	x, err := simplex(c, A, b, tol, northWestCorner(s, t, src, dst))
	if err != nil {
		return flow, err
	}

	for i, si := range src {
		for j, tj := range dst {
			flow[si][tj] = x[i*k+j]
		}
	}

	return flow, nil
}

// simplex runs lp.Simplex, turning its panics on a rejected initial basis
// into errors.
func simplex(c []float64, A mat.Matrix, b []float64, tol float64, basic []int) (x []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simplex: %v", r)
		}
	}()

	_, x, err = lp.Simplex(c, A, b, tol, basic)

	return x, err
}

func support(p agreement.Counts) []int {
	var idx []int

	for i, v := range p {
		if v > 0 {
			idx = append(idx, i)
		}
	}

	return idx
}

// northWestCorner returns the variable indices of the north-west corner
// basic feasible solution. Each step advances exactly one of the row or
// column cursors, so the basis has m+k-1 cells forming a spanning tree of
// the transportation graph.
func northWestCorner(s, t agreement.Counts, src, dst []int) []int {
	m, k := len(src), len(dst)

	supply := make([]float64, m)
	for i, si := range src {
		supply[i] = s[si]
	}

	demand := make([]float64, k)
	for j, tj := range dst {
		demand[j] = t[tj]
	}

	basic := make([]int, 0, m+k-1)
	i, j := 0, 0

	for {
		basic = append(basic, i*k+j)

		q := min(supply[i], demand[j])
		supply[i] -= q
		demand[j] -= q

		switch {
		case i == m-1 && j == k-1:
			return basic
		case i == m-1:
			j++
		case j == k-1:
			i++
		case supply[i] <= demand[j]:
			i++
		default:
			j++
		}
	}
}
