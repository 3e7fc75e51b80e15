package compare

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/go-tokdrift/internal/transport"
	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one unit of a sweep. Exactly one of Result and
// Err is set.
type Outcome struct {
	Unit   string
	Result *Result
	Err    error
}

// Sweep compares units concurrently, at most workers at a time (unbounded
// when workers <= 0). A failing unit does not stop the others. Outcomes are
// returned in input order; units not started before ctx is cancelled carry
// the context error.
func Sweep(ctx context.Context, units []Unit, costs transport.CostMatrix, workers int, opts ...transport.Option) []Outcome {
	out := make([]Outcome, len(units))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, u := range units {
		out[i].Unit = u.Name()

		if err := gctx.Err(); err != nil {
			out[i].Err = err
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}

			start := time.Now()
			slog.Debug("comparing unit", "unit", u.Name(), "words", len(u.Words),
				"baseline", u.Baseline.Name, "refined", u.Refined.Name)

			res, err := Compare(u, costs, opts...)
			if err != nil {
				slog.Warn("unit failed", "unit", u.Name(), "error", err)
				out[i].Err = err

				return nil
			}

			slog.Info("unit compared", "unit", u.Name(),
				"distance", res.Transport.Distance,
				"elapsed", time.Since(start).Round(time.Millisecond))
			out[i].Result = res

			return nil
		})
	}

	_ = g.Wait()

	return out
}
