package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/go-tokdrift/internal/agreement"
	"github.com/example/go-tokdrift/internal/transport"
)

// WriteCosts writes the ground-cost matrix with presentation names.
func WriteCosts(w io.Writer, l agreement.Labels, m transport.CostMatrix) error {
	names := l.Names()
	width := 0

	for _, n := range names {
		width = max(width, len(n))
	}

	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-*s", width, "")

	for _, n := range names {
		fmt.Fprintf(sb, "  %*s", width, n)
	}

	fmt.Fprintln(sb)

	for i, a := range agreement.Categories {
		fmt.Fprintf(sb, "%-*s", width, names[i])

		for _, b := range agreement.Categories {
			fmt.Fprintf(sb, "  %*.2f", width, m.Cost(a, b))
		}

		fmt.Fprintln(sb)
	}

	_, err := io.WriteString(w, sb.String())

	return err
}
