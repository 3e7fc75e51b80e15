// Package report renders comparison results for the tokdrift commands.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/example/go-tokdrift/internal/agreement"
	"github.com/example/go-tokdrift/internal/compare"
	"github.com/example/go-tokdrift/internal/config"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Report model
// ---------------------------------------------------------------------------

// Report is the serialized form of a sweep. Category keys use presentation
// names such as "en_t==multi_t".
type Report struct {
	Units    []Summary `json:"units" yaml:"units"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

type Summary struct {
	Pair           string              `json:"pair" yaml:"pair"`
	Baseline       string              `json:"baseline" yaml:"baseline"`
	Refined        string              `json:"refined" yaml:"refined"`
	Target         string              `json:"target" yaml:"target"`
	TargetCategory agreement.Category  `json:"target_category" yaml:"target_category"`
	Words          int                 `json:"words" yaml:"words"`
	Distance       float64             `json:"distance" yaml:"distance"`
	Changed        float64             `json:"changed" yaml:"changed"`
	Categories     []string            `json:"categories" yaml:"categories"`
	Before         []int               `json:"before" yaml:"before,flow"`
	After          []int               `json:"after" yaml:"after,flow"`
	Flow           [][]float64         `json:"flow" yaml:"flow"`
	MovedIn        map[string]float64  `json:"moved_in" yaml:"moved_in"`
	MovedOut       map[string]float64  `json:"moved_out" yaml:"moved_out"`
	MovedWords     int                 `json:"moved_words" yaml:"moved_words"`
	RemovedWords   int                 `json:"removed_words" yaml:"removed_words"`
	Moved          map[string][]string `json:"moved" yaml:"moved"`
	Removed        map[string][]string `json:"removed" yaml:"removed"`
	MovedFlagged   map[string][]string `json:"moved_flagged,omitempty" yaml:"moved_flagged,omitempty"`
}

type Failure struct {
	Pair  string `json:"pair" yaml:"pair"`
	Error string `json:"error" yaml:"error"`
}

// Summarize flattens a comparison result.
func Summarize(res *compare.Result) Summary {
	l := res.Labels

	s := Summary{
		Pair:           l.L1 + "-" + l.L2,
		Baseline:       res.Baseline,
		Refined:        res.Refined,
		Target:         l.Name(res.Target),
		TargetCategory: res.Target,
		Words:          res.Before.Len(),
		Distance:       res.Transport.Distance,
		Changed:        res.Transport.Moved(),
		Categories:     l.Names(),
		Before:         make([]int, agreement.NumCategories),
		After:          make([]int, agreement.NumCategories),
		Flow:           make([][]float64, agreement.NumCategories),
		MovedIn:        named(l, res.MovedIn),
		MovedOut:       named(l, res.Transport.OutOf(res.Target)),
		MovedWords:     res.Moved.Total(),
		RemovedWords:   res.Removed.Total(),
		Moved:          named(l, res.Moved),
		Removed:        named(l, res.Removed),
	}

	for i, c := range agreement.Categories {
		s.Before[i] = res.Before.Count(c)
		s.After[i] = res.After.Count(c)
		s.Flow[i] = make([]float64, agreement.NumCategories)

		for j := range agreement.NumCategories {
			s.Flow[i][j] = res.Transport.Flow.At(i, j)
		}
	}

	if res.MovedFlagged != nil {
		s.MovedFlagged = named(l, res.MovedFlagged)
	}

	return s
}

// named rekeys m by presentation name. l must satisfy Labels.Validate so no
// two categories share a key.
func named[V any](l agreement.Labels, m map[agreement.Category]V) map[string]V {
	out := make(map[string]V, len(m))
	for c, v := range m {
		out[l.Name(c)] = v
	}

	return out
}

// FromOutcomes builds a Report from sweep outcomes, keeping their order.
func FromOutcomes(outs []compare.Outcome) Report {
	var rep Report

	for _, o := range outs {
		if o.Err != nil {
			rep.Failures = append(rep.Failures, Failure{Pair: o.Unit, Error: o.Err.Error()})
			continue
		}

		rep.Units = append(rep.Units, Summarize(o.Result))
	}

	return rep
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// Write renders rep in format, one of the config.Format* values.
func Write(w io.Writer, format string, rep Report) error {
	switch format {
	case config.FormatJSON:
		return WriteJSON(w, rep)
	case config.FormatYAML:
		return WriteYAML(w, rep)
	case config.FormatTable, "":
		return WriteTable(w, rep)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteTable writes a human-readable table per unit.
func WriteTable(w io.Writer, rep Report) error {
	sb := &strings.Builder{}

	for i, s := range rep.Units {
		if i > 0 {
			fmt.Fprintln(sb)
		}

		writeSummary(sb, s)
	}

	if len(rep.Failures) > 0 {
		if len(rep.Units) > 0 {
			fmt.Fprintln(sb)
		}

		fmt.Fprintf(sb, "%d unit(s) failed:\n", len(rep.Failures))

		for _, f := range rep.Failures {
			fmt.Fprintf(sb, "  %s: %s\n", f.Pair, f.Error)
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func writeSummary(sb *strings.Builder, s Summary) {
	fmt.Fprintf(sb, "%s  %s -> %s  (words=%d, target=%s)\n", s.Pair, s.Baseline, s.Refined, s.Words, s.Target)
	fmt.Fprintf(sb, "EMD %.6f  changed %.6f\n\n", s.Distance, s.Changed)

	fmt.Fprintf(sb, "%-20s  %8s  %8s  %12s  %12s\n", "Category", "Before", "After", "Into target", "Out of target")
	fmt.Fprintln(sb, strings.Repeat("-", 68))

	for i, name := range s.Categories {
		fmt.Fprintf(sb, "%-20s  %8d  %8d  %12.4f  %12.4f\n", name, s.Before[i], s.After[i], s.MovedIn[name], s.MovedOut[name])
	}

	fmt.Fprintln(sb, strings.Repeat("-", 68))

	writeRecord(sb, fmt.Sprintf("Moved into %s (%d word(s))", s.Target, s.MovedWords), s.Categories, s.Moved)
	writeRecord(sb, fmt.Sprintf("Removed from %s (%d word(s))", s.Target, s.RemovedWords), s.Categories, s.Removed)

	if s.MovedFlagged != nil {
		writeRecord(sb, "Flagged words moved into "+s.Target, s.Categories, s.MovedFlagged)
	}
}

func writeRecord(sb *strings.Builder, title string, order []string, r map[string][]string) {
	fmt.Fprintf(sb, "%s:\n", title)

	n := 0

	for _, name := range order {
		ws, ok := r[name]
		if !ok || len(ws) == 0 {
			continue
		}

		fmt.Fprintf(sb, "  %s (%d): %s\n", name, len(ws), strings.Join(ws, " "))
		n++
	}

	if n == 0 {
		fmt.Fprintln(sb, "  (none)")
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return enc.Close()
}
