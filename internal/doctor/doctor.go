// Package doctor provides preflight checks for a tokdrift experiment.
package doctor

import (
	"fmt"
	"io"
	"os"

	"github.com/example/go-tokdrift/internal/config"
	"github.com/example/go-tokdrift/internal/tokenizer"
	"github.com/example/go-tokdrift/internal/transport"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// Probe is tokenized by every tokenizer to catch models that load but fail.
const Probe = "tokdrift"

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// ManifestPath is the experiment manifest to check.
	ManifestPath string
	// Open loads tokenizers; nil means tokenizer.Open.
	Open tokenizer.Opener
	// SkipTokenizers checks that tokenizer files exist without loading them.
	SkipTokenizers bool
	// Costs are ground-cost overrides from the configuration.
	Costs map[string]float64
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- ground costs -----------------------------------------------------
	if _, err := transport.DefaultCosts().WithOverrides(cfg.Costs); err != nil {
		res.fail(fmt.Sprintf("ground costs: %v", err))
		fmt.Fprintf(w, "%s ground costs: %v\n", FailMark, err)
	} else {
		fmt.Fprintf(w, "%s ground costs: %d override(s)\n", PassMark, len(cfg.Costs))
	}

	// ---- manifest ---------------------------------------------------------
	m, err := config.LoadManifest(cfg.ManifestPath)
	if err != nil {
		res.fail(fmt.Sprintf("manifest: %v", err))
		fmt.Fprintf(w, "%s manifest %s: %v\n", FailMark, cfg.ManifestPath, err)

		return res
	}

	if err := m.Validate(); err != nil {
		res.fail(fmt.Sprintf("manifest: %v", err))
		fmt.Fprintf(w, "%s manifest %s: invalid\n%v\n", FailMark, cfg.ManifestPath, err)
	} else {
		fmt.Fprintf(w, "%s manifest: %s (%d units)\n", PassMark, cfg.ManifestPath, len(m.Units))
	}

	// ---- input files ------------------------------------------------------
	for _, path := range m.Files() {
		if _, err := os.Stat(path); err != nil {
			res.fail(fmt.Sprintf("input file %q: %v", path, err))
			fmt.Fprintf(w, "%s input file %s: not found\n", FailMark, path)
		} else {
			fmt.Fprintf(w, "%s input file: %s\n", PassMark, path)
		}
	}

	if cfg.SkipTokenizers {
		fmt.Fprintf(w, "%s tokenizers: skipped\n", PassMark)
		return res
	}

	// ---- tokenizers -------------------------------------------------------
	cache := tokenizer.NewCache(cfg.Open)
	seen := make(map[tokenizer.Spec]bool)

	for _, spec := range tokenizerSpecs(m) {
		if seen[spec] {
			continue
		}

		seen[spec] = true

		tok, err := cache.Get(spec)
		if err != nil {
			res.fail(fmt.Sprintf("tokenizer %s: %v", spec, err))
			fmt.Fprintf(w, "%s tokenizer %s: %v\n", FailMark, spec, err)

			continue
		}

		if _, isTable := tok.(*tokenizer.Table); isTable {
			fmt.Fprintf(w, "%s tokenizer: %s\n", PassMark, spec)
			continue
		}

		if _, err := tok.Tokenize(Probe); err != nil {
			res.fail(fmt.Sprintf("tokenizer %s: %v", spec, err))
			fmt.Fprintf(w, "%s tokenizer %s: probe failed (%v)\n", FailMark, spec, err)
		} else {
			fmt.Fprintf(w, "%s tokenizer: %s\n", PassMark, spec)
		}
	}

	return res
}

func tokenizerSpecs(m *config.Manifest) []tokenizer.Spec {
	var out []tokenizer.Spec

	for _, u := range m.Units {
		for _, r := range []config.RunSpec{u.Baseline, u.Refined} {
			out = append(out, r.L1, r.L2, r.Multi)
		}
	}

	return out
}
