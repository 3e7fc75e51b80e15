package compare

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/go-tokdrift/internal/agreement"
	"github.com/example/go-tokdrift/internal/config"
	"github.com/example/go-tokdrift/internal/tokenizer"
	"github.com/example/go-tokdrift/internal/words"
)

// FromManifest turns m into comparison units. Every distinct tokenizer is
// opened once through open (tokenizer.Open when nil).
func FromManifest(m *config.Manifest, open tokenizer.Opener) ([]Unit, error) {
	if m.L1 == "" {
		return nil, errors.New("manifest: l1 label is required")
	}

	if len(m.Units) == 0 {
		return nil, errors.New("manifest: no units")
	}

	cache := tokenizer.NewCache(open)
	units := make([]Unit, 0, len(m.Units))

	for _, spec := range m.Units {
		u := Unit{
			Labels: agreement.Labels{L1: m.L1, L2: spec.L2},
			Target: agreement.Same,
		}

		if err := u.Labels.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", u.Name(), err)
		}

		// Either a symbolic name or this unit's presentation name.
		if m.Target != "" {
			c, err := u.Labels.Parse(m.Target)
			if err != nil {
				return nil, fmt.Errorf("%s: target: %w", u.Name(), err)
			}

			u.Target = c
		}

		var err error

		if spec.Homographs != nil {
			u.Words, err = words.LoadHomographs(*spec.Homographs)
		} else {
			u.Words, err = words.LoadList(spec.Words)
		}

		if err != nil {
			return nil, fmt.Errorf("%s: words: %w", u.Name(), err)
		}

		if spec.Flagged != "" {
			u.Flagged, err = words.LoadFlagged(spec.Flagged, spec.FlaggedColumn)
			if err != nil {
				return nil, fmt.Errorf("%s: flagged words: %w", u.Name(), err)
			}
		}

		if u.Baseline, err = openRun(cache, spec.Baseline); err != nil {
			return nil, fmt.Errorf("%s: %w", u.Name(), err)
		}

		if u.Refined, err = openRun(cache, spec.Refined); err != nil {
			return nil, fmt.Errorf("%s: %w", u.Name(), err)
		}

		slog.Debug("unit loaded", "unit", u.Name(), "words", len(u.Words), "flagged", len(u.Flagged))
		units = append(units, u)
	}

	slog.Debug("tokenizers opened", "count", cache.Len())

	return units, nil
}

func openRun(cache *tokenizer.Cache, spec config.RunSpec) (Run, error) {
	run := Run{Name: spec.Name}

	var err error

	if run.Tokenizers.L1, err = cache.Get(spec.L1); err != nil {
		return Run{}, fmt.Errorf("run %s: %w", spec.Name, err)
	}

	if run.Tokenizers.L2, err = cache.Get(spec.L2); err != nil {
		return Run{}, fmt.Errorf("run %s: %w", spec.Name, err)
	}

	if run.Tokenizers.Multi, err = cache.Get(spec.Multi); err != nil {
		return Run{}, fmt.Errorf("run %s: %w", spec.Name, err)
	}

	return run, nil
}
