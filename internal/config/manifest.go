package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/go-tokdrift/internal/tokenizer"
	"github.com/example/go-tokdrift/internal/words"
	"gopkg.in/yaml.v3"
)

// Manifest describes an experiment: one comparison unit per language pair,
// each contrasting a baseline and a refined tokenizer run.
type Manifest struct {
	L1     string     `yaml:"l1"`
	Target string     `yaml:"target"`
	Units  []UnitSpec `yaml:"units"`
}

// UnitSpec is one language pair. Exactly one of Words and Homographs selects
// the word list.
type UnitSpec struct {
	L2            string                  `yaml:"l2"`
	Words         string                  `yaml:"words"`
	Homographs    *words.HomographSources `yaml:"homographs"`
	Flagged       string                  `yaml:"flagged"`
	FlaggedColumn string                  `yaml:"flagged_column"`
	Baseline      RunSpec                 `yaml:"baseline"`
	Refined       RunSpec                 `yaml:"refined"`
}

// RunSpec names the three tokenizers of one run.
type RunSpec struct {
	Name  string         `yaml:"name"`
	L1    tokenizer.Spec `yaml:"l1"`
	L2    tokenizer.Spec `yaml:"l2"`
	Multi tokenizer.Spec `yaml:"multi"`
}

// LoadManifest reads a yaml manifest. Relative paths inside it are resolved
// against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve manifest dir: %w", err)
	}

	m.resolve(base)

	return &m, nil
}

func (m *Manifest) resolve(base string) {
	for i := range m.Units {
		u := &m.Units[i]
		if u.Baseline.Name == "" {
			u.Baseline.Name = "baseline"
		}

		if u.Refined.Name == "" {
			u.Refined.Name = "refined"
		}

		u.Words = resolvePath(base, u.Words)
		u.Flagged = resolvePath(base, u.Flagged)

		if h := u.Homographs; h != nil {
			h.L1Dictionary = resolvePath(base, h.L1Dictionary)
			h.L2Dictionary = resolvePath(base, h.L2Dictionary)
			h.L1Frequencies = resolvePath(base, h.L1Frequencies)
			h.L2Frequencies = resolvePath(base, h.L2Frequencies)
		}

		for _, r := range []*RunSpec{&u.Baseline, &u.Refined} {
			r.L1.Path = resolvePath(base, r.L1.Path)
			r.L2.Path = resolvePath(base, r.L2.Path)
			r.Multi.Path = resolvePath(base, r.Multi.Path)
		}
	}
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(base, p)
}

// Validate reports every problem in the manifest at once.
func (m *Manifest) Validate() error {
	var errs []error

	if len(m.Units) == 0 {
		errs = append(errs, errors.New("manifest has no units"))
	}

	seen := make(map[string]bool, len(m.Units))

	for i, u := range m.Units {
		where := fmt.Sprintf("units[%d]", i)
		if u.L2 == "" {
			errs = append(errs, fmt.Errorf("%s: l2 is required", where))
		} else {
			where = fmt.Sprintf("units[%d] (%s)", i, u.L2)
		}

		if m.L1 != "" && u.L2 == m.L1 {
			errs = append(errs, fmt.Errorf("%s: l2 must differ from l1 %q", where, m.L1))
		}

		if seen[u.L2] && u.L2 != "" {
			errs = append(errs, fmt.Errorf("%s: duplicate l2", where))
		}

		seen[u.L2] = true

		switch {
		case u.Words == "" && u.Homographs == nil:
			errs = append(errs, fmt.Errorf("%s: one of words or homographs is required", where))
		case u.Words != "" && u.Homographs != nil:
			errs = append(errs, fmt.Errorf("%s: words and homographs are mutually exclusive", where))
		}

		errs = append(errs, u.Baseline.validate(where+".baseline")...)
		errs = append(errs, u.Refined.validate(where+".refined")...)
	}

	return errors.Join(errs...)
}

func (r RunSpec) validate(where string) []error {
	var errs []error

	for _, f := range []struct {
		name string
		spec tokenizer.Spec
	}{{"l1", r.L1}, {"l2", r.L2}, {"multi", r.Multi}} {
		if _, err := tokenizer.NormalizeKind(f.spec.Kind); err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", where, f.name, err))
		}

		if f.spec.Path == "" {
			errs = append(errs, fmt.Errorf("%s.%s: path is required", where, f.name))
		}
	}

	return errs
}

// Files lists every file the manifest references, for existence checks.
func (m *Manifest) Files() []string {
	var out []string

	add := func(p string) {
		if p != "" {
			out = append(out, p)
		}
	}

	for _, u := range m.Units {
		add(u.Words)
		add(u.Flagged)

		if h := u.Homographs; h != nil {
			add(h.L1Dictionary)
			add(h.L2Dictionary)
			add(h.L1Frequencies)
			add(h.L2Frequencies)
		}

		for _, r := range []RunSpec{u.Baseline, u.Refined} {
			add(r.L1.Path)
			add(r.L2.Path)
			add(r.Multi.Path)
		}
	}

	return out
}
