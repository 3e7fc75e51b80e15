package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-tokdrift/internal/agreement"
	"github.com/example/go-tokdrift/internal/report"
)

// setupExperiment writes a one-unit manifest backed by table tokenizers.
// Under the baseline "chat" is split only by the bilingual tokenizer
// (L1_EQ_L2); the refined bilingual tokenizer agrees on it (SAME).
func setupExperiment(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	files := map[string]string{
		"words.txt":    "chat\npain\n",
		"ff.csv":       "False Friend\nchat\n",
		"en.tsv":       "chat\tchat\npain\tpa in\n",
		"fr.tsv":       "chat\tchat\npain\tpain\n",
		"en_fr.tsv":    "chat\tch at\npain\tpain\n",
		"en_fr_v2.tsv": "chat\tchat\npain\tpain\n",
		"experiment.yaml": `
units:
  - l2: fr
    words: words.txt
    flagged: ff.csv
    baseline:
      l1:    {kind: table, path: en.tsv}
      l2:    {kind: table, path: fr.tsv}
      multi: {kind: table, path: en_fr.tsv}
    refined:
      name: v2
      l1:    {kind: table, path: en.tsv}
      l2:    {kind: table, path: fr.tsv}
      multi: {kind: table, path: en_fr_v2.tsv}
`,
	}

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile %s: %v", name, err)
		}
	}

	return filepath.Join(dir, "experiment.yaml")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	orig := activeCfg

	t.Cleanup(func() { activeCfg = orig })

	var out bytes.Buffer

	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestCompareCmd_JSON(t *testing.T) {
	manifest := setupExperiment(t)

	out, err := execute(t, "compare", "--paths-manifest", manifest, "--analysis-format", "json", "--log-level", "error")
	if err != nil {
		t.Fatalf("compare: %v\n%s", err, out)
	}

	var rep report.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}

	if len(rep.Units) != 1 {
		t.Fatalf("got %d units; want 1", len(rep.Units))
	}

	u := rep.Units[0]
	if u.Pair != "en-fr" || u.Refined != "v2" || u.Target != "same_splits" {
		t.Errorf("unit header = %+v", u)
	}

	if got := u.Moved["en_t==fr_t"]; len(got) != 1 || got[0] != "chat" {
		t.Errorf("Moved[en_t==fr_t] = %v", got)
	}

	if got := u.MovedFlagged["en_t==fr_t"]; len(got) != 1 || got[0] != "chat" {
		t.Errorf("MovedFlagged[en_t==fr_t] = %v", got)
	}

	// Half of the mass moves at cost 1 from en_t==fr_t to same_splits.
	if u.Distance < 0.5-1e-9 || u.Distance > 0.5+1e-9 {
		t.Errorf("Distance = %v; want 0.5", u.Distance)
	}
}

func TestCompareCmd_OutputFile(t *testing.T) {
	manifest := setupExperiment(t)
	dest := filepath.Join(t.TempDir(), "report.yaml")

	_, err := execute(t, "compare", "--paths-manifest", manifest, "--analysis-format", "yml",
		"--paths-output", dest, "--log-level", "error")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if !strings.Contains(string(data), "pair: en-fr") {
		t.Errorf("yaml report:\n%s", data)
	}
}

func TestCompareCmd_MissingManifest(t *testing.T) {
	_, err := execute(t, "compare", "--paths-manifest", filepath.Join(t.TempDir(), "none.yaml"))
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestSplitsCmd(t *testing.T) {
	manifest := setupExperiment(t)

	out, err := execute(t, "splits", "--paths-manifest", manifest, "--run", "v2", "--log-level", "error")
	if err != nil {
		t.Fatalf("splits: %v", err)
	}

	if !strings.HasPrefix(out, "word,en_tokenizer,fr_tokenizer,en_fr_tokenizer,category\n") {
		t.Errorf("unexpected header:\n%s", out)
	}

	if !strings.Contains(out, "pain,pa in,pain,pain,fr_t==multi_t") {
		t.Errorf("missing pain row:\n%s", out)
	}

	if _, err := execute(t, "splits", "--paths-manifest", manifest, "--unit", "de"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestCostCmd(t *testing.T) {
	out, err := execute(t, "cost", "--l2", "fr")
	if err != nil {
		t.Fatalf("cost: %v", err)
	}

	if !strings.Contains(out, "en_t==fr_t") || !strings.Contains(out, "2.00") {
		t.Errorf("cost table:\n%s", out)
	}
}

func TestCostCmd_RejectsL2EqualToL1(t *testing.T) {
	if _, err := execute(t, "cost", "--l2", "en"); !errors.Is(err, agreement.ErrAmbiguousLabels) {
		t.Errorf("cost --l2 en: got %v, want ErrAmbiguousLabels", err)
	}
}

func TestHomographsCmd(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		return p
	}

	out, err := execute(t, "homographs",
		"--l1-dictionary", write("en.txt", "chat,pain,dog\n"),
		"--l2-dictionary", write("fr.txt", "chat,pain,chien\n"),
		"--l1-frequencies", write("en.tsv", "1\tchat\t90\n2\tpain\t5\n"),
		"--l2-frequencies", write("fr.tsv", "1\tchat\t70\n2\tpain\t80\n"),
	)
	if err != nil {
		t.Fatalf("homographs: %v", err)
	}

	if out != "chat\n" {
		t.Errorf("homographs output = %q; want %q", out, "chat\n")
	}
}

func TestVocabStatsCmd(t *testing.T) {
	p := filepath.Join(t.TempDir(), "en.vocab")
	if err := os.WriteFile(p, []byte("a\t0\nbb\t-1.5\nccc\t-2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := execute(t, "vocab-stats", p)
	if err != nil {
		t.Fatalf("vocab-stats: %v", err)
	}

	if !strings.Contains(out, "en.vocab  size=3  avg_len=2.000") {
		t.Errorf("vocab-stats output:\n%s", out)
	}
}

func TestDoctorCmd(t *testing.T) {
	out, err := execute(t, "doctor", "--paths-manifest", setupExperiment(t))
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}

	if !strings.Contains(out, "doctor checks passed") {
		t.Errorf("doctor output:\n%s", out)
	}
}
