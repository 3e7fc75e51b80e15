package words

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}

	return p
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  Chat ":         "chat",
		"\u00c9T\u00c9":   "\u00e9t\u00e9",
		"e\u0301te\u0301": "\u00e9t\u00e9",
		"":                "",
	}

	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReadList(t *testing.T) {
	got, err := ReadList(strings.NewReader("# homographs\nchat\n\n  pain  \n#skip\nmain\n"))
	if err != nil {
		t.Fatalf("ReadList: %v", err)
	}

	if diff := cmp.Diff([]string{"chat", "pain", "main"}, got); diff != "" {
		t.Errorf("ReadList mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadList_Missing(t *testing.T) {
	if _, err := LoadList(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadFlagged(t *testing.T) {
	in := "\ufeffFalse Friend,Meaning EN,Meaning FR\nchat,talk,cat\ncoin,money,corner\nchat,talk,cat\n,,\n"

	got, err := ReadFlagged(strings.NewReader(in), "")
	if err != nil {
		t.Fatalf("ReadFlagged: %v", err)
	}

	if diff := cmp.Diff([]string{"chat", "coin"}, got); diff != "" {
		t.Errorf("ReadFlagged mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFlagged_CustomAndMissingColumn(t *testing.T) {
	in := "word,kind\nlit,ff\n"

	got, err := ReadFlagged(strings.NewReader(in), "WORD")
	if err != nil || len(got) != 1 || got[0] != "lit" {
		t.Errorf("ReadFlagged(WORD) = %v, %v", got, err)
	}

	_, err = ReadFlagged(strings.NewReader(in), "")
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestReadFrequencies(t *testing.T) {
	in := "1\tChat\t40\n2\tchat\t15\n3\tpain\t7\r\n\n"

	got, err := ReadFrequencies(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadFrequencies: %v", err)
	}

	if diff := cmp.Diff(map[string]int{"chat": 55, "pain": 7}, got); diff != "" {
		t.Errorf("ReadFrequencies mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadFrequencies(strings.NewReader("1\tchat\n")); err == nil {
		t.Error("expected error for short line")
	}

	if _, err := ReadFrequencies(strings.NewReader("1\tchat\tmany\n")); err == nil {
		t.Error("expected error for bad count")
	}
}

func TestFilterByFrequency(t *testing.T) {
	got := FilterByFrequency(map[string]int{"a": 50, "b": 49, "c": 100}, 50)

	if _, ok := got["a"]; !ok || len(got) != 2 {
		t.Errorf("FilterByFrequency = %v", got)
	}
}

func TestReadDictionary(t *testing.T) {
	got, err := ReadDictionary(strings.NewReader("Chat, pain,main\nignored,line\n"))
	if err != nil {
		t.Fatalf("ReadDictionary: %v", err)
	}

	want := map[string]struct{}{"chat": {}, "pain": {}, "main": {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadDictionary mismatch (-want +got):\n%s", diff)
	}
}

func TestHomographs(t *testing.T) {
	set := func(ws ...string) map[string]struct{} {
		m := map[string]struct{}{}
		for _, w := range ws {
			m[w] = struct{}{}
		}

		return m
	}

	got := Homographs(set("chat", "pain", "main", "dog"), set("pain", "chat", "chien"), set("chat", "pain", "x"))
	if diff := cmp.Diff([]string{"chat", "pain"}, got); diff != "" {
		t.Errorf("Homographs mismatch (-want +got):\n%s", diff)
	}

	if Homographs() != nil {
		t.Error("Homographs() should be nil")
	}
}

func TestLoadHomographs(t *testing.T) {
	src := HomographSources{
		L1Dictionary:  writeFile(t, "en.txt", "chat,pain,main,coin\n"),
		L2Dictionary:  writeFile(t, "fr.txt", "chat,pain,main,lit\n"),
		L1Frequencies: writeFile(t, "en.tsv", "1\tchat\t60\n2\tpain\t70\n3\tmain\t10\n"),
		L2Frequencies: writeFile(t, "fr.tsv", "1\tchat\t80\n2\tpain\t20\n3\tmain\t90\n"),
		Threshold:     20,
	}

	got, err := LoadHomographs(src)
	if err != nil {
		t.Fatalf("LoadHomographs: %v", err)
	}

	if diff := cmp.Diff([]string{"chat", "pain"}, got); diff != "" {
		t.Errorf("LoadHomographs mismatch (-want +got):\n%s", diff)
	}

	src.Threshold = 0
	got, err = LoadHomographs(src)
	if err != nil || len(got) != 1 || got[0] != "chat" {
		t.Errorf("default threshold: got %v, %v; want [chat]", got, err)
	}

	src.Threshold = 1000
	if _, err := LoadHomographs(src); err == nil {
		t.Error("expected error when threshold leaves no homographs")
	}
}
