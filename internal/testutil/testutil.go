// Package testutil provides shared fakes and skip helpers for tests.
//
// Each Require helper calls tb.Skipf with a clear human-readable reason when
// the named prerequisite is absent, so integration tests remain runnable in
// partial environments without failing noisily.
//
// Typical usage:
//
//	func TestRealModel(t *testing.T) {
//	    path := testutil.RequireModel(t, "TOKDRIFT_SPM_MODEL")
//	    ...
//	}
package testutil

import (
	"os"
	"testing"

	"github.com/example/go-tokdrift/internal/tokenizer"
)

// RequireModel skips the test unless env names an existing model file and
// returns that path.
func RequireModel(tb testing.TB, env string) string {
	tb.Helper()

	p := os.Getenv(env)
	if p == "" {
		tb.Skipf("%s not set; skipping test that needs a real tokenizer model", env)
		return ""
	}

	// #nosec G703 -- Integration tests intentionally accept explicit env-provided local model paths.
	if _, err := os.Stat(p); err != nil {
		tb.Skipf("tokenizer model not found at %s=%q", env, p)
		return ""
	}

	return p
}

// Tokenizer is a map-backed tokenizer. Words missing from Splits are split
// into single runes; words in Fail return the mapped error.
type Tokenizer struct {
	Splits map[string][]string
	Fail   map[string]error
}

var _ tokenizer.Tokenizer = Tokenizer{}

// Tokenize implements tokenizer.Tokenizer.
func (t Tokenizer) Tokenize(word string) ([]string, error) {
	if err, ok := t.Fail[word]; ok {
		return nil, &tokenizer.Error{Word: word, Backend: "testutil", Err: err}
	}

	if word == "" {
		return nil, &tokenizer.Error{Word: word, Backend: "testutil", Err: tokenizer.ErrEmptyInput}
	}

	if toks, ok := t.Splits[word]; ok {
		return append([]string(nil), toks...), nil
	}

	return Chars(word), nil
}

// Chars splits word into one token per rune.
func Chars(word string) []string {
	out := make([]string, 0, len(word))
	for _, r := range word {
		out = append(out, string(r))
	}

	return out
}

// Whole is a tokenizer that never splits a word.
var Whole = tokenizer.Func(func(word string) ([]string, error) {
	if word == "" {
		return nil, &tokenizer.Error{Word: word, Backend: "testutil", Err: tokenizer.ErrEmptyInput}
	}

	return []string{word}, nil
})
