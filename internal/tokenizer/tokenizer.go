// Package tokenizer provides the segmentation backends compared by tokdrift.
// Every backend turns one word into an ordered sequence of token strings;
// sequences are later compared by whole-sequence equality only.
package tokenizer

import (
	"errors"
	"fmt"
)

// Tokenizer splits a single word into its token strings.
type Tokenizer interface {
	// Tokenize returns the ordered token sequence for word.
	Tokenize(word string) ([]string, error)
}

// ErrTokenization matches every failure reported by a backend.
var ErrTokenization = errors.New("tokenization failed")

// ErrEmptyInput is returned when an empty word is tokenized.
var ErrEmptyInput = errors.New("empty word")

// ErrUnknownWord is returned by backends with a closed word set.
var ErrUnknownWord = errors.New("word not in split table")

// Error describes a failed tokenization of one word. It matches
// ErrTokenization with errors.Is and unwraps to the backend cause.
type Error struct {
	Word    string
	Backend string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("tokenize %q with %s: %v", e.Word, e.Backend, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrTokenization equivalence so callers need not know the cause.
func (e *Error) Is(target error) bool { return target == ErrTokenization }

// Func adapts a plain function to the Tokenizer interface.
type Func func(word string) ([]string, error)

// Tokenize calls f(word).
func (f Func) Tokenize(word string) ([]string, error) { return f(word) }
