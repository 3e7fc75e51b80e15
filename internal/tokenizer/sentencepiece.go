package tokenizer

import (
	"errors"
	"fmt"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
)

// ErrEmptyPath is returned when a backend is opened with an empty path.
var ErrEmptyPath = errors.New("tokenizer model path must not be empty")

// SentencePiece implements Tokenizer using a pure-Go UNIGRAM SentencePiece
// model, the format written by KudoPiece vocabularisers.
type SentencePiece struct {
	proc gosp.Sentencepiece
}

// NewSentencePiece loads a SentencePiece model from the given path.
func NewSentencePiece(modelPath string) (*SentencePiece, error) {
	if modelPath == "" {
		return nil, ErrEmptyPath
	}

	proc, err := gosp.NewSentencepieceFromFile(modelPath, false)
	if err != nil {
		return nil, fmt.Errorf("load sentencepiece model %q: %w", modelPath, err)
	}

	return &SentencePiece{proc: proc}, nil
}

// Tokenize returns the piece strings for word, including the "▁" boundary
// marker SentencePiece attaches to the first piece.
func (t *SentencePiece) Tokenize(word string) ([]string, error) {
	if word == "" {
		return nil, &Error{Word: word, Backend: KindSentencePiece, Err: ErrEmptyInput}
	}

	pieces := t.proc.Tokenize(word)

	out := make([]string, len(pieces))
	for i, p := range pieces {
		out[i] = p.Text
	}

	return out, nil
}
