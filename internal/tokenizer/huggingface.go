package tokenizer

import (
	"fmt"
	"sync"

	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// HuggingFace implements Tokenizer over a tokenizer.json file, the format
// written by HuggingFace BPE trainers. Encoding is serialized because the
// upstream pipeline keeps per-call state on the tokenizer.
type HuggingFace struct {
	mu sync.Mutex
	tk *hf.Tokenizer
}

// NewHuggingFace loads a tokenizer.json file.
func NewHuggingFace(path string) (*HuggingFace, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer.json %q: %w", path, err)
	}

	return &HuggingFace{tk: tk}, nil
}

// Tokenize encodes word without special tokens and returns the token strings.
func (t *HuggingFace) Tokenize(word string) ([]string, error) {
	if word == "" {
		return nil, &Error{Word: word, Backend: KindHuggingFace, Err: ErrEmptyInput}
	}

	t.mu.Lock()
	enc, err := t.tk.EncodeSingle(word, false)
	t.mu.Unlock()

	if err != nil {
		return nil, &Error{Word: word, Backend: KindHuggingFace, Err: err}
	}

	return append([]string(nil), enc.Tokens...), nil
}
