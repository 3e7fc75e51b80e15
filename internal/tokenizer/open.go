package tokenizer

import (
	"fmt"
	"strings"
	"sync"
)

const (
	KindSentencePiece = "sentencepiece"
	KindHuggingFace   = "huggingface"
	KindTable         = "table"
)

// NormalizeKind canonicalizes a backend name. Aliases follow the vocabulariser
// names used when the tokenizers were trained.
func NormalizeKind(raw string) (string, error) {
	kind := strings.ToLower(strings.TrimSpace(raw))
	switch kind {
	case KindSentencePiece, KindHuggingFace, KindTable:
		return kind, nil
	case "kudo", "kudopiece", "spm":
		return KindSentencePiece, nil
	case "hf", "bpe", "tokenizer.json":
		return KindHuggingFace, nil
	case "splits", "tsv":
		return KindTable, nil
	default:
		return "", fmt.Errorf(
			"invalid tokenizer kind %q (expected %s|%s|%s)",
			raw,
			KindSentencePiece,
			KindHuggingFace,
			KindTable,
		)
	}
}

// Spec identifies a tokenizer on disk.
type Spec struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

func (s Spec) String() string { return s.Kind + ":" + s.Path }

// Opener opens a tokenizer from its Spec.
type Opener func(Spec) (Tokenizer, error)

// Open loads the backend named by spec.Kind.
func Open(spec Spec) (Tokenizer, error) {
	kind, err := NormalizeKind(spec.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindSentencePiece:
		return NewSentencePiece(spec.Path)
	case KindHuggingFace:
		return NewHuggingFace(spec.Path)
	default:
		return NewTableFromFile(spec.Path)
	}
}

// Cache opens each distinct Spec once. The l1 tokenizer of an algorithm is
// shared by every language pair, so a sweep would otherwise reload it.
type Cache struct {
	open Opener

	mu   sync.Mutex
	toks map[Spec]Tokenizer
}

// NewCache returns a Cache delegating to open, or to Open when nil.
func NewCache(open Opener) *Cache {
	if open == nil {
		open = Open
	}

	return &Cache{open: open, toks: make(map[Spec]Tokenizer)}
}

// Get returns the tokenizer for spec, opening it on first use.
func (c *Cache) Get(spec Spec) (Tokenizer, error) {
	kind, err := NormalizeKind(spec.Kind)
	if err != nil {
		return nil, err
	}

	key := Spec{Kind: kind, Path: spec.Path}

	c.mu.Lock()
	defer c.mu.Unlock()

	if tok, ok := c.toks[key]; ok {
		return tok, nil
	}

	tok, err := c.open(key)
	if err != nil {
		return nil, fmt.Errorf("open tokenizer %s: %w", key, err)
	}

	c.toks[key] = tok

	return tok, nil
}

// Len returns the number of opened tokenizers.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.toks)
}
