package tokenize

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of distinct tokens whose lemma is kept.
const DefaultCacheSize = 1 << 16

// LemmaTokenizer word-tokenizes a document and lemmatizes every token.
type LemmaTokenizer struct {
	lem   Lemmatizer
	cache *lru.Cache[string, string]
}

// NewLemmaTokenizer wraps lem with an LRU cache of cacheSize entries.
func NewLemmaTokenizer(lem Lemmatizer, cacheSize int) (*LemmaTokenizer, error) {
	if lem == nil {
		return nil, fmt.Errorf("lemmatizer is required")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	c, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("cannot create lemma cache: %w", err)
	}
	return &LemmaTokenizer{lem: lem, cache: c}, nil
}

// Tokenize implements Tokenizer.
func (t *LemmaTokenizer) Tokenize(doc string) []string {
	toks := Word.Tokenize(doc)
	for i, tok := range toks {
		if l, ok := t.cache.Get(tok); ok {
			toks[i] = l
			continue
		}
		l := t.lem.Lemmatize(tok)
		t.cache.Add(tok, l)
		toks[i] = l
	}
	return toks
}
