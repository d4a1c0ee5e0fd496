// Package vectorize turns documents into fixed-width sparse feature rows.
//
// A vectorizer is fit once on the training documents; Transform then maps
// any other split onto the same columns and never changes the vocabulary.
package vectorize

import (
	"errors"
	"fmt"

	"github.com/kamusis/sentiment-cli/internal/sparse"
	"github.com/kamusis/sentiment-cli/internal/tokenize"
)

var (
	// ErrNotFitted is returned by Transform before FitTransform.
	ErrNotFitted = errors.New("vectorizer is not fitted")
	// ErrEmptyVocabulary is returned when fitting yields no terms.
	ErrEmptyVocabulary = errors.New("empty vocabulary; documents may contain only stop words")
)

// MaxFeaturesTFIDF caps the TF-IDF vocabulary.
const MaxFeaturesTFIDF = 200000

// Vectorizer converts documents to feature rows.
type Vectorizer interface {
	// FitTransform builds the vocabulary from docs and returns their rows.
	// Calling it again discards the previous vocabulary.
	FitTransform(docs []string) (*sparse.Matrix, error)
	// Transform maps docs onto the fitted columns. Unknown terms are dropped.
	Transform(docs []string) (*sparse.Matrix, error)
	// Vocabulary returns the feature names in column order.
	Vocabulary() []string
	// Dim returns the number of columns, 0 before fitting.
	Dim() int
}

// Options configures term extraction and vocabulary pruning.
type Options struct {
	Tokenizer   tokenize.Tokenizer
	StopWords   map[string]struct{}
	MinN, MaxN  int     // n-gram range
	MinDF       int     // minimum document count
	MaxDF       float64 // maximum document fraction
	MaxFeatures int     // 0 keeps every term
	SublinearTF bool    // TF-IDF only
}

// DefaultOptions returns 1–3-grams, the fixed stop words, no pruning.
func DefaultOptions(tok tokenize.Tokenizer) Options {
	return Options{
		Tokenizer: tok,
		StopWords: tokenize.StopWords,
		MinN:      1,
		MaxN:      3,
		MinDF:     1,
		MaxDF:     1.0,
	}
}

// New returns the vectorizer for kind. Bag of words uses the default token
// pattern; TF-IDF requires tok, normally a *tokenize.LemmaTokenizer.
func New(kind Kind, tok tokenize.Tokenizer) (Vectorizer, error) {
	switch kind {
	case BagOfWords:
		return NewCount(DefaultOptions(tokenize.Pattern)), nil
	case TFIDF:
		if tok == nil {
			return nil, fmt.Errorf("tfidf vectorizer requires a lemma tokenizer")
		}
		opts := DefaultOptions(tok)
		opts.MaxFeatures = MaxFeaturesTFIDF
		return NewTfidf(opts), nil
	default:
		return nil, fmt.Errorf("unsupported vectorizer kind %v", kind)
	}
}
