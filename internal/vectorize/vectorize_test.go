package vectorize

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/sentiment-cli/internal/sparse"
	"github.com/kamusis/sentiment-cli/internal/tokenize"
)

// plural strips a trailing "s"; enough lemmatization for these tests.
type plural struct{}

func (plural) Lemmatize(tok string) string {
	if len(tok) > 3 && strings.HasSuffix(tok, "s") {
		return tok[:len(tok)-1]
	}
	return tok
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("bow")
	require.NoError(t, err)
	assert.Equal(t, BagOfWords, k)

	k, err = ParseKind("TFIDF")
	require.NoError(t, err)
	assert.Equal(t, TFIDF, k)
	assert.Equal(t, "tfidf", k.String())

	_, err = ParseKind("word2vec")
	assert.Error(t, err)
}

func TestBagOfWords_SharedAndDistinctTerms(t *testing.T) {
	v, err := New(BagOfWords, nil)
	require.NoError(t, err)

	X, err := v.FitTransform([]string{"good movie", "bad movie"})
	require.NoError(t, err)

	rows, cols := X.Shape()
	require.Equal(t, 2, rows)
	assert.Equal(t, []string{"bad", "bad movie", "good", "good movie", "movie"}, v.Vocabulary())
	assert.Equal(t, 5, cols)

	c := v.(*Count)
	movie, good, bad := c.Index("movie"), c.Index("good"), c.Index("bad")
	assert.NotZero(t, X.Rows[0].At(movie))
	assert.NotZero(t, X.Rows[1].At(movie))
	assert.NotZero(t, X.Rows[0].At(good))
	assert.Zero(t, X.Rows[1].At(good))
	assert.NotZero(t, X.Rows[1].At(bad))
	assert.Zero(t, X.Rows[0].At(bad))
}

func TestBagOfWords_StopWordsAndCounts(t *testing.T) {
	v, err := New(BagOfWords, nil)
	require.NoError(t, err)
	X, err := v.FitTransform([]string{"The plot of the film, the film!"})
	require.NoError(t, err)

	c := v.(*Count)
	assert.Equal(t, -1, c.Index("the"))
	assert.Equal(t, 2.0, X.Rows[0].At(c.Index("film")))
	// Stop words are removed before n-grams are formed.
	assert.NotEqual(t, -1, c.Index("plot film film"))
}

func TestTransform_KeepsVocabulary(t *testing.T) {
	v, err := New(BagOfWords, nil)
	require.NoError(t, err)
	_, err = v.FitTransform([]string{"good movie", "bad movie"})
	require.NoError(t, err)
	before := v.Vocabulary()

	dev, err := v.Transform([]string{"great movie", "unseen words only"})
	require.NoError(t, err)

	assert.Equal(t, before, v.Vocabulary())
	_, cols := dev.Shape()
	assert.Equal(t, v.Dim(), cols)
	assert.Equal(t, 1, dev.Rows[0].NNZ())
	assert.Equal(t, 0, dev.Rows[1].NNZ())
}

func TestTransform_NotFitted(t *testing.T) {
	v, err := New(BagOfWords, nil)
	require.NoError(t, err)
	_, err = v.Transform([]string{"x"})
	assert.ErrorIs(t, err, ErrNotFitted)

	tok, err := tokenize.NewLemmaTokenizer(plural{}, 0)
	require.NoError(t, err)
	tv, err := New(TFIDF, tok)
	require.NoError(t, err)
	_, err = tv.Transform([]string{"x"})
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestFit_EmptyVocabulary(t *testing.T) {
	v, err := New(BagOfWords, nil)
	require.NoError(t, err)
	_, err = v.FitTransform([]string{"the a", "of it"})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestRefit_DiscardsPreviousVocabulary(t *testing.T) {
	v, err := New(BagOfWords, nil)
	require.NoError(t, err)
	_, err = v.FitTransform([]string{"good movie"})
	require.NoError(t, err)
	_, err = v.FitTransform([]string{"bad show"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bad", "bad show", "show"}, v.Vocabulary())
}

func TestMaxFeatures_KeepsMostFrequent(t *testing.T) {
	opts := DefaultOptions(tokenize.Pattern)
	opts.MaxN = 1
	opts.StopWords = nil
	opts.MaxFeatures = 2
	c := NewCount(opts)
	_, err := c.FitTransform([]string{"xx yy yy", "yy zz"})
	require.NoError(t, err)
	assert.Equal(t, []string{"xx", "yy"}, c.Vocabulary())
}

func TestTFIDF_WeightsAndNorm(t *testing.T) {
	_, err := New(TFIDF, nil)
	require.Error(t, err)

	tok, err := tokenize.NewLemmaTokenizer(plural{}, 0)
	require.NoError(t, err)
	v, err := New(TFIDF, tok)
	require.NoError(t, err)

	X, err := v.FitTransform([]string{"good movies", "bad movie"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bad", "bad movie", "good", "good movie", "movie"}, v.Vocabulary())

	tv := v.(*Tfidf)
	movie, good := tv.Index("movie"), tv.Index("good")
	assert.InDelta(t, 1.0, tv.IDF(movie), 1e-12)
	assert.InDelta(t, math.Log(3.0/2.0)+1, tv.IDF(good), 1e-12)

	for _, row := range X.Rows {
		assertUnitNorm(t, row)
	}
	assert.Greater(t, X.Rows[0].At(good), X.Rows[0].At(movie))

	dev, err := v.Transform([]string{"good films", "the movies"})
	require.NoError(t, err)
	assert.Equal(t, 5, v.Dim())
	assert.Equal(t, 1, dev.Rows[0].NNZ())
	assert.InDelta(t, 1.0, dev.Rows[1].At(movie), 1e-12)
}

func assertUnitNorm(t *testing.T, v sparse.Vector) {
	t.Helper()
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-12)
}
