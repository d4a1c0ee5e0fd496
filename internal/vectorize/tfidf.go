package vectorize

import (
	"math"

	"github.com/kamusis/sentiment-cli/internal/sparse"
)

// Tfidf weights n-gram counts by smoothed inverse document frequency and
// scales every row to unit L2 norm.
type Tfidf struct {
	*Count
	idf []float64
}

// NewTfidf returns an unfitted TF-IDF vectorizer.
func NewTfidf(opts Options) *Tfidf {
	return &Tfidf{Count: NewCount(opts)}
}

// FitTransform implements Vectorizer.
func (t *Tfidf) FitTransform(docs []string) (*sparse.Matrix, error) {
	counts, err := t.Count.FitTransform(docs)
	if err != nil {
		return nil, err
	}
	n := float64(t.nDocs)
	t.idf = make([]float64, len(t.df))
	for j, df := range t.df {
		t.idf[j] = math.Log((1+n)/(1+float64(df))) + 1
	}
	return t.weigh(counts), nil
}

// Transform implements Vectorizer.
func (t *Tfidf) Transform(docs []string) (*sparse.Matrix, error) {
	if t.idf == nil {
		return nil, ErrNotFitted
	}
	counts, err := t.Count.Transform(docs)
	if err != nil {
		return nil, err
	}
	return t.weigh(counts), nil
}

// IDF returns the idf weight of column j.
func (t *Tfidf) IDF(j int) float64 { return t.idf[j] }

func (t *Tfidf) weigh(m *sparse.Matrix) *sparse.Matrix {
	for i, row := range m.Rows {
		for k, j := range row.Indices {
			tf := row.Values[k]
			if t.opts.SublinearTF {
				tf = 1 + math.Log(tf)
			}
			row.Values[k] = tf * t.idf[j]
		}
		m.Rows[i] = sparse.NormalizeL2(row)
	}
	return m
}
