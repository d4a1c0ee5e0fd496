package vectorize

import (
	"sort"

	"github.com/kamusis/sentiment-cli/internal/sparse"
	"github.com/kamusis/sentiment-cli/internal/tokenize"
)

// Count produces raw n-gram counts.
type Count struct {
	opts  Options
	vocab map[string]int
	terms []string
	df    []int // document frequency per column, from the fit
	nDocs int
}

// NewCount returns an unfitted count vectorizer.
func NewCount(opts Options) *Count {
	if opts.Tokenizer == nil {
		opts.Tokenizer = tokenize.Pattern
	}
	if opts.MaxN < opts.MinN {
		opts.MaxN = opts.MinN
	}
	return &Count{opts: opts}
}

func (c *Count) analyze(doc string) []string {
	toks := c.opts.Tokenizer.Tokenize(tokenize.Lower(doc))
	if c.opts.StopWords != nil {
		toks = tokenize.RemoveStopWords(toks, c.opts.StopWords)
	}
	return tokenize.NGrams(toks, c.opts.MinN, c.opts.MaxN)
}

func (c *Count) termCounts(docs []string) []map[string]int {
	out := make([]map[string]int, len(docs))
	for i, d := range docs {
		m := make(map[string]int)
		for _, g := range c.analyze(d) {
			m[g]++
		}
		out[i] = m
	}
	return out
}

// FitTransform implements Vectorizer.
func (c *Count) FitTransform(docs []string) (*sparse.Matrix, error) {
	counts := c.termCounts(docs)

	df := make(map[string]int)
	tf := make(map[string]int)
	for _, m := range counts {
		for g, n := range m {
			df[g]++
			tf[g] += n
		}
	}

	maxDocs := int(c.opts.MaxDF * float64(len(docs)))
	if c.opts.MaxDF >= 1 {
		maxDocs = len(docs)
	}
	terms := make([]string, 0, len(df))
	for g, n := range df {
		if n < c.opts.MinDF || n > maxDocs {
			continue
		}
		terms = append(terms, g)
	}

	if c.opts.MaxFeatures > 0 && len(terms) > c.opts.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if tf[terms[i]] == tf[terms[j]] {
				return terms[i] < terms[j]
			}
			return tf[terms[i]] > tf[terms[j]]
		})
		terms = terms[:c.opts.MaxFeatures]
	}
	if len(terms) == 0 {
		return nil, ErrEmptyVocabulary
	}
	sort.Strings(terms)

	c.terms = terms
	c.vocab = make(map[string]int, len(terms))
	c.df = make([]int, len(terms))
	for i, g := range terms {
		c.vocab[g] = i
		c.df[i] = df[g]
	}
	c.nDocs = len(docs)

	return c.rows(counts), nil
}

// Transform implements Vectorizer.
func (c *Count) Transform(docs []string) (*sparse.Matrix, error) {
	if c.vocab == nil {
		return nil, ErrNotFitted
	}
	return c.rows(c.termCounts(docs)), nil
}

func (c *Count) rows(counts []map[string]int) *sparse.Matrix {
	m := &sparse.Matrix{Rows: make([]sparse.Vector, len(counts)), Cols: len(c.terms)}
	for i, tc := range counts {
		row := make(map[int]float64, len(tc))
		for g, n := range tc {
			if j, ok := c.vocab[g]; ok {
				row[j] = float64(n)
			}
		}
		m.Rows[i] = sparse.FromCounts(row)
	}
	return m
}

// Vocabulary implements Vectorizer.
func (c *Count) Vocabulary() []string {
	out := make([]string, len(c.terms))
	copy(out, c.terms)
	return out
}

// Dim implements Vectorizer.
func (c *Count) Dim() int { return len(c.terms) }

// Index returns the column of term, or -1.
func (c *Count) Index(term string) int {
	if j, ok := c.vocab[term]; ok {
		return j
	}
	return -1
}
