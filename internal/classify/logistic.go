// Package classify trains and evaluates the linear sentiment classifier.
//
// The model is regularized logistic regression: a single weight row for two
// classes, a softmax over k rows otherwise. Minimization is done by gonum's
// optimize package.
package classify

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/kamusis/sentiment-cli/internal/sparse"
)

// ErrSingleClass is returned when the training codes hold fewer than two
// distinct classes.
var ErrSingleClass = errors.New("training data needs samples of at least 2 classes")

// Classifier predicts label codes for feature rows.
type Classifier interface {
	Predict(X *sparse.Matrix) ([]int, error)
}

// LogisticRegression is a fitted linear model.
type LogisticRegression struct {
	Classes int         // k
	Dim     int         // feature width
	W       [][]float64 // 1 row when k == 2, k rows otherwise
	B       []float64   // intercept per row

	Iterations int
	Status     string
}

// Train fits a logistic regression on X and codes y.
func Train(X *sparse.Matrix, y []int, opts Options, logger *zap.Logger) (*LogisticRegression, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	rows, dim := X.Shape()
	if rows != len(y) {
		return nil, fmt.Errorf("row count %d does not match label count %d", rows, len(y))
	}
	if err := checkColumns(X); err != nil {
		return nil, err
	}
	k, err := countClasses(y)
	if err != nil {
		return nil, err
	}

	obj := &objective{X: X, y: y, k: k, dim: dim, c: opts.C, l2: opts.Penalty == L2}
	problem := optimize.Problem{
		Func: func(x []float64) float64 { return obj.eval(x, nil) },
		Grad: func(grad, x []float64) { obj.eval(x, grad) },
	}
	settings := &optimize.Settings{
		MajorIterations:   opts.MaxIter,
		GradientThreshold: opts.Tol,
	}

	var method optimize.Method
	switch opts.Optimizer {
	case LBFGS:
		method = &optimize.LBFGS{}
	case ConjugateGradient:
		method = &optimize.CG{}
	case GradientDescent:
		method = &optimize.GradientDescent{}
	default:
		return nil, fmt.Errorf("unsupported optimizer %v", opts.Optimizer)
	}

	logger.Debug("training logistic regression",
		zap.Int("rows", rows),
		zap.Int("dim", dim),
		zap.Int("classes", k),
		zap.Float64("c", opts.C),
		zap.Stringer("penalty", opts.Penalty),
		zap.Stringer("optimizer", opts.Optimizer))

	x0 := make([]float64, obj.nRows()*(dim+1))
	result, err := optimize.Minimize(problem, x0, settings, method)
	if result == nil {
		return nil, fmt.Errorf("optimizer failed: %w", err)
	}
	if err != nil {
		// Line searches commonly give up a step short of the tolerance.
		logger.Warn("optimizer stopped before convergence",
			zap.Error(err),
			zap.Stringer("status", result.Status))
	}

	m := &LogisticRegression{
		Classes:    k,
		Dim:        dim,
		Iterations: result.Stats.MajorIterations,
		Status:     result.Status.String(),
	}
	stride := dim + 1
	for r := 0; r < obj.nRows(); r++ {
		w := make([]float64, dim)
		copy(w, result.X[r*stride:r*stride+dim])
		m.W = append(m.W, w)
		m.B = append(m.B, result.X[r*stride+dim])
	}
	logger.Debug("training finished",
		zap.Int("iterations", m.Iterations),
		zap.String("status", m.Status),
		zap.Float64("objective", result.F))
	return m, nil
}

// checkColumns reports a row holding a column index outside [0, X.Cols).
func checkColumns(X *sparse.Matrix) error {
	for i, row := range X.Rows {
		for _, j := range row.Indices {
			if j < 0 || j >= X.Cols {
				return fmt.Errorf("%w: row %d has column %d, matrix has %d", sparse.ErrDimMismatch, i, j, X.Cols)
			}
		}
	}
	return nil
}

func countClasses(y []int) (int, error) {
	seen := make(map[int]struct{})
	k := 0
	for _, c := range y {
		if c < 0 {
			return 0, fmt.Errorf("negative label code %d", c)
		}
		seen[c] = struct{}{}
		if c+1 > k {
			k = c + 1
		}
	}
	if len(seen) < 2 {
		return 0, ErrSingleClass
	}
	return k, nil
}

// Predict implements Classifier.
func (m *LogisticRegression) Predict(X *sparse.Matrix) ([]int, error) {
	if X.Cols != m.Dim {
		return nil, fmt.Errorf("%w: model has %d features, input has %d", sparse.ErrDimMismatch, m.Dim, X.Cols)
	}
	out := make([]int, len(X.Rows))
	z := make([]float64, len(m.W))
	for i, row := range X.Rows {
		for r, w := range m.W {
			d, err := row.Dot(w)
			if err != nil {
				return nil, err
			}
			z[r] = d + m.B[r]
		}
		if m.Classes == 2 {
			if z[0] > 0 {
				out[i] = 1
			}
			continue
		}
		out[i] = floats.MaxIdx(z)
	}
	return out, nil
}

// objective is C * sum(loss) + 0.5 * ||W||^2 over the flat parameter
// vector [w_0 b_0 w_1 b_1 ...]; intercepts are not penalized.
type objective struct {
	X   *sparse.Matrix
	y   []int
	k   int
	dim int
	c   float64
	l2  bool
}

func (o *objective) nRows() int {
	if o.k == 2 {
		return 1
	}
	return o.k
}

func (o *objective) eval(x, grad []float64) float64 {
	stride := o.dim + 1
	if grad != nil {
		for i := range grad {
			grad[i] = 0
		}
	}

	var loss float64
	z := make([]float64, o.nRows())
	for i, row := range o.X.Rows {
		for r := range z {
			z[r] = dot(row, x[r*stride:r*stride+o.dim]) + x[r*stride+o.dim]
		}

		if o.k == 2 {
			s := -1.0
			if o.y[i] == 1 {
				s = 1
			}
			m := s * z[0]
			loss += logOnePlusExp(-m)
			if grad != nil {
				g := -s / (1 + math.Exp(m)) * o.c
				addRow(grad[:stride], row, g, o.dim)
			}
			continue
		}

		lse := floats.LogSumExp(z)
		loss += lse - z[o.y[i]]
		if grad != nil {
			for r := range z {
				p := math.Exp(z[r] - lse)
				if r == o.y[i] {
					p--
				}
				addRow(grad[r*stride:(r+1)*stride], row, p*o.c, o.dim)
			}
		}
	}

	f := o.c * loss
	if o.l2 {
		for r := 0; r < o.nRows(); r++ {
			w := x[r*stride : r*stride+o.dim]
			f += 0.5 * floats.Dot(w, w)
			if grad != nil {
				floats.Add(grad[r*stride:r*stride+o.dim], w)
			}
		}
	}
	return f
}

// dot is row·w for rows already bounds-checked by checkColumns.
func dot(row sparse.Vector, w []float64) float64 {
	var sum float64
	for k, j := range row.Indices {
		sum += row.Values[k] * w[j]
	}
	return sum
}

// addRow adds g*row to the weight block and g to its intercept slot.
func addRow(block []float64, row sparse.Vector, g float64, dim int) {
	for k, j := range row.Indices {
		block[j] += g * row.Values[k]
	}
	block[dim] += g
}

// logOnePlusExp computes log(1 + e^t) without overflow.
func logOnePlusExp(t float64) float64 {
	if t > 0 {
		return t + math.Log1p(math.Exp(-t))
	}
	return math.Log1p(math.Exp(t))
}
