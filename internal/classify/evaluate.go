package classify

import (
	"errors"
	"fmt"

	"github.com/kamusis/sentiment-cli/internal/sparse"
)

// Evaluate returns the fraction of rows of X whose predicted code equals y.
func Evaluate(X *sparse.Matrix, y []int, cls Classifier) (float64, error) {
	if len(X.Rows) != len(y) {
		return 0, fmt.Errorf("row count %d does not match label count %d", len(X.Rows), len(y))
	}
	if len(y) == 0 {
		return 0, errors.New("cannot evaluate on an empty split")
	}
	pred, err := cls.Predict(X)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i, p := range pred {
		if p == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}
