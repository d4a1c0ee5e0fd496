package classify

import (
	"fmt"
	"strings"
)

// Penalty is the regularization applied to the weights.
type Penalty int

const (
	L2 Penalty = iota + 1
	NoPenalty
)

func (p Penalty) String() string {
	switch p {
	case L2:
		return "l2"
	case NoPenalty:
		return "none"
	default:
		return fmt.Sprintf("Penalty(%d)", int(p))
	}
}

// ParsePenalty accepts "l2" or "none".
func ParsePenalty(s string) (Penalty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l2":
		return L2, nil
	case "none":
		return NoPenalty, nil
	default:
		return 0, fmt.Errorf("unsupported penalty %q (want l2 or none)", s)
	}
}

// Optimizer selects the gonum minimization method.
type Optimizer int

const (
	LBFGS Optimizer = iota + 1
	ConjugateGradient
	GradientDescent
)

func (o Optimizer) String() string {
	switch o {
	case LBFGS:
		return "lbfgs"
	case ConjugateGradient:
		return "cg"
	case GradientDescent:
		return "gd"
	default:
		return fmt.Sprintf("Optimizer(%d)", int(o))
	}
}

// ParseOptimizer accepts "lbfgs", "cg" or "gd".
func ParseOptimizer(s string) (Optimizer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lbfgs":
		return LBFGS, nil
	case "cg":
		return ConjugateGradient, nil
	case "gd":
		return GradientDescent, nil
	default:
		return 0, fmt.Errorf("unsupported optimizer %q (want lbfgs, cg or gd)", s)
	}
}

// Defaults for Options fields left at zero.
const (
	DefaultMaxIter = 100
	DefaultTol     = 1e-4
)

// Options configures Train.
type Options struct {
	C         float64 // inverse regularization strength, > 0
	Penalty   Penalty
	Optimizer Optimizer
	MaxIter   int
	Tol       float64 // gradient norm threshold
}

func (o Options) withDefaults() (Options, error) {
	if o.C <= 0 {
		return o, fmt.Errorf("regularization strength C must be positive, got %v", o.C)
	}
	if o.Penalty == 0 {
		o.Penalty = L2
	}
	if o.Optimizer == 0 {
		o.Optimizer = LBFGS
	}
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.Tol <= 0 {
		o.Tol = DefaultTol
	}
	return o, nil
}
