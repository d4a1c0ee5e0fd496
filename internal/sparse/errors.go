package sparse

import "errors"

// ErrDimMismatch indicates a vector and a weight slice have different widths.
var ErrDimMismatch = errors.New("vector dimension mismatch")
