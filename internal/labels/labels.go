// Package labels maps string class labels to dense integer codes.
package labels

import (
	"fmt"
	"sort"
)

// UnknownLabelError reports a label that was not seen by Fit.
type UnknownLabelError struct {
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown label %q", e.Label)
}

// UnknownCodeError reports a code outside [0, k).
type UnknownCodeError struct {
	Code int
	K    int
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("label code %d out of range [0,%d)", e.Code, e.K)
}

// Encoder is a fitted bijection between the distinct training labels,
// sorted lexicographically, and the codes 0..k-1.
type Encoder struct {
	classes []string
	codes   map[string]int
}

// Fit collects the distinct labels in ys.
func Fit(ys []string) *Encoder {
	codes := make(map[string]int)
	for _, y := range ys {
		codes[y] = 0
	}
	classes := make([]string, 0, len(codes))
	for y := range codes {
		classes = append(classes, y)
	}
	sort.Strings(classes)
	for i, y := range classes {
		codes[y] = i
	}
	return &Encoder{classes: classes, codes: codes}
}

// Classes returns the labels in code order.
func (e *Encoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Len returns the number of classes.
func (e *Encoder) Len() int { return len(e.classes) }

// Transform maps labels to codes.
func (e *Encoder) Transform(ys []string) ([]int, error) {
	out := make([]int, len(ys))
	for i, y := range ys {
		c, ok := e.codes[y]
		if !ok {
			return nil, &UnknownLabelError{Label: y}
		}
		out[i] = c
	}
	return out, nil
}

// InverseTransform maps codes back to labels.
func (e *Encoder) InverseTransform(codes []int) ([]string, error) {
	out := make([]string, len(codes))
	for i, c := range codes {
		if c < 0 || c >= len(e.classes) {
			return nil, &UnknownCodeError{Code: c, K: len(e.classes)}
		}
		out[i] = e.classes[c]
	}
	return out, nil
}
