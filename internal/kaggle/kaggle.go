// Package kaggle writes submission files: a header "ID,LABEL" followed by
// one "<1-based id>,<label>" row per document. Labels are written verbatim,
// without CSV quoting.
package kaggle

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/kamusis/sentiment-cli/internal/classify"
	"github.com/kamusis/sentiment-cli/internal/labels"
	"github.com/kamusis/sentiment-cli/internal/sparse"
	"github.com/kamusis/sentiment-cli/internal/tsv"
)

// BaselineLabel is predicted for every row by WriteBasic.
const BaselineLabel = "POSITIVE"

// LockTimeout bounds the wait for another writer of the same file.
var LockTimeout = 10 * time.Second

// IOError reports a failure to create or write an output file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Write replaces path with a submission listing ys in order.
func Write(path string, ys []string) error {
	unlock, err := acquireLock(path, LockTimeout)
	if err != nil {
		return err
	}
	defer unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "ID,LABEL")
	for i, y := range ys {
		fmt.Fprintf(w, "%d,%s\n", i+1, y)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}

// WritePredictions writes the classifier's predictions for X, decoded
// through enc.
func WritePredictions(path string, X *sparse.Matrix, cls classify.Classifier, enc *labels.Encoder) error {
	codes, err := cls.Predict(X)
	if err != nil {
		return fmt.Errorf("cannot predict: %w", err)
	}
	ys, err := enc.InverseTransform(codes)
	if err != nil {
		return err
	}
	return Write(path, ys)
}

// WriteGold writes the true labels of the labeled TSV at tsvPath.
func WriteGold(tsvPath, outPath string) error {
	ys, _, err := tsv.ReadLabeledFile(tsvPath)
	if err != nil {
		return err
	}
	return Write(outPath, ys)
}

// WriteBasic writes BaselineLabel for every record of the labeled TSV at
// tsvPath, ignoring its labels.
func WriteBasic(tsvPath, outPath string) error {
	ys, _, err := tsv.ReadLabeledFile(tsvPath)
	if err != nil {
		return err
	}
	for i := range ys {
		ys[i] = BaselineLabel
	}
	return Write(outPath, ys)
}

// acquireLock takes an advisory lock on path+".lock", retrying until timeout.
// The returned func unlocks and removes the lock file.
func acquireLock(path string, timeout time.Duration) (func(), error) {
	lockPath := path + ".lock"
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return func() {}, &IOError{Op: "lock", Path: lockPath, Err: err}
		}
		if locked {
			return func() {
				_ = l.Unlock()
				_ = os.Remove(lockPath)
			}, nil
		}
		if time.Now().After(deadline) {
			return func() {}, &IOError{Op: "lock", Path: lockPath, Err: fmt.Errorf("another writer holds the lock")}
		}
		time.Sleep(100 * time.Millisecond)
	}
}
