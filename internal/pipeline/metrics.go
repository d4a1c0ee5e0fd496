package pipeline

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// Metrics summarizes one trained model.
type Metrics struct {
	Model         string  `csv:"model"`
	Vectorizer    string  `csv:"vectorizer"`
	Features      int     `csv:"features"`
	TrainDocs     int     `csv:"train_docs"`
	C             float64 `csv:"c"`
	Iterations    int     `csv:"iterations"`
	Status        string  `csv:"status"`
	TrainAccuracy float64 `csv:"train_accuracy"`
	DevAccuracy   float64 `csv:"dev_accuracy"`
}

// Metrics returns the summary row of r under the given model name.
func (r *Report) Metrics(name string) Metrics {
	return Metrics{
		Model:         name,
		Vectorizer:    r.Params.Kind.String(),
		Features:      r.Dataset.Vectorizer.Dim(),
		TrainDocs:     len(r.Dataset.TrainTexts),
		C:             r.Options.C,
		Iterations:    r.Model.Iterations,
		Status:        r.Model.Status,
		TrainAccuracy: r.TrainAccuracy,
		DevAccuracy:   r.DevAccuracy,
	}
}

// WriteMetrics replaces path with a CSV of rows, one line per model.
func WriteMetrics(path string, rows []Metrics) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create metrics file %s: %w", path, err)
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("cannot write metrics file %s: %w", path, err)
	}
	return f.Close()
}
