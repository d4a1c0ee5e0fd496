// Package pipeline runs the read, vectorize, train and evaluate stages end
// to end.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kamusis/sentiment-cli/internal/classify"
	"github.com/kamusis/sentiment-cli/internal/dataset"
	"github.com/kamusis/sentiment-cli/internal/kaggle"
	"github.com/kamusis/sentiment-cli/internal/sparse"
	"github.com/kamusis/sentiment-cli/internal/tokenize"
	"github.com/kamusis/sentiment-cli/internal/vectorize"
)

// Params are the inputs of a training run.
type Params struct {
	Archive    string
	Kind       vectorize.Kind
	Tokenizer  tokenize.Tokenizer // required for vectorize.TFIDF
	Classifier classify.Options
}

// SelfTrainParams configure a pseudo-labeling round.
type SelfTrainParams struct {
	Percent    int // share of the unlabeled documents, 0..100
	Classifier classify.Options
}

// Report is the outcome of a run.
type Report struct {
	Params        Params
	Dataset       *dataset.Dataset
	Model         *classify.LogisticRegression
	Options       classify.Options // options the model was trained with
	TrainAccuracy float64
	DevAccuracy   float64
}

// Pipeline runs the stages. The zero value is usable.
type Pipeline struct {
	Logger *zap.Logger

	// OnStage, when set, is called as each stage starts or finishes.
	OnStage func(stage, detail string)
}

func (p *Pipeline) log() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p *Pipeline) stage(stage, format string, args ...any) {
	if p.OnStage != nil {
		p.OnStage(stage, fmt.Sprintf(format, args...))
	}
}

// Run reads the archive, trains a classifier on the train split and
// evaluates it on both labeled splits.
func (p *Pipeline) Run(params Params) (*Report, error) {
	p.stage("read", "%s", params.Archive)
	ds, err := dataset.Read(params.Archive, dataset.Options{
		Kind:      params.Kind,
		Tokenizer: params.Tokenizer,
		Logger:    p.log(),
	})
	if err != nil {
		return nil, err
	}
	p.stage("train data", "%s: %d documents", ds.TrainMember, len(ds.TrainTexts))
	p.stage("dev data", "%s: %d documents", ds.DevMember, len(ds.DevTexts))
	p.stage("vectorize", "%s, %d features", params.Kind, ds.Vectorizer.Dim())

	return p.fit(params, ds, params.Classifier)
}

func (p *Pipeline) fit(params Params, ds *dataset.Dataset, opts classify.Options) (*Report, error) {
	rows, cols := ds.TrainX.Shape()
	p.stage("train", "%d x %d, C=%g", rows, cols, opts.C)
	model, err := classify.Train(ds.TrainX, ds.TrainY, opts, p.log())
	if err != nil {
		return nil, fmt.Errorf("training failed: %w", err)
	}

	r := &Report{Params: params, Dataset: ds, Model: model, Options: opts}
	if r.TrainAccuracy, err = classify.Evaluate(ds.TrainX, ds.TrainY, model); err != nil {
		return nil, fmt.Errorf("training data: %w", err)
	}
	p.stage("evaluate", "training data: %g", r.TrainAccuracy)
	if r.DevAccuracy, err = classify.Evaluate(ds.DevX, ds.DevY, model); err != nil {
		return nil, fmt.Errorf("validation data: %w", err)
	}
	p.stage("evaluate", "validation data: %g", r.DevAccuracy)
	return r, nil
}

// ReadUnlabeled loads the unlabeled split of the report's archive.
func (p *Pipeline) ReadUnlabeled(r *Report) (*dataset.Unlabeled, error) {
	u, err := dataset.ReadUnlabeled(r.Params.Archive, r.Dataset)
	if err != nil {
		return nil, err
	}
	p.stage("unlabeled data", "%s: %d documents", u.Member, len(u.Texts))
	return u, nil
}

// SelfTrain labels the first Percent% of u with the report's model, adds
// them to the training split, refits the vectorizer on the enlarged split
// and trains a new model with its own options. r is not modified.
func (p *Pipeline) SelfTrain(r *Report, u *dataset.Unlabeled, sp SelfTrainParams) (*Report, error) {
	if sp.Percent < 0 || sp.Percent > 100 {
		return nil, fmt.Errorf("self-training percent must be within 0..100, got %d", sp.Percent)
	}
	X, err := u.For(r.Dataset)
	if err != nil {
		return nil, err
	}
	n := sp.Percent * len(u.Texts) / 100
	subset := &sparse.Matrix{Rows: X.Rows[:n], Cols: X.Cols}

	codes, err := r.Model.Predict(subset)
	if err != nil {
		return nil, err
	}
	ys, err := r.Dataset.Encoder.InverseTransform(codes)
	if err != nil {
		return nil, err
	}
	p.stage("self-train", "%d pseudo-labeled documents (%d%%)", n, sp.Percent)
	p.log().Info("pseudo-labeled", zap.Int("docs", n), zap.Int("percent", sp.Percent))

	aug, err := dataset.Augment(r.Dataset, u.Texts[:n], ys, r.Params.Kind, r.Params.Tokenizer)
	if err != nil {
		return nil, err
	}
	return p.fit(r.Params, aug, sp.Classifier)
}

// WritePredictions predicts every unlabeled document with the report's
// model and writes them to path in Kaggle format.
func (p *Pipeline) WritePredictions(r *Report, u *dataset.Unlabeled, path string) error {
	X, err := u.For(r.Dataset)
	if err != nil {
		return err
	}
	if err := kaggle.WritePredictions(path, X, r.Model, r.Dataset.Encoder); err != nil {
		return err
	}
	p.stage("predict", "%d predictions written to %s", len(u.Texts), path)
	return nil
}
