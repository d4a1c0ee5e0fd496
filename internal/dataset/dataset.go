// Package dataset assembles the train and dev splits of a sentiment archive
// into vectors and label codes.
package dataset

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kamusis/sentiment-cli/internal/archive"
	"github.com/kamusis/sentiment-cli/internal/labels"
	"github.com/kamusis/sentiment-cli/internal/sparse"
	"github.com/kamusis/sentiment-cli/internal/tokenize"
	"github.com/kamusis/sentiment-cli/internal/tsv"
	"github.com/kamusis/sentiment-cli/internal/vectorize"
)

// Dataset holds both labeled splits. For each split, texts, labels, rows of
// the matrix and codes are index-aligned. Vectorizer and Encoder are fit on
// the training split only and are never refit.
type Dataset struct {
	TrainMember string
	DevMember   string

	TrainTexts  []string
	TrainLabels []string
	DevTexts    []string
	DevLabels   []string

	Vectorizer   vectorize.Vectorizer
	Encoder      *labels.Encoder
	TargetLabels []string

	TrainX *sparse.Matrix
	DevX   *sparse.Matrix
	TrainY []int
	DevY   []int
}

// Unlabeled is the unlabeled split, vectorized with a Dataset's vectorizer.
type Unlabeled struct {
	Member string
	Texts  []string
	X      *sparse.Matrix

	vec vectorize.Vectorizer
}

// For returns the unlabeled rows in the feature space of ds, transforming
// the texts again when ds was fit after u was read.
func (u *Unlabeled) For(ds *Dataset) (*sparse.Matrix, error) {
	if u.vec == ds.Vectorizer {
		return u.X, nil
	}
	return ds.Vectorizer.Transform(u.Texts)
}

// Options configures Read.
type Options struct {
	Kind      vectorize.Kind
	Tokenizer tokenize.Tokenizer // required for vectorize.TFIDF
	Logger    *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Read loads the train and dev splits from the archive at archivePath,
// fits the vectorizer and label encoder on train, and transforms dev.
func Read(archivePath string, opts Options) (ds *Dataset, err error) {
	log := opts.logger()

	a, err := archive.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = &archive.Error{Path: archivePath, Err: cerr}
		}
	}()

	ds = &Dataset{
		TrainMember: a.Resolve(archive.TrainMember, archive.TrainMember),
		DevMember:   a.Resolve(archive.DevMember, archive.DevMember),
	}
	ds.TrainLabels, ds.TrainTexts, err = readLabeled(a, ds.TrainMember)
	if err != nil {
		return nil, err
	}
	log.Info("read split", zap.String("member", ds.TrainMember), zap.Int("docs", len(ds.TrainTexts)))

	ds.DevLabels, ds.DevTexts, err = readLabeled(a, ds.DevMember)
	if err != nil {
		return nil, err
	}
	log.Info("read split", zap.String("member", ds.DevMember), zap.Int("docs", len(ds.DevTexts)))

	vec, err := vectorize.New(opts.Kind, opts.Tokenizer)
	if err != nil {
		return nil, err
	}
	if err := ds.fit(vec, labels.Fit(ds.TrainLabels)); err != nil {
		return nil, err
	}
	log.Info("vectorized",
		zap.Stringer("vectorizer", opts.Kind),
		zap.Int("features", ds.Vectorizer.Dim()),
		zap.Strings("classes", ds.TargetLabels))
	return ds, nil
}

func readLabeled(a *archive.Archive, member string) (ys, texts []string, err error) {
	r, err := a.OpenMember(member)
	if err != nil {
		return nil, nil, err
	}
	ys, texts, err = tsv.ReadLabeled(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", member, err)
	}
	return ys, texts, nil
}

// fit runs vec over the splits and encodes the labels with enc.
func (ds *Dataset) fit(vec vectorize.Vectorizer, enc *labels.Encoder) error {
	var err error
	ds.Vectorizer = vec
	ds.Encoder = enc
	ds.TargetLabels = enc.Classes()

	if ds.TrainX, err = vec.FitTransform(ds.TrainTexts); err != nil {
		return fmt.Errorf("cannot vectorize training data: %w", err)
	}
	if ds.DevX, err = vec.Transform(ds.DevTexts); err != nil {
		return fmt.Errorf("cannot vectorize dev data: %w", err)
	}
	if ds.TrainY, err = enc.Transform(ds.TrainLabels); err != nil {
		return fmt.Errorf("train labels: %w", err)
	}
	if ds.DevY, err = enc.Transform(ds.DevLabels); err != nil {
		return fmt.Errorf("dev labels: %w", err)
	}
	return nil
}

// ReadUnlabeled loads the unlabeled split from the archive and transforms it
// with ds.Vectorizer.
func ReadUnlabeled(archivePath string, ds *Dataset) (u *Unlabeled, err error) {
	a, err := archive.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = &archive.Error{Path: archivePath, Err: cerr}
		}
	}()

	u = &Unlabeled{Member: a.Resolve(archive.UnlabeledMember, archive.UnlabeledMember)}
	r, err := a.OpenMember(u.Member)
	if err != nil {
		return nil, err
	}
	if u.Texts, err = tsv.ReadUnlabeled(r); err != nil {
		return nil, fmt.Errorf("%s: %w", u.Member, err)
	}
	if u.X, err = ds.Vectorizer.Transform(u.Texts); err != nil {
		return nil, fmt.Errorf("cannot vectorize unlabeled data: %w", err)
	}
	u.vec = ds.Vectorizer
	return u, nil
}

// Augment returns a new Dataset whose training split is ds's plus the extra
// documents. A fresh vectorizer of kind is fit on the enlarged training
// split; the label encoder of ds is reused. ds itself is not modified.
func Augment(ds *Dataset, texts, ys []string, kind vectorize.Kind, tok tokenize.Tokenizer) (*Dataset, error) {
	if len(texts) != len(ys) {
		return nil, fmt.Errorf("augment: %d texts but %d labels", len(texts), len(ys))
	}
	out := &Dataset{
		TrainMember: ds.TrainMember,
		DevMember:   ds.DevMember,
		TrainTexts:  concat(ds.TrainTexts, texts),
		TrainLabels: concat(ds.TrainLabels, ys),
		DevTexts:    ds.DevTexts,
		DevLabels:   ds.DevLabels,
	}
	vec, err := vectorize.New(kind, tok)
	if err != nil {
		return nil, err
	}
	if err := out.fit(vec, ds.Encoder); err != nil {
		return nil, err
	}
	return out, nil
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
