package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/sentiment-cli/internal/archive"
	"github.com/kamusis/sentiment-cli/internal/labels"
	"github.com/kamusis/sentiment-cli/internal/testutil"
	"github.com/kamusis/sentiment-cli/internal/tokenize"
	"github.com/kamusis/sentiment-cli/internal/tsv"
	"github.com/kamusis/sentiment-cli/internal/vectorize"
)

const (
	trainBody = "POSITIVE\tgreat film\nNEGATIVE\tawful film\nPOSITIVE\tgreat acting\n"
	devBody   = "NEGATIVE\tawful acting\nPOSITIVE\tgreat plot\n"
	unlabBody = "great\n\nawful plot\n"
)

func corpus(t *testing.T) string {
	t.Helper()
	return testutil.WriteTarGz(t, t.TempDir(), "sentiment.tar.gz",
		testutil.Member{Name: "sentiment/"},
		testutil.Member{Name: "sentiment/train.tsv", Body: trainBody},
		testutil.Member{Name: "sentiment/dev.tsv", Body: devBody},
		testutil.Member{Name: "sentiment/unlabeled.tsv", Body: unlabBody},
	)
}

func TestRead_BagOfWords(t *testing.T) {
	ds, err := Read(corpus(t), Options{Kind: vectorize.BagOfWords})
	require.NoError(t, err)

	assert.Equal(t, "sentiment/train.tsv", ds.TrainMember)
	assert.Equal(t, "sentiment/dev.tsv", ds.DevMember)
	assert.Equal(t, []string{"great film", "awful film", "great acting"}, ds.TrainTexts)
	assert.Equal(t, []string{"NEGATIVE", "POSITIVE"}, ds.TargetLabels)
	assert.Equal(t, []int{1, 0, 1}, ds.TrainY)
	assert.Equal(t, []int{0, 1}, ds.DevY)

	rows, cols := ds.TrainX.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, ds.Vectorizer.Dim(), cols)
	rows, cols = ds.DevX.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, ds.Vectorizer.Dim(), cols)
}

func TestRead_DevTermsOutsideVocabularyAreDropped(t *testing.T) {
	ds, err := Read(corpus(t), Options{Kind: vectorize.BagOfWords})
	require.NoError(t, err)
	assert.NotContains(t, ds.Vectorizer.Vocabulary(), "plot")
	// "great plot" keeps only the unigram "great".
	assert.Equal(t, 1, ds.DevX.Rows[1].NNZ())
}

func TestRead_TFIDFNeedsTokenizer(t *testing.T) {
	_, err := Read(corpus(t), Options{Kind: vectorize.TFIDF})
	require.Error(t, err)

	tok, err := tokenize.NewLemmaTokenizer(tokenize.Porter{}, 16)
	require.NoError(t, err)
	ds, err := Read(corpus(t), Options{Kind: vectorize.TFIDF, Tokenizer: tok})
	require.NoError(t, err)
	assert.Positive(t, ds.Vectorizer.Dim())
}

func TestRead_MissingMember(t *testing.T) {
	path := testutil.WriteTarGz(t, t.TempDir(), "a.tar.gz",
		testutil.Member{Name: "train.tsv", Body: trainBody})

	_, err := Read(path, Options{Kind: vectorize.BagOfWords})
	require.Error(t, err)
	var ae *archive.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "dev.tsv", ae.Member)
	assert.ErrorIs(t, err, archive.ErrMemberNotFound)
}

func TestRead_MalformedTrainLine(t *testing.T) {
	path := testutil.WriteTarGz(t, t.TempDir(), "a.tar.gz",
		testutil.Member{Name: "train.tsv", Body: "POSITIVE\tok\nno tab here\n"},
		testutil.Member{Name: "dev.tsv", Body: devBody})

	_, err := Read(path, Options{Kind: vectorize.BagOfWords})
	var pe *tsv.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}

func TestRead_UnknownDevLabel(t *testing.T) {
	path := testutil.WriteTarGz(t, t.TempDir(), "a.tar.gz",
		testutil.Member{Name: "train.tsv", Body: trainBody},
		testutil.Member{Name: "dev.tsv", Body: "NEUTRAL\tmeh\n"})

	_, err := Read(path, Options{Kind: vectorize.BagOfWords})
	var ue *labels.UnknownLabelError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "NEUTRAL", ue.Label)
}

func TestReadUnlabeled_KeepsBlankLines(t *testing.T) {
	path := corpus(t)
	ds, err := Read(path, Options{Kind: vectorize.BagOfWords})
	require.NoError(t, err)

	u, err := ReadUnlabeled(path, ds)
	require.NoError(t, err)
	assert.Equal(t, "sentiment/unlabeled.tsv", u.Member)
	assert.Equal(t, []string{"great", "", "awful plot"}, u.Texts)
	rows, cols := u.X.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, ds.Vectorizer.Dim(), cols)
	assert.Zero(t, u.X.Rows[1].NNZ())
}

func TestAugment(t *testing.T) {
	ds, err := Read(corpus(t), Options{Kind: vectorize.BagOfWords})
	require.NoError(t, err)
	before := ds.Vectorizer.Dim()

	aug, err := Augment(ds, []string{"awful plot"}, []string{"NEGATIVE"}, vectorize.BagOfWords, nil)
	require.NoError(t, err)

	assert.Len(t, aug.TrainTexts, 4)
	assert.Equal(t, []int{1, 0, 1, 0}, aug.TrainY)
	assert.Contains(t, aug.Vectorizer.Vocabulary(), "plot")
	assert.Same(t, ds.Encoder, aug.Encoder)

	// The source dataset is untouched.
	assert.Len(t, ds.TrainTexts, 3)
	assert.Equal(t, before, ds.Vectorizer.Dim())
}

func TestAugment_LengthMismatch(t *testing.T) {
	ds, err := Read(corpus(t), Options{Kind: vectorize.BagOfWords})
	require.NoError(t, err)
	_, err = Augment(ds, []string{"a", "b"}, []string{"POSITIVE"}, vectorize.BagOfWords, nil)
	assert.Error(t, err)
}

func TestUnlabeledFor_RetransformsForAugmentedDataset(t *testing.T) {
	path := corpus(t)
	ds, err := Read(path, Options{Kind: vectorize.BagOfWords})
	require.NoError(t, err)
	u, err := ReadUnlabeled(path, ds)
	require.NoError(t, err)

	X, err := u.For(ds)
	require.NoError(t, err)
	assert.Same(t, u.X, X)

	aug, err := Augment(ds, []string{"awful plot"}, []string{"NEGATIVE"}, vectorize.BagOfWords, nil)
	require.NoError(t, err)
	X, err = u.For(aug)
	require.NoError(t, err)
	assert.Equal(t, aug.Vectorizer.Dim(), X.Cols)
	// "awful plot" now has its unigrams and the bigram.
	assert.Equal(t, 3, X.Rows[2].NNZ())
}
