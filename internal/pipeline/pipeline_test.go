package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/sentiment-cli/internal/classify"
	"github.com/kamusis/sentiment-cli/internal/testutil"
	"github.com/kamusis/sentiment-cli/internal/tokenize"
	"github.com/kamusis/sentiment-cli/internal/vectorize"
)

const (
	trainBody = "POSITIVE\tgood movie\nPOSITIVE\tgreat movie\nPOSITIVE\tgood and great\n" +
		"NEGATIVE\tbad movie\nNEGATIVE\tawful movie\nNEGATIVE\tbad and awful\n"
	devBody   = "POSITIVE\tgood\nNEGATIVE\tbad\n"
	unlabBody = "great\nawful\ngood plot\nbad plot\n"
)

func corpus(t *testing.T) string {
	t.Helper()
	return testutil.WriteTarGz(t, t.TempDir(), "sentiment.tar.gz",
		testutil.Member{Name: "data/train.tsv", Body: trainBody},
		testutil.Member{Name: "data/dev.tsv", Body: devBody},
		testutil.Member{Name: "data/unlabeled.tsv", Body: unlabBody},
	)
}

func bowParams(t *testing.T) Params {
	return Params{
		Archive:    corpus(t),
		Kind:       vectorize.BagOfWords,
		Classifier: classify.Options{C: 8},
	}
}

func TestRun_SeparableData(t *testing.T) {
	var stages []string
	p := &Pipeline{OnStage: func(stage, _ string) { stages = append(stages, stage) }}

	r, err := p.Run(bowParams(t))
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.TrainAccuracy)
	assert.Equal(t, 1.0, r.DevAccuracy)
	assert.Equal(t, []string{"NEGATIVE", "POSITIVE"}, r.Dataset.TargetLabels)
	assert.Equal(t,
		[]string{"read", "train data", "dev data", "vectorize", "train", "evaluate", "evaluate"},
		stages)
}

func TestRun_TFIDF(t *testing.T) {
	tok, err := tokenize.NewLemmaTokenizer(tokenize.Porter{}, 0)
	require.NoError(t, err)
	params := bowParams(t)
	params.Kind = vectorize.TFIDF
	params.Tokenizer = tok

	r, err := (&Pipeline{}).Run(params)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.TrainAccuracy, 0.5)
	assert.InDelta(t, 0.5, r.DevAccuracy, 0.5)
	assert.Contains(t, r.Dataset.Vectorizer.Vocabulary(), "movi")
}

func TestRun_MissingArchive(t *testing.T) {
	params := bowParams(t)
	params.Archive = filepath.Join(t.TempDir(), "absent.tar.gz")
	_, err := (&Pipeline{}).Run(params)
	assert.Error(t, err)
}

func TestSelfTrain(t *testing.T) {
	p := &Pipeline{}
	r, err := p.Run(bowParams(t))
	require.NoError(t, err)
	u, err := p.ReadUnlabeled(r)
	require.NoError(t, err)
	require.Len(t, u.Texts, 4)

	st, err := p.SelfTrain(r, u, SelfTrainParams{Percent: 50, Classifier: classify.Options{C: 200}})
	require.NoError(t, err)
	assert.Len(t, st.Dataset.TrainTexts, 8)
	assert.Equal(t, []string{"great", "awful"}, st.Dataset.TrainTexts[6:])
	assert.Equal(t, []string{"POSITIVE", "NEGATIVE"}, st.Dataset.TrainLabels[6:])
	assert.Equal(t, 1.0, st.DevAccuracy)

	// The first report keeps its own dataset.
	assert.Len(t, r.Dataset.TrainTexts, 6)
}

func TestSelfTrain_ZeroPercentRetrainsOnTrainOnly(t *testing.T) {
	p := &Pipeline{}
	r, err := p.Run(bowParams(t))
	require.NoError(t, err)
	u, err := p.ReadUnlabeled(r)
	require.NoError(t, err)

	st, err := p.SelfTrain(r, u, SelfTrainParams{Percent: 0, Classifier: classify.Options{C: 8}})
	require.NoError(t, err)
	assert.Len(t, st.Dataset.TrainTexts, 6)

	_, err = p.SelfTrain(r, u, SelfTrainParams{Percent: 101, Classifier: classify.Options{C: 8}})
	assert.Error(t, err)
}

func TestWritePredictions(t *testing.T) {
	p := &Pipeline{}
	r, err := p.Run(bowParams(t))
	require.NoError(t, err)
	u, err := p.ReadUnlabeled(r)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "pred.csv")
	require.NoError(t, p.WritePredictions(r, u, out))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "ID,LABEL\n1,POSITIVE\n2,NEGATIVE\n3,POSITIVE\n4,NEGATIVE\n", string(b))
}

func TestWritePredictions_AfterSelfTrain(t *testing.T) {
	p := &Pipeline{}
	r, err := p.Run(bowParams(t))
	require.NoError(t, err)
	u, err := p.ReadUnlabeled(r)
	require.NoError(t, err)
	st, err := p.SelfTrain(r, u, SelfTrainParams{Percent: 100, Classifier: classify.Options{C: 200}})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "pred.csv")
	require.NoError(t, p.WritePredictions(st, u, out))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "ID,LABEL\n1,POSITIVE\n2,NEGATIVE\n")
}
