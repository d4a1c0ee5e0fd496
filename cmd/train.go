package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/sentiment-cli/internal/classify"
	"github.com/kamusis/sentiment-cli/internal/config"
	"github.com/kamusis/sentiment-cli/internal/pipeline"
	"github.com/kamusis/sentiment-cli/internal/tokenize"
	"github.com/kamusis/sentiment-cli/internal/vectorize"
)

// trainFlags holds flag values for the `sentiment train` command. Flags the
// user sets override the config file.
type trainFlags struct {
	archive    string
	vectorizer string
	lemmatizer string
	lemmaDict  string
	c          float64
	penalty    string
	optimizer  string
	maxIter    int
	predictOut string
	metricsOut string
	selfTrain  bool
	selfPct    int
	selfC      float64
}

var trainF trainFlags

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train on train.tsv, report train and dev accuracy",
	Long: `Train reads the archive, vectorizes the reviews, fits a logistic regression
and prints its accuracy on the training and validation splits.

With --predict-out the unlabeled split is classified and written in Kaggle
format. With --self-train the model first labels a share of the unlabeled
split, which is added to the training data for a second model.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	d := config.DefaultConfig()
	f := trainCmd.Flags()
	f.StringVar(&trainF.archive, "archive", d.Archive, "Path to the sentiment .tar.gz archive")
	f.StringVar(&trainF.vectorizer, "vectorizer", d.Vectorizer, "Feature extraction: bow or tfidf")
	f.StringVar(&trainF.lemmatizer, "lemmatizer", d.Lemmatizer, "Token normalization for tfidf: wordnet or porter")
	f.StringVar(&trainF.lemmaDict, "lemma-dict", d.LemmaDict, "WordNet dict directory (index.noun, noun.exc)")
	f.Float64Var(&trainF.c, "c", d.Classifier.C, "Inverse regularization strength")
	f.StringVar(&trainF.penalty, "penalty", d.Classifier.Penalty, "Regularization: l2 or none")
	f.StringVar(&trainF.optimizer, "optimizer", d.Classifier.Optimizer, "Solver: lbfgs, cg or gd")
	f.IntVar(&trainF.maxIter, "max-iter", d.Classifier.MaxIter, "Maximum solver iterations")
	f.StringVar(&trainF.predictOut, "predict-out", "", "Write predictions for unlabeled.tsv to this CSV file")
	f.StringVar(&trainF.metricsOut, "metrics-out", "", "Write a CSV summary of every trained model to this file")
	f.BoolVar(&trainF.selfTrain, "self-train", false, "Retrain with pseudo-labeled unlabeled documents")
	f.IntVar(&trainF.selfPct, "self-train-percent", d.SelfTrain.Percent, "Share of unlabeled documents to pseudo-label")
	f.Float64Var(&trainF.selfC, "self-train-c", d.SelfTrain.C, "Inverse regularization strength of the retrained model")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	applyTrainFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return train(cfg, logger)
}

// applyTrainFlags copies explicitly set flags over cfg.
func applyTrainFlags(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("archive") {
		cfg.Archive = trainF.archive
	}
	if set("vectorizer") {
		cfg.Vectorizer = trainF.vectorizer
	}
	if set("lemmatizer") {
		cfg.Lemmatizer = trainF.lemmatizer
	}
	if set("lemma-dict") {
		cfg.LemmaDict = trainF.lemmaDict
	}
	if set("c") {
		cfg.Classifier.C = trainF.c
	}
	if set("penalty") {
		cfg.Classifier.Penalty = trainF.penalty
	}
	if set("optimizer") {
		cfg.Classifier.Optimizer = trainF.optimizer
	}
	if set("max-iter") {
		cfg.Classifier.MaxIter = trainF.maxIter
	}
	if set("predict-out") {
		cfg.Output.Predictions = trainF.predictOut
	}
	if set("metrics-out") {
		cfg.Output.Metrics = trainF.metricsOut
	}
	if set("self-train") {
		cfg.SelfTrain.Enabled = trainF.selfTrain
	}
	if set("self-train-percent") {
		cfg.SelfTrain.Percent = trainF.selfPct
	}
	if set("self-train-c") {
		cfg.SelfTrain.C = trainF.selfC
	}
}

// train runs the pipeline described by cfg and prints its progress.
func train(cfg *config.Config, logger *zap.Logger) error {
	params, err := pipelineParams(cfg)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{Logger: logger, OnStage: printStage}
	printSection("Reading data")
	report, err := p.Run(params)
	if err != nil {
		return err
	}
	printResults("Results", report)
	metrics := []pipeline.Metrics{report.Metrics("base")}

	if !cfg.SelfTrain.Enabled && cfg.Output.Predictions == "" {
		return writeMetrics(cfg.Output.Metrics, metrics)
	}
	printSection("Unlabeled data")
	unlabeled, err := p.ReadUnlabeled(report)
	if err != nil {
		return err
	}

	if cfg.SelfTrain.Enabled {
		opts, err := classifierOptions(cfg.Classifier)
		if err != nil {
			return err
		}
		opts.C = cfg.SelfTrain.C
		printSection("Self-training")
		report, err = p.SelfTrain(report, unlabeled, pipeline.SelfTrainParams{
			Percent:    cfg.SelfTrain.Percent,
			Classifier: opts,
		})
		if err != nil {
			return err
		}
		printResults("Self-trained results", report)
		metrics = append(metrics, report.Metrics("self-trained"))
	}

	if cfg.Output.Predictions != "" {
		printSection("Writing predictions")
		if err := p.WritePredictions(report, unlabeled, cfg.Output.Predictions); err != nil {
			return err
		}
	}
	return writeMetrics(cfg.Output.Metrics, metrics)
}

func writeMetrics(path string, rows []pipeline.Metrics) error {
	if path == "" {
		return nil
	}
	if err := pipeline.WriteMetrics(path, rows); err != nil {
		return err
	}
	printOK("metrics", fmt.Sprintf("%d models written to %s", len(rows), path))
	return nil
}

func pipelineParams(cfg *config.Config) (pipeline.Params, error) {
	kind, err := vectorize.ParseKind(cfg.Vectorizer)
	if err != nil {
		return pipeline.Params{}, err
	}
	opts, err := classifierOptions(cfg.Classifier)
	if err != nil {
		return pipeline.Params{}, err
	}
	params := pipeline.Params{Archive: cfg.Archive, Kind: kind, Classifier: opts}
	if kind == vectorize.TFIDF {
		if params.Tokenizer, err = lemmaTokenizer(cfg); err != nil {
			return pipeline.Params{}, err
		}
	}
	return params, nil
}

func classifierOptions(c config.Classifier) (classify.Options, error) {
	penalty, err := classify.ParsePenalty(c.Penalty)
	if err != nil {
		return classify.Options{}, err
	}
	optimizer, err := classify.ParseOptimizer(c.Optimizer)
	if err != nil {
		return classify.Options{}, err
	}
	return classify.Options{C: c.C, Penalty: penalty, Optimizer: optimizer, MaxIter: c.MaxIter}, nil
}

func lemmaTokenizer(cfg *config.Config) (tokenize.Tokenizer, error) {
	var lem tokenize.Lemmatizer
	switch cfg.Lemmatizer {
	case "porter":
		lem = tokenize.Porter{}
	default:
		dict, err := config.ExpandPath(cfg.LemmaDict)
		if err != nil {
			return nil, err
		}
		wn, err := tokenize.LoadWordNet(dict)
		if err != nil {
			return nil, fmt.Errorf("%w\n  Or run with --lemmatizer porter.", err)
		}
		lem = wn
	}
	return tokenize.NewLemmaTokenizer(lem, tokenize.DefaultCacheSize)
}

func printStage(stage, detail string) {
	if stage == "evaluate" {
		printOK(stage, detail)
		return
	}
	printInfo(stage, detail)
}

func printResults(title string, r *pipeline.Report) {
	printSection(title)
	printOK("", fmt.Sprintf("Train accuracy: %.4f", r.TrainAccuracy))
	printOK("", fmt.Sprintf("Dev accuracy:   %.4f", r.DevAccuracy))
	if r.Model.Status != "" {
		printInfo("solver", fmt.Sprintf("%s after %d iterations", r.Model.Status, r.Model.Iterations))
	}
}
