package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "sentiment.yaml"

// Classifier holds the logistic regression settings.
type Classifier struct {
	C         float64 `yaml:"c"`
	Penalty   string  `yaml:"penalty"`
	Optimizer string  `yaml:"optimizer"`
	MaxIter   int     `yaml:"max_iter,omitempty"`
}

// SelfTrain holds the semi-supervised retraining settings.
type SelfTrain struct {
	Enabled bool    `yaml:"enabled"`
	Percent int     `yaml:"percent"`
	C       float64 `yaml:"c"`
}

// Output names the files written after training.
type Output struct {
	Predictions string `yaml:"predictions,omitempty"`
	Metrics     string `yaml:"metrics,omitempty"`
}

// Log configures diagnostic logging.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Config is the in-memory representation of sentiment.yaml.
type Config struct {
	Archive    string     `yaml:"archive"`
	Vectorizer string     `yaml:"vectorizer"`
	Lemmatizer string     `yaml:"lemmatizer"`
	LemmaDict  string     `yaml:"lemma_dict"`
	Classifier Classifier `yaml:"classifier"`
	SelfTrain  SelfTrain  `yaml:"self_train"`
	Output     Output     `yaml:"output"`
	Log        Log        `yaml:"log"`
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Archive:    filepath.Join("data", "sentiment.tar.gz"),
		Vectorizer: "tfidf",
		Lemmatizer: "wordnet",
		LemmaDict:  "~/nltk_data/corpora/wordnet",
		Classifier: Classifier{C: 8, Penalty: "l2", Optimizer: "lbfgs", MaxIter: 100},
		SelfTrain:  SelfTrain{Percent: 10, C: 200},
		Log:        Log{Level: "warn"},
	}
}

// Load reads the YAML file at path over DefaultConfig. A missing file is not
// an error when optional is true.
func Load(path string, optional bool) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.expand()
		}
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if err := cfg.expand(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) expand() error {
	var err error
	for _, p := range []*string{&c.Archive, &c.LemmaDict, &c.Output.Predictions, &c.Output.Metrics, &c.Log.File} {
		if *p, err = ExpandPath(*p); err != nil {
			return err
		}
	}
	return nil
}

// Validate rejects values no command can act on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Vectorizer) {
	case "bow", "tfidf":
	default:
		return fmt.Errorf("vectorizer must be bow or tfidf, got %q", c.Vectorizer)
	}
	switch c.Lemmatizer {
	case "wordnet", "porter":
	default:
		return fmt.Errorf("lemmatizer must be wordnet or porter, got %q", c.Lemmatizer)
	}
	switch c.Classifier.Penalty {
	case "l2", "none":
	default:
		return fmt.Errorf("classifier.penalty must be l2 or none, got %q", c.Classifier.Penalty)
	}
	switch c.Classifier.Optimizer {
	case "lbfgs", "cg", "gd":
	default:
		return fmt.Errorf("classifier.optimizer must be lbfgs, cg or gd, got %q", c.Classifier.Optimizer)
	}
	if c.Classifier.C <= 0 {
		return fmt.Errorf("classifier.c must be positive, got %v", c.Classifier.C)
	}
	if c.Classifier.MaxIter < 0 {
		return fmt.Errorf("classifier.max_iter must not be negative")
	}
	if c.SelfTrain.Percent < 0 || c.SelfTrain.Percent > 100 {
		return fmt.Errorf("self_train.percent must be within 0..100, got %d", c.SelfTrain.Percent)
	}
	if c.SelfTrain.C <= 0 {
		return fmt.Errorf("self_train.c must be positive, got %v", c.SelfTrain.C)
	}
	return nil
}

// Save marshals cfg and writes it to path.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
