package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/vocab/pkg/vocab"
	"github.com/cognicore/vocab/pkg/vocab/internalerr"
	"github.com/cognicore/vocab/pkg/vocab/ngram"
)

// Config is the on-disk configuration for building a vocabulary.
type Config struct {
	Ngram NgramConfig `yaml:"ngram"`
}

// NgramConfig controls n-gram generation.
type NgramConfig struct {
	Min       int    `yaml:"min"`
	Max       int    `yaml:"max"`
	Delimiter string `yaml:"delimiter"`
}

// Default returns the configuration used when no file is given:
// unigrams only, joined with the default delimiter.
func Default() Config {
	return Config{
		Ngram: NgramConfig{
			Min:       1,
			Max:       1,
			Delimiter: ngram.DefaultDelimiter,
		},
	}
}

// Load reads a YAML configuration file. Omitted fields fall back to the
// defaults before validation, so a file may set only what it changes.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Ngram.Delimiter == "" {
		cfg.Ngram.Delimiter = ngram.DefaultDelimiter
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the n-gram bounds.
func (c Config) Validate() error {
	if c.Ngram.Min < 1 {
		return fmt.Errorf("%w: ngram.min must be >= 1, got %d", internalerr.ErrInvalidConfig, c.Ngram.Min)
	}
	if c.Ngram.Max < c.Ngram.Min {
		return fmt.Errorf("%w: ngram.max %d is below ngram.min %d", internalerr.ErrInvalidConfig, c.Ngram.Max, c.Ngram.Min)
	}
	return nil
}

// Options converts the configuration into vocabulary construction options.
func (c Config) Options() vocab.Options {
	return vocab.Options{
		NgramMin:  c.Ngram.Min,
		NgramMax:  c.Ngram.Max,
		Delimiter: c.Ngram.Delimiter,
	}
}

// Stoplist is the stopword list configuration used by caller-side
// tokenization. The vocabulary itself never filters terms.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stoplist %s: %w", path, err)
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse stoplist %s: %w", path, err)
	}

	return &sl, nil
}
