package binning

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amp-labs/binkeys/envutil"
	"github.com/amp-labs/binkeys/errors"
	"github.com/amp-labs/binkeys/validate"
	"gopkg.in/yaml.v3"
)

// Config describes an equal-width binning. Set one of NumBins or MaxBinSize;
// a zero value means unset.
type Config struct {
	MinValue   float64 `json:"min_value"              yaml:"min_value"`
	MaxValue   float64 `json:"max_value"              yaml:"max_value"`
	NumBins    int     `json:"num_bins,omitempty"     yaml:"num_bins,omitempty"`
	MaxBinSize float64 `json:"max_bin_size,omitempty" yaml:"max_bin_size,omitempty"`
}

var _ validate.HasValidate = Config{}

// Options turns the sizing fields into constructor options.
func (c Config) Options() []Option {
	var opts []Option

	if c.NumBins != 0 {
		opts = append(opts, WithNumBins(c.NumBins))
	}

	if c.MaxBinSize != 0 {
		opts = append(opts, WithMaxBinSize(c.MaxBinSize))
	}

	return opts
}

// Validate checks that bins can be built from c.
func (c Config) Validate() error {
	_, err := resolveNumBins(c.MinValue, c.MaxValue, newOptions(c.Options()))

	return err
}

// ConfigFromEnv reads a Config from the environment:
//
//	<prefix>MIN_VALUE     required
//	<prefix>MAX_VALUE     required
//	<prefix>NUM_BINS      optional
//	<prefix>MAX_BIN_SIZE  optional
//
// Every bad or missing variable is reported, not just the first.
func ConfigFromEnv(prefix string) (Config, error) {
	var errs errors.Collection

	minValue, err := envutil.Float64(prefix + "MIN_VALUE").Value()
	errs.Add(err)

	maxValue, err := envutil.Float64(prefix + "MAX_VALUE").Value()
	errs.Add(err)

	numBins, err := envutil.Int[int](prefix+"NUM_BINS", envutil.Default(0)).Value()
	errs.Add(err)

	maxBinSize, err := envutil.Float64(prefix+"MAX_BIN_SIZE", envutil.Default(0.0)).Value()
	errs.Add(err)

	if errs.HasError() {
		return Config{}, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, errs.GetError())
	}

	return Config{
		MinValue:   minValue,
		MaxValue:   maxValue,
		NumBins:    numBins,
		MaxBinSize: maxBinSize,
	}, nil
}

// LoadConfig reads a Config from a .yaml, .yml or .json file.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	bts, err := os.ReadFile(path) // #nosec G304 -- path is the intended file to load
	if err != nil {
		return cfg, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bts, &cfg)
	case ".json":
		err = json.Unmarshal(bts, &cfg)
	default:
		return cfg, fmt.Errorf("%w: unknown config file type %q", errors.ErrInvalidConfig, filepath.Base(path))
	}

	if err != nil {
		return Config{}, fmt.Errorf("%w: parsing %s: %w", errors.ErrInvalidConfig, path, err)
	}

	return cfg, nil
}

// NewFromConfig validates cfg and builds an equal-width container from it.
// Extra options are applied after the ones derived from cfg.
func NewFromConfig[K any](ctx context.Context, cfg Config, opts ...Option) (*BinnedKeys[K], error) {
	if err := validate.Validate(ctx, cfg); err != nil {
		return nil, err
	}

	return NewEqualWidthKeys[K](cfg.MinValue, cfg.MaxValue, append(cfg.Options(), opts...)...)
}
