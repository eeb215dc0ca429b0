// Package config loads the settings shared by the step programs.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"zappem.net/pub/math/steps/logging"
	"zappem.net/pub/math/steps/simplify"
	"zappem.net/pub/math/steps/solve"
)

// EnvLogLevel overrides the configured log level when set.
const EnvLogLevel = "STEPS_LOG_LEVEL"

// Config holds the program settings.
type Config struct {
	MaxSteps      int            `yaml:"max_steps"`
	LaTeX         bool           `yaml:"latex"`
	KeepPlusMinus bool           `yaml:"keep_plus_minus"`
	Verify        bool           `yaml:"verify"`
	Log           logging.Config `yaml:"log"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		MaxSteps: simplify.DefaultMaxSteps,
		Log:      logging.Config{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file name from fs over the defaults. A missing
// file is not an error. Unknown keys are.
func Load(fs billy.Filesystem, name string) (Config, error) {
	conf := Default()
	data, err := util.ReadFile(fs, name)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return conf, fmt.Errorf("read %q: %w", name, err)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&conf); err != nil && !errors.Is(err, io.EOF) {
			return conf, fmt.Errorf("decode %q: %w", name, err)
		}
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		conf.Log.Level = lvl
	}
	if conf.MaxSteps <= 0 {
		return conf, fmt.Errorf("max_steps must be positive, got %d", conf.MaxSteps)
	}
	return conf, nil
}

// Simplify returns the stepper options described by c.
func (c Config) Simplify(log *slog.Logger) simplify.Options {
	return simplify.Options{MaxSteps: c.MaxSteps, KeepPlusMinus: c.KeepPlusMinus, Verify: c.Verify, Logger: log}
}

// Solve returns the solver options described by c.
func (c Config) Solve(log *slog.Logger) solve.Options {
	return solve.Options{MaxSteps: c.MaxSteps, KeepPlusMinus: c.KeepPlusMinus, Verify: c.Verify, Logger: log}
}
