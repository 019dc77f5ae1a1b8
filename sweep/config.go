// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"path/filepath"
	"runtime"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables read by Load, e.g.
// CCSWEEP_TRIALS.
const EnvPrefix = "CCSWEEP"

// Config configures a sweep. Empty directories are derived from
// SourceDir by Resolve.
type Config struct {
	// SourceDir is the engine checkout; cmake is run against it.
	SourceDir     string `mapstructure:"source_dir" validate:"required"`
	BuildDir      string `mapstructure:"build_dir"`
	BinDir        string `mapstructure:"bin_dir"`
	ResultDir     string `mapstructure:"result_dir"`
	PlotDir       string `mapstructure:"plot_dir"`
	CompileLogDir string `mapstructure:"compile_log_dir"`

	Trials  int `mapstructure:"trials" validate:"gte=1"`
	Seconds int `mapstructure:"seconds" validate:"gte=1"`
	Jobs    int `mapstructure:"jobs" validate:"gte=1"`

	CMake string `mapstructure:"cmake" validate:"required"`
	Make  string `mapstructure:"make" validate:"required"`

	SkipExisting bool   `mapstructure:"skip_existing"`
	DryRun       bool   `mapstructure:"dry_run"`
	LogLevel     string `mapstructure:"log_level" validate:"required,log_level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		SourceDir: ".",
		Trials:    5,
		Seconds:   10,
		Jobs:      runtime.NumCPU(),
		CMake:     "cmake",
		Make:      "make",
		LogLevel:  "info",
	}
}

// Flags defines a flag for every Config field on fs, defaulting to def.
// The flag names are the config keys with "_" replaced by "-".
func Flags(fs *pflag.FlagSet, def Config) {
	fs.String("source-dir", def.SourceDir, "engine source `dir`ectory")
	fs.String("build-dir", def.BuildDir, "cmake build `dir`ectory (default <source-dir>/build)")
	fs.String("bin-dir", def.BinDir, "`dir`ectory of compiled binaries (default <build-dir>/bin)")
	fs.String("result-dir", def.ResultDir, "`dir`ectory for trial logs (default <bin-dir>/res)")
	fs.String("plot-dir", def.PlotDir, "`dir`ectory for figures (default <result-dir>/plots)")
	fs.String("compile-log-dir", def.CompileLogDir, "`dir`ectory for compiler output (default <build-dir>/log)")
	fs.Int("trials", def.Trials, "run each experiment `n` times")
	fs.Int("seconds", def.Seconds, "run each trial for `n` seconds")
	fs.Int("jobs", def.Jobs, "pass -j`n` to make")
	fs.String("cmake", def.CMake, "cmake `program`")
	fs.String("make", def.Make, "make `program`")
	fs.Bool("skip-existing", def.SkipExisting, "skip trials whose log is already complete")
	fs.Bool("dry-run", def.DryRun, "log commands instead of running them")
	fs.String("log-level", def.LogLevel, "log `level` (debug, info, warn, error)")
}

// Load reads a Config from, in increasing precedence, def, the YAML
// file at path (if path is not empty), CCSWEEP_* environment variables
// and the flags in fs that were set. fs may be nil. The result is
// resolved and validated.
func Load(path string, fs *pflag.FlagSet, def Config) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("source_dir", def.SourceDir)
	v.SetDefault("build_dir", def.BuildDir)
	v.SetDefault("bin_dir", def.BinDir)
	v.SetDefault("result_dir", def.ResultDir)
	v.SetDefault("plot_dir", def.PlotDir)
	v.SetDefault("compile_log_dir", def.CompileLogDir)
	v.SetDefault("trials", def.Trials)
	v.SetDefault("seconds", def.Seconds)
	v.SetDefault("jobs", def.Jobs)
	v.SetDefault("cmake", def.CMake)
	v.SetDefault("make", def.Make)
	v.SetDefault("skip_existing", def.SkipExisting)
	v.SetDefault("dry_run", def.DryRun)
	v.SetDefault("log_level", def.LogLevel)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config %s", path)
		}
	}

	if fs != nil {
		var err error
		fs.VisitAll(func(f *pflag.Flag) {
			if err == nil && f.Changed {
				err = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
			}
		})
		if err != nil {
			return Config{}, errors.Wrap(err, "binding flags")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := c.Resolve(); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Resolve makes every directory absolute, deriving unset ones from
// their parent: BuildDir and CompileLogDir from SourceDir, BinDir from
// BuildDir, ResultDir from BinDir and PlotDir from ResultDir.
func (c *Config) Resolve() error {
	abs := func(p *string, parent, elem string) error {
		if *p == "" {
			*p = filepath.Join(parent, elem)
		}
		a, err := filepath.Abs(*p)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", *p)
		}
		*p = a
		return nil
	}
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	for _, d := range []struct {
		p      *string
		parent *string
		elem   string
	}{
		{&c.SourceDir, &c.SourceDir, ""},
		{&c.BuildDir, &c.SourceDir, "build"},
		{&c.CompileLogDir, &c.BuildDir, "log"},
		{&c.BinDir, &c.BuildDir, "bin"},
		{&c.ResultDir, &c.BinDir, "res"},
		{&c.PlotDir, &c.ResultDir, "plots"},
	} {
		if err := abs(d.p, *d.parent, d.elem); err != nil {
			return err
		}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("log_level", validateLogLevel); err != nil {
		panic(err)
	}
	return v
}

func validateLogLevel(fl validator.FieldLevel) bool {
	_, err := logrus.ParseLevel(fl.Field().String())
	return err == nil
}

// Validate checks c field by field.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// Level returns the parsed LogLevel.
func (c *Config) Level() logrus.Level {
	l, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}
