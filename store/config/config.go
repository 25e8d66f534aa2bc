// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config reads TOML or YAML configuration for arenas and logging.
// Unset keys fall back to the Default constants.
//
//	[arena]
//	ordered = false
//	intern = true
//	intern_cache_size = 4096
//
//	[log]
//	level = "info"
//	format = "text"
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	goerrors "gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v3"

	"github.com/dolthub/sabot/store/arena"
)

const (
	DefaultOrdered         = false
	DefaultIntern          = true
	DefaultInternCacheSize = arena.DefaultInternCacheSize
	DefaultLogLevel        = "info"
	DefaultLogFormat       = LogFormatText
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var (
	ErrUnknownKey   = goerrors.NewKind("unknown config key %s")
	ErrBadLogFormat = goerrors.NewKind("unknown log format %q, expected text or json")
	ErrBadCacheSize = goerrors.NewKind("intern_cache_size must be positive, found %d")
)

type ArenaFileConfig struct {
	Ordered         *bool `toml:"ordered" yaml:"ordered,omitempty"`
	Intern          *bool `toml:"intern" yaml:"intern,omitempty"`
	InternCacheSize *int  `toml:"intern_cache_size" yaml:"intern_cache_size,omitempty"`
}

type LogFileConfig struct {
	Level  *string `toml:"level" yaml:"level,omitempty"`
	Format *string `toml:"format" yaml:"format,omitempty"`
}

// Config is the decoded configuration file. Fields left nil were not set.
type Config struct {
	Arena ArenaFileConfig `toml:"arena" yaml:"arena"`
	Log   LogFileConfig   `toml:"log" yaml:"log"`
}

// Default returns a config with nothing set.
func Default() *Config {
	return &Config{}
}

// Parse decodes TOML |data|, rejecting keys it does not know.
func Parse(data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, ErrUnknownKey.New(undecoded[0].String())
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseYAML decodes YAML |data|, rejecting keys it does not know.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		if strings.Contains(err.Error(), "not found in type") {
			return nil, ErrUnknownKey.Wrap(err, "in yaml document")
		}
		return nil, err
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the config file at |path|. Files ending in .yaml or .yml are
// YAML, everything else is TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file '%s'", path)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = ParseYAML(data)
	default:
		cfg, err = Parse(string(data))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file '%s'", path)
	}
	return cfg, nil
}

func (cfg *Config) finish() error {
	if cfg.Log.Level != nil {
		lvl := strings.ToLower(*cfg.Log.Level)
		cfg.Log.Level = &lvl
	}
	return cfg.validate()
}

func (cfg *Config) validate() error {
	if sz := cfg.InternCacheSize(); sz <= 0 {
		return ErrBadCacheSize.New(sz)
	}
	if f := cfg.LogFormat(); f != LogFormatText && f != LogFormatJSON {
		return ErrBadLogFormat.New(f)
	}
	_, err := logrus.ParseLevel(cfg.LogLevel())
	return err
}

// Ordered reports whether arenas declare value-ordered proposals.
func (cfg *Config) Ordered() bool {
	if cfg.Arena.Ordered == nil {
		return DefaultOrdered
	}
	return *cfg.Arena.Ordered
}

// Intern reports whether arenas deduplicate identical notes.
func (cfg *Config) Intern() bool {
	if cfg.Arena.Intern == nil {
		return DefaultIntern
	}
	return *cfg.Arena.Intern
}

func (cfg *Config) InternCacheSize() int {
	if cfg.Arena.InternCacheSize == nil {
		return DefaultInternCacheSize
	}
	return *cfg.Arena.InternCacheSize
}

func (cfg *Config) LogLevel() string {
	if cfg.Log.Level == nil {
		return DefaultLogLevel
	}
	return *cfg.Log.Level
}

func (cfg *Config) LogFormat() string {
	if cfg.Log.Format == nil {
		return DefaultLogFormat
	}
	return *cfg.Log.Format
}

// Logger returns a new logger at the configured level and format.
func (cfg *Config) Logger() (*logrus.Logger, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	lvl, err := logrus.ParseLevel(cfg.LogLevel())
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetLevel(lvl)
	if cfg.LogFormat() == LogFormatJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return log, nil
}

// ArenaConfig returns the arena settings, logging to |log|.
func (cfg *Config) ArenaConfig(log *logrus.Logger) arena.Config {
	return arena.Config{
		Ordered:         cfg.Ordered(),
		Intern:          cfg.Intern(),
		InternCacheSize: cfg.InternCacheSize(),
		Logger:          log,
	}
}

// NewArena returns an empty arena with the configured settings and logger.
func (cfg *Config) NewArena() (*arena.MemArena, error) {
	log, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	return arena.New(cfg.ArenaConfig(log))
}
