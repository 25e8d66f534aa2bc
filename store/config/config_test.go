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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultOrdered, cfg.Ordered())
	assert.Equal(t, DefaultIntern, cfg.Intern())
	assert.Equal(t, DefaultInternCacheSize, cfg.InternCacheSize())
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel())
	assert.Equal(t, LogFormatText, cfg.LogFormat())

	log, err := cfg.Logger()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	a, err := cfg.NewArena()
	require.NoError(t, err)
	assert.False(t, a.IsOrdered())
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[arena]
ordered = true
intern = false
intern_cache_size = 16

[log]
level = "DEBUG"
format = "json"
`)
	require.NoError(t, err)
	assert.True(t, cfg.Ordered())
	assert.False(t, cfg.Intern())
	assert.Equal(t, 16, cfg.InternCacheSize())
	assert.Equal(t, "debug", cfg.LogLevel())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())

	log, err := cfg.Logger()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	acfg := cfg.ArenaConfig(log)
	assert.True(t, acfg.Ordered)
	assert.False(t, acfg.Intern)
	assert.Equal(t, 16, acfg.InternCacheSize)
	assert.Same(t, log, acfg.Logger)
}

func TestParsePartial(t *testing.T) {
	cfg, err := Parse("[arena]\nordered = true\n")
	require.NoError(t, err)
	assert.True(t, cfg.Ordered())
	assert.Equal(t, DefaultIntern, cfg.Intern())
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind func(error) bool
	}{
		{"unknown key", "[arena]\nsize = 1\n", ErrUnknownKey.Is},
		{"unknown table", "[cache]\nsize = 1\n", ErrUnknownKey.Is},
		{"bad format", "[log]\nformat = \"xml\"\n", ErrBadLogFormat.Is},
		{"bad cache size", "[arena]\nintern_cache_size = 0\n", ErrBadCacheSize.Is},
		{"bad level", "[log]\nlevel = \"loud\"\n", nil},
		{"bad syntax", "[arena\n", nil},
		{"bad type", "[arena]\nordered = \"yes\"\n", nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.data)
			require.Error(t, err)
			if test.kind != nil {
				assert.True(t, test.kind(err), "unexpected error %v", err)
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	cfg, err := ParseYAML([]byte(`
arena:
  ordered: true
  intern_cache_size: 32
log:
  level: Warn
`))
	require.NoError(t, err)
	assert.True(t, cfg.Ordered())
	assert.Equal(t, DefaultIntern, cfg.Intern())
	assert.Equal(t, 32, cfg.InternCacheSize())
	assert.Equal(t, "warn", cfg.LogLevel())

	cfg, err = ParseYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel())

	_, err = ParseYAML([]byte("arena:\n  size: 1\n"))
	assert.True(t, ErrUnknownKey.Is(err), "unexpected error %v", err)

	_, err = ParseYAML([]byte("log:\n  format: xml\n"))
	assert.True(t, ErrBadLogFormat.Is(err), "unexpected error %v", err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sabot.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel())

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[log]\nformat = \"xml\"\n"), 0644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config file")

	yamlPath := filepath.Join(dir, "sabot.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("arena:\n  intern: false\n"), 0644))
	cfg, err = Load(yamlPath)
	require.NoError(t, err)
	assert.False(t, cfg.Intern())
}
