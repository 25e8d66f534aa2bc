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

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/sabot/store/arena"
	"github.com/dolthub/sabot/store/core"
	"github.com/dolthub/sabot/store/sabot"
)

// writeImage saves an arena holding the tuple (1, "xxx...") and one
// unreferenced str, returning the image path and the tuple's offset.
func writeImage(t *testing.T) (string, core.Offset) {
	a, err := arena.New(arena.Config{})
	require.NoError(t, err)

	root, err := core.FromState(sabot.NewTuple(sabot.NewInt64(1), sabot.NewStr(strings.Repeat("x", 30))), a)
	require.NoError(t, err)
	_, err = core.NewStr(strings.Repeat("y", 30), a)
	require.NoError(t, err)

	marked, err := a.Sweep(root)
	require.NoError(t, err)
	require.Equal(t, 1, marked)

	path := filepath.Join(t.TempDir(), "arena.img")
	require.NoError(t, arena.SaveFile(a, path))
	return path, root.Offset()
}

func TestStats(t *testing.T) {
	path, _ := writeImage(t)
	var buf bytes.Buffer
	require.NoError(t, runStats(&buf, []string{path}, arena.Config{}))
	out := buf.String()
	assert.Contains(t, out, "3 notes")
	assert.Contains(t, out, "1 unreferenced")
	assert.Contains(t, out, "*str")
	assert.Contains(t, out, "*tuple")
	assert.NotContains(t, out, path)

	other, _ := writeImage(t)
	buf.Reset()
	require.NoError(t, runStats(&buf, []string{path, other}, arena.Config{}))
	out = buf.String()
	require.Contains(t, out, path+":")
	require.Contains(t, out, other+":")
	assert.Less(t, strings.Index(out, path+":"), strings.Index(out, other+":"))
	assert.Equal(t, 2, strings.Count(out, "3 notes"))
}

func TestList(t *testing.T) {
	path, root := writeImage(t)

	var buf bytes.Buffer
	require.NoError(t, runList(&buf, path, arena.Config{}, 0, false))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], fmt.Sprintf("%d\t*tuple", root)), lines[1])

	buf.Reset()
	require.NoError(t, runList(&buf, path, arena.Config{}, 1, false))
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 1)

	buf.Reset()
	require.NoError(t, runList(&buf, path, arena.Config{}, 0, true))
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "unreferenced")
}

func TestShow(t *testing.T) {
	path, root := writeImage(t)

	var buf bytes.Buffer
	require.NoError(t, runShow(&buf, path, arena.Config{}, root))
	assert.Equal(t, fmt.Sprintf("(int64, str)\n(1, %q)\n", strings.Repeat("x", 30)), buf.String())

	err := runShow(&buf, path, arena.Config{}, 12345)
	assert.True(t, core.ErrNotFound.Is(err))
}

func TestCompact(t *testing.T) {
	path, _ := writeImage(t)
	out := filepath.Join(filepath.Dir(path), "compact.img")

	var buf bytes.Buffer
	require.NoError(t, runCompact(&buf, path, out, arena.Config{}))
	assert.Contains(t, buf.String(), "after:  2 notes")

	a, err := arena.LoadFile(out, arena.Config{})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 0, a.Stats().Unreferenced)

	// the tuple still resolves its str after renumbering
	var last core.Offset
	a.Ascend(func(off core.Offset, n *core.Note) bool {
		last = off
		return true
	})
	buf.Reset()
	require.NoError(t, runShow(&buf, out, arena.Config{}, last))
	assert.Contains(t, buf.String(), strings.Repeat("x", 30))
}

func TestMissingImage(t *testing.T) {
	var buf bytes.Buffer
	missing := filepath.Join(t.TempDir(), "none.img")
	err := runStats(&buf, []string{missing}, arena.Config{})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), missing+": "), err.Error())
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
