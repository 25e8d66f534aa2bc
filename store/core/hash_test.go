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

package core_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/sabot/store/core"
	"github.com/dolthub/sabot/store/sabot"
)

func TestStoredHash(t *testing.T) {
	a := newArena(t)
	v := tuple(t, a, ints(1, 2, 3)...)

	_, ok := v.TryGetStoredHash()
	assert.False(t, ok)
	_, ok = v.TryGetQuickHash()
	assert.False(t, ok)

	require.True(t, v.TrySetStoredHash(42))
	h, ok := v.TryGetStoredHash()
	require.True(t, ok)
	assert.Equal(t, uint64(42), h)

	// the first stored hash sticks
	assert.True(t, v.TrySetStoredHash(7))
	h, ok = v.TryGetStoredHash()
	require.True(t, ok)
	assert.Equal(t, uint64(42), h)

	h, ok = v.TryGetQuickHash()
	require.True(t, ok)
	assert.Equal(t, uint64(42), h)
}

func TestStoredHashRejected(t *testing.T) {
	a := newArena(t)

	v := tuple(t, a, ints(1, 2, 3)...)
	ok, err := v.TryTruncateTuple()
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, v.TrySetStoredHash(1))
	_, ok = v.TryGetStoredHash()
	assert.False(t, ok)

	i := core.NewInt64(5)
	assert.False(t, i.TrySetStoredHash(1))
	_, ok = i.TryGetStoredHash()
	assert.False(t, ok)

	s := fromState(t, long("s"), a)
	assert.False(t, s.TrySetStoredHash(1))
}

func TestTruncateDropsStoredHash(t *testing.T) {
	a := newArena(t)
	v := tuple(t, a, ints(1, 2, 3)...)
	_, err := v.Hash(a)
	require.NoError(t, err)
	_, ok := v.TryGetStoredHash()
	require.True(t, ok)

	ok, err = v.TryTruncateTuple()
	require.NoError(t, err)
	require.True(t, ok)
	_, ok = v.TryGetStoredHash()
	assert.False(t, ok)
}

func TestHashMemoizes(t *testing.T) {
	a := newArena(t)
	v := fromState(t, sabot.NewTuple(sabot.NewStr("a"), long("b")), a)

	h, err := v.Hash(a)
	require.NoError(t, err)
	stored, ok := v.TryGetStoredHash()
	require.True(t, ok)
	assert.Equal(t, h, stored)

	again, err := v.Hash(nil)
	require.NoError(t, err)
	assert.Equal(t, h, again)
}

func TestHashQuick(t *testing.T) {
	vals := []core.Value{
		core.NewInt8(1),
		core.NewInt64(1),
		core.NewUint64(1),
		core.NewBool(true),
		core.NewUUID(uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")),
		core.Void(),
		core.Tombstone(),
	}
	seen := make(map[uint64]int)
	for i, v := range vals {
		h, ok := v.TryGetQuickHash()
		require.True(t, ok, "%s", v)
		if j, dup := seen[h]; dup {
			t.Errorf("%s and %s hash equal", vals[j], v)
		}
		seen[h] = i
	}
}

func TestHashStructural(t *testing.T) {
	la, ra := newArena(t), newArena(t)

	emptyInts, err := sabot.NewSet(sabot.Int64Type)
	require.NoError(t, err)
	emptyStrs, err := sabot.NewSet(sabot.StrType)
	require.NoError(t, err)
	full, err := sabot.NewVector(sabot.StrType, sabot.NewStr("x"), long("y"))
	require.NoError(t, err)

	states := []sabot.State{
		sabot.NewStr("short"),
		long("z"),
		sabot.NewBlob([]byte{1, 2, 3}),
		sabot.NewTuple(ints(1, 2)...),
		sabot.NewTuple(ints(2, 1)...),
		emptyInts,
		emptyStrs,
		full,
		sabot.NewFree(sabot.Int64Type),
		sabot.NewFree(sabot.StrType),
		sabot.NewRecord(sabot.RecordField{Name: "k", Val: sabot.NewInt64(1)}),
		sabot.NewRecord(sabot.RecordField{Name: "j", Val: sabot.NewInt64(1)}),
	}

	hashes := make([]uint64, len(states))
	for i, s := range states {
		l := fromState(t, s, la)
		r := fromState(t, s, ra)
		lh, err := l.Hash(la)
		require.NoError(t, err)
		rh, err := r.Hash(ra)
		require.NoError(t, err)
		assert.Equal(t, lh, rh, "%s", s)
		hashes[i] = lh
	}

	for i := range hashes {
		for j := i + 1; j < len(hashes); j++ {
			assert.NotEqual(t, hashes[i], hashes[j], "%s vs %s", states[i], states[j])
		}
	}
}

func TestHashDirectMatchesIndirect(t *testing.T) {
	a := newArena(t)
	direct, err := core.NewStr("abc", a)
	require.NoError(t, err)
	require.True(t, direct.IsDirect())

	// a str note built by hand is indirect whatever its length
	off, err := a.Propose(core.NewStrNote([]byte("abc")))
	require.NoError(t, err)
	indirect, err := core.FromOffset(core.StrTag, off, a)
	require.NoError(t, err)
	require.True(t, indirect.IsIndirect())

	dh, err := direct.Hash(a)
	require.NoError(t, err)
	ih, err := indirect.Hash(a)
	require.NoError(t, err)
	assert.Equal(t, dh, ih)
	assert.Equal(t, sabot.Eq, mustCompare(t, direct, a, indirect, a))
}
