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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/sabot/store/core"
	"github.com/dolthub/sabot/store/d"
)

func TestNoteViews(t *testing.T) {
	str := core.NewStrNote([]byte("hello"))
	chars, err := str.AsChars()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), chars)
	n, err := str.ElemCount()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 6, str.Size())

	_, err = str.AsBytes()
	assert.True(t, core.ErrBadType.Is(err))
	_, err = str.AsValueArray()
	assert.True(t, core.ErrBadType.Is(err))

	blob := core.NewBlobNote([]byte{1, 2})
	b, err := blob.AsBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)
	_, err = blob.AsChars()
	assert.True(t, core.ErrBadType.Is(err))

	bad := core.NewNote(core.StrTag, core.NoteElems, []byte("x"))
	_, err = bad.AsChars()
	assert.True(t, core.ErrCorrupt.Is(err))

	short := core.NewNote(core.TupleTag, core.NoteElems, make([]byte, core.ValueSize+1))
	_, err = short.ElemCount()
	assert.True(t, core.ErrCorrupt.Is(err))
}

func TestNoteArrays(t *testing.T) {
	tup := core.NewArrayNote(core.TupleTag, core.NoteElems, core.NewInt64(1), core.NewInt64(2))
	arr, err := tup.AsValueArray()
	require.NoError(t, err)
	require.Equal(t, 2, arr.Len())
	assert.Equal(t, core.NewInt64(2), arr.Get(1))
	_, err = tup.AsValuePairArray()
	assert.True(t, core.ErrBadType.Is(err))

	m := core.NewPairNote(core.MapTag, core.NoteElems,
		core.NewInt64(1), core.NewBool(true),
		core.NewInt64(2), core.NewBool(false))
	pairs, err := m.AsValuePairArray()
	require.NoError(t, err)
	require.Equal(t, 2, pairs.Len())
	k, v := pairs.Get(1)
	assert.Equal(t, core.NewInt64(2), k)
	assert.Equal(t, core.NewBool(false), v)
	n, err := m.ElemCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = m.AsValueArray()
	assert.True(t, core.ErrBadType.Is(err))

	err = d.Try(func() {
		core.NewPairNote(core.RecordTag, core.NoteElems, core.NewInt64(1))
	})
	assert.Error(t, err)
}

func TestNoteOffsets(t *testing.T) {
	a := newArena(t)
	s1 := fromState(t, long("a"), a)
	s2 := fromState(t, long("b"), a)

	n := core.NewArrayNote(core.VectorTag, core.NoteElems, s1, core.NewInt64(9), s2)
	var offs []core.Offset
	require.NoError(t, n.ForEachContainedOffset(func(off core.Offset) error {
		offs = append(offs, off)
		return nil
	}))
	assert.Equal(t, []core.Offset{s1.Offset(), s2.Offset()}, offs)

	cp := n.Clone()
	require.NoError(t, cp.Remap(func(off core.Offset) core.Offset { return off + 1000 }))
	arr, err := cp.AsValueArray()
	require.NoError(t, err)
	assert.Equal(t, s1.Offset()+1000, arr.Get(0).Offset())
	assert.Equal(t, core.NewInt64(9), arr.Get(1))
	assert.Equal(t, s2.Offset()+1000, arr.Get(2).Offset())

	// the original is untouched
	orig, err := n.AsValueArray()
	require.NoError(t, err)
	assert.Equal(t, s1.Offset(), orig.Get(0).Offset())
	assert.True(t, n.ContentEqual(n.Clone()))
	assert.False(t, n.ContentEqual(cp))

	flat := core.NewBlobNote([]byte{1})
	assert.NoError(t, flat.ForEachContainedOffset(func(core.Offset) error {
		t.Fatal("flat notes hold no offsets")
		return nil
	}))
}
