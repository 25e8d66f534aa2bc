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

package sabot

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarAccessors(t *testing.T) {
	i, err := NewInt8(-3).AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(-3), i)

	u, err := NewUint16(math.MaxUint16).AsUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint16), u)

	f, err := NewFloat(1.5).AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	b, err := NewBool(true).AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	dur, err := NewDuration(time.Second).AsDuration()
	require.NoError(t, err)
	assert.Equal(t, time.Second, dur)

	now := time.Unix(1700000000, 42).UTC()
	tp, err := NewTimePoint(now).AsTimePoint()
	require.NoError(t, err)
	assert.True(t, now.Equal(tp))

	id := uuid.New()
	got, err := NewUUID(id).AsUUID()
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = NewStr("x").AsInt()
	assert.True(t, ErrBadType.Is(err))
	_, err = NewInt64(1).AsStr()
	assert.True(t, ErrBadType.Is(err))
}

func TestScalarFromBits(t *testing.T) {
	for _, s := range []State{
		NewInt8(-1), NewInt16(-300), NewInt32(math.MinInt32), NewInt64(math.MinInt64),
		NewUint8(200), NewUint32(math.MaxUint32), NewChar('z'), NewBool(true),
		NewFloat(-2.25), NewDouble(math.Pi), NewDuration(-time.Minute),
	} {
		bits, err := s.Bits()
		require.NoError(t, err)
		back, err := ScalarFromBits(s.Kind(), bits)
		require.NoError(t, err)
		assert.Equal(t, Eq, OrderStates(s, back), s.String())
	}

	// a little-endian payload zero-extended to 64 bits still reads as -1
	s, err := ScalarFromBits(Int8Kind, 0xff)
	require.NoError(t, err)
	i, _ := s.AsInt()
	assert.Equal(t, int64(-1), i)

	_, err = ScalarFromBits(StrKind, 0)
	assert.True(t, ErrBadType.Is(err))
	_, err = NewUUID(uuid.Nil).Bits()
	assert.True(t, ErrBadType.Is(err))
}

func TestComposites(t *testing.T) {
	t.Run("set sorts and dedupes", func(t *testing.T) {
		s, err := NewSet(Int64Type, NewInt64(3), NewInt64(1), NewInt64(3), NewInt64(2))
		require.NoError(t, err)
		assert.Equal(t, 3, s.ElemCount())
		assert.Equal(t, "{1, 2, 3}", s.String())
	})
	t.Run("set rejects mixed types", func(t *testing.T) {
		_, err := NewSet(Int64Type, NewStr("a"))
		assert.True(t, ErrBadType.Is(err))
	})
	t.Run("map sorts by key and replaces duplicates", func(t *testing.T) {
		m, err := NewMap(StrType, Int64Type,
			MapEntry{NewStr("b"), NewInt64(2)},
			MapEntry{NewStr("a"), NewInt64(1)},
			MapEntry{NewStr("b"), NewInt64(20)})
		require.NoError(t, err)
		assert.Equal(t, 2, m.ElemCount())
		k, v, err := m.Pair(1)
		require.NoError(t, err)
		assert.Equal(t, `"b"`, k.String())
		assert.Equal(t, "20", v.String())
		_, _, err = m.Pair(2)
		assert.True(t, ErrIndexOutOfRange.Is(err))
	})
	t.Run("record fields", func(t *testing.T) {
		r := NewRecord(RecordField{"a", NewInt64(1)}, RecordField{"b", NewStr("x")})
		name, v, err := r.Field(1)
		require.NoError(t, err)
		assert.Equal(t, "b", name)
		assert.Equal(t, `"x"`, v.String())
		assert.Equal(t, `<{a: 1, b: "x"}>`, r.String())
	})
	t.Run("optionals", func(t *testing.T) {
		e := EmptyOpt(Int64Type)
		assert.Equal(t, 0, e.ElemCount())
		assert.Equal(t, "unknown int64", e.String())
		k := NewOpt(NewInt64(4))
		assert.Equal(t, "4?", k.String())
		assert.True(t, e.Type().Equals(k.Type()))
	})
	t.Run("elem out of range", func(t *testing.T) {
		_, err := NewTuple(NewInt64(1)).Elem(1)
		assert.True(t, ErrIndexOutOfRange.Is(err))
		_, err = NewInt64(1).Elem(0)
		assert.True(t, ErrBadType.Is(err))
	})
}

func TestDefault(t *testing.T) {
	typ := TupleType(Int64Type, StrType, OptType(BoolType), RecordType(Field{"a", DoubleType}))
	s := Default(typ)
	assert.True(t, s.Type().Equals(typ))
	assert.Equal(t, `(0, "", unknown bool, <{a: 0}>)`, s.String())
}

func TestFormat(t *testing.T) {
	v, err := NewVector(BlobType, NewBlob([]byte{0xca, 0xfe}))
	require.NoError(t, err)
	assert.Equal(t, "[0xcafe]", v.String())
	assert.Equal(t, "desc(7u)", NewDesc(NewUint8(7)).String())
	assert.Equal(t, "free<int64>", NewFree(Int64Type).String())
	assert.Equal(t, "'c'", NewChar('c').String())
	assert.Equal(t, "void", NewVoid().String())
}
