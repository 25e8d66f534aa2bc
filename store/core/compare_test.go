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
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/sabot/store/core"
	"github.com/dolthub/sabot/store/sabot"
)

func TestCompareConcrete(t *testing.T) {
	a := newArena(t)

	assert.Equal(t, sabot.Lt, mustCompare(t, core.NewInt64(5), nil, core.NewInt64(7), nil))
	assert.Equal(t, sabot.Gt, mustCompare(t, core.NewInt64(7), nil, core.NewInt64(5), nil))
	assert.Equal(t, sabot.Eq, mustCompare(t, core.NewInt64(5), nil, core.NewInt64(5), nil))

	l := tuple(t, a, sabot.NewInt64(1), sabot.NewStr("a"))
	r := tuple(t, a, sabot.NewInt64(1), sabot.NewStr("b"))
	assert.Equal(t, sabot.Lt, mustCompare(t, l, a, r, a))

	short := tuple(t, a, ints(1, 2)...)
	longer := tuple(t, a, ints(1, 2, 3)...)
	assert.Equal(t, sabot.Lt, mustCompare(t, short, a, longer, a))
	assert.Equal(t, sabot.Gt, mustCompare(t, longer, a, short, a))
}

func TestCompareScalars(t *testing.T) {
	tests := []struct {
		name string
		l, r core.Value
		exp  sabot.Ordering
	}{
		{"int8 sign", core.NewInt8(-1), core.NewInt8(1), sabot.Lt},
		{"int32 sign", core.NewInt32(-100000), core.NewInt32(3), sabot.Lt},
		{"uint8 high bit", core.NewUint8(200), core.NewUint8(100), sabot.Gt},
		{"bool", core.NewBool(false), core.NewBool(true), sabot.Lt},
		{"float", core.NewFloat(-1.5), core.NewFloat(0.5), sabot.Lt},
		{"double", core.NewDouble(2), core.NewDouble(2), sabot.Eq},
		{"duration", core.NewDuration(-5), core.NewDuration(5), sabot.Lt},
		{"char", core.NewChar('b'), core.NewChar('a'), sabot.Gt},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			o, ok, err := core.QuickCompare(test.l, nil, test.r, nil)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, test.exp, o)

			ls, _ := test.l.NewState(nil)
			rs, _ := test.r.NewState(nil)
			assert.Equal(t, sabot.OrderStates(ls, rs), o)
		})
	}
}

func TestCompareStrings(t *testing.T) {
	a := newArena(t)
	vals := []string{"", "a", "ab", strings.Repeat("a", 30), strings.Repeat("a", 30) + "b", "b"}
	for i, l := range vals {
		for j, r := range vals {
			lv, err := core.NewStr(l, a)
			require.NoError(t, err)
			rv, err := core.NewStr(r, a)
			require.NoError(t, err)
			o, ok, err := core.QuickCompare(lv, a, rv, a)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, sabot.FromInt(i-j), o, "%q vs %q", l, r)
		}
	}
}

func TestCompareOrderedArena(t *testing.T) {
	a := newOrderedArena(t)

	// an ordered arena is trusted: offsets decide, not contents
	b := fromState(t, long("b"), a)
	c := fromState(t, long("a"), a)
	o, ok, err := core.QuickCompare(b, a, c, a)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sabot.Lt, o)

	o, ok, err = core.QuickCompare(b, a, b, a)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sabot.Eq, o)

	// different arenas fall back to contents
	other := newOrderedArena(t)
	d := fromState(t, long("a"), other)
	assert.Equal(t, sabot.Gt, mustCompare(t, b, a, d, other))
}

func TestCompareFallback(t *testing.T) {
	a := newArena(t)

	s1, err := sabot.NewSet(sabot.Int64Type, ints(1, 2)...)
	require.NoError(t, err)
	s2, err := sabot.NewSet(sabot.Int64Type, ints(1, 3)...)
	require.NoError(t, err)
	l, r := fromState(t, s1, a), fromState(t, s2, a)

	_, ok, err := core.QuickCompare(l, a, r, a)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, sabot.Lt, mustCompare(t, l, a, r, a))

	d1 := fromState(t, sabot.NewDesc(sabot.NewInt64(1)), a)
	d2 := fromState(t, sabot.NewDesc(sabot.NewInt64(2)), a)
	assert.Equal(t, sabot.Gt, mustCompare(t, d1, a, d2, a))

	// a tuple whose elements defeat the quick path
	t1 := tuple(t, a, sabot.NewInt64(1), s1)
	t2 := tuple(t, a, sabot.NewInt64(1), s2)
	_, ok, err = core.QuickCompare(t1, a, t2, a)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, sabot.Lt, mustCompare(t, t1, a, t2, a))
}

func randomKey(rng *rand.Rand) sabot.State {
	s := make([]byte, rng.Intn(40))
	for i := range s {
		s[i] = byte('a' + rng.Intn(3))
	}
	return sabot.NewTuple(sabot.NewInt64(int64(rng.Intn(3))), sabot.NewStr(string(s)))
}

func TestCompareTotalOrder(t *testing.T) {
	a := newArena(t)
	rng := rand.New(rand.NewSource(0))

	states := make([]sabot.State, 40)
	vals := make([]core.Value, len(states))
	for i := range states {
		states[i] = randomKey(rng)
		vals[i] = fromState(t, states[i], a)
	}

	for i := range vals {
		for j := range vals {
			o := mustCompare(t, vals[i], a, vals[j], a)
			assert.Equal(t, sabot.OrderStates(states[i], states[j]), o)
			assert.Equal(t, o.Reverse(), mustCompare(t, vals[j], a, vals[i], a))
		}
	}

	sorted := append([]core.Value(nil), vals...)
	sort.Slice(sorted, func(i, j int) bool {
		return mustCompare(t, sorted[i], a, sorted[j], a) == sabot.Lt
	})
	for i := 1; i < len(sorted); i++ {
		for j := i; j < len(sorted); j++ {
			assert.NotEqual(t, sabot.Gt, mustCompare(t, sorted[i-1], a, sorted[j], a))
		}
	}
}
