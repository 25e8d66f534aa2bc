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
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSet(t *testing.T, elem Type, vals ...State) State {
	s, err := NewSet(elem, vals...)
	require.NoError(t, err)
	return s
}

func mustVector(t *testing.T, elem Type, vals ...State) State {
	s, err := NewVector(elem, vals...)
	require.NoError(t, err)
	return s
}

func mustMap(t *testing.T, key, val Type, entries ...MapEntry) State {
	s, err := NewMap(key, val, entries...)
	require.NoError(t, err)
	return s
}

func TestOrderStatesTotalOrdering(t *testing.T) {
	// values in ascending order
	ordered := []State{
		NewInt8(-1),
		NewInt8(1),
		NewInt64(math.MinInt64),
		NewInt64(0),
		NewInt64(math.MaxInt64),
		NewUint64(0),
		NewUint64(math.MaxUint64),
		NewBool(false),
		NewBool(true),
		NewDouble(math.Inf(-1)),
		NewDouble(0),
		NewDouble(1.5),
		NewBlob(nil),
		NewBlob([]byte{0}),
		NewStr(""),
		NewStr("a"),
		NewStr("ab"),
		NewStr("b"),
		NewVoid(),
		NewDesc(NewInt64(9)),
		NewDesc(NewInt64(1)),
		EmptyOpt(Int64Type),
		NewOpt(NewInt64(1)),
		mustSet(t, Int64Type),
		mustSet(t, Int64Type, NewInt64(1)),
		mustSet(t, Int64Type, NewInt64(1), NewInt64(2)),
		mustVector(t, Int64Type, NewInt64(2)),
		mustMap(t, StrType, Int64Type, MapEntry{NewStr("a"), NewInt64(1)}),
		mustMap(t, StrType, Int64Type, MapEntry{NewStr("a"), NewInt64(2)}),
		mustMap(t, StrType, Int64Type, MapEntry{NewStr("b"), NewInt64(0)}),
		NewRecord(RecordField{"a", NewInt64(1)}),
		NewTuple(NewInt64(1)),
		NewTuple(NewInt64(1), NewStr("a")),
		NewTuple(NewInt64(1), NewStr("b")),
		NewTuple(NewInt64(2), NewStr("a")),
	}

	for i, a := range ordered {
		for j, b := range ordered {
			exp := FromInt(i - j)
			assert.Equal(t, exp, OrderStates(a, b), "%s vs %s", a, b)
		}
	}

	shuffled := make([]State, len(ordered))
	for i, s := range ordered {
		shuffled[len(ordered)-1-i] = s
	}
	sort.SliceStable(shuffled, func(i, j int) bool {
		return OrderStates(shuffled[i], shuffled[j]) == Lt
	})
	for i := range ordered {
		assert.Equal(t, Eq, OrderStates(ordered[i], shuffled[i]))
	}
}

func TestOrderStatesTuplePrefix(t *testing.T) {
	a := NewTuple(NewInt64(1), NewInt64(2))
	b := NewTuple(NewInt64(1), NewInt64(2), NewInt64(3))
	assert.Equal(t, Lt, OrderStates(a, b))
	assert.Equal(t, Gt, OrderStates(b, a))
}

func TestOrderStatesFreeAndVoid(t *testing.T) {
	assert.Equal(t, Eq, OrderStates(NewFree(Int64Type), NewFree(Int64Type)))
	assert.Equal(t, Eq, OrderStates(NewVoid(), NewVoid()))
	assert.Equal(t, Eq, OrderStates(NewTombstone(), NewTombstone()))
}

func TestOrderStatesNaN(t *testing.T) {
	nan := NewDouble(math.NaN())
	assert.Equal(t, Gt, OrderStates(nan, NewDouble(0)))
	assert.Equal(t, Gt, OrderStates(NewDouble(0), nan))
}

func TestOrdering(t *testing.T) {
	assert.Equal(t, Gt, Lt.Reverse())
	assert.Equal(t, Eq, Eq.Reverse())
	assert.Equal(t, Lt, FromInt(-7))
	assert.Equal(t, "Gt", Gt.String())
}
