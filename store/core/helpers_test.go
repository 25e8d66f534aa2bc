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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/sabot/store/arena"
	"github.com/dolthub/sabot/store/core"
	"github.com/dolthub/sabot/store/sabot"
)

func newArena(t *testing.T) *arena.MemArena {
	a, err := arena.New(arena.Config{})
	require.NoError(t, err)
	return a
}

func newOrderedArena(t *testing.T) *arena.MemArena {
	a, err := arena.New(arena.Config{Ordered: true})
	require.NoError(t, err)
	return a
}

func fromState(t *testing.T, s sabot.State, a core.ExtensibleArena) core.Value {
	v, err := core.FromState(s, a)
	require.NoError(t, err)
	return v
}

func tuple(t *testing.T, a core.ExtensibleArena, elems ...sabot.State) core.Value {
	return fromState(t, sabot.NewTuple(elems...), a)
}

func ints(vals ...int64) []sabot.State {
	out := make([]sabot.State, len(vals))
	for i, v := range vals {
		out[i] = sabot.NewInt64(v)
	}
	return out
}

func long(c string) sabot.State {
	return sabot.NewStr(strings.Repeat(c, 40))
}

func requireState(t *testing.T, exp sabot.State, v core.Value, a core.Arena) {
	act, err := v.NewState(a)
	require.NoError(t, err)
	assert.Equal(t, sabot.Eq, sabot.OrderStates(exp, act), "expected %s, found %s", exp, act)
}

func mustCompare(t *testing.T, l core.Value, la core.Arena, r core.Value, ra core.Arena) sabot.Ordering {
	o, err := core.Compare(l, la, r, ra)
	require.NoError(t, err)
	return o
}
