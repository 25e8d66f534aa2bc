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

package arena

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/sabot/store/core"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.Labels{"arena": "test"})
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg))

	a := newTestArena(t, Config{Intern: true, Metrics: m})

	off, err := a.Propose(core.NewBlobNote([]byte{1, 2, 3}))
	require.NoError(t, err)
	_, err = a.Propose(core.NewBlobNote([]byte{1, 2, 3}))
	require.NoError(t, err)
	_, err = a.Propose(core.NewBlobNote([]byte{4}))
	require.NoError(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.gaugeNotes))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.gaugeBytes))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.cntProposals))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cntInterned))

	_, err = a.Pin(off, 0)
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.gaugePins))
	a.Unpin(off)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.gaugePins))

	require.NoError(t, a.MarkUnreferenced(off))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.gaugeUnreferenced))

	n, err := a.Reclaim()
	require.NoError(t, err)
	require.Equal(t, 1, n)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.gaugeNotes))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.gaugeUnreferenced))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cntReclaimed))

	assert.Equal(t, 7, testutil.CollectAndCount(reg))
}
