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
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports arena activity as prometheus metrics. An arena
// configured with Metrics updates them as it changes, so they are safe to
// scrape while the arena is in use.
type Metrics struct {
	gaugeNotes        prometheus.Gauge
	gaugeBytes        prometheus.Gauge
	gaugePins         prometheus.Gauge
	gaugeUnreferenced prometheus.Gauge
	cntProposals      prometheus.Counter
	cntInterned       prometheus.Counter
	cntReclaimed      prometheus.Counter
}

// NewMetrics returns unregistered metrics carrying |labels|.
func NewMetrics(labels prometheus.Labels) *Metrics {
	return &Metrics{
		gaugeNotes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "arena_notes",
			Help:        "Number of notes held by the arena",
			ConstLabels: labels,
		}),
		gaugeBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "arena_note_bytes",
			Help:        "Total payload bytes of the notes held by the arena",
			ConstLabels: labels,
		}),
		gaugePins: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "arena_pins",
			Help:        "Number of outstanding pins",
			ConstLabels: labels,
		}),
		gaugeUnreferenced: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "arena_unreferenced_notes",
			Help:        "Number of notes marked unreferenced and awaiting reclaim",
			ConstLabels: labels,
		}),
		cntProposals: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "arena_proposals",
			Help:        "Count of proposals stored as new notes",
			ConstLabels: labels,
		}),
		cntInterned: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "arena_interned_proposals",
			Help:        "Count of proposals answered with an existing note",
			ConstLabels: labels,
		}),
		cntReclaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "arena_reclaimed_notes",
			Help:        "Count of notes dropped by reclaim",
			ConstLabels: labels,
		}),
	}
}

// Register adds every metric to |r|.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.gaugeNotes,
		m.gaugeBytes,
		m.gaugePins,
		m.gaugeUnreferenced,
		m.cntProposals,
		m.cntInterned,
		m.cntReclaimed,
	} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) update(s Stats) {
	m.gaugeNotes.Set(float64(s.Notes))
	m.gaugeBytes.Set(float64(s.Bytes))
	m.gaugePins.Set(float64(s.Pins))
	m.gaugeUnreferenced.Set(float64(s.Unreferenced))
}

// observe refreshes the gauges of the arena's metrics, if it has any.
func (a *MemArena) observe() {
	if a.cfg.Metrics != nil {
		a.cfg.Metrics.update(a.Stats())
	}
}
