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
	"github.com/google/btree"

	"github.com/dolthub/sabot/store/core"
)

// MarkUnreferenced records the note at |off| as dead. The mark is never
// cleared; Reclaim drops marked notes.
func (a *MemArena) MarkUnreferenced(off core.Offset) error {
	if !a.notes.Has(entry{off: off}) {
		return core.ErrNotFound.New(off)
	}
	a.dead[off] = struct{}{}
	a.observe()
	return nil
}

// Sweep marks every note that is not reachable from |roots| as
// unreferenced and returns the number of notes newly marked.
func (a *MemArena) Sweep(roots ...core.Value) (int, error) {
	reachable := make(map[core.Offset]struct{})
	var stack []core.Offset
	for _, r := range roots {
		if r.IsIndirect() {
			stack = append(stack, r.Offset())
		}
	}

	push := func(off core.Offset) error {
		stack = append(stack, off)
		return nil
	}
	for len(stack) > 0 {
		off := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := reachable[off]; ok {
			continue
		}
		e, ok := a.notes.Get(entry{off: off})
		if !ok {
			return 0, core.ErrNotFound.New(off)
		}
		reachable[off] = struct{}{}
		if err := e.note.ForEachContainedOffset(push); err != nil {
			return 0, err
		}
	}

	marked := 0
	a.notes.Ascend(func(e entry) bool {
		if _, ok := reachable[e.off]; ok {
			return true
		}
		if _, ok := a.dead[e.off]; !ok {
			a.dead[e.off] = struct{}{}
			marked++
		}
		return true
	})
	a.log.Debugf("arena: sweep reached %d notes, marked %d unreferenced", len(reachable), marked)
	a.observe()
	return marked, nil
}

// Reclaim drops every unreferenced note and returns how many were
// dropped. It fails with ErrPinned while any note is pinned.
func (a *MemArena) Reclaim() (int, error) {
	if a.npins > 0 {
		return 0, ErrPinned.New(a.npins)
	}

	dropped := 0
	var freed uint64
	for off := range a.dead {
		e, ok := a.notes.Delete(entry{off: off})
		if !ok {
			continue
		}
		dropped++
		freed += uint64(e.note.Size())
		if a.interned != nil {
			ik := internKeyOf(e.note)
			if cur, ok := a.interned.Peek(ik); ok && cur == off {
				a.interned.Remove(ik)
			}
		}
	}
	a.bytes -= freed
	a.dead = make(map[core.Offset]struct{})
	a.log.Debugf("arena: reclaimed %d notes, %d bytes", dropped, freed)
	if a.cfg.Metrics != nil {
		a.cfg.Metrics.cntReclaimed.Add(float64(dropped))
	}
	a.observe()
	return dropped, nil
}

// Compact reassigns offsets densely in their current order and rewrites
// the offsets held inside notes. Values held outside the arena must be
// passed through the returned RemapFunc. Relative order is preserved, so
// an ordered arena stays ordered.
func (a *MemArena) Compact() (core.RemapFunc, error) {
	if a.npins > 0 {
		return nil, ErrPinned.New(a.npins)
	}

	moved := make(map[core.Offset]core.Offset, a.notes.Len())
	old := a.notes
	a.notes = btree.NewG[entry](btreeDegree, entryLess)
	a.next = 0
	a.bytes = 0
	old.Ascend(func(e entry) bool {
		moved[e.off] = a.next
		a.insert(a.next, e.note)
		return true
	})

	remap := func(off core.Offset) core.Offset {
		if to, ok := moved[off]; ok {
			return to
		}
		return off
	}

	var err error
	a.notes.Ascend(func(e entry) bool {
		err = e.note.Remap(remap)
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	dead := make(map[core.Offset]struct{}, len(a.dead))
	for off := range a.dead {
		dead[remap(off)] = struct{}{}
	}
	a.dead = dead

	if a.interned != nil {
		a.interned.Purge()
		a.notes.Ascend(func(e entry) bool {
			a.interned.Add(internKeyOf(e.note), e.off)
			return true
		})
	}
	a.log.Debugf("arena: compacted %d notes into %d bytes", len(moved), a.next)
	a.observe()
	return remap, nil
}
