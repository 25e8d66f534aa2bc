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

// Package arena provides MemArena, an in-memory extensible arena for the
// notes behind indirect core values.
package arena

import (
	"fmt"

	"github.com/google/btree"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/sabot/store/core"
)

// ErrPinned is returned by operations that move or drop notes while pins
// are outstanding.
var ErrPinned = errors.NewKind("arena has %d outstanding pins")

const (
	DefaultInternCacheSize = 4096

	btreeDegree = 64

	// noteHeaderSize is the per-note overhead counted into offsets: tag,
	// form and a uint32 size.
	noteHeaderSize = 6
)

// Config controls a MemArena.
type Config struct {
	// Ordered declares that notes of each tag are proposed in ascending
	// value order, which lets values from this arena compare by offset.
	Ordered bool

	// Intern returns the offset of an existing note when an identical
	// note is proposed.
	Intern bool

	// InternCacheSize bounds the number of notes remembered for interning.
	InternCacheSize int

	Logger *logrus.Logger

	// Metrics, if set, is kept current as the arena changes.
	Metrics *Metrics
}

type entry struct {
	off  core.Offset
	note *core.Note
}

func entryLess(a, b entry) bool {
	return a.off < b.off
}

// MemArena keeps notes in a btree keyed by offset. Offsets are cumulative
// byte positions, so they grow with every proposal.
//
// MemArena is not safe for concurrent use.
type MemArena struct {
	cfg   Config
	log   *logrus.Logger
	notes *btree.BTreeG[entry]
	next  core.Offset
	bytes uint64

	pins  map[core.Offset]int
	npins int

	// unreferenced notes, found by Sweep or marked by MarkUnreferenced
	dead map[core.Offset]struct{}

	interned *lru.Cache[internKey, core.Offset]
}

// internKey identifies a note for interning. Notes of different tags or
// forms can hold identical bytes.
type internKey struct {
	tag  core.Tag
	form core.NoteForm
	hash uint64
}

func internKeyOf(n *core.Note) internKey {
	return internKey{tag: n.Tag(), form: n.Form(), hash: n.ContentHash()}
}

var _ core.ExtensibleArena = (*MemArena)(nil)

// New returns an empty arena.
func New(cfg Config) (*MemArena, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	a := &MemArena{
		cfg:   cfg,
		log:   cfg.Logger,
		notes: btree.NewG[entry](btreeDegree, entryLess),
		pins:  make(map[core.Offset]int),
		dead:  make(map[core.Offset]struct{}),
	}
	if cfg.Intern {
		sz := cfg.InternCacheSize
		if sz <= 0 {
			sz = DefaultInternCacheSize
		}
		c, err := lru.New[internKey, core.Offset](sz)
		if err != nil {
			return nil, err
		}
		a.interned = c
	}
	return a, nil
}

func (a *MemArena) Pin(off core.Offset, minSize int) (*core.Note, error) {
	e, ok := a.notes.Get(entry{off: off})
	if !ok {
		return nil, core.ErrNotFound.New(off)
	}
	if e.note.Size() < minSize {
		return nil, core.ErrCorrupt.New(fmt.Sprintf("note at offset %d holds %d bytes, expected at least %d", off, e.note.Size(), minSize))
	}
	a.pins[off]++
	a.npins++
	a.observe()
	return e.note, nil
}

func (a *MemArena) Unpin(off core.Offset) {
	c, ok := a.pins[off]
	if !ok {
		return
	}
	if c <= 1 {
		delete(a.pins, off)
	} else {
		a.pins[off] = c - 1
	}
	a.npins--
	a.observe()
}

func (a *MemArena) IsOrdered() bool {
	return a.cfg.Ordered
}

func (a *MemArena) IsUnreferenced(off core.Offset) bool {
	_, ok := a.dead[off]
	return ok
}

// Propose stores a copy of |n|. With interning enabled, a live note with
// identical tag, form and content is reused.
func (a *MemArena) Propose(n *core.Note) (core.Offset, error) {
	if !n.Tag().IsIndirect() {
		return 0, core.ErrBadType.New("an indirect tag", n.Tag())
	}
	if _, err := n.ElemCount(); err != nil {
		return 0, err
	}

	var ik internKey
	if a.interned != nil {
		ik = internKeyOf(n)
		if off, ok := a.interned.Get(ik); ok {
			if e, ok := a.notes.Get(entry{off: off}); ok && sameNote(e.note, n) && !a.IsUnreferenced(off) {
				a.log.Debugf("arena: reusing %s at offset %d", n, off)
				if a.cfg.Metrics != nil {
					a.cfg.Metrics.cntInterned.Inc()
				}
				return off, nil
			}
		}
	}

	off := a.next
	a.insert(off, n.Clone())
	if a.interned != nil {
		a.interned.Add(ik, off)
	}
	a.log.Debugf("arena: proposed %s at offset %d", n, off)
	if a.cfg.Metrics != nil {
		a.cfg.Metrics.cntProposals.Inc()
	}
	a.observe()
	return off, nil
}

// reset drops every note, keeping the configuration.
func (a *MemArena) reset() {
	a.notes.Clear(false)
	a.next, a.bytes = 0, 0
	a.dead = make(map[core.Offset]struct{})
	if a.interned != nil {
		a.interned.Purge()
	}
	a.observe()
}

func (a *MemArena) insert(off core.Offset, n *core.Note) {
	a.notes.ReplaceOrInsert(entry{off: off, note: n})
	a.next = off + recordSize(n)
	a.bytes += uint64(n.Size())
}

func recordSize(n *core.Note) core.Offset {
	return core.Offset(noteHeaderSize + n.Size())
}

func sameNote(a, b *core.Note) bool {
	return a.Tag() == b.Tag() && a.Form() == b.Form() && a.ContentEqual(b)
}

// Len returns the number of notes in the arena.
func (a *MemArena) Len() int {
	return a.notes.Len()
}

// Ascend calls |cb| for every note in offset order until it returns false.
func (a *MemArena) Ascend(cb func(off core.Offset, n *core.Note) bool) {
	a.notes.Ascend(func(e entry) bool {
		return cb(e.off, e.note)
	})
}
