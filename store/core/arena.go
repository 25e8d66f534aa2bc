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

package core

import "fmt"

// Offset is the arena-relative address of a note. Zero is a valid offset.
type Offset uint64

// RemapFunc translates offsets when notes move between or within arenas.
type RemapFunc func(Offset) Offset

// Arena owns notes and resolves offsets to them.
//
// Arenas are not synchronized: callers serialize proposals against each
// other and against outstanding pins. Implementations must be comparable,
// since values from the same ordered arena are compared by offset.
type Arena interface {
	// Pin resolves |off| and holds the note in place until the matching
	// Unpin. It fails with ErrNotFound for unknown offsets and ErrCorrupt
	// if the note is smaller than |minSize| bytes.
	Pin(off Offset, minSize int) (*Note, error)

	// Unpin releases one Pin of |off|.
	Unpin(off Offset)

	// IsOrdered returns true if offsets of same-tagged notes order the same
	// way as their values.
	IsOrdered() bool

	// IsUnreferenced returns true if the note at |off| has been found
	// unreachable or marked dead.
	IsUnreferenced(off Offset) bool
}

// ExtensibleArena is an Arena that accepts new notes.
type ExtensibleArena interface {
	Arena

	// Propose stores |n| and returns its offset. The arena may return the
	// offset of an existing note with identical content.
	Propose(n *Note) (Offset, error)
}

// Pin is a scoped accessor for a note. Callers release every pin they
// acquire, usually with defer:
//
//	pin, err := NewPin(a, off, size)
//	if err != nil {
//		return err
//	}
//	defer pin.Release()
type Pin struct {
	arena Arena
	off   Offset
	note  *Note
}

// NewPin pins the note at |off| in |a|, checking that it holds at least
// |minSize| bytes.
func NewPin(a Arena, off Offset, minSize int) (Pin, error) {
	if a == nil {
		return Pin{}, ErrNotFound.New(off)
	}
	n, err := a.Pin(off, minSize)
	if err != nil {
		return Pin{}, err
	}
	if n.Size() < minSize {
		a.Unpin(off)
		return Pin{}, ErrCorrupt.New(sizeMsg(off, n.Size(), minSize))
	}
	return Pin{arena: a, off: off, note: n}, nil
}

func (p Pin) Note() *Note {
	return p.note
}

func (p Pin) Offset() Offset {
	return p.off
}

// Release returns the note to the arena. Releasing the zero Pin is a
// no-op.
func (p Pin) Release() {
	if p.arena != nil {
		p.arena.Unpin(p.off)
	}
}

func sizeMsg(off Offset, have, want int) string {
	return fmt.Sprintf("note at offset %d holds %d bytes, expected at least %d", off, have, want)
}
