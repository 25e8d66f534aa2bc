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

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/dolthub/sabot/store/d"
)

// NoteForm distinguishes notes that hold real elements from notes that
// only witness a type.
type NoteForm uint8

const (
	// NoteElems notes hold the bytes, elements or pairs of a value.
	NoteElems NoteForm = iota
	// NoteExemplar notes hold a single default element (or pair) that
	// records the element type of an empty container, an unknown optional
	// or a Free wildcard.
	NoteExemplar
)

func (f NoteForm) String() string {
	if f == NoteExemplar {
		return "exemplar"
	}
	return "elems"
}

// Note is a variable-length payload owned by an arena. Blob notes hold raw
// bytes, Str notes hold raw bytes followed by a zero terminator, and
// composite notes hold packed Values (or packed Value pairs for Map and
// Record). A note is written once when it is proposed; afterwards only
// Remap may change it.
type Note struct {
	tag  Tag
	form NoteForm
	data []byte
}

// NewNote wraps raw note bytes. The data is not copied.
func NewNote(tag Tag, form NoteForm, data []byte) *Note {
	return &Note{tag: tag, form: form, data: data}
}

// NewBlobNote returns a Blob note holding a copy of |b|.
func NewBlobNote(b []byte) *Note {
	return &Note{tag: BlobTag, data: append([]byte{}, b...)}
}

// NewStrNote returns a Str note holding a copy of |s| and a terminator.
func NewStrNote(s []byte) *Note {
	data := make([]byte, len(s)+1)
	copy(data, s)
	return &Note{tag: StrTag, data: data}
}

// NewArrayNote returns a composite note holding |vals|.
func NewArrayNote(tag Tag, form NoteForm, vals ...Value) *Note {
	d.PanicIfFalse(tag.IsComposite() && !tag.IsPaired(), "%s notes do not hold value arrays", tag)
	arr := make(ValueArray, len(vals)*ValueSize)
	for i, v := range vals {
		arr.Put(i, v)
	}
	return &Note{tag: tag, form: form, data: arr}
}

// NewPairNote returns a Map or Record note from interleaved left and right
// values.
func NewPairNote(tag Tag, form NoteForm, vals ...Value) *Note {
	d.PanicIfFalse(tag.IsPaired(), "%s notes do not hold pair arrays", tag)
	d.Exp.Zero(len(vals)%2, "odd number of pair values: %d", len(vals))
	arr := make(ValueArray, len(vals)*ValueSize)
	for i, v := range vals {
		arr.Put(i, v)
	}
	return &Note{tag: tag, form: form, data: arr}
}

func (n *Note) Tag() Tag {
	return n.tag
}

func (n *Note) Form() NoteForm {
	return n.form
}

func (n *Note) IsExemplar() bool {
	return n.form == NoteExemplar
}

// Size returns the raw byte size of the note.
func (n *Note) Size() int {
	return len(n.data)
}

// Data returns the raw bytes of the note. They must not be modified.
func (n *Note) Data() []byte {
	return n.data
}

// Clone returns a deep copy of |n|.
func (n *Note) Clone() *Note {
	return &Note{tag: n.tag, form: n.form, data: append([]byte{}, n.data...)}
}

// AsBytes returns the contents of a Blob note.
func (n *Note) AsBytes() ([]byte, error) {
	if n.tag != BlobTag {
		return nil, ErrBadType.New(BlobTag, n.tag)
	}
	return n.data, nil
}

// AsChars returns the contents of a Str note without its terminator.
func (n *Note) AsChars() ([]byte, error) {
	if n.tag != StrTag {
		return nil, ErrBadType.New(StrTag, n.tag)
	}
	if len(n.data) == 0 || n.data[len(n.data)-1] != 0 {
		return nil, ErrCorrupt.New("unterminated str note")
	}
	return n.data[:len(n.data)-1], nil
}

// AsValueArray returns the elements of a Desc, Free, Opt, Set, Vector or
// Tuple note.
func (n *Note) AsValueArray() (ValueArray, error) {
	if !n.tag.IsComposite() || n.tag.IsPaired() {
		return nil, ErrBadType.New("a value array note", n.tag)
	}
	if len(n.data)%ValueSize != 0 {
		return nil, ErrCorrupt.New(fmt.Sprintf("%s note of %d bytes", n.tag, len(n.data)))
	}
	return ValueArray(n.data), nil
}

// AsValuePairArray returns the pairs of a Map or Record note.
func (n *Note) AsValuePairArray() (PairArray, error) {
	if !n.tag.IsPaired() {
		return nil, ErrBadType.New("a pair array note", n.tag)
	}
	if len(n.data)%(2*ValueSize) != 0 {
		return nil, ErrCorrupt.New(fmt.Sprintf("%s note of %d bytes", n.tag, len(n.data)))
	}
	return PairArray(n.data), nil
}

// ElemCount returns the number of elements the note's bytes hold: raw
// bytes for Blob, raw bytes less the terminator for Str, values or pairs
// for composites. Exemplar notes count their witness.
func (n *Note) ElemCount() (int, error) {
	switch {
	case n.tag == BlobTag:
		return len(n.data), nil
	case n.tag == StrTag:
		b, err := n.AsChars()
		return len(b), err
	case n.tag.IsPaired():
		arr, err := n.AsValuePairArray()
		if err != nil {
			return 0, err
		}
		return arr.Len(), nil
	case n.tag.IsComposite():
		arr, err := n.AsValueArray()
		if err != nil {
			return 0, err
		}
		return arr.Len(), nil
	default:
		return 0, ErrBadType.New("an indirect tag", n.tag)
	}
}

// ContentHash hashes the raw bytes of the note.
func (n *Note) ContentHash() uint64 {
	return xxhash.Sum64(n.data)
}

// ContentEqual compares the raw bytes of two notes.
func (n *Note) ContentEqual(other *Note) bool {
	return bytes.Equal(n.data, other.data)
}

// ForEachContainedOffset calls |cb| with the offset of every indirect value
// held directly by the note. Flat notes contain none.
func (n *Note) ForEachContainedOffset(cb func(Offset) error) error {
	if !n.tag.IsComposite() {
		return nil
	}
	arr, err := n.values()
	if err != nil {
		return err
	}
	for i := 0; i < arr.Len(); i++ {
		v := arr.Get(i)
		if v.IsIndirect() {
			if err := cb(v.Offset()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Remap rewrites the offsets of the indirect values held by the note in
// place. It is a no-op for flat notes.
func (n *Note) Remap(fn RemapFunc) error {
	if !n.tag.IsComposite() {
		return nil
	}
	arr, err := n.values()
	if err != nil {
		return err
	}
	for i := 0; i < arr.Len(); i++ {
		v := arr.Get(i)
		if v.IsIndirect() {
			v.Remap(fn)
			arr.Put(i, v)
		}
	}
	return nil
}

// values returns the composite payload as a flat value array, pairs
// included.
func (n *Note) values() (ValueArray, error) {
	if n.tag.IsPaired() {
		arr, err := n.AsValuePairArray()
		return ValueArray(arr), err
	}
	return n.AsValueArray()
}

func (n *Note) String() string {
	return fmt.Sprintf("%s %s note (%d bytes)", n.tag, n.form, len(n.data))
}

// ValueArray is a packed sequence of encoded Values.
type ValueArray []byte

func (a ValueArray) Len() int {
	return len(a) / ValueSize
}

// Get decodes the ith value.
func (a ValueArray) Get(i int) Value {
	start := i * ValueSize
	v := Value{tag: Tag(a[start])}
	copy(v.data[:], a[start+1:start+ValueSize])
	return v
}

// Put encodes |v| at position i.
func (a ValueArray) Put(i int, v Value) {
	start := i * ValueSize
	a[start] = byte(v.tag)
	copy(a[start+1:start+ValueSize], v.data[:])
}

// PairArray is a packed sequence of encoded Value pairs.
type PairArray []byte

func (a PairArray) Len() int {
	return len(a) / (2 * ValueSize)
}

// Get decodes the ith pair.
func (a PairArray) Get(i int) (lhs, rhs Value) {
	vals := ValueArray(a)
	return vals.Get(2 * i), vals.Get(2*i + 1)
}
