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
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dolthub/sabot/store/sabot"
)

// Value is the fixed-size flyweight for every shape of the sabot grammar.
// Scalars, Void, Tombstone and strings or blobs of up to MaxDirectSize
// bytes live in the payload; everything else references a note by offset.
// A Value owns no memory and is copied freely.
type Value struct {
	tag  Tag
	data [MaxDirectSize]byte
}

func Void() Value {
	return Value{tag: VoidTag}
}

func Tombstone() Value {
	return Value{tag: TombstoneTag}
}

func NewInt8(v int8) Value { return newScalar(sabot.Int8Kind, uint64(v)) }
func NewInt16(v int16) Value { return newScalar(sabot.Int16Kind, uint64(v)) }
func NewInt32(v int32) Value { return newScalar(sabot.Int32Kind, uint64(v)) }
func NewInt64(v int64) Value { return newScalar(sabot.Int64Kind, uint64(v)) }
func NewUint8(v uint8) Value { return newScalar(sabot.Uint8Kind, uint64(v)) }
func NewUint16(v uint16) Value { return newScalar(sabot.Uint16Kind, uint64(v)) }
func NewUint32(v uint32) Value { return newScalar(sabot.Uint32Kind, uint64(v)) }
func NewUint64(v uint64) Value { return newScalar(sabot.Uint64Kind, v) }
func NewChar(v sabot.Char) Value { return newScalar(sabot.CharKind, uint64(v)) }
func NewFloat(v float32) Value { return newScalar(sabot.FloatKind, uint64(math.Float32bits(v))) }
func NewDouble(v float64) Value { return newScalar(sabot.DoubleKind, math.Float64bits(v)) }
func NewDuration(v time.Duration) Value { return newScalar(sabot.DurationKind, uint64(v)) }
func NewTimePoint(v time.Time) Value { return newScalar(sabot.TimePointKind, uint64(v.UnixNano())) }

func NewBool(v bool) Value {
	if v {
		return newScalar(sabot.BoolKind, 1)
	}
	return newScalar(sabot.BoolKind, 0)
}

func NewUUID(v uuid.UUID) Value {
	u := Value{tag: UUIDTag}
	copy(u.data[:len(v)], v[:])
	return u
}

func newScalar(k sabot.Kind, bits uint64) Value {
	v := Value{tag: TagForKind(k)}
	writeScalar(v.data[:], k, bits)
	return v
}

// NewStr returns an inline str if |s| fits and otherwise proposes a Str
// note to |a|.
func NewStr(s string, a ExtensibleArena) (Value, error) {
	return newBytes(StrTag, []byte(s), a)
}

// NewBlob returns an inline blob if |b| fits and otherwise proposes a Blob
// note to |a|.
func NewBlob(b []byte, a ExtensibleArena) (Value, error) {
	return newBytes(BlobTag, b, a)
}

func newBytes(tag Tag, b []byte, a ExtensibleArena) (Value, error) {
	if len(b) <= MaxDirectSize {
		v := Value{tag: DirectBlobTag(len(b))}
		if tag == StrTag {
			v.tag = DirectStrTag(len(b))
		}
		copy(v.data[:], b)
		return v, nil
	}

	n := NewBlobNote(b)
	if tag == StrTag {
		n = NewStrNote(b)
	}
	off, err := propose(a, n)
	if err != nil {
		return Value{}, err
	}
	return newFlat(tag, off, len(b)), nil
}

func newFlat(tag Tag, off Offset, size int) Value {
	v := Value{tag: tag}
	writeUint64(v.data[:offsetEnd], uint64(off))
	writeUint64(v.data[offsetEnd:sizeEnd], uint64(size))
	return v
}

func newComposite(tag Tag, off Offset, count int, form NoteForm) Value {
	v := Value{tag: tag}
	writeUint64(v.data[:offsetEnd], uint64(off))
	writeUint32(v.data[offsetEnd:countEnd], uint32(count))
	flags := fullNoteFlag
	if form == NoteExemplar {
		flags |= exemplarFlag
	}
	v.data[flagsIdx] = byte(flags)
	return v
}

func propose(a ExtensibleArena, n *Note) (Offset, error) {
	if a == nil {
		return 0, ErrNoArena.New(n)
	}
	return a.Propose(n)
}

// FromOffset wraps the existing note at |off| in a full view of |tag|.
func FromOffset(tag Tag, off Offset, a Arena) (Value, error) {
	if !tag.IsIndirect() {
		return Value{}, ErrBadType.New("an indirect tag", tag)
	}
	pin, err := NewPin(a, off, 0)
	if err != nil {
		return Value{}, err
	}
	defer pin.Release()

	n := pin.Note()
	if n.Tag() != tag {
		return Value{}, ErrBadType.New(tag, n.Tag())
	}
	cnt, err := n.ElemCount()
	if err != nil {
		return Value{}, err
	}
	if tag.IsFlat() {
		return newFlat(tag, off, cnt), nil
	}
	if n.IsExemplar() {
		cnt = 0
	}
	return newComposite(tag, off, cnt, n.Form()), nil
}

// Default returns the zero value of |t|.
func Default(t sabot.Type, a ExtensibleArena) (Value, error) {
	return FromState(sabot.Default(t), a)
}

// FromNative converts a host value through its sabot state.
func FromNative(x any, a ExtensibleArena) (Value, error) {
	s, err := sabot.FromNative(x)
	if err != nil {
		return Value{}, err
	}
	return FromState(s, a)
}

// ToNative populates the host value |target| points to.
func (v Value) ToNative(a Arena, target any) error {
	s, err := v.NewState(a)
	if err != nil {
		return err
	}
	return sabot.ToNative(s, target)
}

// CopyTo deep copies |v| from |src| into |dst|. Direct values are returned
// as is.
func (v Value) CopyTo(src Arena, dst ExtensibleArena) (Value, error) {
	if v.IsDirect() {
		return v, nil
	}
	s, err := v.NewState(src)
	if err != nil {
		return Value{}, err
	}
	return FromState(s, dst)
}

// Remap rewrites the offset of an indirect value. Direct values are left
// alone.
func (v *Value) Remap(fn RemapFunc) {
	if v.tag.IsIndirect() {
		writeUint64(v.data[:offsetEnd], uint64(fn(v.Offset())))
	}
}

func (v Value) Tag() Tag {
	return v.tag
}

func (v Value) Kind() sabot.Kind {
	return v.tag.Kind()
}

func (v Value) IsTombstone() bool {
	return v.tag == TombstoneTag
}

func (v Value) IsTuple() bool {
	return v.tag == TupleTag
}

func (v Value) IsFree() bool {
	return v.tag == FreeTag
}

func (v Value) IsVoid() bool {
	return v.tag == VoidTag
}

func (v Value) IsDirect() bool {
	return !v.tag.IsIndirect()
}

func (v Value) IsIndirect() bool {
	return v.tag.IsIndirect()
}

// IsExemplar returns true for composites whose note only witnesses a type.
func (v Value) IsExemplar() bool {
	return v.tag.IsComposite() && v.flags()&exemplarFlag != 0
}

// IsTruncated returns true for composite views that cover fewer elements
// than their note.
func (v Value) IsTruncated() bool {
	return v.tag.IsComposite() && v.flags()&fullNoteFlag == 0
}

// Offset returns the note offset of an indirect value.
func (v Value) Offset() Offset {
	return Offset(readUint64(v.data[:offsetEnd]))
}

// TryGetElemCount returns the element count of an indirect composite, or
// the byte length of an indirect Str or Blob. Scalars and direct values
// have none.
func (v Value) TryGetElemCount() (int, bool) {
	switch {
	case v.tag.IsComposite():
		return v.count(), true
	case v.tag.IsFlat():
		return v.flatSize(), true
	default:
		return 0, false
	}
}

func (v Value) flags() compositeFlags {
	return compositeFlags(v.data[flagsIdx])
}

func (v Value) count() int {
	return int(readUint32(v.data[offsetEnd:countEnd]))
}

func (v Value) flatSize() int {
	return int(readUint64(v.data[offsetEnd:sizeEnd]))
}

// minNoteSize is the smallest note that can back |v|.
func (v Value) minNoteSize() int {
	switch {
	case v.tag == StrTag:
		return v.flatSize() + 1
	case v.tag == BlobTag:
		return v.flatSize()
	}
	n := v.count()
	if v.IsExemplar() {
		n = 1
	}
	if v.tag.IsPaired() {
		return n * 2 * ValueSize
	}
	return n * ValueSize
}

func (v Value) pin(a Arena) (Pin, error) {
	pin, err := NewPin(a, v.Offset(), v.minNoteSize())
	if err != nil {
		return Pin{}, err
	}
	if pin.Note().Tag() != v.tag {
		pin.Release()
		return Pin{}, ErrCorrupt.New(fmt.Sprintf("%s value references %s", v.tag, pin.Note()))
	}
	return pin, nil
}

// bytesOf returns the contents of a str or blob value. Indirect contents
// stay valid until the returned pin is released.
func (v Value) bytesOf(a Arena) ([]byte, Pin, error) {
	if v.tag.IsDirectStr() || v.tag.IsDirectBlob() {
		return v.data[:v.tag.DirectSize()], Pin{}, nil
	}
	pin, err := v.pin(a)
	if err != nil {
		return nil, Pin{}, err
	}
	var b []byte
	if v.tag == StrTag {
		b, err = pin.Note().AsChars()
	} else {
		b, err = pin.Note().AsBytes()
	}
	if err == nil && len(b) < v.flatSize() {
		err = ErrCorrupt.New(sizeMsg(v.Offset(), len(b), v.flatSize()))
	}
	if err != nil {
		pin.Release()
		return nil, Pin{}, err
	}
	return b[:v.flatSize()], pin, nil
}

// isBytes returns true for direct and indirect strs and blobs.
func (v Value) isBytes() bool {
	k := v.tag.Kind()
	return k == sabot.StrKind || k == sabot.BlobKind
}

// Bytes returns the fixed-size encoding of |v|.
func (v Value) Bytes() [ValueSize]byte {
	var b [ValueSize]byte
	b[0] = byte(v.tag)
	copy(b[1:], v.data[:])
	return b
}

// ValueFromBytes decodes a Value written by Bytes.
func ValueFromBytes(b []byte) (Value, error) {
	if len(b) != ValueSize {
		return Value{}, ErrCorrupt.New(fmt.Sprintf("value of %d bytes", len(b)))
	}
	if !Tag(b[0]).IsValid() {
		return Value{}, ErrCorrupt.New(fmt.Sprintf("unknown tag %d", b[0]))
	}
	return ValueArray(b).Get(0), nil
}

func (v Value) String() string {
	if v.IsIndirect() {
		if cnt, ok := v.TryGetElemCount(); ok {
			return fmt.Sprintf("%s@%d[%d]", v.tag, v.Offset(), cnt)
		}
		return fmt.Sprintf("%s@%d", v.tag, v.Offset())
	}
	s, err := v.NewState(nil)
	if err != nil {
		return v.tag.String()
	}
	return s.String()
}
