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
	"github.com/google/uuid"

	"github.com/dolthub/sabot/store/d"
	"github.com/dolthub/sabot/store/sabot"
)

// FromState deep copies |s| into a Value, proposing notes to |a| for
// everything that does not fit inline. Empty containers, unknown
// optionals and Free wildcards are stored as exemplar notes holding a
// default element, so their element type survives the round trip.
func FromState(s sabot.State, a ExtensibleArena) (Value, error) {
	k := s.Kind()
	switch {
	case k == sabot.UUIDKind:
		id, _ := s.AsUUID()
		return NewUUID(id), nil
	case k.IsScalar():
		bits, _ := s.Bits()
		return newScalar(k, bits), nil
	case k == sabot.StrKind || k == sabot.BlobKind:
		b, _ := s.AsBytes()
		return newBytes(TagForKind(k), b, a)
	case k == sabot.TombstoneKind:
		return Tombstone(), nil
	case k == sabot.VoidKind:
		return Void(), nil
	}

	tag := TagForKind(k)
	typ := s.Type()
	switch k {
	case sabot.FreeKind:
		return fromExemplar(tag, typ, a)

	case sabot.DescKind, sabot.OptKind, sabot.SetKind, sabot.VectorKind, sabot.TupleKind:
		n := s.ElemCount()
		if n == 0 && k != sabot.TupleKind {
			return fromExemplar(tag, typ, a)
		}
		vals := make([]Value, n)
		for i := range vals {
			e, err := s.Elem(i)
			if err != nil {
				return Value{}, err
			}
			if vals[i], err = FromState(e, a); err != nil {
				return Value{}, err
			}
		}
		return proposeComposite(tag, NoteElems, n, vals, a)

	case sabot.MapKind:
		n := s.ElemCount()
		if n == 0 {
			return fromExemplar(tag, typ, a)
		}
		vals := make([]Value, 0, 2*n)
		for i := 0; i < n; i++ {
			lhs, rhs, err := s.Pair(i)
			if err != nil {
				return Value{}, err
			}
			kv, err := FromState(lhs, a)
			if err != nil {
				return Value{}, err
			}
			vv, err := FromState(rhs, a)
			if err != nil {
				return Value{}, err
			}
			vals = append(vals, kv, vv)
		}
		return proposeComposite(tag, NoteElems, n, vals, a)

	case sabot.RecordKind:
		n := s.ElemCount()
		vals := make([]Value, 0, 2*n)
		for i := 0; i < n; i++ {
			name, fv, err := s.Field(i)
			if err != nil {
				return Value{}, err
			}
			nv, err := NewStr(name, a)
			if err != nil {
				return Value{}, err
			}
			vv, err := FromState(fv, a)
			if err != nil {
				return Value{}, err
			}
			vals = append(vals, nv, vv)
		}
		return proposeComposite(tag, NoteElems, n, vals, a)
	}

	return Value{}, ErrBadType.New("a sabot shape", k)
}

// fromExemplar proposes an exemplar note witnessing the element type(s)
// of |typ|.
func fromExemplar(tag Tag, typ sabot.Type, a ExtensibleArena) (Value, error) {
	var witness []sabot.Type
	if tag == MapTag {
		kt, _ := typ.Key()
		vt, _ := typ.Val()
		witness = []sabot.Type{kt, vt}
	} else {
		et, err := typ.Elem(0)
		if err != nil {
			return Value{}, err
		}
		witness = []sabot.Type{et}
	}

	vals := make([]Value, len(witness))
	for i, t := range witness {
		v, err := Default(t, a)
		if err != nil {
			return Value{}, err
		}
		vals[i] = v
	}
	return proposeComposite(tag, NoteExemplar, 0, vals, a)
}

func proposeComposite(tag Tag, form NoteForm, count int, vals []Value, a ExtensibleArena) (Value, error) {
	var n *Note
	if tag.IsPaired() {
		n = NewPairNote(tag, form, vals...)
	} else {
		n = NewArrayNote(tag, form, vals...)
	}
	off, err := propose(a, n)
	if err != nil {
		return Value{}, err
	}
	return newComposite(tag, off, count, form), nil
}

// NewState returns a sabot view of |v|, reading any notes from |a|. Only
// the elements covered by a truncated view are included.
func (v Value) NewState(a Arena) (sabot.State, error) {
	switch {
	case v.tag.IsDirectStr():
		return sabot.NewStr(string(v.data[:v.tag.DirectSize()])), nil
	case v.tag.IsDirectBlob():
		return sabot.NewBlob(v.data[:v.tag.DirectSize()]), nil
	case v.tag == UUIDTag:
		var id uuid.UUID
		copy(id[:], v.data[:len(id)])
		return sabot.NewUUID(id), nil
	case v.tag.IsScalar():
		k := v.tag.Kind()
		return sabot.ScalarFromBits(k, readScalar(v.data[:], k))
	case v.tag == TombstoneTag:
		return sabot.NewTombstone(), nil
	case v.tag == VoidTag:
		return sabot.NewVoid(), nil
	case v.tag.IsFlat():
		b, pin, err := v.bytesOf(a)
		if err != nil {
			return sabot.State{}, err
		}
		defer pin.Release()
		if v.tag == StrTag {
			return sabot.NewStr(string(b)), nil
		}
		return sabot.NewBlob(b), nil
	case !v.tag.IsComposite():
		return sabot.State{}, ErrBadType.New("a valid tag", v.tag)
	}

	pin, err := v.pin(a)
	if err != nil {
		return sabot.State{}, err
	}
	defer pin.Release()

	if v.tag.IsPaired() {
		return v.pairsState(pin.Note(), a)
	}
	arr, err := pin.Note().AsValueArray()
	if err != nil {
		return sabot.State{}, err
	}

	if v.IsExemplar() || v.tag == FreeTag {
		if arr.Len() == 0 {
			return sabot.State{}, ErrCorrupt.New(v.tag.String() + " note without a witness")
		}
		wt, err := arr.Get(0).GetType(a)
		if err != nil {
			return sabot.State{}, err
		}
		switch v.tag {
		case FreeTag:
			return sabot.NewFree(wt), nil
		case OptTag:
			return sabot.EmptyOpt(wt), nil
		case SetTag:
			return sabot.NewSet(wt)
		case VectorTag:
			return sabot.NewVector(wt)
		default:
			return sabot.State{}, ErrCorrupt.New("exemplar " + v.tag.String())
		}
	}

	if v.count() == 0 && v.tag != TupleTag {
		return sabot.State{}, ErrCorrupt.New("empty " + v.tag.String() + " without an exemplar")
	}
	elems := make([]sabot.State, v.count())
	for i := range elems {
		if elems[i], err = arr.Get(i).NewState(a); err != nil {
			return sabot.State{}, err
		}
	}

	switch v.tag {
	case DescTag:
		if len(elems) != 1 {
			return sabot.State{}, ErrCorrupt.New("desc without exactly one element")
		}
		return sabot.NewDesc(elems[0]), nil
	case OptTag:
		if len(elems) != 1 {
			return sabot.State{}, ErrCorrupt.New("known opt without exactly one element")
		}
		return sabot.NewOpt(elems[0]), nil
	case SetTag:
		return sabot.NewSet(elems[0].Type(), elems...)
	case VectorTag:
		return sabot.NewVector(elems[0].Type(), elems...)
	case TupleTag:
		return sabot.NewTuple(elems...), nil
	default:
		d.Panic("unhandled composite %s", v.tag)
		return sabot.State{}, nil
	}
}

func (v Value) pairsState(n *Note, a Arena) (sabot.State, error) {
	arr, err := n.AsValuePairArray()
	if err != nil {
		return sabot.State{}, err
	}

	if v.tag == MapTag {
		if v.IsExemplar() {
			lhs, rhs := arr.Get(0)
			kt, err := lhs.GetType(a)
			if err != nil {
				return sabot.State{}, err
			}
			vt, err := rhs.GetType(a)
			if err != nil {
				return sabot.State{}, err
			}
			return sabot.NewMap(kt, vt)
		}
		if v.count() == 0 {
			return sabot.State{}, ErrCorrupt.New("empty map without an exemplar")
		}
		entries := make([]sabot.MapEntry, v.count())
		for i := range entries {
			lhs, rhs := arr.Get(i)
			if entries[i].Key, err = lhs.NewState(a); err != nil {
				return sabot.State{}, err
			}
			if entries[i].Val, err = rhs.NewState(a); err != nil {
				return sabot.State{}, err
			}
		}
		return sabot.NewMap(entries[0].Key.Type(), entries[0].Val.Type(), entries...)
	}

	fields := make([]sabot.RecordField, v.count())
	for i := range fields {
		lhs, rhs := arr.Get(i)
		name, err := lhs.NewState(a)
		if err != nil {
			return sabot.State{}, err
		}
		if fields[i].Name, err = name.AsStr(); err != nil {
			return sabot.State{}, ErrCorrupt.New("record field name is not a str")
		}
		if fields[i].Val, err = rhs.NewState(a); err != nil {
			return sabot.State{}, err
		}
	}
	return sabot.NewRecord(fields...), nil
}

// GetType returns the structural type of |v| without materializing its
// elements.
func (v Value) GetType(a Arena) (sabot.Type, error) {
	k := v.tag.Kind()
	switch {
	case !v.tag.IsValid():
		return sabot.Type{}, ErrBadType.New("a valid tag", v.tag)
	case !v.tag.IsComposite():
		return sabot.PrimitiveType(k)
	}

	pin, err := v.pin(a)
	if err != nil {
		return sabot.Type{}, err
	}
	defer pin.Release()

	if v.tag.IsPaired() {
		arr, err := pin.Note().AsValuePairArray()
		if err != nil {
			return sabot.Type{}, err
		}
		if v.tag == MapTag {
			if arr.Len() == 0 {
				return sabot.Type{}, ErrCorrupt.New("map note without pairs")
			}
			lhs, rhs := arr.Get(0)
			kt, err := lhs.GetType(a)
			if err != nil {
				return sabot.Type{}, err
			}
			vt, err := rhs.GetType(a)
			if err != nil {
				return sabot.Type{}, err
			}
			return sabot.MapType(kt, vt), nil
		}
		fields := make([]sabot.Field, v.count())
		for i := range fields {
			lhs, rhs := arr.Get(i)
			name, err := lhs.NewState(a)
			if err != nil {
				return sabot.Type{}, err
			}
			if fields[i].Name, err = name.AsStr(); err != nil {
				return sabot.Type{}, ErrCorrupt.New("record field name is not a str")
			}
			if fields[i].Type, err = rhs.GetType(a); err != nil {
				return sabot.Type{}, err
			}
		}
		return sabot.RecordType(fields...), nil
	}

	arr, err := pin.Note().AsValueArray()
	if err != nil {
		return sabot.Type{}, err
	}
	if v.tag == TupleTag {
		elems := make([]sabot.Type, v.count())
		for i := range elems {
			if elems[i], err = arr.Get(i).GetType(a); err != nil {
				return sabot.Type{}, err
			}
		}
		return sabot.TupleType(elems...), nil
	}

	if arr.Len() == 0 {
		return sabot.Type{}, ErrCorrupt.New(v.tag.String() + " note without elements")
	}
	et, err := arr.Get(0).GetType(a)
	if err != nil {
		return sabot.Type{}, err
	}
	switch v.tag {
	case DescTag:
		return sabot.DescType(et), nil
	case FreeTag:
		return sabot.FreeType(et), nil
	case OptTag:
		return sabot.OptType(et), nil
	case SetTag:
		return sabot.SetType(et), nil
	default:
		return sabot.VectorType(et), nil
	}
}
