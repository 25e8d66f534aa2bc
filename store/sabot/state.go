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
	"time"

	"github.com/google/uuid"
)

// Char is a single-byte character, distinct from uint8 so that host
// values can name the char shape.
type Char byte

// State is a Type plus live data. States are immutable once built and are
// the unit that producers hand to the value core and that the generic
// ordering fallback compares.
type State struct {
	typ Type

	// bits holds every scalar except UUID: signed and unsigned integers,
	// bool, char, float bits and duration/time point ticks.
	bits  uint64
	id    uuid.UUID
	bytes []byte

	// elems holds the elements of Desc, Opt, Set, Vector, Record and
	// Tuple states. Map states interleave keys and values.
	elems []State
}

// MapEntry is one key/value pair of a Map state.
type MapEntry struct {
	Key, Val State
}

// RecordField is one named member of a Record state.
type RecordField struct {
	Name string
	Val  State
}

func NewInt8(v int8) State { return State{typ: Int8Type, bits: uint64(v)} }
func NewInt16(v int16) State { return State{typ: Int16Type, bits: uint64(v)} }
func NewInt32(v int32) State { return State{typ: Int32Type, bits: uint64(v)} }
func NewInt64(v int64) State { return State{typ: Int64Type, bits: uint64(v)} }
func NewUint8(v uint8) State { return State{typ: Uint8Type, bits: uint64(v)} }
func NewUint16(v uint16) State { return State{typ: Uint16Type, bits: uint64(v)} }
func NewUint32(v uint32) State { return State{typ: Uint32Type, bits: uint64(v)} }
func NewUint64(v uint64) State { return State{typ: Uint64Type, bits: v} }
func NewChar(v Char) State { return State{typ: CharType, bits: uint64(v)} }
func NewFloat(v float32) State {
	return State{typ: FloatType, bits: uint64(math.Float32bits(v))}
}
func NewDouble(v float64) State {
	return State{typ: DoubleType, bits: math.Float64bits(v)}
}
func NewDuration(v time.Duration) State {
	return State{typ: DurationType, bits: uint64(v)}
}
func NewUUID(v uuid.UUID) State { return State{typ: UUIDType, id: v} }
func NewTombstone() State { return State{typ: TombstoneType} }
func NewVoid() State { return State{typ: VoidType} }

func NewBool(v bool) State {
	s := State{typ: BoolType}
	if v {
		s.bits = 1
	}
	return s
}

// NewTimePoint records |v| as nanoseconds since the Unix epoch.
func NewTimePoint(v time.Time) State {
	return State{typ: TimePointType, bits: uint64(v.UnixNano())}
}

func NewStr(v string) State {
	return State{typ: StrType, bytes: []byte(v)}
}

func NewBlob(v []byte) State {
	return State{typ: BlobType, bytes: append([]byte{}, v...)}
}

// NewDesc wraps |v| so that it sorts in descending order.
func NewDesc(v State) State {
	return State{typ: DescType(v.typ), elems: []State{v}}
}

// NewFree returns a wildcard placeholder of type |elem|.
func NewFree(elem Type) State {
	return State{typ: FreeType(elem)}
}

// EmptyOpt returns an unknown optional of type |elem|.
func EmptyOpt(elem Type) State {
	return State{typ: OptType(elem)}
}

// NewOpt returns a known optional holding |v|.
func NewOpt(v State) State {
	return State{typ: OptType(v.typ), elems: []State{v}}
}

// NewVector returns a vector of |elem| holding |vals| in order.
func NewVector(elem Type, vals ...State) (State, error) {
	if err := expectElemTypes(elem, vals); err != nil {
		return State{}, err
	}
	return State{typ: VectorType(elem), elems: append([]State(nil), vals...)}, nil
}

// NewSet returns a set of |elem|. Members are sorted by OrderStates and
// duplicates are dropped.
func NewSet(elem Type, vals ...State) (State, error) {
	if err := expectElemTypes(elem, vals); err != nil {
		return State{}, err
	}
	elems := append([]State(nil), vals...)
	sort.SliceStable(elems, func(i, j int) bool {
		return OrderStates(elems[i], elems[j]) == Lt
	})
	uniq := elems[:0]
	for i, e := range elems {
		if i > 0 && OrderStates(uniq[len(uniq)-1], e) == Eq {
			continue
		}
		uniq = append(uniq, e)
	}
	return State{typ: SetType(elem), elems: uniq}, nil
}

// NewMap returns a map from |key| to |val|. Entries are sorted by key; a
// later entry replaces an earlier one with an equal key.
func NewMap(key, val Type, entries ...MapEntry) (State, error) {
	sorted := make([]MapEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Key.typ.Equals(key) {
			return State{}, ErrBadType.New(key, e.Key.typ)
		}
		if !e.Val.typ.Equals(val) {
			return State{}, ErrBadType.New(val, e.Val.typ)
		}
		i := sort.Search(len(sorted), func(i int) bool {
			return OrderStates(sorted[i].Key, e.Key) != Lt
		})
		if i < len(sorted) && OrderStates(sorted[i].Key, e.Key) == Eq {
			sorted[i] = e
			continue
		}
		sorted = append(sorted, MapEntry{})
		copy(sorted[i+1:], sorted[i:])
		sorted[i] = e
	}

	s := State{typ: MapType(key, val), elems: make([]State, 0, 2*len(sorted))}
	for _, e := range sorted {
		s.elems = append(s.elems, e.Key, e.Val)
	}
	return s, nil
}

// NewRecord returns a record whose type is derived from |fields|.
func NewRecord(fields ...RecordField) State {
	tf := make([]Field, len(fields))
	elems := make([]State, len(fields))
	for i, f := range fields {
		tf[i] = Field{Name: f.Name, Type: f.Val.typ}
		elems[i] = f.Val
	}
	return State{typ: RecordType(tf...), elems: elems}
}

// NewTuple returns a tuple whose type is derived from |vals|.
func NewTuple(vals ...State) State {
	types := make([]Type, len(vals))
	for i, v := range vals {
		types[i] = v.typ
	}
	return State{typ: TupleType(types...), elems: append([]State(nil), vals...)}
}

// Default returns the zero state of |t|: zero scalars, empty strings and
// containers, and records, tuples and descs of defaults.
func Default(t Type) State {
	switch t.kind {
	case StrKind, BlobKind:
		return State{typ: t, bytes: []byte{}}
	case DescKind:
		return NewDesc(Default(t.elems[0]))
	case RecordKind, TupleKind:
		s := State{typ: t, elems: make([]State, len(t.elems))}
		for i, e := range t.elems {
			s.elems[i] = Default(e)
		}
		return s
	default:
		return State{typ: t}
	}
}

func expectElemTypes(elem Type, vals []State) error {
	for _, v := range vals {
		if !v.typ.Equals(elem) {
			return ErrBadType.New(elem, v.typ)
		}
	}
	return nil
}

// Type returns the type of |s|.
func (s State) Type() Type {
	return s.typ
}

// Kind returns the shape of |s|.
func (s State) Kind() Kind {
	return s.typ.kind
}

// ElemCount returns the number of live elements of |s|. For Map states it
// is the number of pairs; for scalars, strings and Free it is zero.
func (s State) ElemCount() int {
	if s.typ.kind == MapKind {
		return len(s.elems) / 2
	}
	return len(s.elems)
}

// Elem returns the ith element of a Desc, Opt, Set, Vector, Record or
// Tuple state.
func (s State) Elem(i int) (State, error) {
	switch s.typ.kind {
	case DescKind, OptKind, SetKind, VectorKind, RecordKind, TupleKind:
	default:
		return State{}, ErrBadType.New("an element-bearing shape", s.typ.kind)
	}
	if i < 0 || i >= len(s.elems) {
		return State{}, ErrIndexOutOfRange.New(i, s.typ.kind, len(s.elems))
	}
	return s.elems[i], nil
}

// Pair returns the ith key and value of a Map state.
func (s State) Pair(i int) (lhs, rhs State, err error) {
	if s.typ.kind != MapKind {
		return State{}, State{}, ErrBadType.New(MapKind, s.typ.kind)
	}
	if i < 0 || i >= len(s.elems)/2 {
		return State{}, State{}, ErrIndexOutOfRange.New(i, s.typ.kind, len(s.elems)/2)
	}
	return s.elems[2*i], s.elems[2*i+1], nil
}

// Field returns the name and value of the ith field of a Record state.
func (s State) Field(i int) (string, State, error) {
	name, err := s.typ.FieldName(i)
	if err != nil {
		return "", State{}, err
	}
	return name, s.elems[i], nil
}

// AsInt returns the value of a signed integer state.
func (s State) AsInt() (int64, error) {
	switch s.typ.kind {
	case Int8Kind:
		return int64(int8(s.bits)), nil
	case Int16Kind:
		return int64(int16(s.bits)), nil
	case Int32Kind:
		return int64(int32(s.bits)), nil
	case Int64Kind:
		return int64(s.bits), nil
	}
	return 0, ErrBadType.New("a signed integer", s.typ.kind)
}

// AsUint returns the value of an unsigned integer state.
func (s State) AsUint() (uint64, error) {
	switch s.typ.kind {
	case Uint8Kind, Uint16Kind, Uint32Kind, Uint64Kind:
		return s.bits, nil
	}
	return 0, ErrBadType.New("an unsigned integer", s.typ.kind)
}

// AsFloat returns the value of a float or double state.
func (s State) AsFloat() (float64, error) {
	switch s.typ.kind {
	case FloatKind:
		return float64(math.Float32frombits(uint32(s.bits))), nil
	case DoubleKind:
		return math.Float64frombits(s.bits), nil
	}
	return 0, ErrBadType.New("a float", s.typ.kind)
}

func (s State) AsBool() (bool, error) {
	if s.typ.kind != BoolKind {
		return false, ErrBadType.New(BoolKind, s.typ.kind)
	}
	return s.bits != 0, nil
}

func (s State) AsChar() (Char, error) {
	if s.typ.kind != CharKind {
		return 0, ErrBadType.New(CharKind, s.typ.kind)
	}
	return Char(s.bits), nil
}

func (s State) AsDuration() (time.Duration, error) {
	if s.typ.kind != DurationKind {
		return 0, ErrBadType.New(DurationKind, s.typ.kind)
	}
	return time.Duration(s.bits), nil
}

func (s State) AsTimePoint() (time.Time, error) {
	if s.typ.kind != TimePointKind {
		return time.Time{}, ErrBadType.New(TimePointKind, s.typ.kind)
	}
	return time.Unix(0, int64(s.bits)).UTC(), nil
}

func (s State) AsUUID() (uuid.UUID, error) {
	if s.typ.kind != UUIDKind {
		return uuid.UUID{}, ErrBadType.New(UUIDKind, s.typ.kind)
	}
	return s.id, nil
}

// AsBytes returns the contents of a Blob or Str state. The returned slice
// must not be modified.
func (s State) AsBytes() ([]byte, error) {
	if s.typ.kind != BlobKind && s.typ.kind != StrKind {
		return nil, ErrBadType.New("blob or str", s.typ.kind)
	}
	return s.bytes, nil
}

func (s State) AsStr() (string, error) {
	if s.typ.kind != StrKind {
		return "", ErrBadType.New(StrKind, s.typ.kind)
	}
	return string(s.bytes), nil
}

// Bits returns the raw scalar payload of |s|: the two's complement bits of
// integers, 0/1 for bool, IEEE bits for floats and ticks for durations and
// time points.
func (s State) Bits() (uint64, error) {
	if !s.typ.kind.IsScalar() || s.typ.kind == UUIDKind {
		return 0, ErrBadType.New("a fixed-width scalar", s.typ.kind)
	}
	return s.bits, nil
}

// ScalarFromBits is the inverse of Bits. Bits beyond the width of |k| are
// normalized, so a little-endian payload widened to 64 bits is accepted.
func ScalarFromBits(k Kind, bits uint64) (State, error) {
	if !k.IsScalar() || k == UUIDKind {
		return State{}, ErrBadType.New("a fixed-width scalar", k)
	}
	switch k {
	case Int8Kind:
		bits = uint64(int8(bits))
	case Int16Kind:
		bits = uint64(int16(bits))
	case Int32Kind:
		bits = uint64(int32(bits))
	case Uint8Kind, CharKind:
		bits = uint64(uint8(bits))
	case Uint16Kind:
		bits = uint64(uint16(bits))
	case Uint32Kind, FloatKind:
		bits = uint64(uint32(bits))
	case BoolKind:
		if bits != 0 {
			bits = 1
		}
	}
	return State{typ: Type{kind: k}, bits: bits}, nil
}

// String renders |s| for debugging.
func (s State) String() string {
	return Format(s)
}
