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
	"strings"
)

// Type is an immutable structural type descriptor. Unary composites have
// a single element type, Map has a key and a value type, Record has named
// fields and Tuple has positional elements.
type Type struct {
	kind  Kind
	elems []Type
	names []string
}

// Field names one member of a Record type.
type Field struct {
	Name string
	Type Type
}

var (
	Int8Type      = Type{kind: Int8Kind}
	Int16Type     = Type{kind: Int16Kind}
	Int32Type     = Type{kind: Int32Kind}
	Int64Type     = Type{kind: Int64Kind}
	Uint8Type     = Type{kind: Uint8Kind}
	Uint16Type    = Type{kind: Uint16Kind}
	Uint32Type    = Type{kind: Uint32Kind}
	Uint64Type    = Type{kind: Uint64Kind}
	BoolType      = Type{kind: BoolKind}
	CharType      = Type{kind: CharKind}
	FloatType     = Type{kind: FloatKind}
	DoubleType    = Type{kind: DoubleKind}
	DurationType  = Type{kind: DurationKind}
	TimePointType = Type{kind: TimePointKind}
	UUIDType      = Type{kind: UUIDKind}
	BlobType      = Type{kind: BlobKind}
	StrType       = Type{kind: StrKind}
	TombstoneType = Type{kind: TombstoneKind}
	VoidType      = Type{kind: VoidKind}
)

// PrimitiveType returns the type of a kind that has no element types.
func PrimitiveType(k Kind) (Type, error) {
	if k > VoidKind {
		return Type{}, ErrBadType.New("primitive kind", k)
	}
	return Type{kind: k}, nil
}

func DescType(elem Type) Type {
	return Type{kind: DescKind, elems: []Type{elem}}
}

func FreeType(elem Type) Type {
	return Type{kind: FreeKind, elems: []Type{elem}}
}

func OptType(elem Type) Type {
	return Type{kind: OptKind, elems: []Type{elem}}
}

func SetType(elem Type) Type {
	return Type{kind: SetKind, elems: []Type{elem}}
}

func VectorType(elem Type) Type {
	return Type{kind: VectorKind, elems: []Type{elem}}
}

func MapType(key, val Type) Type {
	return Type{kind: MapKind, elems: []Type{key, val}}
}

func RecordType(fields ...Field) Type {
	t := Type{
		kind:  RecordKind,
		elems: make([]Type, len(fields)),
		names: make([]string, len(fields)),
	}
	for i, f := range fields {
		t.elems[i] = f.Type
		t.names[i] = f.Name
	}
	return t
}

func TupleType(elems ...Type) Type {
	return Type{kind: TupleKind, elems: append([]Type(nil), elems...)}
}

// Kind returns the shape of |t|.
func (t Type) Kind() Kind {
	return t.kind
}

// ElemCount returns the number of element types of |t|.
func (t Type) ElemCount() int {
	return len(t.elems)
}

// Elem returns the ith element type of |t|. For unary composites the only
// element is at index 0.
func (t Type) Elem(i int) (Type, error) {
	if i < 0 || i >= len(t.elems) {
		return Type{}, ErrIndexOutOfRange.New(i, t.kind, len(t.elems))
	}
	return t.elems[i], nil
}

// FieldName returns the name of the ith field of a Record type.
func (t Type) FieldName(i int) (string, error) {
	if t.kind != RecordKind {
		return "", ErrBadType.New(RecordKind, t.kind)
	}
	if i < 0 || i >= len(t.names) {
		return "", ErrIndexOutOfRange.New(i, t.kind, len(t.names))
	}
	return t.names[i], nil
}

// Key returns the key type of a Map type.
func (t Type) Key() (Type, error) {
	if t.kind != MapKind {
		return Type{}, ErrBadType.New(MapKind, t.kind)
	}
	return t.elems[0], nil
}

// Val returns the value type of a Map type.
func (t Type) Val() (Type, error) {
	if t.kind != MapKind {
		return Type{}, ErrBadType.New(MapKind, t.kind)
	}
	return t.elems[1], nil
}

// Equals returns true if |t| and |other| describe the same structure.
func (t Type) Equals(other Type) bool {
	return OrderTypes(t, other) == Eq
}

// String returns a human readable rendering of |t|.
func (t Type) String() string {
	var sb strings.Builder
	t.writeTo(&sb)
	return sb.String()
}

func (t Type) writeTo(sb *strings.Builder) {
	switch {
	case t.kind.IsUnary():
		sb.WriteString(t.kind.String())
		sb.WriteByte('<')
		t.elems[0].writeTo(sb)
		sb.WriteByte('>')
	case t.kind == MapKind:
		sb.WriteString("map<")
		t.elems[0].writeTo(sb)
		sb.WriteString(", ")
		t.elems[1].writeTo(sb)
		sb.WriteByte('>')
	case t.kind == RecordKind:
		sb.WriteString("<{")
		for i, e := range t.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(t.names[i])
			sb.WriteString(": ")
			e.writeTo(sb)
		}
		sb.WriteString("}>")
	case t.kind == TupleKind:
		sb.WriteByte('(')
		for i, e := range t.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeTo(sb)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString(t.kind.String())
	}
}
