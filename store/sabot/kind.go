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

// Package sabot describes the closed grammar of structural types and
// the states (typed live data) that inhabit them. Every other part of the
// value core is generic over this grammar.
package sabot

// Kind identifies one shape of the type grammar.
type Kind uint8

// All shapes are enumerated here. The declaration order is the type-code
// ordering used by OrderTypes, so appending is safe but reordering changes
// the sort order of every index built on these types.
const (
	Int8Kind Kind = iota
	Int16Kind
	Int32Kind
	Int64Kind
	Uint8Kind
	Uint16Kind
	Uint32Kind
	Uint64Kind
	BoolKind
	CharKind
	FloatKind
	DoubleKind
	DurationKind
	TimePointKind
	UUIDKind

	BlobKind
	StrKind

	TombstoneKind
	VoidKind

	// unary composites
	DescKind
	FreeKind
	OptKind
	SetKind
	VectorKind

	MapKind

	RecordKind
	TupleKind

	UnknownKind Kind = 255
)

var KindToString = map[Kind]string{
	Int8Kind:      "int8",
	Int16Kind:     "int16",
	Int32Kind:     "int32",
	Int64Kind:     "int64",
	Uint8Kind:     "uint8",
	Uint16Kind:    "uint16",
	Uint32Kind:    "uint32",
	Uint64Kind:    "uint64",
	BoolKind:      "bool",
	CharKind:      "char",
	FloatKind:     "float",
	DoubleKind:    "double",
	DurationKind:  "duration",
	TimePointKind: "time_pnt",
	UUIDKind:      "uuid",
	BlobKind:      "blob",
	StrKind:       "str",
	TombstoneKind: "tombstone",
	VoidKind:      "void",
	DescKind:      "desc",
	FreeKind:      "free",
	OptKind:       "opt",
	SetKind:       "set",
	VectorKind:    "vector",
	MapKind:       "map",
	RecordKind:    "record",
	TupleKind:     "tuple",
	UnknownKind:   "unknown",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if s, ok := KindToString[k]; ok {
		return s
	}
	return KindToString[UnknownKind]
}

// IsScalar returns true for the fixed-size, data-carrying kinds.
func (k Kind) IsScalar() bool {
	return k <= UUIDKind
}

// IsUnary returns true for composites with a single element type.
func (k Kind) IsUnary() bool {
	return k >= DescKind && k <= VectorKind
}

// IsValid returns true if |k| is a member of the grammar.
func (k Kind) IsValid() bool {
	return k <= TupleKind
}

// scalarSize is the number of payload bytes a scalar kind occupies.
func scalarSize(k Kind) int {
	switch k {
	case Int8Kind, Uint8Kind, BoolKind, CharKind:
		return 1
	case Int16Kind, Uint16Kind:
		return 2
	case Int32Kind, Uint32Kind, FloatKind:
		return 4
	case Int64Kind, Uint64Kind, DoubleKind, DurationKind, TimePointKind:
		return 8
	case UUIDKind:
		return 16
	default:
		return 0
	}
}

// ScalarSize returns the encoded byte size of a scalar kind, or false if
// |k| is not a scalar.
func ScalarSize(k Kind) (int, bool) {
	sz := scalarSize(k)
	return sz, sz > 0
}
