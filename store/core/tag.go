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

// Package core implements the value flyweight: a fixed-size tagged record
// that holds small values inline and references arena-resident notes for
// everything else, along with the ordering, prefix matching and hashing
// built on it.
package core

import (
	"fmt"

	"github.com/dolthub/sabot/store/sabot"
)

const (
	// ValueSize is the encoded size of a Value.
	ValueSize = 24

	// MaxDirectSize is the largest string or blob stored inline.
	MaxDirectSize = ValueSize - 1
)

// Tag is the discriminant of a Value. Direct strings and blobs fold their
// length into the tag; every other shape has exactly one tag.
type Tag uint8

const (
	directStrTag  Tag = 0
	directBlobTag Tag = MaxDirectSize + 1
	scalarTagBase Tag = 2 * (MaxDirectSize + 1)
)

// Tags from Int8Tag onward follow sabot's kind order, so the kind of a
// non-direct tag is its distance from Int8Tag.
const (
	Int8Tag Tag = scalarTagBase + iota
	Int16Tag
	Int32Tag
	Int64Tag
	Uint8Tag
	Uint16Tag
	Uint32Tag
	Uint64Tag
	BoolTag
	CharTag
	FloatTag
	DoubleTag
	DurationTag
	TimePointTag
	UUIDTag

	BlobTag
	StrTag
	TombstoneTag
	VoidTag
	DescTag
	FreeTag
	OptTag
	SetTag
	VectorTag
	MapTag
	RecordTag
	TupleTag
)

// DirectStrTag returns the tag of an inline string of |n| bytes.
func DirectStrTag(n int) Tag {
	return directStrTag + Tag(n)
}

// DirectBlobTag returns the tag of an inline blob of |n| bytes.
func DirectBlobTag(n int) Tag {
	return directBlobTag + Tag(n)
}

// TagForKind returns the tag of the indirect or scalar encoding of |k|.
func TagForKind(k sabot.Kind) Tag {
	return Int8Tag + Tag(k)
}

func (t Tag) IsValid() bool {
	return t <= TupleTag
}

func (t Tag) IsDirectStr() bool {
	return t < directBlobTag
}

func (t Tag) IsDirectBlob() bool {
	return t >= directBlobTag && t < scalarTagBase
}

// DirectSize returns the inline byte count of a direct string or blob tag.
func (t Tag) DirectSize() int {
	switch {
	case t.IsDirectStr():
		return int(t - directStrTag)
	case t.IsDirectBlob():
		return int(t - directBlobTag)
	default:
		return 0
	}
}

func (t Tag) IsScalar() bool {
	return t >= Int8Tag && t <= UUIDTag
}

// IsFlat returns true for the indirect tags whose notes hold raw bytes.
func (t Tag) IsFlat() bool {
	return t == BlobTag || t == StrTag
}

// IsComposite returns true for the indirect tags whose notes hold values
// or value pairs.
func (t Tag) IsComposite() bool {
	return t >= DescTag && t <= TupleTag
}

// IsIndirect returns true if values of this tag reference a note.
func (t Tag) IsIndirect() bool {
	return t.IsFlat() || t.IsComposite()
}

// IsPaired returns true for the composite tags whose notes hold pairs.
func (t Tag) IsPaired() bool {
	return t == MapTag || t == RecordTag
}

// Kind returns the sabot shape encoded by |t|.
func (t Tag) Kind() sabot.Kind {
	switch {
	case t.IsDirectStr():
		return sabot.StrKind
	case t.IsDirectBlob():
		return sabot.BlobKind
	case t.IsValid():
		return sabot.Kind(t - Int8Tag)
	default:
		return sabot.UnknownKind
	}
}

func (t Tag) String() string {
	switch {
	case t.IsDirectStr():
		return fmt.Sprintf("str[%d]", t.DirectSize())
	case t.IsDirectBlob():
		return fmt.Sprintf("blob[%d]", t.DirectSize())
	case t.IsIndirect():
		return "*" + t.Kind().String()
	case t.IsValid():
		return t.Kind().String()
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}
