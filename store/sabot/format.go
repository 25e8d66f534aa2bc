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
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Format renders |s| in a compact literal syntax. It is meant for logs and
// test failures, not for parsing.
func Format(s State) string {
	var sb strings.Builder
	formatTo(&sb, s)
	return sb.String()
}

func formatTo(sb *strings.Builder, s State) {
	switch k := s.typ.kind; k {
	case Int8Kind, Int16Kind, Int32Kind, Int64Kind:
		i, _ := s.AsInt()
		sb.WriteString(strconv.FormatInt(i, 10))
	case Uint8Kind, Uint16Kind, Uint32Kind, Uint64Kind:
		sb.WriteString(strconv.FormatUint(s.bits, 10))
		sb.WriteByte('u')
	case BoolKind:
		sb.WriteString(strconv.FormatBool(s.bits != 0))
	case CharKind:
		sb.WriteString(strconv.QuoteRune(rune(s.bits)))
	case FloatKind, DoubleKind:
		f, _ := s.AsFloat()
		sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case DurationKind:
		sb.WriteString(time.Duration(s.bits).String())
	case TimePointKind:
		t, _ := s.AsTimePoint()
		sb.WriteString(t.Format(time.RFC3339Nano))
	case UUIDKind:
		sb.WriteString(s.id.String())
	case StrKind:
		sb.WriteString(strconv.Quote(string(s.bytes)))
	case BlobKind:
		sb.WriteString("0x")
		sb.WriteString(hex.EncodeToString(s.bytes))
	case TombstoneKind, VoidKind:
		sb.WriteString(k.String())
	case FreeKind:
		sb.WriteString(s.typ.String())
	case DescKind:
		sb.WriteString("desc(")
		formatTo(sb, s.elems[0])
		sb.WriteByte(')')
	case OptKind:
		if len(s.elems) == 0 {
			sb.WriteString("unknown ")
			sb.WriteString(s.typ.elems[0].String())
			return
		}
		formatTo(sb, s.elems[0])
		sb.WriteByte('?')
	case SetKind:
		formatSeq(sb, "{", "}", s.elems)
	case VectorKind:
		formatSeq(sb, "[", "]", s.elems)
	case TupleKind:
		formatSeq(sb, "(", ")", s.elems)
	case MapKind:
		sb.WriteByte('{')
		for i := 0; i+1 < len(s.elems); i += 2 {
			if i > 0 {
				sb.WriteString(", ")
			}
			formatTo(sb, s.elems[i])
			sb.WriteString(": ")
			formatTo(sb, s.elems[i+1])
		}
		sb.WriteByte('}')
	case RecordKind:
		sb.WriteString("<{")
		for i, e := range s.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(s.typ.names[i])
			sb.WriteString(": ")
			formatTo(sb, e)
		}
		sb.WriteString("}>")
	default:
		sb.WriteString(k.String())
	}
}

func formatSeq(sb *strings.Builder, open, close string, elems []State) {
	sb.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		formatTo(sb, e)
	}
	sb.WriteString(close)
}
