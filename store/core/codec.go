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
	"encoding/binary"

	"github.com/dolthub/sabot/store/d"
	"github.com/dolthub/sabot/store/sabot"
)

// Value payload layout.
//
// flat indirect (Blob, Str):
//   [0:8]   offset
//   [8:16]  byte count, excluding the str terminator
//
// composite indirect:
//   [0:8]   offset
//   [8:12]  element count of this view
//   [12]    flags
//   [13:21] memoized hash
const (
	offsetEnd = 8
	sizeEnd   = 16
	countEnd  = 12
	flagsIdx  = 12
	hashStart = 13
	hashEnd   = 21
)

type compositeFlags uint8

const (
	exemplarFlag compositeFlags = 1 << iota
	fullNoteFlag
	storesHashFlag
)

func expectSize(buf []byte, sz int) {
	if len(buf) != sz {
		d.Panic("byte slice is not of expected size: %d != %d", len(buf), sz)
	}
}

func readUint32(buf []byte) uint32 {
	expectSize(buf, 4)
	return binary.LittleEndian.Uint32(buf)
}

func writeUint32(buf []byte, val uint32) {
	expectSize(buf, 4)
	binary.LittleEndian.PutUint32(buf, val)
}

func readUint64(buf []byte) uint64 {
	expectSize(buf, 8)
	return binary.LittleEndian.Uint64(buf)
}

func writeUint64(buf []byte, val uint64) {
	expectSize(buf, 8)
	binary.LittleEndian.PutUint64(buf, val)
}

// writeScalar stores the low bytes of |bits| in the width of |k|.
func writeScalar(buf []byte, k sabot.Kind, bits uint64) {
	sz, ok := sabot.ScalarSize(k)
	d.PanicIfFalse(ok && k != sabot.UUIDKind, "%s is not a fixed-width scalar", k)
	switch sz {
	case 1:
		buf[0] = byte(bits)
	case 2:
		binary.LittleEndian.PutUint16(buf[:2], uint16(bits))
	case 4:
		binary.LittleEndian.PutUint32(buf[:4], uint32(bits))
	case 8:
		binary.LittleEndian.PutUint64(buf[:8], bits)
	}
}

// readScalar returns the payload of |k| widened to 64 bits without sign
// extension.
func readScalar(buf []byte, k sabot.Kind) uint64 {
	sz, _ := sabot.ScalarSize(k)
	switch sz {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(buf[:2]))
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf[:4]))
	case 8:
		return binary.LittleEndian.Uint64(buf[:8])
	default:
		d.Panic("%s is not a fixed-width scalar", k)
		return 0
	}
}

func signExtend(bits uint64, k sabot.Kind) int64 {
	switch k {
	case sabot.Int8Kind:
		return int64(int8(bits))
	case sabot.Int16Kind:
		return int64(int16(bits))
	case sabot.Int32Kind:
		return int64(int32(bits))
	default:
		return int64(bits)
	}
}
