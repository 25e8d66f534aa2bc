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

	"github.com/cespare/xxhash/v2"

	"github.com/dolthub/sabot/store/sabot"
)

// TryGetQuickHash returns the hash of |v| when it is available without
// dereferencing: scalars, Void, Tombstone and direct strs and blobs, plus
// composites carrying a memoized hash.
func (v Value) TryGetQuickHash() (uint64, bool) {
	switch {
	case v.tag.IsDirectStr() || v.tag.IsDirectBlob():
		return hashBytes(v.tag.Kind(), v.data[:v.tag.DirectSize()]), true
	case v.tag.IsScalar():
		return hashScalar(v), true
	case v.tag == VoidTag || v.tag == TombstoneTag:
		return hashBytes(v.tag.Kind(), nil), true
	case v.tag.IsComposite():
		return v.TryGetStoredHash()
	default:
		return 0, false
	}
}

// TryGetStoredHash returns the memoized hash of a full indirect composite.
// Truncated views never report one.
func (v Value) TryGetStoredHash() (uint64, bool) {
	if !v.canStoreHash() || v.flags()&storesHashFlag == 0 {
		return 0, false
	}
	return readUint64(v.data[hashStart:hashEnd]), true
}

// TrySetStoredHash memoizes |h| on a full indirect composite. A hash that
// is already stored is kept. Other values, truncated views included,
// return false.
func (v *Value) TrySetStoredHash(h uint64) bool {
	if !v.canStoreHash() {
		return false
	}
	if v.flags()&storesHashFlag != 0 {
		return true
	}
	writeUint64(v.data[hashStart:hashEnd], h)
	v.data[flagsIdx] = byte(v.flags() | storesHashFlag)
	return true
}

func (v Value) canStoreHash() bool {
	return v.tag.IsComposite() && v.flags()&fullNoteFlag != 0
}

// Hash returns the structural hash of |v|, reading notes from |a| as
// needed. Equal values hash equally regardless of encoding. The result is
// memoized on full indirect composites.
func (v *Value) Hash(a Arena) (uint64, error) {
	if h, ok := v.TryGetQuickHash(); ok {
		return h, nil
	}

	if v.tag.IsFlat() {
		b, pin, err := v.bytesOf(a)
		if err != nil {
			return 0, err
		}
		defer pin.Release()
		return hashBytes(v.tag.Kind(), b), nil
	}

	h, err := v.hashComposite(a)
	if err != nil {
		return 0, err
	}
	v.TrySetStoredHash(h)
	return h, nil
}

func (v Value) hashComposite(a Arena) (uint64, error) {
	pin, err := v.pin(a)
	if err != nil {
		return 0, err
	}
	defer pin.Release()

	var arr ValueArray
	if v.tag.IsPaired() {
		pairs, err := pin.Note().AsValuePairArray()
		if err != nil {
			return 0, err
		}
		arr = ValueArray(pairs)
	} else if arr, err = pin.Note().AsValueArray(); err != nil {
		return 0, err
	}

	n := v.count()
	if v.tag.IsPaired() {
		n *= 2
	}
	if v.IsExemplar() || v.tag == FreeTag {
		// the witness distinguishes empty containers of different types
		n = arr.Len()
	}

	var hdr [5]byte
	hdr[0] = byte(v.tag.Kind())
	binary.LittleEndian.PutUint32(hdr[1:], uint32(v.count()))
	dig := xxhash.New()
	_, _ = dig.Write(hdr[:])

	var buf [8]byte
	for i := 0; i < n; i++ {
		e := arr.Get(i)
		eh, err := e.Hash(a)
		if err != nil {
			return 0, err
		}
		binary.LittleEndian.PutUint64(buf[:], eh)
		_, _ = dig.Write(buf[:])
	}
	return dig.Sum64(), nil
}

func hashBytes(k sabot.Kind, b []byte) uint64 {
	dig := xxhash.New()
	_, _ = dig.Write([]byte{byte(k)})
	_, _ = dig.Write(b)
	return dig.Sum64()
}

func hashScalar(v Value) uint64 {
	k := v.tag.Kind()
	sz, _ := sabot.ScalarSize(k)
	return hashBytes(k, v.data[:sz])
}
