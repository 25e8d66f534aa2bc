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
	"github.com/dolthub/sabot/store/sabot"
)

// TryTruncateTuple shortens a tuple view by its last element. Tuples of
// one element or fewer are left alone and false is returned. A truncated
// view no longer covers its whole note, so it carries no memoized hash.
func (v *Value) TryTruncateTuple() (bool, error) {
	if v.tag != TupleTag {
		return false, ErrBadType.New(TupleTag, v.tag)
	}
	n := v.count()
	if n <= 1 {
		return false, nil
	}
	writeUint32(v.data[offsetEnd:countEnd], uint32(n-1))
	v.data[flagsIdx] = byte(v.flags() &^ (fullNoteFlag | storesHashFlag))
	clear(v.data[hashStart:hashEnd])
	return true, nil
}

// TrySplit partitions a tuple at |idx| into the elements before it and the
// elements from it onward, materializing each half in its own arena. It
// returns false when either half would be empty.
func (v Value) TrySplit(idx int, src Arena, lhsDst, rhsDst ExtensibleArena) (lhs, rhs Value, ok bool, err error) {
	if v.tag != TupleTag {
		return Value{}, Value{}, false, ErrBadType.New(TupleTag, v.tag)
	}
	n := v.count()
	if idx < 0 || idx > n {
		return Value{}, Value{}, false, ErrIndexOutOfRange.New(idx, v.tag, n)
	}
	if idx == 0 || idx == n {
		return Value{}, Value{}, false, nil
	}

	s, err := v.NewState(src)
	if err != nil {
		return Value{}, Value{}, false, err
	}
	elems := make([]sabot.State, n)
	for i := range elems {
		if elems[i], err = s.Elem(i); err != nil {
			return Value{}, Value{}, false, err
		}
	}

	if lhs, err = FromState(sabot.NewTuple(elems[:idx]...), lhsDst); err != nil {
		return Value{}, Value{}, false, err
	}
	if rhs, err = FromState(sabot.NewTuple(elems[idx:]...), rhsDst); err != nil {
		return Value{}, Value{}, false, err
	}
	return lhs, rhs, true, nil
}
