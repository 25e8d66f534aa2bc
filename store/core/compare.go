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
	"bytes"
	"math"

	"github.com/dolthub/sabot/store/sabot"
)

// Compare orders two values of matching type. The quick path decides
// without building states where it can; everything else falls back to
// sabot.OrderStates. Comparing values of unrelated types is a caller error
// and yields the type order rather than a value order.
func Compare(lhs Value, la Arena, rhs Value, ra Arena) (sabot.Ordering, error) {
	if o, ok, err := QuickCompare(lhs, la, rhs, ra); err != nil || ok {
		return o, err
	}

	ls, err := lhs.NewState(la)
	if err != nil {
		return sabot.Eq, err
	}
	rs, err := rhs.NewState(ra)
	if err != nil {
		return sabot.Eq, err
	}
	return sabot.OrderStates(ls, rs), nil
}

// QuickCompare orders |lhs| and |rhs| when it can do so without the
// generic fallback, returning false otherwise:
//   - same tag, same ordered arena, both full and indirect: by offset
//   - same scalar tag: natively
//   - both tuples: element-wise quick comparison, then by length
//   - both strs or both blobs, direct or indirect: byte-wise
func QuickCompare(lhs Value, la Arena, rhs Value, ra Arena) (sabot.Ordering, bool, error) {
	switch {
	case lhs.tag == rhs.tag && lhs.IsIndirect() && !lhs.IsTruncated() && !rhs.IsTruncated() && sameOrderedArena(la, ra):
		return sabot.OrderUint64(uint64(lhs.Offset()), uint64(rhs.Offset())), true, nil

	case lhs.tag == rhs.tag && lhs.tag.IsScalar():
		return compareScalars(lhs, rhs), true, nil

	case lhs.tag == TupleTag && rhs.tag == TupleTag:
		return compareTuples(lhs, la, rhs, ra)

	case lhs.isBytes() && lhs.tag.Kind() == rhs.tag.Kind():
		return compareBytes(lhs, la, rhs, ra)
	}
	return sabot.Eq, false, nil
}

func sameOrderedArena(la, ra Arena) bool {
	return la != nil && la == ra && la.IsOrdered()
}

func compareScalars(lhs, rhs Value) sabot.Ordering {
	k := lhs.tag.Kind()
	if k == sabot.UUIDKind {
		return sabot.FromInt(bytes.Compare(lhs.data[:16], rhs.data[:16]))
	}

	l, r := readScalar(lhs.data[:], k), readScalar(rhs.data[:], k)
	switch k {
	case sabot.Int8Kind, sabot.Int16Kind, sabot.Int32Kind, sabot.Int64Kind, sabot.DurationKind, sabot.TimePointKind:
		return sabot.OrderInt64(signExtend(l, k), signExtend(r, k))
	case sabot.FloatKind:
		return sabot.OrderFloat64(
			float64(math.Float32frombits(uint32(l))),
			float64(math.Float32frombits(uint32(r))))
	case sabot.DoubleKind:
		return sabot.OrderFloat64(math.Float64frombits(l), math.Float64frombits(r))
	default:
		// unsigned, bool and char
		return sabot.OrderUint64(l, r)
	}
}

func compareTuples(lhs Value, la Arena, rhs Value, ra Arena) (sabot.Ordering, bool, error) {
	lp, err := lhs.pin(la)
	if err != nil {
		return sabot.Eq, false, err
	}
	defer lp.Release()
	rp, err := rhs.pin(ra)
	if err != nil {
		return sabot.Eq, false, err
	}
	defer rp.Release()

	larr, err := lp.Note().AsValueArray()
	if err != nil {
		return sabot.Eq, false, err
	}
	rarr, err := rp.Note().AsValueArray()
	if err != nil {
		return sabot.Eq, false, err
	}

	ln, rn := lhs.count(), rhs.count()
	for i := 0; i < ln && i < rn; i++ {
		o, ok, err := QuickCompare(larr.Get(i), la, rarr.Get(i), ra)
		if err != nil || !ok {
			return sabot.Eq, false, err
		}
		if o != sabot.Eq {
			return o, true, nil
		}
	}
	return sabot.OrderInt64(int64(ln), int64(rn)), true, nil
}

func compareBytes(lhs Value, la Arena, rhs Value, ra Arena) (sabot.Ordering, bool, error) {
	lb, lp, err := lhs.bytesOf(la)
	if err != nil {
		return sabot.Eq, false, err
	}
	defer lp.Release()
	rb, rp, err := rhs.bytesOf(ra)
	if err != nil {
		return sabot.Eq, false, err
	}
	defer rp.Release()
	return sabot.FromInt(bytes.Compare(lb, rb)), true, nil
}
