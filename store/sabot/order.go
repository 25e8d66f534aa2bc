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
	"bytes"
	"math"
	"strings"

	"github.com/dolthub/sabot/store/d"
)

// Ordering is the result of a three-way comparison.
type Ordering int8

const (
	Lt Ordering = -1
	Eq Ordering = 0
	Gt Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Lt:
		return "Lt"
	case Eq:
		return "Eq"
	case Gt:
		return "Gt"
	default:
		return "Ordering(?)"
	}
}

// Reverse flips Lt and Gt.
func (o Ordering) Reverse() Ordering {
	return -o
}

// FromInt maps a negative/zero/positive comparison result to an Ordering.
func FromInt(cmp int) Ordering {
	switch {
	case cmp < 0:
		return Lt
	case cmp > 0:
		return Gt
	default:
		return Eq
	}
}

// OrderTypes orders two types lexicographically: first by kind code, then
// by element types left to right (record fields by name, then type), and
// finally by arity.
func OrderTypes(a, b Type) Ordering {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return Lt
		}
		return Gt
	}

	n := len(a.elems)
	if len(b.elems) < n {
		n = len(b.elems)
	}
	for i := 0; i < n; i++ {
		if a.kind == RecordKind {
			if o := FromInt(strings.Compare(a.names[i], b.names[i])); o != Eq {
				return o
			}
		}
		if o := OrderTypes(a.elems[i], b.elems[i]); o != Eq {
			return o
		}
	}
	return orderLengths(len(a.elems), len(b.elems))
}

// shape groups kinds by how their states are compared.
type shape uint8

const (
	scalarShape shape = iota
	bytesShape
	emptyShape
	singlesShape
	descShape
	pairsShape
)

func shapeOf(k Kind) shape {
	switch {
	case k.IsScalar():
		return scalarShape
	case k == BlobKind || k == StrKind:
		return bytesShape
	case k == TombstoneKind || k == VoidKind || k == FreeKind:
		return emptyShape
	case k == DescKind:
		return descShape
	case k == MapKind:
		return pairsShape
	default:
		return singlesShape
	}
}

// OrderStates is the generic total order over states. Types are compared
// first; states of equal type are then compared by shape.
//
// Pairings of different shapes cannot pass the type check, so reaching one
// is an invariant violation and panics.
func OrderStates(a, b State) Ordering {
	if o := OrderTypes(a.typ, b.typ); o != Eq {
		return o
	}

	switch [2]shape{shapeOf(a.typ.kind), shapeOf(b.typ.kind)} {
	case [2]shape{scalarShape, scalarShape}:
		d.PanicIfFalse(a.typ.kind == b.typ.kind, "cannot order %s against %s", a.typ.kind, b.typ.kind)
		return orderScalars(a, b)
	case [2]shape{bytesShape, bytesShape}:
		return FromInt(bytes.Compare(a.bytes, b.bytes))
	case [2]shape{emptyShape, emptyShape}:
		return Eq
	case [2]shape{singlesShape, singlesShape}:
		return orderElems(a.elems, b.elems)
	case [2]shape{descShape, descShape}:
		return orderElems(a.elems, b.elems).Reverse()
	case [2]shape{pairsShape, pairsShape}:
		return orderPairs(a.elems, b.elems)
	default:
		d.Panic("cannot order %s against %s", a.typ.kind, b.typ.kind)
		return Eq
	}
}

func orderScalars(a, b State) Ordering {
	switch a.typ.kind {
	case Int8Kind, Int16Kind, Int32Kind, Int64Kind, DurationKind, TimePointKind:
		// sign-extended at construction
		return orderInt64(int64(a.bits), int64(b.bits))
	case Uint8Kind, Uint16Kind, Uint32Kind, Uint64Kind, BoolKind, CharKind:
		return orderUint64(a.bits, b.bits)
	case FloatKind:
		return orderFloat64(
			float64(math.Float32frombits(uint32(a.bits))),
			float64(math.Float32frombits(uint32(b.bits))))
	case DoubleKind:
		return orderFloat64(math.Float64frombits(a.bits), math.Float64frombits(b.bits))
	case UUIDKind:
		return FromInt(bytes.Compare(a.id[:], b.id[:]))
	default:
		d.Panic("%s is not a scalar", a.typ.kind)
		return Eq
	}
}

// orderElems compares element sequences left to right; an equal prefix
// puts the shorter sequence first.
func orderElems(a, b []State) Ordering {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if o := OrderStates(a[i], b[i]); o != Eq {
			return o
		}
	}
	return orderLengths(len(a), len(b))
}

// orderPairs compares interleaved key/value sequences pair by pair, key
// before value.
func orderPairs(a, b []State) Ordering {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i+1 < n; i += 2 {
		if o := OrderStates(a[i], b[i]); o != Eq {
			return o
		}
		if o := OrderStates(a[i+1], b[i+1]); o != Eq {
			return o
		}
	}
	return orderLengths(len(a), len(b))
}

func orderLengths(l, r int) Ordering {
	if l < r {
		return Lt
	} else if l > r {
		return Gt
	}
	return Eq
}

func orderInt64(l, r int64) Ordering {
	if l == r {
		return Eq
	} else if l < r {
		return Lt
	}
	return Gt
}

func orderUint64(l, r uint64) Ordering {
	if l == r {
		return Eq
	} else if l < r {
		return Lt
	}
	return Gt
}

// orderFloat64 uses native comparison; NaN is neither less than nor equal
// to anything and so sorts Gt.
func orderFloat64(l, r float64) Ordering {
	if l == r {
		return Eq
	} else if l < r {
		return Lt
	}
	return Gt
}

// OrderInt64 and friends expose the scalar orderings to the flyweight's
// quick path so both tiers agree.
func OrderInt64(l, r int64) Ordering { return orderInt64(l, r) }
func OrderUint64(l, r uint64) Ordering { return orderUint64(l, r) }
func OrderFloat64(l, r float64) Ordering { return orderFloat64(l, r) }
