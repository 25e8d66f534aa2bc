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

import "github.com/dolthub/sabot/store/d"

// MatchTypes reports whether |a| and |b| are structurally the same type,
// ignoring any values. Tombstones never occupy key positions, so meeting
// one here is a logic error and panics.
func MatchTypes(a, b Type) bool {
	d.PanicIfTrue(a.kind == TombstoneKind || b.kind == TombstoneKind,
		"tombstone in key position")
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case DescKind, FreeKind, OptKind, SetKind, VectorKind:
		return MatchTypes(a.elems[0], b.elems[0])
	case MapKind:
		return MatchTypes(a.elems[0], b.elems[0]) && MatchTypes(a.elems[1], b.elems[1])
	case RecordKind:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if a.names[i] != b.names[i] || !MatchTypes(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case TupleKind:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !MatchTypes(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	default:
		// scalars, strings, blobs and void
		return true
	}
}
