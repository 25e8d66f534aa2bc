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

// MatchResult is the outcome of matching a query tuple against a key.
type MatchResult uint8

const (
	// NoMatch means some fixed query field differs from the key.
	NoMatch MatchResult = iota
	// Prefix means the query bounds the key but does not pin it down: the
	// query stops short of the key on a fixed field, or a wildcard's type
	// diverges.
	Prefix
	// Unifies means every query field matches the key exactly, wildcards
	// by type.
	Unifies
)

func (m MatchResult) String() string {
	switch m {
	case NoMatch:
		return "NoMatch"
	case Prefix:
		return "Prefix"
	case Unifies:
		return "Unifies"
	default:
		return "MatchResult(?)"
	}
}

// PrefixMatch tests whether the key tuple |key| falls within the bound
// described by |query|. Fixed query fields must compare Eq to their key
// fields. Free query fields match any key field whose type matches the
// wildcard's declared type; a type mismatch ends the match as Prefix. A
// query shorter than the key unifies when its last field is a matching
// wildcard, and is a Prefix otherwise. Queries longer than the key never
// match.
func PrefixMatch(query Value, qa Arena, key Value, ka Arena) (MatchResult, error) {
	if !query.IsTuple() {
		return NoMatch, ErrBadType.New(TupleTag, query.tag)
	}
	if !key.IsTuple() {
		return NoMatch, ErrBadType.New(TupleTag, key.tag)
	}
	if query.IsTruncated() || key.IsTruncated() {
		return NoMatch, ErrTruncatedView.New("prefix match")
	}

	qn, kn := query.count(), key.count()
	if qn > kn {
		return NoMatch, nil
	}

	qp, err := query.pin(qa)
	if err != nil {
		return NoMatch, err
	}
	defer qp.Release()
	kp, err := key.pin(ka)
	if err != nil {
		return NoMatch, err
	}
	defer kp.Release()

	qarr, err := qp.Note().AsValueArray()
	if err != nil {
		return NoMatch, err
	}
	karr, err := kp.Note().AsValueArray()
	if err != nil {
		return NoMatch, err
	}

	trailingFree := false
	for i := 0; i < qn; i++ {
		q, k := qarr.Get(i), karr.Get(i)
		trailingFree = false
		if q.IsFree() {
			ok, err := matchFree(q, qa, k, ka)
			if err != nil {
				return NoMatch, err
			}
			if !ok {
				return Prefix, nil
			}
			trailingFree = true
			continue
		}

		o, err := Compare(q, qa, k, ka)
		if err != nil {
			return NoMatch, err
		}
		if o != sabot.Eq {
			return NoMatch, nil
		}
	}

	// a matched wildcard in the last query field absorbs the rest of the key
	if qn == kn || trailingFree {
		return Unifies, nil
	}
	return Prefix, nil
}

// matchFree reports whether the wildcard |free| admits the key field |k|.
func matchFree(free Value, fa Arena, k Value, ka Arena) (bool, error) {
	ft, err := free.GetType(fa)
	if err != nil {
		return false, err
	}
	et, err := ft.Elem(0)
	if err != nil {
		return false, err
	}
	kt, err := k.GetType(ka)
	if err != nil {
		return false, err
	}
	return sabot.MatchTypes(et, kt), nil
}
