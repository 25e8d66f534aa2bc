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

// Package index provides an ordered in-memory map from tuple keys to
// values, with prefix scans driven by wildcard queries.
package index

import (
	"github.com/sirupsen/logrus"

	"github.com/dolthub/sabot/store/core"
	"github.com/dolthub/sabot/store/sabot"
)

// ScanFn receives each key matched by a Scan, with its value and match
// result. Returning true stops the scan.
type ScanFn func(key, val core.Value, res core.MatchResult) (stop bool, err error)

// Index maps tuple keys to values ordered by core.Compare. Keys and
// values live in the index's arena.
//
// Index is not safe for concurrent use.
type Index struct {
	arena core.ExtensibleArena
	list  *list
	log   *logrus.Logger

	// keyType is the type shared by every key while mixed is false.
	keyType sabot.Type
	mixed   bool
}

// New returns an empty index over |a|. A nil |log| uses the standard
// logrus logger.
func New(a core.ExtensibleArena, log *logrus.Logger) *Index {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Index{arena: a, list: newList(a), log: log}
}

func (ix *Index) Arena() core.ExtensibleArena {
	return ix.arena
}

func (ix *Index) Count() int {
	return int(ix.list.count)
}

// Clear deletes every entry. Notes already proposed stay in the arena.
func (ix *Index) Clear() {
	ix.list.truncate()
	ix.keyType, ix.mixed = sabot.Type{}, false
}

// Put stores |val| under |key|, replacing any value already there. Both
// must already live in the index's arena, and |key| must be a full tuple.
func (ix *Index) Put(key, val core.Value) error {
	if !key.IsTuple() {
		return core.ErrBadType.New(core.TupleTag, key.Tag())
	}
	if key.IsTruncated() {
		return core.ErrTruncatedView.New("index key")
	}
	if err := ix.trackKeyType(key); err != nil {
		return err
	}
	return ix.list.put(key, val)
}

// trackKeyType notes whether |key| shares the type of the keys already
// stored. Keys of one tuple type are ordered field by field, which lets
// Scan seek.
func (ix *Index) trackKeyType(key core.Value) error {
	if ix.mixed {
		return nil
	}
	t, err := key.GetType(ix.arena)
	if err != nil {
		return err
	}
	if ix.Count() == 0 {
		ix.keyType = t
	} else if !ix.keyType.Equals(t) {
		ix.mixed = true
		ix.log.Debugf("index: key type %s differs from %s, scans will not seek", t, ix.keyType)
	}
	return nil
}

// PutState copies |key| and |val| into the index's arena and stores them.
func (ix *Index) PutState(key, val sabot.State) error {
	k, err := core.FromState(key, ix.arena)
	if err != nil {
		return err
	}
	v, err := core.FromState(val, ix.arena)
	if err != nil {
		return err
	}
	return ix.Put(k, v)
}

// Get returns the value stored under |key|, which lives in |ka|.
func (ix *Index) Get(key core.Value, ka core.Arena) (core.Value, bool, error) {
	node, ok, err := ix.list.get(key, ka)
	if err != nil || !ok {
		return core.Value{}, false, err
	}
	return node.val, true, nil
}

func (ix *Index) Has(key core.Value, ka core.Arena) (bool, error) {
	_, ok, err := ix.list.get(key, ka)
	return ok, err
}

// IterAt returns an iterator at the smallest key >= |key|. The iterator
// is invalid if every key is smaller.
func (ix *Index) IterAt(key core.Value, ka core.Arena) (*Iter, error) {
	node, err := ix.list.seek(key, ka)
	if err != nil {
		return nil, err
	}
	return &Iter{curr: node, list: ix.list}, nil
}

func (ix *Index) IterAtStart() *Iter {
	return &Iter{curr: ix.list.firstNode(), list: ix.list}
}

func (ix *Index) IterAtEnd() *Iter {
	return &Iter{curr: ix.list.lastNode(), list: ix.list}
}

// Scan calls |cb| for every key that |query| matches as a Prefix or that
// it Unifies with, in key order. The query is a tuple in |qa| whose fields
// are fixed values or Free wildcards. When every key shares one type,
// scanning seeks to the fields before the first wildcard and stops once
// keys leave that range; otherwise every key is tested.
func (ix *Index) Scan(query core.Value, qa core.Arena, cb ScanFn) error {
	prefix, fixed, err := fixedPrefix(query, qa)
	if err != nil {
		return err
	}
	seek := fixed > 0 && !ix.mixed
	ix.log.Debugf("index: scanning %d keys with %d fixed fields (seek: %t)", ix.Count(), fixed, seek)

	it := ix.IterAtStart()
	if seek {
		node, err := ix.list.seekFn(func(k core.Value) (sabot.Ordering, error) {
			return comparePrefix(prefix, qa, k, ix.arena, fixed)
		})
		if err != nil {
			return err
		}
		it = &Iter{curr: node, list: ix.list}
	}

	for ; it.Valid(); it.Advance() {
		key, val := it.Current()
		if seek {
			o, err := comparePrefix(prefix, qa, key, ix.arena, fixed)
			if err != nil {
				return err
			}
			if o == sabot.Lt {
				break
			}
		}

		res, err := core.PrefixMatch(query, qa, key, ix.arena)
		if err != nil {
			return err
		}
		if res == core.NoMatch {
			continue
		}
		stop, err := cb(key, val, res)
		if err != nil || stop {
			return err
		}
	}
	return nil
}

// fixedPrefix truncates |query| to the fields before its first wildcard
// and returns that view with its length. A view of one field is the
// shortest a tuple can be truncated to, so a leading wildcard reports zero
// fixed fields.
func fixedPrefix(query core.Value, qa core.Arena) (core.Value, int, error) {
	if !query.IsTuple() {
		return core.Value{}, 0, core.ErrBadType.New(core.TupleTag, query.Tag())
	}
	if query.IsTruncated() {
		return core.Value{}, 0, core.ErrTruncatedView.New("scan")
	}
	n, _ := query.TryGetElemCount()

	pin, err := core.NewPin(qa, query.Offset(), n*core.ValueSize)
	if err != nil {
		return core.Value{}, 0, err
	}
	defer pin.Release()
	arr, err := pin.Note().AsValueArray()
	if err != nil {
		return core.Value{}, 0, err
	}

	fixed := 0
	for fixed < n && !arr.Get(fixed).IsFree() {
		fixed++
	}

	prefix := query
	for c := n; c > fixed && c > 1; c-- {
		if _, err := prefix.TryTruncateTuple(); err != nil {
			return core.Value{}, 0, err
		}
	}
	return prefix, fixed, nil
}

// comparePrefix orders |prefix| against the first |n| fields of |key|, so
// both sides have the same arity. Keys with at most |n| fields are
// compared whole.
func comparePrefix(prefix core.Value, pa core.Arena, key core.Value, ka core.Arena, n int) (sabot.Ordering, error) {
	c, _ := key.TryGetElemCount()
	for ; c > n; c-- {
		if _, err := key.TryTruncateTuple(); err != nil {
			return sabot.Eq, err
		}
	}
	return core.Compare(prefix, pa, key, ka)
}
