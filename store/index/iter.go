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

package index

import "github.com/dolthub/sabot/store/core"

// Iter walks an Index in key order. It becomes invalid when it moves past
// either end.
type Iter struct {
	curr skipNode
	list *list
}

func (it *Iter) Valid() bool {
	return it.curr.id != sentinelId
}

func (it *Iter) Count() int {
	return int(it.list.count)
}

func (it *Iter) Current() (key, val core.Value) {
	return it.curr.key, it.curr.val
}

func (it *Iter) Advance() {
	it.curr = it.list.getNode(it.curr.next[0])
}

func (it *Iter) Retreat() {
	it.curr = it.list.getNode(it.curr.prev)
}
