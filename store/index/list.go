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

import (
	"math"
	"math/rand"

	"github.com/dolthub/sabot/store/core"
	"github.com/dolthub/sabot/store/sabot"
)

const (
	maxHeight  = 9
	maxCount   = math.MaxUint32 - 1
	sentinelId = nodeId(0)
)

// list is a skip list of core.Value keys held in a single arena. Nodes
// live in one slice and link to each other by id.
type list struct {
	nodes []skipNode
	count uint32
	arena core.Arena
}

type nodeId uint32

type skipPointer [maxHeight + 1]nodeId

type skipNode struct {
	key, val core.Value

	id     nodeId
	next   skipPointer
	prev   nodeId
	height uint8
}

func newList(a core.Arena) *list {
	nodes := make([]skipNode, 0, 8)

	// initialize sentinel node
	nodes = append(nodes, skipNode{
		id:     sentinelId,
		height: maxHeight,
		next:   skipPointer{},
		prev:   sentinelId,
	})

	return &list{nodes: nodes, arena: a}
}

// truncate deletes all entries from the list.
func (l *list) truncate() {
	l.nodes = l.nodes[:1]
	// point sentinel.prev at itself
	s := l.getNode(sentinelId)
	s.next = skipPointer{}
	s.prev = sentinelId
	l.updateNode(s)
	l.count = 0
}

func (l *list) get(key core.Value, ka core.Arena) (skipNode, bool, error) {
	path, err := l.pathToKey(key, ka)
	if err != nil {
		return skipNode{}, false, err
	}
	node := l.getNode(path[0])
	o, err := l.compare(key, ka, node)
	if err != nil || o != sabot.Eq {
		return skipNode{}, false, err
	}
	return node, true, nil
}

func (l *list) put(key, val core.Value) error {
	if len(l.nodes) >= maxCount {
		panic("list has no capacity")
	}

	// find the path to the greatest
	// existing node key less than |key|
	path, err := l.pathBeforeKey(key, l.arena)
	if err != nil {
		return err
	}

	// check if |key| exists in |l|
	node := l.getNode(path[0])
	node = l.getNode(node.next[0])

	o, err := l.compare(key, l.arena, node)
	if err != nil {
		return err
	}
	if o == sabot.Eq {
		node.key, node.val = key, val
		l.updateNode(node)
	} else {
		l.insert(key, val, path)
		l.count++
	}
	return nil
}

func (l *list) pathToKey(key core.Value, ka core.Arena) (path skipPointer, err error) {
	next := l.headPointer()
	prev := sentinelId

	for lvl := int(maxHeight); lvl >= 0; {
		curr := l.getNode(next[lvl])

		// descend if we can't advance at |lvl|
		o, err := l.compare(key, ka, curr)
		if err != nil {
			return path, err
		}
		if o == sabot.Lt {
			path[lvl] = prev
			lvl--
			continue
		}

		// advance
		next = curr.next
		prev = curr.id
	}
	return path, nil
}

func (l *list) pathBeforeKey(key core.Value, ka core.Arena) (path skipPointer, err error) {
	next := l.headPointer()
	prev := sentinelId

	for lvl := int(maxHeight); lvl >= 0; {
		curr := l.getNode(next[lvl])

		// descend if we can't advance at |lvl|
		o, err := l.compare(key, ka, curr)
		if err != nil {
			return path, err
		}
		if o != sabot.Gt {
			path[lvl] = prev
			lvl--
			continue
		}

		// advance
		next = curr.next
		prev = curr.id
	}
	return path, nil
}

func (l *list) insert(key, val core.Value, path skipPointer) {
	novel := skipNode{
		key:    key,
		val:    val,
		id:     l.nextNodeId(),
		height: rollHeight(),
	}
	l.nodes = append(l.nodes, novel)

	for h := uint8(0); h <= novel.height; h++ {
		// set forward pointers
		n := l.getNode(path[h])
		novel.next[h] = n.next[h]
		n.next[h] = novel.id
		l.updateNode(n)
	}

	// set back pointers
	n := l.getNode(novel.next[0])
	novel.prev = n.prev
	l.updateNode(novel)
	n.prev = novel.id
	l.updateNode(n)
}

// seek returns the node with the smallest key >= |key|, or the sentinel.
func (l *list) seek(key core.Value, ka core.Arena) (node skipNode, err error) {
	return l.seekFn(func(k core.Value) (sabot.Ordering, error) {
		return core.Compare(key, ka, k, l.arena)
	})
}

// seekFn returns the first node for which |cmp| does not report Gt. |cmp|
// must be monotone over the list's key order.
func (l *list) seekFn(cmp func(k core.Value) (sabot.Ordering, error)) (node skipNode, err error) {
	ptr := l.headPointer()
	for h := int64(maxHeight); h >= 0; h-- {
		node = l.getNode(ptr[h])
		for {
			if node.id == sentinelId {
				break
			}
			o, err := cmp(node.key)
			if err != nil {
				return skipNode{}, err
			}
			if o != sabot.Gt {
				break
			}
			ptr = node.next
			node = l.getNode(ptr[h])
		}
	}
	return node, nil
}

func (l *list) headPointer() skipPointer {
	return l.nodes[0].next
}

func (l *list) firstNode() skipNode {
	return l.getNode(l.nodes[0].next[0])
}

func (l *list) lastNode() skipNode {
	s := l.getNode(sentinelId)
	return l.getNode(s.prev)
}

func (l *list) getNode(id nodeId) skipNode {
	return l.nodes[id]
}

func (l *list) updateNode(node skipNode) {
	l.nodes[node.id] = node
}

func (l *list) nextNodeId() nodeId {
	return nodeId(len(l.nodes))
}

// compare orders |key| against the key of |node|. The sentinel sorts after
// every key.
func (l *list) compare(key core.Value, ka core.Arena, node skipNode) (sabot.Ordering, error) {
	if node.id == sentinelId {
		return sabot.Lt, nil
	}
	return core.Compare(key, ka, node.key, l.arena)
}

var (
	// Precompute the skiplist probabilities so that the optimal
	// p-value can be used (inverse of Euler's number).
	//
	// https://github.com/andy-kimball/arenaskl/blob/master/skl.go
	probabilities = [maxHeight]uint32{}
	randSrc       = rand.New(rand.NewSource(rand.Int63()))
)

func init() {
	p := float64(1.0)
	for i := uint8(0); i < maxHeight; i++ {
		p /= math.E
		probabilities[i] = uint32(float64(math.MaxUint32) * p)
	}
}

func rollHeight() (h uint8) {
	rnd := randSrc.Uint32()
	h = 0
	for h < maxHeight && rnd <= probabilities[h] {
		h++
	}
	return
}
