// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lru

// nilSlot marks the absence of a neighbour in the recency list
const nilSlot = -1

type (
	// node is one slot of the recency list arena. Slots are addressed by their
	// index, so the list never holds pointers between the nodes.
	node[K comparable, V any] struct {
		key  K
		val  V
		prev int
		next int
	}

	// recencyList keeps the cache nodes ordered by the last touch. The head is
	// the most recently used node, the tail is the next eviction candidate.
	// Released slots are collected in the free list and reused by pushFront.
	recencyList[K comparable, V any] struct {
		nodes []node[K, V]
		free  []int
		head  int
		tail  int
		size  int
	}
)

func newRecencyList[K comparable, V any](sizeHint int) recencyList[K, V] {
	return recencyList[K, V]{
		nodes: make([]node[K, V], 0, sizeHint),
		head:  nilSlot,
		tail:  nilSlot,
	}
}

// pushFront places the new node at the head and returns its slot
func (rl *recencyList[K, V]) pushFront(k K, v V) int {
	var idx int
	if n := len(rl.free); n > 0 {
		idx = rl.free[n-1]
		rl.free = rl.free[:n-1]
	} else {
		rl.nodes = append(rl.nodes, node[K, V]{})
		idx = len(rl.nodes) - 1
	}
	rl.nodes[idx] = node[K, V]{key: k, val: v, prev: nilSlot, next: nilSlot}
	rl.link(idx)
	rl.size++
	return idx
}

func (rl *recencyList[K, V]) moveToFront(idx int) {
	if rl.head == idx {
		return
	}
	rl.unlink(idx)
	rl.link(idx)
}

// remove detaches the node from the list, releases its slot and returns the
// entry the node held.
func (rl *recencyList[K, V]) remove(idx int) (K, V) {
	rl.unlink(idx)
	n := &rl.nodes[idx]
	k, v := n.key, n.val
	*n = node[K, V]{prev: nilSlot, next: nilSlot}
	rl.free = append(rl.free, idx)
	rl.size--
	return k, v
}

func (rl *recencyList[K, V]) back() int {
	return rl.tail
}

func (rl *recencyList[K, V]) len() int {
	return rl.size
}

func (rl *recencyList[K, V]) get(idx int) *node[K, V] {
	return &rl.nodes[idx]
}

// reset drops all the nodes, but keeps the allocated arena for reuse
func (rl *recencyList[K, V]) reset() {
	clear(rl.nodes)
	rl.nodes = rl.nodes[:0]
	rl.free = rl.free[:0]
	rl.head, rl.tail = nilSlot, nilSlot
	rl.size = 0
}

// forEach walks the list from the head to the tail until f returns false
func (rl *recencyList[K, V]) forEach(f func(n *node[K, V]) bool) {
	for idx := rl.head; idx != nilSlot; idx = rl.nodes[idx].next {
		if !f(&rl.nodes[idx]) {
			return
		}
	}
}

func (rl *recencyList[K, V]) link(idx int) {
	n := &rl.nodes[idx]
	n.prev = nilSlot
	n.next = rl.head
	if rl.head != nilSlot {
		rl.nodes[rl.head].prev = idx
	}
	rl.head = idx
	if rl.tail == nilSlot {
		rl.tail = idx
	}
}

func (rl *recencyList[K, V]) unlink(idx int) {
	n := &rl.nodes[idx]
	if n.prev != nilSlot {
		rl.nodes[n.prev].next = n.next
	} else {
		rl.head = n.next
	}
	if n.next != nilSlot {
		rl.nodes[n.next].prev = n.prev
	} else {
		rl.tail = n.prev
	}
	n.prev, n.next = nilSlot, nilSlot
}
