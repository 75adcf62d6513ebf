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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func listKeys(rl *recencyList[int, string]) []int {
	var res []int
	rl.forEach(func(n *node[int, string]) bool {
		res = append(res, n.key)
		return true
	})
	return res
}

func TestRecencyList_PushAndMove(t *testing.T) {
	rl := newRecencyList[int, string](2)
	assert.Equal(t, nilSlot, rl.back())

	i1 := rl.pushFront(1, "a")
	i2 := rl.pushFront(2, "b")
	i3 := rl.pushFront(3, "c")
	assert.Equal(t, []int{3, 2, 1}, listKeys(&rl))
	assert.Equal(t, i1, rl.back())
	assert.Equal(t, 3, rl.len())

	rl.moveToFront(i1)
	assert.Equal(t, []int{1, 3, 2}, listKeys(&rl))
	assert.Equal(t, i2, rl.back())

	rl.moveToFront(i2)
	rl.moveToFront(i2)
	assert.Equal(t, []int{2, 1, 3}, listKeys(&rl))
	assert.Equal(t, i3, rl.back())
}

func TestRecencyList_Remove(t *testing.T) {
	rl := newRecencyList[int, string](0)
	i1 := rl.pushFront(1, "a")
	i2 := rl.pushFront(2, "b")
	i3 := rl.pushFront(3, "c")

	k, v := rl.remove(i2)
	assert.Equal(t, 2, k)
	assert.Equal(t, "b", v)
	assert.Equal(t, []int{3, 1}, listKeys(&rl))

	k, _ = rl.remove(rl.back())
	assert.Equal(t, 1, k)
	assert.Equal(t, i3, rl.back())
	assert.Equal(t, []int{i2, i1}, rl.free)

	// the last released slot is reused first
	assert.Equal(t, i1, rl.pushFront(4, "d"))
	assert.Equal(t, i2, rl.pushFront(5, "e"))
	assert.Equal(t, []int{5, 4, 3}, listKeys(&rl))
	assert.Equal(t, 3, len(rl.nodes))

	rl.remove(i3)
	rl.remove(i1)
	rl.remove(i2)
	assert.Equal(t, 0, rl.len())
	assert.Equal(t, nilSlot, rl.head)
	assert.Equal(t, nilSlot, rl.tail)
	assert.Nil(t, listKeys(&rl))
}

func TestRecencyList_Reset(t *testing.T) {
	rl := newRecencyList[int, string](4)
	for i := 0; i < 4; i++ {
		rl.pushFront(i, "v")
	}
	rl.remove(rl.back())
	rl.reset()
	assert.Equal(t, 0, rl.len())
	assert.Empty(t, rl.free)
	assert.Empty(t, rl.nodes)
	assert.Nil(t, listKeys(&rl))

	idx := rl.pushFront(10, "x")
	assert.Equal(t, 0, idx)
	assert.Equal(t, []int{10}, listKeys(&rl))
}
