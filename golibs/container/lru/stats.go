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

import "fmt"

// Stats contains the Cache counters. Items is the number of entries at the moment the
// snapshot was taken, all other fields are accumulated since the cache creation.
type Stats struct {
	Items     int
	Hits      uint64
	Misses    uint64
	Inserts   uint64
	Updates   uint64
	Evictions uint64
	Removes   uint64
	Clears    uint64
}

// HitRatio returns the part of Lookup calls which found the key, 0 if there were no lookups
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func (s Stats) String() string {
	return fmt.Sprintf("items=%d, hits=%d, misses=%d, inserts=%d, updates=%d, evictions=%d, removes=%d, clears=%d",
		s.Items, s.Hits, s.Misses, s.Inserts, s.Updates, s.Evictions, s.Removes, s.Clears)
}
