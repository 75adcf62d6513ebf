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
/*
Package lru contains the container with limited size capacity and LRU
(Least Recently Used) pull out discipline. The container uses golang generics,
so it can be instantiated for different key and value types.

Cache keeps a hash index and a recency list in lock-step under one mutex. Every
successful Lookup or Replace moves the entry to the head of the list, and when
a new key does not fit, the entries are evicted from the tail. An eviction hook
may be provided via WithOnEvict.

Loader wraps a Cache and calls a user provided function to create the value
for the key which is not in the cache yet, so the same value is not created
concurrently by several goroutines.
*/
package lru
