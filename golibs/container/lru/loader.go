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
	"context"
	"fmt"
	"sync"

	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/logging"
)

type (
	// Loader returns the values from the Cache and creates the missing ones via the
	// createNewF function. Only one goroutine creates the value for a key at a time,
	// the others wait for the result.
	Loader[K comparable, V any] struct {
		lock       sync.Mutex
		cache      *Cache[K, V]
		inflight   map[K]chan struct{}
		createNewF CreateElemF[K, V]
		log        logging.Logger
		closed     bool
	}

	// CreateElemF is called by Loader to create the value for the key k which is not in the cache
	CreateElemF[K any, V any] func(ctx context.Context, k K) (V, error)
)

// NewLoader creates the Loader over the cache. The cache is still owned by the caller, so it
// may be used directly, while the Loader is used.
func NewLoader[K comparable, V any](cache *Cache[K, V], createNewF CreateElemF[K, V]) (*Loader[K, V], error) {
	if cache == nil {
		return nil, fmt.Errorf("NewLoader(): cache must not be nil: %w", errors.ErrInvalid)
	}
	if createNewF == nil {
		return nil, fmt.Errorf("NewLoader(): createNewF must not be nil: %w", errors.ErrInvalid)
	}
	l := new(Loader[K, V])
	l.cache = cache
	l.inflight = make(map[K]chan struct{})
	l.createNewF = createNewF
	l.log = logging.NewLogger("lru.Loader")
	return l, nil
}

// GetOrCreate returns the value for the key k. If the value is not in the cache, it will be
// created by the createNewF function and added to the cache. The creation error is returned
// as is, and nothing is cached this case. If createNewF panics, the panic is propagated and
// the goroutines waiting for the key try to create it again.
func (l *Loader[K, V]) GetOrCreate(ctx context.Context, k K) (V, error) {
	for {
		l.lock.Lock()
		if l.closed {
			l.lock.Unlock()
			return *new(V), errors.ErrClosed
		}
		if v, ok := l.cache.Lookup(k); ok {
			l.lock.Unlock()
			return v, nil
		}
		ch, watcher := l.inflight[k]
		if !watcher {
			ch = make(chan struct{})
			l.inflight[k] = ch
		}
		l.lock.Unlock()

		// another goroutine is creating the value already, wait for it and check the cache again
		if watcher {
			select {
			case <-ch:
				continue
			case <-ctx.Done():
				return *new(V), ctx.Err()
			}
		}

		return l.create(ctx, k, ch)
	}
}

// create calls createNewF and releases the in-flight channel ch on every exit path, so
// the waiters are woken up even if createNewF panics. The panic is propagated to the caller.
func (l *Loader[K, V]) create(ctx context.Context, k K, ch chan struct{}) (v V, err error) {
	created := false
	defer func() {
		l.lock.Lock()
		defer l.lock.Unlock()
		close(ch)
		delete(l.inflight, k)
		if created && err == nil && !l.closed {
			l.cache.Add(k, v)
		}
	}()

	v, err = l.createNewF(ctx, k)
	created = true
	if err != nil {
		l.log.Debugf("could not create value for the key=%v: %v", k, err)
	}
	return v, err
}

// Cache returns the underlying cache
func (l *Loader[K, V]) Cache() *Cache[K, V] {
	return l.cache
}

// Close stops the Loader. The following GetOrCreate calls return errors.ErrClosed. The values
// being created at the moment are returned to their creators, but not added to the cache,
// and the goroutines waiting for them get errors.ErrClosed.
func (l *Loader[K, V]) Close() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.closed {
		return errors.ErrClosed
	}
	l.closed = true
	return nil
}
