// Copyright 2024 The Solaris Authors
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

package bench

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/oklog/ulid/v2"
	lctx "github.com/solarisdb/lrucache/golibs/context"
	"github.com/solarisdb/lrucache/golibs/container/lru"
	"github.com/solarisdb/lrucache/golibs/logging"
)

type (
	// Report contains the bench run results
	Report struct {
		RunID    string
		Capacity int
		Duration time.Duration
		// Ops is the number of the operations done by all the workers
		Ops uint64
		// Created is the number of the values computed by the loader on a cache miss
		Created uint64
		// HookEvictions is the number of the eviction hook calls
		HookEvictions uint64
		// Violations is the number of failed invariant checks
		Violations uint64
		Stats      lru.Stats
	}

	runner struct {
		cfg        Config
		cache      *lru.Cache[string, []int]
		loader     *lru.Loader[string, []int]
		created    atomic.Uint64
		ops        atomic.Uint64
		evicted    atomic.Uint64
		violations atomic.Uint64
		log        logging.Logger
	}
)

// ctxCheckPeriod defines how often the workers check the context
const ctxCheckPeriod = 256

// Run executes the workload described by cfg. Every worker does a mix of loader reads and
// plain Add on its own key set, so the missing values are computed on a miss the way a
// memoizing caller does, and checks the cache invariants along the way. The function returns ctx.Err() together with the
// partial report if the ctx is closed before the workers are done.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	progress, _ := cfg.progressInterval()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &runner{cfg: cfg, log: logging.NewLogger("bench")}
	var err error
	r.cache, err = lru.NewCache[string, []int](cfg.Capacity, lru.WithOnEvict[string, []int](func(v []int) {
		r.evicted.Add(1)
	}))
	if err != nil {
		return nil, err
	}
	r.loader, err = lru.NewLoader(r.cache, func(ctx context.Context, k string) ([]int, error) {
		r.created.Add(1)
		return encode(k), nil
	})
	if err != nil {
		return nil, err
	}
	defer r.loader.Close()

	runID := ulid.Make().String()
	r.log.Infof("starting bench run %s, seed=%d: %s", runID, seed, spew.Sprint(cfg))

	start := time.Now()
	pctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if progress > 0 {
		go r.reportProgress(pctx, progress)
	}

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			r.work(ctx, w, rand.New(rand.NewSource(seed+int64(w))))
		}(w)
	}
	wg.Wait()
	cancel()

	r.checkFinal()
	rep := &Report{
		RunID:         runID,
		Capacity:      cfg.Capacity,
		Duration:      time.Since(start),
		Ops:           r.ops.Load(),
		Created:       r.created.Load(),
		HookEvictions: r.evicted.Load(),
		Violations:    r.violations.Load(),
		Stats:         r.cache.Stats(),
	}
	r.log.Infof("bench run %s is done in %s, violations=%d", runID, rep.Duration, rep.Violations)
	return rep, ctx.Err()
}

func (r *runner) work(ctx context.Context, w int, rnd *rand.Rand) {
	prefix := "w" + strconv.Itoa(w) + "-"
	for i := 0; i < r.cfg.OpsPerWorker; i++ {
		if i%ctxCheckPeriod == 0 && ctx.Err() != nil {
			return
		}
		key := prefix + strconv.Itoa(rnd.Intn(r.cfg.KeysPerWorker))
		if rnd.Float64() < r.cfg.LookupRatio {
			v, err := r.loader.GetOrCreate(ctx, key)
			if err != nil {
				r.violation("could not get the value for the key %s: %v", key, err)
			} else if !slices.Equal(v, encode(key)) {
				r.violation("the value for the key %s is corrupted: %v", key, v)
			}
		} else {
			r.cache.Add(key, encode(key))
		}
		r.ops.Add(1)
		if n := r.cache.Count(); n > r.cfg.Capacity {
			r.violation("count=%d exceeds capacity=%d", n, r.cfg.Capacity)
		}
	}
}

// checkFinal is called when all the workers are done, so the cache is not changed anymore
func (r *runner) checkFinal() {
	s := r.cache.Stats()
	if s.Items > r.cfg.Capacity {
		r.violation("final count=%d exceeds capacity=%d", s.Items, r.cfg.Capacity)
	}
	if uint64(s.Items) != s.Inserts-s.Evictions {
		r.violation("final count=%d, but inserts=%d and evictions=%d", s.Items, s.Inserts, s.Evictions)
	}
	if he := r.evicted.Load(); he != s.Evictions {
		r.violation("the eviction hook is called %d times, but %d entries were evicted", he, s.Evictions)
	}
	// the key sets are disjoint, so every loader miss is followed by exactly one creation
	if c := r.created.Load(); c != s.Misses {
		r.violation("the loader created %d values, but there were %d misses", c, s.Misses)
	}
	if keys := r.cache.Keys(); len(keys) != s.Items {
		r.violation("the recency list has %d keys, but count=%d", len(keys), s.Items)
	}
}

func (r *runner) reportProgress(ctx context.Context, every time.Duration) {
	for lctx.Sleep(ctx, every) == nil {
		r.log.Infof("ops=%d, %s", r.ops.Load(), r.cache.Stats())
	}
}

func (r *runner) violation(format string, args ...any) {
	r.violations.Add(1)
	r.log.Errorf(format, args...)
}

// encode is the stand-in for the expensive computation the cache memoizes: it turns the
// word into the sequence of token ids.
func encode(word string) []int {
	res := make([]int, 0, len(word))
	h := 0
	for i := 0; i < len(word); i++ {
		h = h*31 + int(word[i])
		res = append(res, h&0xffff)
	}
	return res
}

// OK returns true if no invariant was violated during the run
func (rep *Report) OK() bool {
	return rep.Violations == 0
}

func (rep *Report) String() string {
	return fmt.Sprintf("run=%s capacity=%d duration=%s ops=%d created=%d hitRatio=%.3f hookEvictions=%d violations=%d\n%s",
		rep.RunID, rep.Capacity, rep.Duration, rep.Ops, rep.Created, rep.Stats.HitRatio(), rep.HookEvictions, rep.Violations, rep.Stats)
}
