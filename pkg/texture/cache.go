/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package texture serves decoded, optimized textures by key from a memory
// tier backed by a persistent tier, fetching from the origin on a miss
package texture

import (
	"context"
	"image"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/cache/index"
	"github.com/roofscape/visualizer/pkg/cache/memory"
	"github.com/roofscape/visualizer/pkg/cache/metrics"
	"github.com/roofscape/visualizer/pkg/locks"
	"github.com/roofscape/visualizer/pkg/observability/logging"
	"github.com/roofscape/visualizer/pkg/texture/fetch"
	"github.com/roofscape/visualizer/pkg/texture/options"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	tierMemory     = "memory"
	tierPersistent = "persistent"
	tierOrigin     = "origin"

	tracerName = "github.com/roofscape/visualizer/pkg/texture"

	// a handed-out master can be disposed before it is cloned; Load retries
	// this many times before giving up
	maxLoadAttempts = 3
)

// Cache is a two-tier texture cache. The memory tier holds decoded masters;
// the persistent tier holds serialized Entries and is bounded by a byte
// budget. Concurrent loads of one key share a single fetch.
type Cache struct {
	Name string

	opts     *options.Options
	fetcher  fetch.Fetcher
	store    cache.Client
	provider string
	index    *index.Index
	locker   locks.NamedLocker
	logger   *logging.Logger
	group    singleflight.Group
	sampling SamplingParams
	maxBytes atomic.Int64

	mtx       sync.Mutex
	masters   map[string]*master
	hits      int64
	misses    int64
	loaded    int64
	evictions int64

	now    func() time.Time
	closed  atomic.Bool
	stop    chan struct{}
	reapReq chan struct{}
	wg      sync.WaitGroup
}

type master struct {
	res      *ImageResource
	lastUsed time.Time
}

// New returns a Cache. A nil fetcher is built from the options' Source, and a
// nil store is replaced by a process-local memory store. Usage accounting is
// restored from the store's index when one was flushed previously.
func New(name string, o *options.Options, f fetch.Fetcher, store cache.Client,
	logger *logging.Logger) (*Cache, error) {
	if o == nil {
		o = options.New()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if f == nil {
		var err error
		if f, err = fetch.New(o.Source); err != nil {
			return nil, err
		}
	}
	if store == nil {
		store = memory.New(name, nil)
	}
	provider := "unknown"
	if cfg := store.Configuration(); cfg != nil {
		provider = cfg.Provider
	}
	logger = logging.OrNoop(logger)

	idx, err := index.Load(name, provider, store)
	if err != nil {
		logger.Warn("texture index unreadable, starting empty",
			logging.Pairs{"cacheName": name, "provider": provider, "detail": err.Error()})
	}

	c := &Cache{
		Name:     name,
		opts:     o,
		fetcher:  f,
		store:    store,
		provider: provider,
		index:    idx,
		locker:   locks.NewNamedLocker(),
		logger:   logger,
		sampling: samplingFromOptions(o.Sampling),
		masters:  make(map[string]*master),
		now:      time.Now,
		stop:     make(chan struct{}),
		reapReq:  make(chan struct{}, 1),
	}
	c.SetMaxCacheSize(o.MaxSizeBytes)

	c.wg.Add(1)
	go c.sweeper(o.SweepInterval)
	logger.Info("texture cache started", logging.Pairs{"cacheName": name, "provider": provider,
		"maxSizeBytes": o.MaxSizeBytes, "indexedObjects": idx.Count()})
	return c, nil
}

func samplingFromOptions(s *options.SamplingOptions) SamplingParams {
	if s == nil {
		s = options.NewSampling()
	}
	return SamplingParams{
		WrapS:      wrapValues[s.WrapS],
		WrapT:      wrapValues[s.WrapT],
		MinFilter:  filterValues[s.MinFilter],
		MagFilter:  filterValues[s.MagFilter],
		MipMaps:    s.MipMaps,
		Anisotropy: s.Anisotropy,
		ColorSpace: parseColorSpace(s.ColorSpace),
	}
}

// Load returns a clone of the texture for key, resolving it from the memory
// tier, then the persistent tier, then the origin. The caller owns the clone
// and should Release it when done. Fetch and decode failures are returned as
// *ResourceLoadError and are not cached.
func (c *Cache) Load(ctx context.Context, key string) (*ImageResource, error) {
	if key == "" {
		return nil, &ResourceLoadError{Key: key, Op: "load", Err: ErrEmptyKey}
	}
	if c.closed.Load() {
		return nil, &ResourceLoadError{Key: key, Op: "load", Err: ErrClosed}
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "texture.Load",
		trace.WithAttributes(attribute.String("texture.key", key)))
	defer span.End()
	start := time.Now()

	for attempt := 0; attempt < maxLoadAttempts; attempt++ {
		if r := c.cloneResident(key); r != nil {
			span.SetAttributes(attribute.String("texture.tier", tierMemory))
			metrics.ObserveLoadDuration(c.Name, tierMemory, time.Since(start))
			return r, nil
		}

		var leader bool
		var tier string
		v, err, shared := c.group.Do(key, func() (interface{}, error) {
			leader = true
			res, t, err := c.resolve(ctx, key)
			tier = t
			return res, err
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		r := v.(*ImageResource).Clone()
		if r == nil {
			// disposed by an eviction or purge before this caller cloned it
			continue
		}

		c.mtx.Lock()
		if leader && tier == tierOrigin {
			c.misses++
		} else {
			c.hits++
		}
		c.loaded++
		c.mtx.Unlock()

		if !leader {
			tier = "joined"
		}
		span.SetAttributes(attribute.String("texture.tier", tier), attribute.Bool("texture.shared", shared))
		metrics.ObserveLoadDuration(c.Name, tier, time.Since(start))
		return r, nil
	}
	span.SetStatus(codes.Error, ErrDisposed.Error())
	return nil, &ResourceLoadError{Key: key, Op: "load", Err: ErrDisposed}
}

// cloneResident returns a clone of the memory-tier master, recording a hit
func (c *Cache) cloneResident(key string) *ImageResource {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	m, ok := c.masters[key]
	if !ok {
		return nil
	}
	r := m.res.Clone()
	if r == nil {
		delete(c.masters, key)
		return nil
	}
	now := c.now()
	m.lastUsed = now
	c.hits++
	c.loaded++
	c.index.Touch(key, now)
	return r
}

// resolve materializes the master for key and installs it in the memory tier.
// It runs once per key at a time under the singleflight group.
func (c *Cache) resolve(ctx context.Context, key string) (*ImageResource, string, error) {
	c.mtx.Lock()
	if m, ok := c.masters[key]; ok && !m.res.Released() {
		m.lastUsed = c.now()
		c.mtx.Unlock()
		return m.res, tierMemory, nil
	}
	c.mtx.Unlock()

	if res := c.fromPersistent(key); res != nil {
		c.install(res)
		return res, tierPersistent, nil
	}

	// a load runs to completion even if the first caller goes away, since
	// other callers may have joined it
	b, err := c.fetcher.Fetch(context.WithoutCancel(ctx), key)
	if err != nil {
		c.logger.Debug("texture fetch failed", logging.Pairs{"key": key, "detail": err.Error()})
		return nil, "", &ResourceLoadError{Key: key, Op: "fetch", Err: err}
	}
	img, format, err := Decode(b)
	if err != nil {
		return nil, "", &ResourceLoadError{Key: key, Op: "decode", Err: err}
	}
	opt := Optimize(img, c.opts.MaxDimension)
	res := newImageResource(key, format, opt, c.sampling)
	c.install(res)
	c.logger.Debug("texture loaded from origin", logging.Pairs{"key": key, "format": format,
		"sourceWidth": img.Bounds().Dx(), "width": res.Width, "height": res.Height})

	c.persist(res, opt)
	if c.maxBytes.Load() > 0 && c.index.Size() > c.maxBytes.Load() {
		c.evictPass("budget", key)
	}
	return res, tierOrigin, nil
}

// install places the master in the memory tier, disposing any master it replaces
func (c *Cache) install(res *ImageResource) {
	c.mtx.Lock()
	if old, ok := c.masters[res.Key]; ok && old.res != res {
		old.res.Release()
	}
	c.masters[res.Key] = &master{res: res, lastUsed: c.now()}
	c.observeResident()
	c.mtx.Unlock()
}

// persistable reports whether key may be written to the persistent tier
func persistable(key string) bool {
	return key != index.IndexKey
}

func (c *Cache) fromPersistent(key string) *ImageResource {
	if !persistable(key) {
		return nil
	}
	nl, err := c.locker.RAcquire(key)
	if err != nil {
		return nil
	}
	b, _, err := c.store.Retrieve(key)
	nl.RRelease()
	if err == cache.ErrKNF {
		metrics.ObserveCacheMiss(c.Name, c.provider)
		return nil
	}
	if err != nil {
		c.serializationError(key, "retrieve", err)
		return nil
	}
	e, err := UnmarshalEntry(b)
	if err != nil {
		c.serializationError(key, "decode", err)
		c.removePersistent(key)
		return nil
	}
	img, err := e.Image()
	if err != nil {
		c.serializationError(key, "decode", err)
		c.removePersistent(key)
		return nil
	}
	metrics.ObserveCacheHit(c.Name, c.provider, float64(len(b)))
	if _, ok := c.index.Lookup(key); !ok {
		// written by a run whose index was never flushed
		c.index.Store(key, e.SizeBytes, e.Timestamp)
	}
	c.index.Touch(key, c.now())
	return newImageResource(key, e.SourceFormat, img, e.Sampling())
}

// persist writes the entry for a freshly loaded master. Failures are logged
// and never fail the load.
func (c *Cache) persist(res *ImageResource, img *image.NRGBA) {
	if !persistable(res.Key) {
		return
	}
	e, err := newEntry(res, img, c.opts.Encoding, c.opts.JPEGQuality, c.now())
	if err != nil {
		c.serializationError(res.Key, "encode", err)
		return
	}
	b, err := e.Marshal()
	if err != nil {
		c.serializationError(res.Key, "encode", err)
		return
	}
	nl, err := c.locker.Acquire(res.Key)
	if err != nil {
		return
	}
	defer nl.Release()
	if err := c.store.Store(res.Key, b); err != nil {
		c.serializationError(res.Key, "store", err)
		return
	}
	c.index.Store(res.Key, int64(len(b)), e.Timestamp)
	metrics.ObserveCacheOperation(c.Name, c.provider, "set", "none", float64(len(b)))
}

func (c *Cache) removePersistent(key string) {
	if !persistable(key) {
		return
	}
	nl, err := c.locker.Acquire(key)
	if err != nil {
		return
	}
	defer nl.Release()
	c.index.Remove(key)
	if err := c.store.Remove(key); err != nil {
		c.serializationError(key, "remove", err)
	}
}

func (c *Cache) serializationError(key, op string, err error) {
	se := &SerializationError{Key: key, Op: op, Err: err}
	c.logger.Warn("texture cache serialization failure",
		logging.Pairs{"cacheName": c.Name, "provider": c.provider, "key": key, "op": op, "detail": se.Error()})
	metrics.ObserveCacheEvent(c.Name, c.provider, "error", op)
}

// observeResident must be called with c.mtx held
func (c *Cache) observeResident() {
	var n int64
	for _, m := range c.masters {
		n += m.res.SizeBytes()
	}
	metrics.ObserveResidentBytes(c.Name, n)
}

// Preload loads all keys concurrently. It is all-or-nothing: the first failure
// stops loads that have not started, releases every texture already obtained
// and is returned.
func (c *Cache) Preload(ctx context.Context, keys []string) ([]*ImageResource, error) {
	out := make([]*ImageResource, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, k := range keys {
		i, k := i, k
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := c.Load(gctx, k)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, r := range out {
			r.Release()
		}
		return nil, err
	}
	return out, nil
}

// Evict removes key from both tiers and disposes its master. Evicting an
// absent key is a no-op.
func (c *Cache) Evict(key string) {
	c.mtx.Lock()
	if m, ok := c.masters[key]; ok {
		m.res.Release()
		delete(c.masters, key)
		c.observeResident()
	}
	c.mtx.Unlock()
	c.removePersistent(key)
}

// evictPass removes the oldest entries until persistent usage is at or under
// the target fraction of the budget. Keys in keep are never evicted, so an
// entry larger than the target survives the pass that follows its own load.
func (c *Cache) evictPass(reason string, keep ...string) int {
	victims := c.index.Victims(c.maxBytes.Load(), c.opts.EvictionTargetRatio)
	if len(keep) > 0 {
		kept := victims[:0]
		for _, k := range victims {
			if !slices.Contains(keep, k) {
				kept = append(kept, k)
			}
		}
		victims = kept
	}
	if len(victims) == 0 {
		return 0
	}
	for _, k := range victims {
		c.Evict(k)
	}
	c.mtx.Lock()
	c.evictions += int64(len(victims))
	c.mtx.Unlock()
	c.logger.Debug("texture eviction pass", logging.Pairs{"cacheName": c.Name, "reason": reason,
		"evicted": len(victims), "usageBytes": c.index.Size(), "maxSizeBytes": c.maxBytes.Load()})
	return len(victims)
}

// idleSweep disposes masters unused for the idle timeout, leaving their
// persistent entries in place
func (c *Cache) idleSweep(now time.Time) int {
	if c.opts.IdleTimeout <= 0 {
		return 0
	}
	var n int
	c.mtx.Lock()
	for k, m := range c.masters {
		if now.Sub(m.lastUsed) >= c.opts.IdleTimeout {
			m.res.Release()
			delete(c.masters, k)
			n++
		}
	}
	if n > 0 {
		c.observeResident()
	}
	c.mtx.Unlock()
	if n > 0 {
		metrics.ObserveCacheEvent(c.Name, c.provider, "dispose", "idle")
		c.logger.Debug("idle textures disposed", logging.Pairs{"cacheName": c.Name, "disposed": n})
	}
	return n
}

func (c *Cache) flushIndex() {
	if !c.index.Dirty() {
		return
	}
	if err := c.index.Flush(c.store); err != nil {
		c.serializationError(index.IndexKey, "store", err)
	}
}

// Reap runs an eviction pass and an idle sweep now, then flushes the index
func (c *Cache) Reap() {
	c.evictPass("reap")
	c.idleSweep(c.now())
	c.flushIndex()
}

// RequestReap schedules a Reap on the sweeper goroutine and returns
// immediately. It returns false when a reap is already pending or the cache
// is closed.
func (c *Cache) RequestReap() bool {
	if c.closed.Load() {
		return false
	}
	select {
	case c.reapReq <- struct{}{}:
		return true
	default:
		return false
	}
}

// PurgeMemoryTier disposes every master while keeping persisted entries, and
// returns the number disposed
func (c *Cache) PurgeMemoryTier() int {
	c.mtx.Lock()
	n := len(c.masters)
	for _, m := range c.masters {
		m.res.Release()
	}
	c.masters = make(map[string]*master)
	c.observeResident()
	c.mtx.Unlock()
	if n > 0 {
		metrics.ObserveCacheEvent(c.Name, c.provider, "dispose", "purge")
		c.logger.Info("texture memory tier purged", logging.Pairs{"cacheName": c.Name, "disposed": n})
	}
	return n
}

// Clear disposes every master, empties the persistent tier and resets the
// statistics. Loads in flight when Clear runs still install their result.
func (c *Cache) Clear() error {
	c.mtx.Lock()
	for _, m := range c.masters {
		m.res.Release()
	}
	c.masters = make(map[string]*master)
	c.hits, c.misses, c.loaded, c.evictions = 0, 0, 0, 0
	c.observeResident()
	c.mtx.Unlock()

	c.index.Clear()
	err := c.store.Clear()
	if err != nil {
		c.serializationError("*", "clear", err)
	}
	c.flushIndex()
	return err
}

// Contains reports whether key is present in each tier
func (c *Cache) Contains(key string) (inMemory, persisted bool) {
	c.mtx.Lock()
	_, inMemory = c.masters[key]
	c.mtx.Unlock()
	if persistable(key) {
		_, _, err := c.store.Retrieve(key)
		persisted = err == nil
	}
	return
}

// Statistics returns a snapshot of the cache counters
func (c *Cache) Statistics() Statistics {
	c.mtx.Lock()
	s := Statistics{
		Hits:          c.hits,
		Misses:        c.misses,
		TotalLoaded:   c.loaded,
		Evictions:     c.evictions,
		ResidentCount: len(c.masters),
	}
	for _, m := range c.masters {
		s.ResidentBytes += m.res.SizeBytes()
	}
	c.mtx.Unlock()
	s.MemoryUsageBytes = c.index.Size()
	s.MaxSizeBytes = c.maxBytes.Load()
	return s
}

// SetMaxCacheSize changes the eviction budget. Nothing is evicted until the
// next budget check.
func (c *Cache) SetMaxCacheSize(bytes int64) {
	c.maxBytes.Store(bytes)
	metrics.ObserveMaxBytes(c.Name, c.provider, bytes)
}

// Close stops the sweeper, flushes the index, disposes the memory tier and
// closes the persistent tier
func (c *Cache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(c.stop)
	c.wg.Wait()
	c.flushIndex()
	c.PurgeMemoryTier()
	return c.store.Close()
}
