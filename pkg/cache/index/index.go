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

// Package index tracks the size and age of every entry written to a persistent
// tier, selects entries for eviction when the tier exceeds its byte budget, and
// saves itself into the tier so accounting survives a restart
package index

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/cache/metrics"
)

//go:generate msgp

// IndexKey is the key under which the index will write itself to its associated cache
const IndexKey = "visualizer.index"

// ErrIndexInvalidCacheKey is returned when attempting to track the reserved IndexKey
var ErrIndexInvalidCacheKey = errors.New("cannot index reserved key " + IndexKey)

// Object contains metadata about an item in the Cache
type Object struct {
	// Key represents the name of the Object and is the
	// accessor in a hashed collection of Cache Objects
	Key string `msg:"key"`
	// Size the size of the Object in bytes
	Size int64 `msg:"size"`
	// LastWrite is the time the object was last Written
	LastWrite time.Time `msg:"lastwrite"`
	// LastAccess is the time the object was last Accessed
	LastAccess time.Time `msg:"lastaccess"`
}

// Index maintains metadata about the entries of a cache.Client
type Index struct {
	// CacheSize represents the size of the cache in bytes
	CacheSize int64 `msg:"cache_size"`
	// ObjectCount represents the count of objects in the Cache
	ObjectCount int64 `msg:"object_count"`
	// Objects is a map of Objects in the Cache
	Objects map[string]*Object `msg:"objects"`

	name     string     `msg:"-"`
	provider string     `msg:"-"`
	mtx      sync.Mutex `msg:"-"`
	dirty    bool       `msg:"-"`
}

// New returns a new, empty Index
func New(cacheName, provider string) *Index {
	return &Index{
		Objects:  make(map[string]*Object),
		name:     cacheName,
		provider: provider,
	}
}

// Load reads a previously flushed Index from the cache. A missing index yields
// an empty Index and no error. An unreadable index yields an empty Index and
// the error, so the caller can log it and continue.
func Load(cacheName, provider string, c cache.Client) (*Index, error) {
	idx := New(cacheName, provider)
	b, _, err := c.Retrieve(IndexKey)
	if err == cache.ErrKNF {
		return idx, nil
	}
	if err != nil {
		return idx, err
	}
	if _, err := idx.UnmarshalMsg(b); err != nil {
		return New(cacheName, provider), err
	}
	if idx.Objects == nil {
		idx.Objects = make(map[string]*Object)
	}
	// totals are recomputed so a torn flush cannot skew accounting
	idx.CacheSize, idx.ObjectCount = 0, 0
	for k, o := range idx.Objects {
		if o == nil || k == IndexKey {
			delete(idx.Objects, k)
			continue
		}
		o.Key = k
		idx.CacheSize += o.Size
		idx.ObjectCount++
	}
	metrics.ObserveCacheSizeChange(idx.name, idx.provider, idx.CacheSize, idx.ObjectCount)
	return idx, nil
}

// Store records an object of size bytes written at now, replacing any previous record
func (idx *Index) Store(cacheKey string, size int64, now time.Time) error {
	if cacheKey == IndexKey {
		return ErrIndexInvalidCacheKey
	}
	idx.mtx.Lock()
	if old, ok := idx.Objects[cacheKey]; ok {
		idx.CacheSize -= old.Size
	} else {
		idx.ObjectCount++
	}
	idx.Objects[cacheKey] = &Object{Key: cacheKey, Size: size, LastWrite: now, LastAccess: now}
	idx.CacheSize += size
	idx.dirty = true
	size, count := idx.CacheSize, idx.ObjectCount
	idx.mtx.Unlock()
	metrics.ObserveCacheSizeChange(idx.name, idx.provider, size, count)
	return nil
}

// Touch updates the last access time of the object, if present
func (idx *Index) Touch(cacheKey string, now time.Time) {
	idx.mtx.Lock()
	if o, ok := idx.Objects[cacheKey]; ok {
		o.LastAccess = now
		idx.dirty = true
	}
	idx.mtx.Unlock()
}

// Lookup returns a copy of the object's metadata
func (idx *Index) Lookup(cacheKey string) (Object, bool) {
	idx.mtx.Lock()
	defer idx.mtx.Unlock()
	if o, ok := idx.Objects[cacheKey]; ok {
		return *o, true
	}
	return Object{}, false
}

// Remove drops the objects from the index and returns the number of bytes they accounted for
func (idx *Index) Remove(cacheKeys ...string) int64 {
	var freed int64
	idx.mtx.Lock()
	for _, k := range cacheKeys {
		if o, ok := idx.Objects[k]; ok {
			freed += o.Size
			idx.CacheSize -= o.Size
			idx.ObjectCount--
			delete(idx.Objects, k)
			idx.dirty = true
		}
	}
	size, count := idx.CacheSize, idx.ObjectCount
	idx.mtx.Unlock()
	if freed > 0 {
		metrics.ObserveCacheDel(idx.name, idx.provider, float64(freed))
		metrics.ObserveCacheSizeChange(idx.name, idx.provider, size, count)
	}
	return freed
}

// Clear the index from its currently tracked cache objects
func (idx *Index) Clear() {
	idx.mtx.Lock()
	idx.Objects = make(map[string]*Object)
	idx.CacheSize = 0
	idx.ObjectCount = 0
	idx.dirty = true
	idx.mtx.Unlock()
	metrics.ObserveCacheSizeChange(idx.name, idx.provider, 0, 0)
}

// Size returns the total bytes of the indexed objects
func (idx *Index) Size() int64 {
	idx.mtx.Lock()
	defer idx.mtx.Unlock()
	return idx.CacheSize
}

// Count returns the number of indexed objects
func (idx *Index) Count() int64 {
	idx.mtx.Lock()
	defer idx.mtx.Unlock()
	return idx.ObjectCount
}

// Keys returns the indexed keys in sorted order
func (idx *Index) Keys() []string {
	idx.mtx.Lock()
	out := make([]string, 0, len(idx.Objects))
	for k := range idx.Objects {
		out = append(out, k)
	}
	idx.mtx.Unlock()
	sort.Strings(out)
	return out
}

// Dirty returns true if the index changed since it was last flushed
func (idx *Index) Dirty() bool {
	idx.mtx.Lock()
	defer idx.mtx.Unlock()
	return idx.dirty
}

// Flush writes the serialized index into c under IndexKey
func (idx *Index) Flush(c cache.Client) error {
	idx.mtx.Lock()
	b, err := idx.MarshalMsg(nil)
	if err == nil {
		idx.dirty = false
	}
	idx.mtx.Unlock()
	if err != nil {
		return err
	}
	if err = c.Store(IndexKey, b); err != nil {
		idx.mtx.Lock()
		idx.dirty = true
		idx.mtx.Unlock()
	}
	return err
}

// Victims returns the keys to evict so that the indexed size drops to
// targetRatio * maxBytes or below. Nothing is selected unless the size exceeds
// maxBytes, and a maxBytes <= 0 disables eviction. Victims are ordered oldest
// write first; ties are broken by the larger object first so each eviction
// reclaims more. The index is not modified.
func (idx *Index) Victims(maxBytes int64, targetRatio float64) []string {
	idx.mtx.Lock()
	cacheSize := idx.CacheSize
	if maxBytes <= 0 || cacheSize <= maxBytes {
		idx.mtx.Unlock()
		return nil
	}
	candidates := make(objectsByAge, 0, len(idx.Objects))
	for _, o := range idx.Objects {
		candidates = append(candidates, *o)
	}
	idx.mtx.Unlock()

	target := int64(float64(maxBytes) * targetRatio)
	sort.Sort(candidates)
	removals := make([]string, 0)
	for i := 0; cacheSize > target && i < len(candidates); i++ {
		removals = append(removals, candidates[i].Key)
		cacheSize -= candidates[i].Size
	}
	if len(removals) > 0 {
		metrics.ObserveCacheEvent(idx.name, idx.provider, "eviction", "size_bytes")
	}
	return removals
}

type objectsByAge []Object

// Len returns the number of elements in the subject slice
func (o objectsByAge) Len() int {
	return len(o)
}

// Less returns true if i should be evicted before j
func (o objectsByAge) Less(i, j int) bool {
	if !o[i].LastWrite.Equal(o[j].LastWrite) {
		return o[i].LastWrite.Before(o[j].LastWrite)
	}
	if o[i].Size != o[j].Size {
		return o[i].Size > o[j].Size
	}
	return o[i].Key < o[j].Key
}

// Swap modifies the subject slice by swapping the values in indexes i and j
func (o objectsByAge) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
}
