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

// Package memory is the memory implementation of the persistent tier interface
// and uses a sync.Map to manage cache objects. Its contents do not survive a
// restart, so it serves tests and development setups.
package memory

import (
	"sync"

	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/cache/options"
	"github.com/roofscape/visualizer/pkg/cache/providers"
	"github.com/roofscape/visualizer/pkg/cache/status"
)

// Cache implements the cache.Client interface
var _ cache.Client = &Cache{}

// Cache defines a a Memory Cache client that conforms to the Client interface
type Cache struct {
	Name   string
	Config *options.Options
	client sync.Map
}

// New returns a new memory cache
func New(name string, cfg *options.Options) *Cache {
	if cfg == nil {
		cfg = options.New()
		cfg.Name = name
		cfg.Provider = providers.Memory
		cfg.ProviderID = providers.MemoryID
	}
	return &Cache{Name: name, Config: cfg}
}

// Configuration returns the Configuration for the Cache object
func (c *Cache) Configuration() *options.Options {
	return c.Config
}

// Connect initializes the Cache
func (c *Cache) Connect() error {
	return nil
}

// Store places an object in the cache using the specified key. The data is
// copied so later changes by the caller are not observed.
func (c *Cache) Store(cacheKey string, data []byte) error {
	b := make([]byte, len(data))
	copy(b, data)
	c.client.Store(cacheKey, b)
	return nil
}

// Retrieve looks for an object in cache and returns it (or an error if not found)
func (c *Cache) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	record, ok := c.client.Load(cacheKey)
	if !ok {
		return nil, status.LookupStatusKeyMiss, cache.ErrKNF
	}
	return record.([]byte), status.LookupStatusHit, nil
}

// Remove removes objects from the cache
func (c *Cache) Remove(cacheKeys ...string) error {
	for _, k := range cacheKeys {
		c.client.Delete(k)
	}
	return nil
}

// Clear removes every object from the cache
func (c *Cache) Clear() error {
	c.client.Range(func(k, _ interface{}) bool {
		c.client.Delete(k)
		return true
	})
	return nil
}

// Close is not used for Cache, and is here to fully prototype the Client Interface
func (c *Cache) Close() error {
	return nil
}
