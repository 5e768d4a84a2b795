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

package options

import (
	"errors"
	"fmt"
	"strings"

	badger "github.com/roofscape/visualizer/pkg/cache/badger/options"
	bbolt "github.com/roofscape/visualizer/pkg/cache/bbolt/options"
	filesystem "github.com/roofscape/visualizer/pkg/cache/filesystem/options"
	"github.com/roofscape/visualizer/pkg/cache/providers"
	redis "github.com/roofscape/visualizer/pkg/cache/redis/options"
)

const (
	// DefaultCacheName is the name given to the persistent tier when none is configured
	DefaultCacheName = "default"
	// DefaultCacheProvider is the default persistent tier provider
	DefaultCacheProvider = providers.Filesystem
	// DefaultCacheProviderID is the ID of the default persistent tier provider
	DefaultCacheProviderID = providers.FilesystemID
)

// ErrInvalidName is returned when a cache is configured with a reserved name
var ErrInvalidName = errors.New("invalid cache name")

// ErrInvalidProvider is returned when a cache is configured with an unknown provider
var ErrInvalidProvider = errors.New("invalid cache provider")

// Options is a collection of settings defining the persistent tier
type Options struct {
	// Name is the Name of the cache
	Name string `yaml:"-"`
	// Provider represents the type of cache that we wish to use:
	// "bbolt", "badger", "memory", "filesystem", or "redis"
	Provider string `yaml:"provider,omitempty"`
	// Redis provides options for Redis caching
	Redis *redis.Options `yaml:"redis,omitempty"`
	// Filesystem provides options for Filesystem caching
	Filesystem *filesystem.Options `yaml:"filesystem,omitempty"`
	// BBolt provides options for BBolt caching
	BBolt *bbolt.Options `yaml:"bbolt,omitempty"`
	// Badger provides options for BadgerDB caching
	Badger *badger.Options `yaml:"badger,omitempty"`

	//  Synthetic Values

	// ProviderID represents the internal constant for the provided Provider string
	// and is automatically populated by Initialize
	ProviderID providers.Provider `yaml:"-"`
}

// New will return a pointer to an Options with the default configuration settings
func New() *Options {
	return &Options{
		Name:       DefaultCacheName,
		Provider:   DefaultCacheProvider,
		ProviderID: DefaultCacheProviderID,
		Redis:      redis.New(),
		Filesystem: filesystem.New(),
		BBolt:      bbolt.New(),
		Badger:     badger.New(),
	}
}

// Clone returns an exact copy of the Options
func (c *Options) Clone() *Options {
	out := New()
	out.Name = c.Name
	out.Provider = c.Provider
	out.ProviderID = c.ProviderID

	if c.Badger != nil {
		out.Badger.Directory = c.Badger.Directory
		out.Badger.ValueDirectory = c.Badger.ValueDirectory
	}
	if c.Filesystem != nil {
		out.Filesystem.CachePath = c.Filesystem.CachePath
	}
	if c.BBolt != nil {
		out.BBolt.Bucket = c.BBolt.Bucket
		out.BBolt.Filename = c.BBolt.Filename
	}
	if c.Redis != nil {
		out.Redis = c.Redis.Clone()
	}
	return out
}

// Equal returns true if the Options and their provider-specific Options are identical
func (c *Options) Equal(c2 *Options) bool {
	if c2 == nil {
		return false
	}
	return c.Name == c2.Name &&
		c.Provider == c2.Provider &&
		c.ProviderID == c2.ProviderID &&
		*c.Filesystem == *c2.Filesystem &&
		*c.BBolt == *c2.BBolt &&
		*c.Badger == *c2.Badger &&
		c.Redis.Equal(c2.Redis)
}

// Initialize sets up the cache Options with default values and overlays
// any values that were set during YAML unmarshaling
func (c *Options) Initialize(name string) error {
	c.Name = name
	if c.Provider == "" {
		c.Provider = DefaultCacheProvider
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	n, ok := providers.Names[c.Provider]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidProvider, c.Provider)
	}
	c.ProviderID = n

	if c.Redis == nil {
		c.Redis = redis.New()
	}
	if c.Filesystem == nil {
		c.Filesystem = filesystem.New()
	}
	if c.BBolt == nil {
		c.BBolt = bbolt.New()
	}
	if c.Badger == nil {
		c.Badger = badger.New()
	}
	return nil
}

// Validate returns an error if the Options cannot produce a working cache
func (c *Options) Validate() error {
	if c.Name == "" || c.Name == "none" {
		return ErrInvalidName
	}
	if _, ok := providers.Names[c.Provider]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidProvider, c.Provider)
	}
	if c.ProviderID == providers.RedisID {
		return c.Redis.Validate()
	}
	return nil
}
