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

// Package registration builds and connects persistent tier clients from configuration
package registration

import (
	"fmt"

	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/cache/badger"
	"github.com/roofscape/visualizer/pkg/cache/bbolt"
	"github.com/roofscape/visualizer/pkg/cache/filesystem"
	"github.com/roofscape/visualizer/pkg/cache/memory"
	"github.com/roofscape/visualizer/pkg/cache/options"
	"github.com/roofscape/visualizer/pkg/cache/providers"
	"github.com/roofscape/visualizer/pkg/cache/redis"
	"github.com/roofscape/visualizer/pkg/observability/logging"
)

// NewCache returns an unconnected cache.Client based on the provided Options
func NewCache(cacheName string, cfg *options.Options, logger *logging.Logger) (cache.Client, error) {
	if cfg == nil {
		cfg = options.New()
	}
	if err := cfg.Initialize(cacheName); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var c cache.Client
	switch cfg.ProviderID {
	case providers.FilesystemID:
		c = filesystem.New(cacheName, cfg)
	case providers.RedisID:
		c = redis.New(cacheName, cfg, logger)
	case providers.BBoltID:
		c = bbolt.New(cacheName, "", "", cfg)
	case providers.BadgerDBID:
		c = badger.New(cacheName, cfg, logger)
	default:
		c = memory.New(cacheName, cfg)
	}
	return c, nil
}

// NewClient returns a connected cache.Client based on the provided Options
func NewClient(cacheName string, cfg *options.Options, logger *logging.Logger) (cache.Client, error) {
	c, err := NewCache(cacheName, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger = logging.OrNoop(logger)
	provider := c.Configuration().Provider
	logger.Info("connecting persistent cache",
		logging.Pairs{"cacheName": cacheName, "provider": provider})
	if err := c.Connect(); err != nil {
		return nil, fmt.Errorf("connect %s cache %q: %w", provider, cacheName, err)
	}
	if !providers.IsDurable(provider) {
		logger.Warn("persistent cache does not survive restarts",
			logging.Pairs{"cacheName": cacheName, "provider": provider})
	}
	return c, nil
}
