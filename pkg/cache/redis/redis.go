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

// Package redis is the redis implementation of the persistent tier
// and supports Standalone, Sentinel and Cluster
package redis

import (
	"time"

	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/cache/options"
	"github.com/roofscape/visualizer/pkg/cache/status"
	"github.com/roofscape/visualizer/pkg/observability/logging"

	"github.com/go-redis/redis"
)

// scanCount is the COUNT hint passed to SCAN during Clear
const scanCount = 500

// CacheClient implements the cache.Client interface
var _ cache.Client = &CacheClient{}

// CacheClient represents a redis cache client that conforms to the cache.Client interface
type CacheClient struct {
	Name   string
	Config *options.Options
	Logger *logging.Logger

	client  redis.Cmdable
	cluster *redis.ClusterClient
	closer  func() error
}

// New returns a new redis cache
func New(name string, cfg *options.Options, logger *logging.Logger) *CacheClient {
	if cfg == nil {
		cfg = options.New()
	}
	return &CacheClient{
		Name:   name,
		Config: cfg,
		Logger: logging.OrNoop(logger),
	}
}

// Configuration returns the Configuration for the Cache object
func (c *CacheClient) Configuration() *options.Options {
	return c.Config
}

// Connect connects to the configured Redis endpoint
func (c *CacheClient) Connect() error {
	c.Logger.Info("connecting to redis", logging.Pairs{"clientType": c.Config.Redis.ClientType})
	if err := c.Config.Redis.Validate(); err != nil {
		return err
	}
	ct, _ := parseClientType(c.Config.Redis.ClientType)
	switch ct {
	case clientTypeSentinel:
		client := redis.NewFailoverClient(c.sentinelOpts())
		c.closer = client.Close
		c.client = client
	case clientTypeCluster:
		client := redis.NewClusterClient(c.clusterOpts())
		c.closer = client.Close
		c.client = client
		c.cluster = client
	default:
		client := redis.NewClient(c.clientOpts())
		c.closer = client.Close
		c.client = client
	}
	return c.client.Ping().Err()
}

func (c *CacheClient) key(cacheKey string) string {
	return c.Config.Redis.KeyPrefix + cacheKey
}

// Store places the the data into the Redis Cache using the provided Key. Keys
// do not expire; retention is managed by the texture cache eviction.
func (c *CacheClient) Store(cacheKey string, data []byte) error {
	if c.client == nil {
		return cache.ErrNotConnected
	}
	return c.client.Set(c.key(cacheKey), data, 0).Err()
}

// Retrieve gets data from the Redis Cache using the provided Key
func (c *CacheClient) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	if c.client == nil {
		return nil, status.LookupStatusError, cache.ErrNotConnected
	}
	data, err := c.client.Get(c.key(cacheKey)).Bytes()
	if err == nil {
		return data, status.LookupStatusHit, nil
	}
	if err == redis.Nil {
		return nil, status.LookupStatusKeyMiss, cache.ErrKNF
	}
	return nil, status.LookupStatusError, err
}

// Remove removes objects from the cache, if present
func (c *CacheClient) Remove(cacheKeys ...string) error {
	if c.client == nil {
		return cache.ErrNotConnected
	}
	if len(cacheKeys) == 0 {
		return nil
	}
	keys := make([]string, len(cacheKeys))
	for i, k := range cacheKeys {
		keys[i] = c.key(k)
	}
	if c.cluster != nil {
		// keys may hash to different slots, so they are deleted one at a time
		for _, k := range keys {
			if err := c.client.Del(k).Err(); err != nil {
				return err
			}
		}
		return nil
	}
	return c.client.Del(keys...).Err()
}

// Clear deletes every key under the configured key prefix
func (c *CacheClient) Clear() error {
	if c.client == nil {
		return cache.ErrNotConnected
	}
	if c.cluster != nil {
		return c.cluster.ForEachMaster(func(node *redis.Client) error {
			return c.scanDelete(node)
		})
	}
	return c.scanDelete(c.client)
}

func (c *CacheClient) scanDelete(client redis.Cmdable) error {
	var cursor uint64
	match := c.Config.Redis.KeyPrefix + "*"
	for {
		keys, next, err := client.Scan(cursor, match, scanCount).Result()
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := client.Del(k).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close disconnects from Redis
func (c *CacheClient) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer()
	c.closer = nil
	c.client = nil
	c.cluster = nil
	return err
}

func durationFromMS(input int) time.Duration {
	return time.Duration(int64(input)) * time.Millisecond
}
