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

package redis

import (
	"github.com/go-redis/redis"
)

func (c *CacheClient) clientOpts() *redis.Options {
	ro := c.Config.Redis
	o := &redis.Options{
		Addr:     ro.Endpoint,
		Network:  ro.Protocol,
		Password: ro.Password,
		DB:       ro.DB,
	}
	if ro.MaxRetries != 0 {
		o.MaxRetries = ro.MaxRetries
	}
	if ro.MinRetryBackoffMS != 0 {
		o.MinRetryBackoff = durationFromMS(ro.MinRetryBackoffMS)
	}
	if ro.MaxRetryBackoffMS != 0 {
		o.MaxRetryBackoff = durationFromMS(ro.MaxRetryBackoffMS)
	}
	if ro.DialTimeoutMS != 0 {
		o.DialTimeout = durationFromMS(ro.DialTimeoutMS)
	}
	if ro.ReadTimeoutMS != 0 {
		o.ReadTimeout = durationFromMS(ro.ReadTimeoutMS)
	}
	if ro.WriteTimeoutMS != 0 {
		o.WriteTimeout = durationFromMS(ro.WriteTimeoutMS)
	}
	if ro.PoolSize != 0 {
		o.PoolSize = ro.PoolSize
	}
	if ro.MinIdleConns != 0 {
		o.MinIdleConns = ro.MinIdleConns
	}
	if ro.MaxConnAgeMS != 0 {
		o.MaxConnAge = durationFromMS(ro.MaxConnAgeMS)
	}
	if ro.PoolTimeoutMS != 0 {
		o.PoolTimeout = durationFromMS(ro.PoolTimeoutMS)
	}
	if ro.IdleTimeoutMS != 0 {
		o.IdleTimeout = durationFromMS(ro.IdleTimeoutMS)
	}
	return o
}

func (c *CacheClient) sentinelOpts() *redis.FailoverOptions {
	ro := c.Config.Redis
	o := &redis.FailoverOptions{
		SentinelAddrs: ro.Endpoints,
		MasterName:    ro.SentinelMaster,
		Password:      ro.Password,
		DB:            ro.DB,
	}
	if ro.MaxRetries != 0 {
		o.MaxRetries = ro.MaxRetries
	}
	if ro.DialTimeoutMS != 0 {
		o.DialTimeout = durationFromMS(ro.DialTimeoutMS)
	}
	if ro.ReadTimeoutMS != 0 {
		o.ReadTimeout = durationFromMS(ro.ReadTimeoutMS)
	}
	if ro.WriteTimeoutMS != 0 {
		o.WriteTimeout = durationFromMS(ro.WriteTimeoutMS)
	}
	if ro.PoolSize != 0 {
		o.PoolSize = ro.PoolSize
	}
	if ro.PoolTimeoutMS != 0 {
		o.PoolTimeout = durationFromMS(ro.PoolTimeoutMS)
	}
	if ro.IdleTimeoutMS != 0 {
		o.IdleTimeout = durationFromMS(ro.IdleTimeoutMS)
	}
	return o
}

func (c *CacheClient) clusterOpts() *redis.ClusterOptions {
	ro := c.Config.Redis
	o := &redis.ClusterOptions{
		Addrs:    ro.Endpoints,
		Password: ro.Password,
	}
	if ro.MaxRetries != 0 {
		o.MaxRedirects = ro.MaxRetries
	}
	if ro.DialTimeoutMS != 0 {
		o.DialTimeout = durationFromMS(ro.DialTimeoutMS)
	}
	if ro.ReadTimeoutMS != 0 {
		o.ReadTimeout = durationFromMS(ro.ReadTimeoutMS)
	}
	if ro.WriteTimeoutMS != 0 {
		o.WriteTimeout = durationFromMS(ro.WriteTimeoutMS)
	}
	if ro.PoolSize != 0 {
		o.PoolSize = ro.PoolSize
	}
	if ro.MinIdleConns != 0 {
		o.MinIdleConns = ro.MinIdleConns
	}
	if ro.PoolTimeoutMS != 0 {
		o.PoolTimeout = durationFromMS(ro.PoolTimeoutMS)
	}
	if ro.IdleTimeoutMS != 0 {
		o.IdleTimeout = durationFromMS(ro.IdleTimeoutMS)
	}
	return o
}
