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

// Package bbolt is the bbolt implementation of the persistent tier
package bbolt

import (
	"fmt"
	"time"

	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/cache/options"
	"github.com/roofscape/visualizer/pkg/cache/status"

	"go.etcd.io/bbolt"
)

// CacheClient implements the cache.Client interface
var _ cache.Client = &CacheClient{}

// CacheClient describes a BBolt CacheClient
type CacheClient struct {
	Name   string
	Config *options.Options
	dbh    *bbolt.DB
}

// New returns a new bbolt cache. fileName and bucketName override the
// values in opts when provided.
func New(cacheName, fileName, bucketName string, opts *options.Options) *CacheClient {
	if opts == nil {
		opts = options.New()
	}
	if bucketName != "" {
		opts.BBolt.Bucket = bucketName
	}
	if fileName != "" {
		opts.BBolt.Filename = fileName
	}
	return &CacheClient{
		Name:   cacheName,
		Config: opts,
	}
}

// Configuration returns the Configuration for the Cache object
func (c *CacheClient) Configuration() *options.Options {
	return c.Config
}

// Connect opens the database file and creates the bucket if needed
func (c *CacheClient) Connect() error {
	var err error
	c.dbh, err = bbolt.Open(c.Config.BBolt.Filename, 0o644, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return err
	}
	err = c.dbh.Update(func(tx *bbolt.Tx) error {
		_, err2 := tx.CreateBucketIfNotExists([]byte(c.Config.BBolt.Bucket))
		if err2 != nil {
			return fmt.Errorf("create bucket: %w", err2)
		}
		return nil
	})
	if err != nil {
		c.dbh.Close()
		c.dbh = nil
	}
	return err
}

// Store places the data into the bucket under cacheKey
func (c *CacheClient) Store(cacheKey string, data []byte) error {
	if c.dbh == nil {
		return cache.ErrNotConnected
	}
	return c.dbh.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(c.Config.BBolt.Bucket)).Put([]byte(cacheKey), data)
	})
}

// Retrieve looks for an object in the bucket. The returned slice is a copy
// and remains valid after the read transaction ends.
func (c *CacheClient) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	if c.dbh == nil {
		return nil, status.LookupStatusError, cache.ErrNotConnected
	}
	var data []byte
	err := c.dbh.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(c.Config.BBolt.Bucket)).Get([]byte(cacheKey))
		if v == nil {
			return cache.ErrKNF
		}
		data = make([]byte, len(v))
		copy(data, v)
		return nil
	})
	if err == cache.ErrKNF {
		return nil, status.LookupStatusKeyMiss, err
	}
	if err != nil {
		return nil, status.LookupStatusError, err
	}
	return data, status.LookupStatusHit, nil
}

// Remove deletes the cacheKeys from the bucket in a single transaction
func (c *CacheClient) Remove(cacheKeys ...string) error {
	if c.dbh == nil {
		return cache.ErrNotConnected
	}
	return c.dbh.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(c.Config.BBolt.Bucket))
		for _, cacheKey := range cacheKeys {
			if err := b.Delete([]byte(cacheKey)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear drops and recreates the bucket
func (c *CacheClient) Clear() error {
	if c.dbh == nil {
		return cache.ErrNotConnected
	}
	name := []byte(c.Config.BBolt.Bucket)
	return c.dbh.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(name); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(name)
		return err
	})
}

// Close closes the database file
func (c *CacheClient) Close() error {
	if c.dbh == nil {
		return nil
	}
	err := c.dbh.Close()
	c.dbh = nil
	return err
}
