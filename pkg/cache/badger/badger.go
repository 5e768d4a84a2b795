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

// Package badger is the BadgerDB implementation of the persistent tier
package badger

import (
	"fmt"
	"strings"

	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/cache/options"
	"github.com/roofscape/visualizer/pkg/cache/status"
	"github.com/roofscape/visualizer/pkg/observability/logging"

	"github.com/dgraph-io/badger"
)

// clearBatchSize bounds the keys deleted per transaction during Clear
const clearBatchSize = 1000

// CacheClient implements the cache.Client interface
var _ cache.Client = &CacheClient{}

// CacheClient describes a Badger CacheClient
type CacheClient struct {
	Name   string
	Config *options.Options
	Logger *logging.Logger
	dbh    *badger.DB
}

// New returns a new Badger cache
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

// Connect opens the configured Badger key-value store
func (c *CacheClient) Connect() error {
	c.Logger.Info("badger cache setup", logging.Pairs{"cacheDir": c.Config.Badger.Directory})
	opts := badger.DefaultOptions(c.Config.Badger.Directory)
	opts.ValueDir = c.Config.Badger.ValueDirectory
	opts = opts.WithLogger(badgerLogger{c.Logger})

	var err error
	c.dbh, err = badger.Open(opts)
	return err
}

// Store places the the data into the Badger Cache using the provided Key
func (c *CacheClient) Store(cacheKey string, data []byte) error {
	if c.dbh == nil {
		return cache.ErrNotConnected
	}
	return c.dbh.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(cacheKey), data)
	})
}

// Retrieve gets data from the Badger Cache using the provided Key
func (c *CacheClient) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	if c.dbh == nil {
		return nil, status.LookupStatusError, cache.ErrNotConnected
	}
	var data []byte
	err := c.dbh.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cacheKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == nil {
		return data, status.LookupStatusHit, nil
	}
	if err == badger.ErrKeyNotFound {
		return nil, status.LookupStatusKeyMiss, cache.ErrKNF
	}
	return nil, status.LookupStatusError, err
}

// Remove removes objects from the cache, if present
func (c *CacheClient) Remove(cacheKeys ...string) error {
	if c.dbh == nil {
		return cache.ErrNotConnected
	}
	return c.dbh.Update(func(txn *badger.Txn) error {
		for _, cacheKey := range cacheKeys {
			if err := txn.Delete([]byte(cacheKey)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear deletes every key in the store, in batches
func (c *CacheClient) Clear() error {
	if c.dbh == nil {
		return cache.ErrNotConnected
	}
	for {
		keys := make([]string, 0, clearBatchSize)
		err := c.dbh.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = false
			it := txn.NewIterator(opts)
			defer it.Close()
			for it.Rewind(); it.Valid() && len(keys) < clearBatchSize; it.Next() {
				keys = append(keys, string(it.Item().KeyCopy(nil)))
			}
			return nil
		})
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		if err := c.Remove(keys...); err != nil {
			return err
		}
	}
}

// Close closes the Badger Cache
func (c *CacheClient) Close() error {
	if c.dbh == nil {
		return nil
	}
	err := c.dbh.Close()
	c.dbh = nil
	return err
}

// badgerLogger routes Badger's internal logging to the visualizer logger
type badgerLogger struct {
	l *logging.Logger
}

func format(f string, v []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(f, v...))
}

func (b badgerLogger) Errorf(f string, v ...interface{}) {
	b.l.Error(format(f, v), logging.Pairs{"provider": "badger"})
}

func (b badgerLogger) Warningf(f string, v ...interface{}) {
	b.l.Warn(format(f, v), logging.Pairs{"provider": "badger"})
}

func (b badgerLogger) Infof(f string, v ...interface{}) {
	b.l.Debug(format(f, v), logging.Pairs{"provider": "badger"})
}

func (b badgerLogger) Debugf(f string, v ...interface{}) {
	b.l.Debug(format(f, v), logging.Pairs{"provider": "badger"})
}
