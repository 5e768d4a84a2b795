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

// Package filesystem is the filesystem implementation of the persistent tier,
// storing one file per cache key
package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/cache/options"
	"github.com/roofscape/visualizer/pkg/cache/status"
)

const fileSuffix = ".data"

// CacheClient implements the cache.Client interface
var _ cache.Client = &CacheClient{}

// ErrEmptyKey is returned when storing an object without a key
var ErrEmptyKey = errors.New("cacheKey required")

var keyReplacer = strings.NewReplacer("~", "~0", "/", "~1", "\\", "~2", "..", "~3", ".", "~4", ":", "~5")

// CacheClient describes a Filesystem CacheClient
type CacheClient struct {
	Name   string
	Config *options.Options
}

// New returns a new filesystem cache
func New(name string, cfg *options.Options) *CacheClient {
	if cfg == nil {
		cfg = options.New()
	}
	return &CacheClient{Name: name, Config: cfg}
}

// Configuration returns the Configuration for the Cache object
func (c *CacheClient) Configuration() *options.Options {
	return c.Config
}

// Connect verifies the cache path exists and is writable, creating it if needed
func (c *CacheClient) Connect() error {
	return makeDirectory(c.Config.Filesystem.CachePath)
}

// Store writes the data to a file named for the cacheKey. The file is written
// beside its destination and renamed into place so readers never see a partial write.
func (c *CacheClient) Store(cacheKey string, data []byte) error {
	if cacheKey == "" {
		return ErrEmptyKey
	}
	dataFile := c.getFileName(cacheKey)
	tmp := dataFile + ".tmp." + strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, dataFile); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Retrieve reads the file for the cacheKey
func (c *CacheClient) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	data, err := os.ReadFile(c.getFileName(cacheKey))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, status.LookupStatusKeyMiss, cache.ErrKNF
		}
		return nil, status.LookupStatusError, err
	}
	return data, status.LookupStatusHit, nil
}

// Remove deletes the files for the cacheKeys. Missing files are ignored.
func (c *CacheClient) Remove(cacheKeys ...string) error {
	for _, cacheKey := range cacheKeys {
		if err := os.Remove(c.getFileName(cacheKey)); err != nil &&
			!errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Clear deletes every cache file in the cache path, leaving other files alone
func (c *CacheClient) Clear() error {
	entries, err := os.ReadDir(c.Config.Filesystem.CachePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileSuffix) {
			continue
		}
		err = os.Remove(filepath.Join(c.Config.Filesystem.CachePath, e.Name()))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Close is not used for CacheClient, and is here to fully prototype the Client Interface
func (c *CacheClient) Close() error {
	return nil
}

func (c *CacheClient) getFileName(cacheKey string) string {
	return filepath.Join(c.Config.Filesystem.CachePath, keyReplacer.Replace(cacheKey)) + fileSuffix
}

// makeDirectory creates a directory on the filesystem and returns the error in the event of a failure.
func makeDirectory(path string) error {
	err := os.MkdirAll(path, 0o755)
	if err == nil {
		// verify writability by attempting to touch a test file in the cache path
		tf := filepath.Join(path, ".test."+strconv.FormatInt(time.Now().Unix(), 10))
		err = os.WriteFile(tf, []byte(""), 0o600)
		if err == nil {
			os.Remove(tf)
		}
	}
	if err != nil {
		return fmt.Errorf("[%s] directory is not writeable by the visualizer: %w", path, err)
	}
	return nil
}
