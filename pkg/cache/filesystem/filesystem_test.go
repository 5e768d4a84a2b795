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

package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roofscape/visualizer/pkg/cache"
	fo "github.com/roofscape/visualizer/pkg/cache/filesystem/options"
	co "github.com/roofscape/visualizer/pkg/cache/options"
	"github.com/roofscape/visualizer/pkg/cache/status"
)

const cacheKey = "https://example.com/textures/shingle.jpg"

func newCacheConfig(t *testing.T) *co.Options {
	o := co.New()
	o.Provider = "filesystem"
	o.Filesystem = &fo.Options{CachePath: t.TempDir()}
	return o
}

func TestFilesystemCache_Connect(t *testing.T) {
	cfg := newCacheConfig(t)
	cfg.Filesystem.CachePath = filepath.Join(cfg.Filesystem.CachePath, "nested", "dir")
	fc := New(t.Name(), cfg)
	if err := fc.Connect(); err != nil {
		t.Error(err)
	}
	if _, err := os.Stat(cfg.Filesystem.CachePath); err != nil {
		t.Error(err)
	}
}

func TestFilesystemCache_ConnectFailed(t *testing.T) {
	cfg := newCacheConfig(t)
	f := filepath.Join(cfg.Filesystem.CachePath, "file")
	if err := os.WriteFile(f, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.Filesystem.CachePath = filepath.Join(f, "sub")
	fc := New(t.Name(), cfg)
	err := fc.Connect()
	if err == nil {
		t.Fatal("expected error for non-directory cache path")
	}
	if !strings.Contains(err.Error(), "directory is not writeable") {
		t.Errorf("unexpected error %s", err)
	}
}

func TestFilesystemCache_StoreRetrieve(t *testing.T) {
	fc := New(t.Name(), newCacheConfig(t))
	if err := fc.Connect(); err != nil {
		t.Fatal(err)
	}
	defer fc.Close()

	if err := fc.Store("", []byte("data")); err != ErrEmptyKey {
		t.Errorf("expected %v got %v", ErrEmptyKey, err)
	}
	if err := fc.Store(cacheKey, []byte("data")); err != nil {
		t.Error(err)
	}

	data, ls, err := fc.Retrieve(cacheKey)
	if err != nil {
		t.Error(err)
	}
	if ls != status.LookupStatusHit {
		t.Errorf("expected %s got %s", status.LookupStatusHit, ls)
	}
	if string(data) != "data" {
		t.Errorf("wanted \"%s\". got \"%s\"", "data", data)
	}

	// the escaped file name must stay inside the cache path
	entries, _ := os.ReadDir(fc.Config.Filesystem.CachePath)
	if len(entries) != 1 {
		t.Errorf("expected %d got %d", 1, len(entries))
	}

	_, ls, err = fc.Retrieve("missing")
	if err != cache.ErrKNF {
		t.Errorf("expected %v got %v", cache.ErrKNF, err)
	}
	if ls != status.LookupStatusKeyMiss {
		t.Errorf("expected %s got %s", status.LookupStatusKeyMiss, ls)
	}
}

func TestFilesystemCache_Remove(t *testing.T) {
	fc := New(t.Name(), newCacheConfig(t))
	if err := fc.Connect(); err != nil {
		t.Fatal(err)
	}
	fc.Store(cacheKey, []byte("data"))
	if err := fc.Remove(cacheKey, "missing"); err != nil {
		t.Error(err)
	}
	if _, _, err := fc.Retrieve(cacheKey); err != cache.ErrKNF {
		t.Errorf("expected %v got %v", cache.ErrKNF, err)
	}
}

func TestFilesystemCache_Clear(t *testing.T) {
	fc := New(t.Name(), newCacheConfig(t))
	if err := fc.Connect(); err != nil {
		t.Fatal(err)
	}
	other := filepath.Join(fc.Config.Filesystem.CachePath, "keep.txt")
	os.WriteFile(other, []byte("x"), 0o600)
	for _, k := range []string{"a", "b/c", "../d"} {
		if err := fc.Store(k, []byte(k)); err != nil {
			t.Error(err)
		}
	}
	if err := fc.Clear(); err != nil {
		t.Error(err)
	}
	for _, k := range []string{"a", "b/c", "../d"} {
		if _, _, err := fc.Retrieve(k); err != cache.ErrKNF {
			t.Errorf("expected %v got %v", cache.ErrKNF, err)
		}
	}
	if _, err := os.Stat(other); err != nil {
		t.Errorf("expected unrelated file to survive: %v", err)
	}
}
