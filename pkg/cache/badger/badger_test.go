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

package badger

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/roofscape/visualizer/pkg/cache"
	bo "github.com/roofscape/visualizer/pkg/cache/badger/options"
	co "github.com/roofscape/visualizer/pkg/cache/options"
	"github.com/roofscape/visualizer/pkg/cache/status"
	"github.com/roofscape/visualizer/pkg/observability/logging"
)

const cacheKey = "cacheKey"

func newCacheConfig(t *testing.T) *co.Options {
	dir := t.TempDir()
	o := co.New()
	o.Provider = "badger"
	o.Badger = &bo.Options{Directory: dir, ValueDirectory: dir}
	return o
}

func connected(t *testing.T) *CacheClient {
	bc := New(t.Name(), newCacheConfig(t), logging.ConsoleLogger("error"))
	if err := bc.Connect(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { bc.Close() })
	return bc
}

func TestConfiguration(t *testing.T) {
	bc := New(t.Name(), nil, nil)
	if bc.Configuration().Badger.Directory != bo.DefaultDirectory {
		t.Errorf("expected %s got %s", bo.DefaultDirectory, bc.Configuration().Badger.Directory)
	}
}

func TestBadgerCache_NotConnected(t *testing.T) {
	bc := New(t.Name(), nil, nil)
	if err := bc.Store(cacheKey, nil); err != cache.ErrNotConnected {
		t.Errorf("expected %v got %v", cache.ErrNotConnected, err)
	}
	if err := bc.Close(); err != nil {
		t.Error(err)
	}
}

func TestBadgerCache_StoreRetrieve(t *testing.T) {
	bc := connected(t)
	if err := bc.Store(cacheKey, []byte("data")); err != nil {
		t.Error(err)
	}
	data, ls, err := bc.Retrieve(cacheKey)
	if err != nil {
		t.Error(err)
	}
	if ls != status.LookupStatusHit {
		t.Errorf("expected %s got %s", status.LookupStatusHit, ls)
	}
	if string(data) != "data" {
		t.Errorf("wanted \"%s\". got \"%s\"", "data", data)
	}
	_, ls, err = bc.Retrieve("missing")
	if err != cache.ErrKNF {
		t.Errorf("expected %v got %v", cache.ErrKNF, err)
	}
	if ls != status.LookupStatusKeyMiss {
		t.Errorf("expected %s got %s", status.LookupStatusKeyMiss, ls)
	}
}

func TestBadgerCache_RemoveClear(t *testing.T) {
	bc := connected(t)
	for i := 0; i < clearBatchSize+5; i++ {
		if err := bc.Store(cacheKey+strconv.Itoa(i), []byte("data")); err != nil {
			t.Fatal(err)
		}
	}
	if err := bc.Remove(cacheKey+"0", "missing"); err != nil {
		t.Error(err)
	}
	if _, _, err := bc.Retrieve(cacheKey + "0"); err != cache.ErrKNF {
		t.Errorf("expected %v got %v", cache.ErrKNF, err)
	}
	if err := bc.Clear(); err != nil {
		t.Error(err)
	}
	for _, i := range []int{1, 500, clearBatchSize + 4} {
		if _, _, err := bc.Retrieve(cacheKey + strconv.Itoa(i)); err != cache.ErrKNF {
			t.Errorf("expected %v got %v", cache.ErrKNF, err)
		}
	}
}

func TestBadgerLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	bl := badgerLogger{logging.StreamLogger(buf, "warn")}
	bl.Infof("ignored %d\n", 1)
	bl.Warningf("value log %s\n", "rotated")
	if !strings.Contains(buf.String(), "value log rotated") {
		t.Errorf("expected warning in log output, got %s", buf.String())
	}
	if strings.Contains(buf.String(), "ignored") {
		t.Errorf("expected info to be filtered, got %s", buf.String())
	}
}
