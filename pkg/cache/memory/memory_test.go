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

package memory

import (
	"testing"

	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/cache/status"
)

const cacheKey = "cacheKey"

func TestConfiguration(t *testing.T) {
	mc := New("test", nil)
	if mc.Configuration() == nil {
		t.Error("expected default configuration")
	}
}

func TestCache_StoreRetrieve(t *testing.T) {
	mc := New("test", nil)
	if err := mc.Connect(); err != nil {
		t.Error(err)
	}
	defer mc.Close()

	in := []byte("data")
	if err := mc.Store(cacheKey, in); err != nil {
		t.Error(err)
	}
	in[0] = 'D'

	data, ls, err := mc.Retrieve(cacheKey)
	if err != nil {
		t.Error(err)
	}
	if ls != status.LookupStatusHit {
		t.Errorf("expected %s got %s", status.LookupStatusHit, ls)
	}
	if string(data) != "data" {
		t.Errorf("wanted \"%s\". got \"%s\"", "data", data)
	}
}

func TestCache_Remove(t *testing.T) {
	mc := New("test", nil)
	mc.Store(cacheKey, []byte("data"))
	mc.Store(cacheKey+"2", []byte("data"))

	if err := mc.Remove(cacheKey, "missing"); err != nil {
		t.Error(err)
	}
	_, ls, err := mc.Retrieve(cacheKey)
	if err != cache.ErrKNF {
		t.Errorf("expected %v got %v", cache.ErrKNF, err)
	}
	if ls != status.LookupStatusKeyMiss {
		t.Errorf("expected %s got %s", status.LookupStatusKeyMiss, ls)
	}
	if _, _, err := mc.Retrieve(cacheKey + "2"); err != nil {
		t.Error(err)
	}
}

func TestCache_Clear(t *testing.T) {
	mc := New("test", nil)
	for _, k := range []string{"a", "b", "c"} {
		mc.Store(k, []byte(k))
	}
	if err := mc.Clear(); err != nil {
		t.Error(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, _, err := mc.Retrieve(k); err != cache.ErrKNF {
			t.Errorf("expected %v got %v", cache.ErrKNF, err)
		}
	}
}
