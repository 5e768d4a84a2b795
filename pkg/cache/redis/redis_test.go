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
	"strconv"
	"testing"
	"time"

	"github.com/roofscape/visualizer/pkg/cache"
	co "github.com/roofscape/visualizer/pkg/cache/options"
	ro "github.com/roofscape/visualizer/pkg/cache/redis/options"
	"github.com/roofscape/visualizer/pkg/cache/status"
	"github.com/roofscape/visualizer/pkg/observability/logging"

	"github.com/alicebob/miniredis"
)

const cacheKey = `cacheKey`

func setupRedisCache(t *testing.T, ct clientType) (*CacheClient, *miniredis.Miniredis) {
	s, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	rcfg := ro.New()
	rcfg.ClientType = ct.String()
	rcfg.Endpoint = s.Addr()
	rcfg.Endpoints = []string{s.Addr()}
	if ct == clientTypeSentinel {
		rcfg.SentinelMaster = s.Addr()
	}
	cfg := co.New()
	cfg.Provider = "redis"
	cfg.Redis = rcfg
	return New("test", cfg, logging.ConsoleLogger("error")), s
}

func connected(t *testing.T) (*CacheClient, *miniredis.Miniredis) {
	rc, s := setupRedisCache(t, clientTypeStandard)
	if err := rc.Connect(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { rc.Close() })
	return rc, s
}

func TestConfiguration(t *testing.T) {
	rc, _ := setupRedisCache(t, clientTypeStandard)
	cfg := rc.Configuration()
	if cfg.Redis.ClientType != clientTypeStandard.String() {
		t.Fatalf("expected %s got %s", clientTypeStandard.String(), cfg.Redis.ClientType)
	}
}

func TestSentinelOpts(t *testing.T) {
	rc, _ := setupRedisCache(t, clientTypeSentinel)

	rc.Configuration().Redis.Endpoints = nil
	if err := rc.Connect(); err != ro.ErrInvalidEndpointsConfig {
		t.Errorf("expected %v got %v", ro.ErrInvalidEndpointsConfig, err)
	}

	rc.Configuration().Redis.Endpoints = []string{"test"}
	rc.Configuration().Redis.SentinelMaster = ""
	if err := rc.Connect(); err != ro.ErrInvalidSentinalMasterConfig {
		t.Errorf("expected %v got %v", ro.ErrInvalidSentinalMasterConfig, err)
	}

	rc.Configuration().Redis.DialTimeoutMS = 500
	rc.Configuration().Redis.PoolSize = 3
	o := rc.sentinelOpts()
	if o.DialTimeout != 500*time.Millisecond || o.PoolSize != 3 {
		t.Errorf("unexpected sentinel options %+v", o)
	}
}

func TestClientSelectionSentinel(t *testing.T) {
	// miniredis does not implement the sentinel protocol
	rc, _ := setupRedisCache(t, clientTypeSentinel)
	rc.Configuration().Redis.DialTimeoutMS = 200
	if err := rc.Connect(); err == nil {
		t.Error("expected error connecting to a non-sentinel server")
		rc.Close()
	}
}

func TestClusterOpts(t *testing.T) {
	rc, _ := setupRedisCache(t, clientTypeCluster)
	rc.Configuration().Redis.Endpoints = nil
	if err := rc.Connect(); err != ro.ErrInvalidEndpointsConfig {
		t.Errorf("expected %v got %v", ro.ErrInvalidEndpointsConfig, err)
	}
	rc.Configuration().Redis.Endpoints = []string{"a:6379", "b:6379"}
	rc.Configuration().Redis.MaxRetries = 4
	o := rc.clusterOpts()
	if len(o.Addrs) != 2 || o.MaxRedirects != 4 {
		t.Errorf("unexpected cluster options %+v", o)
	}
}

func TestClientOpts(t *testing.T) {
	rc, _ := setupRedisCache(t, clientTypeStandard)
	rc.Configuration().Redis.Endpoint = ""
	if err := rc.Connect(); err != ro.ErrInvalidEndpointConfig {
		t.Errorf("expected %v got %v", ro.ErrInvalidEndpointConfig, err)
	}
	rc.Configuration().Redis.Endpoint = "localhost:6379"
	rc.Configuration().Redis.IdleTimeoutMS = 1000
	rc.Configuration().Redis.MaxConnAgeMS = 2000
	o := rc.clientOpts()
	if o.IdleTimeout != time.Second || o.MaxConnAge != 2*time.Second {
		t.Errorf("unexpected client options %+v", o)
	}
}

func TestDurationFromMS(t *testing.T) {
	tests := []struct {
		input    int
		expected time.Duration
	}{
		{0, time.Duration(0)},
		{5000, time.Duration(5000) * time.Millisecond},
		{60000, time.Duration(60000) * time.Millisecond},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			res := durationFromMS(test.input)
			if res != test.expected {
				t.Fatalf("Mismatch in durationFromMS: expected=%f actual=%f", test.expected.Seconds(), res.Seconds())
			}
		})
	}
}

func TestRedisCache_NotConnected(t *testing.T) {
	rc, _ := setupRedisCache(t, clientTypeStandard)
	if err := rc.Store(cacheKey, nil); err != cache.ErrNotConnected {
		t.Errorf("expected %v got %v", cache.ErrNotConnected, err)
	}
	if err := rc.Close(); err != nil {
		t.Error(err)
	}
}

func TestRedisCache_StoreRetrieve(t *testing.T) {
	rc, s := connected(t)

	if err := rc.Store(cacheKey, []byte("data")); err != nil {
		t.Error(err)
	}
	// keys are written under the configured prefix
	if v, err := s.Get(ro.DefaultKeyPrefix + cacheKey); err != nil || v != "data" {
		t.Errorf("expected prefixed key, got %s %v", v, err)
	}

	data, ls, err := rc.Retrieve(cacheKey)
	if err != nil {
		t.Error(err)
	}
	if ls != status.LookupStatusHit {
		t.Errorf("expected %s got %s", status.LookupStatusHit, ls)
	}
	if string(data) != "data" {
		t.Errorf("wanted \"%s\". got \"%s\"", "data", data)
	}

	_, ls, err = rc.Retrieve("missing")
	if err != cache.ErrKNF {
		t.Errorf("expected %v got %v", cache.ErrKNF, err)
	}
	if ls != status.LookupStatusKeyMiss {
		t.Errorf("expected %s got %s", status.LookupStatusKeyMiss, ls)
	}
}

func TestCache_Remove(t *testing.T) {
	rc, _ := connected(t)
	rc.Store(cacheKey, []byte("data"))
	rc.Store(cacheKey+"2", []byte("data"))

	if err := rc.Remove(cacheKey, "missing"); err != nil {
		t.Error(err)
	}
	if err := rc.Remove(); err != nil {
		t.Error(err)
	}
	_, ls, err := rc.Retrieve(cacheKey)
	if err == nil {
		t.Errorf("expected key not found error for %s", cacheKey)
	}
	if ls != status.LookupStatusKeyMiss {
		t.Errorf("expected %s got %s", status.LookupStatusKeyMiss, ls)
	}
	if _, _, err := rc.Retrieve(cacheKey + "2"); err != nil {
		t.Error(err)
	}
}

func TestCache_Clear(t *testing.T) {
	rc, s := connected(t)
	s.Set("unrelated", "keep")
	for i := 0; i < 1200; i++ {
		rc.Store(cacheKey+strconv.Itoa(i), []byte("data"))
	}
	if err := rc.Clear(); err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{0, 600, 1199} {
		if _, _, err := rc.Retrieve(cacheKey + strconv.Itoa(i)); err != cache.ErrKNF {
			t.Errorf("expected %v got %v", cache.ErrKNF, err)
		}
	}
	if v, err := s.Get("unrelated"); err != nil || v != "keep" {
		t.Errorf("expected unrelated key to survive, got %s %v", v, err)
	}
}
