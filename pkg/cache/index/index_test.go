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

package index

import (
	"testing"
	"time"

	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/cache/memory"
	"github.com/roofscape/visualizer/pkg/cache/status"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestIndexStoreRemove(t *testing.T) {
	idx := New("test", "memory")
	require.Equal(t, int64(0), idx.Size())
	require.Equal(t, int64(0), idx.Count())

	require.NoError(t, idx.Store("foo", 3, epoch))
	require.NoError(t, idx.Store("bar", 5, epoch))
	require.Equal(t, int64(8), idx.Size())
	require.Equal(t, int64(2), idx.Count())
	require.True(t, idx.Dirty())

	// overwrite adjusts the size without changing the count
	require.NoError(t, idx.Store("foo", 10, epoch.Add(time.Second)))
	require.Equal(t, int64(15), idx.Size())
	require.Equal(t, int64(2), idx.Count())

	o, ok := idx.Lookup("foo")
	require.True(t, ok)
	require.Equal(t, int64(10), o.Size)
	require.Equal(t, epoch.Add(time.Second), o.LastWrite)

	require.ErrorIs(t, idx.Store(IndexKey, 1, epoch), ErrIndexInvalidCacheKey)

	require.Equal(t, int64(10), idx.Remove("foo", "missing"))
	require.Equal(t, int64(5), idx.Size())
	require.Equal(t, int64(1), idx.Count())
	require.Equal(t, []string{"bar"}, idx.Keys())

	idx.Clear()
	require.Equal(t, int64(0), idx.Size())
	require.Equal(t, int64(0), idx.Count())
	require.Len(t, idx.Keys(), 0)
}

func TestIndexTouch(t *testing.T) {
	idx := New("test", "memory")
	require.NoError(t, idx.Store("foo", 3, epoch))
	idx.Touch("foo", epoch.Add(time.Minute))
	idx.Touch("missing", epoch)
	o, _ := idx.Lookup("foo")
	require.Equal(t, epoch.Add(time.Minute), o.LastAccess)
	require.Equal(t, epoch, o.LastWrite)
}

func TestVictims(t *testing.T) {
	idx := New("test", "memory")
	// under budget selects nothing
	require.NoError(t, idx.Store("a", 40, epoch))
	require.Nil(t, idx.Victims(100, 0.75))
	require.Nil(t, idx.Victims(0, 0.75))

	require.NoError(t, idx.Store("b", 20, epoch))                    // same age as a, smaller
	require.NoError(t, idx.Store("c", 30, epoch.Add(time.Second)))   // newer
	require.NoError(t, idx.Store("d", 30, epoch.Add(2*time.Second))) // newest
	require.Equal(t, int64(120), idx.Size())

	// 120 > 100; must drop to <= 75. a (oldest, larger) first then b
	v := idx.Victims(100, 0.75)
	require.Equal(t, []string{"a", "b"}, v)

	idx.Remove(v...)
	require.LessOrEqual(t, idx.Size(), int64(75))

	// ratio of 0.5 forces more victims, oldest first
	require.NoError(t, idx.Store("e", 60, epoch.Add(3*time.Second)))
	require.Equal(t, int64(120), idx.Size())
	v = idx.Victims(100, 0.5)
	require.Equal(t, []string{"c", "d", "e"}, v)
	// the index itself is untouched
	require.Equal(t, int64(120), idx.Size())
}

func TestVictimsTieBreak(t *testing.T) {
	idx := New("test", "memory")
	require.NoError(t, idx.Store("small", 10, epoch))
	require.NoError(t, idx.Store("large", 90, epoch))
	require.NoError(t, idx.Store("mid", 50, epoch))
	v := idx.Victims(100, 0.75)
	require.Equal(t, []string{"large"}, v)
}

func TestMarshalRoundTrip(t *testing.T) {
	idx := New("test", "memory")
	require.NoError(t, idx.Store("foo", 3, epoch))
	require.NoError(t, idx.Store("bar", 5, epoch.Add(time.Hour)))
	b, err := idx.MarshalMsg(nil)
	require.NoError(t, err)
	require.LessOrEqual(t, len(b), idx.Msgsize())

	idx2 := New("test", "memory")
	rest, err := idx2.UnmarshalMsg(b)
	require.NoError(t, err)
	require.Len(t, rest, 0)
	require.Equal(t, idx.CacheSize, idx2.CacheSize)
	require.Equal(t, idx.ObjectCount, idx2.ObjectCount)
	o, ok := idx2.Lookup("bar")
	require.True(t, ok)
	require.True(t, epoch.Add(time.Hour).Equal(o.LastWrite))
}

func TestFlushLoad(t *testing.T) {
	mc := memory.New("test", nil)

	// nothing flushed yet yields an empty index
	idx, err := Load("test", "memory", mc)
	require.NoError(t, err)
	require.Equal(t, int64(0), idx.Count())

	require.NoError(t, idx.Store("test.1", 10, epoch))
	require.NoError(t, idx.Store("test.2", 20, epoch))
	require.NoError(t, idx.Flush(mc))
	require.False(t, idx.Dirty())

	_, s, err := mc.Retrieve(IndexKey)
	require.NoError(t, err)
	require.Equal(t, status.LookupStatusHit, s)

	idx2, err := Load("test", "memory", mc)
	require.NoError(t, err)
	require.Equal(t, []string{"test.1", "test.2"}, idx2.Keys())
	require.Equal(t, int64(30), idx2.Size())
	require.Equal(t, int64(2), idx2.Count())
	require.False(t, idx2.Dirty())
}

func TestLoadCorrupt(t *testing.T) {
	mc := memory.New("test", nil)
	require.NoError(t, mc.Store(IndexKey, []byte{0xc1, 0x00}))
	idx, err := Load("test", "memory", mc)
	require.Error(t, err)
	require.NotNil(t, idx)
	require.Equal(t, int64(0), idx.Count())
}

type failingClient struct {
	cache.Client
}

func (failingClient) Store(string, []byte) error {
	return cache.ErrNotConnected
}

func TestFlushFailureStaysDirty(t *testing.T) {
	idx := New("test", "memory")
	require.NoError(t, idx.Store("foo", 3, epoch))
	require.ErrorIs(t, idx.Flush(failingClient{memory.New("test", nil)}), cache.ErrNotConnected)
	require.True(t, idx.Dirty())
}
