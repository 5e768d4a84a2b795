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

package monitor

import (
	"bytes"
	"math"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/roofscape/visualizer/pkg/monitor/options"
	"github.com/roofscape/visualizer/pkg/observability/logging"

	"github.com/stretchr/testify/require"
)

type testClock struct {
	mtx sync.Mutex
	t   time.Time
}

func (c *testClock) now() time.Time {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.mtx.Lock()
	c.t = c.t.Add(d)
	c.mtx.Unlock()
}

func newTestMonitor(t *testing.T, o *options.Options, tel MemoryTelemetry,
	logger *logging.Logger) (*Monitor, *testClock) {
	m, err := New(o, tel, logger)
	require.NoError(t, err)
	clock := &testClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m.now = clock.now
	m.last = clock.now()
	return m, clock
}

// runFrames ticks n frames spaced by frameTime and returns how many sampled
func runFrames(m *Monitor, clock *testClock, n int, frameTime time.Duration, stats SceneStats) int {
	var sampled int
	for i := 0; i < n; i++ {
		clock.advance(frameTime)
		if m.Tick(stats) {
			sampled++
		}
	}
	return sampled
}

func TestTickSamplesEveryNthFrame(t *testing.T) {
	m, clock := newTestMonitor(t, nil, nil, nil)

	_, ok := m.Latest()
	require.False(t, ok)
	_, ok = m.Verdict()
	require.False(t, ok)
	require.Equal(t, 0.0, m.AverageFPS())
	require.Len(t, m.History(), 0)

	require.Equal(t, 0, runFrames(m, clock, 29, 10*time.Millisecond, SceneStats{}))
	require.Equal(t, 1, runFrames(m, clock, 1, 10*time.Millisecond, SceneStats{DrawCalls: 12}))

	s, ok := m.Latest()
	require.True(t, ok)
	require.InDelta(t, 100, s.FPS, 1e-9)
	require.InDelta(t, 10, s.FrameTimeMS, 1e-9)
	require.Equal(t, 12, s.DrawCalls)
	require.False(t, s.MemoryAvailable)

	v, ok := m.Verdict()
	require.True(t, ok)
	require.Equal(t, RatingExcellent, v.Rating)
	require.Len(t, v.Issues, 0)
}

func TestVerdictDeterminism(t *testing.T) {
	s := Sample{FPS: 25, MemoryAvailable: true, MemoryUsedMB: 50, MemoryLimitMB: 100,
		DrawCalls: 50, Triangles: 1000}
	for i := 0; i < 10; i++ {
		v := Evaluate(s, nil)
		require.Equal(t, RatingPoor, v.Rating)
		require.Equal(t, []string{IssueVeryLowFPS}, v.Issues)
		require.Len(t, v.Recommendations, 1)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		s      Sample
		rating Rating
		issues []string
	}{
		{"excellent", Sample{FPS: 60}, RatingExcellent, nil},
		{"good fps", Sample{FPS: 50}, RatingGood, nil},
		{"low fps", Sample{FPS: 40}, RatingFair, []string{IssueLowFPS}},
		{"boundary 30 is low not very low", Sample{FPS: 30}, RatingFair, []string{IssueLowFPS}},
		{"boundary 55 is excellent", Sample{FPS: 55}, RatingExcellent, nil},
		{"critical memory", Sample{FPS: 60, MemoryAvailable: true, MemoryUsedMB: 95, MemoryLimitMB: 100},
			RatingPoor, []string{IssueCriticalMemory}},
		{"high memory", Sample{FPS: 60, MemoryAvailable: true, MemoryUsedMB: 80, MemoryLimitMB: 100},
			RatingGood, []string{IssueHighMemory}},
		{"high memory does not upgrade", Sample{FPS: 40, MemoryAvailable: true, MemoryUsedMB: 80,
			MemoryLimitMB: 100}, RatingFair, []string{IssueLowFPS, IssueHighMemory}},
		{"memory skipped without telemetry", Sample{FPS: 60, MemoryUsedMB: 95, MemoryLimitMB: 100},
			RatingExcellent, nil},
		{"draw calls", Sample{FPS: 60, DrawCalls: 201}, RatingGood, []string{IssueTooManyDrawCalls}},
		{"very high polygons", Sample{FPS: 60, Triangles: 1000001}, RatingFair,
			[]string{IssueVeryHighPolyCount}},
		{"high polygons", Sample{FPS: 60, Triangles: 600000}, RatingExcellent,
			[]string{IssueHighPolyCount}},
		{"many textures", Sample{FPS: 60, Textures: 51}, RatingExcellent, []string{IssueManyTextures}},
		{"everything", Sample{FPS: 10, MemoryAvailable: true, MemoryUsedMB: 99, MemoryLimitMB: 100,
			DrawCalls: 500, Triangles: 2000000, Textures: 80}, RatingPoor,
			[]string{IssueVeryLowFPS, IssueCriticalMemory, IssueTooManyDrawCalls,
				IssueVeryHighPolyCount, IssueManyTextures}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := Evaluate(test.s, options.NewThresholds())
			require.Equal(t, test.rating, v.Rating)
			require.Equal(t, test.issues, v.Issues)
			require.Equal(t, len(v.Issues), len(v.Recommendations))
			for i, issue := range v.Issues {
				require.True(t, v.HasIssue(issue))
				require.Equal(t, recommendations[issue], v.Recommendations[i])
			}
		})
	}
}

func TestMemoryTelemetry(t *testing.T) {
	var used float64 = 95
	tel := MemoryFunc(func() (float64, float64, bool) { return used, 100, true })
	m, clock := newTestMonitor(t, &options.Options{SampleEveryFrames: 2}, tel, nil)

	require.Equal(t, 1, runFrames(m, clock, 2, 10*time.Millisecond, SceneStats{}))
	v, _ := m.Verdict()
	require.Equal(t, RatingPoor, v.Rating)
	require.True(t, v.HasIssue(IssueCriticalMemory))

	// a host without telemetry never reports memory issues
	m, clock = newTestMonitor(t, &options.Options{SampleEveryFrames: 2},
		MemoryFunc(func() (float64, float64, bool) { return 0, 0, false }), nil)
	runFrames(m, clock, 2, 10*time.Millisecond, SceneStats{})
	s, _ := m.Latest()
	require.False(t, s.MemoryAvailable)
	v, _ = m.Verdict()
	require.Equal(t, RatingExcellent, v.Rating)
}

func TestMalformedStatsAreClamped(t *testing.T) {
	m, clock := newTestMonitor(t, &options.Options{SampleEveryFrames: 1}, nil, nil)
	require.Equal(t, 1, runFrames(m, clock, 1, 10*time.Millisecond,
		SceneStats{DrawCalls: -5, Triangles: -1, Textures: -9, Geometries: -2, Programs: -3}))
	s, _ := m.Latest()
	require.Equal(t, 0, s.DrawCalls)
	require.Equal(t, 0, s.Triangles)
	require.Equal(t, 0, s.Textures)
	require.Equal(t, 0, s.Geometries)
	require.Equal(t, 0, s.Programs)

	// a clock that stands still yields no sample rather than an infinite rate
	require.False(t, m.Tick(SceneStats{}))
}

func TestHistoryRing(t *testing.T) {
	m, clock := newTestMonitor(t, &options.Options{SampleEveryFrames: 1, HistorySize: 3}, nil, nil)
	for _, ft := range []time.Duration{10, 20, 40, 50} {
		runFrames(m, clock, 1, ft*time.Millisecond, SceneStats{})
	}
	h := m.History()
	require.Len(t, h, 3)
	require.InDelta(t, 50, h[0], 1e-9)
	require.InDelta(t, 25, h[1], 1e-9)
	require.InDelta(t, 20, h[2], 1e-9)
	require.InDelta(t, 95.0/3, m.AverageFPS(), 1e-9)

	// the copy is detached from the monitor
	h[0] = 0
	require.InDelta(t, 50, m.History()[0], 1e-9)
}

func TestOnVerdictAndPoorWarning(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.StreamLogger(buf, "warn")
	m, clock := newTestMonitor(t, &options.Options{SampleEveryFrames: 1}, nil, logger)

	var got []Rating
	m.OnVerdict(func(s Sample, v Verdict) { got = append(got, v.Rating) })
	m.OnVerdict(nil)

	runFrames(m, clock, 1, 100*time.Millisecond, SceneStats{}) // 10 fps
	runFrames(m, clock, 1, 100*time.Millisecond, SceneStats{}) // still poor
	runFrames(m, clock, 1, 10*time.Millisecond, SceneStats{})  // 100 fps

	require.Equal(t, []Rating{RatingPoor, RatingPoor, RatingExcellent}, got)
	require.Equal(t, 1, strings.Count(buf.String(), "render performance is poor"))
}

type node struct {
	tris     int
	children []Renderable
}

func (n *node) TriangleCount() int { return n.tris }
func (n *node) Children() []Renderable { return n.children }

func TestCountTriangles(t *testing.T) {
	tree := &node{tris: 10, children: []Renderable{
		&node{tris: 5},
		&node{tris: -3, children: []Renderable{&node{tris: 7}, nil}},
	}}
	require.Equal(t, 22, CountTriangles(tree))
	require.Equal(t, 24, CountTriangles(tree, &node{tris: 2}))
	require.Equal(t, 0, CountTriangles())
}

func TestRatingString(t *testing.T) {
	require.Equal(t, "poor", RatingPoor.String())
	require.Equal(t, "unknown", Rating(9).String())
}

func TestRuntimeTelemetry(t *testing.T) {
	prev := debug.SetMemoryLimit(math.MaxInt64)
	defer debug.SetMemoryLimit(prev)

	_, _, ok := RuntimeTelemetry{}.Memory()
	require.False(t, ok)

	debug.SetMemoryLimit(1 << 40)
	used, limit, ok := RuntimeTelemetry{}.Memory()
	require.True(t, ok)
	require.Greater(t, used, 0.0)
	require.InDelta(t, float64(1<<40)/bytesPerMB, limit, 1e-6)

	// agrees with the stop-the-world accounting it replaces
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	want := float64(ms.Sys-ms.HeapReleased) / bytesPerMB
	require.InEpsilon(t, want, used, 0.25)
}
