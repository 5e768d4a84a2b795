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

// Package monitor samples rendering cost every N frames, classifies the health
// of each sample and keeps a rolling fps history. It never panics or blocks
// the render loop on I/O.
package monitor

import (
	"strings"
	"sync"
	"time"

	"github.com/roofscape/visualizer/pkg/monitor/options"
	"github.com/roofscape/visualizer/pkg/observability/logging"
	"github.com/roofscape/visualizer/pkg/observability/metrics"
)

// Sample is one measurement taken on a sampling tick
type Sample struct {
	Time        time.Time
	FPS         float64
	FrameTimeMS float64
	// MemoryAvailable is false when the host exposed no memory telemetry;
	// the memory fields are then zero
	MemoryAvailable bool
	MemoryUsedMB    float64
	MemoryLimitMB   float64
	DrawCalls       int
	Triangles       int
	Textures        int
	Geometries      int
	Programs        int
}

// VerdictFunc is called after every sample with the sample and its verdict
type VerdictFunc func(Sample, Verdict)

// Monitor is attached to a render loop through Tick
type Monitor struct {
	opts      *options.Options
	telemetry MemoryTelemetry
	logger    *logging.Logger
	now       func() time.Time

	mtx         sync.RWMutex
	frames      int
	last        time.Time
	history     []float64
	head        int
	count       int
	latest      Sample
	verdict     Verdict
	sampled     bool
	subscribers []VerdictFunc
}

// New returns a Monitor. telemetry may be nil when the host exposes no
// memory information.
func New(o *options.Options, telemetry MemoryTelemetry, logger *logging.Logger) (*Monitor, error) {
	if o == nil {
		o = options.New()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	m := &Monitor{
		opts:      o,
		telemetry: telemetry,
		logger:    logging.OrNoop(logger),
		now:       time.Now,
		history:   make([]float64, o.HistorySize),
	}
	m.last = m.now()
	return m, nil
}

// OnVerdict registers f to be called after every sample. f runs on the
// goroutine calling Tick and must not block.
func (m *Monitor) OnVerdict(f VerdictFunc) {
	if f == nil {
		return
	}
	m.mtx.Lock()
	m.subscribers = append(m.subscribers, f)
	m.mtx.Unlock()
}

// Tick is called once per rendered frame. Every SampleEveryFrames frames it
// takes a sample and returns true.
func (m *Monitor) Tick(stats SceneStats) bool {
	m.mtx.Lock()
	m.frames++
	if m.frames < m.opts.SampleEveryFrames {
		m.mtx.Unlock()
		return false
	}
	now := m.now()
	elapsed := now.Sub(m.last)
	frames := m.frames
	m.frames = 0
	m.last = now
	if elapsed <= 0 {
		// a clock that did not advance gives no usable rate
		m.mtx.Unlock()
		return false
	}

	stats = stats.clamped()
	s := Sample{
		Time:        now,
		FPS:         float64(frames) / elapsed.Seconds(),
		FrameTimeMS: float64(elapsed) / float64(time.Millisecond) / float64(frames),
		DrawCalls:   stats.DrawCalls,
		Triangles:   stats.Triangles,
		Textures:    stats.Textures,
		Geometries:  stats.Geometries,
		Programs:    stats.Programs,
	}
	if m.telemetry != nil {
		used, limit, ok := m.telemetry.Memory()
		if ok && limit > 0 && used >= 0 {
			s.MemoryAvailable = true
			s.MemoryUsedMB = used
			s.MemoryLimitMB = limit
		}
	}
	v := Evaluate(s, m.opts.Thresholds)

	m.history[m.head] = s.FPS
	m.head = (m.head + 1) % len(m.history)
	if m.count < len(m.history) {
		m.count++
	}
	prev := m.verdict.Rating
	wasSampled := m.sampled
	m.latest = s
	m.verdict = v
	m.sampled = true
	subs := m.subscribers
	m.mtx.Unlock()

	m.observe(s, v)
	if v.Rating == RatingPoor && (!wasSampled || prev != RatingPoor) {
		m.logger.Warn("render performance is poor", logging.Pairs{"fps": s.FPS,
			"issues": strings.Join(v.Issues, "; "), "recommendations": strings.Join(v.Recommendations, "; ")})
	}
	for _, f := range subs {
		f(s, v)
	}
	return true
}

func (m *Monitor) observe(s Sample, v Verdict) {
	metrics.RenderFPS.Set(s.FPS)
	metrics.RenderFrameTime.Set(s.FrameTimeMS)
	metrics.RenderDrawCalls.Set(float64(s.DrawCalls))
	metrics.RenderTriangles.Set(float64(s.Triangles))
	metrics.RenderRating.Set(float64(v.Rating))
	for _, issue := range v.Issues {
		metrics.RenderIssues.WithLabelValues(issue).Inc()
	}
	m.logger.Debug("render sample", logging.Pairs{"fps": s.FPS, "frameTimeMS": s.FrameTimeMS,
		"drawCalls": s.DrawCalls, "triangles": s.Triangles, "textures": s.Textures,
		"memoryUsedMB": s.MemoryUsedMB, "rating": v.Rating.String()})
}

// Latest returns the most recent sample, and false before the first one
func (m *Monitor) Latest() (Sample, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.latest, m.sampled
}

// Verdict returns the verdict of the most recent sample, and false before the
// first one
func (m *Monitor) Verdict() (Verdict, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	v := m.verdict
	v.Issues = append([]string(nil), v.Issues...)
	v.Recommendations = append([]string(nil), v.Recommendations...)
	return v, m.sampled
}

// AverageFPS returns the mean of the fps history, or 0 when it is empty
func (m *Monitor) AverageFPS() float64 {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	if m.count == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < m.count; i++ {
		sum += m.history[i]
	}
	return sum / float64(m.count)
}

// History returns a copy of the fps history, oldest first
func (m *Monitor) History() []float64 {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	out := make([]float64, m.count)
	start := (m.head - m.count + len(m.history)) % len(m.history)
	for i := 0; i < m.count; i++ {
		out[i] = m.history[(start+i)%len(m.history)]
	}
	return out
}
