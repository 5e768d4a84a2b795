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

package scene

import (
	"sync/atomic"

	"github.com/roofscape/visualizer/pkg/monitor"
	"github.com/roofscape/visualizer/pkg/observability/logging"
	"github.com/roofscape/visualizer/pkg/observability/metrics"
)

// MemoryShedder is the part of the texture cache the Governor drives
type MemoryShedder interface {
	PurgeMemoryTier() int
	RequestReap() bool
}

// Governor reacts to poor performance verdicts by shedding texture memory:
// critical memory purges the memory tier, any other poor verdict schedules an
// eviction pass. OnVerdict runs on the render loop, so it never waits on the
// persistent tier.
type Governor struct {
	cache  MemoryShedder
	logger *logging.Logger
	purges atomic.Int64
	reaps  atomic.Int64
}

// NewGovernor returns a Governor over the cache
func NewGovernor(c MemoryShedder, logger *logging.Logger) *Governor {
	return &Governor{cache: c, logger: logging.OrNoop(logger)}
}

// Attach subscribes the Governor to the monitor's verdicts
func (g *Governor) Attach(m *monitor.Monitor) {
	m.OnVerdict(g.OnVerdict)
}

// OnVerdict applies the verdict of one sample
func (g *Governor) OnVerdict(s monitor.Sample, v monitor.Verdict) {
	if v.Rating != monitor.RatingPoor {
		return
	}
	if v.HasIssue(monitor.IssueCriticalMemory) {
		n := g.cache.PurgeMemoryTier()
		g.purges.Add(1)
		metrics.GovernorActions.WithLabelValues("purge").Inc()
		g.logger.Warn("purged texture memory tier", logging.Pairs{"disposed": n,
			"memoryUsedMB": s.MemoryUsedMB, "memoryLimitMB": s.MemoryLimitMB})
		return
	}
	if !g.cache.RequestReap() {
		return
	}
	g.reaps.Add(1)
	metrics.GovernorActions.WithLabelValues("reap").Inc()
	g.logger.Debug("requested texture cache reap", logging.Pairs{"fps": s.FPS})
}

// Actions returns how many purges the Governor has run and how many reaps it
// has scheduled
func (g *Governor) Actions() (purges, reaps int64) {
	return g.purges.Load(), g.reaps.Load()
}
