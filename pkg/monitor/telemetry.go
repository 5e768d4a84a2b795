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
	"math"
	"runtime/metrics"
)

const bytesPerMB = 1024 * 1024

const (
	metricTotalBytes    = "/memory/classes/total:bytes"
	metricReleasedBytes = "/memory/classes/heap/released:bytes"
	metricMemoryLimit   = "/gc/gomemlimit:bytes"
)

// MemoryTelemetry reports host memory usage. ok is false when the host does
// not expose it, in which case memory checks are skipped.
type MemoryTelemetry interface {
	Memory() (usedMB, limitMB float64, ok bool)
}

// MemoryFunc adapts a function to the MemoryTelemetry interface
type MemoryFunc func() (usedMB, limitMB float64, ok bool)

// Memory calls f()
func (f MemoryFunc) Memory() (float64, float64, bool) {
	return f()
}

// RuntimeTelemetry reports the Go runtime's memory against its soft memory
// limit (GOMEMLIMIT). Without a limit, memory is reported as unavailable.
type RuntimeTelemetry struct{}

// Memory returns the memory obtained from the OS and not yet returned, and the
// limit. It reads runtime/metrics, which does not stop the world, so it is
// safe to call from the render loop.
func (RuntimeTelemetry) Memory() (float64, float64, bool) {
	samples := []metrics.Sample{
		{Name: metricMemoryLimit},
		{Name: metricTotalBytes},
		{Name: metricReleasedBytes},
	}
	metrics.Read(samples)
	for _, s := range samples {
		if s.Value.Kind() != metrics.KindUint64 {
			return 0, 0, false
		}
	}
	limit := samples[0].Value.Uint64()
	if limit == 0 || limit >= math.MaxInt64 {
		return 0, 0, false
	}
	used := samples[1].Value.Uint64() - samples[2].Value.Uint64()
	return float64(used) / bytesPerMB, float64(limit) / bytesPerMB, true
}
