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

package texture

// Statistics is a snapshot of a Cache's counters. Counters accumulate until
// Clear.
type Statistics struct {
	Hits        int64
	Misses      int64
	TotalLoaded int64
	// Evictions counts entries removed by budget eviction passes
	Evictions int64
	// MemoryUsageBytes is the serialized size of all persisted entries
	MemoryUsageBytes int64
	// MaxSizeBytes is the current eviction budget
	MaxSizeBytes int64
	// ResidentBytes is the decoded size of the memory tier
	ResidentBytes int64
	ResidentCount int
}

// HitRate returns hits / (hits + misses), or 0 before any access
func (s Statistics) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
