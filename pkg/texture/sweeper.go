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

import (
	"time"

	"github.com/roofscape/visualizer/pkg/observability/logging"
)

// sweeper runs Reap every interval, and whenever one is requested, until the
// cache is closed. A zero interval disables the periodic pass.
func (c *Cache) sweeper(interval time.Duration) {
	defer c.wg.Done()
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	c.logger.Debug("texture sweeper started", logging.Pairs{"cacheName": c.Name, "interval": interval.String()})
	for {
		select {
		case <-c.stop:
			return
		case <-tick:
			c.Reap()
		case <-c.reapReq:
			c.Reap()
		}
	}
}
