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

package fetch

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited bounds the rate of fetches issued to the wrapped Fetcher.
// Callers wait for a token or for their context to end.
type RateLimited struct {
	next    Fetcher
	limiter *rate.Limiter
}

// NewRateLimited wraps f with a token bucket of rps tokens per second
func NewRateLimited(f Fetcher, rps float64, burst int) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{next: f, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Fetch waits for a token and fetches key
func (r *RateLimited) Fetch(ctx context.Context, key string) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.next.Fetch(ctx, key)
}
