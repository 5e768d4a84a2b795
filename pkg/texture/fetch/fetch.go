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

// Package fetch retrieves the origin bytes of textures
package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/roofscape/visualizer/pkg/texture/fetch/options"
)

var (
	// ErrNotFound is returned when the origin has no object for the key
	ErrNotFound = errors.New("texture source not found")
	// ErrTooLarge is returned when an object exceeds the configured body limit
	ErrTooLarge = errors.New("texture source exceeds size limit")
	// ErrInvalidKey is returned for keys a fetcher refuses to resolve
	ErrInvalidKey = errors.New("invalid texture key")
)

// Fetcher returns the raw bytes stored at key
type Fetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// Func adapts a function to the Fetcher interface
type Func func(ctx context.Context, key string) ([]byte, error)

// Fetch calls f(ctx, key)
func (f Func) Fetch(ctx context.Context, key string) ([]byte, error) {
	return f(ctx, key)
}

// New returns the Fetcher described by the options, wrapped in a rate limiter
// when RequestsPerSecond is set
func New(o *options.Options) (Fetcher, error) {
	if o == nil {
		o = options.New()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	var f Fetcher
	switch o.Provider {
	case "http":
		f = NewHTTP(o.BaseURL, o.TimeoutMS, o.MaxBodyBytes)
	case "file":
		f = NewFile(o.Root, o.MaxBodyBytes)
	case "minio":
		m, err := NewMinio(o.Minio, o.MaxBodyBytes)
		if err != nil {
			return nil, err
		}
		f = m
	default:
		return nil, fmt.Errorf("%w: %s", options.ErrInvalidProvider, o.Provider)
	}
	if o.RequestsPerSecond > 0 {
		f = NewRateLimited(f, o.RequestsPerSecond, o.Burst)
	}
	return f, nil
}
