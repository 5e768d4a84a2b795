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

// Package cache defines the persistent tier interface shared by every storage
// provider, and the errors they return
package cache

import (
	"errors"

	"github.com/roofscape/visualizer/pkg/cache/options"
	"github.com/roofscape/visualizer/pkg/cache/status"
)

// ErrKNF represents the error "key not found in cache"
var ErrKNF = errors.New("key not found in cache")

// ErrNotConnected is returned when a Client is used before Connect succeeds
var ErrNotConnected = errors.New("cache client is not connected")

// Client is the interface for the supported persistent storage providers.
// When making new cache providers, Retrieve() must return ErrKNF on cache miss,
// and Remove() must not fail for keys that are not present.
type Client interface {
	Connect() error
	Store(cacheKey string, data []byte) error
	Retrieve(cacheKey string) ([]byte, status.LookupStatus, error)
	Remove(cacheKeys ...string) error
	Clear() error
	Close() error
	Configuration() *options.Options
}
