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
	"errors"
	"fmt"
)

var (
	// ErrEmptyKey is returned when a texture is requested without a key
	ErrEmptyKey = errors.New("empty texture key")
	// ErrClosed is returned by operations on a closed Cache
	ErrClosed = errors.New("texture cache is closed")
	// ErrDisposed is returned when a texture is disposed while being handed out
	// and could not be reloaded
	ErrDisposed = errors.New("texture disposed")
	// ErrCorruptEntry is returned when a persisted entry cannot be decoded
	ErrCorruptEntry = errors.New("corrupt cache entry")
)

// ResourceLoadError is returned when a texture could not be fetched or decoded.
// Failures are not cached, so the caller may retry.
type ResourceLoadError struct {
	Key string
	// Op is the stage that failed: fetch, decode or load
	Op  string
	Err error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("texture %s %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the cause
func (e *ResourceLoadError) Unwrap() error {
	return e.Err
}

// SerializationError describes a failure to read or write the persistent tier.
// It is logged and observed, never returned from Load.
type SerializationError struct {
	Key string
	// Op is one of encode, decode, store, retrieve or remove
	Op  string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("cache entry %s %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the cause
func (e *SerializationError) Unwrap() error {
	return e.Err
}
