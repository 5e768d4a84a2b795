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

// Package snappy compresses raw pixel buffers with Snappy, trading ratio for speed
package snappy

import (
	"errors"

	"github.com/golang/snappy"
)

// ErrSizeMismatch is returned by DecodeExact when the output has the wrong length
var ErrSizeMismatch = errors.New("decoded size mismatch")

// Encode returns the encoded version of the byte slice
func Encode(in []byte) []byte {
	return snappy.Encode(nil, in)
}

// Decode returns the decoded version of the encoded byte slice
func Decode(in []byte) ([]byte, error) {
	return snappy.Decode(nil, in)
}

// DecodeExact decodes in and requires the result to be exactly size bytes.
// The length is checked from the header before anything is allocated.
func DecodeExact(in []byte, size int) ([]byte, error) {
	n, err := snappy.DecodedLen(in)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, ErrSizeMismatch
	}
	return snappy.Decode(make([]byte, size), in)
}
