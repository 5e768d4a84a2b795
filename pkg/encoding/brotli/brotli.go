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

// Package brotli compresses raw pixel buffers with Brotli for compact cold storage
package brotli

import (
	"bytes"
	"errors"
	"io"

	"github.com/andybalholm/brotli"
)

// DefaultLevel balances encode time against size for pixel data
const DefaultLevel = 4

// ErrSizeMismatch is returned by DecodeExact when the output has the wrong length
var ErrSizeMismatch = errors.New("decoded size mismatch")

// Encode returns the encoded version of the byte slice
func Encode(in []byte) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, len(in)/2))
	bw := brotli.NewWriterLevel(buf, DefaultLevel)
	if _, err := bw.Write(in); err != nil {
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode returns the decoded version of the encoded byte slice
func Decode(in []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(in)))
}

// DecodeExact decodes in and requires the result to be exactly size bytes.
// Decoding stops one byte past size, so oversized payloads are not inflated.
func DecodeExact(in []byte, size int) ([]byte, error) {
	out := bytes.NewBuffer(make([]byte, 0, size))
	r := io.LimitReader(brotli.NewReader(bytes.NewReader(in)), int64(size)+1)
	if _, err := out.ReadFrom(r); err != nil {
		return nil, err
	}
	if out.Len() != size {
		return nil, ErrSizeMismatch
	}
	return out.Bytes(), nil
}
